package services

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog/log"

	"github.com/navanish17/ai-career-advisor/internal/domain/entities"
	"github.com/navanish17/ai-career-advisor/internal/domain/providers"
	"github.com/navanish17/ai-career-advisor/internal/domain/repositories"
)

// BackfillSummary reports the outcome of a backfill or reindex run.
type BackfillSummary struct {
	TotalProcessed int
	SuccessCount   int
	FailureCount   int
	SkippedCount   int
}

// VectorBackfillService generates semantic vectors for careers that do not
// have one yet, and pushes career documents into the search index. Both
// operations fan out over a worker pool; each career is independent.
type VectorBackfillService struct {
	careers     repositories.CareerRepository
	searchRepo  repositories.CareerSearchRepository
	embedder    providers.EmbeddingProvider
	workerCount int
}

// NewVectorBackfillService creates the backfill service. searchRepo and
// embedder may each be nil; the corresponding operation then reports an
// error when invoked.
func NewVectorBackfillService(
	careers repositories.CareerRepository,
	searchRepo repositories.CareerSearchRepository,
	embedder providers.EmbeddingProvider,
	workers int,
) *VectorBackfillService {
	if workers <= 0 {
		workers = 1
	}
	return &VectorBackfillService{
		careers:     careers,
		searchRepo:  searchRepo,
		embedder:    embedder,
		workerCount: workers,
	}
}

// BackfillVectors embeds every career missing a semantic vector. When
// force is true, existing vectors are regenerated as well.
func (s *VectorBackfillService) BackfillVectors(ctx context.Context, force bool) (*BackfillSummary, error) {
	if s.embedder == nil {
		return nil, fmt.Errorf("no embedding provider configured")
	}

	catalog, err := s.careers.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list careers: %w", err)
	}

	var processed, success, failure, skipped int64

	careerChan := make(chan *entities.Career, len(catalog))
	var wg sync.WaitGroup

	for i := 0; i < s.workerCount; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for career := range careerChan {
				atomic.AddInt64(&processed, 1)
				if err := s.BackfillSingle(ctx, career); err != nil {
					atomic.AddInt64(&failure, 1)
					log.Error().Err(err).Str("career", career.Name).Msg("Failed to backfill career vector")
				} else {
					atomic.AddInt64(&success, 1)
				}
			}
		}()
	}

	for _, career := range catalog {
		if !force && len(career.SemanticVector) > 0 {
			atomic.AddInt64(&skipped, 1)
			continue
		}
		select {
		case careerChan <- career:
		case <-ctx.Done():
			close(careerChan)
			wg.Wait()
			return nil, ctx.Err()
		}
	}

	close(careerChan)
	wg.Wait()

	return &BackfillSummary{
		TotalProcessed: int(processed),
		SuccessCount:   int(success),
		FailureCount:   int(failure),
		SkippedCount:   int(skipped),
	}, nil
}

// BackfillSingle embeds one career and stores the resulting vector.
func (s *VectorBackfillService) BackfillSingle(ctx context.Context, career *entities.Career) error {
	vector, err := s.embedder.Embed(ctx, career.EmbeddingText())
	if err != nil {
		return fmt.Errorf("failed to embed career %s: %w", career.Name, err)
	}
	if err := s.careers.UpdateSemanticVector(ctx, career.Name, vector); err != nil {
		return fmt.Errorf("failed to store vector for %s: %w", career.Name, err)
	}
	return nil
}

// ReindexCatalog upserts every career into the search index.
func (s *VectorBackfillService) ReindexCatalog(ctx context.Context) (*BackfillSummary, error) {
	if s.searchRepo == nil {
		return nil, fmt.Errorf("no search index configured")
	}

	catalog, err := s.careers.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list careers: %w", err)
	}

	var processed, success, failure int64

	careerChan := make(chan *entities.Career, len(catalog))
	var wg sync.WaitGroup

	for i := 0; i < s.workerCount; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for career := range careerChan {
				atomic.AddInt64(&processed, 1)
				if err := s.searchRepo.Index(ctx, career); err != nil {
					atomic.AddInt64(&failure, 1)
					log.Error().Err(err).Str("career", career.Name).Msg("Failed to index career")
				} else {
					atomic.AddInt64(&success, 1)
				}
			}
		}()
	}

	for _, career := range catalog {
		select {
		case careerChan <- career:
		case <-ctx.Done():
			close(careerChan)
			wg.Wait()
			return nil, ctx.Err()
		}
	}

	close(careerChan)
	wg.Wait()

	return &BackfillSummary{
		TotalProcessed: int(processed),
		SuccessCount:   int(success),
		FailureCount:   int(failure),
	}, nil
}
