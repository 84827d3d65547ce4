package services

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/navanish17/ai-career-advisor/internal/domain/entities"
	"github.com/navanish17/ai-career-advisor/internal/domain/repositories"
)

// CareerCatalogService exposes read access to the career catalog, using
// the search index when one is configured and falling back to the
// database otherwise.
type CareerCatalogService struct {
	careers    repositories.CareerRepository
	searchRepo repositories.CareerSearchRepository
}

// NewCareerCatalogService creates a catalog service. searchRepo may be nil.
func NewCareerCatalogService(careers repositories.CareerRepository, searchRepo repositories.CareerSearchRepository) *CareerCatalogService {
	return &CareerCatalogService{careers: careers, searchRepo: searchRepo}
}

// List returns the full catalog.
func (s *CareerCatalogService) List(ctx context.Context) ([]*entities.Career, error) {
	return s.careers.List(ctx)
}

// Get returns one career by name.
func (s *CareerCatalogService) Get(ctx context.Context, name string) (*entities.Career, error) {
	return s.careers.GetByName(ctx, name)
}

// Search performs keyword search over the catalog. Index failures degrade
// to the database search rather than failing the request.
func (s *CareerCatalogService) Search(ctx context.Context, query string, limit int) ([]*entities.Career, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return s.careers.List(ctx)
	}
	if limit <= 0 {
		limit = 20
	}

	if s.searchRepo != nil {
		careers, err := s.searchRepo.Search(ctx, query, limit)
		if err == nil {
			return careers, nil
		}
		log.Warn().Err(err).Str("query", query).Msg("search index unavailable, falling back to database search")
	}
	return s.careers.SearchByName(ctx, query, limit)
}
