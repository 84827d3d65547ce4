package database

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/navanish17/ai-career-advisor/internal/domain/entities"
	"github.com/navanish17/ai-career-advisor/internal/domain/providers"
	"github.com/navanish17/ai-career-advisor/internal/domain/repositories"
	"github.com/rs/zerolog"
)

// Cache TTLs (in seconds). The catalog changes rarely; stale reads only
// delay new careers from appearing in recommendations.
const (
	careerByNameTTL = 600
	careerListTTL   = 300
	popularListTTL  = 300
)

func careerCacheKey(name string) string {
	return fmt.Sprintf("career:%s", name)
}

func careerListCacheKey() string {
	return "careers:list"
}

func popularCareersCacheKey(limit int) string {
	return fmt.Sprintf("careers:popular:%d", limit)
}

// careerCacheRecord is the cache wire form of a career. The entity keeps
// its semantic vector out of JSON so API responses never expose it; the
// cache must carry the vector alongside, or semantic scoring would turn
// off on every cache hit.
type careerCacheRecord struct {
	Career         *entities.Career `json:"career"`
	SemanticVector []float64        `json:"semantic_vector,omitempty"`
}

func encodeCareer(career *entities.Career) *careerCacheRecord {
	return &careerCacheRecord{Career: career, SemanticVector: career.SemanticVector}
}

func (r *careerCacheRecord) decode() *entities.Career {
	career := r.Career
	career.SemanticVector = r.SemanticVector
	return career
}

func encodeCareers(careers []*entities.Career) []*careerCacheRecord {
	records := make([]*careerCacheRecord, len(careers))
	for i, career := range careers {
		records[i] = encodeCareer(career)
	}
	return records
}

// decodeCareers reports ok=false on a malformed entry so callers fall
// back to the database instead of serving a partial catalog.
func decodeCareers(records []*careerCacheRecord) ([]*entities.Career, bool) {
	careers := make([]*entities.Career, len(records))
	for i, record := range records {
		if record == nil || record.Career == nil {
			return nil, false
		}
		careers[i] = record.decode()
	}
	return careers, true
}

// CachedCareerAdapter wraps a CareerRepository with read-through caching.
// Searches bypass the cache; they either hit the search index or are rare
// enough not to matter.
type CachedCareerAdapter struct {
	adapter repositories.CareerRepository
	cache   providers.CacheProvider
	logger  zerolog.Logger
}

// NewCachedCareerAdapter creates a new cached career adapter
func NewCachedCareerAdapter(adapter repositories.CareerRepository, cache providers.CacheProvider, logger zerolog.Logger) repositories.CareerRepository {
	return &CachedCareerAdapter{
		adapter: adapter,
		cache:   cache,
		logger:  logger,
	}
}

// GetByName retrieves a career by name with caching
func (a *CachedCareerAdapter) GetByName(ctx context.Context, name string) (*entities.Career, error) {
	cacheKey := careerCacheKey(name)

	if cached, err := a.cache.Get(ctx, cacheKey); err == nil {
		var record careerCacheRecord
		if err := json.Unmarshal(cached, &record); err == nil && record.Career != nil {
			return record.decode(), nil
		}
	}

	career, err := a.adapter.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}

	a.store(cacheKey, encodeCareer(career), careerByNameTTL)

	return career, nil
}

// List retrieves the full catalog with caching
func (a *CachedCareerAdapter) List(ctx context.Context) ([]*entities.Career, error) {
	cacheKey := careerListCacheKey()

	if cached, err := a.cache.Get(ctx, cacheKey); err == nil {
		var records []*careerCacheRecord
		if err := json.Unmarshal(cached, &records); err == nil {
			if careers, ok := decodeCareers(records); ok {
				return careers, nil
			}
		}
	}

	careers, err := a.adapter.List(ctx)
	if err != nil {
		return nil, err
	}

	a.store(cacheKey, encodeCareers(careers), careerListTTL)

	return careers, nil
}

// ListByPopularity retrieves popular careers with caching
func (a *CachedCareerAdapter) ListByPopularity(ctx context.Context, limit int) ([]*entities.Career, error) {
	cacheKey := popularCareersCacheKey(limit)

	if cached, err := a.cache.Get(ctx, cacheKey); err == nil {
		var records []*careerCacheRecord
		if err := json.Unmarshal(cached, &records); err == nil {
			if careers, ok := decodeCareers(records); ok {
				return careers, nil
			}
		}
	}

	careers, err := a.adapter.ListByPopularity(ctx, limit)
	if err != nil {
		return nil, err
	}

	a.store(cacheKey, encodeCareers(careers), popularListTTL)

	return careers, nil
}

// SearchByName delegates to the underlying adapter without caching
func (a *CachedCareerAdapter) SearchByName(ctx context.Context, query string, limit int) ([]*entities.Career, error) {
	return a.adapter.SearchByName(ctx, query, limit)
}

// UpdateSemanticVector updates the stored vector and invalidates the
// affected cache entries
func (a *CachedCareerAdapter) UpdateSemanticVector(ctx context.Context, name string, vector []float64) error {
	if err := a.adapter.UpdateSemanticVector(ctx, name, vector); err != nil {
		return err
	}

	if err := a.cache.Delete(ctx, careerCacheKey(name)); err != nil {
		a.logger.Warn().Err(err).Str("career", name).Msg("failed to invalidate career cache entry")
	}
	if err := a.cache.Delete(ctx, careerListCacheKey()); err != nil {
		a.logger.Warn().Err(err).Msg("failed to invalidate career list cache")
	}

	return nil
}

// store writes to the cache off the request path; cache failures are
// logged, never surfaced.
func (a *CachedCareerAdapter) store(key string, value interface{}, ttl int) {
	data, err := json.Marshal(value)
	if err != nil {
		return
	}
	go func() {
		if err := a.cache.Set(context.Background(), key, data, ttl); err != nil {
			a.logger.Warn().Err(err).Str("key", key).Msg("failed to write cache entry")
		}
	}()
}
