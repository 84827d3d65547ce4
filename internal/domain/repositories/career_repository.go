package repositories

import (
	"context"

	"github.com/navanish17/ai-career-advisor/internal/domain/entities"
)

// CareerRepository defines read access to the career catalog. The catalog
// is seeded externally; the engine treats it as read-only apart from the
// semantic vector backfill.
type CareerRepository interface {
	// GetByName retrieves a career by its unique name. Returns a NOT_FOUND
	// application error when the career does not exist.
	GetByName(ctx context.Context, name string) (*entities.Career, error)

	// List retrieves the full catalog in stable insertion order.
	List(ctx context.Context) ([]*entities.Career, error)

	// ListByPopularity retrieves careers ordered by popularity descending.
	ListByPopularity(ctx context.Context, limit int) ([]*entities.Career, error)

	// SearchByName retrieves careers whose name or category matches the
	// query, for the database fallback of catalog search.
	SearchByName(ctx context.Context, query string, limit int) ([]*entities.Career, error)

	// UpdateSemanticVector stores the embedding for a career.
	UpdateSemanticVector(ctx context.Context, name string, vector []float64) error
}

// CareerSearchRepository defines the search-index port for the catalog
// (Typesense). Optional: catalog search degrades to CareerRepository when
// no index is configured.
type CareerSearchRepository interface {
	// Index upserts a career document into the index.
	Index(ctx context.Context, career *entities.Career) error

	// Search performs keyword search over the indexed catalog.
	Search(ctx context.Context, query string, limit int) ([]*entities.Career, error)

	// Delete removes a career from the index.
	Delete(ctx context.Context, id string) error
}
