package repositories

import (
	"context"

	"github.com/navanish17/ai-career-advisor/internal/domain/entities"
)

// ProfileRepository defines persistence for user preference profiles.
type ProfileRepository interface {
	// GetByEmail retrieves a profile by user email. Returns a NOT_FOUND
	// application error when no profile exists.
	GetByEmail(ctx context.Context, userEmail string) (*entities.UserProfile, error)

	// Create inserts a new profile.
	Create(ctx context.Context, profile *entities.UserProfile) error

	// Update replaces the mutable fields of an existing profile.
	Update(ctx context.Context, profile *entities.UserProfile) error
}
