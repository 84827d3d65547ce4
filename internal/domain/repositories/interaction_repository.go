package repositories

import (
	"context"

	"github.com/navanish17/ai-career-advisor/internal/domain/entities"
)

// InteractionRepository defines persistence for the append-only
// user-career interaction log.
type InteractionRepository interface {
	// Create appends an interaction event. Events are immutable once
	// written.
	Create(ctx context.Context, interaction *entities.Interaction) error

	// ListByUser retrieves all interactions recorded for a user.
	ListByUser(ctx context.Context, userEmail string) ([]*entities.Interaction, error)

	// CountByUser counts the interactions recorded for a user.
	CountByUser(ctx context.Context, userEmail string) (int, error)

	// ListNeighborEmails returns the distinct emails of users, other than
	// excludeEmail, with at least one interaction on any of the given
	// careers.
	ListNeighborEmails(ctx context.Context, careerNames []string, excludeEmail string) ([]string, error)

	// ListNeighborScores returns the interaction scores the given users
	// recorded against the candidate career.
	ListNeighborScores(ctx context.Context, userEmails []string, careerName string) ([]float64, error)
}
