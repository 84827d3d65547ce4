package database

import (
	"context"
	"database/sql"

	"github.com/doug-martin/goqu/v9"
	"github.com/navanish17/ai-career-advisor/internal/domain/entities"
	"github.com/navanish17/ai-career-advisor/internal/domain/repositories"
	"github.com/navanish17/ai-career-advisor/internal/infrastructure/clients/postgres"
	apperrors "github.com/navanish17/ai-career-advisor/pkg/errors"
)

var interactionColumns = []interface{}{
	"id", "user_email", "career_name", "interaction_type", "score",
	"source", "session_id", "created_at",
}

// InteractionAdapter implements InteractionRepository on the
// user_career_interactions table. The table is append-only.
type InteractionAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewInteractionAdapter creates a new interaction adapter
func NewInteractionAdapter(client *postgres.Client) repositories.InteractionRepository {
	return &InteractionAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Create appends an interaction event
func (a *InteractionAdapter) Create(ctx context.Context, interaction *entities.Interaction) error {
	record := goqu.Record{
		"id":               interaction.ID,
		"user_email":       interaction.UserEmail,
		"career_name":      interaction.CareerName,
		"interaction_type": string(interaction.Type),
		"score":            interaction.Score,
		"source":           nullString(interaction.Source),
		"session_id":       nullString(interaction.SessionID),
		"created_at":       interaction.CreatedAt,
	}

	query, args, err := a.db.Insert("user_career_interactions").Rows(record).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}

	_, err = a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to create interaction", err)
	}

	return nil
}

// ListByUser retrieves all interactions recorded for a user
func (a *InteractionAdapter) ListByUser(ctx context.Context, userEmail string) ([]*entities.Interaction, error) {
	query, args, err := a.db.Select(interactionColumns...).
		From("user_career_interactions").
		Where(goqu.Ex{"user_email": userEmail}).
		Order(goqu.I("created_at").Asc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build list query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list interactions", err)
	}
	defer rows.Close()

	var interactions []*entities.Interaction
	for rows.Next() {
		interaction := &entities.Interaction{}
		var interactionType string
		var source, sessionID sql.NullString

		err := rows.Scan(
			&interaction.ID,
			&interaction.UserEmail,
			&interaction.CareerName,
			&interactionType,
			&interaction.Score,
			&source,
			&sessionID,
			&interaction.CreatedAt,
		)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan interaction", err)
		}

		interaction.Type = entities.InteractionType(interactionType)
		interaction.Source = source.String
		interaction.SessionID = sessionID.String

		interactions = append(interactions, interaction)
	}

	if err = rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("error iterating interactions", err)
	}

	return interactions, nil
}

// CountByUser counts the interactions recorded for a user
func (a *InteractionAdapter) CountByUser(ctx context.Context, userEmail string) (int, error) {
	query, args, err := a.db.Select(goqu.COUNT("*")).
		From("user_career_interactions").
		Where(goqu.Ex{"user_email": userEmail}).
		ToSQL()
	if err != nil {
		return 0, apperrors.NewInternalError("failed to build count query", err)
	}

	var count int
	err = a.client.DB().QueryRowContext(ctx, query, args...).Scan(&count)
	if err != nil {
		return 0, apperrors.NewInternalError("failed to count interactions", err)
	}

	return count, nil
}

// ListNeighborEmails returns the distinct emails of other users who
// interacted with any of the given careers
func (a *InteractionAdapter) ListNeighborEmails(ctx context.Context, careerNames []string, excludeEmail string) ([]string, error) {
	if len(careerNames) == 0 {
		return []string{}, nil
	}

	query, args, err := a.db.Select("user_email").
		Distinct().
		From("user_career_interactions").
		Where(
			goqu.I("career_name").In(careerNames),
			goqu.I("user_email").Neq(excludeEmail),
		).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build neighbor query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list neighbor emails", err)
	}
	defer rows.Close()

	var emails []string
	for rows.Next() {
		var email string
		if err := rows.Scan(&email); err != nil {
			return nil, apperrors.NewInternalError("failed to scan neighbor email", err)
		}
		emails = append(emails, email)
	}

	if err = rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("error iterating neighbor emails", err)
	}

	return emails, nil
}

// ListNeighborScores returns the interaction scores the given users recorded
// against the candidate career
func (a *InteractionAdapter) ListNeighborScores(ctx context.Context, userEmails []string, careerName string) ([]float64, error) {
	if len(userEmails) == 0 {
		return []float64{}, nil
	}

	query, args, err := a.db.Select("score").
		From("user_career_interactions").
		Where(
			goqu.I("user_email").In(userEmails),
			goqu.I("career_name").Eq(careerName),
		).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build neighbor score query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list neighbor scores", err)
	}
	defer rows.Close()

	var scores []float64
	for rows.Next() {
		var score float64
		if err := rows.Scan(&score); err != nil {
			return nil, apperrors.NewInternalError("failed to scan neighbor score", err)
		}
		scores = append(scores, score)
	}

	if err = rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("error iterating neighbor scores", err)
	}

	return scores, nil
}
