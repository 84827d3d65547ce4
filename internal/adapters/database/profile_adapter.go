package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/lib/pq"
	"github.com/navanish17/ai-career-advisor/internal/domain/entities"
	"github.com/navanish17/ai-career-advisor/internal/domain/repositories"
	"github.com/navanish17/ai-career-advisor/internal/infrastructure/clients/postgres"
	apperrors "github.com/navanish17/ai-career-advisor/pkg/errors"
)

var profileColumns = []interface{}{
	"id", "user_email", "skills", "interests", "personality_traits",
	"education_level", "current_stream", "percentage", "preferred_work_style",
	"preferred_salary_range", "preferred_location", "budget_constraint",
	"time_commitment", "quiz_completed", "quiz_completion_percentage",
	"created_at", "updated_at",
}

// ProfileAdapter implements ProfileRepository on the user_preferences table.
type ProfileAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewProfileAdapter creates a new profile adapter
func NewProfileAdapter(client *postgres.Client) repositories.ProfileRepository {
	return &ProfileAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// GetByEmail retrieves a profile by user email
func (a *ProfileAdapter) GetByEmail(ctx context.Context, userEmail string) (*entities.UserProfile, error) {
	query, args, err := a.db.Select(profileColumns...).
		From("user_preferences").
		Where(goqu.Ex{"user_email": userEmail}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	profile := &entities.UserProfile{}
	var education, stream, workStyle, salaryRange, location, budget, timeCommitment sql.NullString
	var percentage sql.NullFloat64

	err = a.client.DB().QueryRowContext(ctx, query, args...).Scan(
		&profile.ID,
		&profile.UserEmail,
		pq.Array(&profile.Skills),
		pq.Array(&profile.Interests),
		pq.Array(&profile.PersonalityTraits),
		&education,
		&stream,
		&percentage,
		&workStyle,
		&salaryRange,
		&location,
		&budget,
		&timeCommitment,
		&profile.QuizCompleted,
		&profile.QuizCompletionPercentage,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("profile for %s not found", userEmail))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get profile", err)
	}

	profile.EducationLevel = entities.EducationLevel(education.String)
	profile.CurrentStream = stream.String
	profile.PreferredWorkStyle = workStyle.String
	profile.PreferredSalaryRange = salaryRange.String
	profile.PreferredLocation = location.String
	profile.BudgetConstraint = budget.String
	profile.TimeCommitment = timeCommitment.String
	if percentage.Valid {
		profile.Percentage = &percentage.Float64
	}

	return profile, nil
}

// Create inserts a new profile
func (a *ProfileAdapter) Create(ctx context.Context, profile *entities.UserProfile) error {
	query, args, err := a.db.Insert("user_preferences").
		Rows(a.record(profile, true)).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}

	_, err = a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to create profile", err)
	}

	return nil
}

// Update replaces the mutable fields of an existing profile
func (a *ProfileAdapter) Update(ctx context.Context, profile *entities.UserProfile) error {
	profile.UpdatedAt = time.Now()

	query, args, err := a.db.Update("user_preferences").
		Set(a.record(profile, false)).
		Where(goqu.Ex{"user_email": profile.UserEmail}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build update query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to update profile", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewInternalError("failed to get rows affected", err)
	}

	if rowsAffected == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("profile for %s not found", profile.UserEmail))
	}

	return nil
}

func (a *ProfileAdapter) record(profile *entities.UserProfile, includeKeys bool) goqu.Record {
	var percentage sql.NullFloat64
	if profile.Percentage != nil {
		percentage = sql.NullFloat64{Float64: *profile.Percentage, Valid: true}
	}

	record := goqu.Record{
		"skills":                     pq.Array(profile.Skills),
		"interests":                  pq.Array(profile.Interests),
		"personality_traits":         pq.Array(profile.PersonalityTraits),
		"education_level":            nullString(string(profile.EducationLevel)),
		"current_stream":             nullString(profile.CurrentStream),
		"percentage":                 percentage,
		"preferred_work_style":       nullString(profile.PreferredWorkStyle),
		"preferred_salary_range":     nullString(profile.PreferredSalaryRange),
		"preferred_location":         nullString(profile.PreferredLocation),
		"budget_constraint":          nullString(profile.BudgetConstraint),
		"time_commitment":            nullString(profile.TimeCommitment),
		"quiz_completed":             profile.QuizCompleted,
		"quiz_completion_percentage": profile.QuizCompletionPercentage,
		"updated_at":                 profile.UpdatedAt,
	}

	if includeKeys {
		record["id"] = profile.ID
		record["user_email"] = profile.UserEmail
		record["created_at"] = profile.CreatedAt
	}

	return record
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
