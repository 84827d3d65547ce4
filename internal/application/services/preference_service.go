package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/navanish17/ai-career-advisor/internal/domain/entities"
	"github.com/navanish17/ai-career-advisor/internal/domain/repositories"
	apperrors "github.com/navanish17/ai-career-advisor/pkg/errors"
)

// PreferenceUpdate is a partial preference payload. Nil fields are absent
// and leave the stored value untouched; non-nil fields replace it.
type PreferenceUpdate struct {
	Skills               []string
	Interests            []string
	PersonalityTraits    []string
	EducationLevel       *string
	CurrentStream        *string
	Percentage           *float64
	PreferredWorkStyle   *string
	PreferredSalaryRange *string
	PreferredLocation    *string
	BudgetConstraint     *string
	TimeCommitment       *string
}

// PreferenceService manages user preference profiles collected through the
// career quiz.
type PreferenceService struct {
	profiles repositories.ProfileRepository
}

// NewPreferenceService creates a preference service.
func NewPreferenceService(profiles repositories.ProfileRepository) *PreferenceService {
	return &PreferenceService{profiles: profiles}
}

// Save applies a field-level upsert: present fields replace stored values,
// absent fields keep them. Any submission marks the quiz completed. The
// call is idempotent under repeated identical payloads.
func (s *PreferenceService) Save(ctx context.Context, userEmail string, update PreferenceUpdate) (*entities.UserProfile, error) {
	if userEmail == "" {
		return nil, apperrors.NewValidationError("user email is required")
	}

	now := time.Now().UTC()
	profile, err := s.profiles.GetByEmail(ctx, userEmail)
	created := false
	if err != nil {
		if !apperrors.IsNotFound(err) {
			return nil, err
		}
		profile = &entities.UserProfile{
			ID:        uuid.New().String(),
			UserEmail: userEmail,
			CreatedAt: now,
		}
		created = true
	}

	applyUpdate(profile, update)
	profile.QuizCompleted = true
	profile.QuizCompletionPercentage = 100
	profile.UpdatedAt = now

	if created {
		err = s.profiles.Create(ctx, profile)
	} else {
		err = s.profiles.Update(ctx, profile)
	}
	if err != nil {
		return nil, err
	}

	log.Info().Str("user_email", userEmail).Bool("created", created).Msg("saved user preferences")
	return profile, nil
}

// Get retrieves the stored profile for a user.
func (s *PreferenceService) Get(ctx context.Context, userEmail string) (*entities.UserProfile, error) {
	if userEmail == "" {
		return nil, apperrors.NewValidationError("user email is required")
	}
	return s.profiles.GetByEmail(ctx, userEmail)
}

func applyUpdate(profile *entities.UserProfile, update PreferenceUpdate) {
	if update.Skills != nil {
		profile.Skills = update.Skills
	}
	if update.Interests != nil {
		profile.Interests = update.Interests
	}
	if update.PersonalityTraits != nil {
		profile.PersonalityTraits = update.PersonalityTraits
	}
	if update.EducationLevel != nil {
		profile.EducationLevel = entities.EducationLevel(*update.EducationLevel)
	}
	if update.CurrentStream != nil {
		profile.CurrentStream = *update.CurrentStream
	}
	if update.Percentage != nil {
		profile.Percentage = update.Percentage
	}
	if update.PreferredWorkStyle != nil {
		profile.PreferredWorkStyle = *update.PreferredWorkStyle
	}
	if update.PreferredSalaryRange != nil {
		profile.PreferredSalaryRange = *update.PreferredSalaryRange
	}
	if update.PreferredLocation != nil {
		profile.PreferredLocation = *update.PreferredLocation
	}
	if update.BudgetConstraint != nil {
		profile.BudgetConstraint = *update.BudgetConstraint
	}
	if update.TimeCommitment != nil {
		profile.TimeCommitment = *update.TimeCommitment
	}
}
