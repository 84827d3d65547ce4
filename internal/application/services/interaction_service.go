package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/navanish17/ai-career-advisor/internal/domain/entities"
	"github.com/navanish17/ai-career-advisor/internal/domain/providers"
	"github.com/navanish17/ai-career-advisor/internal/domain/repositories"
	apperrors "github.com/navanish17/ai-career-advisor/pkg/errors"
)

// InteractionService records user-career interactions for collaborative
// filtering.
type InteractionService struct {
	interactions repositories.InteractionRepository
	bus          providers.EventBus
}

// NewInteractionService creates an interaction service. bus may be nil,
// in which case recorded events are not published.
func NewInteractionService(interactions repositories.InteractionRepository, bus providers.EventBus) *InteractionService {
	return &InteractionService{interactions: interactions, bus: bus}
}

// Track validates and appends one interaction event. The implicit score
// always comes from the fixed per-type table; an unknown interaction type
// is rejected before anything is written.
func (s *InteractionService) Track(ctx context.Context, userEmail, careerName string, interactionType entities.InteractionType, source, sessionID string) (*entities.Interaction, error) {
	if userEmail == "" {
		return nil, apperrors.NewValidationError("user email is required")
	}
	if careerName == "" {
		return nil, apperrors.NewValidationError("career name is required")
	}
	score, ok := interactionType.ImplicitScore()
	if !ok {
		return nil, apperrors.NewValidationError(fmt.Sprintf("unknown interaction type %q", interactionType))
	}

	interaction := &entities.Interaction{
		ID:         uuid.New().String(),
		UserEmail:  userEmail,
		CareerName: careerName,
		Type:       interactionType,
		Score:      score,
		Source:     source,
		SessionID:  sessionID,
		CreatedAt:  time.Now().UTC(),
	}

	if err := s.interactions.Create(ctx, interaction); err != nil {
		return nil, err
	}

	s.publish(ctx, interaction)

	log.Info().
		Str("user_email", userEmail).
		Str("career", careerName).
		Str("type", string(interactionType)).
		Msg("tracked interaction")

	return interaction, nil
}

// publish emits the recorded event on the bus. Best effort: a bus failure
// never fails the write that already happened.
func (s *InteractionService) publish(ctx context.Context, interaction *entities.Interaction) {
	if s.bus == nil {
		return
	}
	event := &entities.InteractionEvent{
		ID:         interaction.ID,
		UserEmail:  interaction.UserEmail,
		CareerName: interaction.CareerName,
		Type:       interaction.Type,
		Score:      interaction.Score,
		Source:     interaction.Source,
		OccurredAt: interaction.CreatedAt,
	}
	if err := s.bus.Publish(ctx, providers.EventChannelInteractions, event); err != nil {
		log.Warn().Err(err).Str("interaction_id", interaction.ID).Msg("failed to publish interaction event")
	}
}
