package services

import (
	"context"

	"github.com/navanish17/ai-career-advisor/internal/domain/repositories"
)

// NeutralCollaborativeScore is returned whenever no collaborative signal
// exists for a candidate: no seed interactions, no overlapping neighbors,
// or no neighbor events on the candidate.
const NeutralCollaborativeScore = 0.5

// CollaborativeScorer produces neighborhood co-occurrence scores from the
// interaction log. It is a plain neighborhood average, not matrix
// factorization; every score can be reconstructed from the event rows.
type CollaborativeScorer struct {
	interactions repositories.InteractionRepository
}

// NewCollaborativeScorer creates a scorer over the interaction log.
func NewCollaborativeScorer(interactions repositories.InteractionRepository) *CollaborativeScorer {
	return &CollaborativeScorer{interactions: interactions}
}

// BuildNeighborhood resolves the neighbor pool for a user: all other users
// with at least one interaction on any career the target user interacted
// with. The requesting user is always excluded from their own pool. An
// empty result means there is no collaborative signal and every candidate
// scores neutral.
func (s *CollaborativeScorer) BuildNeighborhood(ctx context.Context, userEmail string) ([]string, error) {
	own, err := s.interactions.ListByUser(ctx, userEmail)
	if err != nil {
		return nil, err
	}
	if len(own) == 0 {
		return nil, nil
	}

	seen := make(map[string]struct{}, len(own))
	seedCareers := make([]string, 0, len(own))
	for _, interaction := range own {
		if _, ok := seen[interaction.CareerName]; ok {
			continue
		}
		seen[interaction.CareerName] = struct{}{}
		seedCareers = append(seedCareers, interaction.CareerName)
	}

	return s.interactions.ListNeighborEmails(ctx, seedCareers, userEmail)
}

// Score averages the neighbor users' interaction scores on the candidate
// career, clamped to [0,1]. With an empty neighborhood or no neighbor
// events on the candidate it returns the neutral score.
func (s *CollaborativeScorer) Score(ctx context.Context, neighbors []string, careerName string) (float64, error) {
	if len(neighbors) == 0 {
		return NeutralCollaborativeScore, nil
	}

	scores, err := s.interactions.ListNeighborScores(ctx, neighbors, careerName)
	if err != nil {
		return NeutralCollaborativeScore, err
	}
	if len(scores) == 0 {
		return NeutralCollaborativeScore, nil
	}

	var sum float64
	for _, score := range scores {
		sum += score
	}
	return clamp01(sum / float64(len(scores))), nil
}
