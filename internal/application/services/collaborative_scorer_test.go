package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/navanish17/ai-career-advisor/internal/application/services"
	"github.com/navanish17/ai-career-advisor/internal/domain/entities"
)

func interaction(user, career string, itype entities.InteractionType, score float64) *entities.Interaction {
	return &entities.Interaction{UserEmail: user, CareerName: career, Type: itype, Score: score}
}

func TestBuildNeighborhood_NoOwnHistory(t *testing.T) {
	repo := &fakeInteractionRepo{}
	scorer := services.NewCollaborativeScorer(repo)

	neighbors, err := scorer.BuildNeighborhood(context.Background(), "alone@example.com")
	require.NoError(t, err)
	assert.Empty(t, neighbors)
}

func TestBuildNeighborhood_ExcludesRequester(t *testing.T) {
	repo := &fakeInteractionRepo{
		interactions: []*entities.Interaction{
			interaction("me@example.com", "Software Engineer", entities.InteractionSaved, 0.7),
			interaction("me@example.com", "Software Engineer", entities.InteractionViewed, 0.3),
			interaction("other@example.com", "Software Engineer", entities.InteractionViewed, 0.3),
		},
	}
	scorer := services.NewCollaborativeScorer(repo)

	neighbors, err := scorer.BuildNeighborhood(context.Background(), "me@example.com")
	require.NoError(t, err)
	assert.Equal(t, []string{"other@example.com"}, neighbors)
}

func TestScore_NoNeighbors(t *testing.T) {
	scorer := services.NewCollaborativeScorer(&fakeInteractionRepo{})

	score, err := scorer.Score(context.Background(), nil, "Doctor")
	require.NoError(t, err)
	assert.Equal(t, services.NeutralCollaborativeScore, score)
}

func TestScore_NoNeighborEventsOnCandidate(t *testing.T) {
	repo := &fakeInteractionRepo{
		interactions: []*entities.Interaction{
			interaction("other@example.com", "Software Engineer", entities.InteractionSaved, 0.7),
		},
	}
	scorer := services.NewCollaborativeScorer(repo)

	score, err := scorer.Score(context.Background(), []string{"other@example.com"}, "Doctor")
	require.NoError(t, err)
	assert.Equal(t, services.NeutralCollaborativeScore, score)
}

func TestScore_AveragesNeighborScores(t *testing.T) {
	repo := &fakeInteractionRepo{
		interactions: []*entities.Interaction{
			interaction("a@example.com", "Software Engineer", entities.InteractionClickedRoadmap, 1.0),
			interaction("b@example.com", "Software Engineer", entities.InteractionViewed, 0.3),
			// Not in the neighbor pool, must be ignored.
			interaction("c@example.com", "Software Engineer", entities.InteractionDismissed, -0.5),
		},
	}
	scorer := services.NewCollaborativeScorer(repo)

	score, err := scorer.Score(context.Background(), []string{"a@example.com", "b@example.com"}, "Software Engineer")
	require.NoError(t, err)
	assert.InDelta(t, 0.65, score, 1e-9)
}

func TestScore_DismissalsPullAverageDownAndClamp(t *testing.T) {
	repo := &fakeInteractionRepo{
		interactions: []*entities.Interaction{
			interaction("a@example.com", "Doctor", entities.InteractionDismissed, -0.5),
			interaction("b@example.com", "Doctor", entities.InteractionDismissed, -0.5),
		},
	}
	scorer := services.NewCollaborativeScorer(repo)

	score, err := scorer.Score(context.Background(), []string{"a@example.com", "b@example.com"}, "Doctor")
	require.NoError(t, err)
	// Raw average is -0.5, clamped to the [0,1] range.
	assert.Equal(t, 0.0, score)
}
