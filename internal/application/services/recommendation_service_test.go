package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/navanish17/ai-career-advisor/internal/application/services"
	"github.com/navanish17/ai-career-advisor/internal/domain/entities"
	apperrors "github.com/navanish17/ai-career-advisor/pkg/errors"
)

func testCatalog() []*entities.Career {
	return []*entities.Career{
		{
			Name:            "Software Engineer",
			RequiredSkills:  []string{"python", "java"},
			MinEducation:    entities.EducationGraduate,
			PopularityScore: 0.8,
		},
		{
			Name:            "Doctor",
			RequiredSkills:  []string{"biology"},
			MinEducation:    entities.EducationPostgraduate,
			PopularityScore: 0.9,
		},
	}
}

func testProfile() *entities.UserProfile {
	return &entities.UserProfile{
		UserEmail:      "student@example.com",
		Skills:         []string{"python"},
		EducationLevel: entities.EducationGraduate,
	}
}

func newService(profiles *fakeProfileRepo, careers *fakeCareerRepo, interactions *fakeInteractionRepo, embedder *fakeEmbedder) *services.RecommendationService {
	var provider *fakeEmbedder
	if embedder != nil {
		provider = embedder
	}
	if provider == nil {
		return services.NewRecommendationService(profiles, careers, interactions, nil, services.DefaultRecommenderConfig())
	}
	return services.NewRecommendationService(profiles, careers, interactions, provider, services.DefaultRecommenderConfig())
}

func TestGetRecommendations_KeywordRanking(t *testing.T) {
	// Scenario: profile matches Software Engineer skills, no interactions.
	svc := newService(newFakeProfileRepo(testProfile()), newFakeCareerRepo(testCatalog()...), &fakeInteractionRepo{}, nil)

	recs, err := svc.GetRecommendations(context.Background(), "student@example.com", 5)
	require.NoError(t, err)
	require.Len(t, recs, 2)

	assert.Equal(t, "Software Engineer", recs[0].Career.Name)
	assert.Equal(t, "Doctor", recs[1].Career.Name)
	for _, rec := range recs {
		assert.Equal(t, entities.RecommendationKeywordMatch, rec.Type)
		assert.Nil(t, rec.CollaborativeScore)
	}
	// content = 0.50·0.5 + 0.15·1.0 + 0.05·1.0 = 0.45
	assert.InDelta(t, 45.0, recs[0].MatchScore, 1e-9)
}

func TestGetRecommendations_ColdStartUsesPopularity(t *testing.T) {
	svc := newService(newFakeProfileRepo(), newFakeCareerRepo(testCatalog()...), &fakeInteractionRepo{}, nil)

	recs, err := svc.GetRecommendations(context.Background(), "unknown@example.com", 5)
	require.NoError(t, err)
	require.Len(t, recs, 2)

	assert.Equal(t, "Doctor", recs[0].Career.Name)
	assert.Equal(t, 90.0, recs[0].MatchScore)
	assert.Equal(t, "Software Engineer", recs[1].Career.Name)
	for _, rec := range recs {
		assert.Equal(t, entities.RecommendationPopularity, rec.Type)
	}
}

func TestGetRecommendations_HybridBlendsCollaborativeScore(t *testing.T) {
	// Scenario: three roadmap clicks by the user, one neighbor saved the
	// same career.
	interactions := &fakeInteractionRepo{
		interactions: []*entities.Interaction{
			interaction("student@example.com", "Software Engineer", entities.InteractionClickedRoadmap, 1.0),
			interaction("student@example.com", "Software Engineer", entities.InteractionClickedRoadmap, 1.0),
			interaction("student@example.com", "Software Engineer", entities.InteractionClickedRoadmap, 1.0),
			interaction("neighbor@example.com", "Software Engineer", entities.InteractionSaved, 0.7),
		},
	}
	svc := newService(newFakeProfileRepo(testProfile()), newFakeCareerRepo(testCatalog()...), interactions, nil)

	recs, err := svc.GetRecommendations(context.Background(), "student@example.com", 5)
	require.NoError(t, err)
	require.Len(t, recs, 2)

	var engineer *entities.Recommendation
	for _, rec := range recs {
		if rec.Career.Name == "Software Engineer" {
			engineer = rec
		}
		assert.Equal(t, entities.RecommendationHybrid, rec.Type)
		require.NotNil(t, rec.CollaborativeScore)
	}
	require.NotNil(t, engineer)
	assert.InDelta(t, 0.7, *engineer.CollaborativeScore, 1e-9)
	// final = 0.6·0.45 + 0.4·0.7 = 0.55
	assert.InDelta(t, 55.0, engineer.MatchScore, 1e-9)
}

func TestGetRecommendations_MatchScoreMonotonicInContentScore(t *testing.T) {
	// Four candidates form a content-score ladder (growing skill overlap)
	// while the neighbor gives every one of them the same 0.7 rating, so
	// the collaborative term is fixed across the batch.
	catalog := []*entities.Career{
		{Name: "Analyst", RequiredSkills: []string{"sql"}},
		{Name: "Engineer", RequiredSkills: []string{"sql", "python"}},
		{Name: "Architect", RequiredSkills: []string{"sql", "python", "design"}},
		{Name: "Principal", RequiredSkills: []string{"sql", "python", "design", "mentoring"}},
	}
	profile := &entities.UserProfile{
		UserEmail: "student@example.com",
		Skills:    []string{"sql", "python", "design", "mentoring"},
	}
	interactions := &fakeInteractionRepo{
		interactions: []*entities.Interaction{
			interaction("student@example.com", "Engineer", entities.InteractionViewed, 0.3),
			interaction("student@example.com", "Engineer", entities.InteractionViewed, 0.3),
			interaction("student@example.com", "Engineer", entities.InteractionViewed, 0.3),
			interaction("neighbor@example.com", "Engineer", entities.InteractionSaved, 0.7),
			interaction("neighbor@example.com", "Analyst", entities.InteractionSaved, 0.7),
			interaction("neighbor@example.com", "Architect", entities.InteractionSaved, 0.7),
			interaction("neighbor@example.com", "Principal", entities.InteractionSaved, 0.7),
		},
	}
	svc := newService(newFakeProfileRepo(profile), newFakeCareerRepo(catalog...), interactions, nil)

	recs, err := svc.GetRecommendations(context.Background(), "student@example.com", 5)
	require.NoError(t, err)
	require.Len(t, recs, 4)

	// Results come back sorted by match score descending, and with the
	// collaborative term held fixed that order must follow content score:
	// a higher content score never yields a lower match score.
	assert.Equal(t, "Principal", recs[0].Career.Name)
	assert.Equal(t, "Analyst", recs[3].Career.Name)
	require.NotNil(t, recs[0].CollaborativeScore)
	for i := 1; i < len(recs); i++ {
		require.NotNil(t, recs[i].CollaborativeScore)
		assert.InDelta(t, *recs[0].CollaborativeScore, *recs[i].CollaborativeScore, 1e-9)
		assert.GreaterOrEqual(t, recs[i-1].ContentScore, recs[i].ContentScore)
		assert.GreaterOrEqual(t, recs[i-1].MatchScore, recs[i].MatchScore)
	}
}

func TestGetRecommendations_FewInteractionsStayContentOnly(t *testing.T) {
	interactions := &fakeInteractionRepo{
		interactions: []*entities.Interaction{
			interaction("student@example.com", "Software Engineer", entities.InteractionViewed, 0.3),
			interaction("student@example.com", "Doctor", entities.InteractionViewed, 0.3),
		},
	}
	svc := newService(newFakeProfileRepo(testProfile()), newFakeCareerRepo(testCatalog()...), interactions, nil)

	recs, err := svc.GetRecommendations(context.Background(), "student@example.com", 5)
	require.NoError(t, err)
	for _, rec := range recs {
		assert.NotEqual(t, entities.RecommendationHybrid, rec.Type)
		assert.Nil(t, rec.CollaborativeScore)
	}
}

func TestGetRecommendations_NoNeighborOverlapScoresNeutral(t *testing.T) {
	interactions := &fakeInteractionRepo{
		interactions: []*entities.Interaction{
			interaction("student@example.com", "Software Engineer", entities.InteractionViewed, 0.3),
			interaction("student@example.com", "Doctor", entities.InteractionViewed, 0.3),
			interaction("student@example.com", "Software Engineer", entities.InteractionSaved, 0.7),
		},
	}
	svc := newService(newFakeProfileRepo(testProfile()), newFakeCareerRepo(testCatalog()...), interactions, nil)

	recs, err := svc.GetRecommendations(context.Background(), "student@example.com", 5)
	require.NoError(t, err)
	for _, rec := range recs {
		require.NotNil(t, rec.CollaborativeScore)
		assert.Equal(t, services.NeutralCollaborativeScore, *rec.CollaborativeScore)
	}
}

func TestGetRecommendations_SemanticBlendWhenVectorsExist(t *testing.T) {
	catalog := testCatalog()
	catalog[0].SemanticVector = []float64{1, 0, 0}
	profile := testProfile()
	embedder := &fakeEmbedder{vectors: map[string][]float64{
		profile.EmbeddingText(): {1, 0, 0},
	}}
	svc := newService(newFakeProfileRepo(profile), newFakeCareerRepo(catalog...), &fakeInteractionRepo{}, embedder)

	recs, err := svc.GetRecommendations(context.Background(), "student@example.com", 5)
	require.NoError(t, err)
	require.Len(t, recs, 2)

	assert.Equal(t, "Software Engineer", recs[0].Career.Name)
	assert.Equal(t, entities.RecommendationSemanticHybrid, recs[0].Type)
	// content = 0.7·1.0 + 0.3·0.45 = 0.835
	assert.InDelta(t, 83.5, recs[0].MatchScore, 1e-9)
	// Doctor has no vector, so it stays on the keyword path.
	assert.Equal(t, entities.RecommendationKeywordMatch, recs[1].Type)
}

func TestGetRecommendations_EmbedderFailureDegradesToKeyword(t *testing.T) {
	catalog := testCatalog()
	catalog[0].SemanticVector = []float64{1, 0, 0}
	embedder := &fakeEmbedder{err: errors.New("embedding backend down")}
	svc := newService(newFakeProfileRepo(testProfile()), newFakeCareerRepo(catalog...), &fakeInteractionRepo{}, embedder)

	recs, err := svc.GetRecommendations(context.Background(), "student@example.com", 5)
	require.NoError(t, err)
	for _, rec := range recs {
		assert.Equal(t, entities.RecommendationKeywordMatch, rec.Type)
	}
}

func TestGetRecommendations_CollaborativeFaultIsolatedToNeutral(t *testing.T) {
	interactions := &fakeInteractionRepo{
		interactions: []*entities.Interaction{
			interaction("student@example.com", "Software Engineer", entities.InteractionViewed, 0.3),
			interaction("student@example.com", "Doctor", entities.InteractionViewed, 0.3),
			interaction("student@example.com", "Software Engineer", entities.InteractionSaved, 0.7),
			interaction("neighbor@example.com", "Software Engineer", entities.InteractionSaved, 0.7),
		},
		neighborScoresErr: errors.New("query timeout"),
	}
	svc := newService(newFakeProfileRepo(testProfile()), newFakeCareerRepo(testCatalog()...), interactions, nil)

	recs, err := svc.GetRecommendations(context.Background(), "student@example.com", 5)
	require.NoError(t, err)
	require.Len(t, recs, 2)
	for _, rec := range recs {
		require.NotNil(t, rec.CollaborativeScore)
		assert.Equal(t, services.NeutralCollaborativeScore, *rec.CollaborativeScore)
	}
}

func TestGetRecommendations_EmptyCatalog(t *testing.T) {
	svc := newService(newFakeProfileRepo(testProfile()), newFakeCareerRepo(), &fakeInteractionRepo{}, nil)

	recs, err := svc.GetRecommendations(context.Background(), "student@example.com", 5)
	require.NoError(t, err)
	assert.Empty(t, recs)
}

func TestGetRecommendations_TopKLimits(t *testing.T) {
	careers := make([]*entities.Career, 0, 12)
	for _, name := range []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j", "k", "l"} {
		careers = append(careers, &entities.Career{Name: name, RequiredSkills: []string{"python"}})
	}
	svc := newService(newFakeProfileRepo(testProfile()), newFakeCareerRepo(careers...), &fakeInteractionRepo{}, nil)

	recs, err := svc.GetRecommendations(context.Background(), "student@example.com", 5)
	require.NoError(t, err)
	assert.Len(t, recs, 5)

	// Requests above the ceiling are clamped to 10.
	recs, err = svc.GetRecommendations(context.Background(), "student@example.com", 50)
	require.NoError(t, err)
	assert.Len(t, recs, 10)

	_, err = svc.GetRecommendations(context.Background(), "student@example.com", -1)
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
}

func TestGetRecommendations_TiesKeepCatalogOrder(t *testing.T) {
	careers := []*entities.Career{
		{Name: "First", RequiredSkills: []string{"python"}},
		{Name: "Second", RequiredSkills: []string{"python"}},
	}
	svc := newService(newFakeProfileRepo(testProfile()), newFakeCareerRepo(careers...), &fakeInteractionRepo{}, nil)

	recs, err := svc.GetRecommendations(context.Background(), "student@example.com", 5)
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, "First", recs[0].Career.Name)
	assert.Equal(t, "Second", recs[1].Career.Name)
}
