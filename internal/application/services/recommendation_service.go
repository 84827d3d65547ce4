package services

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/rs/zerolog/log"

	"github.com/navanish17/ai-career-advisor/internal/domain/entities"
	"github.com/navanish17/ai-career-advisor/internal/domain/providers"
	"github.com/navanish17/ai-career-advisor/internal/domain/repositories"
	apperrors "github.com/navanish17/ai-career-advisor/pkg/errors"
)

// RecommenderConfig holds the tunable constants of the hybrid ranker.
// Weight pairs must each sum to 1.0.
type RecommenderConfig struct {
	// ContentWeight and CollaborativeWeight blend the final score when the
	// user has enough history.
	ContentWeight       float64
	CollaborativeWeight float64

	// SemanticWeight and KeywordWeight blend cosine similarity with the
	// keyword content score when vectors exist on both sides.
	SemanticWeight float64
	KeywordWeight  float64

	// MinInteractionsForCollab is the history size at which collaborative
	// scoring switches on.
	MinInteractionsForCollab int

	// DefaultTopK applies when the caller does not request a count;
	// MaxTopK is the hard ceiling. DefaultSimilarK is the uncounted
	// default for the similar-career finder.
	DefaultTopK     int
	MaxTopK         int
	DefaultSimilarK int

	Content ContentWeights
}

// DefaultRecommenderConfig returns the tuned production defaults.
func DefaultRecommenderConfig() RecommenderConfig {
	return RecommenderConfig{
		ContentWeight:            0.6,
		CollaborativeWeight:      0.4,
		SemanticWeight:           0.7,
		KeywordWeight:            0.3,
		MinInteractionsForCollab: 3,
		DefaultTopK:              5,
		MaxTopK:                  10,
		DefaultSimilarK:          3,
		Content:                  DefaultContentWeights(),
	}
}

// RecommendationService orchestrates the hybrid career ranker. Each request
// works on a snapshot read once up front (profile, catalog, history), so
// scoring itself touches no shared mutable state.
type RecommendationService struct {
	profiles     repositories.ProfileRepository
	careers      repositories.CareerRepository
	interactions repositories.InteractionRepository
	similarity   *SimilarityEngine
	collab       *CollaborativeScorer
	embedder     providers.EmbeddingProvider
	cfg          RecommenderConfig
}

// NewRecommendationService creates the ranker. embedder may be nil, in
// which case every request takes the keyword-only path.
func NewRecommendationService(
	profiles repositories.ProfileRepository,
	careers repositories.CareerRepository,
	interactions repositories.InteractionRepository,
	embedder providers.EmbeddingProvider,
	cfg RecommenderConfig,
) *RecommendationService {
	return &RecommendationService{
		profiles:     profiles,
		careers:      careers,
		interactions: interactions,
		similarity:   NewSimilarityEngine(cfg.Content),
		collab:       NewCollaborativeScorer(interactions),
		embedder:     embedder,
		cfg:          cfg,
	}
}

// GetRecommendations returns the top-K careers for a user, ranked by the
// blended match score. Missing data degrades (cold start, keyword-only,
// neutral collaborative); only malformed input is an error.
func (s *RecommendationService) GetRecommendations(ctx context.Context, userEmail string, topK int) ([]*entities.Recommendation, error) {
	if userEmail == "" {
		return nil, apperrors.NewValidationError("user email is required")
	}
	if topK < 0 {
		return nil, apperrors.NewValidationError(fmt.Sprintf("top_k must be positive, got %d", topK))
	}
	if topK == 0 {
		topK = s.cfg.DefaultTopK
	}
	if topK > s.cfg.MaxTopK {
		topK = s.cfg.MaxTopK
	}

	profile, err := s.profiles.GetByEmail(ctx, userEmail)
	if err != nil {
		if apperrors.IsNotFound(err) {
			log.Warn().Str("user_email", userEmail).Msg("no preference profile, falling back to popularity ranking")
			return s.popularCareers(ctx, topK)
		}
		return nil, err
	}

	careers, err := s.careers.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(careers) == 0 {
		log.Warn().Msg("career catalog is empty")
		return []*entities.Recommendation{}, nil
	}

	userVector := s.userVector(ctx, profile)

	count, err := s.interactions.CountByUser(ctx, userEmail)
	if err != nil {
		log.Warn().Err(err).Str("user_email", userEmail).Msg("interaction count unavailable, skipping collaborative scoring")
		count = 0
	}
	useCollaborative := count >= s.cfg.MinInteractionsForCollab

	var neighbors []string
	if useCollaborative {
		neighbors, err = s.collab.BuildNeighborhood(ctx, userEmail)
		if err != nil {
			log.Warn().Err(err).Str("user_email", userEmail).Msg("neighborhood lookup failed, candidates score neutral")
			neighbors = nil
		}
	}

	recommendations := make([]*entities.Recommendation, 0, len(careers))
	for _, career := range careers {
		recommendations = append(recommendations, s.scoreCandidate(ctx, profile, career, userVector, useCollaborative, neighbors))
	}

	// Stable sort keeps catalog order on ties.
	sort.SliceStable(recommendations, func(i, j int) bool {
		return recommendations[i].MatchScore > recommendations[j].MatchScore
	})

	if len(recommendations) > topK {
		recommendations = recommendations[:topK]
	}

	log.Info().
		Str("user_email", userEmail).
		Int("count", len(recommendations)).
		Bool("collaborative", useCollaborative).
		Bool("semantic", userVector != nil).
		Msg("generated recommendations")

	return recommendations, nil
}

// scoreCandidate computes the blended score for one career. A fault while
// scoring is contained here: the candidate gets a neutral contribution and
// the batch carries on.
func (s *RecommendationService) scoreCandidate(
	ctx context.Context,
	profile *entities.UserProfile,
	career *entities.Career,
	userVector []float64,
	useCollaborative bool,
	neighbors []string,
) (rec *entities.Recommendation) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Str("career", career.Name).Msg("scoring fault, assigning neutral score")
			rec = s.neutralCandidate(career, useCollaborative)
		}
	}()

	// Resolve the content strategy once per candidate: semantic blending
	// only when both sides carry a vector.
	contentScore, recType := s.contentScore(profile, career, userVector)

	final := contentScore
	var collabScore *float64
	if useCollaborative {
		score, err := s.collab.Score(ctx, neighbors, career.Name)
		if err != nil {
			log.Warn().Err(err).Str("career", career.Name).Msg("collaborative score unavailable, using neutral")
			score = NeutralCollaborativeScore
		}
		collabScore = &score
		final = s.cfg.ContentWeight*contentScore + s.cfg.CollaborativeWeight*score
		recType = entities.RecommendationHybrid
	}

	return &entities.Recommendation{
		Career:             career,
		MatchScore:         roundScore(clamp01(final) * 100),
		ContentScore:       contentScore,
		CollaborativeScore: collabScore,
		Type:               recType,
	}
}

func (s *RecommendationService) contentScore(profile *entities.UserProfile, career *entities.Career, userVector []float64) (float64, entities.RecommendationType) {
	keyword := s.similarity.ContentScore(profile, career)
	if len(userVector) == 0 || !career.HasVector() {
		return keyword, entities.RecommendationKeywordMatch
	}

	cosine := s.similarity.Cosine(userVector, career.SemanticVector)
	blended := clamp01(s.cfg.SemanticWeight*cosine + s.cfg.KeywordWeight*keyword)
	return blended, entities.RecommendationSemanticHybrid
}

func (s *RecommendationService) neutralCandidate(career *entities.Career, useCollaborative bool) *entities.Recommendation {
	rec := &entities.Recommendation{
		Career:       career,
		ContentScore: NeutralCollaborativeScore,
		Type:         entities.RecommendationKeywordMatch,
	}
	final := rec.ContentScore
	if useCollaborative {
		score := NeutralCollaborativeScore
		rec.CollaborativeScore = &score
		final = s.cfg.ContentWeight*rec.ContentScore + s.cfg.CollaborativeWeight*score
		rec.Type = entities.RecommendationHybrid
	}
	rec.MatchScore = roundScore(final * 100)
	return rec
}

// userVector generates the user's semantic vector, returning nil on any
// failure so the request degrades to keyword matching.
func (s *RecommendationService) userVector(ctx context.Context, profile *entities.UserProfile) []float64 {
	if s.embedder == nil {
		return nil
	}
	vector, err := s.embedder.Embed(ctx, profile.EmbeddingText())
	if err != nil {
		log.Warn().Err(err).Str("user_email", profile.UserEmail).Msg("user embedding unavailable, degrading to keyword matching")
		return nil
	}
	return vector
}

// popularCareers is the cold-start fallback: rank purely by popularity.
func (s *RecommendationService) popularCareers(ctx context.Context, topK int) ([]*entities.Recommendation, error) {
	careers, err := s.careers.ListByPopularity(ctx, topK)
	if err != nil {
		return nil, err
	}

	recommendations := make([]*entities.Recommendation, 0, len(careers))
	for _, career := range careers {
		recommendations = append(recommendations, &entities.Recommendation{
			Career:     career,
			MatchScore: roundScore(clamp01(career.PopularityScore) * 100),
			Type:       entities.RecommendationPopularity,
		})
	}
	return recommendations, nil
}

// roundScore rounds a 0-100 score to one decimal place.
func roundScore(v float64) float64 {
	return math.Round(v*10) / 10
}
