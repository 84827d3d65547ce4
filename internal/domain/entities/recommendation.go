package entities

// RecommendationType identifies which scoring path produced a result.
type RecommendationType string

const (
	// RecommendationPopularity is the cold-start fallback (no profile).
	RecommendationPopularity RecommendationType = "popularity"

	// RecommendationKeywordMatch is pure attribute-overlap content scoring.
	RecommendationKeywordMatch RecommendationType = "keyword_match"

	// RecommendationSemanticHybrid blends cosine similarity of semantic
	// vectors with the keyword content score.
	RecommendationSemanticHybrid RecommendationType = "semantic_hybrid"

	// RecommendationHybrid blends the content score with the collaborative
	// neighbor score.
	RecommendationHybrid RecommendationType = "hybrid"
)

// Recommendation is one ranked career for a user. MatchScore is 0-100
// rounded to one decimal; the component scores stay in [0,1].
type Recommendation struct {
	Career             *Career            `json:"career"`
	MatchScore         float64            `json:"match_score"`
	ContentScore       float64            `json:"content_score"`
	CollaborativeScore *float64           `json:"collaborative_score,omitempty"`
	Type               RecommendationType `json:"recommendation_type"`
}

// SimilarCareer pairs a career with its attribute similarity to a target
// career, on a 0-100 scale rounded to one decimal.
type SimilarCareer struct {
	Career          *Career `json:"career"`
	SimilarityScore float64 `json:"similarity_score"`
}
