package services

import (
	"math"
	"strings"

	"github.com/navanish17/ai-career-advisor/internal/domain/entities"
)

// ContentWeights holds the weights of the content score components. The
// weights must sum to 1.0.
type ContentWeights struct {
	Skills    float64
	Interests float64
	Education float64
	WorkStyle float64
}

// DefaultContentWeights returns the tuned production weights.
func DefaultContentWeights() ContentWeights {
	return ContentWeights{
		Skills:    0.50,
		Interests: 0.30,
		Education: 0.15,
		WorkStyle: 0.05,
	}
}

// SimilarityEngine computes the pure similarity primitives used by the
// recommendation pipeline: set overlap, education compatibility, work-style
// match and vector cosine. All methods are side-effect free and safe for
// concurrent use.
type SimilarityEngine struct {
	weights ContentWeights
}

// NewSimilarityEngine creates an engine with the given content weights.
func NewSimilarityEngine(weights ContentWeights) *SimilarityEngine {
	return &SimilarityEngine{weights: weights}
}

// Jaccard computes |A∩B| / |A∪B| over case-insensitive, trimmed sets.
// Either side empty yields 0.0.
func (e *SimilarityEngine) Jaccard(a, b []string) float64 {
	setA := normalizeSet(a)
	setB := normalizeSet(b)
	if len(setA) == 0 || len(setB) == 0 {
		return 0.0
	}

	intersection := 0
	for item := range setA {
		if _, ok := setB[item]; ok {
			intersection++
		}
	}
	union := len(setA) + len(setB) - intersection
	if union == 0 {
		return 0.0
	}
	return float64(intersection) / float64(union)
}

// EducationCompatibility scores how well the user's education meets the
// career's minimum requirement. Missing data on either side is assumed
// compatible rather than penalized.
func (e *SimilarityEngine) EducationCompatibility(user, career entities.EducationLevel) float64 {
	userRank := user.Rank()
	careerRank := career.Rank()
	if userRank == 0 || careerRank == 0 {
		return 1.0
	}

	switch {
	case userRank >= careerRank:
		return 1.0
	case userRank == careerRank-1:
		return 0.7
	default:
		return 0.3
	}
}

// WorkStyleMatch returns 1.0 when either side is unset or both agree,
// 0.5 otherwise.
func (e *SimilarityEngine) WorkStyleMatch(userPref, careerStyle string) float64 {
	if userPref == "" || careerStyle == "" || strings.EqualFold(userPref, careerStyle) {
		return 1.0
	}
	return 0.5
}

// ContentScore computes the weighted content-based similarity between a
// profile and a career, clamped to [0,1].
func (e *SimilarityEngine) ContentScore(profile *entities.UserProfile, career *entities.Career) float64 {
	score := e.weights.Skills*e.Jaccard(profile.Skills, career.RequiredSkills) +
		e.weights.Interests*e.Jaccard(profile.Interests, career.InterestTags) +
		e.weights.Education*e.EducationCompatibility(profile.EducationLevel, career.MinEducation) +
		e.weights.WorkStyle*e.WorkStyleMatch(profile.PreferredWorkStyle, career.WorkStyle)
	return clamp01(score)
}

// Cosine computes the cosine similarity of two vectors. Absent, zero-norm
// or mismatched-length vectors yield 0.0 rather than an error.
func (e *SimilarityEngine) Cosine(a, b []float64) float64 {
	if len(a) == 0 || len(b) == 0 || len(a) != len(b) {
		return 0.0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0.0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

func normalizeSet(items []string) map[string]struct{} {
	set := make(map[string]struct{}, len(items))
	for _, item := range items {
		normalized := strings.ToLower(strings.TrimSpace(item))
		if normalized == "" {
			continue
		}
		set[normalized] = struct{}{}
	}
	return set
}

func clamp01(v float64) float64 {
	if v < 0.0 {
		return 0.0
	}
	if v > 1.0 {
		return 1.0
	}
	return v
}
