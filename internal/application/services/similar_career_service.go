package services

import (
	"context"
	"sort"

	"github.com/navanish17/ai-career-advisor/internal/domain/entities"
	"github.com/navanish17/ai-career-advisor/internal/domain/repositories"
	apperrors "github.com/navanish17/ai-career-advisor/pkg/errors"
)

// SimilarCareerService finds careers with overlapping attribute profiles.
type SimilarCareerService struct {
	careers    repositories.CareerRepository
	similarity *SimilarityEngine
	defaultK   int
	maxK       int
}

// NewSimilarCareerService creates a similar-career finder.
func NewSimilarCareerService(careers repositories.CareerRepository, cfg RecommenderConfig) *SimilarCareerService {
	return &SimilarCareerService{
		careers:    careers,
		similarity: NewSimilarityEngine(cfg.Content),
		defaultK:   cfg.DefaultSimilarK,
		maxK:       cfg.MaxTopK,
	}
}

// FindSimilar ranks every other career by Jaccard similarity of attribute
// vectors against the target. An unknown target yields an empty list, not
// an error. Scores are 0-100 rounded to one decimal; ties keep catalog
// order.
func (s *SimilarCareerService) FindSimilar(ctx context.Context, careerName string, topK int) ([]*entities.SimilarCareer, error) {
	if careerName == "" {
		return nil, apperrors.NewValidationError("career name is required")
	}
	if topK < 0 {
		return nil, apperrors.NewValidationError("top_k must be positive")
	}
	if topK == 0 {
		topK = s.defaultK
	}
	if topK > s.maxK {
		topK = s.maxK
	}

	target, err := s.careers.GetByName(ctx, careerName)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return []*entities.SimilarCareer{}, nil
		}
		return nil, err
	}

	catalog, err := s.careers.List(ctx)
	if err != nil {
		return nil, err
	}

	targetVector := target.AttributeVector()
	similar := make([]*entities.SimilarCareer, 0, len(catalog))
	for _, career := range catalog {
		if career.Name == target.Name {
			continue
		}
		similar = append(similar, &entities.SimilarCareer{
			Career:          career,
			SimilarityScore: roundScore(s.similarity.Jaccard(targetVector, career.AttributeVector()) * 100),
		})
	}

	sort.SliceStable(similar, func(i, j int) bool {
		return similar[i].SimilarityScore > similar[j].SimilarityScore
	})

	if len(similar) > topK {
		similar = similar[:topK]
	}
	return similar, nil
}
