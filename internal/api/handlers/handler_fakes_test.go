package handlers_test

import (
	"context"
	"fmt"

	"github.com/navanish17/ai-career-advisor/internal/domain/entities"
	apperrors "github.com/navanish17/ai-career-advisor/pkg/errors"
)

// In-memory repositories backing the real services under the handlers.

type memProfileRepo struct {
	profiles map[string]*entities.UserProfile
}

func newMemProfileRepo() *memProfileRepo {
	return &memProfileRepo{profiles: map[string]*entities.UserProfile{}}
}

func (r *memProfileRepo) GetByEmail(_ context.Context, userEmail string) (*entities.UserProfile, error) {
	profile, ok := r.profiles[userEmail]
	if !ok {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("profile for %s not found", userEmail))
	}
	copied := *profile
	return &copied, nil
}

func (r *memProfileRepo) Create(_ context.Context, profile *entities.UserProfile) error {
	copied := *profile
	r.profiles[profile.UserEmail] = &copied
	return nil
}

func (r *memProfileRepo) Update(_ context.Context, profile *entities.UserProfile) error {
	if _, ok := r.profiles[profile.UserEmail]; !ok {
		return apperrors.NewNotFoundError(fmt.Sprintf("profile for %s not found", profile.UserEmail))
	}
	copied := *profile
	r.profiles[profile.UserEmail] = &copied
	return nil
}

type memCareerRepo struct {
	careers []*entities.Career
}

func (r *memCareerRepo) GetByName(_ context.Context, name string) (*entities.Career, error) {
	for _, career := range r.careers {
		if career.Name == name {
			return career, nil
		}
	}
	return nil, apperrors.NewNotFoundError(fmt.Sprintf("career %q not found", name))
}

func (r *memCareerRepo) List(_ context.Context) ([]*entities.Career, error) {
	return r.careers, nil
}

func (r *memCareerRepo) ListByPopularity(_ context.Context, limit int) ([]*entities.Career, error) {
	if limit > 0 && limit < len(r.careers) {
		return r.careers[:limit], nil
	}
	return r.careers, nil
}

func (r *memCareerRepo) SearchByName(_ context.Context, query string, _ int) ([]*entities.Career, error) {
	var matched []*entities.Career
	for _, career := range r.careers {
		if career.Name == query || career.Category == query {
			matched = append(matched, career)
		}
	}
	return matched, nil
}

func (r *memCareerRepo) UpdateSemanticVector(_ context.Context, name string, vector []float64) error {
	for _, career := range r.careers {
		if career.Name == name {
			career.SemanticVector = vector
			return nil
		}
	}
	return apperrors.NewNotFoundError(fmt.Sprintf("career %q not found", name))
}

type memInteractionRepo struct {
	interactions []*entities.Interaction
}

func (r *memInteractionRepo) Create(_ context.Context, interaction *entities.Interaction) error {
	r.interactions = append(r.interactions, interaction)
	return nil
}

func (r *memInteractionRepo) ListByUser(_ context.Context, userEmail string) ([]*entities.Interaction, error) {
	var result []*entities.Interaction
	for _, i := range r.interactions {
		if i.UserEmail == userEmail {
			result = append(result, i)
		}
	}
	return result, nil
}

func (r *memInteractionRepo) CountByUser(_ context.Context, userEmail string) (int, error) {
	count := 0
	for _, i := range r.interactions {
		if i.UserEmail == userEmail {
			count++
		}
	}
	return count, nil
}

func (r *memInteractionRepo) ListNeighborEmails(_ context.Context, careerNames []string, excludeEmail string) ([]string, error) {
	names := map[string]bool{}
	for _, n := range careerNames {
		names[n] = true
	}
	seen := map[string]bool{}
	var emails []string
	for _, i := range r.interactions {
		if i.UserEmail == excludeEmail || !names[i.CareerName] || seen[i.UserEmail] {
			continue
		}
		seen[i.UserEmail] = true
		emails = append(emails, i.UserEmail)
	}
	return emails, nil
}

func (r *memInteractionRepo) ListNeighborScores(_ context.Context, userEmails []string, careerName string) ([]float64, error) {
	users := map[string]bool{}
	for _, e := range userEmails {
		users[e] = true
	}
	var scores []float64
	for _, i := range r.interactions {
		if users[i.UserEmail] && i.CareerName == careerName {
			scores = append(scores, i.Score)
		}
	}
	return scores, nil
}
