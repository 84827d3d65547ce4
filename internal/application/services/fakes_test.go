package services_test

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/navanish17/ai-career-advisor/internal/domain/entities"
	apperrors "github.com/navanish17/ai-career-advisor/pkg/errors"
)

// In-memory fakes for the repository and provider ports.

type fakeProfileRepo struct {
	profiles    map[string]*entities.UserProfile
	createCalls int
	updateCalls int
}

func newFakeProfileRepo(profiles ...*entities.UserProfile) *fakeProfileRepo {
	repo := &fakeProfileRepo{profiles: make(map[string]*entities.UserProfile)}
	for _, p := range profiles {
		repo.profiles[p.UserEmail] = p
	}
	return repo
}

func (r *fakeProfileRepo) GetByEmail(_ context.Context, userEmail string) (*entities.UserProfile, error) {
	profile, ok := r.profiles[userEmail]
	if !ok {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("profile for %s not found", userEmail))
	}
	clone := *profile
	return &clone, nil
}

func (r *fakeProfileRepo) Create(_ context.Context, profile *entities.UserProfile) error {
	r.createCalls++
	clone := *profile
	r.profiles[profile.UserEmail] = &clone
	return nil
}

func (r *fakeProfileRepo) Update(_ context.Context, profile *entities.UserProfile) error {
	r.updateCalls++
	clone := *profile
	r.profiles[profile.UserEmail] = &clone
	return nil
}

type fakeCareerRepo struct {
	careers []*entities.Career

	mu      sync.Mutex
	vectors map[string][]float64
}

func newFakeCareerRepo(careers ...*entities.Career) *fakeCareerRepo {
	return &fakeCareerRepo{careers: careers, vectors: make(map[string][]float64)}
}

func (r *fakeCareerRepo) GetByName(_ context.Context, name string) (*entities.Career, error) {
	for _, career := range r.careers {
		if career.Name == name {
			return career, nil
		}
	}
	return nil, apperrors.NewNotFoundError(fmt.Sprintf("career %s not found", name))
}

func (r *fakeCareerRepo) List(_ context.Context) ([]*entities.Career, error) {
	return r.careers, nil
}

func (r *fakeCareerRepo) ListByPopularity(_ context.Context, limit int) ([]*entities.Career, error) {
	sorted := make([]*entities.Career, len(r.careers))
	copy(sorted, r.careers)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].PopularityScore > sorted[j].PopularityScore
	})
	if limit > 0 && len(sorted) > limit {
		sorted = sorted[:limit]
	}
	return sorted, nil
}

func (r *fakeCareerRepo) SearchByName(_ context.Context, query string, limit int) ([]*entities.Career, error) {
	var matches []*entities.Career
	for _, career := range r.careers {
		if strings.Contains(strings.ToLower(career.Name), strings.ToLower(query)) {
			matches = append(matches, career)
		}
		if limit > 0 && len(matches) == limit {
			break
		}
	}
	return matches, nil
}

func (r *fakeCareerRepo) UpdateSemanticVector(_ context.Context, name string, vector []float64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.vectors[name] = vector
	return nil
}

type fakeInteractionRepo struct {
	interactions       []*entities.Interaction
	createErr          error
	neighborScoresErr  error
	neighborEmailsErr  error
	neighborScoreCalls int
}

func (r *fakeInteractionRepo) Create(_ context.Context, interaction *entities.Interaction) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.interactions = append(r.interactions, interaction)
	return nil
}

func (r *fakeInteractionRepo) ListByUser(_ context.Context, userEmail string) ([]*entities.Interaction, error) {
	var result []*entities.Interaction
	for _, i := range r.interactions {
		if i.UserEmail == userEmail {
			result = append(result, i)
		}
	}
	return result, nil
}

func (r *fakeInteractionRepo) CountByUser(ctx context.Context, userEmail string) (int, error) {
	list, err := r.ListByUser(ctx, userEmail)
	return len(list), err
}

func (r *fakeInteractionRepo) ListNeighborEmails(_ context.Context, careerNames []string, excludeEmail string) ([]string, error) {
	if r.neighborEmailsErr != nil {
		return nil, r.neighborEmailsErr
	}
	careerSet := make(map[string]struct{}, len(careerNames))
	for _, name := range careerNames {
		careerSet[name] = struct{}{}
	}
	seen := make(map[string]struct{})
	var emails []string
	for _, i := range r.interactions {
		if i.UserEmail == excludeEmail {
			continue
		}
		if _, ok := careerSet[i.CareerName]; !ok {
			continue
		}
		if _, ok := seen[i.UserEmail]; ok {
			continue
		}
		seen[i.UserEmail] = struct{}{}
		emails = append(emails, i.UserEmail)
	}
	return emails, nil
}

func (r *fakeInteractionRepo) ListNeighborScores(_ context.Context, userEmails []string, careerName string) ([]float64, error) {
	r.neighborScoreCalls++
	if r.neighborScoresErr != nil {
		return nil, r.neighborScoresErr
	}
	emailSet := make(map[string]struct{}, len(userEmails))
	for _, email := range userEmails {
		emailSet[email] = struct{}{}
	}
	var scores []float64
	for _, i := range r.interactions {
		if i.CareerName != careerName {
			continue
		}
		if _, ok := emailSet[i.UserEmail]; !ok {
			continue
		}
		scores = append(scores, i.Score)
	}
	return scores, nil
}

type fakeEmbedder struct {
	vectors map[string][]float64
	err     error
}

func (e *fakeEmbedder) Embed(_ context.Context, text string) ([]float64, error) {
	if e.err != nil {
		return nil, e.err
	}
	if vector, ok := e.vectors[text]; ok {
		return vector, nil
	}
	return []float64{1, 0, 0}, nil
}

type fakeEventBus struct {
	published  []*entities.InteractionEvent
	publishErr error
}

func (b *fakeEventBus) Publish(_ context.Context, _ string, event *entities.InteractionEvent) error {
	if b.publishErr != nil {
		return b.publishErr
	}
	b.published = append(b.published, event)
	return nil
}

func (b *fakeEventBus) Subscribe(_ context.Context, _ string) (<-chan *entities.InteractionEvent, error) {
	ch := make(chan *entities.InteractionEvent)
	close(ch)
	return ch, nil
}

func (b *fakeEventBus) Close() error { return nil }
