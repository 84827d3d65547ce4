package search

import (
	"context"
	"fmt"

	"github.com/navanish17/ai-career-advisor/internal/domain/entities"
	"github.com/navanish17/ai-career-advisor/internal/domain/repositories"
	tsclient "github.com/navanish17/ai-career-advisor/internal/infrastructure/clients/typesense"
	"github.com/typesense/typesense-go/v2/typesense/api"
	"github.com/typesense/typesense-go/v2/typesense/api/pointer"
)

const collectionName = "careers"

// TypesenseAdapter implements career catalog search using Typesense.
// Documents carry only the fields needed to render a search result; the
// matching attributes stay in Postgres.
type TypesenseAdapter struct {
	client *tsclient.Client
}

var _ repositories.CareerSearchRepository = (*TypesenseAdapter)(nil)

// NewTypesenseAdapter creates a new Typesense adapter
func NewTypesenseAdapter(client *tsclient.Client) *TypesenseAdapter {
	return &TypesenseAdapter{client: client}
}

// InitSchema ensures the careers collection exists
func (a *TypesenseAdapter) InitSchema(ctx context.Context) error {
	_, err := a.client.Client().Collection(collectionName).Retrieve(ctx)
	if err == nil {
		return nil
	}

	schema := &api.CollectionSchema{
		Name: collectionName,
		Fields: []api.Field{
			{Name: "id", Type: "string"},
			{Name: "career_name", Type: "string"},
			{Name: "career_category", Type: "string", Facet: pointer.True(), Optional: pointer.True()},
			{Name: "short_description", Type: "string", Optional: pointer.True()},
			{Name: "required_skills", Type: "string[]", Optional: pointer.True()},
			{Name: "interest_tags", Type: "string[]", Optional: pointer.True()},
			{Name: "salary_range", Type: "string", Optional: pointer.True()},
			{Name: "popularity_score", Type: "float"},
		},
		DefaultSortingField: pointer.String("popularity_score"),
	}

	_, err = a.client.Client().Collections().Create(ctx, schema)
	if err != nil {
		return fmt.Errorf("failed to create typesense collection: %w", err)
	}

	return nil
}

// Index upserts a career document into the index
func (a *TypesenseAdapter) Index(ctx context.Context, career *entities.Career) error {
	document := map[string]interface{}{
		"id":                career.ID,
		"career_name":       career.Name,
		"career_category":   career.Category,
		"short_description": career.ShortDescription,
		"required_skills":   career.RequiredSkills,
		"interest_tags":     career.InterestTags,
		"salary_range":      career.SalaryRange,
		"popularity_score":  career.PopularityScore,
	}

	_, err := a.client.Client().Collection(collectionName).Documents().Upsert(ctx, document)
	if err != nil {
		return fmt.Errorf("failed to index career: %w", err)
	}

	return nil
}

// Search performs keyword search over the indexed catalog
func (a *TypesenseAdapter) Search(ctx context.Context, query string, limit int) ([]*entities.Career, error) {
	searchParams := &api.SearchCollectionParams{
		Q:       pointer.String(query),
		QueryBy: pointer.String("career_name,career_category,required_skills,interest_tags"),
		SortBy:  pointer.String("_text_match:desc,popularity_score:desc"),
		PerPage: pointer.Int(limit),
	}

	result, err := a.client.Client().Collection(collectionName).Documents().Search(ctx, searchParams)
	if err != nil {
		return nil, fmt.Errorf("failed to search careers: %w", err)
	}

	careers := []*entities.Career{}
	if result.Hits == nil {
		return careers, nil
	}

	for _, hit := range *result.Hits {
		if hit.Document == nil {
			continue
		}
		careers = append(careers, careerFromDocument(*hit.Document))
	}

	return careers, nil
}

// Delete removes a career from the index
func (a *TypesenseAdapter) Delete(ctx context.Context, id string) error {
	_, err := a.client.Client().Collection(collectionName).Document(id).Delete(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete career from index: %w", err)
	}
	return nil
}

func careerFromDocument(doc map[string]interface{}) *entities.Career {
	career := &entities.Career{}

	if val, ok := doc["id"].(string); ok {
		career.ID = val
	}
	if val, ok := doc["career_name"].(string); ok {
		career.Name = val
	}
	if val, ok := doc["career_category"].(string); ok {
		career.Category = val
	}
	if val, ok := doc["short_description"].(string); ok {
		career.ShortDescription = val
	}
	if val, ok := doc["salary_range"].(string); ok {
		career.SalaryRange = val
	}
	if val, ok := doc["popularity_score"].(float64); ok {
		career.PopularityScore = val
	}
	career.RequiredSkills = stringSlice(doc["required_skills"])
	career.InterestTags = stringSlice(doc["interest_tags"])

	return career
}

func stringSlice(val interface{}) []string {
	items, ok := val.([]interface{})
	if !ok {
		return nil
	}
	result := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			result = append(result, s)
		}
	}
	return result
}
