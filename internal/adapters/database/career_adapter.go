package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/lib/pq"
	"github.com/navanish17/ai-career-advisor/internal/domain/entities"
	"github.com/navanish17/ai-career-advisor/internal/domain/repositories"
	"github.com/navanish17/ai-career-advisor/internal/infrastructure/clients/postgres"
	apperrors "github.com/navanish17/ai-career-advisor/pkg/errors"
)

var careerColumns = []interface{}{
	"id", "career_name", "career_category", "short_description",
	"required_skills", "interest_tags", "personality_fit",
	"min_education_level", "preferred_streams", "salary_range",
	"min_salary_lpa", "max_salary_lpa", "work_style", "difficulty_level",
	"growth_potential", "job_availability", "top_cities", "popularity_score",
	"semantic_vector", "created_at", "updated_at",
}

// CareerAdapter implements CareerRepository on the career_attributes table.
type CareerAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewCareerAdapter creates a new career adapter
func NewCareerAdapter(client *postgres.Client) repositories.CareerRepository {
	return &CareerAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// GetByName retrieves a career by its unique name
func (a *CareerAdapter) GetByName(ctx context.Context, name string) (*entities.Career, error) {
	query, args, err := a.db.Select(careerColumns...).
		From("career_attributes").
		Where(goqu.Ex{"career_name": name}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	career, err := a.scanCareer(a.client.DB().QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("career %q not found", name))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get career", err)
	}

	return career, nil
}

// List retrieves the full catalog in stable insertion order
func (a *CareerAdapter) List(ctx context.Context) ([]*entities.Career, error) {
	query, args, err := a.db.Select(careerColumns...).
		From("career_attributes").
		Order(goqu.I("created_at").Asc(), goqu.I("career_name").Asc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build list query", err)
	}

	return a.queryCareers(ctx, query, args...)
}

// ListByPopularity retrieves careers ordered by popularity descending
func (a *CareerAdapter) ListByPopularity(ctx context.Context, limit int) ([]*entities.Career, error) {
	ds := a.db.Select(careerColumns...).
		From("career_attributes").
		Order(goqu.I("popularity_score").Desc(), goqu.I("career_name").Asc())

	if limit > 0 {
		ds = ds.Limit(uint(limit))
	}

	query, args, err := ds.ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build popularity query", err)
	}

	return a.queryCareers(ctx, query, args...)
}

// SearchByName retrieves careers whose name or category matches the query
func (a *CareerAdapter) SearchByName(ctx context.Context, searchQuery string, limit int) ([]*entities.Career, error) {
	pattern := fmt.Sprintf("%%%s%%", searchQuery)

	ds := a.db.Select(careerColumns...).
		From("career_attributes").
		Where(goqu.Or(
			goqu.I("career_name").ILike(pattern),
			goqu.I("career_category").ILike(pattern),
		)).
		Order(goqu.I("popularity_score").Desc())

	if limit > 0 {
		ds = ds.Limit(uint(limit))
	}

	query, args, err := ds.ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build search query", err)
	}

	return a.queryCareers(ctx, query, args...)
}

// UpdateSemanticVector stores the embedding for a career
func (a *CareerAdapter) UpdateSemanticVector(ctx context.Context, name string, vector []float64) error {
	query, args, err := a.db.Update("career_attributes").
		Set(goqu.Record{
			"semantic_vector": pq.Array(vector),
			"updated_at":      time.Now(),
		}).
		Where(goqu.Ex{"career_name": name}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build vector update query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to update semantic vector", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewInternalError("failed to get rows affected", err)
	}

	if rowsAffected == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("career %q not found", name))
	}

	return nil
}

func (a *CareerAdapter) queryCareers(ctx context.Context, query string, args ...interface{}) ([]*entities.Career, error) {
	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to query careers", err)
	}
	defer rows.Close()

	var careers []*entities.Career
	for rows.Next() {
		career, err := a.scanCareer(rows)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan career", err)
		}
		careers = append(careers, career)
	}

	if err = rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("error iterating careers", err)
	}

	return careers, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (a *CareerAdapter) scanCareer(row rowScanner) (*entities.Career, error) {
	career := &entities.Career{}
	var category, description, education, salaryRange, workStyle, growth, availability sql.NullString
	var minSalary, maxSalary sql.NullFloat64

	err := row.Scan(
		&career.ID,
		&career.Name,
		&category,
		&description,
		pq.Array(&career.RequiredSkills),
		pq.Array(&career.InterestTags),
		pq.Array(&career.PersonalityFit),
		&education,
		pq.Array(&career.PreferredStreams),
		&salaryRange,
		&minSalary,
		&maxSalary,
		&workStyle,
		&career.DifficultyLevel,
		&growth,
		&availability,
		pq.Array(&career.TopCities),
		&career.PopularityScore,
		pq.Array(&career.SemanticVector),
		&career.CreatedAt,
		&career.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	career.Category = category.String
	career.ShortDescription = description.String
	career.MinEducation = entities.EducationLevel(education.String)
	career.SalaryRange = salaryRange.String
	career.WorkStyle = workStyle.String
	career.GrowthPotential = growth.String
	career.JobAvailability = availability.String
	if minSalary.Valid {
		career.MinSalaryLPA = &minSalary.Float64
	}
	if maxSalary.Valid {
		career.MaxSalaryLPA = &maxSalary.Float64
	}

	return career, nil
}
