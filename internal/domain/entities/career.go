package entities

import (
	"strings"
	"time"
)

// Career describes one entry of the career catalog together with the
// attributes used for content-based matching. The catalog is owned by the
// seeding pipeline; the recommendation engine only ever reads it.
type Career struct {
	ID               string         `json:"id"`
	Name             string         `json:"career_name"`
	Category         string         `json:"career_category,omitempty"`
	ShortDescription string         `json:"short_description,omitempty"`
	RequiredSkills   []string       `json:"required_skills"`
	InterestTags     []string       `json:"interest_tags"`
	PersonalityFit   []string       `json:"personality_fit"`
	MinEducation     EducationLevel `json:"min_education,omitempty"`
	PreferredStreams []string       `json:"preferred_streams,omitempty"`
	SalaryRange      string         `json:"salary_range,omitempty"`
	MinSalaryLPA     *float64       `json:"min_salary_lpa,omitempty"`
	MaxSalaryLPA     *float64       `json:"max_salary_lpa,omitempty"`
	WorkStyle        string         `json:"work_style,omitempty"`
	DifficultyLevel  int            `json:"difficulty_level"`
	GrowthPotential  string         `json:"growth_potential,omitempty"`
	JobAvailability  string         `json:"job_availability,omitempty"`
	TopCities        []string       `json:"top_cities,omitempty"`
	PopularityScore  float64        `json:"popularity_score"`
	SemanticVector   []float64      `json:"-"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
}

// AttributeVector returns the union of skills, interest tags and
// personality fit used for career-to-career similarity.
func (c *Career) AttributeVector() []string {
	vector := make([]string, 0, len(c.RequiredSkills)+len(c.InterestTags)+len(c.PersonalityFit))
	vector = append(vector, c.RequiredSkills...)
	vector = append(vector, c.InterestTags...)
	vector = append(vector, c.PersonalityFit...)
	return vector
}

// HasVector reports whether a semantic embedding is stored for the career.
func (c *Career) HasVector() bool {
	return len(c.SemanticVector) > 0
}

// EmbeddingText renders the career as the text used when generating its
// semantic vector.
func (c *Career) EmbeddingText() string {
	parts := []string{c.Name}
	if c.Category != "" {
		parts = append(parts, c.Category)
	}
	if c.ShortDescription != "" {
		parts = append(parts, c.ShortDescription)
	}
	if len(c.RequiredSkills) > 0 {
		parts = append(parts, "Skills: "+strings.Join(c.RequiredSkills, ", "))
	}
	if len(c.InterestTags) > 0 {
		parts = append(parts, "Interests: "+strings.Join(c.InterestTags, ", "))
	}
	return strings.Join(parts, ". ")
}
