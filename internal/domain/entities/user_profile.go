package entities

import (
	"fmt"
	"strings"
	"time"
)

// EducationLevel is an ordinal education qualification. Levels compare by
// rank, so "graduate" satisfies a "12th" requirement but not the reverse.
type EducationLevel string

const (
	EducationTenth        EducationLevel = "10th"
	EducationTwelfth      EducationLevel = "12th"
	EducationGraduate     EducationLevel = "graduate"
	EducationPostgraduate EducationLevel = "postgraduate"
	EducationPhD          EducationLevel = "phd"
)

// educationRanks maps levels (including common degree aliases) to their
// ordinal rank. Unknown non-empty values fall back to rank 2 ("12th").
var educationRanks = map[string]int{
	"10th":         1,
	"12th":         2,
	"graduate":     3,
	"diploma":      3,
	"btech":        3,
	"bca":          3,
	"postgraduate": 4,
	"mtech":        4,
	"mba":          4,
	"mca":          4,
	"phd":          5,
}

// Rank returns the ordinal rank of the level, or 0 when unset.
func (l EducationLevel) Rank() int {
	if l == "" {
		return 0
	}
	if rank, ok := educationRanks[strings.ToLower(string(l))]; ok {
		return rank
	}
	return 2
}

// UserProfile holds the preferences a student submitted through the career
// quiz. It is the only input to content-based scoring; raw quiz payloads are
// converted into this record at the API boundary and never passed further.
type UserProfile struct {
	ID                       string         `json:"id"`
	UserEmail                string         `json:"user_email"`
	Skills                   []string       `json:"skills"`
	Interests                []string       `json:"interests"`
	PersonalityTraits        []string       `json:"personality_traits"`
	EducationLevel           EducationLevel `json:"education_level,omitempty"`
	CurrentStream            string         `json:"current_stream,omitempty"`
	Percentage               *float64       `json:"percentage,omitempty"`
	PreferredWorkStyle       string         `json:"preferred_work_style,omitempty"`
	PreferredSalaryRange     string         `json:"preferred_salary_range,omitempty"`
	PreferredLocation        string         `json:"preferred_location,omitempty"`
	BudgetConstraint         string         `json:"budget_constraint,omitempty"`
	TimeCommitment           string         `json:"time_commitment,omitempty"`
	QuizCompleted            bool           `json:"quiz_completed"`
	QuizCompletionPercentage int            `json:"quiz_completion_percentage"`
	CreatedAt                time.Time      `json:"created_at"`
	UpdatedAt                time.Time      `json:"updated_at"`
}

// EmbeddingText renders the profile as the text fed to the embedding
// provider when computing the user's semantic vector.
func (p *UserProfile) EmbeddingText() string {
	education := "Not specified"
	if p.EducationLevel != "" {
		education = string(p.EducationLevel)
	}
	return fmt.Sprintf(
		"Skills: %s. Interests: %s. Personality: %s. Education: %s.",
		strings.Join(p.Skills, ", "),
		strings.Join(p.Interests, ", "),
		strings.Join(p.PersonalityTraits, ", "),
		education,
	)
}
