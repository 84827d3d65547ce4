package entities

import (
	"time"
)

// InteractionType classifies a user-career interaction.
type InteractionType string

const (
	InteractionViewed         InteractionType = "viewed"
	InteractionSaved          InteractionType = "saved"
	InteractionClickedRoadmap InteractionType = "clicked_roadmap"
	InteractionQuizResult     InteractionType = "quiz_result"
	InteractionDismissed      InteractionType = "dismissed"
)

// interactionScores maps each interaction type to its implicit rating.
// Dismissals carry a negative score so disliked careers sink in
// collaborative ranking.
var interactionScores = map[InteractionType]float64{
	InteractionViewed:         0.3,
	InteractionSaved:          0.7,
	InteractionClickedRoadmap: 1.0,
	InteractionQuizResult:     0.8,
	InteractionDismissed:      -0.5,
}

// Valid reports whether the type is one of the known interaction types.
func (t InteractionType) Valid() bool {
	_, ok := interactionScores[t]
	return ok
}

// ImplicitScore returns the fixed rating for the type. Callers never supply
// scores themselves.
func (t InteractionType) ImplicitScore() (float64, bool) {
	score, ok := interactionScores[t]
	return score, ok
}

// Interaction is one append-only user-career event. Rows are immutable once
// written and are only ever consumed in aggregate.
type Interaction struct {
	ID         string          `json:"id"`
	UserEmail  string          `json:"user_email"`
	CareerName string          `json:"career_name"`
	Type       InteractionType `json:"interaction_type"`
	Score      float64         `json:"score"`
	Source     string          `json:"source,omitempty"`
	SessionID  string          `json:"session_id,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
}

// InteractionEvent is the pub/sub payload emitted after an interaction is
// recorded, consumed by analytics listeners.
type InteractionEvent struct {
	ID         string          `json:"id"`
	UserEmail  string          `json:"user_email"`
	CareerName string          `json:"career_name"`
	Type       InteractionType `json:"interaction_type"`
	Score      float64         `json:"score"`
	Source     string          `json:"source,omitempty"`
	OccurredAt time.Time       `json:"occurred_at"`
}
