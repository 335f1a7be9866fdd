package models

import (
	"time"

	"github.com/google/uuid"
)

// Interaction is one append-only log record per chat turn, used later to
// score the explanation decision against user-reported feedback.
type Interaction struct {
	ID                  uuid.UUID     `json:"id"`
	UserID              string        `json:"user_id"`
	Question            string        `json:"question"`
	SQL                 string        `json:"sql"`
	QuerySuccess        bool          `json:"query_success"`
	ExecutionTime       time.Duration `json:"execution_time"`
	ComplexityScore     int           `json:"complexity_score"`
	IntrinsicLoad       float64       `json:"intrinsic_load"`
	ConceptCategory     string        `json:"concept_category"`
	ExplanationNeeded   bool          `json:"explanation_needed"`
	ExplanationType     string        `json:"explanation_type"`
	ExplanationProvided bool          `json:"explanation_provided"`
	CreatedAt           time.Time     `json:"created_at"`

	// Feedback fields, attached after the fact. Nil until the user answers
	// the "was this explanation needed" prompt.
	Feedback *Feedback `json:"feedback,omitempty"`
}

// Feedback is the participant's self-reported judgment for one interaction.
type Feedback struct {
	ExplanationNeeded   bool      `json:"explanation_needed"`
	HelpfulnessRating   int       `json:"helpfulness_rating"`    // 0-5
	SatisfactionRating  int       `json:"satisfaction_rating"`   // 0-5
	CognitiveLoadRating int       `json:"cognitive_load_rating"` // 0-5
	SubmittedAt         time.Time `json:"submitted_at"`
}

// Outcome classifications for the explanation decision, measured against
// user feedback.
const (
	OutcomeTruePositive  = "true_positive"
	OutcomeFalsePositive = "false_positive"
	OutcomeTrueNegative  = "true_negative"
	OutcomeFalseNegative = "false_negative"
)

// ClassifyOutcome compares whether an explanation was provided with whether
// the user reported needing one.
func ClassifyOutcome(provided, needed bool) string {
	switch {
	case provided && needed:
		return OutcomeTruePositive
	case provided && !needed:
		return OutcomeFalsePositive
	case !provided && !needed:
		return OutcomeTrueNegative
	default:
		return OutcomeFalseNegative
	}
}
