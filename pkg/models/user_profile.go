package models

import "time"

// SQL concept categories used for task classification and per-concept
// skill tracking. Ordered from most to least specific for classification.
const (
	ConceptAdvancedAnalytics = "advanced_analytics"
	ConceptWindowFunctions   = "window_functions"
	ConceptAdvancedLogic     = "advanced_logic"
	ConceptJoins             = "joins"
	ConceptAggregation       = "aggregation"
	ConceptBasicSelect       = "basic_select"
)

// MaxHistoryEntries bounds the per-profile interaction history.
const MaxHistoryEntries = 10

// InteractionSummary is one entry of a profile's bounded history.
type InteractionSummary struct {
	Timestamp           time.Time `json:"timestamp"`
	Question            string    `json:"question"`
	ConceptCategory     string    `json:"concept_category"`
	IntrinsicLoad       float64   `json:"intrinsic_load"`
	ExplanationProvided bool      `json:"explanation_provided"`
	ExplanationType     string    `json:"explanation_type"`
}

// UserProfile is the cognitive profile of one study participant.
// Unlike the loosely-shaped profile records of earlier prototypes, every
// field is explicit; absent data is filled by DefaultUserProfile.
type UserProfile struct {
	UserID                string               `json:"user_id"`
	SQLExpertiseLevel     int                  `json:"sql_expertise_level"`     // 1-5
	CognitiveLoadCapacity int                  `json:"cognitive_load_capacity"` // 1-5
	ConceptLevels         map[string]int       `json:"concept_levels"`          // concept -> 1-5
	History               []InteractionSummary `json:"history"`
	LearningPreferences   map[string]string    `json:"learning_preferences"`
	LevelCategory         string               `json:"level_category"` // Beginner..Expert
	AssessmentTotal       int                  `json:"assessment_total"`

	// Demographics collected during onboarding.
	Age            int    `json:"age"`
	Gender         string `json:"gender"`
	Profession     string `json:"profession"`
	EducationLevel string `json:"education_level"`

	LastUpdated time.Time `json:"last_updated"`
}

// DefaultUserProfile synthesizes a mid-level profile for users without an
// onboarding assessment. Capacity is kept low so explanations trigger more
// often for unknown users.
func DefaultUserProfile(userID string) *UserProfile {
	return &UserProfile{
		UserID:                userID,
		SQLExpertiseLevel:     2,
		CognitiveLoadCapacity: 2,
		ConceptLevels:         ConceptLevelsForExpertise(2),
		History:               []InteractionSummary{},
		LearningPreferences:   map[string]string{"explanation_style": "step_by_step"},
		LevelCategory:         LevelNovice,
		Age:                   25,
		Gender:                "Not specified",
		Profession:            "Student",
		EducationLevel:        "Bachelor",
		LastUpdated:           time.Now().UTC(),
	}
}

// ConceptLevelsForExpertise seeds per-concept skill levels from the overall
// 1-5 expertise level. Harder concepts start further behind.
func ConceptLevelsForExpertise(expertise int) map[string]int {
	clampLevel := func(v int) int {
		if v < 1 {
			return 1
		}
		if v > 5 {
			return 5
		}
		return v
	}
	return map[string]int{
		ConceptBasicSelect:       clampLevel(min(expertise, 3)),
		ConceptAggregation:       clampLevel(expertise - 1),
		ConceptJoins:             clampLevel(expertise - 2),
		ConceptAdvancedLogic:     clampLevel(expertise - 3),
		ConceptWindowFunctions:   clampLevel(expertise - 4),
		ConceptAdvancedAnalytics: clampLevel(expertise - 4),
	}
}

// AppendHistory appends a summary, keeping only the most recent
// MaxHistoryEntries entries.
func (p *UserProfile) AppendHistory(entry InteractionSummary) {
	p.History = append(p.History, entry)
	if len(p.History) > MaxHistoryEntries {
		p.History = p.History[len(p.History)-MaxHistoryEntries:]
	}
}

// ConceptLevel returns the user's level for a concept, defaulting to 1.
func (p *UserProfile) ConceptLevel(concept string) int {
	if lvl, ok := p.ConceptLevels[concept]; ok {
		return lvl
	}
	return 1
}
