package models

// NoExplanationText is the fixed sentinel returned when the decision engine
// determined no explanation is needed.
const NoExplanationText = "No explanation needed - you can handle this query complexity."

// SynthesisFallbackText is returned when explanation generation fails.
// The chat turn still completes.
const SynthesisFallbackText = "Sorry, I couldn't generate an explanation at this time."

// ExplanationContent is a generated pedagogical explanation for one query.
type ExplanationContent struct {
	Text               string   `json:"text"`
	Concepts           []string `json:"concepts"`
	LearningObjectives []string `json:"learning_objectives"`
	ComplexityLevel    string   `json:"complexity_level"`
	EstimatedLoad      int      `json:"estimated_load"`
}

// NoExplanation returns the sentinel value paired with assessments where
// ExplanationNeeded is false. Estimated load is always 1.
func NoExplanation() *ExplanationContent {
	return &ExplanationContent{
		Text:            NoExplanationText,
		ComplexityLevel: ExplanationNone,
		EstimatedLoad:   1,
	}
}

// FallbackExplanation returns the safe placeholder used when the generation
// call errors out.
func FallbackExplanation() *ExplanationContent {
	return &ExplanationContent{
		Text:            SynthesisFallbackText,
		ComplexityLevel: "error",
		EstimatedLoad:   1,
	}
}
