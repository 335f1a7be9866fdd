package models

// User level categories derived from the onboarding assessment.
const (
	LevelBeginner     = "Beginner"
	LevelNovice       = "Novice"
	LevelIntermediate = "Intermediate"
	LevelAdvanced     = "Advanced"
	LevelExpert       = "Expert"
)

// Explanation tiers produced by the decision engine.
const (
	ExplanationNone          = "none"
	ExplanationBasic         = "basic"
	ExplanationIntermediate  = "intermediate"
	ExplanationAdvanced      = "advanced"
	ExplanationErrorHandling = "error_handling"
)

// Task classifications.
const (
	TaskDataAnalysis  = "Data Analysis"
	TaskErrorHandling = "Error Handling"
)

// ComplexityBreakdown carries the weighted sub-dimension scores behind an
// intrinsic load value. Weights: dimensionality 0.3, analytical 0.4,
// presentation 0.2, temporal 0.1.
type ComplexityBreakdown struct {
	DataDimensionality     float64 `json:"data_dimensionality"`
	AnalyticalComplexity   float64 `json:"analytical_complexity"`
	PresentationComplexity float64 `json:"presentation_complexity"`
	TemporalPressure       float64 `json:"temporal_pressure"`
	IntrinsicLoad          float64 `json:"intrinsic_load"`
	MisfitPenalty          float64 `json:"cft_misfit_penalty"`
	FinalComplexityScore   float64 `json:"final_complexity_score"`
}

// UniformBreakdown derives a breakdown from a single load value by applying
// the standard weights, with no misfit penalty.
func UniformBreakdown(load float64) ComplexityBreakdown {
	return ComplexityBreakdown{
		DataDimensionality:     load * 0.3,
		AnalyticalComplexity:   load * 0.4,
		PresentationComplexity: load * 0.2,
		TemporalPressure:       load * 0.1,
		IntrinsicLoad:          load,
		MisfitPenalty:          0,
		FinalComplexityScore:   load,
	}
}

// CognitiveAssessment is the decision engine's verdict for one executed
// query. It is the pivot value consumed by the result shaper, the
// explanation synthesizer and the interaction logger. Never mutated.
//
// Question assessments place IntrinsicLoad on a 0-10 band against the
// onboarding capability thresholds. Query assessments keep the raw
// structural 1-5 score; only CapabilityThreshold is doubled there, and
// the needed/type verdict comes from the explanation decision rather
// than a load comparison.
type CognitiveAssessment struct {
	IntrinsicLoad       float64             `json:"intrinsic_load"` // 1-10
	ConceptCategory     string              `json:"concept_category"`
	ExplanationNeeded   bool                `json:"explanation_needed"`
	ExplanationType     string              `json:"explanation_type"`
	Reasoning           string              `json:"reasoning"`
	TaskClassification  string              `json:"task_classification"`
	Breakdown           ComplexityBreakdown `json:"complexity_breakdown"`
	CapabilityThreshold float64             `json:"capability_threshold"`
	FinalScore          float64             `json:"final_complexity_score"`
}

// ErrorAssessment is the forced assessment for failed query executions.
// Users are always told why a failure occurred. Every breakdown
// sub-dimension is pinned at 5.0, not weighted.
func ErrorAssessment() *CognitiveAssessment {
	return &CognitiveAssessment{
		IntrinsicLoad:      5,
		ConceptCategory:    "error",
		ExplanationNeeded:  true,
		ExplanationType:    ExplanationErrorHandling,
		Reasoning:          "Query execution failed due to system error",
		TaskClassification: TaskErrorHandling,
		Breakdown: ComplexityBreakdown{
			DataDimensionality:     5,
			AnalyticalComplexity:   5,
			PresentationComplexity: 5,
			TemporalPressure:       5,
			IntrinsicLoad:          5,
			FinalComplexityScore:   5,
		},
		CapabilityThreshold: 5,
		FinalScore:          5,
	}
}

// AssessmentScore holds the onboarding questionnaire result: five domain
// sub-scores of 0-4 each, summed into a 0-20 total.
type AssessmentScore struct {
	DataAnalysisFundamentals int `json:"data_analysis_fundamentals"`
	BusinessAnalytics        int `json:"business_analytics"`
	ForecastingStatistics    int `json:"forecasting_statistics"`
	DataVisualization        int `json:"data_visualization"`
	DomainKnowledgeRetail    int `json:"domain_knowledge_retail"`
}

// Total sums the five domain sub-scores.
func (s AssessmentScore) Total() int {
	return s.DataAnalysisFundamentals +
		s.BusinessAnalytics +
		s.ForecastingStatistics +
		s.DataVisualization +
		s.DomainKnowledgeRetail
}

// LevelForTotal maps a 0-20 assessment total to a level category.
// Bands: 0-4 Beginner, 5-8 Novice, 9-12 Intermediate, 13-16 Advanced,
// 17-20 Expert.
func LevelForTotal(total int) string {
	switch {
	case total <= 4:
		return LevelBeginner
	case total <= 8:
		return LevelNovice
	case total <= 12:
		return LevelIntermediate
	case total <= 16:
		return LevelAdvanced
	default:
		return LevelExpert
	}
}
