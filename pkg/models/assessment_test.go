package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorAssessment(t *testing.T) {
	a := ErrorAssessment()

	assert.True(t, a.ExplanationNeeded)
	assert.Equal(t, ExplanationErrorHandling, a.ExplanationType)
	assert.Equal(t, TaskErrorHandling, a.TaskClassification)
	assert.Equal(t, 5.0, a.IntrinsicLoad)
	assert.Equal(t, 5.0, a.CapabilityThreshold)

	// Every sub-dimension is pinned at 5.0, unlike the weighted breakdown
	// used for regular assessments.
	assert.Equal(t, 5.0, a.Breakdown.DataDimensionality)
	assert.Equal(t, 5.0, a.Breakdown.AnalyticalComplexity)
	assert.Equal(t, 5.0, a.Breakdown.PresentationComplexity)
	assert.Equal(t, 5.0, a.Breakdown.TemporalPressure)
	assert.Equal(t, 0.0, a.Breakdown.MisfitPenalty)
	assert.Equal(t, 5.0, a.Breakdown.FinalComplexityScore)
}

func TestAssessmentScoreTotal(t *testing.T) {
	score := AssessmentScore{
		DataAnalysisFundamentals: 4,
		BusinessAnalytics:        3,
		ForecastingStatistics:    2,
		DataVisualization:        1,
		DomainKnowledgeRetail:    0,
	}
	assert.Equal(t, 10, score.Total())
}
