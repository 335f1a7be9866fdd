package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/sqlcoach-ai/sqlcoach-engine/pkg/llm"
	"github.com/sqlcoach-ai/sqlcoach-engine/pkg/models"
)

func TestClassifyConcept(t *testing.T) {
	tests := []struct {
		name     string
		sql      string
		expected string
	}{
		{
			name:     "cte wins over joins",
			sql:      "WITH t AS (SELECT * FROM a JOIN b ON a.id = b.id) SELECT * FROM t",
			expected: models.ConceptAdvancedAnalytics,
		},
		{
			name:     "window function",
			sql:      "SELECT name, RANK() OVER (ORDER BY salary DESC) FROM employees",
			expected: models.ConceptWindowFunctions,
		},
		{
			name:     "case when",
			sql:      "SELECT CASE WHEN profit > 0 THEN 'win' ELSE 'loss' END FROM superstore",
			expected: models.ConceptAdvancedLogic,
		},
		{
			name:     "join",
			sql:      "SELECT c.name, s.amount FROM customers c JOIN sales s ON c.id = s.customer_id",
			expected: models.ConceptJoins,
		},
		{
			name:     "aggregation",
			sql:      "SELECT region, COUNT(*) FROM sales GROUP BY region",
			expected: models.ConceptAggregation,
		},
		{
			name:     "basic select",
			sql:      "SELECT * FROM customers WHERE age > 25",
			expected: models.ConceptBasicSelect,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ClassifyConcept(tt.sql))
		})
	}
}

func TestDecideForQuery_FailedExecutionForcesErrorExplanation(t *testing.T) {
	svc := NewDecisionService(&llm.MockTextCompleter{}, zap.NewNop())

	result := models.FailedQueryResult("SELECT 1", "boom", 0, 1)
	assessment := svc.DecideForQuery(context.Background(), models.DefaultUserProfile("u1"), result)

	assert.True(t, assessment.ExplanationNeeded)
	assert.Equal(t, models.ExplanationErrorHandling, assessment.ExplanationType)
	assert.Equal(t, models.TaskErrorHandling, assessment.TaskClassification)
	assert.Equal(t, 5.0, assessment.IntrinsicLoad)
	assert.Equal(t, 5.0, assessment.CapabilityThreshold)
}

func TestDecideForQuery_UsesModelDecision(t *testing.T) {
	mock := &llm.MockTextCompleter{
		CompleteFunc: func(ctx context.Context, system, prompt string, temperature float64) (string, error) {
			return `{"explanation_needed": true, "explanation_type": "intermediate", "reasoning": "joins are new at this level"}`, nil
		},
	}
	svc := NewDecisionService(mock, zap.NewNop())

	result := &models.QueryResult{
		Success:         true,
		SQL:             "SELECT * FROM a JOIN b ON a.id = b.id",
		ComplexityScore: 3,
	}
	profile := models.DefaultUserProfile("u1")
	assessment := svc.DecideForQuery(context.Background(), profile, result)

	assert.True(t, assessment.ExplanationNeeded)
	assert.Equal(t, models.ExplanationIntermediate, assessment.ExplanationType)
	assert.Equal(t, models.ConceptJoins, assessment.ConceptCategory)
	assert.Equal(t, 3.0, assessment.IntrinsicLoad)
	assert.Equal(t, 4.0, assessment.CapabilityThreshold) // expertise 2 doubled
	assert.Equal(t, "joins are new at this level", assessment.Reasoning)
}

func TestDecideForQuery_NotNeededForcesTypeNone(t *testing.T) {
	mock := &llm.MockTextCompleter{
		CompleteFunc: func(ctx context.Context, system, prompt string, temperature float64) (string, error) {
			return `{"explanation_needed": false, "explanation_type": "basic", "reasoning": "user can handle this"}`, nil
		},
	}
	svc := NewDecisionService(mock, zap.NewNop())

	result := &models.QueryResult{Success: true, SQL: "SELECT 1", ComplexityScore: 1}
	assessment := svc.DecideForQuery(context.Background(), models.DefaultUserProfile("u1"), result)

	assert.False(t, assessment.ExplanationNeeded)
	assert.Equal(t, models.ExplanationNone, assessment.ExplanationType)
}

func TestDecideForQuery_FallbackOnModelError(t *testing.T) {
	mock := &llm.MockTextCompleter{
		CompleteFunc: func(ctx context.Context, system, prompt string, temperature float64) (string, error) {
			return "", errors.New("unavailable")
		},
	}
	svc := NewDecisionService(mock, zap.NewNop())

	profile := models.DefaultUserProfile("u1") // expertise 2
	result := &models.QueryResult{Success: true, SQL: "SELECT * FROM a JOIN b ON a.id = b.id", ComplexityScore: 3}
	assessment := svc.DecideForQuery(context.Background(), profile, result)

	// complexity 3 > expertise 2, expertise <= 2 picks basic
	assert.True(t, assessment.ExplanationNeeded)
	assert.Equal(t, models.ExplanationBasic, assessment.ExplanationType)
}

func TestFallbackDecision(t *testing.T) {
	tests := []struct {
		name         string
		expertise    int
		complexity   int
		expectNeeded bool
		expectType   string
	}{
		{"complexity equal to expertise needs nothing", 3, 3, false, models.ExplanationNone},
		{"complexity below expertise needs nothing", 5, 2, false, models.ExplanationNone},
		{"novice above expertise gets basic", 2, 4, true, models.ExplanationBasic},
		{"intermediate gets intermediate", 3, 5, true, models.ExplanationIntermediate},
		{"advanced gets advanced", 4, 5, true, models.ExplanationAdvanced},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decision := fallbackDecision(tt.expertise, tt.complexity)
			assert.Equal(t, tt.expectNeeded, decision.ExplanationNeeded)
			assert.Equal(t, tt.expectType, decision.ExplanationType)
		})
	}
}

func TestAssessQuestion_FallbackKeywords(t *testing.T) {
	failing := &llm.MockTextCompleter{
		CompleteFunc: func(ctx context.Context, system, prompt string, temperature float64) (string, error) {
			return "", errors.New("unavailable")
		},
	}
	svc := NewDecisionService(failing, zap.NewNop())

	tests := []struct {
		name         string
		question     string
		level        string
		expectLoad   float64
		expectNeeded bool
	}{
		{"forecast scores high", "forecast sales for 2026", models.LevelNovice, 8.0, true},
		{"compare scores medium", "compare regional performance", models.LevelNovice, 5.0, true},
		{"show scores low", "show me all orders", models.LevelNovice, 2.0, false},
		{"no keyword defaults to medium", "what is our market position?", models.LevelNovice, 5.0, true},
		{"expert absorbs everything", "forecast sales for 2026", models.LevelExpert, 8.0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			profile := models.DefaultUserProfile("u1")
			profile.LevelCategory = tt.level

			assessment := svc.AssessQuestion(context.Background(), tt.question, profile)
			assert.Equal(t, tt.expectLoad, assessment.IntrinsicLoad)
			assert.Equal(t, tt.expectNeeded, assessment.ExplanationNeeded)
		})
	}
}

func TestAssessQuestion_LoadAtThresholdNeedsNothing(t *testing.T) {
	failing := &llm.MockTextCompleter{
		CompleteFunc: func(ctx context.Context, system, prompt string, temperature float64) (string, error) {
			return "", errors.New("unavailable")
		},
	}
	svc := NewDecisionService(failing, zap.NewNop())

	// An unrecognized level gets the default threshold of 5.0, which is
	// exactly the medium keyword load. The comparison is strict.
	profile := models.DefaultUserProfile("u1")
	profile.LevelCategory = "Unrated"

	assessment := svc.AssessQuestion(context.Background(), "compare the regions", profile)
	assert.Equal(t, 5.0, assessment.IntrinsicLoad)
	assert.Equal(t, 5.0, assessment.CapabilityThreshold)
	assert.False(t, assessment.ExplanationNeeded)
}

func TestAssessQuestion_ParsesModelAssessment(t *testing.T) {
	mock := &llm.MockTextCompleter{
		CompleteFunc: func(ctx context.Context, system, prompt string, temperature float64) (string, error) {
			return `{
				"intrinsic_load": 7.0,
				"task_sql_concept": "data_analysis",
				"explanation_needed": true,
				"explanation_type": "basic",
				"reasoning": "forecasting exceeds novice capability",
				"task_classification": "Data Analysis",
				"complexity_breakdown": {
					"data_dimensionality": 2.1,
					"analytical_complexity": 2.8,
					"presentation_complexity": 1.4,
					"temporal_pressure": 0.7,
					"intrinsic_load": 7.0,
					"cft_misfit_penalty": 0.0,
					"final_complexity_score": 7.0
				},
				"user_capability_threshold": 4.5,
				"final_complexity_score": 7.0
			}`, nil
		},
	}
	svc := NewDecisionService(mock, zap.NewNop())

	profile := models.DefaultUserProfile("u1")
	profile.LevelCategory = models.LevelNovice

	assessment := svc.AssessQuestion(context.Background(), "forecast revenue for 2026", profile)

	assert.Equal(t, 7.0, assessment.IntrinsicLoad)
	assert.True(t, assessment.ExplanationNeeded)
	assert.Equal(t, 4.5, assessment.CapabilityThreshold)
	assert.Equal(t, 7.0, assessment.FinalScore)
	assert.InDelta(t, 2.8, assessment.Breakdown.AnalyticalComplexity, 0.001)
}
