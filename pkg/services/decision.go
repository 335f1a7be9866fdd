package services

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/sqlcoach-ai/sqlcoach-engine/pkg/llm"
	"github.com/sqlcoach-ai/sqlcoach-engine/pkg/models"
	"github.com/sqlcoach-ai/sqlcoach-engine/pkg/prompts"
)

const decisionTemperature = 0.1

// conceptKeywords classifies SQL into concept categories, checked from
// most to least specific so a CTE with joins counts as advanced analytics.
var conceptKeywords = []struct {
	concept  string
	keywords []string
}{
	{models.ConceptAdvancedAnalytics, []string{"CTE", "WITH", "RECURSIVE"}},
	{models.ConceptWindowFunctions, []string{"WINDOW", "PARTITION BY", "ROW_NUMBER", "RANK"}},
	{models.ConceptAdvancedLogic, []string{"SUBQUERY", "CASE WHEN", "UNION", "EXISTS"}},
	{models.ConceptJoins, []string{"JOIN", "INNER JOIN", "LEFT JOIN", "RIGHT JOIN"}},
	{models.ConceptAggregation, []string{"GROUP BY", "ORDER BY", "HAVING", "SUM", "COUNT", "AVG", "MAX", "MIN"}},
}

// ClassifyConcept maps a SQL statement to its dominant concept category.
func ClassifyConcept(sqlQuery string) string {
	upper := strings.ToUpper(sqlQuery)
	for _, entry := range conceptKeywords {
		for _, keyword := range entry.keywords {
			if strings.Contains(upper, keyword) {
				return entry.concept
			}
		}
	}
	return models.ConceptBasicSelect
}

// DecisionService predicts whether a user needs an explanation. Both
// operations degrade to deterministic heuristics when the LLM call fails;
// a chat turn never fails because the decision engine is unavailable.
type DecisionService interface {
	// AssessQuestion evaluates a natural language question against the
	// user's capability threshold before any SQL exists.
	AssessQuestion(ctx context.Context, question string, profile *models.UserProfile) *models.CognitiveAssessment

	// DecideForQuery makes the explanation decision for an executed query.
	// Failed executions always force an error-handling explanation.
	DecideForQuery(ctx context.Context, profile *models.UserProfile, result *models.QueryResult) *models.CognitiveAssessment
}

type decisionService struct {
	completer llm.TextCompleter
	logger    *zap.Logger
}

// NewDecisionService creates a decision service backed by the given completer.
func NewDecisionService(completer llm.TextCompleter, logger *zap.Logger) DecisionService {
	return &decisionService{
		completer: completer,
		logger:    logger.Named("decision"),
	}
}

type taskAssessmentResponse struct {
	IntrinsicLoad       float64                     `json:"intrinsic_load"`
	TaskSQLConcept      string                      `json:"task_sql_concept"`
	ExplanationNeeded   bool                        `json:"explanation_needed"`
	ExplanationType     string                      `json:"explanation_type"`
	Reasoning           string                      `json:"reasoning"`
	TaskClassification  string                      `json:"task_classification"`
	Breakdown           *models.ComplexityBreakdown `json:"complexity_breakdown"`
	CapabilityThreshold *float64                    `json:"user_capability_threshold"`
	FinalScore          *float64                    `json:"final_complexity_score"`
}

// AssessQuestion implements DecisionService.
func (s *decisionService) AssessQuestion(ctx context.Context, question string, profile *models.UserProfile) *models.CognitiveAssessment {
	level := profileLevel(profile)
	threshold := CapabilityThreshold(level)

	prompt := prompts.BuildTaskAssessmentPrompt(question, level, threshold,
		profile.SQLExpertiseLevel, profile.CognitiveLoadCapacity)

	content, err := s.completer.Complete(ctx, prompts.BuildTaskAssessmentSystemMessage(), prompt, decisionTemperature)
	if err != nil {
		s.logger.Warn("task assessment call failed, using heuristic fallback", zap.Error(err))
		return fallbackQuestionAssessment(question, level, threshold)
	}

	parsed, err := llm.ParseJSONResponse[taskAssessmentResponse](content)
	if err != nil {
		s.logger.Warn("task assessment response unparseable, using heuristic fallback", zap.Error(err))
		return fallbackQuestionAssessment(question, level, threshold)
	}

	assessment := &models.CognitiveAssessment{
		IntrinsicLoad:       parsed.IntrinsicLoad,
		ConceptCategory:     parsed.TaskSQLConcept,
		ExplanationNeeded:   parsed.ExplanationNeeded,
		ExplanationType:     parsed.ExplanationType,
		Reasoning:           parsed.Reasoning,
		TaskClassification:  parsed.TaskClassification,
		CapabilityThreshold: threshold,
	}
	if assessment.IntrinsicLoad == 0 {
		assessment.IntrinsicLoad = 5.0
	}
	if assessment.ConceptCategory == "" {
		assessment.ConceptCategory = "data_analysis"
	}
	if assessment.ExplanationType == "" {
		assessment.ExplanationType = models.ExplanationBasic
	}
	if assessment.TaskClassification == "" {
		assessment.TaskClassification = models.TaskDataAnalysis
	}
	if parsed.Breakdown != nil {
		assessment.Breakdown = *parsed.Breakdown
	} else {
		assessment.Breakdown = models.UniformBreakdown(assessment.IntrinsicLoad)
	}
	if parsed.CapabilityThreshold != nil {
		assessment.CapabilityThreshold = *parsed.CapabilityThreshold
	}
	if parsed.FinalScore != nil {
		assessment.FinalScore = *parsed.FinalScore
	} else {
		assessment.FinalScore = assessment.IntrinsicLoad
	}

	return assessment
}

// questionLoadKeywords drives the heuristic question assessment: verbs
// associated with modeling score high, descriptive verbs score low.
var questionLoadKeywords = []struct {
	load     float64
	keywords []string
}{
	{8.0, []string{"forecast", "predict", "model", "regression", "correlation", "trend", "pattern"}},
	{5.0, []string{"compare", "analyze", "segment", "group", "aggregate", "summarize"}},
	{2.0, []string{"show", "list", "find", "count", "basic", "simple"}},
}

// fallbackQuestionAssessment estimates load from question keywords when the
// LLM assessment is unavailable. The threshold comparison stays strict:
// a load exactly at the threshold never triggers an explanation.
func fallbackQuestionAssessment(question, level string, threshold float64) *models.CognitiveAssessment {
	lower := strings.ToLower(question)
	load := 5.0

	for _, entry := range questionLoadKeywords {
		matched := false
		for _, keyword := range entry.keywords {
			if strings.Contains(lower, keyword) {
				load = entry.load
				matched = true
				break
			}
		}
		if matched {
			break
		}
	}

	needed := load > threshold
	explanationType := models.ExplanationNone
	if needed {
		explanationType = models.ExplanationBasic
	}

	return &models.CognitiveAssessment{
		IntrinsicLoad:       load,
		ConceptCategory:     "basic",
		ExplanationNeeded:   needed,
		ExplanationType:     explanationType,
		Reasoning:           "Fallback assessment based on question keywords",
		TaskClassification:  models.TaskDataAnalysis,
		Breakdown:           models.UniformBreakdown(load),
		CapabilityThreshold: threshold,
		FinalScore:          load,
	}
}

type explanationDecision struct {
	ExplanationNeeded bool   `json:"explanation_needed"`
	ExplanationType   string `json:"explanation_type"`
	Reasoning         string `json:"reasoning"`
}

// DecideForQuery implements DecisionService.
func (s *decisionService) DecideForQuery(ctx context.Context, profile *models.UserProfile, result *models.QueryResult) *models.CognitiveAssessment {
	if !result.Success {
		return models.ErrorAssessment()
	}

	load := float64(result.ComplexityScore)
	concept := ClassifyConcept(result.SQL)
	decision := s.askForDecision(ctx, profile.SQLExpertiseLevel, result.ComplexityScore, concept, result.SQL)

	explanationType := models.ExplanationNone
	if decision.ExplanationNeeded {
		explanationType = decision.ExplanationType
	}

	s.logger.Info("explanation decision",
		zap.String("concept", concept),
		zap.Float64("intrinsic_load", load),
		zap.Int("expertise", profile.SQLExpertiseLevel),
		zap.Bool("explanation_needed", decision.ExplanationNeeded))

	return &models.CognitiveAssessment{
		IntrinsicLoad:       load,
		ConceptCategory:     concept,
		ExplanationNeeded:   decision.ExplanationNeeded,
		ExplanationType:     explanationType,
		Reasoning:           decision.Reasoning,
		TaskClassification:  models.TaskDataAnalysis,
		Breakdown:           models.UniformBreakdown(load),
		CapabilityThreshold: float64(profile.SQLExpertiseLevel) * 2.0, // 1-5 expertise on the 0-10 band
		FinalScore:          load,
	}
}

func (s *decisionService) askForDecision(ctx context.Context, expertise, complexity int, concept, sqlQuery string) explanationDecision {
	prompt := prompts.BuildExplanationDecisionPrompt(expertise, complexity, concept, sqlQuery)

	content, err := s.completer.Complete(ctx, prompts.BuildExplanationDecisionSystemMessage(), prompt, decisionTemperature)
	if err != nil {
		s.logger.Warn("explanation decision call failed, using fallback", zap.Error(err))
		return fallbackDecision(expertise, complexity)
	}

	decision, err := llm.ParseJSONResponse[explanationDecision](content)
	if err != nil {
		s.logger.Warn("explanation decision response unparseable, using fallback", zap.Error(err))
		return fallbackDecision(expertise, complexity)
	}
	if !validExplanationType(decision.ExplanationType) {
		s.logger.Warn("explanation decision has unknown type, using fallback",
			zap.String("explanation_type", decision.ExplanationType))
		return fallbackDecision(expertise, complexity)
	}

	return decision
}

// fallbackDecision is the deterministic decision used when the LLM is
// unavailable: an explanation is needed whenever structural complexity
// exceeds expertise, with the tier picked from the expertise level.
func fallbackDecision(expertise, complexity int) explanationDecision {
	if complexity <= expertise {
		return explanationDecision{
			ExplanationNeeded: false,
			ExplanationType:   models.ExplanationNone,
			Reasoning:         "Fallback: user can handle this task complexity at their expertise level",
		}
	}

	explanationType := models.ExplanationAdvanced
	switch {
	case expertise <= 2:
		explanationType = models.ExplanationBasic
	case expertise == 3:
		explanationType = models.ExplanationIntermediate
	}

	return explanationDecision{
		ExplanationNeeded: true,
		ExplanationType:   explanationType,
		Reasoning:         "Fallback: task complexity exceeds user expertise",
	}
}

func validExplanationType(t string) bool {
	switch t {
	case models.ExplanationNone, models.ExplanationBasic,
		models.ExplanationIntermediate, models.ExplanationAdvanced:
		return true
	}
	return false
}
