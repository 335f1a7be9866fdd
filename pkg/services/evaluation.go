package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sqlcoach-ai/sqlcoach-engine/pkg/apperrors"
	"github.com/sqlcoach-ai/sqlcoach-engine/pkg/models"
	"github.com/sqlcoach-ai/sqlcoach-engine/pkg/repositories"
)

// FeedbackResult classifies one interaction's explanation decision against
// the participant's judgment.
type FeedbackResult struct {
	Outcome                string  `json:"outcome"`
	EffectivenessScore     float64 `json:"effectiveness_score"`      // helpfulness / 5
	UserSatisfaction       float64 `json:"user_satisfaction"`        // satisfaction / 5
	CognitiveLoadReduction float64 `json:"cognitive_load_reduction"` // load rating / 5
}

// EvaluationMetrics aggregates decision quality over every interaction
// with feedback.
type EvaluationMetrics struct {
	TruePositives  int `json:"true_positives"`
	FalsePositives int `json:"false_positives"`
	TrueNegatives  int `json:"true_negatives"`
	FalseNegatives int `json:"false_negatives"`
	Total          int `json:"total"`

	Accuracy  float64 `json:"accuracy"`
	Precision float64 `json:"precision"`
	Recall    float64 `json:"recall"`
	F1        float64 `json:"f1"`

	AvgHelpfulness  float64 `json:"avg_helpfulness"`
	AvgSatisfaction float64 `json:"avg_satisfaction"`
}

// EvaluationService records participant feedback and reports how well the
// explanation decisions predicted actual need.
type EvaluationService interface {
	// SubmitFeedback validates and stores feedback for an interaction,
	// returning the outcome classification.
	SubmitFeedback(ctx context.Context, interactionID uuid.UUID, feedback *models.Feedback) (*FeedbackResult, error)

	// Metrics computes accuracy, precision, recall, and F1 over all
	// interactions that have feedback.
	Metrics(ctx context.Context) (*EvaluationMetrics, error)
}

type evaluationService struct {
	interactions repositories.InteractionRepository
	logger       *zap.Logger
}

// NewEvaluationService creates an evaluation service.
func NewEvaluationService(interactions repositories.InteractionRepository, logger *zap.Logger) EvaluationService {
	return &evaluationService{
		interactions: interactions,
		logger:       logger.Named("evaluation"),
	}
}

// SubmitFeedback implements EvaluationService.
func (s *evaluationService) SubmitFeedback(ctx context.Context, interactionID uuid.UUID, feedback *models.Feedback) (*FeedbackResult, error) {
	if err := validateFeedback(feedback); err != nil {
		return nil, err
	}

	interaction, err := s.interactions.Get(ctx, interactionID)
	if err != nil {
		return nil, err
	}

	if err := s.interactions.AttachFeedback(ctx, interactionID, feedback); err != nil {
		return nil, err
	}

	outcome := models.ClassifyOutcome(interaction.ExplanationProvided, feedback.ExplanationNeeded)
	s.logger.Info("feedback recorded",
		zap.String("interaction_id", interactionID.String()),
		zap.String("outcome", outcome))

	return &FeedbackResult{
		Outcome:                outcome,
		EffectivenessScore:     float64(feedback.HelpfulnessRating) / 5.0,
		UserSatisfaction:       float64(feedback.SatisfactionRating) / 5.0,
		CognitiveLoadReduction: float64(feedback.CognitiveLoadRating) / 5.0,
	}, nil
}

func validateFeedback(feedback *models.Feedback) error {
	if feedback == nil {
		return fmt.Errorf("%w: feedback is required", apperrors.ErrInvalidFeedback)
	}
	for name, rating := range map[string]int{
		"helpfulness_rating":    feedback.HelpfulnessRating,
		"satisfaction_rating":   feedback.SatisfactionRating,
		"cognitive_load_rating": feedback.CognitiveLoadRating,
	} {
		if rating < 0 || rating > 5 {
			return fmt.Errorf("%w: %s must be 0-5", apperrors.ErrInvalidFeedback, name)
		}
	}
	return nil
}

// Metrics implements EvaluationService.
func (s *evaluationService) Metrics(ctx context.Context) (*EvaluationMetrics, error) {
	interactions, err := s.interactions.ListWithFeedback(ctx)
	if err != nil {
		return nil, err
	}

	m := &EvaluationMetrics{}
	var helpfulnessSum, satisfactionSum int

	for _, interaction := range interactions {
		switch models.ClassifyOutcome(interaction.ExplanationProvided, interaction.Feedback.ExplanationNeeded) {
		case models.OutcomeTruePositive:
			m.TruePositives++
		case models.OutcomeFalsePositive:
			m.FalsePositives++
		case models.OutcomeTrueNegative:
			m.TrueNegatives++
		case models.OutcomeFalseNegative:
			m.FalseNegatives++
		}
		helpfulnessSum += interaction.Feedback.HelpfulnessRating
		satisfactionSum += interaction.Feedback.SatisfactionRating
	}

	m.Total = len(interactions)
	if m.Total == 0 {
		return m, nil
	}

	m.Accuracy = float64(m.TruePositives+m.TrueNegatives) / float64(m.Total)
	if denom := m.TruePositives + m.FalsePositives; denom > 0 {
		m.Precision = float64(m.TruePositives) / float64(denom)
	}
	if denom := m.TruePositives + m.FalseNegatives; denom > 0 {
		m.Recall = float64(m.TruePositives) / float64(denom)
	}
	if m.Precision+m.Recall > 0 {
		m.F1 = 2 * m.Precision * m.Recall / (m.Precision + m.Recall)
	}
	m.AvgHelpfulness = float64(helpfulnessSum) / float64(m.Total)
	m.AvgSatisfaction = float64(satisfactionSum) / float64(m.Total)

	return m, nil
}
