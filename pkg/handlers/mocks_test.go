package handlers

import (
	"context"

	"github.com/google/uuid"

	"github.com/sqlcoach-ai/sqlcoach-engine/pkg/models"
	"github.com/sqlcoach-ai/sqlcoach-engine/pkg/services"
)

type mockAssistantService struct {
	askFunc func(ctx context.Context, userID, question string) (*services.ChatResult, error)
}

func (m *mockAssistantService) Ask(ctx context.Context, userID, question string) (*services.ChatResult, error) {
	return m.askFunc(ctx, userID, question)
}

type mockAssessmentService struct {
	questionnaire *services.Questionnaire
	completeFunc  func(ctx context.Context, userID string, submission *services.AssessmentSubmission) (*services.AssessmentResult, error)
}

func (m *mockAssessmentService) Questionnaire() *services.Questionnaire {
	return m.questionnaire
}

func (m *mockAssessmentService) Complete(ctx context.Context, userID string, submission *services.AssessmentSubmission) (*services.AssessmentResult, error) {
	return m.completeFunc(ctx, userID, submission)
}

type mockEvaluationService struct {
	submitFunc  func(ctx context.Context, interactionID uuid.UUID, feedback *models.Feedback) (*services.FeedbackResult, error)
	metricsFunc func(ctx context.Context) (*services.EvaluationMetrics, error)
}

func (m *mockEvaluationService) SubmitFeedback(ctx context.Context, interactionID uuid.UUID, feedback *models.Feedback) (*services.FeedbackResult, error) {
	return m.submitFunc(ctx, interactionID, feedback)
}

func (m *mockEvaluationService) Metrics(ctx context.Context) (*services.EvaluationMetrics, error) {
	return m.metricsFunc(ctx)
}
