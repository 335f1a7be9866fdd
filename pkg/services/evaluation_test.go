package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/sqlcoach-ai/sqlcoach-engine/pkg/apperrors"
	"github.com/sqlcoach-ai/sqlcoach-engine/pkg/models"
)

func storedInteraction(t *testing.T, repo *fakeInteractionRepository, provided bool) uuid.UUID {
	t.Helper()
	interaction := &models.Interaction{
		ID:                  uuid.New(),
		UserID:              "u1",
		Question:            "q",
		ExplanationProvided: provided,
	}
	require.NoError(t, repo.Create(context.Background(), interaction))
	return interaction.ID
}

func TestSubmitFeedback_ClassifiesOutcome(t *testing.T) {
	tests := []struct {
		name     string
		provided bool
		needed   bool
		expected string
	}{
		{"provided and needed", true, true, models.OutcomeTruePositive},
		{"provided but not needed", true, false, models.OutcomeFalsePositive},
		{"withheld and not needed", false, false, models.OutcomeTrueNegative},
		{"withheld but needed", false, true, models.OutcomeFalseNegative},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeInteractionRepository()
			svc := NewEvaluationService(repo, zap.NewNop())
			id := storedInteraction(t, repo, tt.provided)

			result, err := svc.SubmitFeedback(context.Background(), id, &models.Feedback{
				ExplanationNeeded:   tt.needed,
				HelpfulnessRating:   4,
				SatisfactionRating:  5,
				CognitiveLoadRating: 2,
			})
			require.NoError(t, err)
			assert.Equal(t, tt.expected, result.Outcome)
			assert.InDelta(t, 0.8, result.EffectivenessScore, 0.001)
			assert.InDelta(t, 1.0, result.UserSatisfaction, 0.001)
			assert.InDelta(t, 0.4, result.CognitiveLoadReduction, 0.001)
		})
	}
}

func TestSubmitFeedback_Invalid(t *testing.T) {
	repo := newFakeInteractionRepository()
	svc := NewEvaluationService(repo, zap.NewNop())
	id := storedInteraction(t, repo, true)

	_, err := svc.SubmitFeedback(context.Background(), id, nil)
	assert.ErrorIs(t, err, apperrors.ErrInvalidFeedback)

	_, err = svc.SubmitFeedback(context.Background(), id, &models.Feedback{HelpfulnessRating: 6})
	assert.ErrorIs(t, err, apperrors.ErrInvalidFeedback)

	_, err = svc.SubmitFeedback(context.Background(), id, &models.Feedback{SatisfactionRating: -1})
	assert.ErrorIs(t, err, apperrors.ErrInvalidFeedback)
}

func TestSubmitFeedback_UnknownInteraction(t *testing.T) {
	svc := NewEvaluationService(newFakeInteractionRepository(), zap.NewNop())

	_, err := svc.SubmitFeedback(context.Background(), uuid.New(), &models.Feedback{})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestMetrics_Empty(t *testing.T) {
	svc := NewEvaluationService(newFakeInteractionRepository(), zap.NewNop())

	m, err := svc.Metrics(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, m.Total)
	assert.Zero(t, m.Accuracy)
	assert.Zero(t, m.Precision)
	assert.Zero(t, m.Recall)
	assert.Zero(t, m.F1)
}

func TestMetrics(t *testing.T) {
	repo := newFakeInteractionRepository()
	svc := NewEvaluationService(repo, zap.NewNop())

	// 2 TP, 1 FP, 1 TN, 0 FN.
	cases := []struct {
		provided bool
		needed   bool
	}{
		{true, true},
		{true, true},
		{true, false},
		{false, false},
	}
	for _, c := range cases {
		id := storedInteraction(t, repo, c.provided)
		_, err := svc.SubmitFeedback(context.Background(), id, &models.Feedback{
			ExplanationNeeded:  c.needed,
			HelpfulnessRating:  4,
			SatisfactionRating: 3,
		})
		require.NoError(t, err)
	}

	m, err := svc.Metrics(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 4, m.Total)
	assert.Equal(t, 2, m.TruePositives)
	assert.Equal(t, 1, m.FalsePositives)
	assert.Equal(t, 1, m.TrueNegatives)
	assert.Equal(t, 0, m.FalseNegatives)

	assert.InDelta(t, 0.75, m.Accuracy, 0.001)
	assert.InDelta(t, 2.0/3.0, m.Precision, 0.001)
	assert.InDelta(t, 1.0, m.Recall, 0.001)
	assert.InDelta(t, 0.8, m.F1, 0.001)
	assert.InDelta(t, 4.0, m.AvgHelpfulness, 0.001)
	assert.InDelta(t, 3.0, m.AvgSatisfaction, 0.001)
}

func TestMetrics_NoPositivesHasZeroPrecision(t *testing.T) {
	repo := newFakeInteractionRepository()
	svc := NewEvaluationService(repo, zap.NewNop())

	id := storedInteraction(t, repo, false)
	_, err := svc.SubmitFeedback(context.Background(), id, &models.Feedback{ExplanationNeeded: false})
	require.NoError(t, err)

	m, err := svc.Metrics(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, m.TrueNegatives)
	assert.InDelta(t, 1.0, m.Accuracy, 0.001)
	assert.Zero(t, m.Precision)
	assert.Zero(t, m.Recall)
	assert.Zero(t, m.F1)
}
