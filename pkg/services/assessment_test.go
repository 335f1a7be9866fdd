package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/sqlcoach-ai/sqlcoach-engine/pkg/apperrors"
	"github.com/sqlcoach-ai/sqlcoach-engine/pkg/models"
)

func newTestAssessmentService(t *testing.T, profiles *fakeProfileRepository) AssessmentService {
	t.Helper()
	svc, err := NewAssessmentService(profiles, zap.NewNop())
	require.NoError(t, err)
	return svc
}

func TestQuestionnaire_HasFiveDomains(t *testing.T) {
	svc := newTestAssessmentService(t, newFakeProfileRepository())

	q := svc.Questionnaire()
	require.Len(t, q.Domains, 5)
	for _, domain := range q.Domains {
		assert.NotEmpty(t, domain.Key)
		assert.NotEmpty(t, domain.RatingQuestion)
		assert.Len(t, domain.ConceptQuestions, 2)
	}
}

func TestScoreDomain(t *testing.T) {
	domain := QuestionnaireDomain{
		Key:              "data_analysis_fundamentals",
		ConceptQuestions: []string{"q1", "q2"},
	}

	tests := []struct {
		name     string
		rating   int
		answers  []string
		expected int
	}{
		{"high rating both yes caps at four", 5, []string{AnswerYes, AnswerYes}, 4},
		{"high rating mixed stays at four", 4, []string{AnswerYes, AnswerSomewhat}, 4},
		{"high rating with a no drops to three", 4, []string{AnswerYes, AnswerNo}, 3},
		{"middle rating both yes bumps", 3, []string{AnswerYes, AnswerYes}, 3},
		{"middle rating somewhat stays", 3, []string{AnswerSomewhat, AnswerSomewhat}, 2},
		{"low rating with a no drops", 1, []string{AnswerNo, AnswerSomewhat}, 0},
		{"low rating both yes bumps", 2, []string{AnswerYes, AnswerYes}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score, err := scoreDomain(domain, DomainAnswers{SelfRating: tt.rating, ConceptAnswers: tt.answers})
			require.NoError(t, err)
			assert.Equal(t, tt.expected, score)
		})
	}
}

func TestScoreDomain_Invalid(t *testing.T) {
	domain := QuestionnaireDomain{Key: "business_analytics", ConceptQuestions: []string{"q1", "q2"}}

	_, err := scoreDomain(domain, DomainAnswers{SelfRating: 0, ConceptAnswers: []string{AnswerYes, AnswerYes}})
	assert.ErrorIs(t, err, apperrors.ErrInvalidAssessment)

	_, err = scoreDomain(domain, DomainAnswers{SelfRating: 3, ConceptAnswers: []string{AnswerYes}})
	assert.ErrorIs(t, err, apperrors.ErrInvalidAssessment)

	_, err = scoreDomain(domain, DomainAnswers{SelfRating: 3, ConceptAnswers: []string{"Maybe", AnswerYes}})
	assert.ErrorIs(t, err, apperrors.ErrInvalidAssessment)
}

func fullSubmission(rating int, answer string) *AssessmentSubmission {
	answers := make(map[string]DomainAnswers)
	for _, key := range []string{
		"data_analysis_fundamentals",
		"business_analytics",
		"forecasting_statistics",
		"data_visualization",
		"domain_knowledge_retail",
	} {
		answers[key] = DomainAnswers{
			SelfRating:     rating,
			ConceptAnswers: []string{answer, answer},
		}
	}
	return &AssessmentSubmission{
		Answers:        answers,
		Age:            34,
		Gender:         "Female",
		Profession:     "Analyst",
		EducationLevel: "Master",
	}
}

func TestComplete_ExpertProfile(t *testing.T) {
	profiles := newFakeProfileRepository()
	svc := newTestAssessmentService(t, profiles)

	result, err := svc.Complete(context.Background(), "u1", fullSubmission(5, AnswerYes))
	require.NoError(t, err)

	// Each domain scores 4, total 20.
	assert.Equal(t, 20, result.Total)
	assert.Equal(t, models.LevelExpert, result.LevelCategory)
	assert.Equal(t, 5, result.Profile.SQLExpertiseLevel)
	assert.Equal(t, 2, result.Profile.CognitiveLoadCapacity)
	assert.Equal(t, 34, result.Profile.Age)
	assert.Equal(t, "Analyst", result.Profile.Profession)

	stored, err := profiles.Get(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, models.LevelExpert, stored.LevelCategory)
	assert.Equal(t, 20, stored.AssessmentTotal)
}

func TestComplete_BeginnerProfile(t *testing.T) {
	svc := newTestAssessmentService(t, newFakeProfileRepository())

	result, err := svc.Complete(context.Background(), "u2", fullSubmission(1, AnswerNo))
	require.NoError(t, err)

	// Each domain scores 0, total 0. Expertise and capacity clamp to 1.
	assert.Equal(t, 0, result.Total)
	assert.Equal(t, models.LevelBeginner, result.LevelCategory)
	assert.Equal(t, 1, result.Profile.SQLExpertiseLevel)
	assert.Equal(t, 1, result.Profile.CognitiveLoadCapacity)
}

func TestComplete_MidBand(t *testing.T) {
	svc := newTestAssessmentService(t, newFakeProfileRepository())

	// Rating 3 with Somewhat answers scores 2 per domain, total 10.
	result, err := svc.Complete(context.Background(), "u3", fullSubmission(3, AnswerSomewhat))
	require.NoError(t, err)

	assert.Equal(t, 10, result.Total)
	assert.Equal(t, models.LevelIntermediate, result.LevelCategory)
	assert.Equal(t, 2, result.Profile.SQLExpertiseLevel)
	assert.Equal(t, 1, result.Profile.CognitiveLoadCapacity)
}

func TestComplete_MissingDomainRejected(t *testing.T) {
	svc := newTestAssessmentService(t, newFakeProfileRepository())

	submission := fullSubmission(3, AnswerYes)
	delete(submission.Answers, "data_visualization")

	_, err := svc.Complete(context.Background(), "u4", submission)
	assert.ErrorIs(t, err, apperrors.ErrInvalidAssessment)
}

func TestComplete_EmptyUserRejected(t *testing.T) {
	svc := newTestAssessmentService(t, newFakeProfileRepository())

	_, err := svc.Complete(context.Background(), "", fullSubmission(3, AnswerYes))
	assert.ErrorIs(t, err, apperrors.ErrInvalidAssessment)
}
