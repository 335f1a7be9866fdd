package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sqlcoach-ai/sqlcoach-engine/pkg/datastore"
	"github.com/sqlcoach-ai/sqlcoach-engine/pkg/logging"
	"github.com/sqlcoach-ai/sqlcoach-engine/pkg/models"
	"github.com/sqlcoach-ai/sqlcoach-engine/pkg/repositories"
	"github.com/sqlcoach-ai/sqlcoach-engine/pkg/sqlguard"
	"github.com/sqlcoach-ai/sqlcoach-engine/pkg/translator"
)

// User-facing failure messages. Backend errors are logged but never
// surfaced to participants.
const (
	msgTranslationFailed = "I couldn't understand your request. Please try rephrasing your question about the data."
	msgExecutionFailed   = "I encountered an issue while processing your request. Please try rephrasing your question or ask about different data."
	msgStatementBlocked  = "This statement is not allowed by the current execution policy."
)

// ChatResult is the outcome of one full chat turn.
type ChatResult struct {
	InteractionID       uuid.UUID                  `json:"interaction_id"`
	Result              *models.QueryResult        `json:"result"`
	Explanation         *models.ExplanationContent `json:"explanation,omitempty"`
	PerceivedComplexity int                        `json:"perceived_complexity"`

	// Populated for debug requests only.
	Assessment *models.CognitiveAssessment `json:"assessment,omitempty"`
	Profile    *models.UserProfile         `json:"profile,omitempty"`
}

// AssistantService runs the full pipeline for one chat turn: translate,
// guard, execute, decide, shape, explain, and record.
type AssistantService interface {
	Ask(ctx context.Context, userID, question string) (*ChatResult, error)
}

type assistantService struct {
	translator   translator.Translator
	store        datastore.QueryRunner
	guard        *sqlguard.Guard
	decisions    DecisionService
	explanations ExplanationService
	profiles     ProfileService
	interactions repositories.InteractionRepository
	logger       *zap.Logger
}

// NewAssistantService creates the chat orchestrator.
func NewAssistantService(
	tr translator.Translator,
	store datastore.QueryRunner,
	guard *sqlguard.Guard,
	decisions DecisionService,
	explanations ExplanationService,
	profiles ProfileService,
	interactions repositories.InteractionRepository,
	logger *zap.Logger,
) AssistantService {
	return &assistantService{
		translator:   tr,
		store:        store,
		guard:        guard,
		decisions:    decisions,
		explanations: explanations,
		profiles:     profiles,
		interactions: interactions,
		logger:       logger.Named("assistant"),
	}
}

// Ask implements AssistantService.
func (s *assistantService) Ask(ctx context.Context, userID, question string) (*ChatResult, error) {
	start := time.Now()

	profile, err := s.profiles.GetOrDefault(ctx, userID)
	if err != nil {
		return nil, err
	}

	result := s.translateAndRun(ctx, question, start)
	assessment := s.decisions.DecideForQuery(ctx, profile, result)
	shaped := ShapeResult(result, assessment, profile)

	var explanation *models.ExplanationContent
	if assessment.ExplanationNeeded {
		explanation = s.explanations.Generate(ctx, question, result.SQL, assessment)
		s.logger.Info("generated explanation",
			zap.String("user_id", userID),
			zap.String("explanation_type", assessment.ExplanationType))
	} else {
		s.logger.Info("no explanation needed",
			zap.String("user_id", userID))
	}

	interactionID := s.record(ctx, userID, question, result, assessment, explanation != nil)

	if updated, err := s.profiles.RecordInteraction(ctx, userID, question, assessment); err != nil {
		s.logger.Error("failed to update profile after interaction",
			zap.String("user_id", userID), zap.Error(err))
	} else {
		profile = updated
	}

	return &ChatResult{
		InteractionID:       interactionID,
		Result:              shaped,
		Explanation:         explanation,
		PerceivedComplexity: perceivedComplexity(result.ComplexityScore, profile.SQLExpertiseLevel),
		Assessment:          assessment,
		Profile:             profile,
	}, nil
}

// translateAndRun produces a QueryResult for the question, turning every
// pipeline failure into a user-safe failed result.
func (s *assistantService) translateAndRun(ctx context.Context, question string, start time.Time) *models.QueryResult {
	translation, err := s.translator.Translate(ctx, question)
	if err != nil {
		s.logger.Error("translation failed", zap.String("error", logging.SanitizeError(err)))
		return models.FailedQueryResult("", msgTranslationFailed, time.Since(start), 1)
	}

	if err := s.guard.Check(translation.SQL); err != nil {
		s.logger.Warn("statement blocked",
			zap.String("query", logging.TruncateQuery(translation.SQL)))
		return models.FailedQueryResult(translation.SQL, msgStatementBlocked, time.Since(start), translation.ComplexityScore)
	}

	run, err := s.store.Run(ctx, translation.SQL)
	if err != nil {
		s.logger.Error("query execution failed",
			zap.String("query", logging.TruncateQuery(translation.SQL)),
			zap.String("error", logging.SanitizeError(err)))
		return models.FailedQueryResult(translation.SQL, msgExecutionFailed, time.Since(start), translation.ComplexityScore)
	}

	s.logger.Info("query executed",
		zap.Int("complexity_score", translation.ComplexityScore),
		zap.Int("row_count", len(run.Rows)),
		zap.Duration("elapsed", time.Since(start)))

	return &models.QueryResult{
		Success:         true,
		Columns:         run.Columns,
		Rows:            run.Rows,
		SQL:             translation.SQL,
		ExecutionTime:   time.Since(start),
		ComplexityScore: translation.ComplexityScore,
	}
}

// record writes the interaction log entry, returning its ID. Logging
// failures are reported but do not fail the turn.
func (s *assistantService) record(ctx context.Context, userID, question string, result *models.QueryResult, assessment *models.CognitiveAssessment, explanationProvided bool) uuid.UUID {
	interaction := &models.Interaction{
		ID:                  uuid.New(),
		UserID:              userID,
		Question:            question,
		SQL:                 result.SQL,
		QuerySuccess:        result.Success,
		ExecutionTime:       result.ExecutionTime,
		ComplexityScore:     result.ComplexityScore,
		IntrinsicLoad:       assessment.IntrinsicLoad,
		ConceptCategory:     assessment.ConceptCategory,
		ExplanationNeeded:   assessment.ExplanationNeeded,
		ExplanationType:     assessment.ExplanationType,
		ExplanationProvided: explanationProvided,
	}

	if err := s.interactions.Create(ctx, interaction); err != nil {
		s.logger.Error("failed to log interaction",
			zap.String("user_id", userID), zap.Error(err))
	}
	return interaction.ID
}

// perceivedComplexity adjusts the structural score for display: experts
// perceive one level less, beginners one level more.
func perceivedComplexity(original, expertise int) int {
	switch {
	case expertise >= 4:
		return max(1, original-1)
	case expertise <= 2:
		return min(5, original+1)
	default:
		return original
	}
}
