// Package translator turns natural language questions into SQL using the
// configured LLM, with the dataset schema as grounding context.
package translator

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/sqlcoach-ai/sqlcoach-engine/pkg/apperrors"
	"github.com/sqlcoach-ai/sqlcoach-engine/pkg/datastore"
	"github.com/sqlcoach-ai/sqlcoach-engine/pkg/llm"
	"github.com/sqlcoach-ai/sqlcoach-engine/pkg/prompts"
)

const generationTemperature = 0.1

// Translation is the outcome of a natural language to SQL conversion.
type Translation struct {
	SQL             string
	Reasoning       string
	ComplexityScore int
}

// Translator converts natural language questions into SQL.
type Translator interface {
	// Translate generates SQL for a question, returning the statement,
	// the model's reasoning, and a 1-5 structural complexity score.
	Translate(ctx context.Context, question string) (*Translation, error)
}

type translator struct {
	completer llm.TextCompleter
	schema    datastore.SchemaExtractor
	logger    *zap.Logger

	snapshotOnce sync.Once
	snapshot     string
	snapshotErr  error
}

// New creates a translator backed by the given completer and dataset schema.
func New(completer llm.TextCompleter, schema datastore.SchemaExtractor, logger *zap.Logger) Translator {
	return &translator{
		completer: completer,
		schema:    schema,
		logger:    logger.Named("translator"),
	}
}

// Translate implements Translator.
func (t *translator) Translate(ctx context.Context, question string) (*Translation, error) {
	snapshot, err := t.schemaSnapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("load schema snapshot: %w", err)
	}

	system := prompts.BuildTranslationSystemMessage(snapshot)
	prompt := prompts.BuildTranslationPrompt(question)

	content, err := t.completer.Complete(ctx, system, prompt, generationTemperature)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrTranslationFailed, err)
	}

	sqlQuery, reasoning := splitReasonedResponse(content)
	if sqlQuery == "" {
		t.logger.Warn("no SQL found in model response",
			zap.Int("response_length", len(content)))
		return nil, fmt.Errorf("%w: response contained no SQL statement", apperrors.ErrTranslationFailed)
	}

	score := ScoreComplexity(sqlQuery)
	t.logger.Info("translated question to SQL",
		zap.Int("complexity_score", score),
		zap.Int("sql_length", len(sqlQuery)))

	return &Translation{
		SQL:             sqlQuery,
		Reasoning:       reasoning,
		ComplexityScore: score,
	}, nil
}

// schemaSnapshot renders the dataset schema once and reuses it for every
// translation; the study dataset is static for the session.
func (t *translator) schemaSnapshot(ctx context.Context) (string, error) {
	t.snapshotOnce.Do(func() {
		t.snapshot, t.snapshotErr = datastore.Snapshot(ctx, t.schema)
	})
	return t.snapshot, t.snapshotErr
}

// splitReasonedResponse separates the REASONING and SQL sections of the
// model output. When the format is not followed, the whole response goes
// through SQL extraction and reasoning is marked unavailable.
func splitReasonedResponse(content string) (sqlQuery, reasoning string) {
	if strings.Contains(content, "REASONING:") && strings.Contains(content, "SQL:") {
		parts := strings.SplitN(content, "SQL:", 2)
		reasoning = strings.TrimSpace(strings.Replace(parts[0], "REASONING:", "", 1))
		sqlQuery = ExtractSQL(parts[1])
		return sqlQuery, reasoning
	}
	return ExtractSQL(content), "Reasoning not available"
}

var _ Translator = (*translator)(nil)
