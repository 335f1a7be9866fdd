package services

import (
	"context"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/sqlcoach-ai/sqlcoach-engine/pkg/llm"
	"github.com/sqlcoach-ai/sqlcoach-engine/pkg/models"
	"github.com/sqlcoach-ai/sqlcoach-engine/pkg/prompts"
)

const synthesisTemperature = 0.3

// ExplanationService generates pedagogical explanations for queries the
// decision engine flagged. Synthesis failures degrade to a fixed fallback
// so the chat turn still completes.
type ExplanationService interface {
	Generate(ctx context.Context, question, sqlQuery string, assessment *models.CognitiveAssessment) *models.ExplanationContent
}

type explanationService struct {
	completer llm.TextCompleter
	logger    *zap.Logger
}

// NewExplanationService creates an explanation service.
func NewExplanationService(completer llm.TextCompleter, logger *zap.Logger) ExplanationService {
	return &explanationService{
		completer: completer,
		logger:    logger.Named("explanation"),
	}
}

// Generate implements ExplanationService.
func (s *explanationService) Generate(ctx context.Context, question, sqlQuery string, assessment *models.CognitiveAssessment) *models.ExplanationContent {
	if !assessment.ExplanationNeeded {
		return models.NoExplanation()
	}

	system := prompts.BuildExplanationSystemMessage(assessment.ConceptCategory, assessment.ExplanationType)
	prompt := prompts.BuildExplanationPrompt(question, sqlQuery, assessment.ExplanationType, assessment.ConceptCategory)

	content, err := s.completer.Complete(ctx, system, prompt, synthesisTemperature)
	if err != nil {
		s.logger.Error("explanation synthesis failed", zap.Error(err))
		return models.FallbackExplanation()
	}

	explanation := extractSection(content, "EXPLANATION:")
	concepts := extractList(content, "SQL_CONCEPTS:")
	objectives := extractList(content, "LEARNING_OBJECTIVES:")

	return &models.ExplanationContent{
		Text:               formatExplanationText(explanation),
		Concepts:           concepts,
		LearningObjectives: objectives,
		ComplexityLevel:    assessment.ExplanationType,
		EstimatedLoad:      int(assessment.IntrinsicLoad),
	}
}

var sectionHeaders = []string{"EXPLANATION:", "SQL_CONCEPTS:", "LEARNING_OBJECTIVES:"}

// extractSection returns the text between a header and the next header.
func extractSection(content, header string) string {
	start := strings.Index(content, header)
	if start == -1 {
		return ""
	}
	start += len(header)

	end := len(content)
	for _, next := range sectionHeaders {
		if next == header {
			continue
		}
		if pos := strings.Index(content[start:], next); pos != -1 && start+pos < end {
			end = start + pos
		}
	}

	return strings.TrimSpace(content[start:end])
}

// extractList parses a comma-separated section into cleaned items,
// dropping SDK artifacts that occasionally leak into responses.
func extractList(content, header string) []string {
	section := extractSection(content, header)
	if section == "" {
		return nil
	}

	var items []string
	for _, raw := range strings.Split(section, ",") {
		item := strings.TrimSpace(raw)
		if item == "" {
			continue
		}
		item = strings.ReplaceAll(item, `\n`, " ")
		item = strings.ReplaceAll(item, `\"`, `"`)
		item = strings.ReplaceAll(item, `\'`, "'")
		if idx := strings.Index(item, "', type='"); idx != -1 {
			item = item[:idx]
		}
		item = strings.Trim(item, `'"`)
		item = strings.TrimSpace(item)
		if item != "" && !strings.HasPrefix(item, "type=") {
			items = append(items, item)
		}
	}
	return items
}

var (
	sqlFenceOpenPattern  = regexp.MustCompile("```sql\\s*")
	sqlFenceClosePattern = regexp.MustCompile("\\s*```[ \t]*(\\n|$)")
	excessNewlinePattern = regexp.MustCompile(`\n{3,}`)
)

// formatExplanationText normalizes model output for display: unescapes
// leaked escape sequences, regularizes code fences, and keeps headings
// separated by blank lines.
func formatExplanationText(text string) string {
	if text == "" {
		return ""
	}

	text = strings.TrimSpace(text)
	text = strings.ReplaceAll(text, `\n`, "\n")
	text = strings.ReplaceAll(text, `\t`, "    ")
	text = strings.ReplaceAll(text, `\"`, `"`)
	text = strings.ReplaceAll(text, `\'`, "'")

	text = sqlFenceOpenPattern.ReplaceAllString(text, "\n```sql\n")
	text = sqlFenceClosePattern.ReplaceAllString(text, "\n```\n")

	var formatted []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		formatted = append(formatted, line)

		isHeading := strings.HasSuffix(line, ":") ||
			(strings.HasPrefix(line, "**") && strings.HasSuffix(line, "**")) ||
			strings.HasPrefix(line, "###")
		if isHeading {
			formatted = append(formatted, "")
		}
	}

	result := strings.Join(formatted, "\n")
	result = excessNewlinePattern.ReplaceAllString(result, "\n\n")
	return strings.TrimSpace(result)
}
