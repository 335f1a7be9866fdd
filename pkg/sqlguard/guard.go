// Package sqlguard applies optional restrictions to generated SQL before
// execution. The study deliberately allows any statement type, so both
// checks default to off; deployments can opt into read-only mode and an
// injection heuristic for hardening.
package sqlguard

import (
	"fmt"
	"regexp"
	"strings"

	libinjection "github.com/corazawaf/libinjection-go"
	"go.uber.org/zap"

	"github.com/sqlcoach-ai/sqlcoach-engine/pkg/apperrors"
)

// StatementType classifies a SQL statement by its leading keyword.
type StatementType string

const (
	StatementSelect  StatementType = "SELECT"
	StatementInsert  StatementType = "INSERT"
	StatementUpdate  StatementType = "UPDATE"
	StatementDelete  StatementType = "DELETE"
	StatementDDL     StatementType = "DDL" // CREATE, ALTER, DROP, TRUNCATE
	StatementUnknown StatementType = "UNKNOWN"
)

// modifyingCTEPattern matches CTEs that contain data-modifying operations,
// e.g. WITH deleted AS (DELETE FROM ...) SELECT * FROM deleted.
var modifyingCTEPattern = regexp.MustCompile(`(?i)\bAS\s*\(\s*(INSERT|UPDATE|DELETE)\b`)

// DetectStatementType determines the statement type from the first keyword.
// WITH statements count as SELECT unless they contain a modifying CTE.
func DetectStatementType(sqlText string) StatementType {
	normalized := strings.ToUpper(strings.TrimSpace(sqlText))

	switch {
	case strings.HasPrefix(normalized, "SELECT"):
		return StatementSelect
	case strings.HasPrefix(normalized, "WITH"):
		if modifyingCTEPattern.MatchString(sqlText) {
			return StatementUnknown
		}
		return StatementSelect
	case strings.HasPrefix(normalized, "INSERT"):
		return StatementInsert
	case strings.HasPrefix(normalized, "UPDATE"):
		return StatementUpdate
	case strings.HasPrefix(normalized, "DELETE"):
		return StatementDelete
	case strings.HasPrefix(normalized, "CREATE"),
		strings.HasPrefix(normalized, "ALTER"),
		strings.HasPrefix(normalized, "DROP"),
		strings.HasPrefix(normalized, "TRUNCATE"):
		return StatementDDL
	default:
		return StatementUnknown
	}
}

// Guard checks generated SQL against the configured restrictions.
type Guard struct {
	readOnly       bool
	injectionCheck bool
	logger         *zap.Logger
}

// New creates a guard. With both switches off, Check always passes.
func New(readOnly, injectionCheck bool, logger *zap.Logger) *Guard {
	return &Guard{
		readOnly:       readOnly,
		injectionCheck: injectionCheck,
		logger:         logger.Named("sqlguard"),
	}
}

// Check returns apperrors.ErrStatementBlocked (wrapped with a reason) when
// the statement violates the configured policy.
func (g *Guard) Check(sqlText string) error {
	if g.readOnly {
		if st := DetectStatementType(sqlText); st != StatementSelect {
			g.logger.Warn("blocked non-SELECT statement",
				zap.String("statement_type", string(st)))
			return fmt.Errorf("%w: only SELECT statements are allowed in read-only mode", apperrors.ErrStatementBlocked)
		}
	}

	if g.injectionCheck {
		// The statement as a whole is SQL by definition; the heuristic
		// only makes sense on the embedded string literals, where user
		// text from the question can end up.
		for _, literal := range stringLiterals(sqlText) {
			if isSQLi, fingerprint := libinjection.IsSQLi(literal); isSQLi {
				g.logger.Warn("blocked statement with literal matching injection pattern",
					zap.String("fingerprint", string(fingerprint)))
				return fmt.Errorf("%w: string literal matches injection pattern", apperrors.ErrStatementBlocked)
			}
		}
	}

	return nil
}

// literalPattern matches single-quoted SQL string literals, treating a
// doubled quote as the escape.
var literalPattern = regexp.MustCompile(`'(?:[^']|'')*'`)

// stringLiterals extracts the contents of single-quoted literals.
func stringLiterals(sqlText string) []string {
	matches := literalPattern.FindAllString(sqlText, -1)
	literals := make([]string, 0, len(matches))
	for _, m := range matches {
		inner := strings.TrimSuffix(strings.TrimPrefix(m, "'"), "'")
		literals = append(literals, strings.ReplaceAll(inner, "''", "'"))
	}
	return literals
}
