package translator

import (
	"regexp"
	"strings"
)

var (
	fenceOpenPattern  = regexp.MustCompile("(?im)```sql\\s*")
	fenceClosePattern = regexp.MustCompile("(?m)\\s*```")

	// Artifacts from SDK content blocks stringified into the response.
	typeAnnotationPatterns = []*regexp.Regexp{
		regexp.MustCompile(`', type='text'\)`),
		regexp.MustCompile(`type='text'`),
	}

	standaloneSQLLinePattern = regexp.MustCompile(`(?im)^\s*sql\s*$`)

	columnRefPattern    = regexp.MustCompile(`^\s*[A-Za-z_][A-Za-z0-9_]*\s*[,\)]`)
	numberPattern       = regexp.MustCompile(`^\s*\d+`)
	quotedValuePattern  = regexp.MustCompile(`^\s*['"]`)
	operatorLinePattern = regexp.MustCompile(`^\s*[-+*/=<>!]`)
)

// startKeywords mark the first line of a SQL statement.
var startKeywords = []string{
	"SELECT", "INSERT", "UPDATE", "DELETE", "WITH", "CREATE", "DROP", "ALTER",
}

// continuationKeywords are clauses and tokens that keep the scanner inside
// the statement once it has started.
var continuationKeywords = []string{
	"FROM", "WHERE", "GROUP", "ORDER", "HAVING", "LIMIT", "OFFSET", "JOIN",
	"INNER", "LEFT", "RIGHT", "UNION", "AND", "OR", "ON", "AS", "IN",
	"EXISTS", "CASE", "WHEN", "THEN", "ELSE", "END", ")", "(", ",",
}

// proseMarkers identify the explanatory text models append after the query.
var proseMarkers = []string{"This query", "provides", "shows", "The results"}

// ExtractSQL pulls a runnable SQL statement out of model output. It strips
// markdown fences and SDK artifacts, then scans line by line from the first
// statement keyword and stops at trailing prose.
func ExtractSQL(raw string) string {
	cleaned := fenceOpenPattern.ReplaceAllString(raw, "")
	cleaned = fenceClosePattern.ReplaceAllString(cleaned, "")
	for _, p := range typeAnnotationPatterns {
		cleaned = p.ReplaceAllString(cleaned, "")
	}
	cleaned = standaloneSQLLinePattern.ReplaceAllString(cleaned, "")

	lines := strings.Split(cleaned, "\n")
	var sqlLines []string
	foundStart := false

	for _, line := range lines {
		upper := strings.ToUpper(strings.TrimSpace(line))

		if !foundStart {
			if hasAnyPrefix(upper, startKeywords) {
				foundStart = true
				sqlLines = append(sqlLines, line)
			}
			continue
		}

		if isProseLine(line, upper) {
			break
		}
		sqlLines = append(sqlLines, line)
	}

	if len(sqlLines) > 0 {
		cleaned = strings.Join(sqlLines, "\n")
	}

	cleaned = strings.TrimSpace(cleaned)
	cleaned = strings.TrimSuffix(cleaned, "'")
	return strings.Trim(cleaned, "\n\r\t ")
}

// isProseLine reports whether a non-empty line inside a statement is
// explanatory text rather than SQL. Lines that look like clause
// continuations, column references, numbers, string values, or operators
// stay part of the statement.
func isProseLine(line, upper string) bool {
	if strings.TrimSpace(line) == "" {
		return false
	}
	if hasAnyPrefix(upper, continuationKeywords) {
		return false
	}
	if columnRefPattern.MatchString(line) ||
		numberPattern.MatchString(line) ||
		quotedValuePattern.MatchString(line) ||
		operatorLinePattern.MatchString(line) {
		return false
	}
	for _, marker := range proseMarkers {
		if strings.Contains(line, marker) {
			return true
		}
	}
	return false
}

func hasAnyPrefix(s string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}
