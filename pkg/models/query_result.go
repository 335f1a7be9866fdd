package models

import "time"

// QueryResult holds the outcome of translating and executing one natural
// language question. It is created once per request and never mutated;
// the result shaper returns a row-limited copy instead.
type QueryResult struct {
	Success         bool             `json:"success"`
	Columns         []string         `json:"columns,omitempty"`
	Rows            []map[string]any `json:"rows,omitempty"`
	SQL             string           `json:"sql"`
	ErrorMessage    string           `json:"error_message,omitempty"`
	ExecutionTime   time.Duration    `json:"execution_time"`
	ComplexityScore int              `json:"complexity_score"` // 1-5 structural score
}

// RowCount returns the number of result rows.
func (r *QueryResult) RowCount() int {
	return len(r.Rows)
}

// WithRowLimit returns a copy of the result with at most limit rows.
// The original result is left untouched.
func (r *QueryResult) WithRowLimit(limit int) *QueryResult {
	out := *r
	if limit >= 0 && len(r.Rows) > limit {
		out.Rows = r.Rows[:limit]
	}
	return &out
}

// FailedQueryResult builds a user-safe failure result. The message must
// already be sanitized; raw backend errors are logged, never returned.
func FailedQueryResult(sql, message string, elapsed time.Duration, complexity int) *QueryResult {
	return &QueryResult{
		Success:         false,
		SQL:             sql,
		ErrorMessage:    message,
		ExecutionTime:   elapsed,
		ComplexityScore: complexity,
	}
}
