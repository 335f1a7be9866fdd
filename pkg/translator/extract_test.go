package translator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractSQL(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "plain statement",
			input:    "SELECT * FROM superstore",
			expected: "SELECT * FROM superstore",
		},
		{
			name:     "markdown fence",
			input:    "```sql\nSELECT region, SUM(sales) FROM superstore GROUP BY region\n```",
			expected: "SELECT region, SUM(sales) FROM superstore GROUP BY region",
		},
		{
			name:     "standalone sql line",
			input:    "sql\nSELECT * FROM superstore",
			expected: "SELECT * FROM superstore",
		},
		{
			name:     "leading prose before statement",
			input:    "Here is the query you asked for:\nSELECT category FROM superstore",
			expected: "SELECT category FROM superstore",
		},
		{
			name: "trailing prose is dropped",
			input: "SELECT region, SUM(sales) AS total\nFROM superstore\nGROUP BY region\n" +
				"This query provides the total sales per region.",
			expected: "SELECT region, SUM(sales) AS total\nFROM superstore\nGROUP BY region",
		},
		{
			name: "multi line statement with clauses survives",
			input: "SELECT category,\n  SUM(profit) AS profit\nFROM superstore\nWHERE region = 'West'\n" +
				"GROUP BY category\nORDER BY profit DESC\nLIMIT 10",
			expected: "SELECT category,\n  SUM(profit) AS profit\nFROM superstore\nWHERE region = 'West'\n" +
				"GROUP BY category\nORDER BY profit DESC\nLIMIT 10",
		},
		{
			name:     "sdk type annotation removed",
			input:    "SELECT * FROM superstore', type='text')",
			expected: "SELECT * FROM superstore",
		},
		{
			name:     "trailing quote stripped",
			input:    "SELECT * FROM superstore'",
			expected: "SELECT * FROM superstore",
		},
		{
			name:     "cte statement",
			input:    "WITH totals AS (SELECT region, SUM(sales) s FROM superstore GROUP BY region)\nSELECT * FROM totals",
			expected: "WITH totals AS (SELECT region, SUM(sales) s FROM superstore GROUP BY region)\nSELECT * FROM totals",
		},
		{
			name:     "empty input",
			input:    "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ExtractSQL(tt.input))
		})
	}
}

func TestExtractSQL_ProseMarkerInsideStringStays(t *testing.T) {
	// A quoted value line is never treated as prose, even when it contains
	// a marker word.
	input := "SELECT * FROM superstore WHERE note IN (\n'shows promise',\n'other'\n)"
	assert.Equal(t, input, ExtractSQL(input))
}
