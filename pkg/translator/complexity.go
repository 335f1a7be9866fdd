package translator

import "strings"

// complexityTiers maps SQL features to structural complexity levels. The
// highest matching tier wins.
var complexityTiers = []struct {
	level    int
	features []string
}{
	{2, []string{"WHERE", "GROUP BY", "ORDER BY"}},
	{3, []string{"JOIN"}},
	{4, []string{"HAVING", "CASE WHEN"}},
	{5, []string{"OVER (", "OVER(", "PARTITION BY", "ROW_NUMBER", "RANK(", "WITH "}},
}

// ScoreComplexity rates a SQL statement on a 1-5 structural scale for the
// cognitive load pipeline. More than one SELECT implies a subquery (at
// least 4); more than one JOIN is always 5.
func ScoreComplexity(sqlQuery string) int {
	upper := strings.ToUpper(sqlQuery)
	score := 1

	for _, tier := range complexityTiers {
		for _, feature := range tier.features {
			if strings.Contains(upper, feature) {
				score = max(score, tier.level)
			}
		}
	}

	if strings.Count(upper, "SELECT") > 1 {
		score = max(score, 4)
	}
	if strings.Count(upper, "JOIN") > 1 {
		score = 5
	}

	return min(score, 5)
}
