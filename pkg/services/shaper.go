package services

import "github.com/sqlcoach-ai/sqlcoach-engine/pkg/models"

// Row limits applied to successful results. Loads above the user's
// capacity get the tighter cut so the display stays digestible.
const (
	overloadRowLimit = 5
	normalRowLimit   = 15
)

// ShapeResult returns a row-limited copy of a successful result. The
// intrinsic load is compared against the raw 1-5 capacity score; failed
// results pass through untouched.
func ShapeResult(result *models.QueryResult, assessment *models.CognitiveAssessment, profile *models.UserProfile) *models.QueryResult {
	if !result.Success || result.Rows == nil {
		return result
	}

	limit := normalRowLimit
	if assessment.IntrinsicLoad > float64(profile.CognitiveLoadCapacity) {
		limit = overloadRowLimit
	}
	return result.WithRowLimit(limit)
}
