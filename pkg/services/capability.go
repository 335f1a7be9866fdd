// Package services contains the cognitive load pipeline: onboarding
// assessment, explanation decision, synthesis, result shaping, profile
// tracking, and prediction quality evaluation.
package services

import "github.com/sqlcoach-ai/sqlcoach-engine/pkg/models"

// capabilityThresholds maps a user level to the highest intrinsic load
// (0-10 band) that level can absorb without an explanation.
var capabilityThresholds = map[string]float64{
	models.LevelBeginner:     3.0,
	models.LevelNovice:       4.5,
	models.LevelIntermediate: 6.5,
	models.LevelAdvanced:     8.5,
	models.LevelExpert:       10.0,
}

// defaultCapabilityThreshold applies when the level category is unknown.
const defaultCapabilityThreshold = 5.0

// CapabilityThreshold returns the load threshold for a level category.
func CapabilityThreshold(levelCategory string) float64 {
	if t, ok := capabilityThresholds[levelCategory]; ok {
		return t
	}
	return defaultCapabilityThreshold
}

// LevelFromExpertise derives a level category from the 1-5 SQL expertise
// score, for profiles that never went through the onboarding assessment.
func LevelFromExpertise(expertise int) string {
	switch {
	case expertise <= 1:
		return models.LevelBeginner
	case expertise <= 2:
		return models.LevelNovice
	case expertise <= 3:
		return models.LevelIntermediate
	case expertise <= 4:
		return models.LevelAdvanced
	default:
		return models.LevelExpert
	}
}

// profileLevel prefers the assessed level category and falls back to the
// expertise-derived one.
func profileLevel(profile *models.UserProfile) string {
	if profile.LevelCategory != "" {
		return profile.LevelCategory
	}
	return LevelFromExpertise(profile.SQLExpertiseLevel)
}
