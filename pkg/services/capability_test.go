package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sqlcoach-ai/sqlcoach-engine/pkg/models"
)

func TestCapabilityThreshold(t *testing.T) {
	tests := []struct {
		level    string
		expected float64
	}{
		{models.LevelBeginner, 3.0},
		{models.LevelNovice, 4.5},
		{models.LevelIntermediate, 6.5},
		{models.LevelAdvanced, 8.5},
		{models.LevelExpert, 10.0},
		{"", 5.0},
		{"Wizard", 5.0},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			assert.Equal(t, tt.expected, CapabilityThreshold(tt.level))
		})
	}
}

func TestLevelFromExpertise(t *testing.T) {
	tests := []struct {
		expertise int
		expected  string
	}{
		{1, models.LevelBeginner},
		{2, models.LevelNovice},
		{3, models.LevelIntermediate},
		{4, models.LevelAdvanced},
		{5, models.LevelExpert},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, LevelFromExpertise(tt.expertise))
	}
}

func TestProfileLevel_PrefersAssessedCategory(t *testing.T) {
	profile := &models.UserProfile{
		SQLExpertiseLevel: 5,
		LevelCategory:     models.LevelBeginner,
	}
	assert.Equal(t, models.LevelBeginner, profileLevel(profile))

	profile.LevelCategory = ""
	assert.Equal(t, models.LevelExpert, profileLevel(profile))
}
