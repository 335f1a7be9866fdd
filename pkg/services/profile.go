package services

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/sqlcoach-ai/sqlcoach-engine/pkg/apperrors"
	"github.com/sqlcoach-ai/sqlcoach-engine/pkg/models"
	"github.com/sqlcoach-ai/sqlcoach-engine/pkg/repositories"
)

// conceptBumpThreshold is the load at which handling a query without an
// explanation counts as demonstrated skill.
const conceptBumpThreshold = 4.0

// ProfileService tracks participant cognitive profiles across chat turns.
type ProfileService interface {
	// GetOrDefault loads the stored profile, or synthesizes the default
	// profile (without persisting it) when the user is unknown or the
	// stored entry cannot be decoded.
	GetOrDefault(ctx context.Context, userID string) (*models.UserProfile, error)

	// RecordInteraction appends the turn to the profile's bounded history
	// and raises the concept level when the user absorbed a demanding
	// query without needing an explanation.
	RecordInteraction(ctx context.Context, userID, question string, assessment *models.CognitiveAssessment) (*models.UserProfile, error)
}

type profileService struct {
	profiles repositories.UserProfileRepository
	logger   *zap.Logger
}

// NewProfileService creates a profile service.
func NewProfileService(profiles repositories.UserProfileRepository, logger *zap.Logger) ProfileService {
	return &profileService{
		profiles: profiles,
		logger:   logger.Named("profile"),
	}
}

// GetOrDefault implements ProfileService.
func (s *profileService) GetOrDefault(ctx context.Context, userID string) (*models.UserProfile, error) {
	profile, err := s.profiles.Get(ctx, userID)
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		return models.DefaultUserProfile(userID), nil
	case errors.Is(err, apperrors.ErrProfileCorrupt):
		s.logger.Warn("stored profile is corrupt, using default",
			zap.String("user_id", userID), zap.Error(err))
		return models.DefaultUserProfile(userID), nil
	case err != nil:
		return nil, err
	}
	return profile, nil
}

// RecordInteraction implements ProfileService.
func (s *profileService) RecordInteraction(ctx context.Context, userID, question string, assessment *models.CognitiveAssessment) (*models.UserProfile, error) {
	return s.profiles.UpdateWithLock(ctx, userID, func(p *models.UserProfile) error {
		p.AppendHistory(models.InteractionSummary{
			Timestamp:           time.Now().UTC(),
			Question:            question,
			ConceptCategory:     assessment.ConceptCategory,
			IntrinsicLoad:       assessment.IntrinsicLoad,
			ExplanationProvided: assessment.ExplanationNeeded,
			ExplanationType:     assessment.ExplanationType,
		})

		if assessment.IntrinsicLoad >= conceptBumpThreshold && !assessment.ExplanationNeeded {
			current := p.ConceptLevel(assessment.ConceptCategory)
			p.ConceptLevels[assessment.ConceptCategory] = min(5, current+1)
			s.logger.Info("raised concept level",
				zap.String("user_id", userID),
				zap.String("concept", assessment.ConceptCategory),
				zap.Int("level", p.ConceptLevels[assessment.ConceptCategory]))
		}
		return nil
	})
}
