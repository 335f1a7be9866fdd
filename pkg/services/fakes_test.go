package services

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/sqlcoach-ai/sqlcoach-engine/pkg/apperrors"
	"github.com/sqlcoach-ai/sqlcoach-engine/pkg/models"
)

// fakeProfileRepository is an in-memory UserProfileRepository.
type fakeProfileRepository struct {
	mu       sync.Mutex
	profiles map[string]*models.UserProfile
}

func newFakeProfileRepository() *fakeProfileRepository {
	return &fakeProfileRepository{profiles: make(map[string]*models.UserProfile)}
}

func (f *fakeProfileRepository) Get(ctx context.Context, userID string) (*models.UserProfile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	profile, ok := f.profiles[userID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	copied := *profile
	return &copied, nil
}

func (f *fakeProfileRepository) Upsert(ctx context.Context, profile *models.UserProfile) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	copied := *profile
	f.profiles[profile.UserID] = &copied
	return nil
}

func (f *fakeProfileRepository) UpdateWithLock(ctx context.Context, userID string, mutate func(*models.UserProfile) error) (*models.UserProfile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	profile, ok := f.profiles[userID]
	if !ok {
		profile = models.DefaultUserProfile(userID)
	}
	if err := mutate(profile); err != nil {
		return nil, err
	}
	f.profiles[userID] = profile
	copied := *profile
	return &copied, nil
}

// fakeInteractionRepository is an in-memory InteractionRepository.
type fakeInteractionRepository struct {
	mu           sync.Mutex
	interactions map[uuid.UUID]*models.Interaction
	order        []uuid.UUID
}

func newFakeInteractionRepository() *fakeInteractionRepository {
	return &fakeInteractionRepository{interactions: make(map[uuid.UUID]*models.Interaction)}
}

func (f *fakeInteractionRepository) Create(ctx context.Context, interaction *models.Interaction) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if interaction.ID == uuid.Nil {
		interaction.ID = uuid.New()
	}
	copied := *interaction
	f.interactions[interaction.ID] = &copied
	f.order = append(f.order, interaction.ID)
	return nil
}

func (f *fakeInteractionRepository) Get(ctx context.Context, id uuid.UUID) (*models.Interaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	interaction, ok := f.interactions[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	copied := *interaction
	return &copied, nil
}

func (f *fakeInteractionRepository) AttachFeedback(ctx context.Context, id uuid.UUID, feedback *models.Feedback) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	interaction, ok := f.interactions[id]
	if !ok {
		return apperrors.ErrNotFound
	}
	fb := *feedback
	interaction.Feedback = &fb
	return nil
}

func (f *fakeInteractionRepository) ListByUser(ctx context.Context, userID string, limit int) ([]*models.Interaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*models.Interaction
	for i := len(f.order) - 1; i >= 0 && len(out) < limit; i-- {
		interaction := f.interactions[f.order[i]]
		if interaction.UserID == userID {
			copied := *interaction
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (f *fakeInteractionRepository) ListWithFeedback(ctx context.Context) ([]*models.Interaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*models.Interaction
	for _, id := range f.order {
		interaction := f.interactions[id]
		if interaction.Feedback != nil {
			copied := *interaction
			out = append(out, &copied)
		}
	}
	return out, nil
}
