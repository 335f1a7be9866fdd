// Package repositories provides PostgreSQL data access for user profiles
// and interaction logs.
package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/sqlcoach-ai/sqlcoach-engine/pkg/apperrors"
	"github.com/sqlcoach-ai/sqlcoach-engine/pkg/database"
	"github.com/sqlcoach-ai/sqlcoach-engine/pkg/models"
)

// UserProfileRepository defines the interface for profile data access.
type UserProfileRepository interface {
	Get(ctx context.Context, userID string) (*models.UserProfile, error)
	Upsert(ctx context.Context, profile *models.UserProfile) error
	// UpdateWithLock applies mutate to the stored profile under a row lock
	// so concurrent chat turns cannot lose each other's history updates.
	// A missing profile is seeded from DefaultUserProfile before mutate runs.
	UpdateWithLock(ctx context.Context, userID string, mutate func(*models.UserProfile) error) (*models.UserProfile, error)
}

// userProfileRepository implements UserProfileRepository using PostgreSQL.
type userProfileRepository struct {
	db *database.DB
}

// NewUserProfileRepository creates a new user profile repository.
func NewUserProfileRepository(db *database.DB) UserProfileRepository {
	return &userProfileRepository{db: db}
}

const profileColumns = `
	user_id, sql_expertise_level, cognitive_load_capacity,
	concept_levels, history, learning_preferences,
	level_category, assessment_total,
	age, gender, profession, education_level, last_updated`

// Get retrieves a profile by user ID.
func (r *userProfileRepository) Get(ctx context.Context, userID string) (*models.UserProfile, error) {
	query := `SELECT` + profileColumns + `
		FROM user_profiles
		WHERE user_id = $1`

	profile, err := scanProfile(r.db.QueryRow(ctx, query, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user profile: %w", err)
	}
	return profile, nil
}

// Upsert inserts or fully replaces a profile.
func (r *userProfileRepository) Upsert(ctx context.Context, profile *models.UserProfile) error {
	profile.LastUpdated = time.Now().UTC()

	if err := r.exec(ctx, r.db, upsertProfileQuery, profile); err != nil {
		return fmt.Errorf("failed to upsert user profile: %w", err)
	}
	return nil
}

const upsertProfileQuery = `
	INSERT INTO user_profiles (
		user_id, sql_expertise_level, cognitive_load_capacity,
		concept_levels, history, learning_preferences,
		level_category, assessment_total,
		age, gender, profession, education_level, last_updated
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	ON CONFLICT (user_id) DO UPDATE
	SET sql_expertise_level = EXCLUDED.sql_expertise_level,
	    cognitive_load_capacity = EXCLUDED.cognitive_load_capacity,
	    concept_levels = EXCLUDED.concept_levels,
	    history = EXCLUDED.history,
	    learning_preferences = EXCLUDED.learning_preferences,
	    level_category = EXCLUDED.level_category,
	    assessment_total = EXCLUDED.assessment_total,
	    age = EXCLUDED.age,
	    gender = EXCLUDED.gender,
	    profession = EXCLUDED.profession,
	    education_level = EXCLUDED.education_level,
	    last_updated = EXCLUDED.last_updated`

// UpdateWithLock implements the read-modify-write cycle inside a
// transaction with SELECT ... FOR UPDATE.
func (r *userProfileRepository) UpdateWithLock(ctx context.Context, userID string, mutate func(*models.UserProfile) error) (*models.UserProfile, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // rollback after commit is a no-op

	query := `SELECT` + profileColumns + `
		FROM user_profiles
		WHERE user_id = $1
		FOR UPDATE`

	// A corrupt row is reseeded from the default profile; the upsert below
	// repairs it in place under the lock.
	profile, err := scanProfile(tx.QueryRow(ctx, query, userID))
	if errors.Is(err, pgx.ErrNoRows) || errors.Is(err, apperrors.ErrProfileCorrupt) {
		profile = models.DefaultUserProfile(userID)
	} else if err != nil {
		return nil, fmt.Errorf("failed to lock user profile: %w", err)
	}

	if err := mutate(profile); err != nil {
		return nil, err
	}
	profile.LastUpdated = time.Now().UTC()

	if err := r.exec(ctx, tx, upsertProfileQuery, profile); err != nil {
		return nil, fmt.Errorf("failed to write user profile: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit profile update: %w", err)
	}
	return profile, nil
}

// execer is satisfied by both the pool and an open transaction.
type execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// exec marshals the JSONB columns and runs the given write query.
func (r *userProfileRepository) exec(ctx context.Context, runner execer, query string, profile *models.UserProfile) error {
	conceptLevels, err := json.Marshal(profile.ConceptLevels)
	if err != nil {
		return fmt.Errorf("failed to marshal concept levels: %w", err)
	}
	history, err := json.Marshal(profile.History)
	if err != nil {
		return fmt.Errorf("failed to marshal history: %w", err)
	}
	preferences, err := json.Marshal(profile.LearningPreferences)
	if err != nil {
		return fmt.Errorf("failed to marshal learning preferences: %w", err)
	}

	_, err = runner.Exec(ctx, query,
		profile.UserID,
		profile.SQLExpertiseLevel,
		profile.CognitiveLoadCapacity,
		conceptLevels,
		history,
		preferences,
		profile.LevelCategory,
		profile.AssessmentTotal,
		profile.Age,
		profile.Gender,
		profile.Profession,
		profile.EducationLevel,
		profile.LastUpdated,
	)
	return err
}

// scanProfile reads one profile row, decoding the JSONB columns. Rows whose
// JSONB fails to decode surface apperrors.ErrProfileCorrupt so callers can
// fall back to a default profile instead of failing the turn.
func scanProfile(row pgx.Row) (*models.UserProfile, error) {
	var (
		profile       models.UserProfile
		conceptLevels []byte
		history       []byte
		preferences   []byte
	)

	err := row.Scan(
		&profile.UserID,
		&profile.SQLExpertiseLevel,
		&profile.CognitiveLoadCapacity,
		&conceptLevels,
		&history,
		&preferences,
		&profile.LevelCategory,
		&profile.AssessmentTotal,
		&profile.Age,
		&profile.Gender,
		&profile.Profession,
		&profile.EducationLevel,
		&profile.LastUpdated,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(conceptLevels, &profile.ConceptLevels); err != nil {
		return nil, fmt.Errorf("%w: concept levels: %v", apperrors.ErrProfileCorrupt, err)
	}
	if err := json.Unmarshal(history, &profile.History); err != nil {
		return nil, fmt.Errorf("%w: history: %v", apperrors.ErrProfileCorrupt, err)
	}
	if err := json.Unmarshal(preferences, &profile.LearningPreferences); err != nil {
		return nil, fmt.Errorf("%w: learning preferences: %v", apperrors.ErrProfileCorrupt, err)
	}

	return &profile, nil
}
