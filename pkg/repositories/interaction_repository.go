package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/sqlcoach-ai/sqlcoach-engine/pkg/apperrors"
	"github.com/sqlcoach-ai/sqlcoach-engine/pkg/database"
	"github.com/sqlcoach-ai/sqlcoach-engine/pkg/models"
)

// InteractionRepository defines the interface for interaction log access.
type InteractionRepository interface {
	Create(ctx context.Context, interaction *models.Interaction) error
	Get(ctx context.Context, id uuid.UUID) (*models.Interaction, error)
	// AttachFeedback stores the participant's judgment on an existing
	// interaction. Returns ErrNotFound for unknown interaction IDs.
	AttachFeedback(ctx context.Context, id uuid.UUID, feedback *models.Feedback) error
	ListByUser(ctx context.Context, userID string, limit int) ([]*models.Interaction, error)
	// ListWithFeedback returns every interaction that has feedback
	// attached, oldest first, for prediction quality evaluation.
	ListWithFeedback(ctx context.Context) ([]*models.Interaction, error)
}

// interactionRepository implements InteractionRepository using PostgreSQL.
type interactionRepository struct {
	db *database.DB
}

// NewInteractionRepository creates a new interaction repository.
func NewInteractionRepository(db *database.DB) InteractionRepository {
	return &interactionRepository{db: db}
}

const interactionColumns = `
	id, user_id, question, sql_text, query_success, execution_time_ms,
	complexity_score, intrinsic_load, concept_category,
	explanation_needed, explanation_type, explanation_provided,
	feedback, created_at`

// Create inserts a new interaction record.
func (r *interactionRepository) Create(ctx context.Context, interaction *models.Interaction) error {
	if interaction.ID == uuid.Nil {
		interaction.ID = uuid.New()
	}
	if interaction.CreatedAt.IsZero() {
		interaction.CreatedAt = time.Now().UTC()
	}

	query := `
		INSERT INTO interactions (
			id, user_id, question, sql_text, query_success, execution_time_ms,
			complexity_score, intrinsic_load, concept_category,
			explanation_needed, explanation_type, explanation_provided, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`

	_, err := r.db.Exec(ctx, query,
		interaction.ID,
		interaction.UserID,
		interaction.Question,
		interaction.SQL,
		interaction.QuerySuccess,
		interaction.ExecutionTime.Milliseconds(),
		interaction.ComplexityScore,
		interaction.IntrinsicLoad,
		interaction.ConceptCategory,
		interaction.ExplanationNeeded,
		interaction.ExplanationType,
		interaction.ExplanationProvided,
		interaction.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create interaction: %w", err)
	}
	return nil
}

// Get retrieves an interaction by ID.
func (r *interactionRepository) Get(ctx context.Context, id uuid.UUID) (*models.Interaction, error) {
	query := `SELECT` + interactionColumns + `
		FROM interactions
		WHERE id = $1`

	interaction, err := scanInteraction(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get interaction: %w", err)
	}
	return interaction, nil
}

// AttachFeedback stores feedback JSON on the interaction row.
func (r *interactionRepository) AttachFeedback(ctx context.Context, id uuid.UUID, feedback *models.Feedback) error {
	payload, err := json.Marshal(feedback)
	if err != nil {
		return fmt.Errorf("failed to marshal feedback: %w", err)
	}

	tag, err := r.db.Exec(ctx,
		`UPDATE interactions SET feedback = $2 WHERE id = $1`, id, payload)
	if err != nil {
		return fmt.Errorf("failed to attach feedback: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// ListByUser returns the user's most recent interactions, newest first.
func (r *interactionRepository) ListByUser(ctx context.Context, userID string, limit int) ([]*models.Interaction, error) {
	query := `SELECT` + interactionColumns + `
		FROM interactions
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2`

	rows, err := r.db.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list interactions: %w", err)
	}
	defer rows.Close()

	return collectInteractions(rows)
}

// ListWithFeedback returns all interactions carrying feedback, oldest first.
func (r *interactionRepository) ListWithFeedback(ctx context.Context) ([]*models.Interaction, error) {
	query := `SELECT` + interactionColumns + `
		FROM interactions
		WHERE feedback IS NOT NULL
		ORDER BY created_at ASC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list interactions with feedback: %w", err)
	}
	defer rows.Close()

	return collectInteractions(rows)
}

func collectInteractions(rows pgx.Rows) ([]*models.Interaction, error) {
	var interactions []*models.Interaction
	for rows.Next() {
		interaction, err := scanInteraction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan interaction: %w", err)
		}
		interactions = append(interactions, interaction)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate interactions: %w", err)
	}
	return interactions, nil
}

func scanInteraction(row pgx.Row) (*models.Interaction, error) {
	var (
		interaction models.Interaction
		elapsedMS   int64
		feedback    []byte
	)

	err := row.Scan(
		&interaction.ID,
		&interaction.UserID,
		&interaction.Question,
		&interaction.SQL,
		&interaction.QuerySuccess,
		&elapsedMS,
		&interaction.ComplexityScore,
		&interaction.IntrinsicLoad,
		&interaction.ConceptCategory,
		&interaction.ExplanationNeeded,
		&interaction.ExplanationType,
		&interaction.ExplanationProvided,
		&feedback,
		&interaction.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	interaction.ExecutionTime = time.Duration(elapsedMS) * time.Millisecond
	if len(feedback) > 0 {
		var fb models.Feedback
		if err := json.Unmarshal(feedback, &fb); err != nil {
			return nil, fmt.Errorf("failed to unmarshal feedback: %w", err)
		}
		interaction.Feedback = &fb
	}

	return &interaction, nil
}
