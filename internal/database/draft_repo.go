package database

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/postforge/linkedin-autopilot/internal/models"
)

type DraftRepository struct {
	db *DB
}

func NewDraftRepository(db *DB) *DraftRepository {
	return &DraftRepository{db: db}
}

// Create inserts a new ghost draft
func (r *DraftRepository) Create(ctx context.Context, draft *models.GhostDraft) error {
	if draft.ID == "" {
		draft.ID = uuid.New().String()
	}
	if draft.CreatedAt.IsZero() {
		draft.CreatedAt = time.Now()
	}
	if draft.Status == "" {
		draft.Status = models.DraftStatusUnread
	}

	assetsJSON, err := json.Marshal(draft.Assets)
	if err != nil {
		return fmt.Errorf("failed to marshal assets: %w", err)
	}

	query := `
		INSERT INTO ghost_drafts (id, topic, trend, assets, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err = r.db.Pool.Exec(ctx, query,
		draft.ID,
		draft.Topic,
		draft.Trend,
		assetsJSON,
		draft.Status,
		draft.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create draft: %w", err)
	}

	return nil
}

// GetByID retrieves a draft by its ID
func (r *DraftRepository) GetByID(ctx context.Context, id string) (*models.GhostDraft, error) {
	query := `
		SELECT id, topic, trend, assets, status, created_at
		FROM ghost_drafts
		WHERE id = $1
	`

	draft := &models.GhostDraft{}
	var assetsJSON []byte

	err := r.db.Pool.QueryRow(ctx, query, id).Scan(
		&draft.ID,
		&draft.Topic,
		&draft.Trend,
		&assetsJSON,
		&draft.Status,
		&draft.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("draft not found: %w", err)
	}

	if err := json.Unmarshal(assetsJSON, &draft.Assets); err != nil {
		return nil, fmt.Errorf("failed to unmarshal assets: %w", err)
	}

	return draft, nil
}

// List retrieves drafts newest first, optionally filtered by status.
func (r *DraftRepository) List(ctx context.Context, status string) ([]*models.GhostDraft, error) {
	query := `
		SELECT id, topic, trend, assets, status, created_at
		FROM ghost_drafts
	`
	args := []any{}
	if status != "" {
		query += ` WHERE status = $1`
		args = append(args, status)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query drafts: %w", err)
	}
	defer rows.Close()

	var drafts []*models.GhostDraft
	for rows.Next() {
		draft := &models.GhostDraft{}
		var assetsJSON []byte

		err := rows.Scan(
			&draft.ID,
			&draft.Topic,
			&draft.Trend,
			&assetsJSON,
			&draft.Status,
			&draft.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan draft: %w", err)
		}

		if err := json.Unmarshal(assetsJSON, &draft.Assets); err != nil {
			return nil, fmt.Errorf("failed to unmarshal assets: %w", err)
		}

		drafts = append(drafts, draft)
	}

	return drafts, nil
}

// UpdateStatus transitions a draft's status. The lifecycle check lives on
// the model; callers validate with CanTransition before updating.
func (r *DraftRepository) UpdateStatus(ctx context.Context, id, status string) error {
	query := `UPDATE ghost_drafts SET status = $2 WHERE id = $1`

	result, err := r.db.Pool.Exec(ctx, query, id, status)
	if err != nil {
		return fmt.Errorf("failed to update draft status: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("draft not found")
	}

	return nil
}

// Delete deletes a draft by ID
func (r *DraftRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM ghost_drafts WHERE id = $1`

	result, err := r.db.Pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete draft: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("draft not found")
	}

	return nil
}
