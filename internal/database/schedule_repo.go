package database

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/postforge/linkedin-autopilot/internal/models"
)

type ScheduleRepository struct {
	db *DB
}

func NewScheduleRepository(db *DB) *ScheduleRepository {
	return &ScheduleRepository{db: db}
}

// Create inserts a new scheduled post
func (r *ScheduleRepository) Create(ctx context.Context, post *models.ScheduledPost) error {
	if post.ID == "" {
		post.ID = uuid.New().String()
	}
	if post.CreatedAt.IsZero() {
		post.CreatedAt = time.Now()
	}

	query := `
		INSERT INTO scheduled_posts (id, content, platform, status, created_at, scheduled_at, published_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.Pool.Exec(ctx, query,
		post.ID,
		post.Content,
		post.Platform,
		post.Status,
		post.CreatedAt,
		post.ScheduledAt,
		post.PublishedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create scheduled post: %w", err)
	}

	return nil
}

// GetUpcoming retrieves scheduled posts with a slot inside the horizon,
// soonest first.
func (r *ScheduleRepository) GetUpcoming(ctx context.Context, days int) ([]*models.ScheduledPost, error) {
	query := `
		SELECT id, content, platform, status, created_at, scheduled_at, published_at
		FROM scheduled_posts
		WHERE status = 'scheduled' AND scheduled_at <= $1
		ORDER BY scheduled_at ASC
	`

	cutoff := time.Now().AddDate(0, 0, days)

	rows, err := r.db.Pool.Query(ctx, query, cutoff)
	if err != nil {
		return nil, fmt.Errorf("failed to query scheduled posts: %w", err)
	}
	defer rows.Close()

	var posts []*models.ScheduledPost
	for rows.Next() {
		post := &models.ScheduledPost{}
		err := rows.Scan(
			&post.ID,
			&post.Content,
			&post.Platform,
			&post.Status,
			&post.CreatedAt,
			&post.ScheduledAt,
			&post.PublishedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan scheduled post: %w", err)
		}
		posts = append(posts, post)
	}

	return posts, nil
}

// UpdateStatus updates only the status of a scheduled post
func (r *ScheduleRepository) UpdateStatus(ctx context.Context, id, status string) error {
	query := `UPDATE scheduled_posts SET status = $2 WHERE id = $1`

	result, err := r.db.Pool.Exec(ctx, query, id, status)
	if err != nil {
		return fmt.Errorf("failed to update scheduled post: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("scheduled post not found")
	}

	return nil
}

// Delete deletes a scheduled post by ID
func (r *ScheduleRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM scheduled_posts WHERE id = $1`

	result, err := r.db.Pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete scheduled post: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("scheduled post not found")
	}

	return nil
}
