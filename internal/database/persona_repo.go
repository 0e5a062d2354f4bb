package database

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/postforge/linkedin-autopilot/internal/models"
)

type PersonaRepository struct {
	db *DB
}

func NewPersonaRepository(db *DB) *PersonaRepository {
	return &PersonaRepository{db: db}
}

// Create inserts a new custom persona
func (r *PersonaRepository) Create(ctx context.Context, persona *models.Persona) error {
	if persona.ID == "" {
		persona.ID = uuid.New().String()
	}
	if persona.CreatedAt.IsZero() {
		persona.CreatedAt = time.Now()
	}
	persona.Custom = true

	query := `
		INSERT INTO custom_personas (id, name, description, base_prompt, json_schema, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.Pool.Exec(ctx, query,
		persona.ID,
		persona.Name,
		persona.Description,
		persona.BasePrompt,
		persona.JSONSchema,
		persona.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create persona: %w", err)
	}

	return nil
}

// GetByID retrieves a custom persona by its ID
func (r *PersonaRepository) GetByID(ctx context.Context, id string) (*models.Persona, error) {
	query := `
		SELECT id, name, description, base_prompt, json_schema, created_at
		FROM custom_personas
		WHERE id = $1
	`

	persona := &models.Persona{Custom: true}
	err := r.db.Pool.QueryRow(ctx, query, id).Scan(
		&persona.ID,
		&persona.Name,
		&persona.Description,
		&persona.BasePrompt,
		&persona.JSONSchema,
		&persona.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("persona not found: %w", err)
	}

	return persona, nil
}

// List retrieves all custom personas
func (r *PersonaRepository) List(ctx context.Context) ([]*models.Persona, error) {
	query := `
		SELECT id, name, description, base_prompt, json_schema, created_at
		FROM custom_personas
		ORDER BY created_at DESC
	`

	rows, err := r.db.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query personas: %w", err)
	}
	defer rows.Close()

	var personas []*models.Persona
	for rows.Next() {
		persona := &models.Persona{Custom: true}
		err := rows.Scan(
			&persona.ID,
			&persona.Name,
			&persona.Description,
			&persona.BasePrompt,
			&persona.JSONSchema,
			&persona.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan persona: %w", err)
		}
		personas = append(personas, persona)
	}

	return personas, nil
}

// UpdatePrompt replaces only the prompt text of a custom persona
func (r *PersonaRepository) UpdatePrompt(ctx context.Context, id, basePrompt string) error {
	query := `UPDATE custom_personas SET base_prompt = $2 WHERE id = $1`

	result, err := r.db.Pool.Exec(ctx, query, id, basePrompt)
	if err != nil {
		return fmt.Errorf("failed to update persona prompt: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("persona not found")
	}

	return nil
}

// Delete deletes a custom persona by ID
func (r *PersonaRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM custom_personas WHERE id = $1`

	result, err := r.db.Pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete persona: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("persona not found")
	}

	return nil
}
