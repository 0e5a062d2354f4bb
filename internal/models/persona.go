package models

import "time"

// Persona is a named writing voice: a prompt template plus constraints,
// selected per generation request.
type Persona struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	BasePrompt  string    `json:"base_prompt"`
	JSONSchema  string    `json:"json_schema,omitempty"`
	Custom      bool      `json:"custom"`
	CreatedAt   time.Time `json:"created_at,omitempty"`
}

// NewCustomPersona creates a user-owned persona derived from a writing sample.
func NewCustomPersona(name, description, basePrompt string) *Persona {
	return &Persona{
		Name:        name,
		Description: description,
		BasePrompt:  basePrompt,
		Custom:      true,
		CreatedAt:   time.Now(),
	}
}
