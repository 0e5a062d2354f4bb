package personas

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/postforge/linkedin-autopilot/config"
	"github.com/postforge/linkedin-autopilot/internal/llm"
	"github.com/postforge/linkedin-autopilot/internal/models"
)

const defaultPersonaID = "cso"

// Store is the persistence boundary for user-cloned personas, satisfied by
// *database.PersonaRepository.
type Store interface {
	Create(ctx context.Context, persona *models.Persona) error
	GetByID(ctx context.Context, id string) (*models.Persona, error)
	List(ctx context.Context) ([]*models.Persona, error)
	UpdatePrompt(ctx context.Context, id, basePrompt string) error
	Delete(ctx context.Context, id string) error
}

// JSONGenerator is satisfied by *llm.Client.
type JSONGenerator interface {
	GenerateJSON(ctx context.Context, prompt string) (string, error)
}

// Registry is the catalog of writing personas: a static built-in set plus
// custom personas cloned from user writing samples.
type Registry struct {
	static map[string]models.Persona
	store  Store
	llm    JSONGenerator
	mode   config.Mode
	logger *zap.Logger
}

// NewRegistry creates a registry. store may be nil, in which case only the
// static catalog is available.
func NewRegistry(store Store, gen JSONGenerator, mode config.Mode, logger *zap.Logger) *Registry {
	static := make(map[string]models.Persona)
	for _, p := range staticCatalog() {
		static[p.ID] = p
	}
	return &Registry{
		static: static,
		store:  store,
		llm:    gen,
		mode:   mode,
		logger: logger,
	}
}

// Resolve returns the persona for id. An unknown or unreadable id resolves
// to the default persona; resolution never fails.
func (r *Registry) Resolve(ctx context.Context, id string) models.Persona {
	if p, ok := r.static[id]; ok {
		return p
	}

	if r.store != nil {
		if p, err := r.store.GetByID(ctx, id); err == nil && p != nil {
			return *p
		}
	}

	if id != "" && id != defaultPersonaID {
		r.logger.Warn("unknown persona, substituting default",
			zap.String("persona_id", id))
	}
	return r.static[defaultPersonaID]
}

// List returns the static catalog followed by custom personas.
func (r *Registry) List(ctx context.Context) ([]models.Persona, error) {
	out := staticCatalog()

	if r.store != nil {
		custom, err := r.store.List(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list custom personas: %w", err)
		}
		for _, p := range custom {
			out = append(out, *p)
		}
	}

	return out, nil
}

type personaAnalysisWire struct {
	Description string `json:"description"`
	BasePrompt  string `json:"basePrompt"`
}

// CreateFromSample analyzes a user-supplied writing sample and stores a new
// custom persona that imitates it.
func (r *Registry) CreateFromSample(ctx context.Context, name, sample string) (*models.Persona, error) {
	if r.store == nil {
		return nil, fmt.Errorf("persona storage is not configured")
	}
	if strings.TrimSpace(sample) == "" {
		return nil, fmt.Errorf("a writing sample is required")
	}

	var wire personaAnalysisWire
	if r.mode == config.ModeDemo {
		wire = personaAnalysisWire{
			Description: "Cloned voice: direct, example-led, ends on a question.",
			BasePrompt:  "You write LinkedIn posts in the user's own voice: direct sentences, one concrete example per post, light humor, and a closing question that invites replies. Match their cadence, not a generic professional tone.",
		}
	} else {
		prompt := fmt.Sprintf(`Analyze this writing sample and produce a reusable persona prompt that captures the author's voice.

Sample:
---
%s
---

Respond with a single JSON object, no surrounding prose:
{"description": "<one sentence describing the voice>", "basePrompt": "<a system prompt instructing a model to write in this voice>"}`, sample)

		raw, err := r.llm.GenerateJSON(ctx, prompt)
		if err != nil {
			return nil, fmt.Errorf("persona analysis failed: %w", err)
		}
		if err := llm.DecodeObject(raw, &wire); err != nil {
			return nil, fmt.Errorf("persona analysis returned malformed output: %w", err)
		}
	}

	if strings.TrimSpace(wire.BasePrompt) == "" {
		return nil, fmt.Errorf("persona analysis produced an empty prompt")
	}

	persona := models.NewCustomPersona(name, wire.Description, wire.BasePrompt)
	if err := r.store.Create(ctx, persona); err != nil {
		return nil, fmt.Errorf("failed to save persona: %w", err)
	}

	return persona, nil
}

// UpdatePrompt replaces a custom persona's prompt text. Nothing else on a
// persona is mutable.
func (r *Registry) UpdatePrompt(ctx context.Context, id, basePrompt string) error {
	if _, ok := r.static[id]; ok {
		return fmt.Errorf("built-in personas cannot be modified")
	}
	if r.store == nil {
		return fmt.Errorf("persona storage is not configured")
	}
	return r.store.UpdatePrompt(ctx, id, basePrompt)
}

// Delete removes a custom persona. Built-in personas cannot be deleted.
func (r *Registry) Delete(ctx context.Context, id string) error {
	if _, ok := r.static[id]; ok {
		return fmt.Errorf("built-in personas cannot be deleted")
	}
	if r.store == nil {
		return fmt.Errorf("persona storage is not configured")
	}
	return r.store.Delete(ctx, id)
}
