package pipeline

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/postforge/linkedin-autopilot/internal/models"
)

// DefaultPersonaID is used when a request names no persona.
const DefaultPersonaID = "cso"

// AssetGenerator is the core generation collaborator, satisfied by *llm.Client.
type AssetGenerator interface {
	GenerateAssets(ctx context.Context, prompt string, persona models.Persona) (models.GeneratedAssets, error)
}

// ImageSynthesizer is the optional image collaborator, satisfied by *llm.ImageClient.
type ImageSynthesizer interface {
	GenerateImage(ctx context.Context, prompt string) (string, error)
}

// PersonaResolver is satisfied by *personas.Registry.
type PersonaResolver interface {
	Resolve(ctx context.Context, id string) models.Persona
}

// Credentials are the per-request API keys. Gemini is mandatory; OpenAI
// gates the optional image step.
type Credentials struct {
	Gemini string
	OpenAI string
}

// Request is one user-facing generation request.
type Request struct {
	Input       string
	PersonaID   string
	ForceTrends bool
}

// Degradation records a soft failure that was absorbed instead of surfaced.
type Degradation struct {
	Stage  string `json:"stage"`
	Reason string `json:"reason"`
}

// Result is the composed asset bundle plus every degradation absorbed while
// producing it, so callers can tell "succeeded" from "silently degraded"
// without inspecting field emptiness.
type Result struct {
	Assets   models.GeneratedAssets `json:"assets"`
	Enriched bool                   `json:"enriched"`
	Degraded []Degradation          `json:"degraded,omitempty"`
}

// Orchestrator is the main generation entry point: enrichment, persona
// resolution, core generation, optional image synthesis and post filtering.
type Orchestrator struct {
	assembler *Assembler
	generator AssetGenerator
	image     ImageSynthesizer
	personas  PersonaResolver
	logger    *zap.Logger
}

func NewOrchestrator(
	assembler *Assembler,
	generator AssetGenerator,
	image ImageSynthesizer,
	personas PersonaResolver,
	logger *zap.Logger,
) *Orchestrator {
	return &Orchestrator{
		assembler: assembler,
		generator: generator,
		image:     image,
		personas:  personas,
		logger:    logger,
	}
}

// ProcessInput runs one full generation.
//
// Failure semantics: missing input or credentials fail hard before any
// network call. Enrichment failure is skipped silently. Image failure leaves
// ImageURL empty. Core generation failure propagates; there is no fallback
// text, because text is the product.
func (o *Orchestrator) ProcessInput(ctx context.Context, req Request, creds Credentials) (*Result, error) {
	if strings.TrimSpace(req.Input) == "" {
		return nil, ErrMissingInput
	}
	if strings.TrimSpace(creds.Gemini) == "" {
		return nil, ErrMissingCredential
	}

	personaID := req.PersonaID
	if personaID == "" {
		personaID = DefaultPersonaID
	}
	persona := o.personas.Resolve(ctx, personaID)

	result := &Result{}

	assembled := o.assembler.Assemble(ctx, req.Input, req.ForceTrends)
	result.Enriched = assembled.Enriched
	if assembled.Degraded != "" {
		result.Degraded = append(result.Degraded, Degradation{
			Stage:  "enrichment",
			Reason: assembled.Degraded,
		})
	}

	assets, err := o.generator.GenerateAssets(ctx, assembled.Prompt, persona)
	if err != nil {
		return nil, fmt.Errorf("generation failed: %w", err)
	}

	assets.ImageURL = ""
	if o.image != nil && strings.TrimSpace(creds.OpenAI) != "" && assets.ImagePrompt != "" {
		url, imgErr := o.image.GenerateImage(ctx, assets.ImagePrompt)
		if imgErr != nil {
			o.logger.Warn("image synthesis failed, continuing without image",
				zap.Error(imgErr))
			result.Degraded = append(result.Degraded, Degradation{
				Stage:  "image",
				Reason: imgErr.Error(),
			})
		} else {
			assets.ImageURL = url
		}
	}

	assets.TextPost = FilterRoboticPhrases(assets.TextPost)

	result.Assets = assets
	return result, nil
}
