package pipeline

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/postforge/linkedin-autopilot/config"
	"github.com/postforge/linkedin-autopilot/internal/llm"
	"github.com/postforge/linkedin-autopilot/internal/models"
	"github.com/postforge/linkedin-autopilot/internal/trends"
)

type stubGenerator struct {
	assets models.GeneratedAssets
	err    error
	calls  int
	prompt string
}

func (g *stubGenerator) GenerateAssets(ctx context.Context, prompt string, persona models.Persona) (models.GeneratedAssets, error) {
	g.calls++
	g.prompt = prompt
	return g.assets, g.err
}

type stubImage struct {
	url   string
	err   error
	calls int
}

func (i *stubImage) GenerateImage(ctx context.Context, prompt string) (string, error) {
	i.calls++
	return i.url, i.err
}

type stubPersonas struct{}

func (stubPersonas) Resolve(ctx context.Context, id string) models.Persona {
	return models.Persona{ID: id, Name: "Test Persona", BasePrompt: "You write tests."}
}

func newTestOrchestrator(gen *stubGenerator, img ImageSynthesizer, tr TrendFinder) *Orchestrator {
	if tr == nil {
		tr = &stubTrends{origin: trends.OriginEmpty}
	}
	assembler := NewAssembler(tr, zap.NewNop())
	return NewOrchestrator(assembler, gen, img, stubPersonas{}, zap.NewNop())
}

func TestProcessInputPreconditions(t *testing.T) {
	ctx := context.Background()

	t.Run("empty input fails before any collaborator call", func(t *testing.T) {
		gen := &stubGenerator{}
		tr := &stubTrends{}
		o := newTestOrchestrator(gen, nil, tr)

		_, err := o.ProcessInput(ctx, Request{Input: "   "}, Credentials{Gemini: "key"})

		require.ErrorIs(t, err, ErrMissingInput)
		assert.Zero(t, gen.calls)
		assert.Zero(t, tr.calls)
	})

	t.Run("missing gemini key fails before any collaborator call", func(t *testing.T) {
		gen := &stubGenerator{}
		tr := &stubTrends{}
		o := newTestOrchestrator(gen, nil, tr)

		_, err := o.ProcessInput(ctx, Request{Input: "AI agents"}, Credentials{Gemini: "  "})

		require.ErrorIs(t, err, ErrMissingCredential)
		assert.Zero(t, gen.calls)
		assert.Zero(t, tr.calls)
	})
}

func TestProcessInput(t *testing.T) {
	ctx := context.Background()
	creds := Credentials{Gemini: "key", OpenAI: "sk-test"}

	baseAssets := models.GeneratedAssets{
		TextPost:    "We need to leverage this game-changer.",
		ImagePrompt: "an office",
		VideoScript: "script",
	}

	t.Run("filters the post and resolves the image", func(t *testing.T) {
		gen := &stubGenerator{assets: baseAssets}
		img := &stubImage{url: "https://img.example/1.png"}
		o := newTestOrchestrator(gen, img, nil)

		result, err := o.ProcessInput(ctx, Request{Input: "AI agents"}, creds)

		require.NoError(t, err)
		assert.Equal(t, "https://img.example/1.png", result.Assets.ImageURL)
		lower := strings.ToLower(result.Assets.TextPost)
		assert.NotContains(t, lower, "leverage")
		assert.NotContains(t, lower, "game-changer")
		// Only the post is filtered.
		assert.Equal(t, "an office", result.Assets.ImagePrompt)
	})

	t.Run("image failure degrades instead of aborting", func(t *testing.T) {
		gen := &stubGenerator{assets: baseAssets}
		img := &stubImage{err: errors.New("content policy")}
		o := newTestOrchestrator(gen, img, nil)

		result, err := o.ProcessInput(ctx, Request{Input: "AI agents"}, creds)

		require.NoError(t, err)
		assert.Empty(t, result.Assets.ImageURL)
		require.Len(t, result.Degraded, 2) // enrichment (no signals) + image
		assert.Equal(t, "image", result.Degraded[1].Stage)
	})

	t.Run("no openai key skips the image step entirely", func(t *testing.T) {
		gen := &stubGenerator{assets: baseAssets}
		img := &stubImage{url: "https://img.example/1.png"}
		o := newTestOrchestrator(gen, img, nil)

		result, err := o.ProcessInput(ctx, Request{Input: "AI agents"}, Credentials{Gemini: "key"})

		require.NoError(t, err)
		assert.Empty(t, result.Assets.ImageURL)
		assert.Zero(t, img.calls)
	})

	t.Run("empty image prompt skips the image step", func(t *testing.T) {
		assets := baseAssets
		assets.ImagePrompt = ""
		gen := &stubGenerator{assets: assets}
		img := &stubImage{url: "https://img.example/1.png"}
		o := newTestOrchestrator(gen, img, nil)

		_, err := o.ProcessInput(ctx, Request{Input: "AI agents"}, creds)

		require.NoError(t, err)
		assert.Zero(t, img.calls)
	})

	t.Run("core generation failure propagates", func(t *testing.T) {
		gen := &stubGenerator{err: errors.New("model overloaded")}
		o := newTestOrchestrator(gen, nil, nil)

		_, err := o.ProcessInput(ctx, Request{Input: "AI agents"}, creds)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "model overloaded")
	})

	t.Run("enrichment feeds the generation prompt", func(t *testing.T) {
		gen := &stubGenerator{assets: baseAssets}
		tr := &stubTrends{
			signals: []models.TrendSignal{{Title: "Big story", Source: "S", Snippet: "x"}},
			origin:  trends.OriginLive,
		}
		o := newTestOrchestrator(gen, nil, tr)

		result, err := o.ProcessInput(ctx, Request{Input: "AI agents"}, creds)

		require.NoError(t, err)
		assert.True(t, result.Enriched)
		assert.Contains(t, gen.prompt, "Big story")
	})

	t.Run("defaults to the cso persona", func(t *testing.T) {
		gen := &stubGenerator{assets: baseAssets}
		o := newTestOrchestrator(gen, nil, nil)

		_, err := o.ProcessInput(ctx, Request{Input: strings.Repeat("brief ", 30)}, creds)
		require.NoError(t, err)
	})
}

// End-to-end demo-mode scenario: no network, no OpenAI key, clean output.
func TestProcessInputDemoScenario(t *testing.T) {
	ctx := context.Background()
	logger := zap.NewNop()

	client, err := llm.NewClient(ctx, "demo", config.ModeDemo, logger)
	require.NoError(t, err)

	provider := trends.NewProvider(client, config.ModeDemo, logger)
	assembler := NewAssembler(provider, logger)
	o := NewOrchestrator(assembler, client, nil, stubPersonas{}, logger)

	result, err := o.ProcessInput(ctx, Request{
		Input:     "AI agents and executive strategy",
		PersonaID: "cso",
	}, Credentials{Gemini: "demo"})

	require.NoError(t, err)
	assert.NotEmpty(t, result.Assets.TextPost)
	assert.Empty(t, result.Assets.ImageURL)

	lower := strings.ToLower(result.Assets.TextPost)
	for _, banned := range []string{"leverage", "game-chang", "delve", "tapestry", "synergy"} {
		assert.NotContains(t, lower, banned)
	}
}
