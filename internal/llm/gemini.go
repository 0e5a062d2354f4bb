package llm

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/postforge/linkedin-autopilot/config"
	"github.com/postforge/linkedin-autopilot/internal/models"
)

const defaultModel = "gemini-2.5-flash"

// Client wraps the Gemini API for text generation, structured JSON output
// and grounded search. In demo mode it never touches the network.
type Client struct {
	genai  *genai.Client
	model  string
	mode   config.Mode
	logger *zap.Logger
}

func NewClient(ctx context.Context, apiKey string, mode config.Mode, logger *zap.Logger) (*Client, error) {
	c := &Client{model: defaultModel, mode: mode, logger: logger}

	if mode == config.ModeDemo {
		return c, nil
	}

	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("gemini api key is required")
	}

	gc, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	c.genai = gc
	return c, nil
}

// Generate runs one plain-text generation call.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	if c.mode == config.ModeDemo {
		return fmt.Sprintf("Here is a considered take.\n\n%s", firstLine(prompt)), nil
	}
	return c.generate(ctx, prompt, nil)
}

// GenerateJSON runs one generation call with a JSON response MIME type.
// The result still goes through CleanJSON before decoding; some models fence
// their output regardless.
func (c *Client) GenerateJSON(ctx context.Context, prompt string) (string, error) {
	if c.mode == config.ModeDemo {
		return "", fmt.Errorf("demo mode: no live JSON generation")
	}
	return c.generate(ctx, prompt, &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
	})
}

// GroundedSearch runs one generation call with the Google Search tool
// enabled. JSON output is requested in the prompt rather than via MIME type;
// grounding and enforced JSON are mutually exclusive upstream.
func (c *Client) GroundedSearch(ctx context.Context, prompt string) (string, error) {
	if c.mode == config.ModeDemo {
		return "", fmt.Errorf("demo mode: no live search")
	}
	return c.generate(ctx, prompt, &genai.GenerateContentConfig{
		Tools: []*genai.Tool{
			{GoogleSearch: &genai.GoogleSearch{}},
		},
	})
}

func (c *Client) generate(ctx context.Context, prompt string, cfg *genai.GenerateContentConfig) (string, error) {
	resp, err := c.genai.Models.GenerateContent(ctx, c.model, genai.Text(prompt), cfg)
	if err != nil {
		return "", classify(err)
	}

	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("empty model response")
	}

	return text, nil
}

// generatedAssetsWire is the shape the model is instructed to emit.
type generatedAssetsWire struct {
	TextPost        string   `json:"textPost"`
	ImagePrompt     string   `json:"imagePrompt"`
	VideoScript     string   `json:"videoScript"`
	XThread         []string `json:"xThread"`
	SubstackEssay   string   `json:"substackEssay"`
	AudioScript     string   `json:"audioScript"`
	ThumbnailPrompt string   `json:"thumbnailPrompt"`
	VisualConcept   string   `json:"visualConcept"`
	RAGConcepts     []string `json:"ragConcepts"`
}

// GenerateAssets is the core generation call: one request producing the full
// asset bundle (minus the image URL, which is synthesized separately).
// There is no fallback here; text is the product, so failures propagate.
func (c *Client) GenerateAssets(ctx context.Context, prompt string, persona models.Persona) (models.GeneratedAssets, error) {
	if c.mode == config.ModeDemo {
		return demoAssets(prompt, persona), nil
	}

	fullPrompt := fmt.Sprintf(`%s

Briefing:
%s

Respond with a single JSON object, no surrounding prose, with exactly these keys:
{
  "textPost": "the LinkedIn post",
  "imagePrompt": "a prompt for an accompanying image",
  "videoScript": "a 60-second video script",
  "xThread": ["tweet 1", "tweet 2", "tweet 3"],
  "substackEssay": "a 400-word essay expanding the post",
  "audioScript": "a 90-second audio narration script",
  "thumbnailPrompt": "a prompt for a video thumbnail",
  "visualConcept": "a one-line visual concept",
  "ragConcepts": ["concept 1", "concept 2", "concept 3"]
}`, persona.BasePrompt, prompt)

	raw, err := c.GenerateJSON(ctx, fullPrompt)
	if err != nil {
		return models.GeneratedAssets{}, fmt.Errorf("core generation failed: %w", err)
	}

	var wire generatedAssetsWire
	if err := DecodeObject(raw, &wire); err != nil {
		return models.GeneratedAssets{}, fmt.Errorf("core generation returned malformed assets: %w", err)
	}

	if strings.TrimSpace(wire.TextPost) == "" {
		return models.GeneratedAssets{}, fmt.Errorf("core generation returned an empty post")
	}

	return models.GeneratedAssets{
		TextPost:        wire.TextPost,
		ImagePrompt:     wire.ImagePrompt,
		VideoScript:     wire.VideoScript,
		XThread:         wire.XThread,
		SubstackEssay:   wire.SubstackEssay,
		AudioScript:     wire.AudioScript,
		ThumbnailPrompt: wire.ThumbnailPrompt,
		VisualConcept:   wire.VisualConcept,
		RAGConcepts:     wire.RAGConcepts,
	}, nil
}

func demoAssets(prompt string, persona models.Persona) models.GeneratedAssets {
	topic := firstLine(prompt)

	return models.GeneratedAssets{
		TextPost: fmt.Sprintf(`Most teams get this wrong about %s.

They optimize for activity instead of outcomes. The calendar fills up, the dashboards look busy, and the actual result barely moves.

I watched a team cut their process in half last quarter. Nothing broke. The only thing they lost was the illusion of progress.

What would you stop doing tomorrow if nobody was watching?

— %s`, topic, persona.Name),
		ImagePrompt: fmt.Sprintf("Minimalist editorial illustration about %s, muted corporate palette, isometric style", topic),
		VideoScript: fmt.Sprintf("[HOOK, 0-5s] Everyone talks about %s. Almost nobody measures it.\n[BODY, 5-45s] Walk through one concrete example and the single number that changed.\n[CTA, 45-60s] Follow for one blunt operating insight per day.", topic),
		XThread: []string{
			fmt.Sprintf("Unpopular opinion about %s: the hard part was never the tooling. 1/3", topic),
			"The hard part is deciding what you will deliberately do badly so the thing that matters gets done well. 2/3",
			"Pick one metric. Delete the rest of the dashboard. Report back in 30 days. 3/3",
		},
		SubstackEssay:   fmt.Sprintf("There is a quiet failure mode in how organizations approach %s, and it rarely shows up in any report. It shows up eighteen months later as attrition, missed launches, and a strategy document nobody can remember writing. This essay is about catching it early.", topic),
		AudioScript:     fmt.Sprintf("Today, ninety seconds on %s. Not the version from the conference keynote. The version from the Tuesday standup where the real decision got made.", topic),
		ThumbnailPrompt: fmt.Sprintf("Bold typographic thumbnail, dark background, three words summarizing %s", topic),
		VisualConcept:   fmt.Sprintf("A split-frame before/after showing the cost of ignoring %s", topic),
		RAGConcepts:     []string{"second-order effects", "operating cadence", "decision hygiene"},
	}
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	if len(s) > 80 {
		s = s[:80]
	}
	if s == "" {
		s = "modern leadership"
	}
	return s
}
