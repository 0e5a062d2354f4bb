package llm

import (
	"context"
	"fmt"
	"net/url"

	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"go.uber.org/zap"

	"github.com/postforge/linkedin-autopilot/config"
)

// ImageClient synthesizes an image for a finished post. The whole subsystem
// is optional: callers treat any failure as a soft miss and leave the image
// URL empty.
type ImageClient struct {
	client openai.Client
	mode   config.Mode
	logger *zap.Logger
}

func NewImageClient(apiKey string, mode config.Mode, logger *zap.Logger) *ImageClient {
	return &ImageClient{
		client: openai.NewClient(option.WithAPIKey(apiKey)),
		mode:   mode,
		logger: logger,
	}
}

// GenerateImage turns an image prompt into a hosted image URL.
func (c *ImageClient) GenerateImage(ctx context.Context, prompt string) (string, error) {
	if c.mode == config.ModeDemo {
		return demoImageURL(prompt), nil
	}

	resp, err := c.client.Images.Generate(ctx, openai.ImageGenerateParams{
		Prompt: prompt,
		Model:  openai.ImageModelDallE3,
		Size:   openai.ImageGenerateParamsSize1024x1024,
		N:      openai.Int(1),
	})
	if err != nil {
		return "", fmt.Errorf("image generation failed: %w", err)
	}

	if len(resp.Data) == 0 || resp.Data[0].URL == "" {
		return "", fmt.Errorf("image generation returned no url")
	}

	return resp.Data[0].URL, nil
}

func demoImageURL(prompt string) string {
	label := prompt
	if len(label) > 40 {
		label = label[:40]
	}
	return "https://placehold.co/1024x1024/png?text=" + url.QueryEscape(label)
}
