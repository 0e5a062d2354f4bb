package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/slack-go/slack"
	"go.uber.org/zap"

	"github.com/postforge/linkedin-autopilot/internal/models"
)

// ProductName identifies this system in outbound webhook payloads.
const ProductName = "linkedin-autopilot"

const defaultTelegramBaseURL = "https://api.telegram.org"

// ErrNoChannelConfigured is returned by PushToChat when every channel in the
// fallback chain is unconfigured or failed.
var ErrNoChannelConfigured = errors.New("no notification channel configured")

// Options configures the outbound channels. Empty fields disable a channel.
type Options struct {
	SlackWebhookURL     string
	TeamsWebhookURL     string
	TelegramBotToken    string
	TelegramChatID      string
	TelegramBaseURL     string // overridable for tests; defaults to the Bot API
	SchedulerWebhookURL string
}

// Bridge delivers a finished draft to one outbound channel. The chat path
// tries Slack, then Teams, then Telegram; each attempt is independent and a
// failure never prevents trying the next channel.
type Bridge struct {
	opts       Options
	httpClient *http.Client
	logger     *zap.Logger
}

func NewBridge(opts Options, logger *zap.Logger) *Bridge {
	if opts.TelegramBaseURL == "" {
		opts.TelegramBaseURL = defaultTelegramBaseURL
	}
	return &Bridge{
		opts:       opts,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		logger:     logger,
	}
}

// PushToChat forwards a draft down the fixed fallback chain and returns the
// name of the channel that accepted it.
func (b *Bridge) PushToChat(ctx context.Context, draft *models.GhostDraft) (string, error) {
	if b.opts.SlackWebhookURL != "" {
		if err := b.sendSlack(ctx, draft); err != nil {
			b.logger.Warn("slack delivery failed, trying next channel", zap.Error(err))
		} else {
			return "slack", nil
		}
	}

	if b.opts.TeamsWebhookURL != "" {
		if err := b.sendTeams(ctx, draft); err != nil {
			b.logger.Warn("teams delivery failed, trying next channel", zap.Error(err))
		} else {
			return "teams", nil
		}
	}

	if b.opts.TelegramBotToken != "" && b.opts.TelegramChatID != "" {
		if err := b.sendTelegram(ctx, draft); err != nil {
			b.logger.Warn("telegram delivery failed", zap.Error(err))
		} else {
			return "telegram", nil
		}
	}

	return "", ErrNoChannelConfigured
}

func (b *Bridge) sendSlack(ctx context.Context, draft *models.GhostDraft) error {
	msg := &slack.WebhookMessage{
		Text:      fmt.Sprintf("*New ghost draft* (%s)\n\n%s", draft.Topic, draft.Assets.TextPost),
		Username:  "Ghost Agent",
		IconEmoji: ":ghost:",
	}
	return slack.PostWebhookContext(ctx, b.opts.SlackWebhookURL, msg)
}

// teamsCard follows the legacy MessageCard schema Teams incoming webhooks
// accept.
type teamsCard struct {
	Type       string         `json:"@type"`
	Context    string         `json:"@context"`
	ThemeColor string         `json:"themeColor"`
	Summary    string         `json:"summary"`
	Sections   []teamsSection `json:"sections"`
}

type teamsSection struct {
	ActivityTitle    string `json:"activityTitle"`
	ActivitySubtitle string `json:"activitySubtitle"`
	Text             string `json:"text"`
}

func (b *Bridge) sendTeams(ctx context.Context, draft *models.GhostDraft) error {
	card := teamsCard{
		Type:       "MessageCard",
		Context:    "http://schema.org/extensions",
		ThemeColor: "0A66C2",
		Summary:    "New ghost draft",
		Sections: []teamsSection{
			{
				ActivityTitle:    "New ghost draft",
				ActivitySubtitle: draft.Topic,
				Text:             draft.Assets.TextPost,
			},
		},
	}
	return b.postJSON(ctx, b.opts.TeamsWebhookURL, card)
}

func (b *Bridge) sendTelegram(ctx context.Context, draft *models.GhostDraft) error {
	url := fmt.Sprintf("%s/bot%s/sendMessage", b.opts.TelegramBaseURL, b.opts.TelegramBotToken)
	body := map[string]string{
		"chat_id":    b.opts.TelegramChatID,
		"text":       fmt.Sprintf("*New ghost draft* (%s)\n\n%s", draft.Topic, draft.Assets.TextPost),
		"parse_mode": "Markdown",
	}
	return b.postJSON(ctx, url, body)
}

// SchedulePayload is the generic webhook body sent to external schedulers.
type SchedulePayload struct {
	Source        string         `json:"source"`
	Timestamp     string         `json:"timestamp"`
	Content       string         `json:"content"`
	Platform      string         `json:"platform"` // "linkedin" or "twitter"
	ScheduledTime string         `json:"scheduledTime,omitempty"`
	Metadata      map[string]any `json:"metadata,omitempty"`
}

// SendWebhook posts content to the configured external scheduler. Single
// shot; no fallback chain.
func (b *Bridge) SendWebhook(ctx context.Context, payload SchedulePayload) error {
	if b.opts.SchedulerWebhookURL == "" {
		return fmt.Errorf("scheduler webhook is not configured")
	}

	if payload.Source == "" {
		payload.Source = ProductName
	}
	if payload.Timestamp == "" {
		payload.Timestamp = time.Now().UTC().Format(time.RFC3339)
	}
	if payload.Platform == "" {
		payload.Platform = "linkedin"
	}

	return b.postJSON(ctx, b.opts.SchedulerWebhookURL, payload)
}

func (b *Bridge) postJSON(ctx context.Context, url string, body any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(data))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := b.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to deliver webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("webhook returned status %d: %s", resp.StatusCode, string(respBody))
	}

	return nil
}
