package trends

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/postforge/linkedin-autopilot/config"
	"github.com/postforge/linkedin-autopilot/internal/llm"
	"github.com/postforge/linkedin-autopilot/internal/models"
)

const (
	maxSignals  = 3
	demoLatency = time.Second
)

// Origin reports how a trend result was produced, so callers can tell a real
// live result from a silently degraded one without inspecting field contents.
type Origin int

const (
	OriginLive Origin = iota
	OriginDemo
	OriginFallback
	OriginEmpty
)

func (o Origin) String() string {
	switch o {
	case OriginLive:
		return "live"
	case OriginDemo:
		return "demo"
	case OriginFallback:
		return "fallback"
	default:
		return "empty"
	}
}

// Searcher is the grounded-search collaborator, satisfied by *llm.Client.
type Searcher interface {
	GroundedSearch(ctx context.Context, prompt string) (string, error)
}

// Provider fetches recent trend snippets for a topic. Absence of signals is
// an empty slice; no code path returns an error to the caller.
type Provider struct {
	search  Searcher
	mode    config.Mode
	latency time.Duration
	logger  *zap.Logger
}

func NewProvider(search Searcher, mode config.Mode, logger *zap.Logger) *Provider {
	return &Provider{
		search:  search,
		mode:    mode,
		latency: demoLatency,
		logger:  logger,
	}
}

type signalWire struct {
	Title   string `json:"title"`
	Source  string `json:"source"`
	Snippet string `json:"snippet"`
	URL     string `json:"url"`
}

// FindTrends returns up to three trend signals for the topic.
// Rate-limited upstream resolves to a fixed two-item fallback; any other
// failure resolves to an empty slice. It never returns an error.
func (p *Provider) FindTrends(ctx context.Context, topic string) ([]models.TrendSignal, Origin) {
	if p.mode == config.ModeDemo {
		// Simulated latency so demo behaves like a real search.
		select {
		case <-time.After(p.latency):
		case <-ctx.Done():
		}
		return canonicalSignals(topic), OriginDemo
	}

	prompt := fmt.Sprintf(`Search for the most recent news and discussions about: %q

Return ONLY a JSON array of at most %d objects, each shaped as:
{"title": "...", "source": "...", "snippet": "one or two sentences", "url": "..."}

No prose before or after the JSON.`, topic, maxSignals)

	raw, err := p.search.GroundedSearch(ctx, prompt)
	if err != nil {
		if errors.Is(err, llm.ErrRateLimited) {
			p.logger.Warn("trend search rate limited, serving fallback signals",
				zap.String("topic", topic))
			return canonicalSignals(topic)[:2], OriginFallback
		}
		p.logger.Warn("trend search failed",
			zap.String("topic", topic), zap.Error(err))
		return []models.TrendSignal{}, OriginEmpty
	}

	var wires []signalWire
	if err := llm.DecodeItems(raw, &wires); err != nil {
		p.logger.Warn("trend search returned unparsable response",
			zap.String("topic", topic), zap.Error(err))
		return []models.TrendSignal{}, OriginEmpty
	}

	if len(wires) > maxSignals {
		wires = wires[:maxSignals]
	}

	signals := make([]models.TrendSignal, 0, len(wires))
	for _, w := range wires {
		if strings.TrimSpace(w.Title) == "" {
			continue
		}
		signals = append(signals, models.TrendSignal{
			Title:   w.Title,
			Source:  w.Source,
			Snippet: w.Snippet,
			URL:     w.URL,
		})
	}

	if len(signals) == 0 {
		return signals, OriginEmpty
	}
	return signals, OriginLive
}

// canonicalSignals is the single mock dataset behind both the demo path and
// the rate-limit fallback (which serves its first two entries).
func canonicalSignals(topic string) []models.TrendSignal {
	label := strings.TrimSpace(topic)
	if label == "" {
		label = "the market"
	}

	return []models.TrendSignal{
		{
			Title:   fmt.Sprintf("Enterprise adoption of %s accelerates ahead of forecasts", label),
			Source:  "Industry Wire",
			Snippet: fmt.Sprintf("New survey data shows budget allocation for %s nearly doubled quarter over quarter, with mid-market firms closing the gap on early adopters.", label),
			URL:     "https://example.com/industry-wire/adoption",
		},
		{
			Title:   fmt.Sprintf("The hidden operational cost of %s nobody budgets for", label),
			Source:  "Operator Weekly",
			Snippet: fmt.Sprintf("Practitioners report that second-order maintenance work around %s consumes up to 30%% of the initially projected savings.", label),
			URL:     "https://example.com/operator-weekly/hidden-cost",
		},
		{
			Title:   fmt.Sprintf("Analysts split on whether %s is a durable shift or a cycle top", label),
			Source:  "Signal Desk",
			Snippet: fmt.Sprintf("A contrarian research note argues the current wave of %s investment mirrors previous hype cycles, while bulls point to retention data.", label),
			URL:     "https://example.com/signal-desk/analyst-split",
		},
	}
}
