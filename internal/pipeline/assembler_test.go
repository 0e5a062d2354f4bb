package pipeline

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/postforge/linkedin-autopilot/internal/models"
	"github.com/postforge/linkedin-autopilot/internal/trends"
)

type stubTrends struct {
	signals []models.TrendSignal
	origin  trends.Origin
	panics  bool
	calls   int
}

func (s *stubTrends) FindTrends(ctx context.Context, topic string) ([]models.TrendSignal, trends.Origin) {
	s.calls++
	if s.panics {
		panic("provider broke its contract")
	}
	return s.signals, s.origin
}

func TestShouldEnrich(t *testing.T) {
	long := strings.Repeat("a", 120)

	t.Run("short single-line input enriches", func(t *testing.T) {
		assert.True(t, ShouldEnrich("AI agents", false))
	})

	t.Run("force always enriches", func(t *testing.T) {
		assert.True(t, ShouldEnrich(long, true))
		assert.True(t, ShouldEnrich("a\nb", true))
	})

	t.Run("long input does not enrich", func(t *testing.T) {
		assert.False(t, ShouldEnrich(long, false))
	})

	t.Run("multi-line input does not enrich", func(t *testing.T) {
		assert.False(t, ShouldEnrich("short\nbrief", false))
	})
}

func TestAssemble(t *testing.T) {
	ctx := context.Background()

	t.Run("folds the first signal into the prompt", func(t *testing.T) {
		st := &stubTrends{
			signals: []models.TrendSignal{
				{Title: "Chips shortage returns", Source: "Signal Desk", Snippet: "Fabs report backlog."},
				{Title: "Second story", Source: "Other", Snippet: "ignored"},
			},
			origin: trends.OriginLive,
		}
		a := NewAssembler(st, zap.NewNop())

		res := a.Assemble(ctx, "semiconductors", false)

		assert.True(t, res.Enriched)
		assert.Empty(t, res.Degraded)
		assert.Contains(t, res.Prompt, "semiconductors")
		assert.Contains(t, res.Prompt, "Chips shortage returns")
		assert.Contains(t, res.Prompt, "Signal Desk")
		assert.Contains(t, res.Prompt, "durable principle")
		assert.NotContains(t, res.Prompt, "Second story")
	})

	t.Run("skips enrichment for a full brief", func(t *testing.T) {
		st := &stubTrends{}
		a := NewAssembler(st, zap.NewNop())

		brief := strings.Repeat("detailed brief ", 10)
		res := a.Assemble(ctx, brief, false)

		assert.Equal(t, brief, res.Prompt)
		assert.False(t, res.Enriched)
		assert.Zero(t, st.calls)
	})

	t.Run("zero signals degrades to raw input", func(t *testing.T) {
		st := &stubTrends{origin: trends.OriginEmpty}
		a := NewAssembler(st, zap.NewNop())

		res := a.Assemble(ctx, "fintech", false)

		assert.Equal(t, "fintech", res.Prompt)
		assert.False(t, res.Enriched)
		assert.NotEmpty(t, res.Degraded)
	})

	t.Run("fallback signals enrich but record the degradation", func(t *testing.T) {
		st := &stubTrends{
			signals: []models.TrendSignal{{Title: "Fallback story", Source: "S", Snippet: "x"}},
			origin:  trends.OriginFallback,
		}
		a := NewAssembler(st, zap.NewNop())

		res := a.Assemble(ctx, "fintech", false)

		assert.True(t, res.Enriched)
		assert.Equal(t, "trend search rate limited", res.Degraded)
	})

	t.Run("a panicking provider never aborts assembly", func(t *testing.T) {
		a := NewAssembler(&stubTrends{panics: true}, zap.NewNop())

		res := a.Assemble(ctx, "fintech", false)

		assert.Equal(t, "fintech", res.Prompt)
		assert.False(t, res.Enriched)
	})
}
