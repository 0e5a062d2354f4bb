package pipeline

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/postforge/linkedin-autopilot/internal/models"
	"github.com/postforge/linkedin-autopilot/internal/trends"
)

// Inputs shorter than this with no line break are treated as bare topics that
// benefit from external context; anything longer is assumed to be a brief.
const enrichmentLengthThreshold = 100

// TrendFinder is satisfied by *trends.Provider.
type TrendFinder interface {
	FindTrends(ctx context.Context, topic string) ([]models.TrendSignal, trends.Origin)
}

// Assembler decides whether to enrich raw input with a trend signal and
// builds the final generation prompt.
type Assembler struct {
	trends TrendFinder
	logger *zap.Logger
}

func NewAssembler(trends TrendFinder, logger *zap.Logger) *Assembler {
	return &Assembler{trends: trends, logger: logger}
}

// AssembleResult carries the final prompt plus whether and how enrichment
// degraded, so the orchestrator can report it without re-deriving.
type AssembleResult struct {
	Prompt   string
	Enriched bool
	Degraded string // empty when enrichment succeeded or was not attempted
}

// ShouldEnrich reports whether trend enrichment should run for the input.
func ShouldEnrich(input string, force bool) bool {
	if force {
		return true
	}
	return len(input) < enrichmentLengthThreshold && !strings.Contains(input, "\n")
}

// Assemble runs the enrichment policy. Enrichment failure is never fatal:
// on any trouble the original input passes through unmodified.
func (a *Assembler) Assemble(ctx context.Context, input string, force bool) AssembleResult {
	if !ShouldEnrich(input, force) {
		return AssembleResult{Prompt: input}
	}

	signals, origin := a.findTrendsSafely(ctx, input)

	if len(signals) == 0 {
		a.logger.Warn("enrichment produced no signals, using raw input",
			zap.String("origin", origin.String()))
		return AssembleResult{Prompt: input, Degraded: "no trend signals"}
	}

	first := signals[0]
	prompt := fmt.Sprintf(`Topic: %s

Current context (from %s): %s
%s

Write about the topic and connect this current development to a durable principle your audience can act on. Do not merely summarize the news.`,
		input, first.Source, first.Title, first.Snippet)

	res := AssembleResult{Prompt: prompt, Enriched: true}
	if origin == trends.OriginFallback {
		res.Degraded = "trend search rate limited"
	}
	return res
}

// findTrendsSafely shields the assembler from a misbehaving provider. The
// provider's contract is to never fail, but enrichment being optional means
// we do not get to assume that.
func (a *Assembler) findTrendsSafely(ctx context.Context, topic string) (signals []models.TrendSignal, origin trends.Origin) {
	defer func() {
		if r := recover(); r != nil {
			a.logger.Warn("trend provider panicked during enrichment",
				zap.Any("panic", r))
			signals, origin = nil, trends.OriginEmpty
		}
	}()

	signals, origin = a.trends.FindTrends(ctx, topic)
	return signals, origin
}
