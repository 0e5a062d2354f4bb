package ghost

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"

	"github.com/postforge/linkedin-autopilot/internal/models"
	"github.com/postforge/linkedin-autopilot/internal/personas"
	"github.com/postforge/linkedin-autopilot/internal/trends"
)

// sectors is the fixed catalog the agent hunts across. One is chosen
// uniformly at random per run.
var sectors = []string{
	"SaaS",
	"FinTech",
	"Supply Chain",
	"Cybersecurity",
	"Healthcare Technology",
	"E-commerce",
	"Artificial Intelligence",
	"Venture Capital",
	"Remote Work",
	"Climate Tech",
}

const defaultWorkers = 3

// Gap statuses reported per item by AutoFill.
const (
	GapStatusFilled = "filled"
	GapStatusFailed = "failed"
)

// TrendFinder is satisfied by *trends.Provider.
type TrendFinder interface {
	FindTrends(ctx context.Context, topic string) ([]models.TrendSignal, trends.Origin)
}

// AssetGenerator is satisfied by *llm.Client. The agent talks to the core
// generation collaborator directly; there is no user input to validate and
// no post filtering beyond persona injection.
type AssetGenerator interface {
	GenerateAssets(ctx context.Context, prompt string, persona models.Persona) (models.GeneratedAssets, error)
}

// PersonaResolver is satisfied by *personas.Registry.
type PersonaResolver interface {
	Resolve(ctx context.Context, id string) models.Persona
}

// DraftStore persists finished drafts for later human review. Optional.
type DraftStore interface {
	Create(ctx context.Context, draft *models.GhostDraft) error
}

// ScheduleStore receives auto-filled posts. Optional.
type ScheduleStore interface {
	Create(ctx context.Context, post *models.ScheduledPost) error
}

// Agent is the unattended drafting loop: it picks a sector, hunts for a
// trend, and produces standalone drafts without a live user request.
type Agent struct {
	trends    TrendFinder
	generator AssetGenerator
	personas  PersonaResolver
	drafts    DraftStore
	schedule  ScheduleStore
	workers   int64
	logger    *zap.Logger
}

func NewAgent(
	trends TrendFinder,
	generator AssetGenerator,
	personas PersonaResolver,
	drafts DraftStore,
	schedule ScheduleStore,
	logger *zap.Logger,
) *Agent {
	return &Agent{
		trends:    trends,
		generator: generator,
		personas:  personas,
		drafts:    drafts,
		schedule:  schedule,
		workers:   defaultWorkers,
		logger:    logger,
	}
}

// RunOnce produces one unread GhostDraft. The agent can always draft: with
// zero live signals it falls back to inventing a "silent crisis" scenario
// for the sector, so Trend is never empty.
func (a *Agent) RunOnce(ctx context.Context) (*models.GhostDraft, error) {
	sector := sectors[rand.IntN(len(sectors))]

	signals, origin := a.trends.FindTrends(ctx, sector)

	var trendLabel, briefing string
	if len(signals) > 0 {
		first := signals[0]
		trendLabel = first.Title
		briefing = fmt.Sprintf(`Newsjack this development in the %s sector.

Headline: %s
Source: %s
Context: %s

Write a post that uses this story as the hook but lands on an operating principle that outlives the news cycle.`,
			sector, first.Title, first.Source, first.Snippet)
	} else {
		trendLabel = fmt.Sprintf("The silent crisis building in %s", sector)
		briefing = fmt.Sprintf(`No live signal is available. Invent a plausible "silent crisis" quietly building in the %s sector: a slow-moving problem operators are ignoring because no single quarter makes it urgent. Describe it concretely and tell the reader what to check in their own organization this week.`, sector)
	}

	a.logger.Info("ghost agent drafting",
		zap.String("sector", sector),
		zap.String("trend_origin", origin.String()))

	persona := a.personas.Resolve(ctx, personas.GhostPersonaID)

	assets, err := a.generator.GenerateAssets(ctx, briefing, persona)
	if err != nil {
		return nil, fmt.Errorf("ghost generation failed: %w", err)
	}

	draft := models.NewGhostDraft(sector, trendLabel, assets)
	draft.ID = uuid.New().String()

	if a.drafts != nil {
		if err := a.drafts.Create(ctx, draft); err != nil {
			return nil, fmt.Errorf("failed to persist ghost draft: %w", err)
		}
	}

	return draft, nil
}

// Gap is one open calendar slot to auto-fill.
type Gap struct {
	At       string `json:"at"` // RFC3339
	Platform string `json:"platform"`
}

// GapResult reports one gap's outcome. One gap failing never aborts the
// rest of the batch.
type GapResult struct {
	Gap     Gap    `json:"gap"`
	Status  string `json:"status"`
	DraftID string `json:"draft_id,omitempty"`
	Error   string `json:"error,omitempty"`
}

// AutoFill drafts and schedules content for every gap with a bounded worker
// pool. Results are returned in input order regardless of completion order.
func (a *Agent) AutoFill(ctx context.Context, gaps []Gap) []GapResult {
	results := make([]GapResult, len(gaps))

	sem := semaphore.NewWeighted(a.workers)
	var wg sync.WaitGroup

	for i, gap := range gaps {
		if err := sem.Acquire(ctx, 1); err != nil {
			for j := i; j < len(gaps); j++ {
				results[j] = GapResult{Gap: gaps[j], Status: GapStatusFailed, Error: err.Error()}
			}
			break
		}

		wg.Add(1)
		go func(i int, gap Gap) {
			defer wg.Done()
			defer sem.Release(1)
			results[i] = a.fillGap(ctx, gap)
		}(i, gap)
	}

	wg.Wait()
	return results
}

func (a *Agent) fillGap(ctx context.Context, gap Gap) GapResult {
	draft, err := a.RunOnce(ctx)
	if err != nil {
		a.logger.Warn("auto-fill gap failed",
			zap.String("at", gap.At), zap.Error(err))
		return GapResult{Gap: gap, Status: GapStatusFailed, Error: err.Error()}
	}

	if a.schedule != nil {
		at, parseErr := parseGapTime(gap.At)
		if parseErr != nil {
			return GapResult{Gap: gap, Status: GapStatusFailed, Error: parseErr.Error()}
		}

		platform := gap.Platform
		if platform == "" {
			platform = "linkedin"
		}

		post := models.NewScheduledPost(draft.Assets.TextPost, platform, at)
		if err := a.schedule.Create(ctx, post); err != nil {
			return GapResult{Gap: gap, Status: GapStatusFailed, Error: err.Error()}
		}
	}

	return GapResult{Gap: gap, Status: GapStatusFilled, DraftID: draft.ID}
}
