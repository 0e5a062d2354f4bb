package ghost

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/postforge/linkedin-autopilot/internal/models"
	"github.com/postforge/linkedin-autopilot/internal/trends"
)

type stubTrends struct {
	signals []models.TrendSignal
	origin  trends.Origin
}

func (s stubTrends) FindTrends(ctx context.Context, topic string) ([]models.TrendSignal, trends.Origin) {
	return s.signals, s.origin
}

type stubGenerator struct {
	mu      sync.Mutex
	prompts []string
	assets  models.GeneratedAssets
	err     error
}

func (s *stubGenerator) GenerateAssets(ctx context.Context, prompt string, persona models.Persona) (models.GeneratedAssets, error) {
	s.mu.Lock()
	s.prompts = append(s.prompts, prompt)
	s.mu.Unlock()
	return s.assets, s.err
}

type stubPersonas struct{}

func (stubPersonas) Resolve(ctx context.Context, id string) models.Persona {
	return models.Persona{ID: id, Name: "Test", BasePrompt: "base"}
}

type memDrafts struct {
	mu     sync.Mutex
	drafts []*models.GhostDraft
	err    error
}

func (m *memDrafts) Create(ctx context.Context, draft *models.GhostDraft) error {
	if m.err != nil {
		return m.err
	}
	m.mu.Lock()
	m.drafts = append(m.drafts, draft)
	m.mu.Unlock()
	return nil
}

// memSchedule fails Create for posts scheduled at any time in failAt.
type memSchedule struct {
	mu     sync.Mutex
	posts  []*models.ScheduledPost
	failAt map[string]bool
}

func (m *memSchedule) Create(ctx context.Context, post *models.ScheduledPost) error {
	if post.ScheduledAt != nil && m.failAt[post.ScheduledAt.Format(time.RFC3339)] {
		return errors.New("schedule storage rejected the slot")
	}
	m.mu.Lock()
	m.posts = append(m.posts, post)
	m.mu.Unlock()
	return nil
}

func TestRunOnce(t *testing.T) {
	ctx := context.Background()
	logger := zap.NewNop()
	assets := models.GeneratedAssets{TextPost: "drafted post", ImagePrompt: "img"}

	t.Run("newsjacks the first live signal", func(t *testing.T) {
		finder := stubTrends{
			signals: []models.TrendSignal{{
				Title:   "Acme raises Series C",
				Source:  "TechDaily",
				Snippet: "Acme closed a $90M round.",
			}},
			origin: trends.OriginLive,
		}
		gen := &stubGenerator{assets: assets}
		store := &memDrafts{}
		agent := NewAgent(finder, gen, stubPersonas{}, store, nil, logger)

		draft, err := agent.RunOnce(ctx)
		require.NoError(t, err)

		assert.Equal(t, "Acme raises Series C", draft.Trend)
		assert.Equal(t, models.DraftStatusUnread, draft.Status)
		assert.NotEmpty(t, draft.ID)
		assert.NotEmpty(t, draft.Topic)
		require.Len(t, gen.prompts, 1)
		assert.Contains(t, gen.prompts[0], "Acme raises Series C")
		assert.Contains(t, gen.prompts[0], "TechDaily")
		require.Len(t, store.drafts, 1)
		assert.Same(t, draft, store.drafts[0])
	})

	t.Run("invents a silent crisis when no signals exist", func(t *testing.T) {
		gen := &stubGenerator{assets: assets}
		agent := NewAgent(stubTrends{origin: trends.OriginEmpty}, gen, stubPersonas{}, nil, nil, logger)

		draft, err := agent.RunOnce(ctx)
		require.NoError(t, err)

		assert.NotEmpty(t, draft.Trend)
		assert.Contains(t, draft.Trend, "silent crisis")
		require.Len(t, gen.prompts, 1)
		assert.Contains(t, gen.prompts[0], "silent crisis")
	})

	t.Run("generation failure aborts the draft", func(t *testing.T) {
		gen := &stubGenerator{err: errors.New("model unavailable")}
		agent := NewAgent(stubTrends{}, gen, stubPersonas{}, nil, nil, logger)

		draft, err := agent.RunOnce(ctx)
		assert.Nil(t, draft)
		assert.ErrorContains(t, err, "ghost generation failed")
	})

	t.Run("persistence failure surfaces", func(t *testing.T) {
		gen := &stubGenerator{assets: assets}
		store := &memDrafts{err: errors.New("db down")}
		agent := NewAgent(stubTrends{}, gen, stubPersonas{}, store, nil, logger)

		_, err := agent.RunOnce(ctx)
		assert.ErrorContains(t, err, "failed to persist ghost draft")
	})
}

func TestAutoFill(t *testing.T) {
	ctx := context.Background()
	logger := zap.NewNop()
	assets := models.GeneratedAssets{TextPost: "drafted post"}

	base := time.Date(2026, 9, 2, 9, 0, 0, 0, time.UTC)
	gapAt := func(i int) string {
		return base.Add(time.Duration(i) * 4 * time.Hour).Format(time.RFC3339)
	}

	t.Run("fills every gap and preserves input order", func(t *testing.T) {
		gaps := make([]Gap, 5)
		for i := range gaps {
			gaps[i] = Gap{At: gapAt(i), Platform: "linkedin"}
		}

		gen := &stubGenerator{assets: assets}
		sched := &memSchedule{}
		agent := NewAgent(stubTrends{origin: trends.OriginEmpty}, gen, stubPersonas{}, nil, sched, logger)

		results := agent.AutoFill(ctx, gaps)
		require.Len(t, results, 5)
		for i, r := range results {
			assert.Equal(t, gaps[i].At, r.Gap.At)
			assert.Equal(t, GapStatusFilled, r.Status)
			assert.NotEmpty(t, r.DraftID)
		}
		assert.Len(t, sched.posts, 5)
	})

	t.Run("one failing gap does not abort the batch", func(t *testing.T) {
		gaps := make([]Gap, 4)
		for i := range gaps {
			gaps[i] = Gap{At: gapAt(i)}
		}

		gen := &stubGenerator{assets: assets}
		sched := &memSchedule{failAt: map[string]bool{gaps[2].At: true}}
		agent := NewAgent(stubTrends{origin: trends.OriginEmpty}, gen, stubPersonas{}, nil, sched, logger)

		results := agent.AutoFill(ctx, gaps)
		require.Len(t, results, 4)
		for i, r := range results {
			if i == 2 {
				assert.Equal(t, GapStatusFailed, r.Status)
				assert.NotEmpty(t, r.Error)
				continue
			}
			assert.Equal(t, GapStatusFilled, r.Status, "gap %d", i)
		}
	})

	t.Run("unparsable gap time fails only that gap", func(t *testing.T) {
		gaps := []Gap{
			{At: gapAt(0)},
			{At: "tomorrow-ish"},
		}

		gen := &stubGenerator{assets: assets}
		sched := &memSchedule{}
		agent := NewAgent(stubTrends{origin: trends.OriginEmpty}, gen, stubPersonas{}, nil, sched, logger)

		results := agent.AutoFill(ctx, gaps)
		assert.Equal(t, GapStatusFilled, results[0].Status)
		assert.Equal(t, GapStatusFailed, results[1].Status)
		assert.Contains(t, results[1].Error, "invalid gap time")
	})

	t.Run("defaults the platform to linkedin", func(t *testing.T) {
		gen := &stubGenerator{assets: assets}
		sched := &memSchedule{}
		agent := NewAgent(stubTrends{origin: trends.OriginEmpty}, gen, stubPersonas{}, nil, sched, logger)

		results := agent.AutoFill(ctx, []Gap{{At: gapAt(0)}})
		require.Equal(t, GapStatusFilled, results[0].Status)
		require.Len(t, sched.posts, 1)
		assert.Equal(t, "linkedin", sched.posts[0].Platform)
	})

	t.Run("cancelled context fails remaining gaps", func(t *testing.T) {
		cancelled, cancel := context.WithCancel(ctx)
		cancel()

		gen := &stubGenerator{assets: assets}
		agent := NewAgent(stubTrends{origin: trends.OriginEmpty}, gen, stubPersonas{}, nil, nil, logger)

		gaps := make([]Gap, 6)
		for i := range gaps {
			gaps[i] = Gap{At: gapAt(i)}
		}

		results := agent.AutoFill(cancelled, gaps)
		require.Len(t, results, 6)
		assert.Equal(t, GapStatusFailed, results[len(results)-1].Status)
	})
}
