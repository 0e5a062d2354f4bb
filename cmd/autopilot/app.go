package main

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/postforge/linkedin-autopilot/config"
	"github.com/postforge/linkedin-autopilot/internal/audit"
	"github.com/postforge/linkedin-autopilot/internal/database"
	"github.com/postforge/linkedin-autopilot/internal/ghost"
	"github.com/postforge/linkedin-autopilot/internal/llm"
	"github.com/postforge/linkedin-autopilot/internal/notify"
	"github.com/postforge/linkedin-autopilot/internal/personas"
	"github.com/postforge/linkedin-autopilot/internal/pipeline"
	"github.com/postforge/linkedin-autopilot/internal/trends"
)

// app holds the wired component graph shared by all subcommands.
type app struct {
	cfg    *config.Config
	logger *zap.Logger
	db     *database.DB

	orchestrator *pipeline.Orchestrator
	auditor      *audit.Auditor
	agent        *ghost.Agent
	registry     *personas.Registry
	bridge       *notify.Bridge
	draftRepo    *database.DraftRepository
	scheduleRepo *database.ScheduleRepository
	creds        pipeline.Credentials
}

// buildApp wires the component graph. withDB controls whether persistence is
// attached; a failed connection degrades to in-memory operation rather than
// aborting, so demo mode works with nothing running locally.
func buildApp(ctx context.Context, withDB bool) (*app, error) {
	cfg := config.LoadConfig()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration error: %w", err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	a := &app{cfg: cfg, logger: logger}
	a.creds = pipeline.Credentials{Gemini: cfg.GeminiKey, OpenAI: cfg.OpenAIKey}

	llmClient, err := llm.NewClient(ctx, cfg.GeminiKey, cfg.Mode, logger)
	if err != nil {
		return nil, err
	}

	var image pipeline.ImageSynthesizer
	if cfg.OpenAIKey != "" || cfg.ImageMode == config.ModeDemo {
		image = llm.NewImageClient(cfg.OpenAIKey, cfg.ImageMode, logger)
	}

	if withDB {
		db, dbErr := database.NewDB(ctx, cfg.DatabaseURL, logger)
		if dbErr != nil {
			logger.Warn("database unavailable, continuing without persistence",
				zap.Error(dbErr))
		} else if tableErr := db.CreateTables(ctx); tableErr != nil {
			logger.Warn("failed to create tables, continuing without persistence",
				zap.Error(tableErr))
			db.Close()
		} else {
			a.db = db
			a.draftRepo = database.NewDraftRepository(db)
			a.scheduleRepo = database.NewScheduleRepository(db)
		}
	}

	var personaStore personas.Store
	if a.db != nil {
		personaStore = database.NewPersonaRepository(a.db)
	}
	a.registry = personas.NewRegistry(personaStore, llmClient, cfg.Mode, logger)

	provider := trends.NewProvider(llmClient, cfg.Mode, logger)
	assembler := pipeline.NewAssembler(provider, logger)
	a.orchestrator = pipeline.NewOrchestrator(assembler, llmClient, image, a.registry, logger)

	a.auditor = audit.NewAuditor(llmClient, cfg.Mode, logger)

	a.bridge = notify.NewBridge(notify.Options{
		SlackWebhookURL:     cfg.SlackWebhookURL,
		TeamsWebhookURL:     cfg.TeamsWebhookURL,
		TelegramBotToken:    cfg.TelegramBotToken,
		TelegramChatID:      cfg.TelegramChatID,
		SchedulerWebhookURL: cfg.SchedulerWebhookURL,
	}, logger)

	var draftStore ghost.DraftStore
	var scheduleStore ghost.ScheduleStore
	if a.draftRepo != nil {
		draftStore = a.draftRepo
	}
	if a.scheduleRepo != nil {
		scheduleStore = a.scheduleRepo
	}
	a.agent = ghost.NewAgent(provider, llmClient, a.registry, draftStore, scheduleStore, logger)

	return a, nil
}

// upcomingGaps computes open calendar slots over the horizon, using the
// schedule store when one is attached.
func (a *app) upcomingGaps(ctx context.Context, days, postsPerDay int) ([]ghost.Gap, error) {
	var occupied []time.Time
	if a.scheduleRepo != nil {
		posts, err := a.scheduleRepo.GetUpcoming(ctx, days)
		if err != nil {
			return nil, err
		}
		for _, p := range posts {
			if p.ScheduledAt != nil {
				occupied = append(occupied, *p.ScheduledAt)
			}
		}
	}
	return ghost.ComputeGaps(time.Now(), days, postsPerDay, occupied, time.UTC), nil
}

func (a *app) close() {
	if a.db != nil {
		a.db.Close()
	}
	_ = a.logger.Sync()
}
