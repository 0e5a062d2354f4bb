package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/postforge/linkedin-autopilot/internal/pipeline"
	"github.com/postforge/linkedin-autopilot/internal/server"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "autopilot",
		Short: "LinkedIn content-generation pipeline",
		Long:  "Trend-enriched, persona-driven LinkedIn content generation with an unattended ghost drafting agent.",
	}

	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newGenerateCmd())
	rootCmd.AddCommand(newGhostCmd())
	rootCmd.AddCommand(newAutofillCmd())
	rootCmd.AddCommand(newAuditCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			app, err := buildApp(ctx, true)
			if err != nil {
				return err
			}
			defer app.close()

			srv := server.New(
				app.orchestrator,
				app.auditor,
				app.agent,
				app.registry,
				app.draftRepo,
				app.scheduleRepo,
				app.bridge,
				app.creds,
				app.logger,
			)

			app.logger.Info("autopilot running",
				zap.String("mode", app.cfg.Mode.String()),
				zap.String("port", app.cfg.Port))

			if err := srv.Start(ctx, app.cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}

			app.logger.Info("shutting down")
			return nil
		},
	}
}

func newGenerateCmd() *cobra.Command {
	var personaID string
	var forceTrends bool

	cmd := &cobra.Command{
		Use:   "generate [input]",
		Short: "Generate one asset bundle from a topic or brief",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			app, err := buildApp(ctx, false)
			if err != nil {
				return err
			}
			defer app.close()

			result, err := app.orchestrator.ProcessInput(ctx, pipeline.Request{
				Input:       args[0],
				PersonaID:   personaID,
				ForceTrends: forceTrends,
			}, app.creds)
			if err != nil {
				return err
			}

			return printJSON(result)
		},
	}

	cmd.Flags().StringVar(&personaID, "persona", pipeline.DefaultPersonaID, "writing persona id")
	cmd.Flags().BoolVar(&forceTrends, "force-trends", false, "force trend enrichment regardless of input shape")
	return cmd
}

func newGhostCmd() *cobra.Command {
	var push bool

	cmd := &cobra.Command{
		Use:   "ghost",
		Short: "Produce one unattended ghost draft",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			app, err := buildApp(ctx, true)
			if err != nil {
				return err
			}
			defer app.close()

			draft, err := app.agent.RunOnce(ctx)
			if err != nil {
				return err
			}

			if push {
				channel, pushErr := app.bridge.PushToChat(ctx, draft)
				if pushErr != nil {
					app.logger.Warn("draft produced but not delivered", zap.Error(pushErr))
				} else {
					app.logger.Info("draft delivered", zap.String("channel", channel))
				}
			}

			return printJSON(draft)
		},
	}

	cmd.Flags().BoolVar(&push, "push", false, "push the draft to the configured chat channel")
	return cmd
}

func newAutofillCmd() *cobra.Command {
	var days, postsPerDay int

	cmd := &cobra.Command{
		Use:   "autofill",
		Short: "Fill open calendar slots with ghost drafts",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			app, err := buildApp(ctx, true)
			if err != nil {
				return err
			}
			defer app.close()

			gaps, err := app.upcomingGaps(ctx, days, postsPerDay)
			if err != nil {
				return err
			}
			if len(gaps) == 0 {
				app.logger.Info("no open slots in the horizon")
				return nil
			}

			results := app.agent.AutoFill(ctx, gaps)
			return printJSON(results)
		},
	}

	cmd.Flags().IntVar(&days, "days", 7, "scheduling horizon in days")
	cmd.Flags().IntVar(&postsPerDay, "posts-per-day", 1, "posting cadence")
	return cmd
}

func newAuditCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "audit [text]",
		Short: "Run the adversarial audit against a draft",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			app, err := buildApp(ctx, false)
			if err != nil {
				return err
			}
			defer app.close()

			report := app.auditor.AuditContent(ctx, args[0])
			return printJSON(report)
		},
	}
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
