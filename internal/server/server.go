package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/postforge/linkedin-autopilot/internal/audit"
	"github.com/postforge/linkedin-autopilot/internal/database"
	"github.com/postforge/linkedin-autopilot/internal/ghost"
	"github.com/postforge/linkedin-autopilot/internal/notify"
	"github.com/postforge/linkedin-autopilot/internal/personas"
	"github.com/postforge/linkedin-autopilot/internal/pipeline"
)

// Server is the HTTP edge the UI talks to. Hard failures map to 4xx/5xx;
// soft degradations ride inside the response body.
type Server struct {
	orchestrator *pipeline.Orchestrator
	auditor      *audit.Auditor
	agent        *ghost.Agent
	registry     *personas.Registry
	drafts       *database.DraftRepository
	schedule     *database.ScheduleRepository
	bridge       *notify.Bridge
	creds        pipeline.Credentials
	logger       *zap.Logger
}

func New(
	orchestrator *pipeline.Orchestrator,
	auditor *audit.Auditor,
	agent *ghost.Agent,
	registry *personas.Registry,
	drafts *database.DraftRepository,
	schedule *database.ScheduleRepository,
	bridge *notify.Bridge,
	creds pipeline.Credentials,
	logger *zap.Logger,
) *Server {
	return &Server{
		orchestrator: orchestrator,
		auditor:      auditor,
		agent:        agent,
		registry:     registry,
		drafts:       drafts,
		schedule:     schedule,
		bridge:       bridge,
		creds:        creds,
		logger:       logger,
	}
}

// Router builds the chi router for the API.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(5 * time.Minute))

	r.Get("/health", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Post("/generate", s.handleGenerate)
		r.Post("/audit", s.handleAudit)

		r.Post("/ghost/run", s.handleGhostRun)
		r.Post("/ghost/autofill", s.handleGhostAutofill)

		r.Get("/personas", s.handleListPersonas)
		r.Post("/personas", s.handleCreatePersona)
		r.Delete("/personas/{id}", s.handleDeletePersona)

		r.Get("/drafts", s.handleListDrafts)
		r.Patch("/drafts/{id}/status", s.handleDraftStatus)

		r.Post("/notify", s.handleNotify)
		r.Post("/schedule/webhook", s.handleScheduleWebhook)
	})

	return r
}

// Start runs the HTTP server until ctx is cancelled, then drains in-flight
// requests before returning.
func (s *Server) Start(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:    ":" + port,
		Handler: s.Router(),
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	s.logger.Info("http server starting", zap.String("port", port))

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("http server draining")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http server shutdown: %w", err)
	}
	return nil
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

type generateRequest struct {
	Input       string `json:"input"`
	PersonaID   string `json:"persona_id"`
	ForceTrends bool   `json:"force_trends"`
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := s.orchestrator.ProcessInput(r.Context(), pipeline.Request{
		Input:       req.Input,
		PersonaID:   req.PersonaID,
		ForceTrends: req.ForceTrends,
	}, s.creds)
	if err != nil {
		if errors.Is(err, pipeline.ErrMissingInput) || errors.Is(err, pipeline.ErrMissingCredential) {
			s.respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		s.logger.Error("generation failed", zap.Error(err))
		s.respondError(w, http.StatusBadGateway, err.Error())
		return
	}

	s.respondJSON(w, http.StatusOK, result)
}

func (s *Server) handleAudit(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Text == "" {
		s.respondError(w, http.StatusBadRequest, "text is required")
		return
	}

	report := s.auditor.AuditContent(r.Context(), req.Text)
	s.respondJSON(w, http.StatusOK, report)
}

func (s *Server) handleGhostRun(w http.ResponseWriter, r *http.Request) {
	draft, err := s.agent.RunOnce(r.Context())
	if err != nil {
		s.logger.Error("ghost run failed", zap.Error(err))
		s.respondError(w, http.StatusBadGateway, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, draft)
}

type autofillRequest struct {
	Gaps        []ghost.Gap `json:"gaps"`
	Days        int         `json:"days"`
	PostsPerDay int         `json:"posts_per_day"`
}

func (s *Server) handleGhostAutofill(w http.ResponseWriter, r *http.Request) {
	var req autofillRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	gaps := req.Gaps
	if len(gaps) == 0 && req.Days > 0 {
		var occupied []time.Time
		if s.schedule != nil {
			posts, err := s.schedule.GetUpcoming(r.Context(), req.Days)
			if err != nil {
				s.respondError(w, http.StatusInternalServerError, err.Error())
				return
			}
			for _, p := range posts {
				if p.ScheduledAt != nil {
					occupied = append(occupied, *p.ScheduledAt)
				}
			}
		}
		gaps = ghost.ComputeGaps(time.Now(), req.Days, req.PostsPerDay, occupied, time.UTC)
	}

	if len(gaps) == 0 {
		s.respondError(w, http.StatusBadRequest, "no gaps to fill")
		return
	}

	results := s.agent.AutoFill(r.Context(), gaps)
	s.respondJSON(w, http.StatusOK, map[string]any{"results": results})
}

func (s *Server) handleListPersonas(w http.ResponseWriter, r *http.Request) {
	list, err := s.registry.List(r.Context())
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, list)
}

func (s *Server) handleCreatePersona(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name   string `json:"name"`
		Sample string `json:"sample"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Name == "" {
		s.respondError(w, http.StatusBadRequest, "name and sample are required")
		return
	}

	persona, err := s.registry.CreateFromSample(r.Context(), req.Name, req.Sample)
	if err != nil {
		s.respondError(w, http.StatusBadGateway, err.Error())
		return
	}
	s.respondJSON(w, http.StatusCreated, persona)
}

func (s *Server) handleDeletePersona(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.registry.Delete(r.Context(), id); err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListDrafts(w http.ResponseWriter, r *http.Request) {
	if s.drafts == nil {
		s.respondError(w, http.StatusServiceUnavailable, "draft storage is not configured")
		return
	}

	drafts, err := s.drafts.List(r.Context(), r.URL.Query().Get("status"))
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, drafts)
}

func (s *Server) handleDraftStatus(w http.ResponseWriter, r *http.Request) {
	if s.drafts == nil {
		s.respondError(w, http.StatusServiceUnavailable, "draft storage is not configured")
		return
	}

	id := chi.URLParam(r, "id")
	var req struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Status == "" {
		s.respondError(w, http.StatusBadRequest, "status is required")
		return
	}

	draft, err := s.drafts.GetByID(r.Context(), id)
	if err != nil {
		s.respondError(w, http.StatusNotFound, "draft not found")
		return
	}

	if !draft.CanTransition(req.Status) {
		s.respondError(w, http.StatusConflict, "invalid status transition")
		return
	}

	if err := s.drafts.UpdateStatus(r.Context(), id, req.Status); err != nil {
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleNotify(w http.ResponseWriter, r *http.Request) {
	if s.drafts == nil {
		s.respondError(w, http.StatusServiceUnavailable, "draft storage is not configured")
		return
	}

	var req struct {
		DraftID string `json:"draft_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.DraftID == "" {
		s.respondError(w, http.StatusBadRequest, "draft_id is required")
		return
	}

	draft, err := s.drafts.GetByID(r.Context(), req.DraftID)
	if err != nil {
		s.respondError(w, http.StatusNotFound, "draft not found")
		return
	}

	channel, err := s.bridge.PushToChat(r.Context(), draft)
	if err != nil {
		s.respondError(w, http.StatusBadGateway, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]string{"channel": channel})
}

func (s *Server) handleScheduleWebhook(w http.ResponseWriter, r *http.Request) {
	var payload notify.SchedulePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil || payload.Content == "" {
		s.respondError(w, http.StatusBadRequest, "content is required")
		return
	}

	if err := s.bridge.SendWebhook(r.Context(), payload); err != nil {
		s.respondError(w, http.StatusBadGateway, err.Error())
		return
	}
	w.WriteHeader(http.StatusAccepted)
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("failed to encode response", zap.Error(err))
	}
}

func (s *Server) respondError(w http.ResponseWriter, status int, msg string) {
	s.respondJSON(w, status, map[string]string{"error": msg})
}
