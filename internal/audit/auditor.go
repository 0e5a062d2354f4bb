package audit

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/postforge/linkedin-autopilot/config"
	"github.com/postforge/linkedin-autopilot/internal/llm"
	"github.com/postforge/linkedin-autopilot/internal/models"
)

// JSONGenerator is satisfied by *llm.Client.
type JSONGenerator interface {
	GenerateJSON(ctx context.Context, prompt string) (string, error)
}

// Auditor critiques a finished draft from three fixed adversarial
// viewpoints and estimates its strategic risk before publishing.
type Auditor struct {
	llm    JSONGenerator
	mode   config.Mode
	logger *zap.Logger
}

func NewAuditor(llm JSONGenerator, mode config.Mode, logger *zap.Logger) *Auditor {
	return &Auditor{llm: llm, mode: mode, logger: logger}
}

type reportWire struct {
	OverallRisk int    `json:"overallRisk"`
	Summary     string `json:"summary"`
	Reviews     []struct {
		Persona    string `json:"persona"`
		Feedback   string `json:"feedback"`
		Score      int    `json:"score"`
		Suggestion string `json:"suggestion"`
	} `json:"reviews"`
}

// AuditContent returns a structured risk report for the text. It never
// returns an error: any failure yields the zero-risk failed-audit report,
// which callers must not read as "content is safe".
func (a *Auditor) AuditContent(ctx context.Context, text string) models.AuditReport {
	if a.mode == config.ModeDemo {
		return demoReport()
	}

	prompt := fmt.Sprintf(`You are three different people reading the same LinkedIn post. Role-play each one and critique the post.

1. "skeptic" - a burned-out operator who assumes every claim is inflated.
2. "competitor" - a rival founder looking for an opening to attack.
3. "bored" - a feed-scroller who gives the post two seconds at most.

Post:
---
%s
---

Respond with a single JSON object, no surrounding prose:
{
  "overallRisk": <integer 0-100, reputational/strategic risk of publishing>,
  "summary": "<one-paragraph overall verdict>",
  "reviews": [
    {"persona": "skeptic", "feedback": "...", "score": <0-10>, "suggestion": "..."},
    {"persona": "competitor", "feedback": "...", "score": <0-10>, "suggestion": "..."},
    {"persona": "bored", "feedback": "...", "score": <0-10>, "suggestion": "..."}
  ]
}`, text)

	raw, err := a.llm.GenerateJSON(ctx, prompt)
	if err != nil {
		a.logger.Warn("audit call failed", zap.Error(err))
		return models.FailedAuditReport()
	}

	var wire reportWire
	if err := llm.DecodeObject(raw, &wire); err != nil {
		a.logger.Warn("audit returned malformed report", zap.Error(err))
		return models.FailedAuditReport()
	}

	report := models.AuditReport{
		OverallRisk: clamp(wire.OverallRisk, 0, 100),
		Summary:     wire.Summary,
		Reviews:     make([]models.AdversarialReview, 0, len(wire.Reviews)),
	}
	for _, r := range wire.Reviews {
		report.Reviews = append(report.Reviews, models.AdversarialReview{
			Persona:    r.Persona,
			Feedback:   r.Feedback,
			Score:      clamp(r.Score, 0, 10),
			Suggestion: r.Suggestion,
		})
	}

	if !hasFixedReviewers(report.Reviews) {
		a.logger.Warn("audit returned wrong reviewer set",
			zap.Int("reviews", len(report.Reviews)))
		return models.FailedAuditReport()
	}

	return report
}

// A successful audit carries exactly one review per fixed persona; anything
// else is treated the same as a malformed response.
func hasFixedReviewers(reviews []models.AdversarialReview) bool {
	if len(reviews) != 3 {
		return false
	}
	seen := make(map[string]bool, 3)
	for _, r := range reviews {
		seen[r.Persona] = true
	}
	return seen[models.AuditPersonaSkeptic] &&
		seen[models.AuditPersonaCompetitor] &&
		seen[models.AuditPersonaBored]
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func demoReport() models.AuditReport {
	return models.AuditReport{
		OverallRisk: 28,
		Summary:     "Solid hook but the middle section leans on an unverified number; the post survives scrutiny if the claim is sourced or softened.",
		Reviews: []models.AdversarialReview{
			{
				Persona:    models.AuditPersonaSkeptic,
				Feedback:   "The 'cut their process in half' claim has no source and reads like every other growth anecdote.",
				Score:      6,
				Suggestion: "Name the metric and the timeframe, or drop the number entirely.",
			},
			{
				Persona:    models.AuditPersonaCompetitor,
				Feedback:   "Nothing here is defensible; I could quote this post and attach my own case study underneath it.",
				Score:      5,
				Suggestion: "Add one detail only someone who did the work would know.",
			},
			{
				Persona:    models.AuditPersonaBored,
				Feedback:   "First line earned the second line. Lost me at the third paragraph.",
				Score:      7,
				Suggestion: "Cut the third paragraph; end on the question.",
			},
		},
	}
}
