package models

// Adversarial reviewer personas. Exactly these three appear in a successful
// audit, one review each.
const (
	AuditPersonaSkeptic    = "skeptic"
	AuditPersonaCompetitor = "competitor"
	AuditPersonaBored      = "bored"
)

// AdversarialReview is one reviewer's critique of a draft.
type AdversarialReview struct {
	Persona    string `json:"persona"`
	Feedback   string `json:"feedback"`
	Score      int    `json:"score"` // 0-10
	Suggestion string `json:"suggestion"`
}

// AuditReport is a structured risk estimate for a finished draft. A zero-risk
// report with no reviews may mean the audit itself failed; callers must not
// read it as "content is safe".
type AuditReport struct {
	OverallRisk int                 `json:"overall_risk"` // 0-100
	Summary     string              `json:"summary"`
	Reviews     []AdversarialReview `json:"reviews"`
}

// FailedAuditReport is the zero-value report returned when the audit call
// itself fails.
func FailedAuditReport() AuditReport {
	return AuditReport{
		OverallRisk: 0,
		Summary:     "Error performing audit.",
		Reviews:     []AdversarialReview{},
	}
}
