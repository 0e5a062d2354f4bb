package models

import "time"

// Ghost draft lifecycle: a draft is created unread and transitions to exactly
// one of saved/scheduled/discarded, all of which are terminal.
const (
	DraftStatusUnread    = "unread"
	DraftStatusSaved     = "saved"
	DraftStatusScheduled = "scheduled"
	DraftStatusDiscarded = "discarded"
)

// GhostDraft is a standalone draft produced by the unattended agent for later
// human review. The agent never mutates a draft after creation; only the UI
// layer transitions Status.
type GhostDraft struct {
	ID        string          `json:"id"`
	Topic     string          `json:"topic"`
	Trend     string          `json:"trend"`
	Assets    GeneratedAssets `json:"assets"`
	CreatedAt time.Time       `json:"created_at"`
	Status    string          `json:"status"`
}

// NewGhostDraft creates an unread draft for the given sector and trend.
func NewGhostDraft(topic, trend string, assets GeneratedAssets) *GhostDraft {
	return &GhostDraft{
		Topic:     topic,
		Trend:     trend,
		Assets:    assets,
		CreatedAt: time.Now(),
		Status:    DraftStatusUnread,
	}
}

// CanTransition reports whether a draft may move to the given status.
// Only unread drafts may transition, and only to a terminal status.
func (d *GhostDraft) CanTransition(to string) bool {
	if d.Status != DraftStatusUnread {
		return false
	}
	switch to {
	case DraftStatusSaved, DraftStatusScheduled, DraftStatusDiscarded:
		return true
	}
	return false
}
