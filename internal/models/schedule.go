package models

import "time"

// ScheduledPost is a finished piece of content queued in local schedule
// storage for a publishing slot.
type ScheduledPost struct {
	ID          string     `json:"id"`
	Content     string     `json:"content"`
	Platform    string     `json:"platform"` // "linkedin" or "twitter"
	Status      string     `json:"status"`   // "scheduled", "published", "cancelled"
	CreatedAt   time.Time  `json:"created_at"`
	ScheduledAt *time.Time `json:"scheduled_at,omitempty"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
}

// NewScheduledPost queues content for the given slot.
func NewScheduledPost(content, platform string, at time.Time) *ScheduledPost {
	return &ScheduledPost{
		Content:     content,
		Platform:    platform,
		Status:      "scheduled",
		CreatedAt:   time.Now(),
		ScheduledAt: &at,
	}
}
