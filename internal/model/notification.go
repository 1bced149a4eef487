package model

import "time"

// Notification priorities, lowest to highest.
const (
	PriorityLow      = "low"
	PriorityMedium   = "medium"
	PriorityHigh     = "high"
	PriorityCritical = "critical"
)

// Notification is a generated alert. Notifications are deduplicated by
// (Type, ReferenceID) and pruned after 30 days on every generation pass.
type Notification struct {
	ID          string    `json:"id"`
	Type        string    `json:"type"`
	RuleID      string    `json:"rule_id"`
	ReferenceID string    `json:"reference_id"`
	Title       string    `json:"title"`
	Message     string    `json:"message"`
	Priority    string    `json:"priority"`
	Read        bool      `json:"read"`
	UserID      string    `json:"user_id"`
	CreatedAt   time.Time `json:"created_at"`
}

func (n Notification) RecordID() string { return n.ID }

// DedupKey identifies a notification for duplicate suppression.
func (n Notification) DedupKey() string { return n.Type + "_" + n.ReferenceID }
