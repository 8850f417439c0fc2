// Package interfaces defines the audit storage contract. The queue document
// is the durable source of truth; this log is best-effort history of what
// the bridge did and why.
package interfaces

import "time"

// Event types recorded by the bridge.
const (
	EventNotification = "notification"
	EventStop         = "stop"
	EventPresent      = "present"
	EventNavigate     = "navigate"
)

// Event is one recorded hook or presenter action.
type Event struct {
	ID           string
	SessionLabel string
	Type         string
	Data         map[string]any
	CreatedAt    time.Time
}

// NotificationRecord captures a presentation decision.
type NotificationRecord struct {
	ID             string
	SessionLabel   string
	Message        string
	Shown          bool
	SuppressReason string
	CreatedAt      time.Time
}

// EventStorer persists audit events and notification decisions.
type EventStorer interface {
	LogEvent(event *Event) error
	LogNotification(rec *NotificationRecord) error
	RecentEvents(limit int) ([]*Event, error)
	Close() error
}
