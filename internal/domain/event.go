package domain

import "time"

// EventKind lifecycle transition that produced the event
type EventKind string

const (
	EventCreated   EventKind = "created"
	EventEdited    EventKind = "edited"
	EventCancelled EventKind = "cancelled"
)

// Contact user data attached to a notification
type Contact struct {
	Name  string
	Phone string
	Email string
}

// Event is emitted after a lifecycle transition has been committed.
// Space and Contact may be nil when the lookup failed; delivery still happens.
type Event struct {
	Kind          EventKind
	Reservation   Reservation
	Space         *Space
	Contact       *Contact
	Notes         string
	EstimatedCost *float64
	OccurredAt    time.Time
	// Silent: the user opted out of external notifications. Internal subscribers
	// (report cache, live feed) still receive the event.
	Silent bool
}
