package domain

import "time"

// ReservationStatus represents the status of a reservation
type ReservationStatus string

const (
	StatusPending   ReservationStatus = "pending"
	StatusConfirmed ReservationStatus = "confirmed"
	StatusCancelled ReservationStatus = "cancelled"
)

// ParseReservationStatus converts a raw value into a known status
func ParseReservationStatus(s string) (ReservationStatus, bool) {
	switch ReservationStatus(s) {
	case StatusPending, StatusConfirmed, StatusCancelled:
		return ReservationStatus(s), true
	default:
		return "", false
	}
}

// Reservation is a claim of one space for the half-open interval [Start, End)
type Reservation struct {
	ID      string
	SpaceID string
	UserID  string
	Start   time.Time
	End     time.Time
	Status  ReservationStatus

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the reservation takes part in conflict detection
func (r *Reservation) IsActive() bool {
	return r.Status == StatusPending || r.Status == StatusConfirmed
}

// CanBeEdited returns true if the interval may still change
func (r *Reservation) CanBeEdited() bool {
	return r.IsActive()
}

// CanBeCancelled returns true if the reservation is not cancelled yet
func (r *Reservation) CanBeCancelled() bool {
	return r.IsActive()
}

// IsOwnedBy returns true if the reservation belongs to the user
func (r *Reservation) IsOwnedBy(userID string) bool {
	return userID != "" && r.UserID == userID
}

// Actor is the identity performing a lifecycle operation
type Actor struct {
	UserID  string
	IsAdmin bool
}

// CanAccess returns true if the actor owns the reservation or is an admin
func (a Actor) CanAccess(r *Reservation) bool {
	return a.IsAdmin || r.IsOwnedBy(a.UserID)
}
