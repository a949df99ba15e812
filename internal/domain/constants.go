package domain

// Business validation constants
const (
	MaxNotesLength = 1000
	MaxIDLength    = 64
)

// Formats used in notification payloads
const (
	PayloadDateFormat = "02/01/2006" // dd/MM/yyyy
	PayloadTimeFormat = "15:04"      // HH:mm
	DefaultTimezone   = "America/Maceio"
)

// ActiveStatuses statuses that block the interval for other reservations
var ActiveStatuses = []ReservationStatus{
	StatusPending,
	StatusConfirmed,
}
