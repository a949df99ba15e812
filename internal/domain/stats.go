package domain

import "time"

// DateRange inclusive reporting window. A zero bound is open.
type DateRange struct {
	From time.Time
	To   time.Time
}

// Intersects returns true if [start, end] overlaps the range, bounds inclusive
func (r DateRange) Intersects(start, end time.Time) bool {
	if !r.To.IsZero() && start.After(r.To) {
		return false
	}
	if !r.From.IsZero() && end.Before(r.From) {
		return false
	}
	return true
}

// StatusCounts number of reservations per status
type StatusCounts struct {
	Pending   int
	Confirmed int
	Cancelled int
}

// SpaceOccupancy confirmed reservations of one space
type SpaceOccupancy struct {
	SpaceID        string
	SpaceName      string
	Count          int
	ConfirmedHours float64
}

// TypeShare confirmed reservations of one space type
type TypeShare struct {
	Type  SpaceType
	Count int
}

// ReportRow one reservation of the reporting window with derived values
type ReportRow struct {
	ReservationID string
	SpaceID       string
	SpaceName     string
	SpaceType     SpaceType
	UserID        string
	Status        ReservationStatus
	Start         time.Time
	End           time.Time
	Hours         int
	Minutes       int
	EstimatedCost *float64
}

// Stats aggregate over a set of reservations
type Stats struct {
	Range          DateRange
	Total          int
	ByStatus       StatusCounts
	DistinctUsers  int
	DistinctSpaces int
	ActiveSpaces   int
	Revenue        float64
	Occupancy      []SpaceOccupancy
	TypeShares     []TypeShare
	Rows           []ReportRow
}
