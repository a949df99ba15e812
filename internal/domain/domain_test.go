package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestReservation_IsActive(t *testing.T) {
	tests := []struct {
		status ReservationStatus
		want   bool
	}{
		{StatusPending, true},
		{StatusConfirmed, true},
		{StatusCancelled, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			r := &Reservation{Status: tt.status}
			assert.Equal(t, tt.want, r.IsActive())
			assert.Equal(t, tt.want, r.CanBeCancelled())
		})
	}
}

func TestActor_CanAccess(t *testing.T) {
	r := &Reservation{UserID: "u1"}

	assert.True(t, Actor{UserID: "u1"}.CanAccess(r))
	assert.False(t, Actor{UserID: "u2"}.CanAccess(r))
	assert.True(t, Actor{UserID: "u2", IsAdmin: true}.CanAccess(r))
	assert.False(t, Actor{}.CanAccess(&Reservation{}))
}

func TestDateRange_Intersects(t *testing.T) {
	day := func(d, h int) time.Time { return time.Date(2025, 3, d, h, 0, 0, 0, time.UTC) }
	rng := DateRange{From: day(10, 0), To: day(12, 0)}

	assert.True(t, rng.Intersects(day(9, 22), day(10, 0)), "end on lower bound")
	assert.True(t, rng.Intersects(day(12, 0), day(12, 2)), "start on upper bound")
	assert.True(t, rng.Intersects(day(9, 0), day(13, 0)), "spans the range")
	assert.False(t, rng.Intersects(day(12, 1), day(12, 2)))
	assert.False(t, rng.Intersects(day(9, 1), day(9, 2)))
	assert.True(t, DateRange{}.Intersects(day(1, 0), day(1, 1)), "open range")
}

func TestParseReservationStatus(t *testing.T) {
	s, ok := ParseReservationStatus("confirmed")
	assert.True(t, ok)
	assert.Equal(t, StatusConfirmed, s)

	_, ok = ParseReservationStatus("in_progress")
	assert.False(t, ok)
}

func TestParseSpaceType(t *testing.T) {
	for _, s := range []string{"sala", "coworking", "auditorio", "laboratorio"} {
		got, ok := ParseSpaceType(s)
		assert.True(t, ok, s)
		assert.Equal(t, SpaceType(s), got)
	}

	for _, s := range []string{"", "Sala", "garagem"} {
		_, ok := ParseSpaceType(s)
		assert.False(t, ok, s)
	}
}
