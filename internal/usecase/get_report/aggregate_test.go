package get_report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeffjr007/locahubaju-project/internal/domain"
	"github.com/jeffjr007/locahubaju-project/pkg/ptr"
)

func day(d, h int) time.Time {
	return time.Date(2025, 9, d, h, 0, 0, 0, time.UTC)
}

func res(id, space, user string, d, from, to int, status domain.ReservationStatus) *domain.Reservation {
	return &domain.Reservation{ID: id, SpaceID: space, UserID: user, Start: day(d, from), End: day(d, to), Status: status}
}

var testSpaces = []*domain.Space{
	{ID: "a", Name: "Sala A", Type: domain.SpaceTypeRoom, HourlyRate: ptr.Ptr(50.0), Active: true},
	{ID: "b", Name: "Auditório", Type: domain.SpaceTypeAuditorium, HourlyRate: ptr.Ptr(100.0), Active: true},
	{ID: "c", Name: "Coworking", Type: domain.SpaceTypeCoworking, Active: false},
}

func TestAggregate_StatusSplitAndRevenue(t *testing.T) {
	list := []*domain.Reservation{
		res("1", "a", "u1", 1, 9, 11, domain.StatusConfirmed),  // 100
		res("2", "a", "u2", 2, 9, 10, domain.StatusConfirmed),  // 50
		res("3", "b", "u1", 3, 9, 10, domain.StatusConfirmed),  // 100
		res("4", "a", "u3", 4, 9, 10, domain.StatusPending),    // excluded
		res("5", "b", "u3", 5, 9, 12, domain.StatusPending),    // excluded
		res("6", "b", "u2", 6, 9, 12, domain.StatusCancelled),  // excluded
	}

	stats := Aggregate(list, testSpaces, domain.DateRange{})

	assert.Equal(t, 6, stats.Total)
	assert.Equal(t, domain.StatusCounts{Pending: 2, Confirmed: 3, Cancelled: 1}, stats.ByStatus)
	assert.InDelta(t, 250.0, stats.Revenue, 1e-9)
	assert.Equal(t, 3, stats.DistinctUsers)
	assert.Equal(t, 2, stats.DistinctSpaces)
	assert.Equal(t, 2, stats.ActiveSpaces)
	assert.Len(t, stats.Rows, 6)
}

func TestAggregate_OccupancyRanking(t *testing.T) {
	list := []*domain.Reservation{
		res("1", "b", "u1", 1, 9, 10, domain.StatusConfirmed),
		res("2", "a", "u1", 1, 9, 11, domain.StatusConfirmed),
		res("3", "c", "u1", 2, 9, 10, domain.StatusConfirmed),
		res("4", "c", "u1", 3, 9, 10, domain.StatusConfirmed),
		res("5", "a", "u1", 4, 9, 10, domain.StatusPending),
	}

	stats := Aggregate(list, testSpaces, domain.DateRange{})

	require.Len(t, stats.Occupancy, 3)
	assert.Equal(t, "c", stats.Occupancy[0].SpaceID)
	assert.Equal(t, 2, stats.Occupancy[0].Count)
	// a и b по одному confirmed: порядок по id
	assert.Equal(t, "a", stats.Occupancy[1].SpaceID)
	assert.Equal(t, "Sala A", stats.Occupancy[1].SpaceName)
	assert.InDelta(t, 2.0, stats.Occupancy[1].ConfirmedHours, 1e-9)
	assert.Equal(t, "b", stats.Occupancy[2].SpaceID)

	require.Len(t, stats.TypeShares, 3)
	assert.Equal(t, domain.TypeShare{Type: domain.SpaceTypeCoworking, Count: 2}, stats.TypeShares[0])
	assert.Equal(t, domain.SpaceTypeAuditorium, stats.TypeShares[1].Type)
	assert.Equal(t, domain.SpaceTypeRoom, stats.TypeShares[2].Type)
}

func TestAggregate_RangeIsInclusive(t *testing.T) {
	list := []*domain.Reservation{
		res("before", "a", "u1", 1, 9, 10, domain.StatusConfirmed),
		res("touch-start", "a", "u1", 2, 8, 9, domain.StatusConfirmed),
		res("inside", "a", "u1", 3, 9, 10, domain.StatusConfirmed),
		res("touch-end", "a", "u1", 4, 18, 19, domain.StatusConfirmed),
		res("after", "a", "u1", 5, 9, 10, domain.StatusConfirmed),
	}

	stats := Aggregate(list, testSpaces, domain.DateRange{From: day(2, 9), To: day(4, 18)})

	ids := make([]string, 0, len(stats.Rows))
	for _, r := range stats.Rows {
		ids = append(ids, r.ReservationID)
	}
	assert.Equal(t, []string{"touch-start", "inside", "touch-end"}, ids)
	assert.Equal(t, 3, stats.Total)
}

func TestAggregate_RowsAndMissingRate(t *testing.T) {
	r := &domain.Reservation{
		ID: "x", SpaceID: "c", UserID: "u1", Status: domain.StatusConfirmed,
		Start: day(1, 9), End: day(1, 10).Add(45 * time.Minute),
	}
	orphan := res("y", "gone", "u2", 1, 12, 13, domain.StatusConfirmed)

	stats := Aggregate([]*domain.Reservation{orphan, r}, testSpaces, domain.DateRange{})

	require.Len(t, stats.Rows, 2)
	row := stats.Rows[0]
	assert.Equal(t, "x", row.ReservationID)
	assert.Equal(t, 1, row.Hours)
	assert.Equal(t, 45, row.Minutes)
	assert.Nil(t, row.EstimatedCost, "space without rate has no cost")
	assert.Equal(t, "Coworking", row.SpaceName)

	assert.Empty(t, stats.Rows[1].SpaceName, "unknown space keeps the row")
	assert.Zero(t, stats.Revenue)
	assert.Len(t, stats.TypeShares, 1, "unknown space has no type")
}

func TestAggregate_Empty(t *testing.T) {
	stats := Aggregate(nil, nil, domain.DateRange{})

	assert.Zero(t, stats.Total)
	assert.Empty(t, stats.Occupancy)
	assert.Empty(t, stats.TypeShares)
	assert.Zero(t, stats.Revenue)
}
