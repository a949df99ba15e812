package get_agenda

import (
	"sort"
	"time"

	"github.com/jeffjr007/locahubaju-project/internal/domain"
	"github.com/jeffjr007/locahubaju-project/internal/service/conflicts"
)

// periodBounds возвращает [from, to) для дня или недели, начинающейся с понедельника
func periodBounds(date time.Time, view View, loc *time.Location) (time.Time, time.Time) {
	d := date.In(loc)
	start := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, loc)

	if view == ViewWeek {
		offset := (int(start.Weekday()) + 6) % 7
		start = start.AddDate(0, 0, -offset)
		return start, start.AddDate(0, 0, 7)
	}
	return start, start.AddDate(0, 0, 1)
}

// busyIntervals активные бронирования пространства, пересекающие период, по времени начала.
// Интервалы обрезаются до [from, to)
func busyIntervals(reservations []*domain.Reservation, spaceID string, from, to time.Time) []Busy {
	busy := make([]Busy, 0)
	for _, r := range reservations {
		if r == nil || r.SpaceID != spaceID || !r.IsActive() {
			continue
		}
		// границы касания не считаются занятостью
		if !conflicts.Overlaps(r.Start, r.End, from, to) {
			continue
		}
		start, end := r.Start, r.End
		if start.Before(from) {
			start = from
		}
		if end.After(to) {
			end = to
		}
		busy = append(busy, Busy{ReservationID: r.ID, Start: start, End: end, Status: r.Status})
	}

	sort.Slice(busy, func(i, j int) bool {
		if !busy[i].Start.Equal(busy[j].Start) {
			return busy[i].Start.Before(busy[j].Start)
		}
		return busy[i].ReservationID < busy[j].ReservationID
	})
	return busy
}

// freeWindows дополнение занятых интервалов до периода [from, to)
func freeWindows(busy []Busy, from, to time.Time) []Window {
	free := make([]Window, 0)
	cursor := from

	for _, b := range busy {
		if b.Start.After(cursor) {
			end := b.Start
			if end.After(to) {
				end = to
			}
			free = append(free, Window{Start: cursor, End: end})
		}
		if b.End.After(cursor) {
			cursor = b.End
		}
		if !cursor.Before(to) {
			return free
		}
	}

	if cursor.Before(to) {
		free = append(free, Window{Start: cursor, End: to})
	}
	return free
}
