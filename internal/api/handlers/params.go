package handlers

import (
	"time"
)

const dateLayout = "2006-01-02"

// ParseTimeParam разбирает query-параметр в формате RFC3339 или YYYY-MM-DD.
// Дата без времени трактуется в loc как начало дня, либо как последний момент дня при endOfDay
func ParseTimeParam(value string, loc *time.Location, endOfDay bool) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}

	if loc == nil {
		loc = time.UTC
	}
	day, err := time.ParseInLocation(dateLayout, value, loc)
	if err != nil {
		return time.Time{}, err
	}
	if endOfDay {
		return day.AddDate(0, 0, 1).Add(-time.Nanosecond), nil
	}
	return day, nil
}
