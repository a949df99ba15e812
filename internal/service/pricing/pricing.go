package pricing

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// Budget estimated price of an interval
type Budget struct {
	HourlyRate float64
	Hours      int
	Minutes    int
	TotalHours float64
	Amount     float64
}

// Duration splits [start, end) into whole hours and remaining whole minutes
func Duration(start, end time.Time) (hours, minutes int) {
	if !end.After(start) {
		return 0, 0
	}
	total := int(end.Sub(start) / time.Minute)
	return total / 60, total % 60
}

// Compute returns nil when the space has no usable rate, a timestamp is missing or the interval is empty
func Compute(hourlyRate *float64, start, end time.Time) *Budget {
	if hourlyRate == nil || *hourlyRate <= 0 {
		return nil
	}
	if start.IsZero() || end.IsZero() || !end.After(start) {
		return nil
	}

	hours, minutes := Duration(start, end)
	totalHours := float64(hours) + float64(minutes)/60

	return &Budget{
		HourlyRate: *hourlyRate,
		Hours:      hours,
		Minutes:    minutes,
		TotalHours: totalHours,
		Amount:     totalHours * *hourlyRate,
	}
}

// Amount is Compute reduced to the monetary value
func Amount(hourlyRate *float64, start, end time.Time) *float64 {
	b := Compute(hourlyRate, start, end)
	if b == nil {
		return nil
	}
	return &b.Amount
}

// FormatBRL formats an amount as Brazilian reais, e.g. "R$ 1.234,50"
func FormatBRL(amount float64) string {
	cents := int64(math.Round(amount * 100))
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}

	intPart := strconv.FormatInt(cents/100, 10)
	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}

	frac := cents % 100
	return sign + "R$ " + b.String() + "," + twoDigits(frac)
}

func twoDigits(v int64) string {
	if v < 10 {
		return "0" + strconv.FormatInt(v, 10)
	}
	return strconv.FormatInt(v, 10)
}
