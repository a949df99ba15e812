package pricing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeffjr007/locahubaju-project/pkg/ptr"
)

func at(h, m int) time.Time {
	return time.Date(2025, 5, 20, h, m, 0, 0, time.UTC)
}

func TestCompute_Example(t *testing.T) {
	b := Compute(ptr.Ptr(50.0), at(9, 0), at(10, 30))
	require.NotNil(t, b)

	assert.Equal(t, 1, b.Hours)
	assert.Equal(t, 30, b.Minutes)
	assert.InDelta(t, 1.5, b.TotalHours, 1e-9)
	assert.InDelta(t, 75.0, b.Amount, 1e-9)
}

func TestCompute_ReturnsNil(t *testing.T) {
	tests := []struct {
		name  string
		rate  *float64
		start time.Time
		end   time.Time
	}{
		{"no rate", nil, at(9, 0), at(10, 0)},
		{"zero rate", ptr.Ptr(0.0), at(9, 0), at(10, 0)},
		{"negative rate", ptr.Ptr(-10.0), at(9, 0), at(10, 0)},
		{"missing start", ptr.Ptr(10.0), time.Time{}, at(10, 0)},
		{"missing end", ptr.Ptr(10.0), at(9, 0), time.Time{}},
		{"empty interval", ptr.Ptr(10.0), at(9, 0), at(9, 0)},
		{"inverted interval", ptr.Ptr(10.0), at(10, 0), at(9, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Nil(t, Compute(tt.rate, tt.start, tt.end))
		})
	}
}

func TestCompute_TruncatesSeconds(t *testing.T) {
	b := Compute(ptr.Ptr(60.0), at(9, 0), at(11, 15).Add(59*time.Second))
	require.NotNil(t, b)

	assert.Equal(t, 2, b.Hours)
	assert.Equal(t, 15, b.Minutes)
	assert.InDelta(t, 135.0, b.Amount, 1e-9)
}

func TestDuration_AcrossDays(t *testing.T) {
	h, m := Duration(at(22, 0), at(22, 0).Add(26*time.Hour+5*time.Minute))
	assert.Equal(t, 26, h)
	assert.Equal(t, 5, m)
}

func TestFormatBRL(t *testing.T) {
	assert.Equal(t, "R$ 75,00", FormatBRL(75))
	assert.Equal(t, "R$ 1.234,50", FormatBRL(1234.5))
	assert.Equal(t, "R$ 1.000.000,01", FormatBRL(1000000.01))
	assert.Equal(t, "R$ 0,99", FormatBRL(0.994))
	assert.Equal(t, "-R$ 12,30", FormatBRL(-12.3))
}
