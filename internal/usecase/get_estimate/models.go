package get_estimate

import "time"

// Request запрос расчёта стоимости
type Request struct {
	SpaceID string
	Start   time.Time
	End     time.Time
}

// Response расчётная стоимость
type Response struct {
	SpaceID    string
	SpaceName  string
	HourlyRate float64
	Hours      int
	Minutes    int
	TotalHours float64
	Amount     float64
	Formatted  string
}
