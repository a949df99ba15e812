package get_report

import (
	"time"

	"github.com/jeffjr007/locahubaju-project/internal/domain"
	"github.com/jeffjr007/locahubaju-project/internal/service/pricing"
)

// Request запрос отчёта. Нулевая граница диапазона открыта
type Request struct {
	Actor domain.Actor
	From  time.Time
	To    time.Time
}

// Response отчёт в форме, пригодной для JSON и кэша
type Response struct {
	From             *time.Time      `json:"from,omitempty"`
	To               *time.Time      `json:"to,omitempty"`
	Total            int             `json:"total"`
	Pending          int             `json:"pending"`
	Confirmed        int             `json:"confirmed"`
	Cancelled        int             `json:"cancelled"`
	DistinctUsers    int             `json:"distinctUsers"`
	DistinctSpaces   int             `json:"distinctSpaces"`
	ActiveSpaces     int             `json:"activeSpaces"`
	Revenue          float64         `json:"revenue"`
	RevenueFormatted string          `json:"revenueFormatted"`
	Occupancy        []OccupancyItem `json:"occupancy"`
	TypeShares       []TypeShareItem `json:"typeShares"`
	Rows             []Row           `json:"rows"`
	GeneratedAt      time.Time       `json:"generatedAt"`
}

type OccupancyItem struct {
	SpaceID        string  `json:"spaceId"`
	SpaceName      string  `json:"spaceName"`
	Count          int     `json:"count"`
	ConfirmedHours float64 `json:"confirmedHours"`
}

type TypeShareItem struct {
	Type  string `json:"type"`
	Count int    `json:"count"`
}

// Row строка отчёта по одному бронированию
type Row struct {
	ReservationID string    `json:"reservationId"`
	SpaceID       string    `json:"spaceId"`
	SpaceName     string    `json:"spaceName"`
	SpaceType     string    `json:"spaceType"`
	UserID        string    `json:"userId"`
	Status        string    `json:"status"`
	Start         time.Time `json:"start"`
	End           time.Time `json:"end"`
	Hours         int       `json:"hours"`
	Minutes       int       `json:"minutes"`
	EstimatedCost *float64  `json:"estimatedCost"`
}

// FromStats конвертирует доменную статистику в ответ
func FromStats(s domain.Stats, generatedAt time.Time) *Response {
	resp := &Response{
		Total:            s.Total,
		Pending:          s.ByStatus.Pending,
		Confirmed:        s.ByStatus.Confirmed,
		Cancelled:        s.ByStatus.Cancelled,
		DistinctUsers:    s.DistinctUsers,
		DistinctSpaces:   s.DistinctSpaces,
		ActiveSpaces:     s.ActiveSpaces,
		Revenue:          s.Revenue,
		RevenueFormatted: pricing.FormatBRL(s.Revenue),
		Occupancy:        make([]OccupancyItem, 0, len(s.Occupancy)),
		TypeShares:       make([]TypeShareItem, 0, len(s.TypeShares)),
		Rows:             make([]Row, 0, len(s.Rows)),
		GeneratedAt:      generatedAt,
	}
	if !s.Range.From.IsZero() {
		from := s.Range.From
		resp.From = &from
	}
	if !s.Range.To.IsZero() {
		to := s.Range.To
		resp.To = &to
	}

	for _, o := range s.Occupancy {
		resp.Occupancy = append(resp.Occupancy, OccupancyItem{
			SpaceID:        o.SpaceID,
			SpaceName:      o.SpaceName,
			Count:          o.Count,
			ConfirmedHours: o.ConfirmedHours,
		})
	}
	for _, t := range s.TypeShares {
		resp.TypeShares = append(resp.TypeShares, TypeShareItem{Type: string(t.Type), Count: t.Count})
	}
	for _, r := range s.Rows {
		resp.Rows = append(resp.Rows, Row{
			ReservationID: r.ReservationID,
			SpaceID:       r.SpaceID,
			SpaceName:     r.SpaceName,
			SpaceType:     string(r.SpaceType),
			UserID:        r.UserID,
			Status:        string(r.Status),
			Start:         r.Start,
			End:           r.End,
			Hours:         r.Hours,
			Minutes:       r.Minutes,
			EstimatedCost: r.EstimatedCost,
		})
	}

	return resp
}
