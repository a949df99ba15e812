package models

import (
	"time"

	"github.com/jeffjr007/locahubaju-project/internal/domain"
	"github.com/jeffjr007/locahubaju-project/internal/service/pricing"
)

// Request модели

// CreateRequest запрос на создание бронирования
type CreateRequest struct {
	SpaceID string
	Start   time.Time
	End     time.Time
	Notes   *string // не сохраняется, передаётся в уведомление
	Notify  bool
}

// EditRequest запрос на изменение интервала бронирования
type EditRequest struct {
	Start  time.Time
	End    time.Time
	Notes  *string
	Notify bool
}

// ListRequest запрос на получение бронирований пользователя
type ListRequest struct {
	UserID string
	Status *string
}

// Response модели

// Estimate расчётная стоимость по текущему тарифу пространства
type Estimate struct {
	Hours      int     `json:"hours"`
	Minutes    int     `json:"minutes"`
	TotalHours float64 `json:"totalHours"`
	Amount     float64 `json:"amount"`
	Formatted  string  `json:"formatted"`
}

// ReservationResponse ответ с данными бронирования
type ReservationResponse struct {
	ID        string    `json:"id"`
	SpaceID   string    `json:"spaceId"`
	UserID    string    `json:"userId"`
	Start     string    `json:"start"`
	End       string    `json:"end"`
	Status    string    `json:"status"`
	Estimate  *Estimate `json:"estimate,omitempty"`
	CreatedAt string    `json:"createdAt"`
	UpdatedAt string    `json:"updatedAt"`
}

// ReservationListResponse список бронирований
type ReservationListResponse struct {
	Reservations []*ReservationResponse `json:"reservations"`
}

// FromDomainReservation конвертирует бронирование; space может быть nil (оценка стоимости не строится)
func FromDomainReservation(r *domain.Reservation, space *domain.Space) *ReservationResponse {
	resp := &ReservationResponse{
		ID:        r.ID,
		SpaceID:   r.SpaceID,
		UserID:    r.UserID,
		Start:     r.Start.Format(time.RFC3339),
		End:       r.End.Format(time.RFC3339),
		Status:    string(r.Status),
		CreatedAt: r.CreatedAt.Format(time.RFC3339),
		UpdatedAt: r.UpdatedAt.Format(time.RFC3339),
	}

	if space != nil {
		resp.Estimate = FromBudget(pricing.Compute(space.HourlyRate, r.Start, r.End))
	}

	return resp
}

// FromBudget конвертирует расчёт стоимости, nil остаётся nil
func FromBudget(b *pricing.Budget) *Estimate {
	if b == nil {
		return nil
	}
	return &Estimate{
		Hours:      b.Hours,
		Minutes:    b.Minutes,
		TotalHours: b.TotalHours,
		Amount:     b.Amount,
		Formatted:  pricing.FormatBRL(b.Amount),
	}
}
