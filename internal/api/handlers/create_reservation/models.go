package create_reservation

import (
	"fmt"
	"time"

	"github.com/jeffjr007/locahubaju-project/internal/service/reservations/models"
	"github.com/jeffjr007/locahubaju-project/pkg/ptr"
)

// CreateReservationRequest HTTP request model
type CreateReservationRequest struct {
	SpaceID string  `json:"spaceId"`
	Start   string  `json:"start"` // RFC3339
	End     string  `json:"end"`   // RFC3339
	Notes   *string `json:"notes,omitempty"`
	Notify  *bool   `json:"notify,omitempty"` // по умолчанию true
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *CreateReservationRequest) ToServiceRequest() (*models.CreateRequest, error) {
	start, err := time.Parse(time.RFC3339, r.Start)
	if err != nil {
		return nil, fmt.Errorf("start: %w", err)
	}
	end, err := time.Parse(time.RFC3339, r.End)
	if err != nil {
		return nil, fmt.Errorf("end: %w", err)
	}

	return &models.CreateRequest{
		SpaceID: r.SpaceID,
		Start:   start,
		End:     end,
		Notes:   r.Notes,
		Notify:  ptr.Deref(r.Notify, true),
	}, nil
}
