package edit_reservation

import (
	"fmt"
	"time"

	"github.com/jeffjr007/locahubaju-project/internal/service/reservations/models"
	"github.com/jeffjr007/locahubaju-project/pkg/ptr"
)

// EditReservationRequest HTTP request model. Меняется только интервал
type EditReservationRequest struct {
	Start  string  `json:"start"`
	End    string  `json:"end"`
	Notes  *string `json:"notes,omitempty"`
	Notify *bool   `json:"notify,omitempty"`
}

func (r *EditReservationRequest) ToServiceRequest() (*models.EditRequest, error) {
	start, err := time.Parse(time.RFC3339, r.Start)
	if err != nil {
		return nil, fmt.Errorf("start: %w", err)
	}
	end, err := time.Parse(time.RFC3339, r.End)
	if err != nil {
		return nil, fmt.Errorf("end: %w", err)
	}

	return &models.EditRequest{
		Start:  start,
		End:    end,
		Notes:  r.Notes,
		Notify: ptr.Deref(r.Notify, true),
	}, nil
}
