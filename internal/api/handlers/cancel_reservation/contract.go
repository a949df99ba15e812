package cancel_reservation

import (
	"context"

	"github.com/jeffjr007/locahubaju-project/internal/domain"
	"github.com/jeffjr007/locahubaju-project/internal/service/reservations/models"
)

type ReservationService interface {
	Cancel(ctx context.Context, actor domain.Actor, id string) (*models.ReservationResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
