package get_agenda

import (
	"context"
	"time"

	"github.com/jeffjr007/locahubaju-project/internal/domain"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	FindInRange(ctx context.Context, from, to time.Time) ([]*domain.Reservation, error)
}

// SpaceDirectory справочник пространств
type SpaceDirectory interface {
	List(ctx context.Context) ([]*domain.Space, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
