package get_report

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

// Cache кэш готовых отчётов. Может отсутствовать
type Cache interface {
	// Get возвращает ключ, под которым нужно сохранить отчёт при промахе
	Get(ctx context.Context, from, to time.Time, dst interface{}) (key string, hit bool, err error)
	Set(ctx context.Context, key string, value interface{}) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
