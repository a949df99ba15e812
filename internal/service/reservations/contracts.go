package reservations

import (
	"context"
	"time"

	"github.com/jeffjr007/locahubaju-project/internal/domain"
)

// ReservationRepository интерфейс хранилища бронирований
type ReservationRepository interface {
	LockSpace(ctx context.Context, spaceID string) error
	Insert(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error)
	UpdateInterval(ctx context.Context, id string, start, end, updatedAt time.Time) (*domain.Reservation, error)
	UpdateStatus(ctx context.Context, id string, status domain.ReservationStatus, updatedAt time.Time) (*domain.Reservation, error)
	FindByID(ctx context.Context, id string) (*domain.Reservation, error)
	FindByUser(ctx context.Context, userID string, status *domain.ReservationStatus) ([]*domain.Reservation, error)
}

// SpaceDirectory справочник пространств
type SpaceDirectory interface {
	GetByID(ctx context.Context, id string) (*domain.Space, error)
}

// ConflictDetector проверка пересечения интервалов
type ConflictDetector interface {
	HasConflict(ctx context.Context, spaceID string, start, end time.Time, excludeID string) (bool, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Dispatcher асинхронная отправка событий жизненного цикла. Не блокирует и не возвращает ошибок
type Dispatcher interface {
	Dispatch(ctx context.Context, event domain.Event)
}

// Metrics счётчики операций
type Metrics interface {
	IncReservationOp(operation, result string)
	IncTransactionRetry(operation string)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время с точностью хранения PostgreSQL
func (p *RealTimeProvider) Now() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}
