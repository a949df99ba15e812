package conflicts

import (
	"context"

	"github.com/jeffjr007/locahubaju-project/internal/domain"
)

// ReservationRepository источник активных бронирований пространства
type ReservationRepository interface {
	FindActiveForSpace(ctx context.Context, spaceID string) ([]*domain.Reservation, error)
}
