package conflicts

import (
	"context"
	"time"

	"github.com/jeffjr007/locahubaju-project/internal/domain"
)

// Detector проверяет пересечение интервала с активными бронированиями пространства.
// Только читает данные; внутри транзакции репозиторий блокирует прочитанные строки.
type Detector struct {
	repo ReservationRepository
}

func NewDetector(repo ReservationRepository) *Detector {
	return &Detector{repo: repo}
}

// HasConflict сообщает, пересекается ли [start, end) с активным бронированием spaceID.
// excludeID пропускается (редактирование собственного бронирования)
func (d *Detector) HasConflict(ctx context.Context, spaceID string, start, end time.Time, excludeID string) (bool, error) {
	if !start.Before(end) {
		return false, ErrInvalidInterval
	}

	active, err := d.repo.FindActiveForSpace(ctx, spaceID)
	if err != nil {
		return false, &storageError{op: "HasConflict - space=" + spaceID, err: err}
	}

	return FindConflict(active, start, end, excludeID) != nil, nil
}

// FindConflict возвращает первое активное бронирование, пересекающееся с [start, end)
func FindConflict(reservations []*domain.Reservation, start, end time.Time, excludeID string) *domain.Reservation {
	for _, r := range reservations {
		if r == nil || !r.IsActive() {
			continue
		}
		if excludeID != "" && r.ID == excludeID {
			continue
		}
		if Overlaps(start, end, r.Start, r.End) {
			return r
		}
	}
	return nil
}

// Overlaps полуоткрытые интервалы [aStart, aEnd) и [bStart, bEnd) пересекаются.
// Касание границ (10:00-11:00 и 11:00-12:00) не считается пересечением
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}
