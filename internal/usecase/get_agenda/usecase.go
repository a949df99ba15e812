package get_agenda

import (
	"context"
	"fmt"
	"time"

	"github.com/jeffjr007/locahubaju-project/internal/domain"
)

// UseCase агенда занятости пространств
type UseCase struct {
	reservations ReservationRepository
	spaces       SpaceDirectory
	logger       Logger
}

func NewUseCase(reservations ReservationRepository, spaces SpaceDirectory, logger Logger) *UseCase {
	return &UseCase{
		reservations: reservations,
		spaces:       spaces,
		logger:       logger,
	}
}

// Execute выполняет use case получения агенды
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAgenda: validation failed: %v", err)
		return nil, err
	}

	loc := req.Location
	if loc == nil {
		loc = time.UTC
	}
	from, to := periodBounds(req.Date, req.View, loc)

	uc.logger.Info("GetAgenda: view=%s, from=%s, to=%s, space=%s",
		req.View, from.Format(time.RFC3339), to.Format(time.RFC3339), req.SpaceID)

	spaces, err := uc.spaces.List(ctx)
	if err != nil {
		uc.logger.Error("GetAgenda: failed to list spaces: %v", err)
		return nil, fmt.Errorf("%w: failed to list spaces: %v", ErrInternal, err)
	}

	selected := make([]*domain.Space, 0, len(spaces))
	for _, s := range spaces {
		if s == nil || !s.Active {
			continue
		}
		if req.SpaceID != "" && s.ID != req.SpaceID {
			continue
		}
		selected = append(selected, s)
	}
	if req.SpaceID != "" && len(selected) == 0 {
		uc.logger.Warn("GetAgenda: space id=%s not found", req.SpaceID)
		return nil, ErrSpaceNotFound
	}

	reservations, err := uc.reservations.FindInRange(ctx, from.UTC(), to.UTC())
	if err != nil {
		uc.logger.Error("GetAgenda: failed to get reservations: %v", err)
		return nil, fmt.Errorf("%w: failed to get reservations: %v", ErrInternal, err)
	}

	resp := &Response{From: from, To: to, Spaces: make([]SpaceAgenda, 0, len(selected))}
	busyTotal := 0
	for _, s := range selected {
		busy := busyIntervals(reservations, s.ID, from, to)
		busyTotal += len(busy)
		resp.Spaces = append(resp.Spaces, SpaceAgenda{
			SpaceID:   s.ID,
			SpaceName: s.Name,
			SpaceType: s.Type,
			Busy:      busy,
			Free:      freeWindows(busy, from, to),
		})
	}

	uc.logger.Info("GetAgenda: %d spaces, %d busy intervals", len(resp.Spaces), busyTotal)
	return resp, nil
}
