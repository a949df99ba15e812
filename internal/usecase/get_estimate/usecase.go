package get_estimate

import (
	"context"
	"errors"
	"fmt"

	spaceRepo "github.com/jeffjr007/locahubaju-project/internal/infra/storage/space"
	"github.com/jeffjr007/locahubaju-project/internal/service/pricing"
)

type UseCase struct {
	spaces SpaceDirectory
	logger Logger
}

func NewUseCase(spaces SpaceDirectory, logger Logger) *UseCase {
	return &UseCase{
		spaces: spaces,
		logger: logger,
	}
}

// Execute считает стоимость интервала по текущему тарифу пространства
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if req.SpaceID == "" {
		return nil, fmt.Errorf("%w: space id is required", ErrInvalidInput)
	}
	if req.Start.IsZero() || req.End.IsZero() || !req.Start.Before(req.End) {
		return nil, fmt.Errorf("%w: start must be before end", ErrInvalidInput)
	}

	space, err := uc.spaces.GetByID(ctx, req.SpaceID)
	if err != nil {
		if errors.Is(err, spaceRepo.ErrSpaceNotFound) {
			return nil, ErrSpaceNotFound
		}
		uc.logger.Error("GetEstimate: failed to load space id=%s: %v", req.SpaceID, err)
		return nil, fmt.Errorf("%w: GetByID - %v", ErrInternal, err)
	}

	budget := pricing.Compute(space.HourlyRate, req.Start, req.End)
	if budget == nil {
		uc.logger.Info("GetEstimate: space id=%s has no hourly rate", space.ID)
		return nil, ErrEstimateUnavailable
	}

	return &Response{
		SpaceID:    space.ID,
		SpaceName:  space.Name,
		HourlyRate: budget.HourlyRate,
		Hours:      budget.Hours,
		Minutes:    budget.Minutes,
		TotalHours: budget.TotalHours,
		Amount:     budget.Amount,
		Formatted:  pricing.FormatBRL(budget.Amount),
	}, nil
}
