package get_report

import (
	"context"
	"fmt"
	"time"

	"github.com/jeffjr007/locahubaju-project/internal/domain"
)

type UseCase struct {
	reservations ReservationRepository
	spaces       SpaceDirectory
	cache        Cache
	now          func() time.Time
	logger       Logger
}

// NewUseCase создает usecase отчёта. cache может быть nil - тогда отчёт всегда считается заново
func NewUseCase(reservations ReservationRepository, spaces SpaceDirectory, cache Cache, logger Logger) *UseCase {
	return &UseCase{
		reservations: reservations,
		spaces:       spaces,
		cache:        cache,
		now:          func() time.Time { return time.Now().UTC() },
		logger:       logger,
	}
}

// Execute строит отчёт за период
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if !req.Actor.IsAdmin {
		uc.logger.Warn("GetReport: access denied for user=%s", req.Actor.UserID)
		return nil, ErrAccessDenied
	}
	if !req.From.IsZero() && !req.To.IsZero() && req.To.Before(req.From) {
		return nil, fmt.Errorf("%w: 'to' is before 'from'", ErrInvalidInput)
	}

	from, to := req.From.UTC(), req.To.UTC()

	// cacheKey пустой, если кэш выключен или недоступен: тогда отчёт не сохраняется
	var cacheKey string
	if uc.cache != nil {
		var (
			cached Response
			hit    bool
			err    error
		)
		cacheKey, hit, err = uc.cache.Get(ctx, from, to, &cached)
		if err != nil {
			cacheKey = ""
			uc.logger.Warn("GetReport: cache read failed: %v", err)
		} else if hit {
			uc.logger.Info("GetReport: served from cache, from=%s to=%s", formatBound(from), formatBound(to))
			return &cached, nil
		}
	}

	reservations, err := uc.reservations.FindInRange(ctx, from, to)
	if err != nil {
		uc.logger.Error("GetReport: failed to load reservations: %v", err)
		return nil, fmt.Errorf("%w: FindInRange - %v", ErrInternal, err)
	}

	spaces, err := uc.spaces.List(ctx)
	if err != nil {
		uc.logger.Error("GetReport: failed to load spaces: %v", err)
		return nil, fmt.Errorf("%w: List spaces - %v", ErrInternal, err)
	}

	stats := Aggregate(reservations, spaces, domain.DateRange{From: from, To: to})
	resp := FromStats(stats, uc.now())

	if cacheKey != "" {
		if err := uc.cache.Set(ctx, cacheKey, resp); err != nil {
			uc.logger.Warn("GetReport: cache write failed: %v", err)
		}
	}

	uc.logger.Info("GetReport: %d reservations aggregated, from=%s to=%s", stats.Total, formatBound(from), formatBound(to))
	return resp, nil
}

func formatBound(t time.Time) string {
	if t.IsZero() {
		return "open"
	}
	return t.Format(time.RFC3339)
}
