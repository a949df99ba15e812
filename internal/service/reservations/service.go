package reservations

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/jeffjr007/locahubaju-project/internal/domain"
	spaceRepo "github.com/jeffjr007/locahubaju-project/internal/infra/storage/space"
	"github.com/jeffjr007/locahubaju-project/internal/service/pricing"
	"github.com/jeffjr007/locahubaju-project/internal/service/reservations/models"
	"github.com/jeffjr007/locahubaju-project/pkg/ptr"
)

const (
	opCreate = "create"
	opEdit   = "edit"
	opCancel = "cancel"
)

// Service менеджер жизненного цикла бронирований.
//
// Переходы: (нет) -> confirmed при создании; pending/confirmed -> тот же статус с новым интервалом
// при редактировании; pending/confirmed -> cancelled при отмене. Отменённое бронирование не меняется.
// Проверка пересечений и запись выполняются в одной сериализуемой транзакции под блокировкой пространства.
type Service struct {
	repo         ReservationRepository
	spaces       SpaceDirectory
	detector     ConflictDetector
	txManager    TransactionManager
	dispatcher   Dispatcher
	metrics      Metrics
	timeProvider TimeProvider
	maxAttempts  int
	logger       Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	repo ReservationRepository,
	spaces SpaceDirectory,
	detector ConflictDetector,
	txManager TransactionManager,
	dispatcher Dispatcher,
	metrics Metrics,
	maxAttempts int,
	logger Logger,
) *Service {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	return &Service{
		repo:         repo,
		spaces:       spaces,
		detector:     detector,
		txManager:    txManager,
		dispatcher:   dispatcher,
		metrics:      metrics,
		timeProvider: &RealTimeProvider{},
		maxAttempts:  maxAttempts,
		logger:       logger,
	}
}

// Create создает бронирование сразу в статусе confirmed
func (s *Service) Create(ctx context.Context, actor domain.Actor, req *models.CreateRequest) (*models.ReservationResponse, error) {
	s.logger.Info("Create: user=%s, space=%s, start=%s, end=%s",
		actor.UserID, req.SpaceID, req.Start.Format("2006-01-02T15:04"), req.End.Format("2006-01-02T15:04"))

	if err := validateCreate(actor, req); err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		s.metrics.IncReservationOp(opCreate, outcome(err))
		return nil, err
	}

	space, err := s.activeSpace(ctx, req.SpaceID)
	if err != nil {
		s.metrics.IncReservationOp(opCreate, outcome(err))
		return nil, err
	}

	start, end := req.Start.UTC(), req.End.UTC()
	var created *domain.Reservation

	err = s.inTransaction(ctx, opCreate, func(txCtx context.Context) error {
		if err := s.repo.LockSpace(txCtx, space.ID); err != nil {
			return mapRepoErr("Create - lock space", err)
		}

		conflict, err := s.detector.HasConflict(txCtx, space.ID, start, end, "")
		if err != nil {
			return mapRepoErr("Create - conflict check", err)
		}
		if conflict {
			return ErrConflict
		}

		now := s.timeProvider.Now()
		created, err = s.repo.Insert(txCtx, &domain.Reservation{
			ID:        uuid.NewString(),
			SpaceID:   space.ID,
			UserID:    actor.UserID,
			Start:     start,
			End:       end,
			Status:    domain.StatusConfirmed,
			CreatedAt: now,
			UpdatedAt: now,
		})
		if err != nil {
			return mapRepoErr("Create - insert", err)
		}
		return nil
	})

	s.metrics.IncReservationOp(opCreate, outcome(err))
	if err != nil {
		s.logFailure("Create", err)
		return nil, err
	}

	s.logger.Info("Create: reservation id=%s created for user=%s in space=%s", created.ID, created.UserID, created.SpaceID)

	s.emit(ctx, domain.EventCreated, created, space, req.Notes, !req.Notify)

	return models.FromDomainReservation(created, space), nil
}

// Edit меняет интервал активного бронирования; статус сохраняется.
// Пересечение проверяется без учёта самого бронирования, поэтому тот же интервал допустим
func (s *Service) Edit(ctx context.Context, actor domain.Actor, id string, req *models.EditRequest) (*models.ReservationResponse, error) {
	s.logger.Info("Edit: reservation id=%s by user=%s", id, actor.UserID)

	if err := validateEdit(actor, id, req); err != nil {
		s.logger.Warn("Edit: validation failed: %v", err)
		s.metrics.IncReservationOp(opEdit, outcome(err))
		return nil, err
	}

	start, end := req.Start.UTC(), req.End.UTC()
	var updated *domain.Reservation

	err := s.inTransaction(ctx, opEdit, func(txCtx context.Context) error {
		current, err := s.repo.FindByID(txCtx, id)
		if err != nil {
			return mapRepoErr("Edit - find", err)
		}
		if !actor.CanAccess(current) {
			return ErrAccessDenied
		}
		if !current.CanBeEdited() {
			return fmt.Errorf("%w: reservation is %s", ErrInvalidTransition, current.Status)
		}

		if err := s.repo.LockSpace(txCtx, current.SpaceID); err != nil {
			return mapRepoErr("Edit - lock space", err)
		}

		conflict, err := s.detector.HasConflict(txCtx, current.SpaceID, start, end, current.ID)
		if err != nil {
			return mapRepoErr("Edit - conflict check", err)
		}
		if conflict {
			return ErrConflict
		}

		updated, err = s.repo.UpdateInterval(txCtx, current.ID, start, end, s.timeProvider.Now())
		if err != nil {
			return mapRepoErr("Edit - update interval", err)
		}
		return nil
	})

	s.metrics.IncReservationOp(opEdit, outcome(err))
	if err != nil {
		s.logFailure("Edit", err)
		return nil, err
	}

	s.logger.Info("Edit: reservation id=%s moved to %s - %s", updated.ID,
		updated.Start.Format("2006-01-02T15:04"), updated.End.Format("2006-01-02T15:04"))

	space := s.lookupSpace(ctx, updated.SpaceID)
	s.emit(ctx, domain.EventEdited, updated, space, req.Notes, !req.Notify)

	return models.FromDomainReservation(updated, space), nil
}

// Cancel переводит бронирование в cancelled. Повторная отмена возвращает ErrInvalidTransition
func (s *Service) Cancel(ctx context.Context, actor domain.Actor, id string) (*models.ReservationResponse, error) {
	s.logger.Info("Cancel: reservation id=%s by user=%s", id, actor.UserID)

	if err := validateActor(actor); err != nil {
		s.metrics.IncReservationOp(opCancel, outcome(err))
		return nil, err
	}

	var cancelled *domain.Reservation

	err := s.inTransaction(ctx, opCancel, func(txCtx context.Context) error {
		current, err := s.repo.FindByID(txCtx, id)
		if err != nil {
			return mapRepoErr("Cancel - find", err)
		}
		if !actor.CanAccess(current) {
			return ErrAccessDenied
		}
		if !current.CanBeCancelled() {
			return fmt.Errorf("%w: reservation is already %s", ErrInvalidTransition, current.Status)
		}

		cancelled, err = s.repo.UpdateStatus(txCtx, current.ID, domain.StatusCancelled, s.timeProvider.Now())
		if err != nil {
			return mapRepoErr("Cancel - update status", err)
		}
		return nil
	})

	s.metrics.IncReservationOp(opCancel, outcome(err))
	if err != nil {
		s.logFailure("Cancel", err)
		return nil, err
	}

	s.logger.Info("Cancel: reservation id=%s cancelled", cancelled.ID)

	space := s.lookupSpace(ctx, cancelled.SpaceID)
	s.emit(ctx, domain.EventCancelled, cancelled, space, nil, false)

	return models.FromDomainReservation(cancelled, space), nil
}

// GetByID получает бронирование. Доступно владельцу и администратору
func (s *Service) GetByID(ctx context.Context, actor domain.Actor, id string) (*models.ReservationResponse, error) {
	res, err := s.repo.FindByID(ctx, id)
	if err != nil {
		err = mapRepoErr("GetByID - find", err)
		s.logFailure("GetByID", err)
		return nil, err
	}

	if !actor.CanAccess(res) {
		s.logger.Warn("GetByID: access denied for user=%s to reservation id=%s", actor.UserID, id)
		return nil, ErrAccessDenied
	}

	return models.FromDomainReservation(res, s.lookupSpace(ctx, res.SpaceID)), nil
}

// ListByUser история бронирований пользователя, новые первыми.
// Пользователь видит только свои бронирования, администратор любые
func (s *Service) ListByUser(ctx context.Context, actor domain.Actor, req *models.ListRequest) (*models.ReservationListResponse, error) {
	s.logger.Info("ListByUser: user=%s requested by=%s, status=%v", req.UserID, actor.UserID, ptr.Deref(req.Status, ""))

	if req.UserID == "" {
		return nil, fmt.Errorf("%w: user id is required", ErrValidation)
	}
	if !actor.IsAdmin && actor.UserID != req.UserID {
		s.logger.Warn("ListByUser: access denied for user=%s to reservations of user=%s", actor.UserID, req.UserID)
		return nil, ErrAccessDenied
	}

	var status *domain.ReservationStatus
	if req.Status != nil {
		parsed, ok := domain.ParseReservationStatus(*req.Status)
		if !ok {
			return nil, fmt.Errorf("%w: unknown status %q", ErrValidation, *req.Status)
		}
		status = &parsed
	}

	list, err := s.repo.FindByUser(ctx, req.UserID, status)
	if err != nil {
		s.logger.Error("ListByUser: repository error for user=%s: %v", req.UserID, err)
		return nil, mapRepoErr("ListByUser - find", err)
	}

	spaces := make(map[string]*domain.Space)
	resp := &models.ReservationListResponse{Reservations: make([]*models.ReservationResponse, 0, len(list))}
	for _, r := range list {
		space, seen := spaces[r.SpaceID]
		if !seen {
			space = s.lookupSpace(ctx, r.SpaceID)
			spaces[r.SpaceID] = space
		}
		resp.Reservations = append(resp.Reservations, models.FromDomainReservation(r, space))
	}

	s.logger.Info("ListByUser: fetched %d reservations for user=%s", len(list), req.UserID)
	return resp, nil
}

// activeSpace загружает пространство для создания бронирования
func (s *Service) activeSpace(ctx context.Context, id string) (*domain.Space, error) {
	space, err := s.spaces.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, spaceRepo.ErrSpaceNotFound) {
			s.logger.Warn("Create: space id=%s not found", id)
			return nil, fmt.Errorf("%w: space %s not found", ErrValidation, id)
		}
		s.logger.Error("Create: failed to load space id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: load space: %v", ErrStorage, err)
	}
	if !space.Active {
		s.logger.Warn("Create: space id=%s is inactive", id)
		return nil, fmt.Errorf("%w: space %s is inactive", ErrValidation, id)
	}
	return space, nil
}

// lookupSpace загружает пространство для ответа и уведомления; ошибка не прерывает операцию
func (s *Service) lookupSpace(ctx context.Context, id string) *domain.Space {
	space, err := s.spaces.GetByID(ctx, id)
	if err != nil {
		s.logger.Warn("lookupSpace: space id=%s unavailable: %v", id, err)
		return nil
	}
	return space
}

// emit ставит событие в очередь после фиксации транзакции.
// Событие отправляется всегда; silent отключает только внешние уведомления
func (s *Service) emit(ctx context.Context, kind domain.EventKind, res *domain.Reservation, space *domain.Space, notes *string, silent bool) {
	event := domain.Event{
		Kind:        kind,
		Reservation: *res,
		Space:       space,
		Notes:       ptr.Deref(notes, ""),
		OccurredAt:  s.timeProvider.Now(),
		Silent:      silent,
	}
	if space != nil {
		event.EstimatedCost = pricing.Amount(space.HourlyRate, res.Start, res.End)
	}

	s.dispatcher.Dispatch(ctx, event)
}

func (s *Service) logFailure(op string, err error) {
	switch {
	case errors.Is(err, ErrStorage):
		s.logger.Error("%s: %v", op, err)
	default:
		s.logger.Warn("%s: %v", op, err)
	}
}
