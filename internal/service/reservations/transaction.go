package reservations

import (
	"context"
	"errors"
	"fmt"

	reservationRepo "github.com/jeffjr007/locahubaju-project/internal/infra/storage/reservation"
	"github.com/jeffjr007/locahubaju-project/pkg/txmanager"
)

// inTransaction выполняет fn в сериализуемой транзакции и повторяет её при конфликте сериализации.
// Остальные ошибки возвращаются сразу, без повторов
func (s *Service) inTransaction(ctx context.Context, op string, fn func(ctx context.Context) error) error {
	var err error

	for attempt := 1; attempt <= s.maxAttempts; attempt++ {
		err = s.txManager.DoSerializable(ctx, fn)
		if !isRetryable(err) {
			return err
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return fmt.Errorf("%w: %s - context done after %d attempts: %v", ErrStorage, op, attempt, ctxErr)
		}

		s.logger.Warn("%s: serialization failure, attempt %d/%d: %v", op, attempt, s.maxAttempts, err)
		if attempt < s.maxAttempts {
			s.metrics.IncTransactionRetry(op)
		}
	}

	return fmt.Errorf("%w: %s - retries exhausted after %d attempts: %v", ErrStorage, op, s.maxAttempts, err)
}

func isRetryable(err error) bool {
	if err == nil {
		return false
	}
	return errors.Is(err, reservationRepo.ErrSerialization) || errors.Is(err, txmanager.ErrSerializationFailure)
}

// mapRepoErr переводит ошибки хранилища в ошибки сервиса.
// Конфликт сериализации пробрасывается как есть, чтобы inTransaction мог повторить транзакцию
func mapRepoErr(op string, err error) error {
	switch {
	case isRetryable(err):
		return err
	case errors.Is(err, reservationRepo.ErrOverlap):
		return fmt.Errorf("%w: %s", ErrConflict, op)
	case errors.Is(err, reservationRepo.ErrReservationNotFound):
		return ErrNotFound
	default:
		return fmt.Errorf("%w: %s: %v", ErrStorage, op, err)
	}
}

// outcome метка результата операции для метрик
func outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrValidation):
		return "validation"
	case errors.Is(err, ErrConflict):
		return "conflict"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrInvalidTransition):
		return "invalid_transition"
	case errors.Is(err, ErrAccessDenied):
		return "access_denied"
	default:
		return "storage"
	}
}
