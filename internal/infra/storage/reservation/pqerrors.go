package reservation

import (
	"errors"
	"fmt"

	"github.com/lib/pq"
)

const (
	codeUniqueViolation      = "23505"
	codeExclusionViolation   = "23P01"
	codeSerializationFailure = "40001"
	codeDeadlockDetected     = "40P01"
)

// classify переводит ошибку PostgreSQL в sentinel репозитория
func classify(op string, err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case codeExclusionViolation:
			return fmt.Errorf("%w: %s: %v", ErrOverlap, op, err)
		case codeSerializationFailure, codeDeadlockDetected:
			return fmt.Errorf("%w: %s: %v", ErrSerialization, op, err)
		case codeUniqueViolation:
			return fmt.Errorf("%w: %s: %v", ErrDuplicateID, op, err)
		}
	}
	return fmt.Errorf("%w: %s: %v", ErrExecQuery, op, err)
}
