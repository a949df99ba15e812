package conflicts

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInterval возвращается, когда start >= end
	ErrInvalidInterval = errors.New("conflicts: start must be before end")

	// ErrStorage возвращается при ошибке чтения бронирований
	ErrStorage = errors.New("conflicts: failed to load reservations")
)

// storageError ошибка репозитория при проверке конфликтов.
// Совпадает с ErrStorage через errors.Is и при этом сохраняет цепочку исходной ошибки,
// чтобы сервис мог распознать конфликт сериализации и повторить транзакцию
type storageError struct {
	op  string
	err error
}

func (e *storageError) Error() string {
	return fmt.Sprintf("%v: %s: %v", ErrStorage, e.op, e.err)
}

func (e *storageError) Is(target error) bool {
	return target == ErrStorage
}

func (e *storageError) Unwrap() error {
	return e.err
}
