package get_agenda

import "errors"

var (
	// ErrSpaceNotFound возвращается, когда запрошенное пространство не найдено или неактивно
	ErrSpaceNotFound = errors.New("space not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
