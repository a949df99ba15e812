package get_report

import "errors"

var (
	// ErrAccessDenied отчёты доступны только администратору
	ErrAccessDenied = errors.New("report: access denied")

	// ErrInvalidInput возвращается при некорректном диапазоне дат
	ErrInvalidInput = errors.New("report: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("report: internal error")
)
