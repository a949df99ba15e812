package reservations

import "errors"

var (
	// ErrValidation возвращается при некорректном запросе: пустой или перевёрнутый интервал,
	// отсутствующий пользователь или пространство, неактивное пространство
	ErrValidation = errors.New("reservations: validation failed")

	// ErrConflict возвращается, когда интервал пересекается с активным бронированием
	ErrConflict = errors.New("reservations: interval overlaps an active reservation")

	// ErrNotFound возвращается, когда бронирование не найдено
	ErrNotFound = errors.New("reservations: reservation not found")

	// ErrInvalidTransition возвращается при операции над отменённым бронированием
	ErrInvalidTransition = errors.New("reservations: invalid status transition")

	// ErrAccessDenied возвращается, когда пользователь не владелец и не администратор
	ErrAccessDenied = errors.New("reservations: access denied")

	// ErrStorage возвращается при ошибках хранилища и исчерпании повторов транзакции
	ErrStorage = errors.New("reservations: storage error")
)
