package reservation

import "errors"

var (
	// ErrReservationNotFound возвращается, когда бронирование не найдено
	ErrReservationNotFound = errors.New("reservation.repository: reservation not found")

	// ErrOverlap возвращается при нарушении exclusion constraint (пересечение активных интервалов)
	ErrOverlap = errors.New("reservation.repository: overlapping active reservation")

	// ErrSerialization возвращается при конфликте сериализации или дедлоке, транзакцию можно повторить
	ErrSerialization = errors.New("reservation.repository: serialization failure")

	// ErrDuplicateID возвращается при повторной вставке бронирования с тем же ID
	ErrDuplicateID = errors.New("reservation.repository: duplicate reservation id")

	// ErrTransaction возвращается при ошибках работы с транзакцией
	ErrTransaction = errors.New("reservation.repository: transaction error")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("reservation.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("reservation.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("reservation.repository: failed to scan row")
)
