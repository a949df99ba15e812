package notifier

import (
	"errors"
	"fmt"
)

var (
	// ErrSkipped драйвер сознательно не отправил событие (например, нет телефона для webhook)
	ErrSkipped = errors.New("notifier: event skipped")

	// ErrDelivery ошибка доставки события внешнему получателю
	ErrDelivery = errors.New("notifier: delivery failed")

	// ErrEncode ошибка сериализации payload
	ErrEncode = errors.New("notifier: encode payload")

	// ErrConnect ошибка подключения к брокеру
	ErrConnect = errors.New("notifier: connect")
)

// optedOut возвращает ErrSkipped, если пользователь отказался от внешних уведомлений.
// Вызывается только внешними драйверами: кэш отчётов и лента событий получают событие всегда
func optedOut(n Notification) error {
	if n.Event.Silent {
		return fmt.Errorf("%w: user opted out of notifications for reservation %s", ErrSkipped, n.Event.Reservation.ID)
	}
	return nil
}
