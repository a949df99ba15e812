package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// RabbitMQDriver публикует payload в durable-очередь через exchange по умолчанию
type RabbitMQDriver struct {
	mu    sync.Mutex
	conn  *amqp.Connection
	ch    *amqp.Channel
	queue string
}

// NewRabbitMQDriver подключается к брокеру и объявляет очередь
func NewRabbitMQDriver(url, queue string) (*RabbitMQDriver, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("%w: rabbitmq dial: %v", ErrConnect, err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("%w: rabbitmq channel: %v", ErrConnect, err)
	}

	if _, err := ch.QueueDeclare(
		queue,
		true,  // durable
		false, // autoDelete
		false, // exclusive
		false, // noWait
		nil,
	); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("%w: rabbitmq queue declare: %v", ErrConnect, err)
	}

	return &RabbitMQDriver{conn: conn, ch: ch, queue: queue}, nil
}

func (r *RabbitMQDriver) Name() string {
	return "rabbitmq"
}

func (r *RabbitMQDriver) Send(ctx context.Context, n Notification) error {
	if err := optedOut(n); err != nil {
		return err
	}
	body, err := json.Marshal(n.Payload)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrEncode, err)
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		MessageId:    n.Event.Reservation.ID,
		Type:         string(n.Event.Kind),
		Body:         body,
	}

	// amqp.Channel не потокобезопасен для публикации
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.ch.PublishWithContext(ctx, "", r.queue, false, false, pub); err != nil {
		return fmt.Errorf("%w: rabbitmq publish: %v", ErrDelivery, err)
	}
	return nil
}

func (r *RabbitMQDriver) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_ = r.ch.Close()
	return r.conn.Close()
}
