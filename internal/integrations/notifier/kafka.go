package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
)

// MessageWriter часть kafka.Writer, используемая драйвером
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaDriver пишет payload в топик; ключ сообщения - id бронирования,
// поэтому события одного бронирования попадают в одну партицию по порядку
type KafkaDriver struct {
	writer MessageWriter
}

func NewKafkaDriver(brokers []string, topic string) *KafkaDriver {
	return NewKafkaDriverWithWriter(&kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		BatchTimeout:           10 * time.Millisecond,
		RequiredAcks:           kafka.RequireOne,
		AllowAutoTopicCreation: true,
	})
}

func NewKafkaDriverWithWriter(writer MessageWriter) *KafkaDriver {
	return &KafkaDriver{writer: writer}
}

func (k *KafkaDriver) Name() string {
	return "kafka"
}

func (k *KafkaDriver) Send(ctx context.Context, n Notification) error {
	if err := optedOut(n); err != nil {
		return err
	}
	body, err := json.Marshal(n.Payload)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrEncode, err)
	}

	msg := kafka.Message{
		Key:   []byte(n.Event.Reservation.ID),
		Value: body,
		Time:  n.Event.OccurredAt,
		Headers: []kafka.Header{
			{Key: "kind", Value: []byte(n.Event.Kind)},
		},
	}

	if err := k.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("%w: kafka write: %v", ErrDelivery, err)
	}
	return nil
}

func (k *KafkaDriver) Close() error {
	return k.writer.Close()
}
