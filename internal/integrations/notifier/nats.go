package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
)

// Publisher часть *nats.Conn, используемая драйвером
type Publisher interface {
	Publish(subject string, data []byte) error
}

// NATSDriver публикует payload в subject <prefix>.<kind>
type NATSDriver struct {
	conn   Publisher
	prefix string
	closer func()
}

// ConnectNATS подключается к NATS с переподключением
func ConnectNATS(url string, logger Logger) (*nats.Conn, error) {
	options := []nats.Option{
		nats.Name("locahubaju-reservations"),
		nats.MaxReconnects(10),
		nats.ReconnectWait(2 * time.Second),
		nats.Timeout(5 * time.Second),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			logger.Warn("NATS disconnected: %v", err)
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logger.Info("NATS reconnected to %s", nc.ConnectedUrl())
		}),
		nats.ClosedHandler(func(_ *nats.Conn) {
			logger.Info("NATS connection closed")
		}),
	}

	nc, err := nats.Connect(url, options...)
	if err != nil {
		return nil, fmt.Errorf("%w: nats: %v", ErrConnect, err)
	}
	return nc, nil
}

func NewNATSDriver(conn *nats.Conn, prefix string) *NATSDriver {
	d := NewNATSDriverWithPublisher(conn, prefix)
	d.closer = func() { _ = conn.Drain() }
	return d
}

func NewNATSDriverWithPublisher(conn Publisher, prefix string) *NATSDriver {
	if prefix == "" {
		prefix = "reservations"
	}
	return &NATSDriver{conn: conn, prefix: prefix}
}

func (n *NATSDriver) Name() string {
	return "nats"
}

// Subject subject, в который публикуется событие данного вида
func (n *NATSDriver) Subject(kind string) string {
	return n.prefix + "." + kind
}

func (n *NATSDriver) Send(ctx context.Context, note Notification) error {
	if err := optedOut(note); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrDelivery, err)
	}

	body, err := json.Marshal(note.Payload)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrEncode, err)
	}

	if err := n.conn.Publish(n.Subject(string(note.Event.Kind)), body); err != nil {
		return fmt.Errorf("%w: nats publish: %v", ErrDelivery, err)
	}
	return nil
}

func (n *NATSDriver) Close() error {
	if n.closer != nil {
		n.closer()
	}
	return nil
}
