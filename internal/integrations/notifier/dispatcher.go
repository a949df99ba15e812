package notifier

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/jeffjr007/locahubaju-project/internal/domain"
)

const (
	defaultQueueSize = 256
	defaultTimeout   = 5 * time.Second
)

// Driver получатель уведомлений (webhook, брокер сообщений, внутренний подписчик)
type Driver interface {
	Name() string
	Send(ctx context.Context, n Notification) error
}

// ContactResolver загружает контактные данные пользователя
type ContactResolver interface {
	ResolveContact(ctx context.Context, userID string) (*domain.Contact, error)
}

// Metrics счётчик доставок
type Metrics interface {
	IncNotification(driver, kind, result string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Options параметры диспетчера
type Options struct {
	QueueSize int
	Timeout   time.Duration
	Location  *time.Location
}

// Dispatcher доставляет события жизненного цикла в фоне.
// Dispatch никогда не блокирует вызывающего: при переполненной очереди событие отбрасывается
type Dispatcher struct {
	drivers  []Driver
	resolver ContactResolver
	metrics  Metrics
	logger   Logger
	timeout  time.Duration
	location *time.Location

	queue  chan domain.Event
	mu     sync.RWMutex
	closed bool
	once   sync.Once
	done   chan struct{}
}

// NewDispatcher создает диспетчер. resolver может быть nil
func NewDispatcher(opts Options, resolver ContactResolver, metrics Metrics, logger Logger, drivers ...Driver) *Dispatcher {
	if opts.QueueSize <= 0 {
		opts.QueueSize = defaultQueueSize
	}
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}
	if opts.Location == nil {
		opts.Location = time.UTC
	}

	return &Dispatcher{
		drivers:  drivers,
		resolver: resolver,
		metrics:  metrics,
		logger:   logger,
		timeout:  opts.Timeout,
		location: opts.Location,
		queue:    make(chan domain.Event, opts.QueueSize),
		done:     make(chan struct{}),
	}
}

// Start запускает фоновый обработчик очереди
func (d *Dispatcher) Start() {
	d.once.Do(func() {
		go d.run()
	})
}

// Dispatch ставит событие в очередь
func (d *Dispatcher) Dispatch(_ context.Context, event domain.Event) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		d.logger.Warn("Dispatch: dispatcher closed, dropping %s event for reservation id=%s", event.Kind, event.Reservation.ID)
		d.countAll(event.Kind, "dropped")
		return
	}

	select {
	case d.queue <- event:
	default:
		d.logger.Error("Dispatch: queue is full, dropping %s event for reservation id=%s", event.Kind, event.Reservation.ID)
		d.countAll(event.Kind, "dropped")
	}
}

// Close прекращает приём событий и ждёт доставки уже поставленных в очередь, пока не истечёт ctx
func (d *Dispatcher) Close(ctx context.Context) error {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.queue)
	}
	d.mu.Unlock()

	// Если Start не вызывался, дочитываем очередь сами
	d.Start()

	select {
	case <-d.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (d *Dispatcher) run() {
	defer close(d.done)
	for event := range d.queue {
		d.deliver(event)
	}
}

func (d *Dispatcher) deliver(event domain.Event) {
	if event.Contact == nil && d.resolver != nil {
		ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
		contact, err := d.resolver.ResolveContact(ctx, event.Reservation.UserID)
		cancel()
		if err != nil {
			d.logger.Warn("deliver: contact lookup failed for user=%s: %v", event.Reservation.UserID, err)
		} else {
			event.Contact = contact
		}
	}

	n := Notification{Event: event, Payload: BuildPayload(event, d.location)}

	for _, driver := range d.drivers {
		d.send(driver, n)
	}
}

func (d *Dispatcher) send(driver Driver, n Notification) {
	ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
	defer cancel()

	defer func() {
		if p := recover(); p != nil {
			d.logger.Error("send: driver %s panicked on reservation id=%s: %v", driver.Name(), n.Event.Reservation.ID, p)
			d.count(driver.Name(), n.Event.Kind, "error")
		}
	}()

	err := driver.Send(ctx, n)
	switch {
	case err == nil:
		d.logger.Info("send: %s event for reservation id=%s delivered via %s", n.Event.Kind, n.Event.Reservation.ID, driver.Name())
		d.count(driver.Name(), n.Event.Kind, "ok")
	case errors.Is(err, ErrSkipped):
		d.logger.Info("send: %s skipped reservation id=%s: %v", driver.Name(), n.Event.Reservation.ID, err)
		d.count(driver.Name(), n.Event.Kind, "skipped")
	default:
		d.logger.Error("send: %s failed for reservation id=%s: %v", driver.Name(), n.Event.Reservation.ID, err)
		d.count(driver.Name(), n.Event.Kind, "error")
	}
}

func (d *Dispatcher) count(driver string, kind domain.EventKind, result string) {
	if d.metrics != nil {
		d.metrics.IncNotification(driver, string(kind), result)
	}
}

func (d *Dispatcher) countAll(kind domain.EventKind, result string) {
	for _, driver := range d.drivers {
		d.count(driver.Name(), kind, result)
	}
}
