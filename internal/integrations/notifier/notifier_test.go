package notifier

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeffjr007/locahubaju-project/internal/domain"
	"github.com/jeffjr007/locahubaju-project/pkg/logger"
	"github.com/jeffjr007/locahubaju-project/pkg/ptr"
)

func sampleEvent(kind domain.EventKind) domain.Event {
	return domain.Event{
		Kind: kind,
		Reservation: domain.Reservation{
			ID:      "res-1",
			SpaceID: "sala-1",
			UserID:  "alice",
			Start:   time.Date(2025, 8, 4, 12, 0, 0, 0, time.UTC),
			End:     time.Date(2025, 8, 4, 13, 30, 0, 0, time.UTC),
			Status:  domain.StatusConfirmed,
		},
		Space: &domain.Space{
			ID: "sala-1", Name: "Sala Reunião", Type: domain.SpaceTypeRoom, Capacity: 8,
			HourlyRate: ptr.Ptr(50.0), Active: true,
		},
		Contact:       &domain.Contact{Name: "Alice", Phone: "+5582999990000", Email: "alice@example.com"},
		Notes:         "projetor",
		EstimatedCost: ptr.Ptr(75.0),
	}
}

func maceio(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("America/Maceio")
	require.NoError(t, err)
	return loc
}

func TestBuildPayload(t *testing.T) {
	p := BuildPayload(sampleEvent(domain.EventCreated), maceio(t))

	assert.Equal(t, "res-1", p.ReservationID)
	assert.Equal(t, "criada", p.Action)
	assert.Equal(t, "Alice", p.Name)
	assert.Equal(t, "+5582999990000", p.Phone)
	assert.Equal(t, "Sala Reunião", p.SpaceName)
	assert.Equal(t, "sala", p.SpaceType)
	assert.Equal(t, 8, p.Capacity)
	assert.Equal(t, "", p.SpaceDescription)
	assert.Equal(t, "04/08/2025", p.Date)
	assert.Equal(t, "09:00", p.StartTime)
	assert.Equal(t, "10:30", p.EndTime)
	assert.Equal(t, "04/08/2025 das 09:00 às 10:30", p.FullTime)
	assert.Equal(t, "projetor", p.Notes)
	assert.Equal(t, "R$ 75,00", p.EstimatedValue)

	raw, err := json.Marshal(p)
	require.NoError(t, err)
	var keys map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &keys))
	for _, k := range []string{"reservationId", "acao", "nome", "telefone", "email", "espaco", "tipoEspaco",
		"capacidade", "descricaoEspaco", "data", "horarioInicio", "horarioFim", "horarioCompleto", "observacoes", "valorEstimado"} {
		assert.Contains(t, keys, k)
	}
}

func TestBuildPayload_MissingLookups(t *testing.T) {
	ev := sampleEvent(domain.EventCancelled)
	ev.Space = nil
	ev.Contact = nil
	ev.EstimatedCost = nil

	p := BuildPayload(ev, nil)

	assert.Equal(t, "cancelada", p.Action)
	assert.Empty(t, p.Name)
	assert.Empty(t, p.SpaceName)
	assert.Empty(t, p.EstimatedValue)
	assert.Equal(t, "12:00", p.StartTime, "nil location falls back to UTC")
}

func TestActionFor(t *testing.T) {
	assert.Equal(t, "criada", ActionFor(domain.EventCreated))
	assert.Equal(t, "editada", ActionFor(domain.EventEdited))
	assert.Equal(t, "cancelada", ActionFor(domain.EventCancelled))
}

type fakeDriver struct {
	name  string
	err   error
	delay time.Duration

	mu   sync.Mutex
	sent []Notification
}

func (f *fakeDriver) Name() string { return f.name }

func (f *fakeDriver) Send(_ context.Context, n Notification) error {
	if f.delay > 0 {
		time.Sleep(f.delay)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, n)
	return f.err
}

func (f *fakeDriver) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.sent)
}

type fakeResolver struct {
	contact *domain.Contact
	err     error
}

func (f fakeResolver) ResolveContact(context.Context, string) (*domain.Contact, error) {
	return f.contact, f.err
}

type countingMetrics struct {
	mu     sync.Mutex
	counts map[string]int
}

func (m *countingMetrics) IncNotification(driver, kind, result string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.counts == nil {
		m.counts = map[string]int{}
	}
	m.counts[driver+"/"+kind+"/"+result]++
}

func TestDispatcher_DeliversToAllDriversAndDrainsOnClose(t *testing.T) {
	ok := &fakeDriver{name: "ok"}
	failing := &fakeDriver{name: "failing", err: errors.New("boom")}
	skipping := &fakeDriver{name: "skipping", err: ErrSkipped}
	m := &countingMetrics{}

	d := NewDispatcher(Options{QueueSize: 8}, nil, m, logger.Discard(), ok, failing, skipping)
	d.Start()

	for i := 0; i < 3; i++ {
		d.Dispatch(context.Background(), sampleEvent(domain.EventCreated))
	}

	require.NoError(t, d.Close(context.Background()))

	assert.Equal(t, 3, ok.count())
	assert.Equal(t, 3, failing.count(), "one failing driver does not stop the others")
	assert.Equal(t, 3, m.counts["ok/created/ok"])
	assert.Equal(t, 3, m.counts["failing/created/error"])
	assert.Equal(t, 3, m.counts["skipping/created/skipped"])
}

func TestDispatcher_ResolvesContactInWorker(t *testing.T) {
	drv := &fakeDriver{name: "ok"}
	resolver := fakeResolver{contact: &domain.Contact{Name: "Bob", Phone: "123"}}

	d := NewDispatcher(Options{}, resolver, nil, logger.Discard(), drv)
	d.Start()

	ev := sampleEvent(domain.EventEdited)
	ev.Contact = nil
	d.Dispatch(context.Background(), ev)
	require.NoError(t, d.Close(context.Background()))

	require.Equal(t, 1, drv.count())
	assert.Equal(t, "Bob", drv.sent[0].Payload.Name)
	assert.Equal(t, "editada", drv.sent[0].Payload.Action)
}

func TestDispatcher_ResolverFailureStillDelivers(t *testing.T) {
	drv := &fakeDriver{name: "ok"}

	d := NewDispatcher(Options{}, fakeResolver{err: errors.New("profile down")}, nil, logger.Discard(), drv)
	d.Start()

	ev := sampleEvent(domain.EventCreated)
	ev.Contact = nil
	d.Dispatch(context.Background(), ev)
	require.NoError(t, d.Close(context.Background()))

	require.Equal(t, 1, drv.count())
	assert.Empty(t, drv.sent[0].Payload.Name)
}

func TestDispatcher_DropsWhenQueueFull(t *testing.T) {
	drv := &fakeDriver{name: "slow"}
	m := &countingMetrics{}

	// не запущен: очередь из одного элемента заполняется первым событием
	d := NewDispatcher(Options{QueueSize: 1}, nil, m, logger.Discard(), drv)

	d.Dispatch(context.Background(), sampleEvent(domain.EventCreated))
	d.Dispatch(context.Background(), sampleEvent(domain.EventCreated))

	require.NoError(t, d.Close(context.Background()))
	assert.Equal(t, 1, drv.count())
	assert.Equal(t, 1, m.counts["slow/created/dropped"])
}

func TestDispatcher_DispatchAfterCloseIsNoop(t *testing.T) {
	drv := &fakeDriver{name: "ok"}
	d := NewDispatcher(Options{}, nil, nil, logger.Discard(), drv)
	d.Start()
	require.NoError(t, d.Close(context.Background()))

	assert.NotPanics(t, func() {
		d.Dispatch(context.Background(), sampleEvent(domain.EventCancelled))
	})
	assert.NoError(t, d.Close(context.Background()), "close is idempotent")
	assert.Equal(t, 0, drv.count())
}

func TestDispatcher_CloseHonoursContext(t *testing.T) {
	drv := &fakeDriver{name: "slow", delay: 200 * time.Millisecond}
	d := NewDispatcher(Options{}, nil, nil, logger.Discard(), drv)
	d.Start()
	d.Dispatch(context.Background(), sampleEvent(domain.EventCreated))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, d.Close(ctx), context.DeadlineExceeded)
}

func TestWebhookDriver(t *testing.T) {
	var (
		mu       sync.Mutex
		received []Payload
		paths    []string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		var p Payload
		_ = json.Unmarshal(body, &p)

		mu.Lock()
		received = append(received, p)
		paths = append(paths, r.URL.Path)
		mu.Unlock()

		if r.URL.Path == "/fail" {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	drv := NewWebhookDriver(WebhookURLs{Created: srv.URL + "/created", Cancelled: srv.URL + "/fail"}, time.Second)
	ctx := context.Background()

	t.Run("delivers to kind url", func(t *testing.T) {
		ev := sampleEvent(domain.EventCreated)
		err := drv.Send(ctx, Notification{Event: ev, Payload: BuildPayload(ev, time.UTC)})
		require.NoError(t, err)

		mu.Lock()
		defer mu.Unlock()
		require.Len(t, received, 1)
		assert.Equal(t, "/created", paths[0])
		assert.Equal(t, "criada", received[0].Action)
	})

	t.Run("kind without url is skipped", func(t *testing.T) {
		ev := sampleEvent(domain.EventEdited)
		err := drv.Send(ctx, Notification{Event: ev, Payload: BuildPayload(ev, time.UTC)})
		assert.ErrorIs(t, err, ErrSkipped)
	})

	t.Run("missing phone is skipped", func(t *testing.T) {
		ev := sampleEvent(domain.EventCreated)
		ev.Contact.Phone = ""
		err := drv.Send(ctx, Notification{Event: ev, Payload: BuildPayload(ev, time.UTC)})
		assert.ErrorIs(t, err, ErrSkipped)
	})

	t.Run("non 2xx is an error", func(t *testing.T) {
		ev := sampleEvent(domain.EventCancelled)
		err := drv.Send(ctx, Notification{Event: ev, Payload: BuildPayload(ev, time.UTC)})
		assert.ErrorIs(t, err, ErrDelivery)
	})

	assert.Equal(t, "webhook", drv.Name())
}

type fakeWriter struct {
	msgs []kafka.Message
	err  error
}

func (f *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	f.msgs = append(f.msgs, msgs...)
	return f.err
}

func (f *fakeWriter) Close() error { return nil }

func TestKafkaDriver(t *testing.T) {
	w := &fakeWriter{}
	drv := NewKafkaDriverWithWriter(w)

	ev := sampleEvent(domain.EventEdited)
	require.NoError(t, drv.Send(context.Background(), Notification{Event: ev, Payload: BuildPayload(ev, time.UTC)}))

	require.Len(t, w.msgs, 1)
	assert.Equal(t, "res-1", string(w.msgs[0].Key))
	assert.Equal(t, "edited", string(w.msgs[0].Headers[0].Value))

	var p Payload
	require.NoError(t, json.Unmarshal(w.msgs[0].Value, &p))
	assert.Equal(t, "editada", p.Action)

	w.err = errors.New("broker down")
	assert.ErrorIs(t, drv.Send(context.Background(), Notification{Event: ev}), ErrDelivery)
}

type fakePublisher struct {
	subjects []string
	err      error
}

func (f *fakePublisher) Publish(subject string, _ []byte) error {
	f.subjects = append(f.subjects, subject)
	return f.err
}

func TestNATSDriver(t *testing.T) {
	pub := &fakePublisher{}
	drv := NewNATSDriverWithPublisher(pub, "")

	ev := sampleEvent(domain.EventCancelled)
	require.NoError(t, drv.Send(context.Background(), Notification{Event: ev, Payload: BuildPayload(ev, time.UTC)}))
	assert.Equal(t, []string{"reservations.cancelled"}, pub.subjects)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, drv.Send(ctx, Notification{Event: ev}), ErrDelivery)
	assert.NoError(t, drv.Close())
}

func TestExternalDrivers_SilentEventIsSkipped(t *testing.T) {
	var hits int
	var mu sync.Mutex
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		mu.Lock()
		hits++
		mu.Unlock()
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	w := &fakeWriter{}
	pub := &fakePublisher{}
	drivers := []Driver{
		NewWebhookDriver(WebhookURLs{Created: srv.URL}, time.Second),
		NewKafkaDriverWithWriter(w),
		NewNATSDriverWithPublisher(pub, ""),
	}

	ev := sampleEvent(domain.EventCreated)
	ev.Silent = true
	for _, drv := range drivers {
		err := drv.Send(context.Background(), Notification{Event: ev, Payload: BuildPayload(ev, time.UTC)})
		assert.ErrorIs(t, err, ErrSkipped, drv.Name())
	}

	mu.Lock()
	defer mu.Unlock()
	assert.Zero(t, hits)
	assert.Empty(t, w.msgs)
	assert.Empty(t, pub.subjects)
}
