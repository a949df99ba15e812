package reportcache

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeffjr007/locahubaju-project/internal/integrations/notifier"
)

// fakeClient хранит значения в памяти и возвращает готовые команды go-redis
type fakeClient struct {
	mu   sync.Mutex
	data map[string]string
	ttl  map[string]time.Duration
	err  error
}

func newFakeClient() *fakeClient {
	return &fakeClient{data: map[string]string{}, ttl: map[string]time.Duration{}}
}

func (f *fakeClient) Get(_ context.Context, key string) *redis.StringCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return redis.NewStringResult("", f.err)
	}
	v, ok := f.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (f *fakeClient) Set(_ context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return redis.NewStatusResult("", f.err)
	}
	switch v := value.(type) {
	case []byte:
		f.data[key] = string(v)
	case string:
		f.data[key] = v
	}
	f.ttl[key] = expiration
	return redis.NewStatusResult("OK", nil)
}

func (f *fakeClient) Incr(_ context.Context, key string) *redis.IntCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return redis.NewIntResult(0, f.err)
	}
	n, _ := strconv.ParseInt(f.data[key], 10, 64)
	n++
	f.data[key] = strconv.FormatInt(n, 10)
	return redis.NewIntResult(n, nil)
}

type counter struct{ results []string }

func (c *counter) IncReportCache(result string) { c.results = append(c.results, result) }

type report struct {
	Total int `json:"total"`
}

func TestCache_MissSetHit(t *testing.T) {
	client := newFakeClient()
	m := &counter{}
	cache := New(client, time.Minute, m)
	ctx := context.Background()
	from := time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)

	var got report
	key, hit, err := cache.Get(ctx, from, time.Time{}, &got)
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Equal(t, "reports:v0:2025-09-01T00:00:00Z:open", key)

	require.NoError(t, cache.Set(ctx, key, report{Total: 7}))
	assert.Equal(t, time.Minute, client.ttl[key])

	_, hit, err = cache.Get(ctx, from, time.Time{}, &got)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, 7, got.Total)

	assert.Equal(t, []string{"miss", "hit"}, m.results)
}

func TestCache_InvalidateOnLifecycleEvent(t *testing.T) {
	client := newFakeClient()
	cache := New(client, time.Minute, nil)
	ctx := context.Background()

	var got report
	key, _, err := cache.Get(ctx, time.Time{}, time.Time{}, &got)
	require.NoError(t, err)
	require.NoError(t, cache.Set(ctx, key, report{Total: 1}))

	var _ notifier.Driver = cache
	require.NoError(t, cache.Send(ctx, notifier.Notification{}))

	_, hit, err := cache.Get(ctx, time.Time{}, time.Time{}, &got)
	require.NoError(t, err)
	assert.False(t, hit, "version bump hides old reports")
	assert.Equal(t, "1", client.data[versionKey])
}

// Отчёт, посчитанный до события, не должен читаться после него
func TestCache_InvalidateDuringComputation(t *testing.T) {
	client := newFakeClient()
	cache := New(client, time.Minute, nil)
	ctx := context.Background()

	var got report
	key, hit, err := cache.Get(ctx, time.Time{}, time.Time{}, &got)
	require.NoError(t, err)
	require.False(t, hit)

	// событие жизненного цикла приходит, пока отчёт считается
	require.NoError(t, cache.Invalidate(ctx))
	require.NoError(t, cache.Set(ctx, key, report{Total: 3}))

	got = report{}
	_, hit, err = cache.Get(ctx, time.Time{}, time.Time{}, &got)
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Zero(t, got.Total)
}

func TestCache_RedisErrors(t *testing.T) {
	client := newFakeClient()
	client.err = errors.New("connection refused")
	m := &counter{}
	cache := New(client, time.Minute, m)
	ctx := context.Background()

	var got report
	key, _, err := cache.Get(ctx, time.Time{}, time.Time{}, &got)
	assert.ErrorIs(t, err, ErrCache)
	assert.Empty(t, key)
	assert.ErrorIs(t, cache.Set(ctx, key, report{}), ErrCache)
	assert.ErrorIs(t, cache.Set(ctx, "reports:v0:open:open", report{}), ErrCache)
	assert.ErrorIs(t, cache.Invalidate(ctx), ErrCache)
	assert.Equal(t, []string{"error"}, m.results)
}

func TestCache_CorruptedEntry(t *testing.T) {
	client := newFakeClient()
	client.data["reports:v0:open:open"] = "{broken"
	cache := New(client, time.Minute, nil)

	var got report
	_, hit, err := cache.Get(context.Background(), time.Time{}, time.Time{}, &got)
	assert.False(t, hit)
	assert.ErrorIs(t, err, ErrEncode)
}
