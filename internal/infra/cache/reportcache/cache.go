package reportcache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jeffjr007/locahubaju-project/internal/integrations/notifier"
)

const (
	versionKey = "reports:version"
	keyPrefix  = "reports"
	openBound  = "open"
)

var (
	// ErrCache ошибка обращения к Redis
	ErrCache = errors.New("reportcache: redis error")

	// ErrEncode ошибка сериализации отчёта
	ErrEncode = errors.New("reportcache: encode")
)

// Client часть *redis.Client, используемая кэшем
type Client interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Incr(ctx context.Context, key string) *redis.IntCmd
}

// Metrics счётчик обращений к кэшу
type Metrics interface {
	IncReportCache(result string)
}

// Cache кэш отчётов в Redis.
// Ключ содержит номер версии; любое событие жизненного цикла увеличивает версию,
// поэтому старые отчёты перестают читаться сразу и истекают по TTL
type Cache struct {
	client  Client
	ttl     time.Duration
	metrics Metrics
}

func New(client Client, ttl time.Duration, metrics Metrics) *Cache {
	return &Cache{client: client, ttl: ttl, metrics: metrics}
}

// NewClient создает клиент Redis и проверяет соединение
func NewClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("%w: ping %s: %v", ErrCache, addr, err)
	}
	return client, nil
}

// Get читает отчёт в dst. false без ошибки означает промах.
// Возвращает ключ с версией, прочитанной до расчёта отчёта: Set должен писать именно в него,
// иначе отчёт, посчитанный до события, попадёт под новую версию
func (c *Cache) Get(ctx context.Context, from, to time.Time, dst interface{}) (string, bool, error) {
	key, err := c.key(ctx, from, to)
	if err != nil {
		c.count("error")
		return "", false, err
	}

	raw, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		c.count("miss")
		return key, false, nil
	}
	if err != nil {
		c.count("error")
		return key, false, fmt.Errorf("%w: get %s: %v", ErrCache, key, err)
	}

	if err := json.Unmarshal(raw, dst); err != nil {
		c.count("error")
		return key, false, fmt.Errorf("%w: decode %s: %v", ErrEncode, key, err)
	}

	c.count("hit")
	return key, true, nil
}

// Set сохраняет отчёт с TTL под ключом, полученным от Get
func (c *Cache) Set(ctx context.Context, key string, value interface{}) error {
	if key == "" {
		return fmt.Errorf("%w: empty key", ErrCache)
	}

	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrEncode, err)
	}

	if err := c.client.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("%w: set %s: %v", ErrCache, key, err)
	}
	return nil
}

// Invalidate делает недоступными все закэшированные отчёты
func (c *Cache) Invalidate(ctx context.Context) error {
	if err := c.client.Incr(ctx, versionKey).Err(); err != nil {
		return fmt.Errorf("%w: incr %s: %v", ErrCache, versionKey, err)
	}
	return nil
}

// Name и Send позволяют подписать кэш на события диспетчера уведомлений
func (c *Cache) Name() string {
	return "report_cache"
}

func (c *Cache) Send(ctx context.Context, _ notifier.Notification) error {
	return c.Invalidate(ctx)
}

func (c *Cache) key(ctx context.Context, from, to time.Time) (string, error) {
	version, err := c.client.Get(ctx, versionKey).Int64()
	if err != nil && !errors.Is(err, redis.Nil) {
		return "", fmt.Errorf("%w: get %s: %v", ErrCache, versionKey, err)
	}
	return fmt.Sprintf("%s:v%d:%s:%s", keyPrefix, version, bound(from), bound(to)), nil
}

func (c *Cache) count(result string) {
	if c.metrics != nil {
		c.metrics.IncReportCache(result)
	}
}

func bound(t time.Time) string {
	if t.IsZero() {
		return openBound
	}
	return t.UTC().Format(time.RFC3339)
}
