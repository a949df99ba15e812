package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/jeffjr007/locahubaju-project/internal/domain"
)

var (
	ErrReadConfig    = errors.New("config: failed to read config file")
	ErrInvalidConfig = errors.New("config: invalid configuration")
)

// Драйверы хранилища
const (
	StorageDriverPostgres = "postgres"
	StorageDriverMemory   = "memory"
)

// Драйверы уведомлений
const (
	NotifierDriverWebhook  = "webhook"
	NotifierDriverRabbitMQ = "rabbitmq"
	NotifierDriverKafka    = "kafka"
	NotifierDriverNATS     = "nats"
)

const (
	defaultHTTPPort        = 8080
	defaultShutdownTimeout = 10
	defaultMaxAttempts     = 3
	defaultTimezone        = "America/Maceio"
	defaultQueueSize       = 256
	defaultNotifyTimeout   = 5
	defaultReportTTL       = 60
	defaultMetricsPath     = "/metrics"
	defaultServiceName     = "locahubaju-reservations"
)

type Config struct {
	Server         ServerConfig         `toml:"server"`
	Database       DatabaseConfig       `toml:"database"`
	Storage        StorageConfig        `toml:"storage"`
	Logs           LogsConfig           `toml:"logs"`
	Metrics        MetricsConfig        `toml:"metrics"`
	Auth           AuthConfig           `toml:"auth"`
	CORS           CORSConfig           `toml:"cors"`
	ProfileService ProfileServiceConfig `toml:"profile_service"`
	Lifecycle      LifecycleConfig      `toml:"lifecycle"`
	Redis          RedisConfig          `toml:"redis"`
	Notifier       NotifierConfig       `toml:"notifier"`
}

// ServerConfig таймауты в секундах
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"`
}

// DSN строка подключения для lib/pq
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// StorageConfig spaces засевают справочник пространств при driver = "memory"
type StorageConfig struct {
	Driver string      `toml:"driver"`
	Spaces []SpaceSeed `toml:"spaces"`
}

type SpaceSeed struct {
	ID          string   `toml:"id"`
	Name        string   `toml:"name"`
	Type        string   `toml:"type"`
	Capacity    int      `toml:"capacity"`
	HourlyRate  *float64 `toml:"hourly_rate"`
	Active      bool     `toml:"active"`
	Description *string  `toml:"description"`
}

// ToDomain конвертирует запись конфигурации в пространство
func (s SpaceSeed) ToDomain() *domain.Space {
	return &domain.Space{
		ID:          s.ID,
		Name:        s.Name,
		Type:        domain.SpaceType(s.Type),
		Capacity:    s.Capacity,
		HourlyRate:  s.HourlyRate,
		Active:      s.Active,
		Description: s.Description,
	}
}

type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// AuthConfig если jwt_secret пустой, принимается только заголовок X-User-ID.
// TrustRoleHeader включается только в разработке
type AuthConfig struct {
	JWTSecret           string `toml:"jwt_secret"`
	AllowHeaderFallback bool   `toml:"allow_header_fallback"`
	TrustRoleHeader     bool   `toml:"trust_role_header"`
}

type CORSConfig struct {
	AllowedOrigins []string `toml:"allowed_origins"`
}

type ProfileServiceConfig struct {
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"`
}

type LifecycleConfig struct {
	MaxAttempts int    `toml:"max_attempts"`
	Timezone    string `toml:"timezone"`
}

type RedisConfig struct {
	Enabled   bool   `toml:"enabled"`
	Addr      string `toml:"addr"`
	Password  string `toml:"password"`
	DB        int    `toml:"db"`
	ReportTTL int    `toml:"report_ttl"`
}

// ReportTTLDuration время жизни закэшированного отчёта
func (c RedisConfig) ReportTTLDuration() time.Duration {
	return time.Duration(c.ReportTTL) * time.Second
}

type NotifierConfig struct {
	Drivers   []string       `toml:"drivers"`
	QueueSize int            `toml:"queue_size"`
	Timeout   int            `toml:"timeout"`
	Webhook   WebhookConfig  `toml:"webhook"`
	RabbitMQ  RabbitMQConfig `toml:"rabbitmq"`
	Kafka     KafkaConfig    `toml:"kafka"`
	NATS      NATSConfig     `toml:"nats"`
}

// HasDriver проверяет, включён ли драйвер уведомлений
func (c NotifierConfig) HasDriver(name string) bool {
	for _, d := range c.Drivers {
		if strings.EqualFold(d, name) {
			return true
		}
	}
	return false
}

type WebhookConfig struct {
	CreatedURL   string `toml:"created_url"`
	EditedURL    string `toml:"edited_url"`
	CancelledURL string `toml:"cancelled_url"`
}

type RabbitMQConfig struct {
	URL   string `toml:"url"`
	Queue string `toml:"queue"`
}

type KafkaConfig struct {
	Brokers []string `toml:"brokers"`
	Topic   string   `toml:"topic"`
}

type NATSConfig struct {
	URL           string `toml:"url"`
	SubjectPrefix string `toml:"subject_prefix"`
}

// Load читает .env (если есть), затем TOML-файл, применяет переменные окружения и валидирует результат
func Load(path string) (*Config, error) {
	// .env необязателен
	_ = godotenv.Load()

	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrReadConfig, path, err)
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// applyEnv переопределяет секреты и адреса внешних систем из окружения
func (c *Config) applyEnv() {
	setString(&c.Database.Password, "DB_PASSWORD")
	setString(&c.Database.Host, "DB_HOST")
	setString(&c.Auth.JWTSecret, "JWT_SECRET")
	setString(&c.Redis.Addr, "REDIS_ADDR")
	setString(&c.Notifier.RabbitMQ.URL, "RABBITMQ_URL")
	setString(&c.Notifier.NATS.URL, "NATS_URL")
	setString(&c.Notifier.Webhook.CreatedURL, "WEBHOOK_CREATED_URL")
	setString(&c.Notifier.Webhook.EditedURL, "WEBHOOK_EDITED_URL")
	setString(&c.Notifier.Webhook.CancelledURL, "WEBHOOK_CANCELLED_URL")

	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		brokers := make([]string, 0)
		for _, b := range strings.Split(v, ",") {
			if b = strings.TrimSpace(b); b != "" {
				brokers = append(brokers, b)
			}
		}
		c.Notifier.Kafka.Brokers = brokers
	}
}

func setString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*dst = v
	}
}

// Validate заполняет значения по умолчанию и отклоняет невозможные настройки
func (c *Config) Validate() error {
	if c.Server.HTTPPort == 0 {
		c.Server.HTTPPort = defaultHTTPPort
	}
	if c.Server.HTTPPort < 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("%w: server.http_port out of range: %d", ErrInvalidConfig, c.Server.HTTPPort)
	}
	if c.Server.ShutdownTimeout <= 0 {
		c.Server.ShutdownTimeout = defaultShutdownTimeout
	}

	if c.Storage.Driver == "" {
		c.Storage.Driver = StorageDriverPostgres
	}
	switch c.Storage.Driver {
	case StorageDriverPostgres:
		if c.Database.Host == "" || c.Database.DBName == "" {
			return fmt.Errorf("%w: database.host and database.dbname are required for postgres storage", ErrInvalidConfig)
		}
		if c.Database.SSLMode == "" {
			c.Database.SSLMode = "disable"
		}
	case StorageDriverMemory:
		seen := make(map[string]struct{}, len(c.Storage.Spaces))
		for _, sp := range c.Storage.Spaces {
			if sp.ID == "" || sp.Name == "" {
				return fmt.Errorf("%w: storage.spaces entries need id and name", ErrInvalidConfig)
			}
			if _, ok := domain.ParseSpaceType(sp.Type); !ok {
				return fmt.Errorf("%w: space %q has unknown type %q", ErrInvalidConfig, sp.ID, sp.Type)
			}
			if _, dup := seen[sp.ID]; dup {
				return fmt.Errorf("%w: duplicate space id %q", ErrInvalidConfig, sp.ID)
			}
			if sp.HourlyRate != nil && *sp.HourlyRate < 0 {
				return fmt.Errorf("%w: space %q has a negative hourly_rate", ErrInvalidConfig, sp.ID)
			}
			seen[sp.ID] = struct{}{}
		}
	default:
		return fmt.Errorf("%w: unknown storage.driver %q", ErrInvalidConfig, c.Storage.Driver)
	}

	if c.Metrics.Path == "" {
		c.Metrics.Path = defaultMetricsPath
	}
	if c.Metrics.ServiceName == "" {
		c.Metrics.ServiceName = defaultServiceName
	}

	if c.Lifecycle.MaxAttempts == 0 {
		c.Lifecycle.MaxAttempts = defaultMaxAttempts
	}
	if c.Lifecycle.MaxAttempts < 1 {
		return fmt.Errorf("%w: lifecycle.max_attempts must be positive", ErrInvalidConfig)
	}
	if c.Lifecycle.Timezone == "" {
		c.Lifecycle.Timezone = defaultTimezone
	}
	if _, err := time.LoadLocation(c.Lifecycle.Timezone); err != nil {
		return fmt.Errorf("%w: lifecycle.timezone: %v", ErrInvalidConfig, err)
	}

	if c.Redis.Enabled {
		if c.Redis.Addr == "" {
			return fmt.Errorf("%w: redis.addr is required when redis is enabled", ErrInvalidConfig)
		}
		if c.Redis.ReportTTL <= 0 {
			c.Redis.ReportTTL = defaultReportTTL
		}
	}

	if c.Notifier.QueueSize <= 0 {
		c.Notifier.QueueSize = defaultQueueSize
	}
	if c.Notifier.Timeout <= 0 {
		c.Notifier.Timeout = defaultNotifyTimeout
	}
	for _, d := range c.Notifier.Drivers {
		switch strings.ToLower(d) {
		case NotifierDriverWebhook, NotifierDriverRabbitMQ, NotifierDriverKafka, NotifierDriverNATS:
		default:
			return fmt.Errorf("%w: unknown notifier driver %q", ErrInvalidConfig, d)
		}
	}
	if c.Notifier.HasDriver(NotifierDriverRabbitMQ) && c.Notifier.RabbitMQ.URL == "" {
		return fmt.Errorf("%w: notifier.rabbitmq.url is required", ErrInvalidConfig)
	}
	if c.Notifier.HasDriver(NotifierDriverKafka) && len(c.Notifier.Kafka.Brokers) == 0 {
		return fmt.Errorf("%w: notifier.kafka.brokers is required", ErrInvalidConfig)
	}
	if c.Notifier.HasDriver(NotifierDriverNATS) && c.Notifier.NATS.URL == "" {
		return fmt.Errorf("%w: notifier.nats.url is required", ErrInvalidConfig)
	}

	return nil
}
