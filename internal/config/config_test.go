package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleConfig = `
[server]
http_port = 8081

[database]
host = "localhost"
port = 5432
user = "postgres"
password = "from-file"
dbname = "locahubaju"

[storage]
driver = "postgres"

[logs]
level = "debug"

[notifier]
drivers = ["webhook", "kafka"]

[notifier.kafka]
brokers = ["localhost:9092"]
topic = "reservations"
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_DefaultsAndEnvOverrides(t *testing.T) {
	t.Setenv("DB_PASSWORD", "from-env")
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092")

	cfg, err := Load(writeConfig(t, sampleConfig))
	require.NoError(t, err)

	assert.Equal(t, 8081, cfg.Server.HTTPPort)
	assert.Equal(t, "from-env", cfg.Database.Password)
	assert.Equal(t, "disable", cfg.Database.SSLMode)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Notifier.Kafka.Brokers)
	assert.Equal(t, defaultMaxAttempts, cfg.Lifecycle.MaxAttempts)
	assert.Equal(t, defaultTimezone, cfg.Lifecycle.Timezone)
	assert.Equal(t, defaultQueueSize, cfg.Notifier.QueueSize)
	assert.True(t, cfg.Notifier.HasDriver("KAFKA"))
	assert.Contains(t, cfg.Database.DSN(), "password=from-env")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{
			name: "memory storage needs no database",
			cfg:  Config{Storage: StorageConfig{Driver: StorageDriverMemory}},
		},
		{
			name:    "postgres without host",
			cfg:     Config{Storage: StorageConfig{Driver: StorageDriverPostgres}},
			wantErr: true,
		},
		{
			name:    "unknown storage driver",
			cfg:     Config{Storage: StorageConfig{Driver: "mongo"}},
			wantErr: true,
		},
		{
			name: "unknown notifier driver",
			cfg: Config{
				Storage:  StorageConfig{Driver: StorageDriverMemory},
				Notifier: NotifierConfig{Drivers: []string{"smtp"}},
			},
			wantErr: true,
		},
		{
			name: "rabbitmq without url",
			cfg: Config{
				Storage:  StorageConfig{Driver: StorageDriverMemory},
				Notifier: NotifierConfig{Drivers: []string{"rabbitmq"}},
			},
			wantErr: true,
		},
		{
			name: "redis enabled without addr",
			cfg: Config{
				Storage: StorageConfig{Driver: StorageDriverMemory},
				Redis:   RedisConfig{Enabled: true},
			},
			wantErr: true,
		},
		{
			name: "duplicate space seed",
			cfg: Config{Storage: StorageConfig{
				Driver: StorageDriverMemory,
				Spaces: []SpaceSeed{{ID: "a", Name: "A", Type: "sala"}, {ID: "a", Name: "B", Type: "sala"}},
			}},
			wantErr: true,
		},
		{
			name: "space seed without name",
			cfg: Config{Storage: StorageConfig{
				Driver: StorageDriverMemory,
				Spaces: []SpaceSeed{{ID: "a", Type: "sala"}},
			}},
			wantErr: true,
		},
		{
			name: "space seed with unknown type",
			cfg: Config{Storage: StorageConfig{
				Driver: StorageDriverMemory,
				Spaces: []SpaceSeed{{ID: "a", Name: "A", Type: "garagem"}},
			}},
			wantErr: true,
		},
		{
			name: "space seed without type",
			cfg: Config{Storage: StorageConfig{
				Driver: StorageDriverMemory,
				Spaces: []SpaceSeed{{ID: "a", Name: "A"}},
			}},
			wantErr: true,
		},
		{
			name: "valid space seeds",
			cfg: Config{Storage: StorageConfig{
				Driver: StorageDriverMemory,
				Spaces: []SpaceSeed{
					{ID: "a", Name: "A", Type: "sala"},
					{ID: "b", Name: "B", Type: "coworking"},
					{ID: "c", Name: "C", Type: "auditorio"},
					{ID: "d", Name: "D", Type: "laboratorio"},
				},
			}},
		},
		{
			name: "bad timezone",
			cfg: Config{
				Storage:   StorageConfig{Driver: StorageDriverMemory},
				Lifecycle: LifecycleConfig{Timezone: "Mars/Olympus"},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidConfig)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	assert.ErrorIs(t, err, ErrReadConfig)
}

func TestLoad_SpaceSeeds(t *testing.T) {
	path := writeConfig(t, `
[storage]
driver = "memory"

[[storage.spaces]]
id = "sala-1"
name = "Sala 1"
type = "sala"
capacity = 8
hourly_rate = 50.0
active = true

[[storage.spaces]]
id = "cowork"
name = "Coworking"
type = "coworking"
active = true
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Len(t, cfg.Storage.Spaces, 2)

	room := cfg.Storage.Spaces[0].ToDomain()
	assert.Equal(t, "sala-1", room.ID)
	assert.Equal(t, "sala", string(room.Type))
	require.NotNil(t, room.HourlyRate)
	assert.Equal(t, 50.0, *room.HourlyRate)
	assert.True(t, room.HasRate())

	assert.Nil(t, cfg.Storage.Spaces[1].ToDomain().HourlyRate)
}
