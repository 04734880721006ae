package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/viper"
)

var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	Env       string          `mapstructure:"env"`
	Log       LogConfig       `mapstructure:"log"`
	HTTP      HTTPConfig      `mapstructure:"http"`
	MQTT      MQTTConfig      `mapstructure:"mqtt"`
	Kafka     KafkaConfig     `mapstructure:"kafka"`
	Postgres  PostgresConfig  `mapstructure:"postgres"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Ingest    IngestConfig    `mapstructure:"ingest"`
	Broadcast BroadcastConfig `mapstructure:"broadcast"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

type HTTPConfig struct {
	Addr string `mapstructure:"addr"`
}

type MQTTConfig struct {
	Enabled        bool          `mapstructure:"enabled"`
	Broker         string        `mapstructure:"broker"`
	ClientID       string        `mapstructure:"client_id"`
	Username       string        `mapstructure:"username"`
	Password       string        `mapstructure:"password"`
	QoS            int           `mapstructure:"qos"`
	ConnectTimeout time.Duration `mapstructure:"connect_timeout"`
	BackoffInitial time.Duration `mapstructure:"backoff_initial"`
	BackoffMax     time.Duration `mapstructure:"backoff_max"`
	OutboxSize     int           `mapstructure:"outbox_size"`
}

type KafkaConfig struct {
	Enabled        bool          `mapstructure:"enabled"`
	Brokers        []string      `mapstructure:"brokers"`
	JournalTopic   string        `mapstructure:"journal_topic"`
	BroadcastTopic string        `mapstructure:"broadcast_topic"`
	HydrateTimeout time.Duration `mapstructure:"hydrate_timeout"`
}

// PostgresConfig selects the Postgres store when ConnString is set;
// otherwise state lives in memory.
type PostgresConfig struct {
	ConnString     string        `mapstructure:"conn_string"`
	MigrationsPath string        `mapstructure:"migrations_path"`
	MaxConns       int32         `mapstructure:"max_conns"`
	ConnectTimeout time.Duration `mapstructure:"connect_timeout"`
}

type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type IngestConfig struct {
	DedupWindow           time.Duration `mapstructure:"dedup_window"`
	Shards                int           `mapstructure:"shards"`
	ShardBuffer           int           `mapstructure:"shard_buffer"`
	RetryBuffer           int           `mapstructure:"retry_buffer"`
	BackpressureThreshold int           `mapstructure:"backpressure_threshold"`
	RetryInitial          time.Duration `mapstructure:"retry_initial"`
	RetryMax              time.Duration `mapstructure:"retry_max"`
}

type BroadcastConfig struct {
	SubscriberBuffer int           `mapstructure:"subscriber_buffer"`
	Heartbeat        time.Duration `mapstructure:"heartbeat"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("env", "local")
	v.SetDefault("log.level", "info")
	v.SetDefault("http.addr", ":8080")

	v.SetDefault("mqtt.enabled", true)
	v.SetDefault("mqtt.broker", "tcp://localhost:1883")
	v.SetDefault("mqtt.client_id", "obedio-core")
	v.SetDefault("mqtt.qos", 1)
	v.SetDefault("mqtt.connect_timeout", 30*time.Second)
	v.SetDefault("mqtt.backoff_initial", 500*time.Millisecond)
	v.SetDefault("mqtt.backoff_max", 30*time.Second)
	v.SetDefault("mqtt.outbox_size", 1000)

	v.SetDefault("kafka.enabled", false)
	v.SetDefault("kafka.brokers", []string{"localhost:9092"})
	v.SetDefault("kafka.journal_topic", "obedio_button_presses_compacted")
	v.SetDefault("kafka.broadcast_topic", "obedio_entity_events")
	v.SetDefault("kafka.hydrate_timeout", 30*time.Second)

	v.SetDefault("postgres.migrations_path", "internal/db/migrations")
	v.SetDefault("postgres.max_conns", 10)
	v.SetDefault("postgres.connect_timeout", 30*time.Second)

	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.addr", "localhost:6379")

	v.SetDefault("ingest.dedup_window", 500*time.Millisecond)
	v.SetDefault("ingest.shards", 8)
	v.SetDefault("ingest.shard_buffer", 64)
	v.SetDefault("ingest.retry_buffer", 1024)
	v.SetDefault("ingest.backpressure_threshold", 256)
	v.SetDefault("ingest.retry_initial", 500*time.Millisecond)
	v.SetDefault("ingest.retry_max", 30*time.Second)

	v.SetDefault("broadcast.subscriber_buffer", 256)
	v.SetDefault("broadcast.heartbeat", 15*time.Second)
}

// Load reads defaults, then the YAML file at path if given, then OBEDIO_*
// environment variables (OBEDIO_MQTT_BROKER overrides mqtt.broker).
func Load(path string) (Config, error) {
	const fn = "config:Load"
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix("OBEDIO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("%s:%w:%w", fn, ErrInvalidConfig, err)
		}
		slog.Info("Using config file", "path", v.ConfigFileUsed())
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("%s:%w:%w", fn, ErrInvalidConfig, err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, fmt.Errorf("%s:%w", fn, err)
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch {
	case c.MQTT.Enabled && c.MQTT.Broker == "":
		return fmt.Errorf("%w: mqtt.broker is required", ErrInvalidConfig)
	case c.MQTT.QoS < 0 || c.MQTT.QoS > 2:
		return fmt.Errorf("%w: mqtt.qos must be 0, 1 or 2", ErrInvalidConfig)
	case c.Kafka.Enabled && len(c.Kafka.Brokers) == 0:
		return fmt.Errorf("%w: kafka.brokers is required", ErrInvalidConfig)
	case c.Redis.Enabled && c.Redis.Addr == "":
		return fmt.Errorf("%w: redis.addr is required", ErrInvalidConfig)
	case c.Ingest.Shards <= 0:
		return fmt.Errorf("%w: ingest.shards must be positive", ErrInvalidConfig)
	case c.Ingest.DedupWindow <= 0:
		return fmt.Errorf("%w: ingest.dedup_window must be positive", ErrInvalidConfig)
	}
	return nil
}

func (c Config) LogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return slog.LevelInfo
	}
	return level
}
