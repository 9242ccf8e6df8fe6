// Package config loads service configuration from an optional YAML file and
// PRESERVATION_* environment variables.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds the full application configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server" mapstructure:"server"`
	Database DatabaseConfig `yaml:"database" mapstructure:"database"`
	Redis    RedisConfig    `yaml:"redis" mapstructure:"redis"`
	Kafka    KafkaConfig    `yaml:"kafka" mapstructure:"kafka"`
	Auth     AuthConfig     `yaml:"auth" mapstructure:"auth"`
	Outbox   OutboxConfig   `yaml:"outbox" mapstructure:"outbox"`
	Catalog  CatalogConfig  `yaml:"catalog" mapstructure:"catalog"`
	Log      LogConfig      `yaml:"log" mapstructure:"log"`
}

// ServerConfig captures HTTP server level configuration.
type ServerConfig struct {
	Addr              string        `yaml:"addr" mapstructure:"addr"`
	ReadHeaderTimeout time.Duration `yaml:"read_header_timeout" mapstructure:"read_header_timeout"`
	ShutdownTimeout   time.Duration `yaml:"shutdown_timeout" mapstructure:"shutdown_timeout"`
	AllowedOrigins    []string      `yaml:"allowed_origins" mapstructure:"allowed_origins"`
	AdminToken        string        `yaml:"admin_token" mapstructure:"admin_token"`
	// WritesPerMinute bounds mutating requests per person. Zero disables the limiter.
	WritesPerMinute int `yaml:"writes_per_minute" mapstructure:"writes_per_minute"`
	WriteBurst      int `yaml:"write_burst" mapstructure:"write_burst"`
}

// DatabaseConfig configures Postgres. An empty URL selects the in-memory stores.
type DatabaseConfig struct {
	URL            string `yaml:"url" mapstructure:"url"`
	MaxConns       int32  `yaml:"max_conns" mapstructure:"max_conns"`
	MigrateOnStart bool   `yaml:"migrate_on_start" mapstructure:"migrate_on_start"`
}

// RedisConfig configures the due index. An empty URL disables it.
type RedisConfig struct {
	URL          string        `yaml:"url" mapstructure:"url"`
	PoolSize     int           `yaml:"pool_size" mapstructure:"pool_size"`
	MinIdleConns int           `yaml:"min_idle_conns" mapstructure:"min_idle_conns"`
	DialTimeout  time.Duration `yaml:"dial_timeout" mapstructure:"dial_timeout"`
	ReadTimeout  time.Duration `yaml:"read_timeout" mapstructure:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout" mapstructure:"write_timeout"`
}

// KafkaConfig configures event publication. No brokers disables the relay.
type KafkaConfig struct {
	Brokers           []string `yaml:"brokers" mapstructure:"brokers"`
	Topic             string   `yaml:"topic" mapstructure:"topic"`
	Partitions        int32    `yaml:"partitions" mapstructure:"partitions"`
	ReplicationFactor int16    `yaml:"replication_factor" mapstructure:"replication_factor"`
}

// AuthConfig configures bearer token validation.
type AuthConfig struct {
	JWTSigningKey string `yaml:"jwt_signing_key" mapstructure:"jwt_signing_key"`
	Issuer        string `yaml:"issuer" mapstructure:"issuer"`
	Audience      string `yaml:"audience" mapstructure:"audience"`
}

// OutboxConfig configures the outbox relay.
type OutboxConfig struct {
	Interval  time.Duration `yaml:"interval" mapstructure:"interval"`
	BatchSize int           `yaml:"batch_size" mapstructure:"batch_size"`
}

// CatalogConfig configures requirement definitions and journeys.
type CatalogConfig struct {
	SeedFile  string        `yaml:"seed_file" mapstructure:"seed_file"`
	CacheTTL  time.Duration `yaml:"cache_ttl" mapstructure:"cache_ttl"`
	CacheSize int           `yaml:"cache_size" mapstructure:"cache_size"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

const devSigningKey = "dev-secret-key-change-in-production"

// Load reads configuration from file and environment. path may be empty, in
// which case config.yaml is looked up in the working directory.
func Load(path string) (*Config, error) {
	v := viper.New()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("PRESERVATION")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("config: read file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}
	cfg.Server.AllowedOrigins = normalizeList(cfg.Server.AllowedOrigins)
	cfg.Kafka.Brokers = normalizeList(cfg.Kafka.Brokers)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.read_header_timeout", 5*time.Second)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)
	v.SetDefault("server.allowed_origins", []string{})
	v.SetDefault("server.writes_per_minute", 120)
	v.SetDefault("server.write_burst", 20)
	v.SetDefault("database.max_conns", 10)
	v.SetDefault("database.migrate_on_start", true)
	v.SetDefault("redis.pool_size", 10)
	v.SetDefault("redis.min_idle_conns", 2)
	v.SetDefault("redis.dial_timeout", 5*time.Second)
	v.SetDefault("redis.read_timeout", 3*time.Second)
	v.SetDefault("redis.write_timeout", 3*time.Second)
	v.SetDefault("kafka.brokers", []string{})
	v.SetDefault("kafka.topic", "preservation.events")
	v.SetDefault("kafka.partitions", 3)
	v.SetDefault("kafka.replication_factor", 1)
	v.SetDefault("auth.jwt_signing_key", devSigningKey)
	v.SetDefault("auth.issuer", "preservation")
	v.SetDefault("auth.audience", "preservation-api")
	v.SetDefault("outbox.interval", time.Second)
	v.SetDefault("outbox.batch_size", 100)
	v.SetDefault("catalog.cache_ttl", 5*time.Minute)
	v.SetDefault("catalog.cache_size", 512)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
}

// Validate rejects settings the service can't start with.
func (c *Config) Validate() error {
	if c.Server.Addr == "" {
		return errors.New("config: server.addr is required")
	}
	if c.Auth.JWTSigningKey == "" {
		return errors.New("config: auth.jwt_signing_key is required")
	}
	if c.Outbox.BatchSize <= 0 {
		return errors.New("config: outbox.batch_size must be positive")
	}
	if len(c.Kafka.Brokers) > 0 && c.Kafka.Topic == "" {
		return errors.New("config: kafka.topic is required when brokers are set")
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config: unknown log level %q", c.Log.Level)
	}
	return nil
}

// UsesDevSigningKey reports whether the built-in development key is active.
func (c *Config) UsesDevSigningKey() bool {
	return c.Auth.JWTSigningKey == devSigningKey
}

// normalizeList trims entries and drops blanks and repeats, keeping order.
// Comma separated environment values arrive with the spaces intact.
func normalizeList(values []string) []string {
	out := make([]string, 0, len(values))
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
