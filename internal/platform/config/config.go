package config

import (
	"fmt"
	"net"
	"net/url"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	pstrings "validarfc/pkg/platform/strings"
)

// History store backends.
const (
	BackendPostgres = "postgres"
	BackendSQLite   = "sqlite"
	BackendRedis    = "redis"
	BackendMemory   = "memory"
)

// Config is the full service configuration.
type Config struct {
	Server   Server         `yaml:"server"`
	Log      LogConfig      `yaml:"log"`
	History  HistoryConfig  `yaml:"history"`
	Database DatabaseConfig `yaml:"database"`
	SQLite   SQLiteConfig   `yaml:"sqlite"`
	Redis    RedisConfig    `yaml:"redis"`
	Kafka    KafkaConfig    `yaml:"kafka"`
}

// Server captures HTTP server level configuration.
type Server struct {
	Addr              string        `yaml:"addr"`
	ReadHeaderTimeout time.Duration `yaml:"read_header_timeout"`
	ReadTimeout       time.Duration `yaml:"read_timeout"`
	WriteTimeout      time.Duration `yaml:"write_timeout"`
	IdleTimeout       time.Duration `yaml:"idle_timeout"`
	ShutdownTimeout   time.Duration `yaml:"shutdown_timeout"`
}

// LogConfig selects slog output.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json, text
}

// HistoryConfig picks the store backend.
type HistoryConfig struct {
	Backend string `yaml:"backend"`
}

// DatabaseConfig locates the Postgres database. URL, when set, wins over the
// individual fields.
type DatabaseConfig struct {
	URL          string `yaml:"url"`
	Host         string `yaml:"host"`
	Port         string `yaml:"port"`
	User         string `yaml:"user"`
	Password     string `yaml:"password"`
	Name         string `yaml:"name"`
	SSLMode      string `yaml:"sslmode"`
	MaxOpenConns int    `yaml:"max_open_conns"`
}

// SQLiteConfig locates the local database file.
type SQLiteConfig struct {
	Path string `yaml:"path"`
}

// RedisConfig configures the Redis history backend.
type RedisConfig struct {
	URL          string        `yaml:"url"`
	Key          string        `yaml:"key"`
	PoolSize     int           `yaml:"pool_size"`
	DialTimeout  time.Duration `yaml:"dial_timeout"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
}

// KafkaConfig enables event publication when Brokers is non-empty.
type KafkaConfig struct {
	Brokers []string `yaml:"brokers"`
	Topic   string   `yaml:"topic"`
}

// Default returns the local development configuration.
func Default() Config {
	return Config{
		Server: Server{
			Addr:              ":8000",
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       10 * time.Second,
			WriteTimeout:      15 * time.Second,
			IdleTimeout:       60 * time.Second,
			ShutdownTimeout:   10 * time.Second,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
		History: HistoryConfig{
			Backend: BackendPostgres,
		},
		Database: DatabaseConfig{
			Host:         "localhost",
			Port:         "5432",
			User:         "postgres",
			Password:     "postgres",
			Name:         "validarfc",
			SSLMode:      "disable",
			MaxOpenConns: 10,
		},
		SQLite: SQLiteConfig{
			Path: "validarfc.db",
		},
		Redis: RedisConfig{
			URL:          "redis://localhost:6379/0",
			PoolSize:     10,
			DialTimeout:  2 * time.Second,
			ReadTimeout:  time.Second,
			WriteTimeout: time.Second,
		},
	}
}

// FromEnv builds a Config from defaults overridden by environment variables.
func FromEnv() Config {
	cfg := Default()
	applyEnv(&cfg, os.Getenv)
	return cfg
}

// Load reads a YAML file over the defaults, then applies environment
// overrides. An empty path is the same as FromEnv.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	applyEnv(&cfg, os.Getenv)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config, getenv func(string) string) {
	set := func(dst *string, key string) {
		if v := getenv(key); v != "" {
			*dst = v
		}
	}

	set(&cfg.Server.Addr, "VALIDARFC_ADDR")
	set(&cfg.Log.Level, "LOG_LEVEL")
	set(&cfg.Log.Format, "LOG_FORMAT")
	set(&cfg.History.Backend, "HISTORY_BACKEND")

	set(&cfg.Database.URL, "DATABASE_URL")
	set(&cfg.Database.Host, "DB_HOST")
	set(&cfg.Database.Port, "DB_PORT")
	set(&cfg.Database.User, "DB_USER")
	set(&cfg.Database.Password, "DB_PASSWORD")
	set(&cfg.Database.Name, "DB_NAME")
	set(&cfg.Database.SSLMode, "DB_SSLMODE")

	set(&cfg.SQLite.Path, "SQLITE_PATH")
	set(&cfg.Redis.URL, "REDIS_URL")
	set(&cfg.Redis.Key, "REDIS_KEY")

	if v := getenv("KAFKA_BROKERS"); v != "" {
		cfg.Kafka.Brokers = pstrings.SplitList(v)
	}
	set(&cfg.Kafka.Topic, "KAFKA_TOPIC")
}

// Validate rejects configurations the service cannot start with.
func (c Config) Validate() error {
	switch c.History.Backend {
	case BackendPostgres, BackendSQLite, BackendRedis, BackendMemory:
	default:
		return fmt.Errorf("unknown history backend %q", c.History.Backend)
	}
	if c.Server.ReadHeaderTimeout <= 0 {
		return fmt.Errorf("server read_header_timeout must be positive, got %s", c.Server.ReadHeaderTimeout)
	}
	if c.Server.ShutdownTimeout <= 0 {
		return fmt.Errorf("server shutdown_timeout must be positive, got %s", c.Server.ShutdownTimeout)
	}
	switch c.Log.Format {
	case "json", "text":
	default:
		return fmt.Errorf("unknown log format %q", c.Log.Format)
	}
	return nil
}

// DSN returns the Postgres connection string.
func (d DatabaseConfig) DSN() string {
	if d.URL != "" {
		return d.URL
	}
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(d.User, d.Password),
		Host:   net.JoinHostPort(d.Host, d.Port),
		Path:   "/" + d.Name,
	}
	if d.SSLMode != "" {
		u.RawQuery = url.Values{"sslmode": {d.SSLMode}}.Encode()
	}
	return u.String()
}
