package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Cache backends
const (
	CacheBackendMemory = "memory"
	CacheBackendRedis  = "redis"
)

var ErrInvalidConfig = errors.New("config: invalid configuration")

type Config struct {
	Server     ServerConfig     `toml:"server"`
	Database   DatabaseConfig   `toml:"database"`
	Logs       LogsConfig       `toml:"logs"`
	Metrics    MetricsConfig    `toml:"metrics"`
	Slots      SlotsConfig      `toml:"slots"`
	Cache      CacheConfig      `toml:"cache"`
	Migrations MigrationsConfig `toml:"migrations"`
}

type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`     // секунды
	WriteTimeout    int `toml:"write_timeout"`    // секунды
	IdleTimeout     int `toml:"idle_timeout"`     // секунды
	ShutdownTimeout int `toml:"shutdown_timeout"` // секунды
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
	ConnMaxLifetime int    `toml:"conn_max_lifetime"` // секунды
}

// DSN строка подключения для lib/pq
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

type LogsConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"` // пусто - stdout
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

type SlotsConfig struct {
	// DefaultGranularityMinutes глобальный шаг сетки, если у барбершопа нет своего
	DefaultGranularityMinutes int `toml:"default_granularity_minutes"`
	// DefaultTimezone часовой пояс барбершопов без настройки
	DefaultTimezone string `toml:"default_timezone"`
}

type CacheConfig struct {
	Backend    string      `toml:"backend"` // memory | redis
	TTLSeconds int         `toml:"ttl_seconds"`
	Redis      RedisConfig `toml:"redis"`
}

// TTL время жизни значения гранулярности в кэше
func (c CacheConfig) TTL() time.Duration {
	return time.Duration(c.TTLSeconds) * time.Second
}

type RedisConfig struct {
	Addr      string `toml:"addr"`
	Password  string `toml:"password"`
	DB        int    `toml:"db"`
	KeyPrefix string `toml:"key_prefix"`
}

type MigrationsConfig struct {
	Enabled bool `toml:"enabled"`
}

// Load читает config.toml, затем .env (если есть) и переменные окружения поверх файла
func Load(path string) (*Config, error) {
	cfg := defaults()

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}

	// .env необязателен
	_ = godotenv.Load()

	applyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func defaults() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     10,
			WriteTimeout:    10,
			IdleTimeout:     60,
			ShutdownTimeout: 10,
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Logs:    LogsConfig{Level: "info"},
		Metrics: MetricsConfig{Path: "/metrics", ServiceName: "barber-slots"},
		Slots: SlotsConfig{
			DefaultGranularityMinutes: 15,
			DefaultTimezone:           "America/Sao_Paulo",
		},
		Cache: CacheConfig{
			Backend:    CacheBackendMemory,
			TTLSeconds: 300,
			Redis:      RedisConfig{KeyPrefix: "barber-slots:granularity"},
		},
		Migrations: MigrationsConfig{Enabled: true},
	}
}

// applyEnv переопределяет значения из окружения.
// Нечисловой SLOT_GRANULARITY_MINUTES превращается в 0 и отбрасывается сервисом гранулярности.
func applyEnv(cfg *Config) {
	if v, ok := lookup("DB_HOST"); ok {
		cfg.Database.Host = v
	}
	if v, ok := lookup("DB_USER"); ok {
		cfg.Database.User = v
	}
	if v, ok := lookup("DB_PASSWORD"); ok {
		cfg.Database.Password = v
	}
	if v, ok := lookup("DB_NAME"); ok {
		cfg.Database.DBName = v
	}
	if v, ok := lookup("SLOT_GRANULARITY_MINUTES"); ok {
		minutes, err := strconv.Atoi(v)
		if err != nil {
			minutes = 0
		}
		cfg.Slots.DefaultGranularityMinutes = minutes
	}
	if v, ok := lookup("APP_DEFAULT_TIMEZONE"); ok {
		cfg.Slots.DefaultTimezone = v
	}
	if v, ok := lookup("REDIS_ADDR"); ok {
		cfg.Cache.Redis.Addr = v
		cfg.Cache.Backend = CacheBackendRedis
	}
	if v, ok := lookup("REDIS_PASSWORD"); ok {
		cfg.Cache.Redis.Password = v
	}
	if v, ok := lookup("LOG_LEVEL"); ok {
		cfg.Logs.Level = v
	}
}

func lookup(key string) (string, bool) {
	v, ok := os.LookupEnv(key)
	if !ok {
		return "", false
	}
	v = strings.TrimSpace(v)
	return v, v != ""
}

// Validate проверяет значения, без которых сервис не стартует.
// Шаг сетки здесь не проверяется: недопустимое значение заменяется на 15 при старте.
func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("%w: server.http_port %d", ErrInvalidConfig, c.Server.HTTPPort)
	}
	if c.Database.Host == "" || c.Database.DBName == "" {
		return fmt.Errorf("%w: database host and dbname are required", ErrInvalidConfig)
	}
	if _, err := time.LoadLocation(c.Slots.DefaultTimezone); err != nil {
		return fmt.Errorf("%w: slots.default_timezone %q: %w", ErrInvalidConfig, c.Slots.DefaultTimezone, err)
	}
	if c.Cache.TTLSeconds <= 0 {
		return fmt.Errorf("%w: cache.ttl_seconds must be positive", ErrInvalidConfig)
	}

	switch c.Cache.Backend {
	case CacheBackendMemory:
	case CacheBackendRedis:
		if c.Cache.Redis.Addr == "" {
			return fmt.Errorf("%w: cache.redis.addr is required for redis backend", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown cache.backend %q", ErrInvalidConfig, c.Cache.Backend)
	}
	return nil
}
