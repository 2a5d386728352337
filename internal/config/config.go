package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/quota"
)

// ErrInvalidConfig возвращается при некорректной конфигурации
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config конфигурация сервиса
type Config struct {
	Server       ServerConfig       `toml:"server"`
	Database     DatabaseConfig     `toml:"database"`
	Logs         LogsConfig         `toml:"logs"`
	Metrics      MetricsConfig      `toml:"metrics"`
	Tracing      TracingConfig      `toml:"tracing"`
	Redis        RedisConfig        `toml:"redis"`
	RateLimit    RateLimitConfig    `toml:"ratelimit"`
	Kafka        KafkaConfig        `toml:"kafka"`
	Availability AvailabilityConfig `toml:"availability"`
	Quota        QuotaConfig        `toml:"quota"`
}

// ServerConfig настройки HTTP сервера (таймауты в секундах)
type ServerConfig struct {
	HTTPPort        int `toml:"http_port" envconfig:"HTTP_PORT"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

// DatabaseConfig настройки PostgreSQL
type DatabaseConfig struct {
	Host            string `toml:"host" envconfig:"DB_HOST"`
	Port            int    `toml:"port" envconfig:"DB_PORT"`
	User            string `toml:"user" envconfig:"DB_USER"`
	Password        string `toml:"password" envconfig:"DB_PASSWORD"`
	DBName          string `toml:"dbname" envconfig:"DB_NAME"`
	SSLMode         string `toml:"sslmode" envconfig:"DB_SSLMODE"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"` // секунды
}

// DSN строка подключения для lib/pq
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// LogsConfig настройки логирования
type LogsConfig struct {
	Level string `toml:"level" envconfig:"LOG_LEVEL"`
	File  string `toml:"file" envconfig:"LOG_FILE"`
}

// MetricsConfig настройки Prometheus
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled" envconfig:"METRICS_ENABLED"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// TracingConfig настройки OpenTelemetry
type TracingConfig struct {
	Enabled      bool    `toml:"enabled" envconfig:"TRACING_ENABLED"`
	ServiceName  string  `toml:"service_name"`
	OTLPEndpoint string  `toml:"otlp_endpoint" envconfig:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	SampleRatio  float64 `toml:"sample_ratio"`
}

// RedisConfig настройки Redis
type RedisConfig struct {
	Addr     string `toml:"addr" envconfig:"REDIS_ADDR"`
	Password string `toml:"password" envconfig:"REDIS_PASSWORD"`
	DB       int    `toml:"db" envconfig:"REDIS_DB"`
}

// RateLimitConfig ограничение частоты публичных запросов слотов
type RateLimitConfig struct {
	Enabled       bool `toml:"enabled" envconfig:"RATELIMIT_ENABLED"`
	Limit         int  `toml:"limit"`
	WindowSeconds int  `toml:"window_seconds"`
}

// Window окно ограничения
func (c RateLimitConfig) Window() time.Duration {
	return time.Duration(c.WindowSeconds) * time.Second
}

// KafkaConfig настройки консьюмера событий бронирований
type KafkaConfig struct {
	Enabled      bool   `toml:"enabled" envconfig:"KAFKA_ENABLED"`
	Brokers      string `toml:"brokers" envconfig:"KAFKA_BROKERS"`
	GroupID      string `toml:"group_id" envconfig:"KAFKA_GROUP_ID"`
	Topic        string `toml:"topic"`
	MaxAttempts  int    `toml:"max_attempts"`
	RetryDelayMs int    `toml:"retry_delay_ms"`
}

// AvailabilityConfig настройки расчёта слотов
type AvailabilityConfig struct {
	MaxParallel int `toml:"max_parallel" envconfig:"AVAILABILITY_MAX_PARALLEL"`
}

// QuotaConfig таблица тарифных планов
type QuotaConfig struct {
	DefaultPlan string       `toml:"default_plan"`
	Plans       []PlanConfig `toml:"plans" ignored:"true"`
}

// PlanConfig тарифный план; limit отсутствует или 0 - без лимита
type PlanConfig struct {
	ID    string `toml:"id"`
	Limit *int   `toml:"limit"`
}

// BuildPlans собирает неизменяемую таблицу планов
func (c QuotaConfig) BuildPlans() (quota.Plans, error) {
	plans := make([]domain.Plan, 0, len(c.Plans))
	for _, p := range c.Plans {
		plan := domain.Plan{ID: p.ID}
		if p.Limit != nil && *p.Limit > 0 {
			limit := *p.Limit
			plan.Limit = &limit
		}
		plans = append(plans, plan)
	}
	return quota.NewPlans(c.DefaultPlan, plans)
}

// Load читает TOML файл, затем .env (если есть) и переменные окружения поверх файла
func Load(path string) (*Config, error) {
	cfg := defaults()

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("config: failed to decode %s: %w", path, err)
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("config: failed to load .env: %w", err)
	}

	if err := envconfig.Process("", cfg); err != nil {
		return nil, fmt.Errorf("config: failed to apply environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate проверяет обязательные поля и диапазоны
func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("%w: server.http_port must be in 1..65535", ErrInvalidConfig)
	}

	if c.Database.Host == "" || c.Database.DBName == "" {
		return fmt.Errorf("%w: database.host and database.dbname are required", ErrInvalidConfig)
	}

	if c.Availability.MaxParallel < 0 {
		return fmt.Errorf("%w: availability.max_parallel must not be negative", ErrInvalidConfig)
	}

	if c.RateLimit.Enabled {
		if c.Redis.Addr == "" {
			return fmt.Errorf("%w: redis.addr is required when ratelimit is enabled", ErrInvalidConfig)
		}
		if c.RateLimit.Limit <= 0 || c.RateLimit.WindowSeconds <= 0 {
			return fmt.Errorf("%w: ratelimit.limit and ratelimit.window_seconds must be positive", ErrInvalidConfig)
		}
	}

	if c.Kafka.Enabled && (c.Kafka.Brokers == "" || c.Kafka.Topic == "" || c.Kafka.GroupID == "") {
		return fmt.Errorf("%w: kafka.brokers, kafka.topic and kafka.group_id are required", ErrInvalidConfig)
	}

	if _, err := c.Quota.BuildPlans(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	return nil
}

func defaults() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     15,
			WriteTimeout:    15,
			IdleTimeout:     60,
			ShutdownTimeout: 10,
		},
		Database: DatabaseConfig{
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Logs: LogsConfig{Level: "info"},
		Metrics: MetricsConfig{
			Path:        "/metrics",
			ServiceName: "availabilityservice",
		},
		Tracing: TracingConfig{
			ServiceName: "availabilityservice",
			SampleRatio: 1,
		},
		RateLimit: RateLimitConfig{Limit: 120, WindowSeconds: 60},
		Kafka: KafkaConfig{
			Topic:        "booking.status_changed",
			GroupID:      "availabilityservice",
			MaxAttempts:  5,
			RetryDelayMs: 500,
		},
		Availability: AvailabilityConfig{MaxParallel: 8},
	}
}
