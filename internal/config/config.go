package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds every runtime setting for the orders service. Values come
// from the environment, with .env as a development convenience.
type Config struct {
	Service   ServiceConfig
	HTTP      HTTPConfig
	Database  DatabaseConfig
	Kafka     KafkaConfig
	Payment   PaymentConfig
	Telemetry TelemetryConfig
}

type ServiceConfig struct {
	Name        string
	Version     string
	Environment string
	LogLevel    slog.Level
}

type HTTPConfig struct {
	Addr            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

type DatabaseConfig struct {
	URL            string
	MigrationsPath string
	AutoMigrate    bool
}

type KafkaConfig struct {
	Enabled bool
	Brokers []string
	Topic   string
}

type PaymentConfig struct {
	// BaseURL empty means the in-memory mock gateway is used.
	BaseURL string
	Token   string
}

type TelemetryConfig struct {
	OTLPEndpoint  string
	EnableTracing bool
	EnableMetrics bool
	SampleRate    float64
}

// Load reads configuration from the environment. A missing .env file is
// not an error.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Service: ServiceConfig{
			Name:        envString("SERVICE_NAME", "orders-api"),
			Version:     envString("SERVICE_VERSION", "dev"),
			Environment: envString("ENVIRONMENT", "development"),
			LogLevel:    parseLogLevel(envString("LOG_LEVEL", "info")),
		},
		HTTP: HTTPConfig{
			Addr:            envString("HTTP_ADDR", ":8080"),
			ReadTimeout:     envDuration("HTTP_READ_TIMEOUT", 10*time.Second),
			WriteTimeout:    envDuration("HTTP_WRITE_TIMEOUT", 30*time.Second),
			ShutdownTimeout: envDuration("HTTP_SHUTDOWN_TIMEOUT", 15*time.Second),
		},
		Database: DatabaseConfig{
			URL:            os.Getenv("DATABASE_URL"),
			MigrationsPath: envString("MIGRATIONS_PATH", "migrations"),
			AutoMigrate:    envBool("AUTO_MIGRATE", true),
		},
		Kafka: KafkaConfig{
			Enabled: envBool("KAFKA_ENABLED", false),
			Brokers: splitList(envString("KAFKA_BROKERS", "localhost:9092")),
			Topic:   envString("KAFKA_TOPIC", "order-events"),
		},
		Payment: PaymentConfig{
			BaseURL: os.Getenv("PAYMENT_BASE_URL"),
			Token:   os.Getenv("PAYMENT_TOKEN"),
		},
		Telemetry: TelemetryConfig{
			OTLPEndpoint:  envString("OTLP_ENDPOINT", "localhost:4317"),
			EnableTracing: envBool("ENABLE_TRACING", true),
			EnableMetrics: envBool("ENABLE_METRICS", true),
			SampleRate:    envFloat("TRACE_SAMPLE_RATE", 1.0),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Database.URL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if c.Kafka.Enabled && len(c.Kafka.Brokers) == 0 {
		return fmt.Errorf("KAFKA_BROKERS is required when Kafka is enabled")
	}
	if c.Telemetry.SampleRate < 0.0 || c.Telemetry.SampleRate > 1.0 {
		return fmt.Errorf("TRACE_SAMPLE_RATE must be between 0.0 and 1.0")
	}
	return nil
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	parsed, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback
	}
	return parsed
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func parseLogLevel(v string) slog.Level {
	switch strings.ToLower(v) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
