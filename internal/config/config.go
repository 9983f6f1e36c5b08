package config

import (
	"os"
	"strings"
	"time"
)

// Config holds the gateway service configuration
type Config struct {
	ServiceName string
	Environment string
	LogLevel    string
	HTTPPort    string
	ShopBaseURL string
	OrderPrefix string
	Database    DatabaseConfig
	Redis       RedisConfig
	Kafka       KafkaConfig
	PSPTimeout  time.Duration
	IssuerTTL   time.Duration
}

// DatabaseConfig holds PostgreSQL settings
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// RedisConfig holds Redis settings for the issuer-selection store
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// KafkaConfig holds event publishing settings
type KafkaConfig struct {
	Brokers []string
	Enabled bool
}

// Load builds the configuration from environment variables
func Load() *Config {
	return &Config{
		ServiceName: getEnv("OTEL_SERVICE_NAME", "multisafepay-gateway"),
		Environment: getEnv("ENVIRONMENT", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		HTTPPort:    getEnv("HTTP_PORT", "8084"),
		ShopBaseURL: getEnv("SHOP_BASE_URL", "http://localhost:8084"),
		OrderPrefix: getEnv("ORDER_PREFIX", ""),
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "gatewaydb"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       0,
		},
		Kafka: KafkaConfig{
			Brokers: strings.Split(getEnv("KAFKA_BROKERS", "localhost:9092"), ","),
			Enabled: getEnv("KAFKA_ENABLED", "true") == "true",
		},
		PSPTimeout: getEnvDuration("PSP_TIMEOUT", 15*time.Second),
		IssuerTTL:  getEnvDuration("ISSUER_TTL", 30*time.Minute),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
