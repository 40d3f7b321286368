package config

import (
	"os"
	"strconv"
)

type Config struct {
	AppEnv   string
	LogLevel string

	HTTPPort int

	PostgresHost string
	PostgresPort int
	PostgresUser string
	PostgresPass string
	PostgresDB   string

	KafkaBrokers    string
	OrderEventTopic string

	Currency           string
	CheckoutMaxRetries int
}

func Load() Config {
	return Config{
		AppEnv:   getEnv("APP_ENV", "dev"),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		HTTPPort: getEnvInt("HTTP_PORT", 8080),

		PostgresHost: getEnv("POSTGRES_HOST", ""),
		PostgresPort: getEnvInt("POSTGRES_PORT", 5432),
		PostgresUser: getEnv("POSTGRES_USER", "storefront"),
		PostgresPass: getEnv("POSTGRES_PASSWORD", ""),
		PostgresDB:   getEnv("POSTGRES_DB", "storefront_db"),

		KafkaBrokers:    getEnv("KAFKA_BROKERS", ""),
		OrderEventTopic: getEnv("ORDER_EVENT_TOPIC", "storefront.orders"),

		Currency:           getEnv("CURRENCY", "USD"),
		CheckoutMaxRetries: getEnvInt("CHECKOUT_MAX_RETRIES", 3),
	}
}

// UsePostgres reports whether a database host was configured. Without one the
// server falls back to the in-memory store.
func (c Config) UsePostgres() bool {
	return c.PostgresHost != ""
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	v := os.Getenv(key)

	if v == "" {
		return def
	}

	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}

	return n
}
