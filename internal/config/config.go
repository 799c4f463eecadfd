// Package config builds the single explicit configuration object the
// service is constructed from. Nothing here is package-level mutable
// state; main loads it once and passes it down.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Database struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

type RabbitMQ struct {
	Host     string
	Port     int
	User     string
	Password string
	VHost    string
}

type Redis struct {
	Addr     string
	Password string
	DB       int
}

type Config struct {
	HTTPPort int
	Database Database
	RabbitMQ RabbitMQ
	Redis    Redis

	// OrderLineTimeout bounds each order-line write; an expired write
	// counts as failed for partial-failure aggregation.
	OrderLineTimeout time.Duration

	// CompensateOnPartialFailure switches the coordinator from the
	// source-faithful keep-the-header policy to a best-effort header
	// delete when any line write fails.
	CompensateOnPartialFailure bool

	// MenuCacheTTL controls how long the product list stays in Redis.
	MenuCacheTTL time.Duration
}

// Load reads configuration from the environment, with a local .env file
// applied first when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		HTTPPort: envInt("PORT", 3000),
		Database: Database{
			Host:     envStr("DB_HOST", "localhost"),
			Port:     envInt("DB_PORT", 5432),
			User:     envStr("DB_USER", "postgres"),
			Password: os.Getenv("DB_PASSWORD"),
			Name:     envStr("DB_NAME", "tableside"),
			SSLMode:  envStr("DB_SSLMODE", "disable"),
		},
		RabbitMQ: RabbitMQ{
			Host:     envStr("RABBITMQ_HOST", "localhost"),
			Port:     envInt("RABBITMQ_PORT", 5672),
			User:     envStr("RABBITMQ_USER", "guest"),
			Password: envStr("RABBITMQ_PASSWORD", "guest"),
			VHost:    envStr("RABBITMQ_VHOST", "/"),
		},
		Redis: Redis{
			Addr:     envStr("REDIS_ADDR", "localhost:6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       envInt("REDIS_DB", 0),
		},
		OrderLineTimeout:           envDuration("ORDER_LINE_TIMEOUT", 5*time.Second),
		CompensateOnPartialFailure: envBool("COMPENSATE_PARTIAL_FAILURE", false),
		MenuCacheTTL:               envDuration("MENU_CACHE_TTL", 10*time.Minute),
	}

	if cfg.Database.Host == "" || cfg.Database.User == "" || cfg.Database.Name == "" {
		return nil, fmt.Errorf("database config incomplete")
	}
	if cfg.RabbitMQ.Host == "" || cfg.RabbitMQ.User == "" {
		return nil, fmt.Errorf("rabbitmq config incomplete")
	}
	return cfg, nil
}

// DSN returns the Postgres connection string.
func (d Database) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode)
}

// URL returns the AMQP connection string.
func (r RabbitMQ) URL() string {
	return fmt.Sprintf("amqp://%s:%s@%s:%d/%s", r.User, r.Password, r.Host, r.Port, r.VHost)
}

func envStr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
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

func envBool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

func envDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}
