package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config for the medipredict gateway.
type Config struct {
	HTTP struct {
		Addr string
	}

	// Inference is the remote prediction service every predict request is
	// forwarded to.
	Inference InferenceConfig

	DBEnabled bool
	Database  DatabaseConfig

	RedisEnabled bool
	Redis        struct {
		Addr     string
		Password string
		DB       int
	}

	// SessionTTL bounds how long a cached login session stays resolvable.
	SessionTTL time.Duration

	Log struct {
		Level  string
		Format string
	}
}

// InferenceConfig locates the model service.
type InferenceConfig struct {
	BaseURL string
	// Timeout bounds every predict call. The upstream flow had no bound;
	// a hung model request must not park submissions forever.
	Timeout time.Duration
}

// DatabaseConfig holds the PostgreSQL connection settings.
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string
	MaxConns int
	MaxIdle  int
}

// DSN renders the lib/pq connection string.
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode)
}

func Load() *Config {
	cfg := &Config{}
	cfg.HTTP.Addr = getEnv("HTTP_ADDR", ":8090")

	cfg.Inference.BaseURL = getEnv("INFERENCE_BASE_URL", "http://127.0.0.1:8000")
	cfg.Inference.Timeout = time.Duration(parseInt(getEnv("INFERENCE_TIMEOUT_SECONDS", "30"), 30)) * time.Second

	// Default to false for local dev: without a DB the gateway falls back
	// to the in-memory history repo instead of failing to start.
	cfg.DBEnabled = getEnv("DB_ENABLED", "false") == "true"
	cfg.Database.Host = getEnv("DB_HOST", "localhost")
	cfg.Database.Port = parseInt(getEnv("DB_PORT", "5432"), 5432)
	cfg.Database.User = getEnv("DB_USER", "postgres")
	cfg.Database.Password = getEnv("DB_PASSWORD", "postgres")
	cfg.Database.Database = getEnv("DB_NAME", "medipredict")
	cfg.Database.SSLMode = getEnv("DB_SSLMODE", "disable")
	cfg.Database.MaxConns = parseInt(getEnv("DB_MAX_CONNS", "10"), 10)
	cfg.Database.MaxIdle = parseInt(getEnv("DB_MAX_IDLE", "5"), 5)

	// Same fallback story for Redis: sessions land in a process-local map
	// when disabled.
	cfg.RedisEnabled = getEnv("REDIS_ENABLED", "false") == "true"
	cfg.Redis.Addr = getEnv("REDIS_ADDR", "localhost:6379")
	cfg.Redis.Password = getEnv("REDIS_PASSWORD", "")
	cfg.Redis.DB = 0

	cfg.SessionTTL = time.Duration(parseInt(getEnv("SESSION_TTL_MINUTES", "720"), 720)) * time.Minute

	cfg.Log.Level = getEnv("LOG_LEVEL", "info")
	cfg.Log.Format = getEnv("LOG_FORMAT", "json")

	return cfg
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseInt(s string, def int) int {
	if v, err := strconv.Atoi(s); err == nil {
		return v
	}
	return def
}
