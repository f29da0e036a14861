package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, ":8090", cfg.HTTP.Addr)
	assert.Equal(t, "http://127.0.0.1:8000", cfg.Inference.BaseURL)
	assert.Equal(t, 30*time.Second, cfg.Inference.Timeout)
	assert.False(t, cfg.DBEnabled)
	assert.False(t, cfg.RedisEnabled)
	assert.Equal(t, 720*time.Minute, cfg.SessionTTL)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9999")
	t.Setenv("INFERENCE_BASE_URL", "http://model:8000")
	t.Setenv("INFERENCE_TIMEOUT_SECONDS", "5")
	t.Setenv("DB_ENABLED", "true")
	t.Setenv("DB_NAME", "medipredict_test")

	cfg := Load()
	assert.Equal(t, ":9999", cfg.HTTP.Addr)
	assert.Equal(t, "http://model:8000", cfg.Inference.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.Inference.Timeout)
	assert.True(t, cfg.DBEnabled)
	assert.Equal(t, "medipredict_test", cfg.Database.Database)
}

func TestLoad_BadIntFallsBack(t *testing.T) {
	t.Setenv("INFERENCE_TIMEOUT_SECONDS", "soon")
	cfg := Load()
	assert.Equal(t, 30*time.Second, cfg.Inference.Timeout)
}

func TestDatabaseDSN(t *testing.T) {
	c := DatabaseConfig{
		Host: "db", Port: 5432, User: "u", Password: "p",
		Database: "medipredict", SSLMode: "disable",
	}
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=medipredict sslmode=disable", c.DSN())
}
