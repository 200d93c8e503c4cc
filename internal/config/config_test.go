package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PORT", "COMPANY_NAME", "ADVERTISE_URL", "REGISTRY_ADDR", "REGISTRY_BACKEND", "REDIS_URL",
		"STORAGE_TYPE", "FLEET_SEED_FILE", "KINESIS_RESERVATION_EVENTS_STREAM", "SHUTDOWN_TIMEOUT", "LOG_LEVEL",
	} {
		t.Setenv(key, "")
	}
}

func TestFromEnv_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "Hertz", cfg.CompanyName)
	assert.Equal(t, "http://localhost:8080", cfg.AdvertiseURL)
	assert.Equal(t, ":12345", cfg.RegistryAddr)
	assert.Equal(t, "memory", cfg.RegistryBackend)
	assert.Equal(t, "seed", cfg.StorageType)
	assert.Equal(t, "configs/hertz.yaml", cfg.FleetSeedFile)
	assert.Empty(t, cfg.KinesisStream)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
}

func TestFromEnv_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("COMPANY_NAME", "Avis")
	t.Setenv("REGISTRY_BACKEND", "redis")
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")
	t.Setenv("STORAGE_TYPE", "dynamodb")
	t.Setenv("KINESIS_RESERVATION_EVENTS_STREAM", "reservation-events")
	t.Setenv("SHUTDOWN_TIMEOUT", "3s")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "Avis", cfg.CompanyName)
	assert.Equal(t, "http://localhost:9090", cfg.AdvertiseURL)
	assert.Equal(t, "redis://localhost:6379/0", cfg.RedisURL)
	assert.Equal(t, "dynamodb", cfg.StorageType)
	assert.Equal(t, "reservation-events", cfg.KinesisStream)
	assert.Equal(t, 3*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
}

func TestFromEnv_InvalidValuesFallBack(t *testing.T) {
	clearEnv(t)
	t.Setenv("SHUTDOWN_TIMEOUT", "soon")
	t.Setenv("LOG_LEVEL", "chatty")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
}

func TestFromEnv_Rejects(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"redis without url", map[string]string{"REGISTRY_BACKEND": "redis"}},
		{"unknown registry backend", map[string]string{"REGISTRY_BACKEND": "etcd"}},
		{"unknown storage", map[string]string{"STORAGE_TYPE": "postgres"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := FromEnv()
			assert.Error(t, err)
		})
	}
}
