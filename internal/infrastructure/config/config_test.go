package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, 9090, cfg.GRPCPort)
	assert.Equal(t, 8080, cfg.HTTPPort)
	assert.Equal(t, 50, cfg.HTTPRateLimit)
	assert.Equal(t, "postgres", cfg.StoreBackend)
	assert.Equal(t, "kafka", cfg.EventBackend)
	assert.Equal(t, []string{"localhost:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, 10*time.Second, cfg.CDP.Timeout)
	assert.Equal(t, 72*time.Hour, cfg.Scheduler.DueScanWindow)
	assert.False(t, cfg.GRPC.Reflection)
	assert.Empty(t, cfg.Auth.JWTSecret)
	assert.Equal(t, "aura-credit", cfg.Auth.JWTIssuer)
	assert.Equal(t, ":9090", cfg.GRPCAddr())
	assert.Equal(t, ":8080", cfg.HTTPAddr())
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("GRPC_PORT", "7001")
	t.Setenv("STORE_BACKEND", "MEMORY")
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092,")
	t.Setenv("CDP_TIMEOUT_SECONDS", "3")
	t.Setenv("DUE_SCAN_WINDOW_HOURS", "24")
	t.Setenv("REDIS_DB", "2")
	t.Setenv("GRPC_REFLECTION", "true")
	t.Setenv("JWT_SECRET", "s3cret")

	cfg := Load()

	assert.Equal(t, 7001, cfg.GRPCPort)
	assert.Equal(t, "memory", cfg.StoreBackend)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, 3*time.Second, cfg.CDP.Timeout)
	assert.Equal(t, 24*time.Hour, cfg.Scheduler.DueScanWindow)
	assert.Equal(t, 2, cfg.Redis.DB)
	assert.True(t, cfg.GRPC.Reflection)
	assert.Equal(t, "s3cret", cfg.Auth.JWTSecret)
}

func TestConfig_Validate(t *testing.T) {
	t.Run("memory backends need no credentials", func(t *testing.T) {
		cfg := Config{GRPCPort: 1, HTTPPort: 2, StoreBackend: "memory", LockBackend: "memory", EventBackend: "log"}
		require.NoError(t, cfg.Validate())
	})

	t.Run("postgres requires a password", func(t *testing.T) {
		cfg := Config{GRPCPort: 1, HTTPPort: 2, StoreBackend: "postgres", LockBackend: "memory", EventBackend: "log"}
		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "DB_PASSWORD")
	})

	t.Run("tls needs both files", func(t *testing.T) {
		cfg := Config{GRPCPort: 1, HTTPPort: 2, StoreBackend: "memory", LockBackend: "memory", EventBackend: "log",
			GRPC: GRPCConfig{TLSCertFile: "server.pem"}}
		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "GRPC_TLS_KEY_FILE")
	})

	t.Run("one jwt key source", func(t *testing.T) {
		cfg := Config{GRPCPort: 1, HTTPPort: 2, StoreBackend: "memory", LockBackend: "memory", EventBackend: "log",
			Auth: AuthConfig{JWTSecret: "x", JWTPublicKeyFile: "jwt.pub"}}
		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "JWT_SECRET")
	})

	t.Run("reports every problem", func(t *testing.T) {
		cfg := Config{StoreBackend: "mongo", LockBackend: "zookeeper", EventBackend: "kafka"}
		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "STORE_BACKEND")
		assert.Contains(t, err.Error(), "LOCK_BACKEND")
		assert.Contains(t, err.Error(), "KAFKA_BROKERS")
		assert.Contains(t, err.Error(), "must be positive")
	})
}
