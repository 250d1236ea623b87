package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_RequiresDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATABASE_URL")
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/shopmart")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
	assert.Equal(t, "product-images", cfg.MinioBucket)
	assert.False(t, cfg.MinioUseSSL)
	assert.Equal(t, 10, cfg.LowStockThreshold)
	assert.Equal(t, 15*time.Minute, cfg.LowStockInterval)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://db:5432/shopmart")
	t.Setenv("PORT", "9090")
	t.Setenv("REDIS_ADDR", "redis:6379")
	t.Setenv("MINIO_USE_SSL", "true")
	t.Setenv("LOW_STOCK_THRESHOLD", "25")
	t.Setenv("LOW_STOCK_INTERVAL", "1h")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "redis:6379", cfg.RedisAddr)
	assert.True(t, cfg.MinioUseSSL)
	assert.Equal(t, 25, cfg.LowStockThreshold)
	assert.Equal(t, time.Hour, cfg.LowStockInterval)
}

func TestLoad_RejectsBadPort(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://db:5432/shopmart")
	t.Setenv("PORT", "not-a-port")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "PORT")
}

// Bad values on optional settings fall back to defaults instead of failing.
func TestLoad_IgnoresBadOptionalValues(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://db:5432/shopmart")
	t.Setenv("LOW_STOCK_THRESHOLD", "-4")
	t.Setenv("LOW_STOCK_INTERVAL", "soon")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 10, cfg.LowStockThreshold)
	assert.Equal(t, 15*time.Minute, cfg.LowStockInterval)
}
