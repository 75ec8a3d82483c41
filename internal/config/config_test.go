package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadRequiresDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATABASE_URL")
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/dealdeck")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "development", cfg.AppEnv)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, 300, cfg.StatsCacheTTLSeconds)
	assert.Empty(t, cfg.RedisURL)
	assert.False(t, cfg.IsProduction())
}

func TestLoadRejectsBadLogFormat(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/dealdeck")
	t.Setenv("LOG_FORMAT", "yaml")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "LOG_FORMAT")
}

func TestLoadRejectsNegativeTTL(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/dealdeck")
	t.Setenv("STATS_CACHE_TTL_SECONDS", "-5")

	_, err := Load()
	require.Error(t, err)
}

func TestLoadRejectsNonIntegerTTL(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/dealdeck")
	t.Setenv("STATS_CACHE_TTL_SECONDS", "soon")

	_, err := Load()
	require.Error(t, err)
}

func TestLoadReadsOverrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://db:5432/dealdeck")
	t.Setenv("APP_ENV", "production")
	t.Setenv("PORT", "9000")
	t.Setenv("REDIS_URL", "redis://cache:6379/0")
	t.Setenv("LOG_FORMAT", "json")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, "redis://cache:6379/0", cfg.RedisURL)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.True(t, cfg.IsProduction())
}
