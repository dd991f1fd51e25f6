package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fairyhunter13/resume-insight/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "dev", cfg.AppEnv)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, int64(10), cfg.MaxUploadMB)
	assert.Equal(t, int64(10<<20), cfg.MaxUploadBytes())
	assert.Equal(t, 3, cfg.AIMaxRetries)
	assert.True(t, cfg.IsDev())
	assert.False(t, cfg.ReviewEnabled())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("APP_ENV", "prod")
	t.Setenv("PORT", "9999")
	t.Setenv("AI_API_KEY", "sk-test")
	t.Setenv("AI_TIMEOUT", "10s")
	t.Setenv("RATE_LIMIT_PER_MIN", "5")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.True(t, cfg.IsProd())
	assert.Equal(t, 9999, cfg.Port)
	assert.True(t, cfg.ReviewEnabled())
	assert.Equal(t, 10*time.Second, cfg.AITimeout)
	assert.Equal(t, 5, cfg.RateLimitPerMin)
}

func TestLoad_InvalidValue(t *testing.T) {
	t.Setenv("PORT", "not-a-number")

	_, err := config.Load()
	assert.Error(t, err)
}

func TestBackoffConfig_TestMode(t *testing.T) {
	t.Setenv("APP_ENV", "test")

	cfg, err := config.Load()
	require.NoError(t, err)

	maxElapsed, initial, maxIv, mult := cfg.BackoffConfig()
	assert.Equal(t, 2*time.Second, maxElapsed)
	assert.Equal(t, 50*time.Millisecond, initial)
	assert.Equal(t, 500*time.Millisecond, maxIv)
	assert.Equal(t, 2.0, mult)
}
