package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var envVars = []string{
	"APP_ENV", "LOG_LEVEL", "LOG_FORMAT", "MEDPLANNER_USER_ID",
	"CAPTURE_STORE", "DATABASE_URL", "SQLITE_PATH", "REDIS_URL",
	"ANTHROPIC_API_KEY", "ANTHROPIC_MODEL", "AI_MAX_TOKENS", "AI_TIMEOUT",
	"AI_BREAKER_FAILURES", "AI_BREAKER_TIMEOUT", "AI_CACHE_SIZE", "AI_CACHE_TTL",
	"CAPTURE_CONFIDENCE_THRESHOLD", "CAPTURE_BASE_CONFIDENCE", "CAPTURE_DATE_WEIGHT",
	"CAPTURE_AMOUNT_WEIGHT", "CAPTURE_TIME_WEIGHT",
	"MCP_ADDR", "MCP_AUTH_TOKEN",
}

// clearEnvVars blanks every MedPlanner variable for the duration of the test.
func clearEnvVars(t *testing.T) {
	t.Helper()
	for _, v := range envVars {
		t.Setenv(v, "")
	}
}

func TestLoad_DefaultValues(t *testing.T) {
	clearEnvVars(t)

	cfg, err := Load()
	require.NoError(t, err)
	require.NotNil(t, cfg)

	// Application defaults
	assert.Equal(t, "development", cfg.AppEnv)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "", cfg.LogFormat)
	assert.Equal(t, "00000000-0000-0000-0000-000000000001", cfg.UserID)

	// Store defaults
	assert.Equal(t, "", cfg.CaptureStore)
	assert.Equal(t, "", cfg.DatabaseURL)
	assert.Equal(t, "redis://localhost:6379/0", cfg.RedisURL)

	// AI defaults
	assert.False(t, cfg.AIEnabled())
	assert.Equal(t, "claude-3-5-haiku-latest", cfg.AnthropicModel)
	assert.Equal(t, 512, cfg.AIMaxTokens)
	assert.Equal(t, 8*time.Second, cfg.AITimeout)
	assert.Equal(t, 3, cfg.AIBreakerFailures)
	assert.Equal(t, 30*time.Second, cfg.AIBreakerTimeout)
	assert.Equal(t, 256, cfg.AICacheSize)
	assert.Equal(t, 12*time.Hour, cfg.AICacheTTL)

	// Scoring defaults
	assert.Equal(t, 0.75, cfg.ConfidenceThreshold)
	assert.Equal(t, 0.5, cfg.BaseConfidence)
	assert.Equal(t, 0.2, cfg.DateWeight)
	assert.Equal(t, 0.15, cfg.AmountWeight)
	assert.Equal(t, 0.15, cfg.TimeWeight)

	// MCP defaults
	assert.Equal(t, "127.0.0.1:8082", cfg.MCPAddr)
	assert.Equal(t, "", cfg.MCPAuthToken)

	assert.True(t, cfg.IsDevelopment())
	assert.False(t, cfg.IsProduction())
}

func TestLoad_CustomValues(t *testing.T) {
	clearEnvVars(t)
	t.Setenv("APP_ENV", "production")
	t.Setenv("CAPTURE_STORE", "Redis")
	t.Setenv("ANTHROPIC_API_KEY", "sk-test")
	t.Setenv("AI_TIMEOUT", "3s")
	t.Setenv("AI_CACHE_SIZE", "10")
	t.Setenv("CAPTURE_CONFIDENCE_THRESHOLD", "0.8")
	t.Setenv("CAPTURE_TIME_WEIGHT", "0.1")

	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "redis", cfg.CaptureStore)
	assert.True(t, cfg.AIEnabled())
	assert.Equal(t, 3*time.Second, cfg.AITimeout)
	assert.Equal(t, 10, cfg.AICacheSize)
	assert.Equal(t, 0.8, cfg.ConfidenceThreshold)
	assert.Equal(t, 0.1, cfg.TimeWeight)
}

func TestLoad_InvalidValuesUseDefaults(t *testing.T) {
	clearEnvVars(t)
	t.Setenv("AI_MAX_TOKENS", "many")
	t.Setenv("AI_BREAKER_TIMEOUT", "soon")
	t.Setenv("CAPTURE_DATE_WEIGHT", "0,2")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 512, cfg.AIMaxTokens)
	assert.Equal(t, 30*time.Second, cfg.AIBreakerTimeout)
	assert.Equal(t, 0.2, cfg.DateWeight)
}
