package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnvVars clears all Ascend-related environment variables.
func clearEnvVars() {
	envVars := []string{
		"APP_ENV", "LOG_LEVEL", "ASCEND_USER_ID",
		"ASCEND_LOCAL", "ASCEND_DB_PATH",
		"DATABASE_URL", "REDIS_URL", "RABBITMQ_URL",
		"ASCEND_PATTERN_CACHE_TTL",
		"OUTBOX_POLL_INTERVAL", "OUTBOX_BATCH_SIZE", "OUTBOX_MAX_RETRIES",
		"OUTBOX_PROCESSOR_ENABLED",
		"ASCEND_SUGGESTION_DECAY_MINUTES", "ASCEND_SUGGESTION_CONFIDENCE_SAMPLES",
	}
	for _, v := range envVars {
		os.Unsetenv(v)
	}
}

func TestLoad_DefaultValues(t *testing.T) {
	clearEnvVars()
	defer clearEnvVars()

	cfg, err := Load()
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "development", cfg.AppEnv)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "00000000-0000-0000-0000-000000000001", cfg.UserID)

	// Local mode with an embedded database is the default.
	assert.True(t, cfg.LocalMode)
	assert.NotEmpty(t, cfg.LocalDBPath)
	assert.Empty(t, cfg.RedisURL)
	assert.Empty(t, cfg.RabbitMQURL)

	assert.Equal(t, 15*time.Minute, cfg.PatternCacheTTL)

	assert.Equal(t, 500*time.Millisecond, cfg.OutboxPollInterval)
	assert.Equal(t, 50, cfg.OutboxBatchSize)
	assert.Equal(t, 5, cfg.OutboxMaxRetries)
	assert.True(t, cfg.OutboxProcessorEnabled)

	assert.Equal(t, 120.0, cfg.SuggestionDecayMinutes)
	assert.Equal(t, 10, cfg.SuggestionConfidenceSamples)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	clearEnvVars()
	defer clearEnvVars()

	os.Setenv("APP_ENV", "production")
	os.Setenv("ASCEND_LOCAL", "false")
	os.Setenv("DATABASE_URL", "postgres://app:secret@db:5432/ascend")
	os.Setenv("REDIS_URL", "redis://cache:6379/0")
	os.Setenv("ASCEND_PATTERN_CACHE_TTL", "5m")
	os.Setenv("OUTBOX_BATCH_SIZE", "200")
	os.Setenv("ASCEND_SUGGESTION_DECAY_MINUTES", "90.5")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "production", cfg.AppEnv)
	assert.False(t, cfg.LocalMode)
	assert.Equal(t, "postgres://app:secret@db:5432/ascend", cfg.DatabaseURL)
	assert.Equal(t, "redis://cache:6379/0", cfg.RedisURL)
	assert.Equal(t, 5*time.Minute, cfg.PatternCacheTTL)
	assert.Equal(t, 200, cfg.OutboxBatchSize)
	assert.Equal(t, 90.5, cfg.SuggestionDecayMinutes)
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	clearEnvVars()
	defer clearEnvVars()

	os.Setenv("OUTBOX_BATCH_SIZE", "not-a-number")
	os.Setenv("ASCEND_PATTERN_CACHE_TTL", "soon")
	os.Setenv("ASCEND_LOCAL", "maybe")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 50, cfg.OutboxBatchSize)
	assert.Equal(t, 15*time.Minute, cfg.PatternCacheTTL)
	assert.True(t, cfg.LocalMode)
}

func TestConfig_EnvironmentChecks(t *testing.T) {
	dev := &Config{AppEnv: "development"}
	assert.True(t, dev.IsDevelopment())
	assert.False(t, dev.IsProduction())

	prod := &Config{AppEnv: "production"}
	assert.False(t, prod.IsDevelopment())
	assert.True(t, prod.IsProduction())
}
