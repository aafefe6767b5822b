package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("PG_HOST", "localhost")
	t.Setenv("PG_PORT", "5432")
	t.Setenv("PG_DB_NAME", "lots")
	t.Setenv("PG_PASSWORD", "secret")
	t.Setenv("PG_USER", "lots")
	t.Setenv("TELEGRAM_TOKEN", "token")
	t.Setenv("REDIS_HOST", "localhost")
	t.Setenv("REDIS_PORT", "6379")
}

func TestLoad_Defaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 5432, cfg.Postgres.Port)
	assert.Equal(t, "fifo", cfg.Allocation.DefaultStrategy)
	assert.Equal(t, 30*time.Second, cfg.Allocation.LockTTL)
	assert.Equal(t, 12*time.Hour, cfg.Jobs.SyncSplitsInterval)
	assert.Equal(t, "https://iss.moex.com", cfg.API.MoexApi.Url)
	assert.Empty(t, cfg.GoogleDrive.CredentialsFile)
}

func TestLoad_Overrides(t *testing.T) {
	setRequired(t)
	t.Setenv("DEFAULT_STRATEGY", "lowest")
	t.Setenv("LOCK_WAIT", "250ms")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "lowest", cfg.Allocation.DefaultStrategy)
	assert.Equal(t, 250*time.Millisecond, cfg.Allocation.LockWait)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoad_MissingRequired(t *testing.T) {
	setRequired(t)
	require.NoError(t, os.Unsetenv("PG_HOST"))

	_, err := Load()

	assert.Error(t, err)
}
