package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	perr "mortgage-agent/errors"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, SourceFile, cfg.Source)
	assert.Equal(t, ".", cfg.InputDir)
	assert.Equal(t, "prospects.txt", cfg.InputFile)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, 5, cfg.RateLimit)
	assert.Equal(t, time.Minute, cfg.RateWindow)
	assert.Equal(t, int64(1<<20), cfg.MaxBodyBytes)
	assert.Equal(t, 100, cfg.MaxTermYears)
	assert.Equal(t, "warn", cfg.LogLevel)
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("MORTGAGE_SOURCE", "redis")
	t.Setenv("REDIS_ADDR", "cache:6380")
	t.Setenv("RATE_WINDOW", "30s")
	t.Setenv("LOG_FORMAT", "json")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, SourceRedis, cfg.Source)
	assert.Equal(t, "cache:6380", cfg.RedisAddr)
	assert.Equal(t, 30*time.Second, cfg.RateWindow)
	assert.Equal(t, "json", cfg.LogFormat)
}

func TestLoad_DotEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("MORTGAGE_INPUT_FILE=march.txt\n"), 0o600))
	// registered so the variable godotenv sets is restored after the test
	t.Setenv("MORTGAGE_INPUT_FILE", "")
	require.NoError(t, os.Unsetenv("MORTGAGE_INPUT_FILE"))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "march.txt", cfg.InputFile)
}

func TestLoad_InvalidSource(t *testing.T) {
	t.Setenv("MORTGAGE_SOURCE", "ftp")

	_, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.Error(t, err)
	assert.True(t, perr.IsCode(err, perr.ErrorCodeValidation))
}

func TestValidate_RateLimit(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	cfg.RateLimit = 0
	assert.Error(t, cfg.Validate())
}
