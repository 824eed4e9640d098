package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Equal(t, DriverMongo, cfg.StoreDriver)
	assert.Equal(t, 15*time.Minute, cfg.AccessTTL)
	assert.Equal(t, 20, cfg.DefaultPageSize)
	assert.Equal(t, 100, cfg.MaxPageSize)
	assert.Equal(t, cfg.JWTSecret+"-refresh", cfg.JWTRefreshSecret)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("HTTP_PORT", "9999")
	t.Setenv("STORE_DRIVER", "Postgres")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("POSTS_DEFAULT_LIMIT", "5")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "9999", cfg.HTTPPort)
	assert.Equal(t, DriverPostgres, cfg.StoreDriver)
	assert.Equal(t, "s3cret", cfg.JWTSecret)
	assert.Equal(t, 5, cfg.DefaultPageSize)
}

func TestLoadFileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("http:\n  port: \"7070\"\nstore:\n  driver: memory\nrate:\n  rps: 5\n"), 0o600))
	t.Setenv("RATE_RPS", "7")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "7070", cfg.HTTPPort)
	assert.Equal(t, DriverMemory, cfg.StoreDriver)
	assert.Equal(t, 7, cfg.RateRPS)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	base, err := Load("")
	require.NoError(t, err)

	bad := base
	bad.StoreDriver = "sqlite"
	assert.ErrorContains(t, bad.Validate(), "unknown driver")

	bad = base
	bad.DefaultPageSize = 500
	assert.ErrorContains(t, bad.Validate(), "must not exceed")

	bad = base
	bad.Env = "prod"
	assert.ErrorContains(t, bad.Validate(), "jwt.secret")
}
