package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 3001, cfg.Server.Port)
	assert.Equal(t, "release", cfg.Server.Mode)
	assert.False(t, cfg.IsDev())
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "data/pos.sqlite", cfg.Database.Path)
	assert.Empty(t, cfg.Redis.Addr)
	assert.Equal(t, 30*time.Second, cfg.Redis.TTL)
	assert.False(t, cfg.RateLimit.Enabled)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("POS_SERVER_PORT", "4000")
	t.Setenv("POS_SERVER_MODE", "debug")
	t.Setenv("POS_DATABASE_PATH", "/tmp/pos-test.sqlite")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 4000, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Server.Mode)
	assert.True(t, cfg.IsDev())
	assert.Equal(t, "/tmp/pos-test.sqlite", cfg.Database.Path)
}

func TestLoadRejectsInvalidMode(t *testing.T) {
	t.Setenv("POS_SERVER_MODE", "verbose")
	_, err := Load()
	assert.Error(t, err)
}
