package config

import (
	"testing"
	"time"

	"github.com/dmitrijs2005/luggify/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, "http://127.0.0.1:8000", c.ServerBaseURL)
	assert.Equal(t, 10*time.Second, c.RequestTimeout)
	assert.Equal(t, 3*time.Second, c.OnlineCheckInterval)
	assert.Equal(t, "luggify.db", c.DatabasePath)
	assert.Equal(t, logging.BackendSlog, c.LogBackend)
	assert.Equal(t, 4, c.SyncConcurrency)
	require.NoError(t, c.Validate())
}

func TestLoadConfig_UsesDefaultsWithoutArgs(t *testing.T) {
	cfg, err := LoadConfig(nil)
	require.NoError(t, err)
	require.NotNil(t, cfg, "LoadConfig must not return nil")
	assert.Equal(t, "http://127.0.0.1:8000", cfg.ServerBaseURL)
	assert.Equal(t, 3*time.Second, cfg.OnlineCheckInterval)
}

func TestLoadConfig_FlagsOverrideJSON(t *testing.T) {
	path := writeTempJSON(t, "", "", map[string]any{
		"server_base_url":  "http://json:8000",
		"request_timeout":  "4s",
		"log_backend":      "zap",
		"sync_concurrency": 2,
	})

	cfg, err := LoadConfig([]string{"-c", path, "-a", "http://flag:9000", "-unknown", "x"})
	require.NoError(t, err)

	assert.Equal(t, "http://flag:9000", cfg.ServerBaseURL)
	assert.Equal(t, 4*time.Second, cfg.RequestTimeout)
	assert.Equal(t, logging.BackendZap, cfg.LogBackend)
	assert.Equal(t, 2, cfg.SyncConcurrency)
}

func TestLoadConfig_Errors(t *testing.T) {
	_, err := LoadConfig([]string{"-i", "abc"})
	require.Error(t, err)

	_, err = LoadConfig([]string{"-t", "0"})
	require.ErrorContains(t, err, "request timeout")

	_, err = LoadConfig([]string{"-c", "/does/not/exist.json"})
	require.ErrorContains(t, err, "read config")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"empty server", func(c *Config) { c.ServerBaseURL = "" }, "server address"},
		{"zero interval", func(c *Config) { c.OnlineCheckInterval = 0 }, "online check interval"},
		{"empty db", func(c *Config) { c.DatabasePath = "" }, "database path"},
		{"bad backend", func(c *Config) { c.LogBackend = "logrus" }, "log backend"},
		{"no workers", func(c *Config) { c.SyncConcurrency = 0 }, "sync concurrency"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var c Config
			c.LoadDefaults()
			tt.mutate(&c)
			require.ErrorContains(t, c.Validate(), tt.want)
		})
	}
}
