package config

import (
	"fmt"
	"time"

	"github.com/dmitrijs2005/luggify/internal/logging"
)

// Config holds runtime settings for the Luggify client.
//
// Units: RequestTimeout and OnlineCheckInterval are time.Duration values.
type Config struct {
	ServerBaseURL       string
	RequestTimeout      time.Duration
	OnlineCheckInterval time.Duration
	DatabasePath        string
	OwnerID             string
	LogFile             string
	LogLevel            string
	LogBackend          logging.Backend
	SyncConcurrency     int
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerBaseURL = "http://127.0.0.1:8000"
	c.RequestTimeout = 10 * time.Second
	c.OnlineCheckInterval = 3 * time.Second
	c.DatabasePath = "luggify.db"
	c.LogFile = "luggify.log"
	c.LogLevel = "info"
	c.LogBackend = logging.BackendSlog
	c.SyncConcurrency = 4
}

// Validate rejects settings the client cannot run with.
func (c *Config) Validate() error {
	if c.ServerBaseURL == "" {
		return fmt.Errorf("server address is empty")
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("request timeout must be positive, got %s", c.RequestTimeout)
	}
	if c.OnlineCheckInterval <= 0 {
		return fmt.Errorf("online check interval must be positive, got %s", c.OnlineCheckInterval)
	}
	if c.DatabasePath == "" {
		return fmt.Errorf("database path is empty")
	}
	switch c.LogBackend {
	case logging.BackendSlog, logging.BackendZap:
	default:
		return fmt.Errorf("unknown log backend %q", c.LogBackend)
	}
	if c.SyncConcurrency < 1 {
		return fmt.Errorf("sync concurrency must be at least 1, got %d", c.SyncConcurrency)
	}
	return nil
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones. args excludes the program name.
func LoadConfig(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseJson(cfg, args); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}
