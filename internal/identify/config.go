package identify

import (
	"fmt"
	"os"
	"time"
)

// Identification modes.
const (
	ModeMock = "mock"
	ModeLive = "live"
)

// Config holds identification client settings.
type Config struct {
	Mode      string `toml:"mode"`
	Endpoint  string `toml:"endpoint"`
	Timeout   string `toml:"timeout"`
	MockDelay string `toml:"mock_delay"`
}

// Env maps config fields to environment variable names for override injection.
type Env struct {
	Mode      string
	Endpoint  string
	Timeout   string
	MockDelay string
}

// TimeoutDuration returns Timeout as a time.Duration.
func (c *Config) TimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.Timeout)
	return d
}

// MockDelayDuration returns MockDelay as a time.Duration.
func (c *Config) MockDelayDuration() time.Duration {
	d, _ := time.ParseDuration(c.MockDelay)
	return d
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *Config) Finalize(env *Env) error {
	c.loadDefaults()
	if env != nil {
		c.loadEnv(env)
	}
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *Config) Merge(overlay *Config) {
	if overlay.Mode != "" {
		c.Mode = overlay.Mode
	}
	if overlay.Endpoint != "" {
		c.Endpoint = overlay.Endpoint
	}
	if overlay.Timeout != "" {
		c.Timeout = overlay.Timeout
	}
	if overlay.MockDelay != "" {
		c.MockDelay = overlay.MockDelay
	}
}

func (c *Config) loadDefaults() {
	if c.Mode == "" {
		c.Mode = ModeMock
	}
	if c.Endpoint == "" {
		c.Endpoint = "http://localhost:8080/api/identify"
	}
	if c.Timeout == "" {
		c.Timeout = "30s"
	}
	if c.MockDelay == "" {
		c.MockDelay = "2s"
	}
}

func (c *Config) loadEnv(env *Env) {
	if env.Mode != "" {
		if v := os.Getenv(env.Mode); v != "" {
			c.Mode = v
		}
	}
	if env.Endpoint != "" {
		if v := os.Getenv(env.Endpoint); v != "" {
			c.Endpoint = v
		}
	}
	if env.Timeout != "" {
		if v := os.Getenv(env.Timeout); v != "" {
			c.Timeout = v
		}
	}
	if env.MockDelay != "" {
		if v := os.Getenv(env.MockDelay); v != "" {
			c.MockDelay = v
		}
	}
}

func (c *Config) validate() error {
	if c.Mode != ModeMock && c.Mode != ModeLive {
		return fmt.Errorf("invalid mode: %q", c.Mode)
	}
	if c.Mode == ModeLive && c.Endpoint == "" {
		return fmt.Errorf("endpoint required in live mode")
	}
	if _, err := time.ParseDuration(c.Timeout); err != nil {
		return fmt.Errorf("invalid timeout: %w", err)
	}
	if _, err := time.ParseDuration(c.MockDelay); err != nil {
		return fmt.Errorf("invalid mock_delay: %w", err)
	}
	return nil
}
