package scanner

import (
	"fmt"
	"os"
	"time"
)

// Config holds scan flow timing.
type Config struct {
	SuccessDelay  string `toml:"success_delay"`
	GreetingDelay string `toml:"greeting_delay"`
}

// Env maps config fields to environment variable names for override injection.
type Env struct {
	SuccessDelay  string
	GreetingDelay string
}

// SuccessDelayDuration returns SuccessDelay as a time.Duration.
func (c *Config) SuccessDelayDuration() time.Duration {
	d, _ := time.ParseDuration(c.SuccessDelay)
	return d
}

// GreetingDelayDuration returns GreetingDelay as a time.Duration.
func (c *Config) GreetingDelayDuration() time.Duration {
	d, _ := time.ParseDuration(c.GreetingDelay)
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
	if overlay.SuccessDelay != "" {
		c.SuccessDelay = overlay.SuccessDelay
	}
	if overlay.GreetingDelay != "" {
		c.GreetingDelay = overlay.GreetingDelay
	}
}

func (c *Config) loadDefaults() {
	if c.SuccessDelay == "" {
		c.SuccessDelay = "500ms"
	}
	if c.GreetingDelay == "" {
		c.GreetingDelay = "500ms"
	}
}

func (c *Config) loadEnv(env *Env) {
	if env.SuccessDelay != "" {
		if v := os.Getenv(env.SuccessDelay); v != "" {
			c.SuccessDelay = v
		}
	}
	if env.GreetingDelay != "" {
		if v := os.Getenv(env.GreetingDelay); v != "" {
			c.GreetingDelay = v
		}
	}
}

func (c *Config) validate() error {
	if _, err := time.ParseDuration(c.SuccessDelay); err != nil {
		return fmt.Errorf("invalid success_delay: %w", err)
	}
	if _, err := time.ParseDuration(c.GreetingDelay); err != nil {
		return fmt.Errorf("invalid greeting_delay: %w", err)
	}
	return nil
}
