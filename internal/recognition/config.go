package recognition

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds recognizer settings.
type Config struct {
	MaxConcurrent       int     `toml:"max_concurrent"`
	Latency             string  `toml:"latency"`
	BlurryWeight        float64 `toml:"blurry_weight"`
	LowConfidenceWeight float64 `toml:"low_confidence_weight"`
}

// Env maps config fields to environment variable names for override injection.
type Env struct {
	MaxConcurrent       string
	Latency             string
	BlurryWeight        string
	LowConfidenceWeight string
}

// LatencyDuration returns Latency as a time.Duration.
func (c *Config) LatencyDuration() time.Duration {
	d, _ := time.ParseDuration(c.Latency)
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
	if overlay.MaxConcurrent != 0 {
		c.MaxConcurrent = overlay.MaxConcurrent
	}
	if overlay.Latency != "" {
		c.Latency = overlay.Latency
	}
	if overlay.BlurryWeight != 0 {
		c.BlurryWeight = overlay.BlurryWeight
	}
	if overlay.LowConfidenceWeight != 0 {
		c.LowConfidenceWeight = overlay.LowConfidenceWeight
	}
}

func (c *Config) loadDefaults() {
	if c.MaxConcurrent == 0 {
		c.MaxConcurrent = 8
	}
	if c.Latency == "" {
		c.Latency = "0s"
	}
	if c.BlurryWeight == 0 {
		c.BlurryWeight = 0.1
	}
	if c.LowConfidenceWeight == 0 {
		c.LowConfidenceWeight = 0.1
	}
}

func (c *Config) loadEnv(env *Env) {
	if env.MaxConcurrent != "" {
		if v := os.Getenv(env.MaxConcurrent); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				c.MaxConcurrent = n
			}
		}
	}
	if env.Latency != "" {
		if v := os.Getenv(env.Latency); v != "" {
			c.Latency = v
		}
	}
	if env.BlurryWeight != "" {
		if v := os.Getenv(env.BlurryWeight); v != "" {
			if f, err := strconv.ParseFloat(v, 64); err == nil {
				c.BlurryWeight = f
			}
		}
	}
	if env.LowConfidenceWeight != "" {
		if v := os.Getenv(env.LowConfidenceWeight); v != "" {
			if f, err := strconv.ParseFloat(v, 64); err == nil {
				c.LowConfidenceWeight = f
			}
		}
	}
}

func (c *Config) validate() error {
	if c.MaxConcurrent < 1 {
		return fmt.Errorf("max_concurrent must be positive")
	}
	if _, err := time.ParseDuration(c.Latency); err != nil {
		return fmt.Errorf("invalid latency: %w", err)
	}
	if c.BlurryWeight < 0 || c.LowConfidenceWeight < 0 || c.BlurryWeight+c.LowConfidenceWeight > 1 {
		return fmt.Errorf("scenario weights must be non-negative and sum to at most 1")
	}
	return nil
}
