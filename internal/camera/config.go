package camera

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds the requested stream constraints and the still-image source
// used by the file-backed device.
type Config struct {
	FacingMode string `toml:"facing_mode"`
	Width      int    `toml:"width"`
	Height     int    `toml:"height"`
	Source     string `toml:"source"`
}

// Env maps config fields to environment variable names for override injection.
type Env struct {
	FacingMode string
	Width      string
	Height     string
	Source     string
}

// Constraints returns the stream request described by the config.
func (c *Config) Constraints() Constraints {
	return Constraints{
		FacingMode: c.FacingMode,
		Width:      c.Width,
		Height:     c.Height,
	}
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
	if overlay.FacingMode != "" {
		c.FacingMode = overlay.FacingMode
	}
	if overlay.Width != 0 {
		c.Width = overlay.Width
	}
	if overlay.Height != 0 {
		c.Height = overlay.Height
	}
	if overlay.Source != "" {
		c.Source = overlay.Source
	}
}

func (c *Config) loadDefaults() {
	if c.FacingMode == "" {
		c.FacingMode = FacingEnvironment
	}
	if c.Width == 0 {
		c.Width = 1920
	}
	if c.Height == 0 {
		c.Height = 1080
	}
}

func (c *Config) loadEnv(env *Env) {
	if env.FacingMode != "" {
		if v := os.Getenv(env.FacingMode); v != "" {
			c.FacingMode = v
		}
	}
	if env.Width != "" {
		if v := os.Getenv(env.Width); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				c.Width = n
			}
		}
	}
	if env.Height != "" {
		if v := os.Getenv(env.Height); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				c.Height = n
			}
		}
	}
	if env.Source != "" {
		if v := os.Getenv(env.Source); v != "" {
			c.Source = v
		}
	}
}

func (c *Config) validate() error {
	if c.FacingMode != FacingEnvironment && c.FacingMode != FacingUser {
		return fmt.Errorf("invalid facing_mode: %q", c.FacingMode)
	}
	if c.Width < 1 || c.Height < 1 {
		return fmt.Errorf("invalid resolution: %dx%d", c.Width, c.Height)
	}
	return nil
}
