package config

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"time"
)

// ServerEnv maps server config fields to environment variable names.
type ServerEnv struct {
	Host              string
	Port              string
	ReadTimeout       string
	ReadHeaderTimeout string
	WriteTimeout      string
	IdleTimeout       string
	ShutdownTimeout   string
}

var serverEnv = &ServerEnv{
	Host:              "NOTEWISE_SERVER_HOST",
	Port:              "NOTEWISE_SERVER_PORT",
	ReadTimeout:       "NOTEWISE_SERVER_READ_TIMEOUT",
	ReadHeaderTimeout: "NOTEWISE_SERVER_READ_HEADER_TIMEOUT",
	WriteTimeout:      "NOTEWISE_SERVER_WRITE_TIMEOUT",
	IdleTimeout:       "NOTEWISE_SERVER_IDLE_TIMEOUT",
	ShutdownTimeout:   "NOTEWISE_SERVER_SHUTDOWN_TIMEOUT",
}

// ServerConfig holds HTTP server parameters. Timeouts are duration strings.
type ServerConfig struct {
	Host              string `toml:"host"`
	Port              int    `toml:"port"`
	ReadTimeout       string `toml:"read_timeout"`
	ReadHeaderTimeout string `toml:"read_header_timeout"`
	WriteTimeout      string `toml:"write_timeout"`
	IdleTimeout       string `toml:"idle_timeout"`
	ShutdownTimeout   string `toml:"shutdown_timeout"`
}

// Addr returns the host:port listen address.
func (c *ServerConfig) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

func (c *ServerConfig) ReadTimeoutDuration() time.Duration {
	return duration(c.ReadTimeout)
}

func (c *ServerConfig) ReadHeaderTimeoutDuration() time.Duration {
	return duration(c.ReadHeaderTimeout)
}

func (c *ServerConfig) WriteTimeoutDuration() time.Duration {
	return duration(c.WriteTimeout)
}

func (c *ServerConfig) IdleTimeoutDuration() time.Duration {
	return duration(c.IdleTimeout)
}

func (c *ServerConfig) ShutdownTimeoutDuration() time.Duration {
	return duration(c.ShutdownTimeout)
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *ServerConfig) Finalize(env *ServerEnv) error {
	c.loadDefaults()
	if env != nil {
		c.loadEnv(env)
	}
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *ServerConfig) Merge(overlay *ServerConfig) {
	if overlay.Host != "" {
		c.Host = overlay.Host
	}
	if overlay.Port != 0 {
		c.Port = overlay.Port
	}
	for dst, src := range c.timeouts(overlay) {
		if *src != "" {
			*dst = *src
		}
	}
}

// timeouts pairs each timeout field of c with the same field of o.
func (c *ServerConfig) timeouts(o *ServerConfig) map[*string]*string {
	return map[*string]*string{
		&c.ReadTimeout:       &o.ReadTimeout,
		&c.ReadHeaderTimeout: &o.ReadHeaderTimeout,
		&c.WriteTimeout:      &o.WriteTimeout,
		&c.IdleTimeout:       &o.IdleTimeout,
		&c.ShutdownTimeout:   &o.ShutdownTimeout,
	}
}

func (c *ServerConfig) loadDefaults() {
	if c.Host == "" {
		c.Host = "0.0.0.0"
	}
	if c.Port == 0 {
		c.Port = 8080
	}
	c.Merge(&ServerConfig{
		ReadTimeout:       orDefault(c.ReadTimeout, "1m"),
		ReadHeaderTimeout: orDefault(c.ReadHeaderTimeout, "10s"),
		WriteTimeout:      orDefault(c.WriteTimeout, "2m"),
		IdleTimeout:       orDefault(c.IdleTimeout, "2m"),
		ShutdownTimeout:   orDefault(c.ShutdownTimeout, "30s"),
	})
}

func (c *ServerConfig) loadEnv(env *ServerEnv) {
	if v := os.Getenv(env.Host); v != "" {
		c.Host = v
	}
	if v := os.Getenv(env.Port); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.Port = port
		}
	}
	c.Merge(&ServerConfig{
		ReadTimeout:       os.Getenv(env.ReadTimeout),
		ReadHeaderTimeout: os.Getenv(env.ReadHeaderTimeout),
		WriteTimeout:      os.Getenv(env.WriteTimeout),
		IdleTimeout:       os.Getenv(env.IdleTimeout),
		ShutdownTimeout:   os.Getenv(env.ShutdownTimeout),
	})
}

func (c *ServerConfig) validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Port)
	}

	fields := []struct {
		name  string
		value string
	}{
		{"read_timeout", c.ReadTimeout},
		{"read_header_timeout", c.ReadHeaderTimeout},
		{"write_timeout", c.WriteTimeout},
		{"idle_timeout", c.IdleTimeout},
		{"shutdown_timeout", c.ShutdownTimeout},
	}
	for _, f := range fields {
		d, err := time.ParseDuration(f.value)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", f.name, err)
		}
		if d < 0 {
			return fmt.Errorf("invalid %s: must not be negative", f.name)
		}
	}
	return nil
}

func duration(s string) time.Duration {
	d, _ := time.ParseDuration(s)
	return d
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
