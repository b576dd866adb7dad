// Package config loads the notewise configuration from config.toml, an
// optional environment overlay, and NOTEWISE_* environment variables.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/JaimeStill/notewise/internal/camera"
	"github.com/JaimeStill/notewise/internal/identify"
	"github.com/JaimeStill/notewise/internal/recognition"
	"github.com/JaimeStill/notewise/internal/scanner"
	"github.com/JaimeStill/notewise/internal/speech"
)

const (
	BaseConfigFile       = "config.toml"
	OverlayConfigPattern = "config.%s.toml"

	EnvNotewiseEnv             = "NOTEWISE_ENV"
	EnvNotewiseShutdownTimeout = "NOTEWISE_SHUTDOWN_TIMEOUT"
	EnvNotewiseVersion         = "NOTEWISE_VERSION"
	EnvNotewiseLogLevel        = "NOTEWISE_LOG_LEVEL"
)

var identifyEnv = &identify.Env{
	Mode:      "NOTEWISE_IDENTIFY_MODE",
	Endpoint:  "NOTEWISE_IDENTIFY_ENDPOINT",
	Timeout:   "NOTEWISE_IDENTIFY_TIMEOUT",
	MockDelay: "NOTEWISE_IDENTIFY_MOCK_DELAY",
}

var speechEnv = &speech.Env{
	Engine:          "NOTEWISE_SPEECH_ENGINE",
	Command:         "NOTEWISE_SPEECH_COMMAND",
	Rate:            "NOTEWISE_SPEECH_RATE",
	Pitch:           "NOTEWISE_SPEECH_PITCH",
	Volume:          "NOTEWISE_SPEECH_VOLUME",
	Language:        "NOTEWISE_SPEECH_LANGUAGE",
	PreferredVoices: "NOTEWISE_SPEECH_PREFERRED_VOICES",
}

var cameraEnv = &camera.Env{
	FacingMode: "NOTEWISE_CAMERA_FACING_MODE",
	Width:      "NOTEWISE_CAMERA_WIDTH",
	Height:     "NOTEWISE_CAMERA_HEIGHT",
	Source:     "NOTEWISE_CAMERA_SOURCE",
}

var scannerEnv = &scanner.Env{
	SuccessDelay:  "NOTEWISE_SCANNER_SUCCESS_DELAY",
	GreetingDelay: "NOTEWISE_SCANNER_GREETING_DELAY",
}

var recognitionEnv = &recognition.Env{
	MaxConcurrent:       "NOTEWISE_RECOGNITION_MAX_CONCURRENT",
	Latency:             "NOTEWISE_RECOGNITION_LATENCY",
	BlurryWeight:        "NOTEWISE_RECOGNITION_BLURRY_WEIGHT",
	LowConfidenceWeight: "NOTEWISE_RECOGNITION_LOW_CONFIDENCE_WEIGHT",
}

// Config is the root configuration shared by the notewise CLI and server.
type Config struct {
	Server          ServerConfig       `toml:"server"`
	API             APIConfig          `toml:"api"`
	Identify        identify.Config    `toml:"identify"`
	Speech          speech.Config      `toml:"speech"`
	Camera          camera.Config      `toml:"camera"`
	Scanner         scanner.Config     `toml:"scanner"`
	Recognition     recognition.Config `toml:"recognition"`
	ShutdownTimeout string             `toml:"shutdown_timeout"`
	Version         string             `toml:"version"`
	LogLevel        string             `toml:"log_level"`
}

// Env returns the NOTEWISE_ENV value, defaulting to "local".
func (c *Config) Env() string {
	if env := os.Getenv(EnvNotewiseEnv); env != "" {
		return env
	}
	return "local"
}

// ShutdownTimeoutDuration returns ShutdownTimeout as a time.Duration.
func (c *Config) ShutdownTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.ShutdownTimeout)
	return d
}

// Level returns LogLevel as a slog.Level.
func (c *Config) Level() slog.Level {
	var level slog.Level
	level.UnmarshalText([]byte(c.LogLevel))
	return level
}

// Load reads config.toml from the working directory. See LoadFile.
func Load() (*Config, error) {
	return LoadFile(BaseConfigFile)
}

// LoadFile reads the base config at path (if present), applies any
// environment overlay found next to it, and finalizes all values. If the base
// file does not exist, defaults and environment variables provide all
// configuration.
func LoadFile(path string) (*Config, error) {
	cfg := &Config{}

	if _, err := os.Stat(path); err == nil {
		loaded, err := load(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if overlay := overlayPath(filepath.Dir(path)); overlay != "" {
		o, err := load(overlay)
		if err != nil {
			return nil, fmt.Errorf("load overlay %s: %w", overlay, err)
		}
		cfg.Merge(o)
	}

	if err := cfg.finalize(); err != nil {
		return nil, fmt.Errorf("finalize config: %w", err)
	}

	return cfg, nil
}

// Merge overwrites non-zero fields from overlay across all sub-configs.
func (c *Config) Merge(overlay *Config) {
	if overlay.ShutdownTimeout != "" {
		c.ShutdownTimeout = overlay.ShutdownTimeout
	}
	if overlay.Version != "" {
		c.Version = overlay.Version
	}
	if overlay.LogLevel != "" {
		c.LogLevel = overlay.LogLevel
	}
	c.Server.Merge(&overlay.Server)
	c.API.Merge(&overlay.API)
	c.Identify.Merge(&overlay.Identify)
	c.Speech.Merge(&overlay.Speech)
	c.Camera.Merge(&overlay.Camera)
	c.Scanner.Merge(&overlay.Scanner)
	c.Recognition.Merge(&overlay.Recognition)
}

func (c *Config) finalize() error {
	c.loadDefaults()
	c.loadEnv()

	if err := c.validate(); err != nil {
		return err
	}
	if err := c.Server.Finalize(serverEnv); err != nil {
		return fmt.Errorf("server: %w", err)
	}
	if err := c.API.Finalize(); err != nil {
		return fmt.Errorf("api: %w", err)
	}
	if err := c.Identify.Finalize(identifyEnv); err != nil {
		return fmt.Errorf("identify: %w", err)
	}
	if err := c.Speech.Finalize(speechEnv); err != nil {
		return fmt.Errorf("speech: %w", err)
	}
	if err := c.Camera.Finalize(cameraEnv); err != nil {
		return fmt.Errorf("camera: %w", err)
	}
	if err := c.Scanner.Finalize(scannerEnv); err != nil {
		return fmt.Errorf("scanner: %w", err)
	}
	if err := c.Recognition.Finalize(recognitionEnv); err != nil {
		return fmt.Errorf("recognition: %w", err)
	}
	return nil
}

func (c *Config) loadDefaults() {
	if c.ShutdownTimeout == "" {
		c.ShutdownTimeout = "30s"
	}
	if c.Version == "" {
		c.Version = "0.1.0"
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
}

func (c *Config) loadEnv() {
	if v := os.Getenv(EnvNotewiseShutdownTimeout); v != "" {
		c.ShutdownTimeout = v
	}
	if v := os.Getenv(EnvNotewiseVersion); v != "" {
		c.Version = v
	}
	if v := os.Getenv(EnvNotewiseLogLevel); v != "" {
		c.LogLevel = v
	}
}

func (c *Config) validate() error {
	if _, err := time.ParseDuration(c.ShutdownTimeout); err != nil {
		return fmt.Errorf("invalid shutdown_timeout: %w", err)
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return fmt.Errorf("invalid log_level: %w", err)
	}
	return nil
}

func load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	return &cfg, nil
}

func overlayPath(dir string) string {
	if env := os.Getenv(EnvNotewiseEnv); env != "" {
		path := filepath.Join(dir, fmt.Sprintf(OverlayConfigPattern, env))
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}
