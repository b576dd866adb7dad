package speech

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Synthesizer engines.
const (
	EngineConsole = "console"
	EngineCommand = "command"
	EngineNone    = "none"
)

// Config holds announcer defaults and synthesizer selection. Pitch and Volume
// are pointers because zero is a valid setting (mute, lowest pitch).
type Config struct {
	Engine          string   `toml:"engine"`
	Command         string   `toml:"command"`
	Rate            float64  `toml:"rate"`
	Pitch           *float64 `toml:"pitch"`
	Volume          *float64 `toml:"volume"`
	Language        string   `toml:"language"`
	PreferredVoices []string `toml:"preferred_voices"`
	SequencePause   string   `toml:"sequence_pause"`
	WordsPerMinute  int      `toml:"words_per_minute"`
}

// Env maps config fields to environment variable names for override injection.
type Env struct {
	Engine          string
	Command         string
	Rate            string
	Pitch           string
	Volume          string
	Language        string
	PreferredVoices string
}

// Settings returns the initial announcer settings.
func (c *Config) Settings() Settings {
	return Settings{
		Rate:     c.Rate,
		Pitch:    deref(c.Pitch),
		Volume:   deref(c.Volume),
		Language: c.Language,
	}
}

// SequencePauseDuration returns SequencePause as a time.Duration.
func (c *Config) SequencePauseDuration() time.Duration {
	d, _ := time.ParseDuration(c.SequencePause)
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
	if overlay.Engine != "" {
		c.Engine = overlay.Engine
	}
	if overlay.Command != "" {
		c.Command = overlay.Command
	}
	if overlay.Rate != 0 {
		c.Rate = overlay.Rate
	}
	if overlay.Pitch != nil {
		c.Pitch = overlay.Pitch
	}
	if overlay.Volume != nil {
		c.Volume = overlay.Volume
	}
	if overlay.Language != "" {
		c.Language = overlay.Language
	}
	if overlay.PreferredVoices != nil {
		c.PreferredVoices = overlay.PreferredVoices
	}
	if overlay.SequencePause != "" {
		c.SequencePause = overlay.SequencePause
	}
	if overlay.WordsPerMinute != 0 {
		c.WordsPerMinute = overlay.WordsPerMinute
	}
}

func (c *Config) loadDefaults() {
	if c.Engine == "" {
		c.Engine = EngineConsole
	}
	if c.Command == "" {
		c.Command = "espeak-ng"
	}
	if c.Rate == 0 {
		c.Rate = 0.9
	}
	if c.Pitch == nil {
		c.Pitch = ptr(1.0)
	}
	if c.Volume == nil {
		c.Volume = ptr(1.0)
	}
	if c.Language == "" {
		c.Language = "en-US"
	}
	if c.PreferredVoices == nil {
		c.PreferredVoices = []string{"Google US English", "Microsoft David", "Alex"}
	}
	if c.SequencePause == "" {
		c.SequencePause = "300ms"
	}
	if c.WordsPerMinute == 0 {
		c.WordsPerMinute = 160
	}
}

func (c *Config) loadEnv(env *Env) {
	if env.Engine != "" {
		if v := os.Getenv(env.Engine); v != "" {
			c.Engine = v
		}
	}
	if env.Command != "" {
		if v := os.Getenv(env.Command); v != "" {
			c.Command = v
		}
	}
	if env.Rate != "" {
		if v := os.Getenv(env.Rate); v != "" {
			if f, err := strconv.ParseFloat(v, 64); err == nil {
				c.Rate = f
			}
		}
	}
	if env.Pitch != "" {
		if v := os.Getenv(env.Pitch); v != "" {
			if f, err := strconv.ParseFloat(v, 64); err == nil {
				c.Pitch = &f
			}
		}
	}
	if env.Volume != "" {
		if v := os.Getenv(env.Volume); v != "" {
			if f, err := strconv.ParseFloat(v, 64); err == nil {
				c.Volume = &f
			}
		}
	}
	if env.Language != "" {
		if v := os.Getenv(env.Language); v != "" {
			c.Language = v
		}
	}
	if env.PreferredVoices != "" {
		if v := os.Getenv(env.PreferredVoices); v != "" {
			voices := strings.Split(v, ",")
			c.PreferredVoices = make([]string, 0, len(voices))
			for _, voice := range voices {
				if trimmed := strings.TrimSpace(voice); trimmed != "" {
					c.PreferredVoices = append(c.PreferredVoices, trimmed)
				}
			}
		}
	}
}

func (c *Config) validate() error {
	switch c.Engine {
	case EngineConsole, EngineCommand, EngineNone:
	default:
		return fmt.Errorf("invalid engine: %q", c.Engine)
	}
	if c.Rate < 0.1 || c.Rate > 10 {
		return fmt.Errorf("rate out of range [0.1, 10]: %v", c.Rate)
	}
	if p := deref(c.Pitch); p < 0 || p > 2 {
		return fmt.Errorf("pitch out of range [0, 2]: %v", p)
	}
	if v := deref(c.Volume); v < 0 || v > 1 {
		return fmt.Errorf("volume out of range [0, 1]: %v", v)
	}
	if _, err := time.ParseDuration(c.SequencePause); err != nil {
		return fmt.Errorf("invalid sequence_pause: %w", err)
	}
	if c.WordsPerMinute < 1 {
		return fmt.Errorf("invalid words_per_minute: %d", c.WordsPerMinute)
	}
	return nil
}

func ptr(f float64) *float64 {
	return &f
}

func deref(f *float64) float64 {
	if f == nil {
		return 0
	}
	return *f
}
