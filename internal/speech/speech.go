// Package speech provides the speech announcer: a last-request-wins wrapper
// around a platform speech synthesizer that mirrors every announcement to a
// passive live region for non-audio assistive technology.
package speech

import (
	"context"
	"io"
	"log/slog"
)

// Voice describes a synthesizer voice.
type Voice struct {
	Name     string
	Language string
	Default  bool
}

// Utterance is a single unit of speech submitted to a synthesizer.
type Utterance struct {
	Text     string
	Rate     float64
	Pitch    float64
	Volume   float64
	Language string
	Voice    string
}

// Synthesizer is the platform speech engine.
type Synthesizer interface {
	// Speak blocks until the utterance finishes, fails, or ctx is cancelled.
	Speak(ctx context.Context, u Utterance) error
	// Pause suspends the active utterance, if any.
	Pause()
	// Resume continues a paused utterance, if any.
	Resume()
	// Voices lists the voices the engine can use. Engines may take a while to
	// report them after startup.
	Voices(ctx context.Context) ([]Voice, error)
}

// LiveRegion is a passive text surface that assistive technology reads.
type LiveRegion interface {
	Announce(text string)
}

// Settings configure how the next utterance is spoken.
type Settings struct {
	Rate     float64
	Pitch    float64
	Volume   float64
	Language string
	Voice    string
}

// SettingsPatch updates a subset of Settings. Nil fields are left unchanged.
type SettingsPatch struct {
	Rate     *float64
	Pitch    *float64
	Volume   *float64
	Language *string
	Voice    *string
}

func (s *Settings) apply(p SettingsPatch) {
	if p.Rate != nil {
		s.Rate = *p.Rate
	}
	if p.Pitch != nil {
		s.Pitch = *p.Pitch
	}
	if p.Volume != nil {
		s.Volume = *p.Volume
	}
	if p.Language != nil {
		s.Language = *p.Language
	}
	if p.Voice != nil {
		s.Voice = *p.Voice
	}
}

func (s Settings) utterance(text string) Utterance {
	return Utterance{
		Text:     text,
		Rate:     s.Rate,
		Pitch:    s.Pitch,
		Volume:   s.Volume,
		Language: s.Language,
		Voice:    s.Voice,
	}
}

// NewSynthesizer builds the engine named by cfg.Engine. EngineNone returns a
// nil Synthesizer, which the Announcer treats as speech being unavailable.
func NewSynthesizer(cfg *Config, w io.Writer, logger *slog.Logger) (Synthesizer, error) {
	switch cfg.Engine {
	case EngineNone:
		return nil, nil
	case EngineCommand:
		cmd, err := NewCommand(cfg.Command, logger)
		if err != nil {
			return nil, err
		}
		return cmd, nil
	default:
		return NewConsole(w, cfg.WordsPerMinute), nil
	}
}
