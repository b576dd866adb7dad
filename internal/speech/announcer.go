package speech

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"
)

// Announcer serializes speech so that at most one utterance is audible.
// A new Speak cancels the previous utterance; the cancelled utterance never
// reports completion.
type Announcer struct {
	synth     Synthesizer
	region    LiveRegion
	pause     time.Duration
	preferred []string
	logger    *slog.Logger

	mu       sync.Mutex
	settings Settings
	seq      uint64
	cancel   context.CancelFunc
	speaking bool
	paused   bool
}

// New creates an Announcer. A nil synth means speech is unavailable: Speak
// completes immediately and only the live region is updated.
func New(synth Synthesizer, region LiveRegion, cfg *Config, logger *slog.Logger) *Announcer {
	return &Announcer{
		synth:     synth,
		region:    region,
		pause:     cfg.SequencePauseDuration(),
		preferred: cfg.PreferredVoices,
		logger:    logger.With("system", "speech"),
		settings:  cfg.Settings(),
	}
}

// Available reports whether a synthesizer is present.
func (a *Announcer) Available() bool {
	return a.synth != nil
}

// Speaking reports whether an utterance is in flight.
func (a *Announcer) Speaking() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.speaking
}

// Settings returns a copy of the current settings.
func (a *Announcer) Settings() Settings {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.settings
}

// Speak cancels any current utterance and speaks text. onEnd, if non-nil, runs
// exactly once when the utterance completes or fails. Empty text or a missing
// synthesizer calls onEnd synchronously.
func (a *Announcer) Speak(text string, onEnd func()) {
	a.start(text, onEnd)
}

// SpeakSequence speaks each text to completion in order, pausing between
// utterances, then calls onComplete. Any other Speak or Cancel stops the sequence.
func (a *Announcer) SpeakSequence(texts []string, onComplete func()) {
	if !a.Available() || len(texts) == 0 {
		if onComplete != nil {
			onComplete()
		}
		return
	}

	var next func(i int)
	next = func(i int) {
		if i >= len(texts) {
			if onComplete != nil {
				onComplete()
			}
			return
		}

		a.start(texts[i], func() {
			id := a.current()
			time.AfterFunc(a.pause, func() {
				if a.current() != id {
					return
				}
				next(i + 1)
			})
		})
	}

	next(0)
}

// Cancel stops the current utterance and releases a paused engine. Safe to
// call when idle.
func (a *Announcer) Cancel() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.cancelLocked()
}

// Pause suspends the current utterance. Safe to call when idle or paused.
func (a *Announcer) Pause() {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.synth == nil || !a.speaking || a.paused {
		return
	}
	a.synth.Pause()
	a.paused = true
}

// Resume continues a paused utterance. Safe to call when not paused.
func (a *Announcer) Resume() {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.synth == nil || !a.paused {
		return
	}
	a.synth.Resume()
	a.paused = false
}

// UpdateSettings merges p into the current settings. In-flight speech is unaffected.
func (a *Announcer) UpdateSettings(p SettingsPatch) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.settings.apply(p)
}

// LoadVoices queries the synthesizer for voices and selects the first voice
// whose name contains an entry of the preference list, in preference order.
// Without a match the engine default stays in effect. A voice already set
// through UpdateSettings is kept.
func (a *Announcer) LoadVoices(ctx context.Context) error {
	if a.synth == nil {
		return nil
	}

	voices, err := a.synth.Voices(ctx)
	if err != nil {
		return err
	}

	a.logger.Info("voices loaded", "count", len(voices))

	for _, pref := range a.preferred {
		for _, v := range voices {
			if strings.Contains(v.Name, pref) {
				a.mu.Lock()
				chosen := a.settings.Voice
				if chosen == "" {
					a.settings.Voice = v.Name
				}
				a.mu.Unlock()

				if chosen != "" {
					a.logger.Debug("voice kept", "voice", chosen)
					return nil
				}
				a.logger.Info("voice selected", "voice", v.Name)
				return nil
			}
		}
	}

	return nil
}

// Announce mirrors text to the live region without speaking.
func (a *Announcer) Announce(text string) {
	if a.region != nil {
		a.region.Announce(text)
	}
}

// AnnounceAndSpeak mirrors text to the live region and speaks it.
func (a *Announcer) AnnounceAndSpeak(text string) {
	a.Announce(text)
	a.Speak(text, nil)
}

func (a *Announcer) start(text string, onEnd func()) {
	if a.synth == nil || text == "" {
		a.logger.Debug("speech skipped", "text", text, "available", a.synth != nil)
		if onEnd != nil {
			onEnd()
		}
		return
	}

	a.mu.Lock()
	a.cancelLocked()
	a.seq++
	id := a.seq
	ctx, cancel := context.WithCancel(context.Background())
	a.cancel = cancel
	a.speaking = true
	a.paused = false
	u := a.settings.utterance(text)
	a.mu.Unlock()

	go a.run(ctx, cancel, id, u, onEnd)
}

func (a *Announcer) run(ctx context.Context, cancel context.CancelFunc, id uint64, u Utterance, onEnd func()) {
	defer cancel()

	a.logger.Debug("speech started", "text", u.Text)
	err := a.synth.Speak(ctx, u)

	a.mu.Lock()
	if a.seq != id {
		a.mu.Unlock()
		return
	}
	if a.paused {
		a.synth.Resume()
	}
	a.speaking = false
	a.paused = false
	a.cancel = nil
	a.mu.Unlock()

	if err != nil && !errors.Is(err, context.Canceled) {
		a.logger.Error("speech error", "error", err)
	} else {
		a.logger.Debug("speech ended")
	}

	if onEnd != nil {
		onEnd()
	}
}

func (a *Announcer) current() uint64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.seq
}

func (a *Announcer) cancelLocked() {
	if a.paused {
		a.synth.Resume()
	}
	if a.cancel != nil {
		a.cancel()
		a.cancel = nil
	}
	a.seq++
	a.speaking = false
	a.paused = false
}
