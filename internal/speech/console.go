package speech

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

const consoleTick = 50 * time.Millisecond

// Console is a synthesizer that prints utterances and holds for the time a
// speaker would need to say them. It stands in where no speech engine exists.
type Console struct {
	w      io.Writer
	wpm    int
	mu     sync.Mutex
	paused atomic.Bool
}

// NewConsole creates a console synthesizer writing to w at the given base
// words-per-minute, scaled by each utterance's rate.
func NewConsole(w io.Writer, wpm int) *Console {
	return &Console{w: w, wpm: wpm}
}

func (c *Console) Speak(ctx context.Context, u Utterance) error {
	c.mu.Lock()
	fmt.Fprintf(c.w, "(speaking) %s\n", u.Text)
	c.mu.Unlock()

	remaining := c.duration(u)
	ticker := time.NewTicker(consoleTick)
	defer ticker.Stop()

	for remaining > 0 {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if !c.paused.Load() {
				remaining -= consoleTick
			}
		}
	}

	return nil
}

func (c *Console) Pause() {
	c.paused.Store(true)
}

func (c *Console) Resume() {
	c.paused.Store(false)
}

func (c *Console) Voices(ctx context.Context) ([]Voice, error) {
	return []Voice{{Name: "console", Language: "en-US", Default: true}}, nil
}

func (c *Console) duration(u Utterance) time.Duration {
	words := len(strings.Fields(u.Text))
	rate := u.Rate
	if rate <= 0 {
		rate = 1
	}
	perMinute := float64(c.wpm) * rate
	return time.Duration(float64(words) / perMinute * float64(time.Minute))
}
