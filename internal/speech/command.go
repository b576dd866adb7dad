package speech

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"sync"
)

const (
	baseWordsPerMinute = 175
	basePitch          = 50
	baseAmplitude      = 100
)

// Command drives an espeak-ng compatible executable, one process per utterance.
// Cancelling the utterance context kills the process.
type Command struct {
	path   string
	logger *slog.Logger

	mu   sync.Mutex
	proc *os.Process
}

// NewCommand resolves the executable on PATH.
func NewCommand(name string, logger *slog.Logger) (*Command, error) {
	path, err := exec.LookPath(name)
	if err != nil {
		return nil, fmt.Errorf("speech command %s: %w", name, err)
	}
	return &Command{
		path:   path,
		logger: logger.With("system", "speech", "engine", name),
	}, nil
}

func (c *Command) Speak(ctx context.Context, u Utterance) error {
	cmd := exec.CommandContext(ctx, c.path, speakArgs(u)...)

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start speech command: %w", err)
	}

	c.mu.Lock()
	c.proc = cmd.Process
	c.mu.Unlock()

	err := cmd.Wait()

	c.mu.Lock()
	c.proc = nil
	c.mu.Unlock()

	if ctx.Err() != nil {
		return ctx.Err()
	}
	if err != nil {
		return fmt.Errorf("speech command: %w", err)
	}
	return nil
}

func (c *Command) Pause() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.proc != nil {
		if err := suspend(c.proc); err != nil {
			c.logger.Warn("pause failed", "error", err)
		}
	}
}

func (c *Command) Resume() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.proc != nil {
		if err := resume(c.proc); err != nil {
			c.logger.Warn("resume failed", "error", err)
		}
	}
}

// Voices parses the engine's voice table.
func (c *Command) Voices(ctx context.Context) ([]Voice, error) {
	out, err := exec.CommandContext(ctx, c.path, "--voices").Output()
	if err != nil {
		return nil, fmt.Errorf("list voices: %w", err)
	}
	return parseVoices(out), nil
}

func speakArgs(u Utterance) []string {
	args := []string{
		"-s", strconv.Itoa(int(baseWordsPerMinute * u.Rate)),
		"-p", strconv.Itoa(min(int(basePitch*u.Pitch), 99)),
		"-a", strconv.Itoa(int(baseAmplitude * u.Volume)),
	}

	switch {
	case u.Voice != "":
		args = append(args, "-v", u.Voice)
	case u.Language != "":
		args = append(args, "-v", strings.ToLower(u.Language))
	}

	return append(args, "--", u.Text)
}

// parseVoices reads the "Pty Language Age/Gender VoiceName File ..." table.
func parseVoices(out []byte) []Voice {
	var voices []Voice
	scanner := bufio.NewScanner(bytes.NewReader(out))

	header := true
	for scanner.Scan() {
		if header {
			header = false
			continue
		}
		fields := strings.Fields(scanner.Text())
		if len(fields) < 4 {
			continue
		}
		voices = append(voices, Voice{
			Name:     fields[3],
			Language: fields[1],
		})
	}

	return voices
}
