package identify

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/JaimeStill/notewise/internal/notes"
)

// Mock resolves identification locally after a fixed delay using weighted
// random scenarios. Inject a seeded Scenarios for deterministic tests.
type Mock struct {
	delay     time.Duration
	scenarios *notes.Scenarios
	mu        sync.Mutex
	logger    *slog.Logger
}

// NewMock creates a mock identifier.
func NewMock(delay time.Duration, scenarios *notes.Scenarios, logger *slog.Logger) *Mock {
	return &Mock{
		delay:     delay,
		scenarios: scenarios,
		logger:    logger.With("system", "identify", "mode", ModeMock),
	}
}

// IdentifyNote waits for the simulated latency and returns a drawn scenario.
// The image is not inspected.
func (m *Mock) IdentifyNote(ctx context.Context, image string) (*Result, error) {
	if m.delay > 0 {
		timer := time.NewTimer(m.delay)
		defer timer.Stop()

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	m.mu.Lock()
	resp, outcome := m.scenarios.Draw()
	m.mu.Unlock()

	m.logger.Debug("mock identification", "outcome", outcome, "image_bytes", len(image))
	return fromResponse(resp), nil
}
