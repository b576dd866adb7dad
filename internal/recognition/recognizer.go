package recognition

import (
	"context"
	"image"
	"sync"

	"github.com/JaimeStill/notewise/internal/notes"
)

// Recognizer identifies the note in a decoded image.
type Recognizer interface {
	Recognize(ctx context.Context, img image.Image) (notes.Response, error)
}

// QualityChecker reports whether an image is too blurry to identify.
type QualityChecker interface {
	Blurry(img image.Image) bool
}

type stubQuality struct{}

// Blurry always reports false; blur detection is left to the recognizer.
func (stubQuality) Blurry(image.Image) bool { return false }

type mockRecognizer struct {
	mu        sync.Mutex
	scenarios *notes.Scenarios
}

// NewMockRecognizer returns a recognizer that draws weighted random scenarios.
func NewMockRecognizer(scenarios *notes.Scenarios) Recognizer {
	return &mockRecognizer{scenarios: scenarios}
}

func (m *mockRecognizer) Recognize(ctx context.Context, _ image.Image) (notes.Response, error) {
	if err := ctx.Err(); err != nil {
		return notes.Response{}, err
	}

	m.mu.Lock()
	resp, _ := m.scenarios.Draw()
	m.mu.Unlock()

	return resp, nil
}
