// Package identify implements the identification client that submits an encoded
// note image to the identification service and returns a normalized result.
// A mock mode resolves locally with weighted random scenarios for offline use.
package identify

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"net/http"

	"github.com/JaimeStill/notewise/internal/notes"
)

// ConfidenceThreshold is the caller-side convention for "uncertain" results.
// The client reports confidence as received and never enforces the threshold.
const ConfidenceThreshold = 0.7

// Result is the normalized outcome of a single identification call.
// When IsBlurry is true, Denomination and CurrencyCode must not be displayed.
type Result struct {
	Denomination    *string `json:"denomination"`
	CurrencyCode    *string `json:"currency_code"`
	Confidence      float64 `json:"confidence"`
	OrientationNote string  `json:"orientation_note"`
	Message         string  `json:"message"`
	IsBlurry        bool    `json:"isBlurry"`
}

// Uncertain reports whether confidence falls below ConfidenceThreshold.
func (r *Result) Uncertain() bool {
	return r.Confidence < ConfidenceThreshold
}

// Label returns "{denomination} {currencyCode}" with missing parts left empty.
func (r *Result) Label() string {
	return fmt.Sprintf("%s %s", deref(r.Denomination), deref(r.CurrencyCode))
}

// Identifier identifies the note shown in an encoded image.
type Identifier interface {
	IdentifyNote(ctx context.Context, image string) (*Result, error)
}

// New creates the identifier selected by cfg.Mode.
func New(cfg *Config, logger *slog.Logger) Identifier {
	if cfg.Mode == ModeLive {
		return NewClient(
			cfg.Endpoint,
			&http.Client{Timeout: cfg.TimeoutDuration()},
			logger,
		)
	}
	return NewMock(
		cfg.MockDelayDuration(),
		notes.NewScenarios(notes.DefaultWeights, nil),
		logger,
	)
}

func fromResponse(resp notes.Response) *Result {
	orientation := resp.OrientationNote
	if orientation == "" {
		orientation = notes.OrientationCorrect
	}
	return &Result{
		Denomination:    resp.Denomination,
		CurrencyCode:    resp.CurrencyCode,
		Confidence:      clamp(resp.Confidence),
		OrientationNote: orientation,
		Message:         resp.Message,
		IsBlurry:        resp.IsBlurry,
	}
}

// clamp bounds v to [0,1]. NaN maps to 0 so it reads as uncertain.
func clamp(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return max(0, min(v, 1))
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
