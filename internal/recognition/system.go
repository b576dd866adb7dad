// Package recognition implements the note identification service behind
// POST /api/identify.
package recognition

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"golang.org/x/sync/semaphore"

	"github.com/JaimeStill/notewise/internal/capture"
	"github.com/JaimeStill/notewise/internal/notes"
	"github.com/JaimeStill/notewise/pkg/lifecycle"
)

// System defines the public contract for note recognition.
type System interface {
	Handler(maxUploadSize int64) *Handler

	// Identify decodes an image data URI and identifies the note it shows.
	Identify(ctx context.Context, dataURI string) (*notes.Response, error)

	// Ready reports false once the system has begun draining for shutdown.
	Ready() bool

	// Start registers startup and shutdown hooks with the lifecycle coordinator.
	Start(lc *lifecycle.Coordinator) error
}

type system struct {
	recognizer Recognizer
	quality    QualityChecker
	sem        *semaphore.Weighted
	capacity   int64
	latency    time.Duration
	draining   atomic.Bool
	logger     *slog.Logger
}

// New creates a recognition system backed by the mock recognizer.
func New(cfg *Config, logger *slog.Logger) System {
	weights := notes.Weights{
		Blurry:        cfg.BlurryWeight,
		LowConfidence: cfg.LowConfidenceWeight,
	}
	return NewWithRecognizer(cfg, NewMockRecognizer(notes.NewScenarios(weights, nil)), logger)
}

// NewWithRecognizer creates a recognition system around an existing recognizer.
func NewWithRecognizer(cfg *Config, r Recognizer, logger *slog.Logger) System {
	return &system{
		recognizer: r,
		quality:    stubQuality{},
		sem:        semaphore.NewWeighted(int64(cfg.MaxConcurrent)),
		capacity:   int64(cfg.MaxConcurrent),
		latency:    cfg.LatencyDuration(),
		logger:     logger.With("system", "recognition"),
	}
}

func (s *system) Handler(maxUploadSize int64) *Handler {
	return NewHandler(s, s.logger, maxUploadSize)
}

func (s *system) Identify(ctx context.Context, dataURI string) (*notes.Response, error) {
	if dataURI == "" {
		return nil, ErrMissingImage
	}

	if s.draining.Load() || !s.sem.TryAcquire(1) {
		return nil, ErrBusy
	}
	defer s.sem.Release(1)

	uri, err := capture.ParseDataURI(dataURI)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidImage, err)
	}
	if !uri.IsImage() {
		return nil, fmt.Errorf("%w: media type %q", ErrInvalidImage, uri.MediaType)
	}

	img, err := capture.Decode(bytes.NewReader(uri.Data))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidImage, err)
	}

	if s.latency > 0 {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(s.latency):
		}
	}

	if s.quality.Blurry(img) {
		resp := notes.Blurry()
		return &resp, nil
	}

	resp, err := s.recognizer.Recognize(ctx, img)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRecognition, err)
	}

	s.logger.Debug(
		"note recognized",
		"bounds", img.Bounds().String(),
		"confidence", resp.Confidence,
		"blurry", resp.IsBlurry,
	)

	return &resp, nil
}

func (s *system) Ready() bool {
	return !s.draining.Load()
}

func (s *system) Start(lc *lifecycle.Coordinator) error {
	s.logger.Info("starting recognizer", "max_concurrent", s.capacity)
	lc.Register("recognition", s)

	lc.OnStartup(func() {
		s.logger.Info("recognizer ready")
	})

	lc.OnShutdown(func() {
		<-lc.Context().Done()
		s.draining.Store(true)
		s.logger.Info("draining in-flight recognitions")

		if err := s.sem.Acquire(context.Background(), s.capacity); err != nil {
			s.logger.Error("recognizer drain failed", "error", err)
			return
		}
		s.sem.Release(s.capacity)

		s.logger.Info("recognizer stopped")
	})

	return nil
}
