// Package infrastructure provides core service initialization shared by the
// notewise binaries: lifecycle coordination and structured logging.
package infrastructure

import (
	"io"
	"log/slog"
	"os"

	"github.com/JaimeStill/notewise/internal/config"
	"github.com/JaimeStill/notewise/pkg/lifecycle"
)

// Infrastructure holds the core systems required by all domain modules.
type Infrastructure struct {
	Lifecycle *lifecycle.Coordinator
	Logger    *slog.Logger
}

// New creates an Infrastructure logging to stderr at the configured level.
func New(cfg *config.Config) *Infrastructure {
	return NewWithWriter(cfg, os.Stderr)
}

// NewWithWriter creates an Infrastructure whose logger writes to w.
func NewWithWriter(cfg *config.Config, w io.Writer) *Infrastructure {
	logger := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: cfg.Level(),
	}))

	return &Infrastructure{
		Lifecycle: lifecycle.New(),
		Logger:    logger.With("env", cfg.Env()),
	}
}
