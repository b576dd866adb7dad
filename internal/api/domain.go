package api

import (
	"fmt"
	"log/slog"

	"github.com/JaimeStill/notewise/internal/config"
	"github.com/JaimeStill/notewise/internal/recognition"
	"github.com/JaimeStill/notewise/pkg/lifecycle"
)

// Domain holds the systems served by the API module.
type Domain struct {
	Recognition recognition.System
}

// NewDomain creates the domain systems with a module-scoped logger.
func NewDomain(cfg *config.Config, logger *slog.Logger) *Domain {
	return &Domain{
		Recognition: recognition.New(&cfg.Recognition, logger),
	}
}

// Start registers every domain system with the lifecycle coordinator.
func (d *Domain) Start(lc *lifecycle.Coordinator) error {
	if err := d.Recognition.Start(lc); err != nil {
		return fmt.Errorf("recognition start failed: %w", err)
	}
	return nil
}
