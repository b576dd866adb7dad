// Package api assembles the API module with the recognition system, the
// OpenAPI document, and route registration.
package api

import (
	"fmt"
	"net/http"

	"github.com/JaimeStill/notewise/internal/config"
	"github.com/JaimeStill/notewise/internal/infrastructure"
	"github.com/JaimeStill/notewise/pkg/middleware"
	"github.com/JaimeStill/notewise/pkg/module"
	"github.com/JaimeStill/notewise/pkg/openapi"
)

// NewModule creates the API module with all domain handlers and middleware.
// Domain systems register their lifecycle hooks here.
func NewModule(cfg *config.Config, infra *infrastructure.Infrastructure) (*module.Module, error) {
	logger := infra.Logger.With("module", "api")

	domain := NewDomain(cfg, logger)
	if err := domain.Start(infra.Lifecycle); err != nil {
		return nil, err
	}

	specBytes, err := openapi.MarshalJSON(NewSpec(cfg))
	if err != nil {
		return nil, fmt.Errorf("openapi marshal failed: %w", err)
	}

	mux := http.NewServeMux()
	for _, pattern := range registerRoutes(mux, domain, cfg, specBytes) {
		logger.Debug("route registered", "module", cfg.API.BasePath, "pattern", pattern)
	}

	m := module.New(cfg.API.BasePath, mux)
	m.Use(middleware.CORS(&cfg.API.CORS))
	m.Use(middleware.Logger(logger))
	m.Use(middleware.Recover(logger))

	return m, nil
}
