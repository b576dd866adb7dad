package main

import (
	"net/http"
	"time"

	"github.com/JaimeStill/notewise/internal/config"
	"github.com/JaimeStill/notewise/internal/infrastructure"
	"github.com/JaimeStill/notewise/pkg/formatting"
)

// Server is the identification service process: infrastructure, mounted
// modules, and the HTTP listener.
type Server struct {
	infra  *infrastructure.Infrastructure
	router http.Handler
	http   *httpServer
}

func NewServer(cfg *config.Config) (*Server, error) {
	return newServer(cfg, infrastructure.New(cfg))
}

func newServer(cfg *config.Config, infra *infrastructure.Infrastructure) (*Server, error) {
	modules, err := NewModules(infra, cfg)
	if err != nil {
		return nil, err
	}

	router := buildRouter(infra)
	modules.Mount(router)

	infra.Logger.Info(
		"notewise server initialized",
		"addr", cfg.Server.Addr(),
		"version", cfg.Version,
		"modules", router.Prefixes(),
		"max_upload", formatting.FormatBytes(cfg.API.MaxUploadSizeBytes(), 0),
		"max_concurrent", cfg.Recognition.MaxConcurrent,
	)

	return &Server{
		infra:  infra,
		router: router,
		http:   newHTTPServer(&cfg.Server, router, infra.Logger),
	}, nil
}

// Start binds the listener and waits for startup hooks in the background.
func (s *Server) Start() error {
	s.infra.Logger.Info("starting service")

	if err := s.http.Start(s.infra.Lifecycle); err != nil {
		return err
	}

	go func() {
		s.infra.Lifecycle.WaitForStartup()
		s.infra.Logger.Info("all subsystems ready", "addr", s.http.Addr())
	}()

	return nil
}

// Shutdown stops the listener and drains every subsystem within timeout.
func (s *Server) Shutdown(timeout time.Duration) error {
	s.infra.Logger.Info("initiating shutdown")
	return s.infra.Lifecycle.Shutdown(timeout)
}
