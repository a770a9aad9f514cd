package main

import (
	"net/http"
	"os"
	"time"

	_ "github.com/JaimeStill/app-host/adapters"
	"github.com/JaimeStill/app-host/internal/config"
	"github.com/JaimeStill/app-host/internal/infrastructure"
	"github.com/JaimeStill/app-host/internal/server"
	"github.com/JaimeStill/app-host/pkg/csrf"
)

// Server coordinates the lifecycle of all subsystems.
type Server struct {
	cfg     *config.Config
	infra   *infrastructure.Infrastructure
	modules *Modules
	handler http.Handler
	http    server.System
}

// NewServer assembles the route table and wires the HTTP stack. Any namespace
// resolution failure aborts construction.
func NewServer(cfg *config.Config) (*Server, error) {
	infra, err := infrastructure.New(cfg, os.Stdout)
	if err != nil {
		return nil, err
	}

	issuer := csrf.New(&cfg.CSRF, infra.Logger)

	modules, err := NewModules(infra, cfg, issuer)
	if err != nil {
		return nil, err
	}

	router := modules.Router()
	handler := buildMiddleware(infra, cfg, issuer).Apply(router)

	infra.Logger.Info(
		"server initialized",
		"addr", cfg.Server.Addr(),
		"version", cfg.Version,
		"prefixes", router.Prefixes(),
	)

	return &Server{
		cfg:     cfg,
		infra:   infra,
		modules: modules,
		handler: handler,
		http:    server.New(&cfg.Server, handler, cfg.ShutdownTimeoutDuration(), infra.Logger),
	}, nil
}

// Start connects infrastructure, applies namespace migrations, and begins
// serving. Readiness is reported once every startup hook has run.
func (s *Server) Start() error {
	s.infra.Logger.Info("starting server")

	if err := s.infra.Start(); err != nil {
		return err
	}

	if err := migrate(s.infra, &s.cfg.Database, s.modules.Assembler.Resolutions()); err != nil {
		return err
	}

	if err := s.http.Start(s.infra.Lifecycle); err != nil {
		return err
	}

	go func() {
		s.infra.Lifecycle.WaitForStartup()
		s.infra.Logger.Info("all subsystems ready")
	}()

	return nil
}

// Shutdown stops every subsystem within timeout.
func (s *Server) Shutdown(timeout time.Duration) error {
	s.infra.Logger.Info("initiating shutdown")
	return s.infra.Lifecycle.Shutdown(timeout)
}
