package main

import (
	"github.com/JaimeStill/app-host/internal/config"
	"github.com/JaimeStill/app-host/internal/infrastructure"
	"github.com/JaimeStill/app-host/pkg/csrf"
	"github.com/JaimeStill/app-host/pkg/middleware"
)

// buildMiddleware wraps the router with request ids, logging, CORS, body
// limits, and CSRF enforcement, outermost first.
func buildMiddleware(infra *infrastructure.Infrastructure, cfg *config.Config, issuer csrf.Issuer) middleware.System {
	sys := middleware.New()
	sys.Use(middleware.RequestID())
	sys.Use(middleware.Logger(infra.Logger))
	sys.Use(middleware.CORS(&cfg.CORS))
	sys.Use(middleware.BodyLimit(cfg.Server.MaxBodySizeBytes()))
	sys.Use(issuer.Protect())
	return sys
}
