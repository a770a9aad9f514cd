package main

import (
	"fmt"
	"net/http"

	"github.com/JaimeStill/app-host/internal/admin"
	"github.com/JaimeStill/app-host/internal/config"
	"github.com/JaimeStill/app-host/internal/infrastructure"
	"github.com/JaimeStill/app-host/internal/routing"
	"github.com/JaimeStill/app-host/pkg/csrf"
	"github.com/JaimeStill/app-host/pkg/module"
	"github.com/JaimeStill/app-host/pkg/routes"
)

// Modules holds the assembled route table and the router serving it.
type Modules struct {
	Assembler *routing.Assembler
	Admin     *admin.Handler
	Table     *routes.Table
	router    *module.Router
}

func NewModules(infra *infrastructure.Infrastructure, cfg *config.Config, issuer csrf.Issuer) (*Modules, error) {
	asm := routing.NewAssembler(cfg.Namespaces.BaseDir, cfg.Namespaces.Exclude, infra.Logger)
	adm := admin.NewHandler(asm, routing.ServiceName, cfg.Version, &cfg.OpenAPI, infra.Logger)

	table, err := asm.Assemble(routing.Static{
		CSRF:            issuer,
		Admin:           adm,
		CertificatePath: cfg.Legacy.CertificatePath,
	})
	if err != nil {
		return nil, fmt.Errorf("route assembly failed: %w", err)
	}

	router, err := routing.Build(table)
	if err != nil {
		return nil, fmt.Errorf("router build failed: %w", err)
	}

	router.HandleNative("GET /readyz", func(w http.ResponseWriter, r *http.Request) {
		if !infra.Lifecycle.Ready() {
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte("NOT READY"))
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("READY"))
	})

	return &Modules{
		Assembler: asm,
		Admin:     adm,
		Table:     table,
		router:    router,
	}, nil
}

func (m *Modules) Router() *module.Router {
	return m.router
}
