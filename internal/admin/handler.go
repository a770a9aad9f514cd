package admin

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/JaimeStill/app-host/pkg/handlers"
	"github.com/JaimeStill/app-host/pkg/namespace"
	"github.com/JaimeStill/app-host/pkg/openapi"
	"github.com/JaimeStill/app-host/pkg/routes"
)

// Handler serves the admin endpoints relative to its mount point.
type Handler struct {
	index   Index
	service string
	version string
	docs    *openapi.Config
	logger  *slog.Logger
	mux     *http.ServeMux
}

// NewHandler creates the admin handler. A nil docs config uses the document defaults.
func NewHandler(index Index, service, version string, docs *openapi.Config, logger *slog.Logger) *Handler {
	if docs == nil {
		docs = &openapi.Config{}
		docs.Finalize(nil)
	}

	h := &Handler{
		index:   index,
		service: service,
		version: version,
		docs:    docs,
		logger:  logger.With("system", "admin"),
		mux:     http.NewServeMux(),
	}

	for _, b := range h.Routes() {
		for _, pattern := range b.Patterns() {
			h.mux.Handle(pattern, b.Handler)
		}
	}
	return h
}

// Routes lists the admin endpoints relative to the admin mount point.
func (h *Handler) Routes() []routes.Binding {
	return []routes.Binding{
		routes.Endpoint("", "overview", http.HandlerFunc(h.Overview), http.MethodGet),
		routes.Endpoint("routes/", "routes", http.HandlerFunc(h.ListRoutes), http.MethodGet),
		routes.Endpoint("namespaces/", "namespaces", http.HandlerFunc(h.ListNamespaces), http.MethodGet),
		routes.Endpoint("handlers/", "handlers", http.HandlerFunc(h.ListHandlers), http.MethodGet),
		routes.Endpoint("openapi/", "openapi", http.HandlerFunc(h.OpenAPI), http.MethodGet),
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

// Overview reports service identity and table counts.
func (h *Handler) Overview(w http.ResponseWriter, r *http.Request) {
	table, err := h.table()
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	resolutions := h.index.Resolutions()
	handlers.RespondJSON(w, http.StatusOK, Overview{
		Service:    h.service,
		Version:    h.version,
		Routes:     len(table.Entries()),
		Namespaces: len(resolutions),
		Mounted:    mountedCount(resolutions),
	})
}

// ListRoutes returns the flattened table entries.
func (h *Handler) ListRoutes(w http.ResponseWriter, r *http.Request) {
	table, err := h.table()
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, table.Entries())
}

// ListNamespaces returns every discovered namespace, mounted or not.
func (h *Handler) ListNamespaces(w http.ResponseWriter, r *http.Request) {
	if _, err := h.table(); err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, Namespaces(h.index.Resolutions()))
}

// ListHandlers returns the registered handler kinds.
func (h *Handler) ListHandlers(w http.ResponseWriter, r *http.Request) {
	handlers.RespondJSON(w, http.StatusOK, namespace.List())
}

// OpenAPI describes the assembled table as an OpenAPI document.
func (h *Handler) OpenAPI(w http.ResponseWriter, r *http.Request) {
	table, err := h.table()
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, openapi.Generate(h.docs, h.version, table.Entries()))
}

func (h *Handler) table() (*routes.Table, error) {
	table := h.index.Table()
	if table == nil {
		return nil, fmt.Errorf("admin: %w", ErrNotAssembled)
	}
	return table, nil
}
