package module

import (
	"context"
	"fmt"
	"net/http"
	"strings"
)

// Router dispatches requests to mounted modules by their first path segment and
// falls back to a native ServeMux for everything else. Trailing slashes are
// trimmed before dispatch so "health/" and "health" reach the same handler.
// Handlers that care about the client's form read it with TrailingSlash.
type Router struct {
	native  *http.ServeMux
	modules map[string]*Module
	order   []string
}

// NewRouter creates an empty Router.
func NewRouter() *Router {
	return &Router{
		native:  http.NewServeMux(),
		modules: make(map[string]*Module),
	}
}

// HandleNative registers a ServeMux pattern on the fallback mux.
func (r *Router) HandleNative(pattern string, handler http.HandlerFunc) {
	r.native.HandleFunc(pattern, handler)
}

// Handle registers pattern on the fallback mux. Unlike HandleNative it reports
// pattern conflicts as an error instead of panicking.
func (r *Router) Handle(pattern string, handler http.Handler) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("register %q: %v", pattern, rec)
		}
	}()
	r.native.Handle(pattern, handler)
	return nil
}

// Mount registers a module. Mounting a second module at the same prefix replaces the first.
func (r *Router) Mount(m *Module) {
	if _, exists := r.modules[m.prefix]; !exists {
		r.order = append(r.order, m.prefix)
	}
	r.modules[m.prefix] = m
}

// Prefixes returns the mounted module prefixes in mount order.
func (r *Router) Prefixes() []string {
	return append([]string(nil), r.order...)
}

// ServeHTTP implements http.Handler.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	if len(req.URL.Path) > 1 && strings.HasSuffix(req.URL.Path, "/") {
		req = req.Clone(context.WithValue(req.Context(), trailingSlashKey{}, true))
		req.URL.Path = strings.TrimRight(req.URL.Path, "/")
		if req.URL.Path == "" {
			req.URL.Path = "/"
		}
		req.URL.RawPath = ""
	}

	if m, ok := r.modules[firstSegment(req.URL.Path)]; ok {
		m.Serve(w, req)
		return
	}

	r.native.ServeHTTP(w, req)
}

type trailingSlashKey struct{}

// TrailingSlash reports whether the client path ended in a slash before the
// Router trimmed it.
func TrailingSlash(r *http.Request) bool {
	v, _ := r.Context().Value(trailingSlashKey{}).(bool)
	return v
}

func firstSegment(path string) string {
	if len(path) <= 1 {
		return path
	}
	if i := strings.Index(path[1:], "/"); i >= 0 {
		return path[:i+1]
	}
	return path
}
