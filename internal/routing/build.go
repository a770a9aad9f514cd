package routing

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/JaimeStill/app-host/pkg/module"
	"github.com/JaimeStill/app-host/pkg/routes"
)

// ErrShadowed indicates an endpoint or alias sits under a prefix already owned
// by an include and would never be reached.
var ErrShadowed = errors.New("route shadowed by include")

// Build turns the table into a router. Endpoints and aliases become native
// patterns, includes become modules. Pattern conflicts are returned as errors.
func Build(table *routes.Table) (*module.Router, error) {
	router := module.NewRouter()
	bindings := table.Bindings()

	includes := make(map[string]string)
	for _, b := range bindings {
		if b.Kind() == routes.KindInclude {
			includes[routes.Clean(b.Path)] = b.Name
		}
	}

	for _, b := range bindings {
		switch b.Kind() {
		case routes.KindInclude:
			h, err := includeHandler(b)
			if err != nil {
				return nil, err
			}
			router.Mount(module.New(routes.URLPath(b.Path), h))

		case routes.KindAlias:
			if err := checkShadow(b, includes); err != nil {
				return nil, err
			}
			if target, ok := table.Lookup(b.Alias); ok && target.Kind() == routes.KindAlias {
				return nil, fmt.Errorf("%w: %q targets alias %q", routes.ErrInvalidAlias, b.Path, target.Path)
			}
			if err := register(router, b, alias(router, b.Alias)); err != nil {
				return nil, err
			}

		case routes.KindEndpoint:
			if err := checkShadow(b, includes); err != nil {
				return nil, err
			}
			if err := register(router, b, b.Handler); err != nil {
				return nil, err
			}
		}
	}

	return router, nil
}

type registrar interface {
	Handle(pattern string, handler http.Handler) error
}

func register(r registrar, b routes.Binding, h http.Handler) error {
	for _, pattern := range b.Patterns() {
		if err := r.Handle(pattern, h); err != nil {
			return fmt.Errorf("binding %q: %w", b.Name, err)
		}
	}
	return nil
}

func includeHandler(b routes.Binding) (http.Handler, error) {
	if b.Handler != nil {
		return b.Handler, nil
	}

	mux := &safeMux{ServeMux: http.NewServeMux()}
	for _, child := range b.Routes {
		if child.Kind() != routes.KindEndpoint {
			return nil, fmt.Errorf("%w: %s: nested %s %q", routes.ErrInvalidBinding, b.Name, child.Kind(), child.Path)
		}
		if err := register(mux, child, child.Handler); err != nil {
			return nil, fmt.Errorf("mount %s: %w", b.Name, err)
		}
	}
	return mux, nil
}

// alias serves the request as if it had been made to target.
func alias(router http.Handler, target string) http.Handler {
	path := routes.URLPath(target)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		req := r.Clone(r.Context())
		req.URL.Path = path
		req.URL.RawPath = ""
		req.RequestURI = ""
		req.Pattern = ""
		router.ServeHTTP(w, req)
	})
}

func checkShadow(b routes.Binding, includes map[string]string) error {
	if owner, ok := includes[firstSegment(b.Path)]; ok {
		return fmt.Errorf("%w: %q is under include %q", ErrShadowed, b.Path, owner)
	}
	return nil
}

type safeMux struct {
	*http.ServeMux
}

func (m *safeMux) Handle(pattern string, handler http.Handler) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("register %q: %v", pattern, rec)
		}
	}()
	m.ServeMux.Handle(pattern, handler)
	return nil
}
