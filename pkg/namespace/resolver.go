package namespace

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/JaimeStill/app-host/pkg/routes"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Status distinguishes a namespace that exposes routes from one that does not.
type Status int

const (
	// Absent means the namespace has no routing definition. It is tolerated.
	Absent Status = iota

	// Found means the routing definition was loaded and its routes built.
	Found
)

func (s Status) String() string {
	if s == Found {
		return "found"
	}
	return "absent"
}

// Resolution is the outcome of resolving a single namespace.
type Resolution struct {
	Status    Status
	Namespace Namespace
	Routes    []routes.Binding
}

// Resolver loads namespaces from a base directory.
type Resolver struct {
	base   string
	logger *slog.Logger
}

// NewResolver creates a Resolver for namespaces under base.
func NewResolver(base string, logger *slog.Logger) *Resolver {
	return &Resolver{
		base:   base,
		logger: logger.With("system", "namespace"),
	}
}

// Base returns the directory namespaces are resolved from.
func (r *Resolver) Base() string {
	return r.base
}

// Resolve loads the named namespace. A missing routing definition yields an
// Absent resolution and a nil error. Every other failure is returned as an error
// and the resolution must not be used.
func (r *Resolver) Resolve(name string) (Resolution, error) {
	dir := filepath.Join(r.base, name)

	ns, err := readMarker(dir)
	if err != nil {
		return Resolution{}, fmt.Errorf("%w: %s: %s: %v", ErrMalformed, name, MarkerFile, err)
	}
	ns.Name = name
	ns.Dir = dir

	if err := validate.Struct(ns); err != nil {
		return Resolution{}, fmt.Errorf("%w: %s: %s: %v", ErrMalformed, name, MarkerFile, err)
	}

	data, err := os.ReadFile(filepath.Join(dir, RoutesFile))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			r.logger.Debug("namespace has no routing definition", "namespace", name)
			return Resolution{Status: Absent, Namespace: ns}, nil
		}
		return Resolution{}, fmt.Errorf("read %s routing definition: %w", name, err)
	}

	var m manifest
	if err := decodeStrict(data, &m); err != nil {
		return Resolution{}, fmt.Errorf("%w: %s: %s: %v", ErrMalformed, name, RoutesFile, err)
	}
	if m.Routes == nil {
		return Resolution{}, fmt.Errorf("%w: %s: %s does not define routes", ErrMalformed, name, RoutesFile)
	}

	bindings, err := r.build(ns, *m.Routes)
	if err != nil {
		return Resolution{}, err
	}

	r.logger.Debug("namespace resolved", "namespace", name, "routes", len(bindings))

	return Resolution{
		Status:    Found,
		Namespace: ns,
		Routes:    bindings,
	}, nil
}

func (r *Resolver) build(ns Namespace, defs []Route) ([]routes.Binding, error) {
	bindings := make([]routes.Binding, 0, len(defs))
	seen := make(map[string]int)

	for i, def := range defs {
		def.normalize()

		if err := validate.Struct(def); err != nil {
			return nil, fmt.Errorf("%w: %s: route %d: %v", ErrMalformed, ns.Name, i, err)
		}

		factory, ok := Get(def.Handler)
		if !ok {
			return nil, fmt.Errorf("%w: %s: route %d: %w %q", ErrMalformed, ns.Name, i, ErrUnknownHandler, def.Handler)
		}

		handler, err := factory(ns, def)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: route %d (%s): %v", ErrMalformed, ns.Name, i, def.Handler, err)
		}

		binding := routes.Endpoint(def.Path, def.Name, handler, def.Methods...)

		for _, pattern := range binding.Patterns() {
			if prev, exists := seen[pattern]; exists {
				return nil, fmt.Errorf("%w: %s: routes %d and %d both bind %q", ErrMalformed, ns.Name, prev, i, pattern)
			}
			seen[pattern] = i
		}

		bindings = append(bindings, binding)
	}

	return bindings, nil
}
