// Package routes defines the route binding model: an ordered, immutable table of
// URL path prefixes bound to handlers, sub-routers, or aliases of other bindings.
// Paths are written without a leading slash and with an optional trailing slash
// ("health/", "billing/invoice/").
package routes

import (
	"net/http"
	"strings"
)

// Kind classifies how a binding serves requests.
type Kind string

const (
	// KindEndpoint serves exactly its path with Handler.
	KindEndpoint Kind = "endpoint"

	// KindInclude delegates every path under its prefix to a sub-router,
	// either an opaque Handler or the child Routes.
	KindInclude Kind = "include"

	// KindAlias re-dispatches requests to another path in the same table.
	KindAlias Kind = "alias"
)

// Binding associates a URL path prefix with the handler or sub-router that serves it.
type Binding struct {
	Path    string
	Name    string
	Methods []string
	Handler http.Handler
	Routes  []Binding
	Include bool
	Alias   string
}

// Endpoint creates a binding served by h at exactly path.
func Endpoint(path, name string, h http.Handler, methods ...string) Binding {
	return Binding{Path: path, Name: name, Handler: h, Methods: methods}
}

// Delegate creates an include binding whose entire prefix is handed to h.
func Delegate(path, name string, h http.Handler) Binding {
	return Binding{Path: path, Name: name, Handler: h, Include: true}
}

// Group creates an include binding whose prefix is served by the child routes.
func Group(path, name string, children []Binding) Binding {
	return Binding{Path: path, Name: name, Routes: children, Include: true}
}

// AliasOf creates a binding that re-dispatches to target.
func AliasOf(path, name, target string, methods ...string) Binding {
	return Binding{Path: path, Name: name, Alias: target, Methods: methods}
}

// Kind reports how the binding serves requests.
func (b Binding) Kind() Kind {
	switch {
	case b.Alias != "":
		return KindAlias
	case b.Include:
		return KindInclude
	default:
		return KindEndpoint
	}
}

// Patterns returns the ServeMux patterns for the binding relative to its parent.
// A binding without methods yields a single method-less pattern.
func (b Binding) Patterns() []string {
	path := URLPath(b.Path)
	if path == "/" {
		path = "/{$}"
	}

	if len(b.Methods) == 0 {
		return []string{path}
	}

	patterns := make([]string, 0, len(b.Methods))
	for _, m := range b.Methods {
		patterns = append(patterns, strings.ToUpper(m)+" "+path)
	}
	return patterns
}

// Clean strips leading and trailing slashes.
func Clean(path string) string {
	return strings.Trim(path, "/")
}

// URLPath converts a binding path into the slash-rooted form the router
// dispatches on, without a trailing slash.
func URLPath(path string) string {
	return "/" + Clean(path)
}

// Join concatenates a parent and child binding path, keeping the
// trailing-slash convention of the child.
func Join(parent, child string) string {
	p := Clean(parent)
	c := strings.TrimPrefix(child, "/")
	if p == "" {
		return c
	}
	if c == "" {
		return p + "/"
	}
	return p + "/" + c
}
