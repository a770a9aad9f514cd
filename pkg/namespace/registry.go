package namespace

import (
	"net/http"
	"slices"
	"strings"
	"sync"
)

// Factory builds the handler for a single route of a namespace.
// Returning an error marks the namespace malformed.
type Factory func(ns Namespace, route Route) (http.Handler, error)

// Info describes a registered handler kind.
type Info struct {
	Kind        string `json:"kind"`
	Description string `json:"description"`
}

type handlerRegistry struct {
	factories map[string]Factory
	info      map[string]Info
	mu        sync.RWMutex
}

var registry = &handlerRegistry{
	factories: make(map[string]Factory),
	info:      make(map[string]Info),
}

// Register makes a handler kind available to routing definitions.
// Handler packages call it from init.
func Register(kind string, factory Factory, description string) {
	registry.mu.Lock()
	defer registry.mu.Unlock()
	registry.factories[kind] = factory
	registry.info[kind] = Info{Kind: kind, Description: description}
}

// Get returns the factory registered for kind.
func Get(kind string) (Factory, bool) {
	registry.mu.RLock()
	defer registry.mu.RUnlock()
	factory, exists := registry.factories[kind]
	return factory, exists
}

// List returns the registered handler kinds sorted by kind.
func List() []Info {
	registry.mu.RLock()
	defer registry.mu.RUnlock()

	result := make([]Info, 0, len(registry.info))
	for _, info := range registry.info {
		result = append(result, info)
	}
	slices.SortFunc(result, func(a, b Info) int {
		return strings.Compare(a.Kind, b.Kind)
	})
	return result
}
