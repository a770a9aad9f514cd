package routes

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrDuplicatePath indicates two top-level bindings share a path.
	ErrDuplicatePath = errors.New("duplicate route path")

	// ErrInvalidBinding indicates a binding is missing the handler its kind requires.
	ErrInvalidBinding = errors.New("invalid route binding")

	// ErrInvalidAlias indicates an alias points at itself.
	ErrInvalidAlias = errors.New("invalid route alias")
)

// Entry is a flattened, fully-qualified view of a binding.
type Entry struct {
	Path    string   `json:"path"`
	Name    string   `json:"name"`
	Methods []string `json:"methods,omitempty"`
	Kind    Kind     `json:"kind"`
	Target  string   `json:"target,omitempty"`
}

// Table is the ordered, immutable list of top-level bindings.
type Table struct {
	bindings []Binding
}

// NewTable concatenates the binding sets in order and validates the result.
// Top-level paths must be unique.
func NewTable(sets ...[]Binding) (*Table, error) {
	var bindings []Binding
	seen := make(map[string]string)

	for _, set := range sets {
		for _, b := range set {
			if err := validate(b); err != nil {
				return nil, err
			}

			key := Clean(b.Path)
			if prev, exists := seen[key]; exists {
				return nil, fmt.Errorf("%w: %q bound by %q and %q", ErrDuplicatePath, b.Path, prev, b.Name)
			}
			seen[key] = b.Name

			bindings = append(bindings, b)
		}
	}

	return &Table{bindings: bindings}, nil
}

// Bindings returns a copy of the top-level bindings in order.
func (t *Table) Bindings() []Binding {
	return append([]Binding(nil), t.bindings...)
}

// Len returns the number of top-level bindings.
func (t *Table) Len() int {
	return len(t.bindings)
}

// Entries flattens the table. Group children are reported under their parent
// prefix with names qualified as "parent:child".
func (t *Table) Entries() []Entry {
	var entries []Entry
	for _, b := range t.bindings {
		entries = append(entries, flatten("", "", b)...)
	}
	return entries
}

// Lookup returns the top-level binding registered at path.
func (t *Table) Lookup(path string) (Binding, bool) {
	key := Clean(path)
	for _, b := range t.bindings {
		if Clean(b.Path) == key {
			return b, true
		}
	}
	return Binding{}, false
}

func flatten(prefix, namespace string, b Binding) []Entry {
	path := Join(prefix, b.Path)
	name := b.Name
	if namespace != "" && name != "" {
		name = namespace + ":" + name
	}

	if b.Include && b.Handler == nil {
		var entries []Entry
		for _, child := range b.Routes {
			entries = append(entries, flatten(path, b.Name, child)...)
		}
		return entries
	}

	return []Entry{{
		Path:    path,
		Name:    name,
		Methods: b.Methods,
		Kind:    b.Kind(),
		Target:  b.Alias,
	}}
}

func validate(b Binding) error {
	switch b.Kind() {
	case KindAlias:
		if Clean(b.Alias) == Clean(b.Path) {
			return fmt.Errorf("%w: %q aliases itself", ErrInvalidAlias, b.Path)
		}
	case KindInclude:
		key := Clean(b.Path)
		if key == "" || strings.Contains(key, "/") {
			return fmt.Errorf("%w: include %q must be a single path segment", ErrInvalidBinding, b.Path)
		}
		if b.Handler == nil && b.Routes == nil {
			return fmt.Errorf("%w: include %q has no handler or routes", ErrInvalidBinding, b.Path)
		}
	case KindEndpoint:
		if b.Handler == nil {
			return fmt.Errorf("%w: endpoint %q has no handler", ErrInvalidBinding, b.Path)
		}
	}
	return nil
}
