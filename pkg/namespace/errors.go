// Package namespace discovers namespace directories under a base directory and
// resolves their routing definitions into route bindings.
//
// A namespace is a directory containing a marker file (namespace.toml). It may
// carry a routing definition (routes.toml) declaring a "routes" array. A namespace
// without a routing definition resolves as Absent and contributes no routes; any
// other failure while resolving is returned as an error and is meant to abort
// startup.
package namespace

import "errors"

var (
	// ErrMalformed indicates a marker file or routing definition that cannot be used.
	ErrMalformed = errors.New("malformed namespace")

	// ErrUnknownHandler indicates a route references a handler kind nobody registered.
	ErrUnknownHandler = errors.New("unknown handler kind")
)
