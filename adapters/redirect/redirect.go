// Package redirect registers the "redirect" handler kind.
//
// Options:
//   - to: redirect location (required)
//   - permanent: "true" for 308, otherwise 307
package redirect

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/JaimeStill/app-host/pkg/namespace"
)

// Kind is the handler kind name used in routing definitions.
const Kind = "redirect"

func init() {
	namespace.Register(Kind, New, "Redirects the route to another location")
}

// New builds a redirect handler for route.
func New(ns namespace.Namespace, route namespace.Route) (http.Handler, error) {
	to := route.Option("to", "")
	if to == "" {
		return nil, fmt.Errorf("to option required")
	}

	status := http.StatusTemporaryRedirect
	if v := route.Option("permanent", ""); v != "" {
		permanent, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("invalid permanent option: %w", err)
		}
		if permanent {
			status = http.StatusPermanentRedirect
		}
	}

	return http.RedirectHandler(to, status), nil
}
