// Package routing assembles the service route table: the fixed built-in
// bindings followed by the bindings of every discovered namespace, and builds
// the router that serves it.
package routing

import (
	"net/http"

	"github.com/JaimeStill/app-host/pkg/csrf"
	"github.com/JaimeStill/app-host/pkg/handlers"
	"github.com/JaimeStill/app-host/pkg/routes"
)

// ServiceName is reported by the health check.
const ServiceName = "backend"

// Static holds the collaborators behind the built-in bindings.
type Static struct {
	CSRF  csrf.Issuer
	Admin http.Handler
	// CertificatePath is the table path the legacy certificate endpoint forwards to.
	CertificatePath string
}

// Bindings returns the built-in bindings in declaration order. The health and
// token endpoints answer any method.
func (s Static) Bindings() []routes.Binding {
	return []routes.Binding{
		routes.Endpoint("health/", "health-check", Health()),
		routes.Endpoint("csrf/", "csrf-token", CSRFToken(s.CSRF)),
		routes.Delegate("admin/", "admin", s.Admin),
		routes.AliasOf("generate-certificate/", "generate-certificate-legacy", s.CertificatePath, http.MethodPost),
	}
}

// Health reports service liveness.
func Health() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handlers.RespondJSON(w, http.StatusOK, map[string]string{
			"status":  "healthy",
			"service": ServiceName,
		})
	})
}

// CSRFToken issues a fresh token bound to the caller's CSRF cookie.
func CSRFToken(issuer csrf.Issuer) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := issuer.Token(w, r)
		handlers.RespondJSON(w, http.StatusOK, map[string]string{"csrfToken": token})
	})
}
