// Package proxy registers the "proxy" handler kind, which forwards a namespace
// route to an upstream HTTP service.
//
// Options:
//   - target: absolute upstream URL (required)
//   - wildcard: name of a path wildcard whose value is appended to the target path.
//     A trailing slash on the client path is kept.
package proxy

import (
	"fmt"
	"net/http"
	"net/http/httputil"
	"net/url"
	"strings"

	"github.com/JaimeStill/app-host/pkg/module"
	"github.com/JaimeStill/app-host/pkg/namespace"
)

// Kind is the handler kind name used in routing definitions.
const Kind = "proxy"

func init() {
	namespace.Register(Kind, New, "Reverse-proxies the route to an upstream URL")
}

// New builds a reverse proxy for route.
func New(ns namespace.Namespace, route namespace.Route) (http.Handler, error) {
	raw := route.Option("target", "")
	if raw == "" {
		return nil, fmt.Errorf("target option required")
	}

	target, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("parse target: %w", err)
	}
	if !target.IsAbs() || target.Host == "" {
		return nil, fmt.Errorf("target %q must be an absolute URL", raw)
	}

	wildcard := route.Option("wildcard", "")

	return &httputil.ReverseProxy{
		Rewrite: func(pr *httputil.ProxyRequest) {
			pr.SetURL(target)
			pr.Out.URL.Path = upstreamPath(target.Path, pr.In, wildcard)
			pr.Out.URL.RawPath = ""
			pr.SetXForwarded()
			pr.Out.Header.Set("X-Forwarded-Prefix", "/"+ns.Name)
		},
	}, nil
}

func upstreamPath(base string, in *http.Request, wildcard string) string {
	if wildcard == "" {
		return base
	}

	rest := in.PathValue(wildcard)
	if rest == "" {
		return base
	}

	path := strings.TrimSuffix(base, "/") + "/" + strings.TrimPrefix(rest, "/")
	if module.TrailingSlash(in) && !strings.HasSuffix(path, "/") {
		path += "/"
	}
	return path
}
