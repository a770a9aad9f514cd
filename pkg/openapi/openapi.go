// Package openapi describes an assembled route table as an OpenAPI 3.1 document.
// Namespaced routes are opaque handlers, so operations carry path parameters
// and a default response only.
package openapi

import (
	"net/http"
	"strings"

	"github.com/JaimeStill/app-host/pkg/routes"
)

// Version is the OpenAPI version emitted by Generate.
const Version = "3.1.0"

// Spec represents a complete OpenAPI document.
type Spec struct {
	OpenAPI string               `json:"openapi"`
	Info    *Info                `json:"info"`
	Servers []*Server            `json:"servers,omitempty"`
	Paths   map[string]*PathItem `json:"paths"`
}

// Info provides metadata about the API.
type Info struct {
	Title       string `json:"title"`
	Version     string `json:"version"`
	Description string `json:"description,omitempty"`
}

// Server is a base URL the paths are served under.
type Server struct {
	URL string `json:"url"`
}

// PathItem describes operations available on a single path.
type PathItem struct {
	Get     *Operation `json:"get,omitempty"`
	Put     *Operation `json:"put,omitempty"`
	Post    *Operation `json:"post,omitempty"`
	Delete  *Operation `json:"delete,omitempty"`
	Options *Operation `json:"options,omitempty"`
	Head    *Operation `json:"head,omitempty"`
	Patch   *Operation `json:"patch,omitempty"`
}

// Operation describes a single API operation on a path.
type Operation struct {
	Summary     string               `json:"summary,omitempty"`
	Description string               `json:"description,omitempty"`
	Tags        []string             `json:"tags,omitempty"`
	Parameters  []*Parameter         `json:"parameters,omitempty"`
	Responses   map[string]*Response `json:"responses"`
}

// Parameter describes a single operation parameter.
type Parameter struct {
	Name     string  `json:"name"`
	In       string  `json:"in"`
	Required bool    `json:"required,omitempty"`
	Schema   *Schema `json:"schema"`
}

// Response describes a single response from an API operation.
type Response struct {
	Description string `json:"description"`
}

// Schema defines the type of a parameter.
type Schema struct {
	Type string `json:"type,omitempty"`
}

// anyMethod lists the operations documented for bindings that accept every method.
var anyMethod = []string{
	http.MethodGet,
	http.MethodPost,
	http.MethodPut,
	http.MethodPatch,
	http.MethodDelete,
}

// Set assigns op to method. Unsupported methods are ignored and reported false.
func (p *PathItem) Set(method string, op *Operation) bool {
	switch strings.ToUpper(method) {
	case http.MethodGet:
		p.Get = op
	case http.MethodPut:
		p.Put = op
	case http.MethodPost:
		p.Post = op
	case http.MethodDelete:
		p.Delete = op
	case http.MethodOptions:
		p.Options = op
	case http.MethodHead:
		p.Head = op
	case http.MethodPatch:
		p.Patch = op
	default:
		return false
	}
	return true
}

// Generate builds a document from the flattened table entries.
func Generate(cfg *Config, version string, entries []routes.Entry) *Spec {
	spec := &Spec{
		OpenAPI: Version,
		Info: &Info{
			Title:       cfg.Title,
			Description: cfg.Description,
			Version:     version,
		},
		Paths: make(map[string]*PathItem),
	}

	for _, url := range cfg.Servers {
		spec.Servers = append(spec.Servers, &Server{URL: url})
	}

	for _, e := range entries {
		path, params := Path(e)
		item, ok := spec.Paths[path]
		if !ok {
			item = &PathItem{}
			spec.Paths[path] = item
		}

		op := operation(e, params)
		methods := e.Methods
		if len(methods) == 0 {
			methods = anyMethod
		}
		for _, m := range methods {
			item.Set(m, op)
		}
	}

	return spec
}

// Path converts an entry path into an OpenAPI path template and the names of
// its path parameters. Wildcard segments lose their "..." suffix and delegated
// prefixes gain a trailing {path} parameter.
func Path(e routes.Entry) (string, []string) {
	var (
		segments []string
		params   []string
	)

	for _, seg := range strings.Split(routes.Clean(e.Path), "/") {
		if seg == "" || seg == "{$}" {
			continue
		}
		if strings.HasPrefix(seg, "{") && strings.HasSuffix(seg, "}") {
			name := strings.TrimSuffix(strings.Trim(seg, "{}"), "...")
			params = append(params, name)
			seg = "{" + name + "}"
		}
		segments = append(segments, seg)
	}

	if e.Kind == routes.KindInclude {
		segments = append(segments, "{path}")
		params = append(params, "path")
	}

	return "/" + strings.Join(segments, "/"), params
}

func operation(e routes.Entry, params []string) *Operation {
	op := &Operation{
		Summary: e.Name,
		Responses: map[string]*Response{
			"default": {Description: "Response from the bound handler"},
		},
	}

	if ns, _, ok := strings.Cut(e.Name, ":"); ok {
		op.Tags = []string{ns}
	}

	switch e.Kind {
	case routes.KindAlias:
		op.Description = "Serves " + routes.URLPath(e.Target)
	case routes.KindInclude:
		op.Description = "Delegates every path under " + routes.URLPath(e.Path)
	}

	for _, name := range params {
		op.Parameters = append(op.Parameters, &Parameter{
			Name:     name,
			In:       "path",
			Required: true,
			Schema:   &Schema{Type: "string"},
		})
	}

	return op
}
