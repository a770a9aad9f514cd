// Package admin serves read-only introspection of the assembled route table,
// the discovered namespaces, and the registered handler kinds.
package admin

import (
	"github.com/JaimeStill/app-host/pkg/namespace"
	"github.com/JaimeStill/app-host/pkg/routes"
)

// Index exposes the assembly results. Table returns nil until assembly completes.
type Index interface {
	Table() *routes.Table
	Resolutions() []namespace.Resolution
}

// Overview summarizes the running service.
type Overview struct {
	Service    string `json:"service"`
	Version    string `json:"version"`
	Routes     int    `json:"routes"`
	Namespaces int    `json:"namespaces"`
	Mounted    int    `json:"mounted"`
}

// NamespaceView describes a discovered namespace.
type NamespaceView struct {
	Name        string   `json:"name"`
	Dir         string   `json:"dir"`
	Description string   `json:"description,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	Mounted     bool     `json:"mounted"`
	Routes      int      `json:"routes"`
	Migrations  bool     `json:"migrations"`
}

// Namespaces projects resolutions into their admin view.
func Namespaces(resolutions []namespace.Resolution) []NamespaceView {
	views := make([]NamespaceView, 0, len(resolutions))
	for _, res := range resolutions {
		_, hasMigrations := res.Namespace.Migrations()
		views = append(views, NamespaceView{
			Name:        res.Namespace.Name,
			Dir:         res.Namespace.Dir,
			Description: res.Namespace.Description,
			Tags:        res.Namespace.Tags,
			Mounted:     res.Status == namespace.Found,
			Routes:      len(res.Routes),
			Migrations:  hasMigrations,
		})
	}
	return views
}

func mountedCount(resolutions []namespace.Resolution) int {
	n := 0
	for _, res := range resolutions {
		if res.Status == namespace.Found {
			n++
		}
	}
	return n
}
