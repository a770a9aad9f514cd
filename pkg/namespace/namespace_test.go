package namespace_test

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/JaimeStill/app-host/pkg/namespace"
)

func init() {
	namespace.Register("text", func(ns namespace.Namespace, route namespace.Route) (http.Handler, error) {
		body, ok := route.Options["body"]
		if !ok {
			return nil, fmt.Errorf("body option required")
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			io.WriteString(w, body)
		}), nil
	}, "writes the body option")
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// writeTree creates files under base. Keys ending in "/" create empty directories.
func writeTree(t *testing.T, base string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		path := filepath.Join(base, filepath.FromSlash(rel))
		if rel[len(rel)-1] == '/' {
			require.NoError(t, os.MkdirAll(path, 0755))
			continue
		}
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
}

func TestDiscover(t *testing.T) {
	base := t.TempDir()
	writeTree(t, base, map[string]string{
		"billing/namespace.toml":     "",
		"utils/namespace.toml":       "description = \"shared helpers\"",
		"accounts/namespace.toml":    "",
		"_config/namespace.toml":     "",
		"__pycache__/namespace.toml": "",
		"backend/namespace.toml":     "",
		"migrations/namespace.toml":  "",
		"static/":                    "",
		"notes/readme.md":            "no marker",
		"marker-dir/namespace.toml/": "",
		"loose-file":                 "",
	})

	names, err := namespace.Discover(base, []string{"backend", "migrations"})
	require.NoError(t, err)
	require.Equal(t, []string{"accounts", "billing", "utils"}, names)
}

func TestDiscover_FollowsSymlinks(t *testing.T) {
	base := t.TempDir()
	target := t.TempDir()
	writeTree(t, target, map[string]string{"namespace.toml": ""})

	require.NoError(t, os.Symlink(target, filepath.Join(base, "linked")))

	names, err := namespace.Discover(base, nil)
	require.NoError(t, err)
	require.Equal(t, []string{"linked"}, names)
}

func TestDiscover_NeverReturnsExcluded(t *testing.T) {
	base := t.TempDir()
	for _, name := range []string{"a", "b", "c", "_config", "__pycache__", ".cache"} {
		writeTree(t, base, map[string]string{name + "/namespace.toml": ""})
	}

	for _, exclude := range [][]string{nil, {"a"}, {"a", "b"}, {"a", "b", "c"}} {
		names, err := namespace.Discover(base, exclude)
		require.NoError(t, err)

		excluded := namespace.Exclusions(exclude)
		for _, name := range names {
			_, hit := excluded[name]
			require.False(t, hit, "Discover returned excluded name %q", name)
		}
		require.Len(t, names, 3-len(exclude))
	}
}

func TestDiscover_EmptyBase(t *testing.T) {
	names, err := namespace.Discover(t.TempDir(), nil)
	require.NoError(t, err)
	require.Empty(t, names)
}

func TestDiscover_UnreadableBase(t *testing.T) {
	_, err := namespace.Discover(filepath.Join(t.TempDir(), "missing"), nil)
	require.Error(t, err)
}

func TestResolve_Absent(t *testing.T) {
	base := t.TempDir()
	writeTree(t, base, map[string]string{
		"utils/namespace.toml": "description = \"shared helpers\"\ntags = [\"internal\"]",
	})

	res, err := namespace.NewResolver(base, discardLogger()).Resolve("utils")
	require.NoError(t, err)
	require.Equal(t, namespace.Absent, res.Status)
	require.Empty(t, res.Routes)
	require.Equal(t, "utils", res.Namespace.Name)
	require.Equal(t, "shared helpers", res.Namespace.Description)
	require.Equal(t, []string{"internal"}, res.Namespace.Tags)
}

func TestResolve_Found(t *testing.T) {
	base := t.TempDir()
	writeTree(t, base, map[string]string{
		"billing/namespace.toml": "",
		"billing/routes.toml": `
[[routes]]
path = "/invoice/"
name = "invoice"
methods = ["get"]
handler = "text"
[routes.options]
body = "invoice"
`,
	})

	res, err := namespace.NewResolver(base, discardLogger()).Resolve("billing")
	require.NoError(t, err)
	require.Equal(t, namespace.Found, res.Status)
	require.Len(t, res.Routes, 1)

	route := res.Routes[0]
	require.Equal(t, "invoice/", route.Path)
	require.Equal(t, "invoice", route.Name)
	require.Equal(t, []string{"GET"}, route.Methods)

	w := httptest.NewRecorder()
	route.Handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/invoice", nil))
	require.Equal(t, "invoice", w.Body.String())
}

func TestResolve_EmptyRoutes(t *testing.T) {
	base := t.TempDir()
	writeTree(t, base, map[string]string{
		"reports/namespace.toml": "",
		"reports/routes.toml":    "routes = []",
	})

	res, err := namespace.NewResolver(base, discardLogger()).Resolve("reports")
	require.NoError(t, err)
	require.Equal(t, namespace.Found, res.Status)
	require.NotNil(t, res.Routes)
	require.Empty(t, res.Routes)
}

func TestResolve_Malformed(t *testing.T) {
	tests := []struct {
		name    string
		marker  string
		routes  string
		wantErr error
	}{
		{
			name:    "marker syntax error",
			marker:  "description = ",
			wantErr: namespace.ErrMalformed,
		},
		{
			name:    "marker unknown key",
			marker:  "descriptoin = \"typo\"",
			wantErr: namespace.ErrMalformed,
		},
		{
			name:    "routes syntax error",
			routes:  "[[routes]\npath = ",
			wantErr: namespace.ErrMalformed,
		},
		{
			name:    "routes key missing",
			routes:  "# nothing here\n",
			wantErr: namespace.ErrMalformed,
		},
		{
			name:    "handler missing",
			routes:  "[[routes]]\npath = \"a/\"\n",
			wantErr: namespace.ErrMalformed,
		},
		{
			name:    "unknown handler",
			routes:  "[[routes]]\npath = \"a/\"\nhandler = \"nope\"\n",
			wantErr: namespace.ErrUnknownHandler,
		},
		{
			name:    "invalid method",
			routes:  "[[routes]]\npath = \"a/\"\nmethods = [\"FETCH\"]\nhandler = \"text\"\noptions = { body = \"x\" }\n",
			wantErr: namespace.ErrMalformed,
		},
		{
			name:    "factory rejects options",
			routes:  "[[routes]]\npath = \"a/\"\nhandler = \"text\"\n",
			wantErr: namespace.ErrMalformed,
		},
		{
			name: "duplicate route",
			routes: `
[[routes]]
path = "a/"
methods = ["GET"]
handler = "text"
options = { body = "1" }

[[routes]]
path = "/a/"
methods = ["GET"]
handler = "text"
options = { body = "2" }
`,
			wantErr: namespace.ErrMalformed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			base := t.TempDir()
			files := map[string]string{"app/namespace.toml": tt.marker}
			if tt.routes != "" {
				files["app/routes.toml"] = tt.routes
			}
			writeTree(t, base, files)

			res, err := namespace.NewResolver(base, discardLogger()).Resolve("app")
			require.Error(t, err)
			require.True(t, errors.Is(err, tt.wantErr), "error = %v, want %v", err, tt.wantErr)
			require.Equal(t, namespace.Absent, res.Status)
			require.Nil(t, res.Routes)
		})
	}
}

func TestResolve_SameMethodsDifferentPaths(t *testing.T) {
	base := t.TempDir()
	writeTree(t, base, map[string]string{
		"app/namespace.toml": "",
		"app/routes.toml": `
[[routes]]
path = "a/"
methods = ["GET"]
handler = "text"
options = { body = "get" }

[[routes]]
path = "a/"
methods = ["POST"]
handler = "text"
options = { body = "post" }
`,
	})

	res, err := namespace.NewResolver(base, discardLogger()).Resolve("app")
	require.NoError(t, err)
	require.Len(t, res.Routes, 2)
}

func TestNamespace_Migrations(t *testing.T) {
	base := t.TempDir()
	writeTree(t, base, map[string]string{
		"billing/namespace.toml":                "",
		"billing/migrations/000001_init.up.sql": "CREATE TABLE invoices (id int);",
		"utils/namespace.toml":                  "",
	})

	resolver := namespace.NewResolver(base, discardLogger())

	billing, err := resolver.Resolve("billing")
	require.NoError(t, err)
	dir, ok := billing.Namespace.Migrations()
	require.True(t, ok)
	require.Equal(t, filepath.Join(base, "billing", "migrations"), dir)

	utils, err := resolver.Resolve("utils")
	require.NoError(t, err)
	_, ok = utils.Namespace.Migrations()
	require.False(t, ok)
}

func TestRegistry_List(t *testing.T) {
	namespace.Register("list-a", nil, "first")
	namespace.Register("list-b", nil, "second")

	infos := namespace.List()

	var kinds []string
	for _, info := range infos {
		kinds = append(kinds, info.Kind)
	}
	require.Subset(t, kinds, []string{"list-a", "list-b", "text"})
	require.IsNonDecreasing(t, kinds)

	_, ok := namespace.Get("list-a")
	require.True(t, ok)

	_, ok = namespace.Get("never-registered")
	require.False(t, ok)
}
