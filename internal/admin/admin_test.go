package admin_test

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	_ "github.com/JaimeStill/app-host/adapters"
	"github.com/JaimeStill/app-host/internal/admin"
	"github.com/JaimeStill/app-host/pkg/namespace"
	"github.com/JaimeStill/app-host/pkg/openapi"
	"github.com/JaimeStill/app-host/pkg/routes"
)

type index struct {
	table       *routes.Table
	resolutions []namespace.Resolution
}

func (i *index) Table() *routes.Table                { return i.table }
func (i *index) Resolutions() []namespace.Resolution { return i.resolutions }

func fixture(t *testing.T) *index {
	t.Helper()
	ok := http.NotFoundHandler()

	billingDir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(billingDir, namespace.MigrationsDir), 0755))

	invoice := routes.Endpoint("invoice/", "invoice", ok, http.MethodGet)
	table, err := routes.NewTable(
		[]routes.Binding{
			routes.Endpoint("health/", "health-check", ok, http.MethodGet),
			routes.AliasOf("generate-certificate/", "generate-certificate-legacy", "certificate/generate/", http.MethodPost),
		},
		[]routes.Binding{routes.Group("billing/", "billing", []routes.Binding{invoice})},
	)
	require.NoError(t, err)

	return &index{
		table: table,
		resolutions: []namespace.Resolution{
			{
				Status:    namespace.Found,
				Namespace: namespace.Namespace{Name: "billing", Dir: billingDir, Description: "Invoices", Tags: []string{"finance"}},
				Routes:    []routes.Binding{invoice},
			},
			{
				Status:    namespace.Absent,
				Namespace: namespace.Namespace{Name: "utils", Dir: t.TempDir()},
			},
		},
	}
}

func serve(t *testing.T, idx admin.Index, path string) *httptest.ResponseRecorder {
	t.Helper()
	h := admin.NewHandler(idx, "backend", "1.0.0", nil, slog.New(slog.NewTextHandler(io.Discard, nil)))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestOverview(t *testing.T) {
	w := serve(t, fixture(t), "/")

	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `{"service":"backend","version":"1.0.0","routes":3,"namespaces":2,"mounted":1}`, w.Body.String())
}

func TestListRoutes(t *testing.T) {
	w := serve(t, fixture(t), "/routes")
	require.Equal(t, http.StatusOK, w.Code)

	var entries []routes.Entry
	require.NoError(t, json.NewDecoder(w.Body).Decode(&entries))
	require.Len(t, entries, 3)

	require.Equal(t, "generate-certificate/", entries[1].Path)
	require.Equal(t, routes.KindAlias, entries[1].Kind)
	require.Equal(t, "certificate/generate/", entries[1].Target)

	require.Equal(t, "billing/invoice/", entries[2].Path)
	require.Equal(t, "billing:invoice", entries[2].Name)
	require.Equal(t, []string{"GET"}, entries[2].Methods)
}

func TestListNamespaces(t *testing.T) {
	w := serve(t, fixture(t), "/namespaces")
	require.Equal(t, http.StatusOK, w.Code)

	var views []admin.NamespaceView
	require.NoError(t, json.NewDecoder(w.Body).Decode(&views))
	require.Len(t, views, 2)

	require.Equal(t, "billing", views[0].Name)
	require.True(t, views[0].Mounted)
	require.True(t, views[0].Migrations)
	require.Equal(t, 1, views[0].Routes)
	require.Equal(t, []string{"finance"}, views[0].Tags)

	require.Equal(t, "utils", views[1].Name)
	require.False(t, views[1].Mounted)
	require.False(t, views[1].Migrations)
}

func TestListHandlers(t *testing.T) {
	w := serve(t, &index{}, "/handlers")
	require.Equal(t, http.StatusOK, w.Code)

	var kinds []namespace.Info
	require.NoError(t, json.NewDecoder(w.Body).Decode(&kinds))

	var names []string
	for _, k := range kinds {
		names = append(names, k.Kind)
	}
	require.Equal(t, []string{"files", "proxy", "redirect"}, names)
}

func TestOpenAPI(t *testing.T) {
	w := serve(t, fixture(t), "/openapi")
	require.Equal(t, http.StatusOK, w.Code)

	var doc openapi.Spec
	require.NoError(t, json.NewDecoder(w.Body).Decode(&doc))

	require.Equal(t, openapi.Version, doc.OpenAPI)
	require.Equal(t, "1.0.0", doc.Info.Version)
	require.Len(t, doc.Paths, 3)
	require.NotNil(t, doc.Paths["/health"].Get)
	require.NotNil(t, doc.Paths["/generate-certificate"].Post)
	require.Equal(t, []string{"billing"}, doc.Paths["/billing/invoice"].Get.Tags)
}

func TestNotAssembled(t *testing.T) {
	for _, path := range []string{"/", "/routes", "/namespaces", "/openapi"} {
		t.Run(path, func(t *testing.T) {
			w := serve(t, &index{}, path)
			require.Equal(t, http.StatusServiceUnavailable, w.Code)
		})
	}
}

func TestRoutes(t *testing.T) {
	h := admin.NewHandler(&index{}, "backend", "dev", nil, slog.New(slog.NewTextHandler(io.Discard, nil)))

	for _, path := range []string{"/missing", "/routes/extra"} {
		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		require.Equal(t, http.StatusNotFound, w.Code, path)
	}

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/routes", nil))
	require.Equal(t, http.StatusMethodNotAllowed, w.Code)
}
