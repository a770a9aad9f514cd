package routes_test

import (
	"errors"
	"net/http"
	"testing"

	"github.com/JaimeStill/app-host/pkg/routes"
)

var noop = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})

func TestNewTable_Order(t *testing.T) {
	static := []routes.Binding{
		routes.Endpoint("health/", "health-check", noop, "GET"),
		routes.Delegate("admin/", "admin", noop),
	}
	dynamic := []routes.Binding{
		routes.Group("billing/", "billing", []routes.Binding{
			routes.Endpoint("invoice/", "invoice", noop),
		}),
	}

	table, err := routes.NewTable(static, dynamic)
	if err != nil {
		t.Fatalf("NewTable() error = %v", err)
	}

	bindings := table.Bindings()
	want := []string{"health/", "admin/", "billing/"}
	if len(bindings) != len(want) {
		t.Fatalf("Len() = %d, want %d", len(bindings), len(want))
	}
	for i, path := range want {
		if bindings[i].Path != path {
			t.Errorf("bindings[%d].Path = %q, want %q", i, bindings[i].Path, path)
		}
	}
}

func TestNewTable_DuplicatePath(t *testing.T) {
	_, err := routes.NewTable(
		[]routes.Binding{routes.Endpoint("health/", "health-check", noop)},
		[]routes.Binding{routes.Group("health", "health", []routes.Binding{})},
	)

	if !errors.Is(err, routes.ErrDuplicatePath) {
		t.Errorf("NewTable() error = %v, want ErrDuplicatePath", err)
	}
}

func TestNewTable_InvalidBindings(t *testing.T) {
	tests := []struct {
		name    string
		binding routes.Binding
		wantErr error
	}{
		{"endpoint without handler", routes.Endpoint("health/", "health", nil), routes.ErrInvalidBinding},
		{"include without routes", routes.Binding{Path: "admin/", Include: true}, routes.ErrInvalidBinding},
		{"nested include path", routes.Group("a/b/", "ab", []routes.Binding{}), routes.ErrInvalidBinding},
		{"self alias", routes.AliasOf("legacy/", "legacy", "/legacy"), routes.ErrInvalidAlias},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := routes.NewTable([]routes.Binding{tt.binding})
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("NewTable() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestTable_Entries(t *testing.T) {
	table, err := routes.NewTable([]routes.Binding{
		routes.Endpoint("health/", "health-check", noop, "GET"),
		routes.Delegate("admin/", "admin", noop),
		routes.AliasOf("generate-certificate/", "generate-certificate-legacy", "certificate/generate/", "POST"),
		routes.Group("billing/", "billing", []routes.Binding{
			routes.Endpoint("", "index", noop),
			routes.Endpoint("invoice/", "invoice", noop, "GET", "POST"),
		}),
	})
	if err != nil {
		t.Fatalf("NewTable() error = %v", err)
	}

	want := []routes.Entry{
		{Path: "health/", Name: "health-check", Kind: routes.KindEndpoint},
		{Path: "admin/", Name: "admin", Kind: routes.KindInclude},
		{Path: "generate-certificate/", Name: "generate-certificate-legacy", Kind: routes.KindAlias, Target: "certificate/generate/"},
		{Path: "billing/", Name: "billing:index", Kind: routes.KindEndpoint},
		{Path: "billing/invoice/", Name: "billing:invoice", Kind: routes.KindEndpoint},
	}

	got := table.Entries()
	if len(got) != len(want) {
		t.Fatalf("Entries() len = %d, want %d: %+v", len(got), len(want), got)
	}

	for i := range want {
		if got[i].Path != want[i].Path || got[i].Name != want[i].Name || got[i].Kind != want[i].Kind || got[i].Target != want[i].Target {
			t.Errorf("Entries()[%d] = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestTable_Lookup(t *testing.T) {
	table, _ := routes.NewTable([]routes.Binding{
		routes.Endpoint("csrf/", "csrf-token", noop, "GET"),
	})

	if _, ok := table.Lookup("/csrf"); !ok {
		t.Error("Lookup(/csrf) not found")
	}

	if _, ok := table.Lookup("missing/"); ok {
		t.Error("Lookup(missing/) found")
	}
}

func TestBinding_Patterns(t *testing.T) {
	tests := []struct {
		name    string
		binding routes.Binding
		want    []string
	}{
		{"any method", routes.Endpoint("invoice/", "invoice", noop), []string{"/invoice"}},
		{"methods", routes.Endpoint("invoice/", "invoice", noop, "get", "POST"), []string{"GET /invoice", "POST /invoice"}},
		{"root", routes.Endpoint("", "index", noop, "GET"), []string{"GET /{$}"}},
		{"wildcard", routes.Endpoint("files/{path...}", "files", noop), []string{"/files/{path...}"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.binding.Patterns()
			if len(got) != len(tt.want) {
				t.Fatalf("Patterns() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("Patterns()[%d] = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestJoin(t *testing.T) {
	tests := []struct {
		parent, child, want string
	}{
		{"", "health/", "health/"},
		{"billing/", "invoice/", "billing/invoice/"},
		{"billing/", "/invoice/", "billing/invoice/"},
		{"billing/", "", "billing/"},
	}

	for _, tt := range tests {
		if got := routes.Join(tt.parent, tt.child); got != tt.want {
			t.Errorf("Join(%q, %q) = %q, want %q", tt.parent, tt.child, got, tt.want)
		}
	}
}
