package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/JaimeStill/app-host/pkg/routes"
)

// fixture writes a namespace tree and config, returning the flags that point
// the CLI at them.
func fixture(t *testing.T, files map[string]string) []string {
	t.Helper()
	t.Setenv("SERVICE_ENV", "")

	base := t.TempDir()
	for rel, body := range files {
		path := filepath.Join(base, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	}

	cfg := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(cfg, []byte("[logging]\nlevel = \"error\"\n"), 0644))

	return []string{"--config", cfg, "--base-dir", base, "--no-color"}
}

func execute(t *testing.T, flags []string, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := newRootCommand(&stdout, &stderr)
	cmd.SetArgs(append(args, flags...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

var billing = map[string]string{
	"billing/namespace.toml": "",
	"billing/routes.toml":    "[[routes]]\npath = \"invoice/\"\nname = \"invoice\"\nmethods = [\"GET\"]\nhandler = \"redirect\"\n[routes.options]\nto = \"/\"\n",
	"utils/namespace.toml":   "",
}

func TestList_Table(t *testing.T) {
	flags := fixture(t, billing)

	out, _, err := execute(t, flags, "list")
	require.NoError(t, err)

	require.Contains(t, out, "PATH")
	require.Contains(t, out, "/health/")
	require.Contains(t, out, "/generate-certificate/")
	require.Contains(t, out, "certificate/generate/")
	require.Contains(t, out, "/billing/invoice/")
	require.Contains(t, out, "billing:invoice")
	require.NotContains(t, out, "utils")
}

func TestList_JSON(t *testing.T) {
	flags := fixture(t, billing)

	out, _, err := execute(t, flags, "list", "--json")
	require.NoError(t, err)

	var entries []routes.Entry
	require.NoError(t, json.Unmarshal([]byte(out), &entries))
	require.Len(t, entries, 5)
	require.Equal(t, "health/", entries[0].Path)
	require.Equal(t, "billing/invoice/", entries[4].Path)
}

func TestCheck(t *testing.T) {
	flags := fixture(t, billing)

	out, _, err := execute(t, flags, "check")
	require.NoError(t, err)

	require.Contains(t, out, "NAMESPACE")
	require.Contains(t, out, "mounted")
	require.Contains(t, out, "absent")
	require.Contains(t, out, "ok: 5 routes, 2 namespaces (1 mounted)")
}

func TestCheck_Malformed(t *testing.T) {
	flags := fixture(t, map[string]string{
		"billing/namespace.toml": "",
		"billing/routes.toml":    "[[routes]]\npath = \"x/\"\nhandler = \"teleport\"\n",
	})

	_, stderr, err := execute(t, flags, "check")
	require.Error(t, err)
	require.Contains(t, stderr, "error:")
	require.Contains(t, stderr, "teleport")
}

func TestHandlers(t *testing.T) {
	var stdout bytes.Buffer
	cmd := newRootCommand(&stdout, &bytes.Buffer{})
	cmd.SetArgs([]string{"handlers", "--no-color"})
	require.NoError(t, cmd.Execute())

	out := stdout.String()
	for _, kind := range []string{"files", "proxy", "redirect"} {
		require.Contains(t, out, kind)
	}
}
