package namespace

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
)

const (
	// MarkerFile marks a directory as a namespace.
	MarkerFile = "namespace.toml"

	// RoutesFile holds a namespace's routing definition.
	RoutesFile = "routes.toml"

	// MigrationsDir holds a namespace's database migrations.
	MigrationsDir = "migrations"
)

// DefaultExclusions are directory names never treated as namespaces.
var DefaultExclusions = []string{"_config", "__pycache__", ".cache"}

// Discover lists the namespace directories directly under base. A child qualifies
// when it is a directory, is not excluded, and contains a regular MarkerFile.
// The exclusion list is merged with DefaultExclusions. Names are returned sorted.
//
// An unreadable base directory is returned as an error.
func Discover(base string, exclude []string) ([]string, error) {
	entries, err := os.ReadDir(base)
	if err != nil {
		return nil, fmt.Errorf("read namespace base %s: %w", base, err)
	}

	excluded := Exclusions(exclude)

	var names []string
	for _, entry := range entries {
		name := entry.Name()
		if _, skip := excluded[name]; skip {
			continue
		}

		dir := filepath.Join(base, name)
		if !isDir(dir) || !isFile(filepath.Join(dir, MarkerFile)) {
			continue
		}

		names = append(names, name)
	}

	slices.Sort(names)
	return names, nil
}

// Exclusions merges extra with DefaultExclusions into a set.
func Exclusions(extra []string) map[string]struct{} {
	set := make(map[string]struct{}, len(DefaultExclusions)+len(extra))
	for _, name := range DefaultExclusions {
		set[name] = struct{}{}
	}
	for _, name := range extra {
		set[name] = struct{}{}
	}
	return set
}

// isDir follows symlinks.
func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
