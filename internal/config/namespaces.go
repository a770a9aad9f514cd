package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/JaimeStill/app-host/pkg/middleware"
	"github.com/JaimeStill/app-host/pkg/routes"
)

const (
	EnvNamespacesBaseDir     = "NAMESPACES_BASE_DIR"
	EnvNamespacesExclude     = "NAMESPACES_EXCLUDE"
	EnvLegacyCertificatePath = "LEGACY_CERTIFICATE_PATH"
)

// NamespacesConfig locates the directories scanned for namespaces.
type NamespacesConfig struct {
	BaseDir string `toml:"base_dir"`
	// Exclude adds directory names to the built-in exclusions. A non-nil
	// overlay replaces the base list.
	Exclude []string `toml:"exclude"`
}

func (c *NamespacesConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

func (c *NamespacesConfig) Merge(overlay *NamespacesConfig) {
	if overlay.BaseDir != "" {
		c.BaseDir = overlay.BaseDir
	}
	if overlay.Exclude != nil {
		c.Exclude = overlay.Exclude
	}
}

// anchor resolves a relative or unset BaseDir against dir.
func (c *NamespacesConfig) anchor(dir string) {
	if c.BaseDir == "" {
		c.BaseDir = "."
	}
	if !filepath.IsAbs(c.BaseDir) {
		c.BaseDir = filepath.Join(dir, c.BaseDir)
	}
}

func (c *NamespacesConfig) loadDefaults() {
	if c.BaseDir == "" {
		c.BaseDir = "."
	}
	if c.Exclude == nil {
		c.Exclude = []string{"backend", "migrations"}
	}
}

func (c *NamespacesConfig) loadEnv() {
	if v := os.Getenv(EnvNamespacesBaseDir); v != "" {
		c.BaseDir = v
	}
	if v, ok := os.LookupEnv(EnvNamespacesExclude); ok {
		c.Exclude = middleware.SplitList(v)
	}
}

func (c *NamespacesConfig) validate() error {
	info, err := os.Stat(c.BaseDir)
	if err != nil {
		return fmt.Errorf("base_dir: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("base_dir %s is not a directory", c.BaseDir)
	}
	for _, name := range c.Exclude {
		if strings.ContainsAny(name, `/\`) {
			return fmt.Errorf("exclude entry %q must be a directory name", name)
		}
	}
	return nil
}

// LegacyConfig holds compatibility endpoints kept for older clients.
type LegacyConfig struct {
	// CertificatePath is the table path the legacy generate-certificate/
	// endpoint dispatches to.
	CertificatePath string `toml:"certificate_path"`
}

func (c *LegacyConfig) Finalize() error {
	if c.CertificatePath == "" {
		c.CertificatePath = "certificate/generate/"
	}
	if v := os.Getenv(EnvLegacyCertificatePath); v != "" {
		c.CertificatePath = v
	}
	if routes.Clean(c.CertificatePath) == "" {
		return fmt.Errorf("certificate_path required")
	}
	return nil
}

func (c *LegacyConfig) Merge(overlay *LegacyConfig) {
	if overlay.CertificatePath != "" {
		c.CertificatePath = overlay.CertificatePath
	}
}
