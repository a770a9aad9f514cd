package openapi

import (
	"fmt"
	"net/url"
	"os"
	"strings"
)

// ConfigEnv names the environment variables that override Config.
// Servers is read as a comma-separated list.
type ConfigEnv struct {
	Title       string
	Description string
	Servers     string
}

// Config holds the document metadata.
type Config struct {
	Title       string   `toml:"title"`
	Description string   `toml:"description"`
	Servers     []string `toml:"servers"`
}

// Finalize applies defaults and environment overrides, then checks that
// every server is an absolute URL or a slash-rooted path.
func (c *Config) Finalize(env *ConfigEnv) error {
	if c.Title == "" {
		c.Title = "App Host"
	}
	if c.Description == "" {
		c.Description = "Routes mounted from the discovered application namespaces."
	}

	if env != nil {
		if v := getenv(env.Title); v != "" {
			c.Title = v
		}
		if v := getenv(env.Description); v != "" {
			c.Description = v
		}
		if v := getenv(env.Servers); v != "" {
			c.Servers = c.Servers[:0]
			for _, s := range strings.Split(v, ",") {
				if s = strings.TrimSpace(s); s != "" {
					c.Servers = append(c.Servers, s)
				}
			}
		}
	}

	for _, s := range c.Servers {
		u, err := url.Parse(s)
		if err != nil {
			return fmt.Errorf("invalid server %q: %w", s, err)
		}
		if !u.IsAbs() && !strings.HasPrefix(s, "/") {
			return fmt.Errorf("invalid server %q: must be absolute or start with /", s)
		}
	}
	return nil
}

// Merge applies non-empty overlay values.
func (c *Config) Merge(overlay *Config) {
	if overlay.Title != "" {
		c.Title = overlay.Title
	}
	if overlay.Description != "" {
		c.Description = overlay.Description
	}
	if len(overlay.Servers) > 0 {
		c.Servers = overlay.Servers
	}
}

func getenv(name string) string {
	if name == "" {
		return ""
	}
	return os.Getenv(name)
}
