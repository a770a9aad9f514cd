package csrf

import (
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"
)

// Env maps environment variable names for CSRF configuration.
type Env struct {
	Enforce      string
	CookieName   string
	HeaderName   string
	FormField    string
	CookieMaxAge string
	Secure       string
	SameSite     string
}

// Config controls the CSRF cookie and enforcement.
type Config struct {
	Enforce      *bool  `toml:"enforce"`
	CookieName   string `toml:"cookie_name"`
	HeaderName   string `toml:"header_name"`
	FormField    string `toml:"form_field"`
	CookieMaxAge int    `toml:"cookie_max_age"`
	Secure       bool   `toml:"secure"`
	SameSite     string `toml:"same_site"`
}

// Enforced reports whether unsafe requests are checked.
func (c *Config) Enforced() bool {
	return c.Enforce == nil || *c.Enforce
}

// SameSiteMode converts SameSite to its http constant.
func (c *Config) SameSiteMode() http.SameSite {
	switch strings.ToLower(c.SameSite) {
	case "strict":
		return http.SameSiteStrictMode
	case "none":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteLaxMode
	}
}

// Finalize applies defaults, loads environment overrides, and validates.
func (c *Config) Finalize(env *Env) error {
	c.loadDefaults()
	if env != nil {
		c.loadEnv(env)
	}
	return c.validate()
}

// Merge applies non-zero overlay values.
func (c *Config) Merge(overlay *Config) {
	if overlay.Enforce != nil {
		c.Enforce = overlay.Enforce
	}
	if overlay.CookieName != "" {
		c.CookieName = overlay.CookieName
	}
	if overlay.HeaderName != "" {
		c.HeaderName = overlay.HeaderName
	}
	if overlay.FormField != "" {
		c.FormField = overlay.FormField
	}
	if overlay.CookieMaxAge != 0 {
		c.CookieMaxAge = overlay.CookieMaxAge
	}
	if overlay.Secure {
		c.Secure = true
	}
	if overlay.SameSite != "" {
		c.SameSite = overlay.SameSite
	}
}

func (c *Config) loadDefaults() {
	if c.CookieName == "" {
		c.CookieName = "csrftoken"
	}
	if c.HeaderName == "" {
		c.HeaderName = "X-CSRFToken"
	}
	if c.FormField == "" {
		c.FormField = "csrfmiddlewaretoken"
	}
	if c.CookieMaxAge == 0 {
		c.CookieMaxAge = 31449600
	}
	if c.SameSite == "" {
		c.SameSite = "lax"
	}
}

func (c *Config) loadEnv(env *Env) {
	if env.Enforce != "" {
		if v := os.Getenv(env.Enforce); v != "" {
			if b, err := strconv.ParseBool(v); err == nil {
				c.Enforce = &b
			}
		}
	}
	if env.CookieName != "" {
		if v := os.Getenv(env.CookieName); v != "" {
			c.CookieName = v
		}
	}
	if env.HeaderName != "" {
		if v := os.Getenv(env.HeaderName); v != "" {
			c.HeaderName = v
		}
	}
	if env.FormField != "" {
		if v := os.Getenv(env.FormField); v != "" {
			c.FormField = v
		}
	}
	if env.CookieMaxAge != "" {
		if v := os.Getenv(env.CookieMaxAge); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				c.CookieMaxAge = n
			}
		}
	}
	if env.Secure != "" {
		if v := os.Getenv(env.Secure); v != "" {
			if b, err := strconv.ParseBool(v); err == nil {
				c.Secure = b
			}
		}
	}
	if env.SameSite != "" {
		if v := os.Getenv(env.SameSite); v != "" {
			c.SameSite = v
		}
	}
}

func (c *Config) validate() error {
	switch strings.ToLower(c.SameSite) {
	case "lax", "strict", "none":
	default:
		return fmt.Errorf("invalid same_site: %s (must be lax, strict, or none)", c.SameSite)
	}
	if strings.EqualFold(c.SameSite, "none") && !c.Secure {
		return fmt.Errorf("same_site none requires secure")
	}
	if c.CookieMaxAge < 0 {
		return fmt.Errorf("cookie_max_age must not be negative")
	}
	return nil
}
