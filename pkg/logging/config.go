package logging

import (
	"os"
	"strconv"
)

// Env names the environment variables that override Config.
type Env struct {
	Level     string
	Format    string
	AddSource string
}

// Config selects the level, encoding, and source annotation of service logs.
type Config struct {
	Level     Level  `toml:"level"`
	Format    Format `toml:"format"`
	AddSource bool   `toml:"add_source"`
}

// Finalize fills defaults, applies env overrides, then normalizes and checks values.
func (c *Config) Finalize(env *Env) error {
	if c.Level == "" {
		c.Level = LevelInfo
	}
	if c.Format == "" {
		c.Format = FormatText
	}

	if env != nil {
		c.Level = Level(lookup(env.Level, string(c.Level)))
		c.Format = Format(lookup(env.Format, string(c.Format)))
		if v := lookup(env.AddSource, ""); v != "" {
			if b, err := strconv.ParseBool(v); err == nil {
				c.AddSource = b
			}
		}
	}

	c.Level = normalize(c.Level)
	c.Format = normalize(c.Format)
	if err := c.Level.Validate(); err != nil {
		return err
	}
	return c.Format.Validate()
}

// Merge copies set overlay fields. AddSource can only be switched on.
func (c *Config) Merge(overlay *Config) {
	if overlay.Level != "" {
		c.Level = overlay.Level
	}
	if overlay.Format != "" {
		c.Format = overlay.Format
	}
	if overlay.AddSource {
		c.AddSource = true
	}
}

func lookup(name, fallback string) string {
	if name == "" {
		return fallback
	}
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}
