package main

import (
	"fmt"
	"strings"

	"github.com/JaimeStill/app-host/internal/infrastructure"
	"github.com/JaimeStill/app-host/pkg/database"
	"github.com/JaimeStill/app-host/pkg/namespace"
)

// migrate applies the migrations shipped by each namespace, in discovery
// order. Each namespace records its version in its own table.
func migrate(infra *infrastructure.Infrastructure, cfg *database.Config, resolutions []namespace.Resolution) error {
	if infra.Database == nil || !cfg.Migrate {
		return nil
	}

	for _, res := range resolutions {
		dir, ok := res.Namespace.Migrations()
		if !ok {
			continue
		}
		if err := infra.Database.Migrate(dir, migrationsTable(res.Namespace.Name)); err != nil {
			return fmt.Errorf("migrate %s: %w", res.Namespace.Name, err)
		}
	}
	return nil
}

func migrationsTable(name string) string {
	return "schema_migrations_" + strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		case r >= 'A' && r <= 'Z':
			return r + ('a' - 'A')
		default:
			return '_'
		}
	}, name)
}
