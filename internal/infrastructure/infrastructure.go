// Package infrastructure assembles the shared systems every entrypoint needs:
// lifecycle coordination, logging, and the optional database.
package infrastructure

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/JaimeStill/app-host/internal/config"
	"github.com/JaimeStill/app-host/pkg/database"
	"github.com/JaimeStill/app-host/pkg/lifecycle"
	"github.com/JaimeStill/app-host/pkg/logging"
)

// Infrastructure holds the core systems. Database is nil when disabled.
type Infrastructure struct {
	Lifecycle *lifecycle.Coordinator
	Logger    *slog.Logger
	Database  database.System
}

// New creates the systems without starting them; call Start separately.
func New(cfg *config.Config, logOut io.Writer) (*Infrastructure, error) {
	infra := &Infrastructure{
		Lifecycle: lifecycle.New(),
		Logger:    logging.New(&cfg.Logging, logOut),
	}

	if cfg.Database.Enabled {
		db, err := database.New(&cfg.Database, infra.Logger)
		if err != nil {
			return nil, fmt.Errorf("database init failed: %w", err)
		}
		infra.Database = db
	}

	return infra, nil
}

// Start connects the systems and registers their shutdown hooks.
func (i *Infrastructure) Start() error {
	if i.Database == nil {
		return nil
	}
	if err := i.Database.Start(i.Lifecycle); err != nil {
		return fmt.Errorf("database start failed: %w", err)
	}
	return nil
}
