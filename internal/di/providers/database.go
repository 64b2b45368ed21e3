package providers

import (
	"context"
	"fmt"

	"github.com/samber/do/v2"

	"github.com/shosa/coregre-tracking/internal/config"
	"github.com/shosa/coregre-tracking/internal/logger"
	"github.com/shosa/coregre-tracking/internal/store"
	"github.com/shosa/coregre-tracking/internal/store/postgres"
	"github.com/shosa/coregre-tracking/internal/store/sqlite"
)

// StoreHandle wraps the store with shutdown capability.
type StoreHandle struct {
	store.Store
}

// Shutdown implements do.Shutdownable.
func (h *StoreHandle) Shutdown() error {
	return h.Close()
}

// ProvideStore provides the persistence layer selected by the configured driver.
func ProvideStore(i do.Injector) (*StoreHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	switch cfg.Database.Driver {
	case config.DriverSQLite:
		s, err := sqlite.Open(cfg.Database.Path, log.Logger)
		if err != nil {
			return nil, fmt.Errorf("open sqlite store: %w", err)
		}
		log.Info("SQLite store opened", "path", cfg.Database.Path)
		return &StoreHandle{Store: s}, nil

	case config.DriverPostgres:
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		s, err := postgres.Open(ctx, cfg.Database.DSN, log.Logger)
		if err != nil {
			return nil, fmt.Errorf("open postgres store: %w", err)
		}
		log.Info("Postgres store opened")
		return &StoreHandle{Store: s}, nil

	default:
		return nil, fmt.Errorf("unknown database driver %q", cfg.Database.Driver)
	}
}
