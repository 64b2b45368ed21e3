package providers

import (
	"github.com/samber/do/v2"

	"github.com/shosa/coregre-tracking/internal/catalog"
	"github.com/shosa/coregre-tracking/internal/config"
	"github.com/shosa/coregre-tracking/internal/logger"
)

// CatalogHandle wraps the catalog client with shutdown capability.
type CatalogHandle struct {
	*catalog.Client
}

// Shutdown implements do.Shutdownable.
func (h *CatalogHandle) Shutdown() error {
	h.Close()
	return nil
}

// ProvideCatalog provides the tag/work-order catalog client.
func ProvideCatalog(i do.Injector) (*CatalogHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	client := catalog.NewClient(cfg.Catalog.BaseURL, log.Logger,
		catalog.WithTimeout(cfg.Catalog.Timeout),
		catalog.WithCheckRate(cfg.Catalog.CheckRPS, cfg.Catalog.CheckBurst),
	)

	log.Info("Catalog client configured", "base_url", cfg.Catalog.BaseURL)
	return &CatalogHandle{Client: client}, nil
}
