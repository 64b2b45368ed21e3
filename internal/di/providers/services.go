package providers

import (
	"github.com/samber/do/v2"

	"github.com/shosa/coregre-tracking/internal/config"
	"github.com/shosa/coregre-tracking/internal/logger"
	"github.com/shosa/coregre-tracking/internal/metrics"
	"github.com/shosa/coregre-tracking/internal/service"
)

// ProvideTypeService provides the relationship type registry.
func ProvideTypeService(i do.Injector) (*service.TypeService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)
	return service.NewTypeService(storeHandle.Store, log.Logger), nil
}

// ProvideLinkService provides bulk creation and mutation of links.
func ProvideLinkService(i do.Injector) (*service.LinkService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	catalogHandle := do.MustInvoke[*CatalogHandle](i)
	m := do.MustInvoke[*metrics.Metrics](i)
	log := do.MustInvoke[*logger.Logger](i)
	return service.NewLinkService(storeHandle.Store, catalogHandle.Client, m, log.Logger), nil
}

// ProvideTreeService provides tree assembly over stored links.
func ProvideTreeService(i do.Injector) (*service.TreeService, error) {
	cfg := do.MustInvoke[*config.Config](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)
	m := do.MustInvoke[*metrics.Metrics](i)
	log := do.MustInvoke[*logger.Logger](i)
	return service.NewTreeService(storeHandle.Store, m, log.Logger,
		cfg.Tracking.TreeRowCap, cfg.Tracking.TreePageSize), nil
}

// ProvideSearchService provides multi-criteria tag search.
func ProvideSearchService(i do.Injector) (*service.SearchService, error) {
	cfg := do.MustInvoke[*config.Config](i)
	catalogHandle := do.MustInvoke[*CatalogHandle](i)
	log := do.MustInvoke[*logger.Logger](i)
	return service.NewSearchService(catalogHandle.Client, log.Logger,
		cfg.Tracking.SearchPageSize), nil
}
