// Package di provides dependency injection configuration for the tracking server.
package di

import (
	"github.com/samber/do/v2"

	"github.com/shosa/coregre-tracking/internal/config"
	"github.com/shosa/coregre-tracking/internal/di/providers"
	"github.com/shosa/coregre-tracking/internal/logger"
	"github.com/shosa/coregre-tracking/internal/metrics"
	"github.com/shosa/coregre-tracking/internal/service"
)

// NewContainer creates and configures the DI container with all providers.
func NewContainer() *do.RootScope {
	injector := do.New()

	// Core infrastructure
	do.Provide(injector, providers.ProvideConfig)
	do.Provide(injector, providers.ProvideLogger)
	do.Provide(injector, providers.ProvideMetrics)

	// Persistence and upstream collaborators
	do.Provide(injector, providers.ProvideStore)
	do.Provide(injector, providers.ProvideCatalog)

	// Business services
	do.Provide(injector, providers.ProvideTypeService)
	do.Provide(injector, providers.ProvideLinkService)
	do.Provide(injector, providers.ProvideTreeService)
	do.Provide(injector, providers.ProvideSearchService)

	// Server
	do.Provide(injector, providers.ProvideHTTPServer)

	return injector
}

// Bootstrap initializes all services and returns an error if any provider
// fails. This triggers lazy initialization down the dependency chain.
func Bootstrap(injector *do.RootScope) error {
	if _, err := do.Invoke[*config.Config](injector); err != nil {
		return err
	}
	if _, err := do.Invoke[*logger.Logger](injector); err != nil {
		return err
	}
	if _, err := do.Invoke[*metrics.Metrics](injector); err != nil {
		return err
	}
	if _, err := do.Invoke[*providers.StoreHandle](injector); err != nil {
		return err
	}
	if _, err := do.Invoke[*providers.CatalogHandle](injector); err != nil {
		return err
	}
	if _, err := do.Invoke[*service.TypeService](injector); err != nil {
		return err
	}
	if _, err := do.Invoke[*service.LinkService](injector); err != nil {
		return err
	}
	if _, err := do.Invoke[*service.TreeService](injector); err != nil {
		return err
	}
	if _, err := do.Invoke[*service.SearchService](injector); err != nil {
		return err
	}
	if _, err := do.Invoke[*providers.HTTPServerHandle](injector); err != nil {
		return err
	}
	return nil
}
