package services

import (
	"github.com/ghuser/cakeshop/pkg/app"
	"github.com/ghuser/cakeshop/pkg/cache"
	"github.com/ghuser/cakeshop/services/catalog/infrastructure/persistence/postgres"
)

// Services is the application-layer service container for the catalog context.
// It wires domain services with their infrastructure implementations.
type Services struct {
	Catalog *CatalogService
}

// New wires all catalog application services with infrastructure from the
// Application container.
func New(a *app.Application) *Services {
	store := postgres.NewItemStore(a.Db, a.EventBus)
	catalogCache := cache.NewCatalogCache(a.Redis)
	return &Services{
		Catalog: NewCatalogService(store, catalogCache),
	}
}
