package services

import (
	"github.com/ghuser/cakeshop/pkg/app"
	"github.com/ghuser/cakeshop/pkg/cache"
	catalogsvcs "github.com/ghuser/cakeshop/services/catalog/application/services"
	catalogpg "github.com/ghuser/cakeshop/services/catalog/infrastructure/persistence/postgres"
	"github.com/ghuser/cakeshop/services/orders/infrastructure/persistence/postgres"
)

// Services is the application-layer service container for the orders context.
// It wires domain services with their infrastructure implementations.
type Services struct {
	Orders *OrderService
}

// New wires all order application services with infrastructure from the
// Application container. The catalog service backs item resolution so order
// pricing benefits from its read-through cache.
func New(a *app.Application) *Services {
	repo := postgres.NewOrderRepository(a.Db, a.EventBus)
	catalogStore := catalogpg.NewItemStore(a.Db, a.EventBus)
	catalog := catalogsvcs.NewCatalogService(catalogStore, cache.NewCatalogCache(a.Redis))
	return &Services{
		Orders: NewOrderService(repo, catalog, a.DefaultDeliveryFee),
	}
}
