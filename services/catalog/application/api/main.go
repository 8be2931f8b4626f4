package api

import (
	"github.com/go-chi/chi/v5"

	"github.com/ghuser/cakeshop/pkg/app"
	"github.com/ghuser/cakeshop/services/catalog/application/handlers"
	appsvcs "github.com/ghuser/cakeshop/services/catalog/application/services"
)

// CatalogRoutes registers catalog endpoints on the provided chi router.
func CatalogRoutes(r chi.Router, a *app.Application) {
	svcs := appsvcs.New(a)
	r.Group(func(r chi.Router) {
		r.Route("/items", func(r chi.Router) {
			r.Post("/", handlers.NewPostItemHandler(svcs).Execute)
			r.Get("/", handlers.NewGetItemsHandler(svcs).List)
			r.Get("/{id}", handlers.NewGetItemsHandler(svcs).Get)
			r.Put("/{id}", handlers.NewPutItemHandler(svcs).Execute)
		})
	})
}
