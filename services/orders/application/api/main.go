package api

import (
	"github.com/go-chi/chi/v5"

	"github.com/ghuser/cakeshop/pkg/app"
	"github.com/ghuser/cakeshop/pkg/auth"
	"github.com/ghuser/cakeshop/services/orders/application/handlers"
	appsvcs "github.com/ghuser/cakeshop/services/orders/application/services"
)

// OrderRoutes registers order endpoints on the provided chi router. All of
// them require an authenticated session.
func OrderRoutes(r chi.Router, a *app.Application) {
	svcs := appsvcs.New(a)
	r.Group(func(r chi.Router) {
		r.Use(auth.RequireAuth(a.SessionStore, a.Logger))

		r.Route("/orders", func(r chi.Router) {
			r.Post("/", handlers.NewPostOrderHandler(svcs).Execute)
			r.Get("/", handlers.NewGetOrdersHandler(svcs).List)
			r.Get("/latest", handlers.NewGetLatestOrderHandler(svcs).Execute)
			r.Get("/{id}", handlers.NewGetOrdersHandler(svcs).Get)
			r.Patch("/{id}/status", handlers.NewPatchStatusHandler(svcs).Execute)
		})
		r.Get("/dashboard", handlers.NewGetDashboardHandler(svcs).Execute)
	})
}
