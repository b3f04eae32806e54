package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/phrazzld/food-delivery-api/internal/api"
	apiMiddleware "github.com/phrazzld/food-delivery-api/internal/api/middleware"
)

// setupRouter creates the router with all routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware(app.logger))
	if app.metrics != nil {
		r.Use(app.metrics.Middleware)
	}

	accountHandler := api.NewAccountHandler(app.accountService, app.logger)
	catalogHandler := api.NewCatalogHandler(app.catalogService, app.logger)
	authMiddleware := apiMiddleware.NewAuthMiddleware(app.userTokens, app.restaurantTokens, app.logger)

	r.Route("/api", func(r chi.Router) {
		r.Post("/signup", accountHandler.Signup)
		r.Post("/login", accountHandler.Login)
		r.Post("/restaurant/signup", accountHandler.RestaurantSignup)
		r.Post("/restaurant/login", accountHandler.RestaurantLogin)

		// Catalog routes identify the caller in the body; a bearer
		// token, when sent, must name the same account.
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.OptionalAuthenticate)
			r.Post("/restaurant", catalogHandler.AddRestaurant)
			r.Put("/update-menu/{restaurantId}", catalogHandler.UpdateMenu)
			r.Delete("/delete-menu-item/{restaurantId}/{itemId}", catalogHandler.DeleteMenuItem)
		})
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("failed to write health check response", "error", err)
		}
	})

	if app.metrics != nil {
		r.Handle("/metrics", app.metrics.Handler())
	}

	return r
}
