package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/SonJH7/Pium/internal/api"
	apiMiddleware "github.com/SonJH7/Pium/internal/api/middleware"
)

// setupRouter creates and configures the application router with all routes
// and middleware. Returns the configured router.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware)

	authHandler := api.NewAuthHandler(app.userService, app.jwtService)
	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService)

	gardenHandler := api.NewGardenHandler(app.gardenService, app.growthService)
	catalogHandler := api.NewCatalogHandler(app.catalogService)
	profileHandler := api.NewProfileHandler(app.userService)
	tipHandler := api.NewTipHandler(app.tipService)
	contentHandler := api.NewContentHandler(app.contentService)
	adminHandler := api.NewAdminHandler(app.adminService)

	r.Route("/api", func(r chi.Router) {
		// Authentication endpoints (public)
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)
		r.Post("/auth/refresh", authHandler.RefreshToken)

		// Catalog browsing (public)
		r.Get("/catalog", catalogHandler.Search)
		r.Get("/catalog/{speciesID}", catalogHandler.Detail)

		// Routes requiring authentication
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			// Garden and growth endpoints
			r.Get("/garden", gardenHandler.ListGarden)
			r.Post("/garden", gardenHandler.StartGrowing)
			r.Get("/garden/{plantID}", gardenHandler.GetPlant)
			r.Post("/garden/{plantID}/answer", gardenHandler.SubmitAnswer)
			r.Post("/garden/{plantID}/pay-to-pass", gardenHandler.PayToPass)
			r.Post("/garden/{plantID}/reset", gardenHandler.ResetToStart)

			// Profile endpoints
			r.Get("/me", profileHandler.GetProfile)
			r.Post("/me/expert-application", profileHandler.ApplyForExpert)
			r.Get("/me/expert-application", profileHandler.GetExpertApplication)

			// Plant requests
			r.Post("/catalog/requests", catalogHandler.RequestPlant)

			// Expert tip authoring
			r.Group(func(r chi.Router) {
				r.Use(authMiddleware.RequireExpert)
				r.Get("/tips", tipHandler.ListMine)
				r.Post("/tips", tipHandler.Create)
				r.Put("/tips/{tipID}", tipHandler.Update)
				r.Delete("/tips/{tipID}", tipHandler.Delete)
			})

			// Content management
			r.Route("/content", func(r chi.Router) {
				r.Use(authMiddleware.RequireContent)
				r.Post("/species", contentHandler.AddSpecies)
				r.Put("/species/{speciesID}", contentHandler.UpdateSpecies)
				r.Delete("/species/{speciesID}", contentHandler.DeleteSpecies)
				r.Get("/species/{speciesID}/steps", contentHandler.ListSteps)
				r.Post("/species/{speciesID}/steps", contentHandler.AddStep)
				r.Put("/steps/{stepID}", contentHandler.UpdateStep)
				r.Get("/config", contentHandler.GetConfig)
				r.Put("/config", contentHandler.UpdateConfig)
				r.Get("/tips", contentHandler.ListTips)
				r.Put("/tips/{tipID}/visibility", contentHandler.SetTipVisibility)
				r.Get("/requests", contentHandler.ListRequests)
				r.Post("/requests/{requestID}/process", contentHandler.ProcessRequest)
			})

			// Administration
			r.Route("/admin", func(r chi.Router) {
				r.Use(authMiddleware.RequireAdmin)
				r.Get("/applications", adminHandler.ListApplications)
				r.Post("/applications/{userID}/decide", adminHandler.DecideApplication)
				r.Get("/dashboard", adminHandler.Dashboard)
				r.Get("/audit", adminHandler.ListAudit)
			})
		})
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	return r
}
