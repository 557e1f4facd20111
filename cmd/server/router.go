package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/fahrvergleich/fahrvergleich-api/internal/api"
	apiMiddleware "github.com/fahrvergleich/fahrvergleich-api/internal/api/middleware"
)

// setupRouter creates and configures the application router with all routes
// and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware)

	authHandler := api.NewAuthHandler(app.accountService, app.jwtService, app.tokenLifetime())
	comparisonHandler := api.NewComparisonHandler(app.comparisonService)
	dashboardHandler := api.NewDashboardHandler(app.dashboardService)
	billingHandler := api.NewBillingHandler(app.billingService)
	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService)

	r.Route("/api", func(r chi.Router) {
		// Authentication endpoints (public)
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)
		r.Post("/auth/refresh", authHandler.RefreshToken)

		// Public comparison endpoints
		r.Get("/cities", comparisonHandler.ListCities)
		r.Get("/levels", comparisonHandler.Levels)
		r.Get("/schools", comparisonHandler.CompareCity)
		r.Get("/schools/{schoolID}", comparisonHandler.GetSchool)
		r.Post("/schools/{schoolID}/events", comparisonHandler.TrackEvent)

		// Stripe calls this endpoint; authentication happens via the
		// webhook signature, not a bearer token.
		r.Post("/billing/webhook", billingHandler.Webhook)

		// Protected school-owner routes
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			r.Get("/profile/school", dashboardHandler.GetProfile)
			r.Get("/profile/school/prices", dashboardHandler.GetPriceBreakdown)
			r.Put("/profile/school/prices", dashboardHandler.UpdatePrices)
			r.Put("/profile/school/settings", dashboardHandler.UpdateSettings)
			r.Get("/profile/statistics", dashboardHandler.GetStatistics)

			r.Post("/billing/checkout-session", billingHandler.CreateCheckoutSession)
		})
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("failed to write health check response", "error", err)
		}
	})

	return r
}
