package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/fahrvergleich/fahrvergleich-api/internal/config"
	"github.com/fahrvergleich/fahrvergleich-api/internal/platform/payment"
	"github.com/fahrvergleich/fahrvergleich-api/internal/platform/postgres"
	"github.com/fahrvergleich/fahrvergleich-api/internal/service"
	"github.com/fahrvergleich/fahrvergleich-api/internal/service/auth"
	"github.com/fahrvergleich/fahrvergleich-api/internal/store"
)

// application holds all the shared application dependencies to simplify
// management and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	// Stores (using interfaces for proper abstraction)
	adminStore     store.AdminStore
	schoolStore    store.SchoolStore
	analyticsStore store.AnalyticsStore

	// Service interfaces
	jwtService        auth.JWTService
	passwordVerifier  auth.PasswordVerifier
	paymentProvider   service.PaymentProvider
	accountService    service.AccountService
	comparisonService service.ComparisonService
	dashboardService  service.DashboardService
	billingService    service.BillingService
}

// newApplication creates a new application instance with all dependencies
// initialized. It accepts core dependencies like configuration, logger, and
// database connection that must be established beforehand.
func newApplication(cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	var err error
	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	logger.Info("JWT authentication service initialized",
		"token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes)

	app.passwordVerifier = auth.NewBcryptVerifier()

	bcryptCost := cfg.Auth.BCryptCost
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}

	app.adminStore = postgres.NewPostgresAdminStore(db, bcryptCost, logger)
	app.schoolStore = postgres.NewPostgresSchoolStore(db, logger)
	app.analyticsStore = postgres.NewPostgresAnalyticsStore(db, logger)

	app.paymentProvider, err = payment.NewStripeProvider(
		cfg.Payment,
		logger.With("component", "payment_provider"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize payment provider: %w", err)
	}

	app.accountService = service.NewAccountService(
		app.adminStore,
		app.schoolStore,
		app.passwordVerifier,
		db,
		logger,
	)

	app.comparisonService = service.NewComparisonService(
		app.schoolStore,
		app.analyticsStore,
		logger,
	)

	app.dashboardService = service.NewDashboardService(
		app.schoolStore,
		app.analyticsStore,
		db,
		logger,
	)

	app.billingService = service.NewBillingService(
		app.adminStore,
		app.schoolStore,
		app.paymentProvider,
		logger,
	)

	logger.Info("application initialized successfully")
	return app, nil
}

// Run starts the application server, handling lifecycle and cleanup.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

// tokenLifetime returns the configured access token lifetime as a duration.
func (app *application) tokenLifetime() time.Duration {
	return time.Duration(app.config.Auth.TokenLifetimeMinutes) * time.Minute
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("error closing database connection", "error", err)
		}
	}

	app.logger.Info("application shutdown completed")
}
