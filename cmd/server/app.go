package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/phrazzld/food-delivery-api/internal/config"
	"github.com/phrazzld/food-delivery-api/internal/events"
	"github.com/phrazzld/food-delivery-api/internal/platform/kafka"
	"github.com/phrazzld/food-delivery-api/internal/platform/metrics"
	"github.com/phrazzld/food-delivery-api/internal/service"
	"github.com/phrazzld/food-delivery-api/internal/service/auth"
)

// application holds all the shared application dependencies to simplify
// management and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger

	storage *storage

	userTokens       auth.JWTService
	restaurantTokens auth.JWTService

	accountService service.AccountService
	catalogService service.CatalogService

	eventEmitter *events.InMemoryEventEmitter
	publisher    *kafka.Publisher
	metrics      *metrics.Metrics
}

// newApplication creates an application over already opened storage.
// The application takes ownership of the storage and closes it in cleanup.
func newApplication(cfg *config.Config, logger *slog.Logger, st *storage) (*application, error) {
	app := &application{
		config:  cfg,
		logger:  logger,
		storage: st,
	}

	var err error
	app.userTokens, err = auth.NewUserJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize user token service: %w", err)
	}
	app.restaurantTokens, err = auth.NewRestaurantJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize restaurant token service: %w", err)
	}
	logger.Info("token services initialized",
		"token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes)

	hasher := auth.NewBcryptHasher(cfg.Auth.BcryptCost)
	verifier := auth.NewBcryptVerifier()

	app.eventEmitter = events.NewInMemoryEventEmitter(logger)
	app.eventEmitter.RegisterHandler(events.NewLoggingHandler(logger))
	if cfg.Metrics.Enabled {
		app.metrics = metrics.New()
		app.eventEmitter.RegisterHandler(app.metrics)
	}
	if cfg.Kafka.Enabled {
		app.publisher = kafka.NewPublisher(cfg.Kafka, logger)
		app.eventEmitter.RegisterHandler(app.publisher)
		logger.Info("kafka event publisher enabled", "topic", cfg.Kafka.Topic)
	}

	app.accountService, err = service.NewAccountService(
		st.users,
		st.restaurants,
		hasher,
		verifier,
		app.userTokens,
		app.restaurantTokens,
		logger,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create account service: %w", err)
	}

	app.catalogService, err = service.NewCatalogService(
		st.users,
		st.restaurants,
		hasher,
		app.eventEmitter,
		logger,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create catalog service: %w", err)
	}

	logger.Info("application initialized successfully")
	return app, nil
}

// Run serves HTTP until the process is signalled or ctx is canceled.
func (app *application) Run(ctx context.Context) error {
	if err := app.startHTTPServer(ctx, app.setupRouter()); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.publisher != nil {
		if err := app.publisher.Close(); err != nil {
			app.logger.Error("error closing kafka publisher", "error", err)
		}
	}

	app.storage.close(app.logger)

	app.logger.Info("application shutdown completed")
}
