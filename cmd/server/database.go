package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/phrazzld/food-delivery-api/internal/config"
	"github.com/phrazzld/food-delivery-api/internal/platform/mongodb"
	"github.com/phrazzld/food-delivery-api/internal/platform/postgres"
	"github.com/phrazzld/food-delivery-api/internal/store"
)

// storage bundles the stores of the configured backend with the function
// that releases its connections.
type storage struct {
	users       store.UserStore
	restaurants store.RestaurantStore
	closeFn     func(ctx context.Context) error
}

// close releases the backend connections, logging failures.
func (s *storage) close(l *slog.Logger) {
	if s == nil || s.closeFn == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := s.closeFn(ctx); err != nil {
		l.Error("failed to close database connection", "error", err)
	}
}

// openStorage connects to the configured backend and prepares it: unique
// indexes for mongo, pending migrations for postgres.
func openStorage(ctx context.Context, cfg *config.Config, l *slog.Logger) (*storage, error) {
	timeout := time.Duration(cfg.Database.ConnectTimeoutSeconds) * time.Second

	switch cfg.Database.Driver {
	case config.DriverMongo:
		client, err := mongodb.Connect(ctx, cfg.Database.MongoURI, timeout)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to mongo: %w", err)
		}
		db := client.Database(cfg.Database.MongoDatabase)

		if err := mongodb.EnsureIndexes(ctx, db, l); err != nil {
			_ = client.Disconnect(context.Background())
			return nil, fmt.Errorf("failed to ensure mongo indexes: %w", err)
		}

		l.Info("database connection established",
			"driver", config.DriverMongo,
			"database", cfg.Database.MongoDatabase)
		return &storage{
			users:       mongodb.NewMongoUserStore(db, l),
			restaurants: mongodb.NewMongoRestaurantStore(db, l),
			closeFn:     client.Disconnect,
		}, nil

	case config.DriverPostgres:
		db, err := postgres.Open(ctx, cfg.Database.PostgresURL, timeout)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to postgres: %w", err)
		}

		if err := postgres.Migrate(ctx, db, postgres.MigrateUp, l); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to apply migrations: %w", err)
		}

		l.Info("database connection established", "driver", config.DriverPostgres)
		return &storage{
			users:       postgres.NewPostgresUserStore(db, l),
			restaurants: postgres.NewPostgresRestaurantStore(db, l),
			closeFn:     func(context.Context) error { return db.Close() },
		}, nil

	default:
		return nil, fmt.Errorf("unsupported database driver: %s", cfg.Database.Driver)
	}
}

// runMigrations executes a single goose command against the postgres backend.
func runMigrations(ctx context.Context, cfg *config.Config, command string, l *slog.Logger) error {
	if cfg.Database.Driver != config.DriverPostgres {
		return fmt.Errorf("migrations require the %s driver, configured driver is %s",
			config.DriverPostgres, cfg.Database.Driver)
	}

	timeout := time.Duration(cfg.Database.ConnectTimeoutSeconds) * time.Second
	db, err := postgres.Open(ctx, cfg.Database.PostgresURL, timeout)
	if err != nil {
		return fmt.Errorf("failed to connect to postgres: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			l.Error("failed to close database connection", "error", err)
		}
	}()

	return postgres.Migrate(ctx, db, command, l)
}
