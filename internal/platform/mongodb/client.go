package mongodb

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Collection names.
const (
	UsersCollection       = "users"
	RestaurantsCollection = "restaurants"
)

// Unique index names created by EnsureIndexes.
const (
	usernameIndex       = "username_unique"
	emailIndex          = "email_unique"
	restaurantNameIndex = "name_unique"
)

// Connect opens a client for uri and verifies it can reach a primary within
// timeout. The caller owns the client and must Disconnect it.
func Connect(ctx context.Context, uri string, timeout time.Duration) (*mongo.Client, error) {
	opts := options.Client().
		ApplyURI(uri).
		SetConnectTimeout(timeout).
		SetServerSelectionTimeout(timeout)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to create mongo client: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping mongo: %w", err)
	}

	return client, nil
}

// EnsureIndexes creates the unique indexes the stores rely on for
// username, email and restaurant name uniqueness. It is idempotent.
func EnsureIndexes(ctx context.Context, db *mongo.Database, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}

	indexes := map[string][]mongo.IndexModel{
		UsersCollection: {
			{
				Keys:    bson.D{{Key: "username", Value: 1}},
				Options: options.Index().SetUnique(true).SetName(usernameIndex),
			},
			{
				Keys:    bson.D{{Key: "email", Value: 1}},
				Options: options.Index().SetUnique(true).SetName(emailIndex),
			},
		},
		RestaurantsCollection: {
			{
				Keys:    bson.D{{Key: "name", Value: 1}},
				Options: options.Index().SetUnique(true).SetName(restaurantNameIndex),
			},
		},
	}

	for collection, models := range indexes {
		names, err := db.Collection(collection).Indexes().CreateMany(ctx, models)
		if err != nil {
			return fmt.Errorf("failed to create indexes on %s: %w", collection, err)
		}
		logger.Debug("indexes ensured",
			slog.String("component", "mongodb"),
			slog.String("collection", collection),
			slog.Any("indexes", names))
	}

	return nil
}
