//go:build integration

package testdb

import (
	"context"
	"os"
	"testing"

	"github.com/phrazzld/food-delivery-api/internal/platform/mongodb"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// ShouldSkipMongoTest reports whether no mongo test server is configured.
func ShouldSkipMongoTest() bool {
	return os.Getenv(MongoURIEnv) == ""
}

// GetTestMongoDatabaseWithT returns a uniquely named database with the
// store indexes in place. It is dropped when the test ends. The test is
// skipped when MongoURIEnv is unset.
func GetTestMongoDatabaseWithT(t *testing.T) *mongo.Database {
	t.Helper()

	if ShouldSkipMongoTest() {
		t.Skip(MongoURIEnv + " not set - skipping integration test")
	}

	ctx, cancel := context.WithTimeout(context.Background(), TestTimeout)
	defer cancel()

	client, err := mongodb.Connect(ctx, os.Getenv(MongoURIEnv), TestTimeout)
	require.NoError(t, err, "failed to connect to test mongo")

	db := client.Database("food_delivery_test_" + primitive.NewObjectID().Hex())
	t.Cleanup(func() {
		if err := db.Drop(context.Background()); err != nil {
			t.Logf("failed to drop test database: %v", err)
		}
		_ = client.Disconnect(context.Background())
	})

	require.NoError(t, mongodb.EnsureIndexes(ctx, db, nil), "failed to create indexes")
	return db
}
