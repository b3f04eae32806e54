//go:build integration

package testdb

import (
	"context"
	"database/sql"
	"os"
	"testing"
	"time"

	"github.com/phrazzld/food-delivery-api/internal/platform/postgres"
	"github.com/stretchr/testify/require"
)

// Environment variables naming the test databases.
const (
	PostgresURLEnv = "FOOD_TEST_POSTGRES_URL"
	MongoURIEnv    = "FOOD_TEST_MONGO_URI"
)

// TestTimeout bounds connection attempts and schema setup.
const TestTimeout = 10 * time.Second

// ShouldSkipPostgresTest reports whether no postgres test database is configured.
func ShouldSkipPostgresTest() bool {
	return os.Getenv(PostgresURLEnv) == ""
}

// GetTestDBWithT connects to the postgres test database and applies all
// migrations. The test is skipped when PostgresURLEnv is unset, and the
// connection is closed when the test ends.
func GetTestDBWithT(t *testing.T) *sql.DB {
	t.Helper()

	if ShouldSkipPostgresTest() {
		t.Skip(PostgresURLEnv + " not set - skipping integration test")
	}

	ctx, cancel := context.WithTimeout(context.Background(), TestTimeout)
	defer cancel()

	db, err := postgres.Open(ctx, os.Getenv(PostgresURLEnv), TestTimeout)
	require.NoError(t, err, "failed to connect to test database")
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Logf("failed to close test database: %v", err)
		}
	})

	require.NoError(t, postgres.Migrate(ctx, db, postgres.MigrateUp, nil), "failed to migrate test database")
	return db
}

// WithTx runs fn inside a transaction that is rolled back afterwards, so
// nothing fn writes outlives the test.
func WithTx(t *testing.T, db *sql.DB, fn func(t *testing.T, tx *sql.Tx)) {
	t.Helper()

	tx, err := db.BeginTx(context.Background(), nil)
	require.NoError(t, err, "failed to begin transaction")
	defer func() {
		if err := tx.Rollback(); err != nil && err != sql.ErrTxDone {
			t.Logf("failed to roll back test transaction: %v", err)
		}
	}()

	fn(t, tx)
}
