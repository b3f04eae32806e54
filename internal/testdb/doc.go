//go:build integration

// Package testdb provides helpers for tests that run against real databases.
//
// Postgres tests run inside a transaction that is always rolled back, so
// they can run in parallel without cleanup. Mongo tests get a throwaway
// database that is dropped when the test ends.
//
// Tests are skipped when the connection variables are unset:
//
//   - FOOD_TEST_POSTGRES_URL: postgres connection string
//   - FOOD_TEST_MONGO_URI: mongo connection string
//
// Typical use:
//
//	func TestSomething(t *testing.T) {
//	    db := testdb.GetTestDBWithT(t)
//	    testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
//	        users := postgres.NewPostgresUserStore(tx, nil)
//	        ...
//	    })
//	}
package testdb
