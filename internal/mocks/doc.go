// Package mocks provides shared test doubles for the store, auth and events
// interfaces.
//
// Store mocks default to in-memory behavior that honors the same uniqueness
// and not-found rules as the real backends; set a function field to override
// a single method:
//
//	users := mocks.NewMockUserStore()
//	users.GetByIDFn = func(ctx context.Context, id string) (*domain.User, error) {
//	    return nil, errors.New("connection reset")
//	}
//
// TestifyMockUserStore is available for tests that prefer expectation-style
// mocks with testify/mock.
package mocks
