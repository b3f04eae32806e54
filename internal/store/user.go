package store

import (
	"context"

	"github.com/phrazzld/food-delivery-api/internal/domain"
)

// UserStore defines the interface for user data persistence.
type UserStore interface {
	// Create saves a new user and sets user.ID to the store-assigned identifier.
	// The user must carry a HashedPassword; plaintext passwords are never stored.
	// Returns ErrUserExists if the username or email is already taken.
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves a user by identifier.
	// Returns ErrUserNotFound if the user does not exist or the ID is malformed.
	GetByID(ctx context.Context, id string) (*domain.User, error)

	// GetByUsername retrieves a user by username.
	// Returns ErrUserNotFound if the user does not exist.
	GetByUsername(ctx context.Context, username string) (*domain.User, error)

	// SetSuperuser sets or clears the superuser flag of the named user.
	// Returns ErrUserNotFound if the user does not exist.
	SetSuperuser(ctx context.Context, username string, superuser bool) error
}
