package store

import (
	"context"

	"github.com/phrazzld/food-delivery-api/internal/domain"
)

// RestaurantStore defines the interface for restaurant persistence.
// Menus are embedded in the restaurant document and have no storage of
// their own.
type RestaurantStore interface {
	// Create saves a new restaurant, setting restaurant.ID and the ID of every
	// menu item that lacks a usable one.
	// Returns ErrRestaurantExists if the name is already taken.
	Create(ctx context.Context, restaurant *domain.Restaurant) error

	// GetByID retrieves a restaurant by identifier.
	// Returns ErrRestaurantNotFound if it does not exist or the ID is malformed.
	GetByID(ctx context.Context, id string) (*domain.Restaurant, error)

	// GetByName retrieves a restaurant by its unique name.
	// Returns ErrRestaurantNotFound if it does not exist.
	GetByName(ctx context.Context, name string) (*domain.Restaurant, error)

	// UpdateMenu replaces the stored menu of the restaurant. Items in menu that
	// lack a usable ID are assigned one in place before writing.
	// Returns ErrRestaurantNotFound if the restaurant does not exist; nothing
	// is created in that case.
	UpdateMenu(ctx context.Context, id string, menu []domain.MenuItem) error
}
