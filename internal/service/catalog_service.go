package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/phrazzld/food-delivery-api/internal/domain"
	"github.com/phrazzld/food-delivery-api/internal/events"
	"github.com/phrazzld/food-delivery-api/internal/service/auth"
	"github.com/phrazzld/food-delivery-api/internal/store"
)

// Role names the kind of account making a catalog request.
type Role string

// Caller roles. An empty role is treated as RoleUser.
const (
	RoleUser       Role = "user"
	RoleRestaurant Role = "restaurant"
)

// Caller identifies who is performing a catalog mutation.
type Caller struct {
	ID   string
	Role Role
}

// initialPasswordBytes is the entropy of generated restaurant passwords.
const initialPasswordBytes = 18

// AddRestaurantResult is the outcome of AddRestaurant.
type AddRestaurantResult struct {
	Restaurant *domain.Restaurant

	// InitialPassword is set only when the password was generated; it is
	// the only time the plaintext is available.
	InitialPassword string
}

// CatalogService creates restaurants and changes their menus.
type CatalogService interface {
	// AddRestaurant creates a restaurant on behalf of a superuser, who becomes
	// its owner. An empty in.Password makes the service generate one.
	// Returns ErrForbidden unless userID names an existing superuser.
	AddRestaurant(ctx context.Context, userID string, in RestaurantInput) (*AddRestaurantResult, error)

	// UpdateMenu replaces the whole menu of a restaurant and returns the
	// updated restaurant with every menu item carrying an ID.
	UpdateMenu(ctx context.Context, restaurantID string, caller Caller, menu []domain.MenuItem) (*domain.Restaurant, error)

	// DeleteMenuItem removes exactly one item from a restaurant's menu.
	// Returns domain.ErrMenuItemNotFound, leaving the menu untouched, when the
	// item is absent.
	DeleteMenuItem(ctx context.Context, restaurantID, itemID string, caller Caller) error
}

type catalogService struct {
	users            store.UserStore
	restaurants      store.RestaurantStore
	hasher           auth.PasswordHasher
	emitter          events.EventEmitter
	generatePassword func() (string, error)
	logger           *slog.Logger
}

var _ CatalogService = (*catalogService)(nil)

// NewCatalogService creates a CatalogService. emitter may be nil, in which
// case no events are published.
func NewCatalogService(
	users store.UserStore,
	restaurants store.RestaurantStore,
	hasher auth.PasswordHasher,
	emitter events.EventEmitter,
	logger *slog.Logger,
) (CatalogService, error) {
	if users == nil || restaurants == nil {
		return nil, fmt.Errorf("catalog service requires user and restaurant stores")
	}
	if hasher == nil {
		return nil, fmt.Errorf("catalog service requires a password hasher")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &catalogService{
		users:       users,
		restaurants: restaurants,
		hasher:      hasher,
		emitter:     emitter,
		generatePassword: func() (string, error) {
			return auth.GenerateSecurePassword(initialPasswordBytes)
		},
		logger: logger.With("component", "catalog_service"),
	}, nil
}

// AddRestaurant implements CatalogService.
func (s *catalogService) AddRestaurant(
	ctx context.Context,
	userID string,
	in RestaurantInput,
) (*AddRestaurantResult, error) {
	user, err := s.resolveUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !user.Superuser {
		s.logger.Debug("add restaurant rejected: not a superuser", "user_id", userID)
		return nil, ErrForbidden
	}

	result := &AddRestaurantResult{}
	if in.Password == "" {
		in.Password, err = s.generatePassword()
		if err != nil {
			return nil, fmt.Errorf("failed to generate restaurant password: %w", err)
		}
		result.InitialPassword = in.Password
	}

	restaurant, err := buildRestaurant(s.hasher, in)
	if err != nil {
		return nil, fmt.Errorf("failed to add restaurant: %w", err)
	}
	restaurant.OwnerID = user.ID

	if err := s.restaurants.Create(ctx, restaurant); err != nil {
		if !errors.Is(err, store.ErrRestaurantExists) {
			s.logger.Error("failed to save restaurant", "error", err)
		}
		return nil, fmt.Errorf("failed to add restaurant: %w", err)
	}

	s.logger.Info("restaurant added",
		"restaurant_id", restaurant.ID,
		"owner_id", user.ID)
	s.emit(ctx, events.TypeRestaurantCreated, restaurant.ID, events.RestaurantCreatedPayload{
		Name:      restaurant.Name,
		OwnerID:   restaurant.OwnerID,
		MenuItems: len(restaurant.Menu),
	})

	result.Restaurant = restaurant
	return result, nil
}

// UpdateMenu implements CatalogService.
func (s *catalogService) UpdateMenu(
	ctx context.Context,
	restaurantID string,
	caller Caller,
	menu []domain.MenuItem,
) (*domain.Restaurant, error) {
	restaurant, err := s.authorize(ctx, restaurantID, caller)
	if err != nil {
		return nil, err
	}

	restaurant.ReplaceMenu(menu)
	if err := s.restaurants.UpdateMenu(ctx, restaurant.ID, restaurant.Menu); err != nil {
		return nil, fmt.Errorf("failed to update menu: %w", err)
	}

	itemIDs := make([]string, len(restaurant.Menu))
	for i, item := range restaurant.Menu {
		itemIDs[i] = item.ID
	}
	s.logger.Info("menu updated",
		"restaurant_id", restaurant.ID,
		"menu_items", len(itemIDs))
	s.emit(ctx, events.TypeMenuUpdated, restaurant.ID, events.MenuUpdatedPayload{
		UpdatedBy: caller.ID,
		ItemIDs:   itemIDs,
	})

	return restaurant, nil
}

// DeleteMenuItem implements CatalogService.
func (s *catalogService) DeleteMenuItem(ctx context.Context, restaurantID, itemID string, caller Caller) error {
	restaurant, err := s.authorize(ctx, restaurantID, caller)
	if err != nil {
		return err
	}

	if err := restaurant.RemoveMenuItem(itemID); err != nil {
		return err
	}

	if err := s.restaurants.UpdateMenu(ctx, restaurant.ID, restaurant.Menu); err != nil {
		return fmt.Errorf("failed to delete menu item: %w", err)
	}

	s.logger.Info("menu item deleted",
		"restaurant_id", restaurant.ID,
		"item_id", itemID)
	s.emit(ctx, events.TypeMenuItemDeleted, restaurant.ID, events.MenuItemDeletedPayload{
		DeletedBy: caller.ID,
		ItemID:    itemID,
	})

	return nil
}

// authorize resolves the caller, loads the target restaurant and checks the
// caller may change it, in that order: an unknown caller is ErrForbidden, a
// missing restaurant is store.ErrRestaurantNotFound, and a caller without
// rights is ErrForbidden.
func (s *catalogService) authorize(ctx context.Context, restaurantID string, caller Caller) (*domain.Restaurant, error) {
	switch caller.Role {
	case RoleUser, "":
		user, err := s.resolveUser(ctx, caller.ID)
		if err != nil {
			return nil, err
		}

		restaurant, err := s.loadRestaurant(ctx, restaurantID)
		if err != nil {
			return nil, err
		}

		if !user.Superuser && !restaurant.IsOwnedBy(user.ID) {
			s.logger.Debug("catalog change rejected: not owner",
				"user_id", user.ID,
				"restaurant_id", restaurant.ID)
			return nil, ErrForbidden
		}
		return restaurant, nil

	case RoleRestaurant:
		self, err := s.restaurants.GetByID(ctx, caller.ID)
		if err != nil {
			if errors.Is(err, store.ErrRestaurantNotFound) {
				s.logger.Debug("catalog change rejected: unknown restaurant caller", "caller_id", caller.ID)
				return nil, ErrForbidden
			}
			return nil, fmt.Errorf("failed to load caller: %w", err)
		}
		if self.ID == restaurantID {
			return self, nil
		}

		restaurant, err := s.loadRestaurant(ctx, restaurantID)
		if err != nil {
			return nil, err
		}
		s.logger.Debug("catalog change rejected: restaurant acting on another restaurant",
			"caller_id", self.ID,
			"restaurant_id", restaurant.ID)
		return nil, ErrForbidden

	default:
		s.logger.Debug("catalog change rejected: unknown role", "role", caller.Role)
		return nil, ErrForbidden
	}
}

// resolveUser loads a user, mapping an unknown user to ErrForbidden.
func (s *catalogService) resolveUser(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			s.logger.Debug("catalog change rejected: unknown user", "user_id", userID)
			return nil, ErrForbidden
		}
		return nil, fmt.Errorf("failed to load caller: %w", err)
	}
	return user, nil
}

func (s *catalogService) loadRestaurant(ctx context.Context, restaurantID string) (*domain.Restaurant, error) {
	restaurant, err := s.restaurants.GetByID(ctx, restaurantID)
	if err != nil {
		return nil, fmt.Errorf("failed to load restaurant: %w", err)
	}
	return restaurant, nil
}

// emit publishes a catalog event. The mutation is already persisted, so a
// failing handler is logged rather than returned.
func (s *catalogService) emit(ctx context.Context, eventType, restaurantID string, payload interface{}) {
	if s.emitter == nil {
		return
	}

	event, err := events.NewCatalogEvent(eventType, restaurantID, payload)
	if err != nil {
		s.logger.Error("failed to build catalog event", "error", err, "event_type", eventType)
		return
	}

	if err := s.emitter.EmitEvent(ctx, event); err != nil {
		s.logger.Warn("catalog event handler failed",
			"error", err,
			"event_id", event.ID,
			"event_type", eventType)
	}
}
