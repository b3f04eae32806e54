package api

import (
	"github.com/phrazzld/food-delivery-api/internal/domain"
)

// SignupRequest defines the payload for the user registration endpoint.
type SignupRequest struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,max=72"`
}

// LoginRequest defines the payload for the user login endpoint.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// MenuItemRequest is a menu item as sent by clients. ID is optional; items
// without a valid ID get one assigned when stored.
type MenuItemRequest struct {
	ID        string  `json:"_id,omitempty"`
	FoodItem  string  `json:"foodItem"`
	Price     float64 `json:"price"     validate:"gte=0"`
	Type      string  `json:"type"`
	ItemImage string  `json:"itemImage" validate:"omitempty,url"`
}

// RestaurantSignupRequest defines the payload for restaurant registration.
type RestaurantSignupRequest struct {
	Name        string            `json:"name"        validate:"required"`
	Password    string            `json:"password"    validate:"required,max=72"`
	Description string            `json:"description" validate:"required"`
	Location    string            `json:"location"    validate:"required"`
	Menu        []MenuItemRequest `json:"menu"        validate:"dive"`
}

// RestaurantLoginRequest defines the payload for restaurant login.
type RestaurantLoginRequest struct {
	Name     string `json:"name"     validate:"required"`
	Password string `json:"password" validate:"required"`
}

// AddRestaurantRequest defines the payload for a superuser adding a
// restaurant. Password is optional; one is generated when absent.
type AddRestaurantRequest struct {
	UserID      string            `json:"userId"`
	Name        string            `json:"name"        validate:"required"`
	Description string            `json:"description" validate:"required"`
	Location    string            `json:"location"    validate:"required"`
	Password    string            `json:"password"    validate:"omitempty,max=72"`
	Menu        []MenuItemRequest `json:"menu"        validate:"dive"`
}

// UpdateMenuRequest defines the payload for replacing a restaurant's menu.
// Role is "user" (the default) or "restaurant"; any other value is refused
// by the catalog service.
type UpdateMenuRequest struct {
	UserID string            `json:"userId"`
	Role   string            `json:"role"`
	Menu   []MenuItemRequest `json:"menu"   validate:"dive"`
}

// DeleteMenuItemRequest defines the payload for deleting a menu item.
type DeleteMenuItemRequest struct {
	UserID string `json:"userId"`
	Role   string `json:"role"`
}

// TokenResponse is returned by the login endpoints.
type TokenResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
}

// RestaurantResponse is returned when a restaurant is created.
// InitialPassword is only present when the server generated it.
type RestaurantResponse struct {
	Message         string `json:"message"`
	RestaurantID    string `json:"restaurantId,omitempty"`
	InitialPassword string `json:"initialPassword,omitempty"`
}

// MenuResponse is returned after a menu update and carries the stored
// menu, including the IDs assigned to new items.
type MenuResponse struct {
	Message string            `json:"message"`
	Menu    []domain.MenuItem `json:"menu"`
}

func toMenu(items []MenuItemRequest) []domain.MenuItem {
	menu := make([]domain.MenuItem, len(items))
	for i, item := range items {
		menu[i] = domain.MenuItem{
			ID:        item.ID,
			FoodItem:  item.FoodItem,
			Price:     item.Price,
			Type:      item.Type,
			ItemImage: item.ItemImage,
		}
	}
	return menu
}
