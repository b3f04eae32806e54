package domain

import (
	"fmt"
	"strings"
	"time"
)

// Restaurant validation errors.
var (
	ErrEmptyRestaurantName = fmt.Errorf("%w: restaurant name cannot be empty", ErrValidation)
	ErrEmptyDescription    = fmt.Errorf("%w: description cannot be empty", ErrValidation)
	ErrEmptyLocation       = fmt.Errorf("%w: location cannot be empty", ErrValidation)
)

// MenuItem is a single dish on a restaurant's menu. It has no lifecycle
// outside its restaurant; the ID is assigned by the store.
type MenuItem struct {
	ID        string  `json:"_id,omitempty"`
	FoodItem  string  `json:"foodItem"`
	Price     float64 `json:"price"`
	Type      string  `json:"type"`
	ItemImage string  `json:"itemImage"`
}

// Restaurant is a restaurant account together with its embedded menu.
type Restaurant struct {
	ID             string     `json:"id"`
	Name           string     `json:"name"`
	Description    string     `json:"description"`
	Location       string     `json:"location"`
	Password       string     `json:"-"` // Plaintext password, used only until hashed
	HashedPassword string     `json:"-"`
	Menu           []MenuItem `json:"menu"`
	OwnerID        string     `json:"ownerId,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}

// NewRestaurant creates a new Restaurant. The menu is copied so later
// changes by the caller do not leak into the entity.
func NewRestaurant(name, description, location, password string, menu []MenuItem) (*Restaurant, error) {
	now := time.Now().UTC()
	r := &Restaurant{
		Name:        strings.TrimSpace(name),
		Description: description,
		Location:    location,
		Password:    password,
		Menu:        copyMenu(menu),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := r.Validate(); err != nil {
		return nil, err
	}

	return r, nil
}

// Validate checks if the Restaurant has valid data.
func (r *Restaurant) Validate() error {
	if r.Name == "" {
		return ErrEmptyRestaurantName
	}
	if r.Description == "" {
		return ErrEmptyDescription
	}
	if r.Location == "" {
		return ErrEmptyLocation
	}
	if r.Password == "" && r.HashedPassword == "" {
		return ErrEmptyPassword
	}
	return nil
}

// IsOwnedBy reports whether userID is the recorded owner of the restaurant.
func (r *Restaurant) IsOwnedBy(userID string) bool {
	return r.OwnerID != "" && r.OwnerID == userID
}

// ReplaceMenu swaps the whole menu for a copy of menu.
func (r *Restaurant) ReplaceMenu(menu []MenuItem) {
	r.Menu = copyMenu(menu)
	r.UpdatedAt = time.Now().UTC()
}

// FindMenuItem returns the index of the item with the given ID, or -1.
func (r *Restaurant) FindMenuItem(itemID string) int {
	if itemID == "" {
		return -1
	}
	for i := range r.Menu {
		if r.Menu[i].ID == itemID {
			return i
		}
	}
	return -1
}

// RemoveMenuItem deletes exactly the item with the given ID, keeping the
// order of the remaining items. The menu is untouched when the item is absent.
func (r *Restaurant) RemoveMenuItem(itemID string) error {
	idx := r.FindMenuItem(itemID)
	if idx < 0 {
		return ErrMenuItemNotFound
	}

	menu := make([]MenuItem, 0, len(r.Menu)-1)
	menu = append(menu, r.Menu[:idx]...)
	menu = append(menu, r.Menu[idx+1:]...)
	r.Menu = menu
	r.UpdatedAt = time.Now().UTC()
	return nil
}

// AssignMenuItemIDs gives every item lacking a usable ID a fresh one from
// newID. IDs rejected by valid, and repeats of an ID already seen, count as
// unusable, so IDs stay unique within the menu.
func AssignMenuItemIDs(menu []MenuItem, valid func(string) bool, newID func() string) {
	seen := make(map[string]struct{}, len(menu))
	for i := range menu {
		id := menu[i].ID
		_, dup := seen[id]
		if id == "" || dup || !valid(id) {
			id = newID()
			menu[i].ID = id
		}
		seen[id] = struct{}{}
	}
}

func copyMenu(menu []MenuItem) []MenuItem {
	out := make([]MenuItem, len(menu))
	copy(out, menu)
	return out
}
