package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Catalog event types.
const (
	TypeRestaurantCreated = "restaurant.created"
	TypeMenuUpdated       = "menu.updated"
	TypeMenuItemDeleted   = "menu_item.deleted"
)

// CatalogEvent records a change to a restaurant or its menu.
type CatalogEvent struct {
	// ID is a unique identifier for this event
	ID uuid.UUID `json:"id"`

	// Type is one of the Type* constants
	Type string `json:"type"`

	// RestaurantID is the restaurant the change applies to
	RestaurantID string `json:"restaurant_id"`

	// Payload contains the type-specific data serialized as JSON
	Payload json.RawMessage `json:"payload"`

	// CreatedAt is the timestamp when the event was created
	CreatedAt time.Time `json:"created_at"`
}

// RestaurantCreatedPayload is the payload of TypeRestaurantCreated.
type RestaurantCreatedPayload struct {
	Name      string `json:"name"`
	OwnerID   string `json:"owner_id,omitempty"`
	MenuItems int    `json:"menu_items"`
}

// MenuUpdatedPayload is the payload of TypeMenuUpdated.
type MenuUpdatedPayload struct {
	UpdatedBy string   `json:"updated_by"`
	ItemIDs   []string `json:"item_ids"`
}

// MenuItemDeletedPayload is the payload of TypeMenuItemDeleted.
type MenuItemDeletedPayload struct {
	DeletedBy string `json:"deleted_by"`
	ItemID    string `json:"item_id"`
}

// UnmarshalPayload decodes the event payload into the provided structure.
func (e *CatalogEvent) UnmarshalPayload(v interface{}) error {
	return json.Unmarshal(e.Payload, v)
}

// NewCatalogEvent creates a new CatalogEvent with the specified type and payload.
func NewCatalogEvent(eventType, restaurantID string, payload interface{}) (*CatalogEvent, error) {
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	return &CatalogEvent{
		ID:           uuid.New(),
		Type:         eventType,
		RestaurantID: restaurantID,
		Payload:      payloadBytes,
		CreatedAt:    time.Now().UTC(),
	}, nil
}

// EventHandler defines an interface for components that can handle events.
type EventHandler interface {
	// HandleEvent processes the given event within the provided context.
	// Returns an error if the event cannot be handled successfully.
	HandleEvent(ctx context.Context, event *CatalogEvent) error
}

// EventEmitter defines an interface for components that can emit events.
// This allows services to publish events without direct knowledge of handlers.
type EventEmitter interface {
	// EmitEvent publishes the given event to all registered handlers.
	// Returns an error if the event cannot be emitted.
	EmitEvent(ctx context.Context, event *CatalogEvent) error
}

// EventHandlerFunc adapts a function to EventHandler.
type EventHandlerFunc func(ctx context.Context, event *CatalogEvent) error

// HandleEvent calls f(ctx, event).
func (f EventHandlerFunc) HandleEvent(ctx context.Context, event *CatalogEvent) error {
	return f(ctx, event)
}
