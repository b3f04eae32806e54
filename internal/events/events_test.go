package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCatalogEvent(t *testing.T) {
	payload := MenuItemDeletedPayload{DeletedBy: "u1", ItemID: "item-7"}

	event, err := NewCatalogEvent(TypeMenuItemDeleted, "r1", payload)

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, event.ID)
	assert.Equal(t, TypeMenuItemDeleted, event.Type)
	assert.Equal(t, "r1", event.RestaurantID)
	assert.WithinDuration(t, time.Now(), event.CreatedAt, 2*time.Second)

	var decoded MenuItemDeletedPayload
	require.NoError(t, event.UnmarshalPayload(&decoded))
	assert.Equal(t, payload, decoded)

	raw, err := json.Marshal(event)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"restaurant_id":"r1"`)
	assert.Contains(t, string(raw), `"item_id":"item-7"`)
}

func TestNewCatalogEventRejectsUnencodablePayload(t *testing.T) {
	_, err := NewCatalogEvent(TypeMenuUpdated, "r1", make(chan int))
	assert.Error(t, err)
}

// MockEventHandler implements the EventHandler interface for testing
type MockEventHandler struct {
	// The last event received by this handler
	LastEvent *CatalogEvent

	// Error to return from HandleEvent
	HandlerError error

	// Count of events handled
	HandledCount int
}

// HandleEvent implements the EventHandler interface
func (h *MockEventHandler) HandleEvent(ctx context.Context, event *CatalogEvent) error {
	h.LastEvent = event
	h.HandledCount++
	return h.HandlerError
}

func TestEventHandlerFunc(t *testing.T) {
	var got *CatalogEvent
	handler := EventHandlerFunc(func(_ context.Context, e *CatalogEvent) error {
		got = e
		return errors.New("boom")
	})

	event, err := NewCatalogEvent(TypeRestaurantCreated, "r1", RestaurantCreatedPayload{Name: "Pizzeria"})
	require.NoError(t, err)

	assert.EqualError(t, handler.HandleEvent(context.Background(), event), "boom")
	assert.Same(t, event, got)
}
