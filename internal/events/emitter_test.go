package events

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryEventEmitter(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	newEvent := func(t *testing.T) *CatalogEvent {
		event, err := NewCatalogEvent(TypeMenuUpdated, "r1", MenuUpdatedPayload{UpdatedBy: "u1"})
		require.NoError(t, err)
		return event
	}

	t.Run("emit event with no handlers", func(t *testing.T) {
		emitter := NewInMemoryEventEmitter(logger)
		assert.NoError(t, emitter.EmitEvent(context.Background(), newEvent(t)))
	})

	t.Run("emit event with successful handlers", func(t *testing.T) {
		emitter := NewInMemoryEventEmitter(logger)
		handler1 := &MockEventHandler{}
		handler2 := &MockEventHandler{}
		emitter.RegisterHandler(handler1)
		emitter.RegisterHandler(handler2)

		event := newEvent(t)
		require.NoError(t, emitter.EmitEvent(context.Background(), event))

		assert.Equal(t, 1, handler1.HandledCount)
		assert.Equal(t, 1, handler2.HandledCount)
		assert.Equal(t, event, handler1.LastEvent)
		assert.Equal(t, event, handler2.LastEvent)
	})

	t.Run("emit event with failing handler", func(t *testing.T) {
		emitter := NewInMemoryEventEmitter(logger)
		failingHandler := &MockEventHandler{HandlerError: errors.New("handler error")}
		successHandler := &MockEventHandler{}
		emitter.RegisterHandler(failingHandler)
		emitter.RegisterHandler(successHandler)

		err := emitter.EmitEvent(context.Background(), newEvent(t))
		assert.EqualError(t, err, "handler error")

		// Later handlers still receive the event.
		assert.Equal(t, 1, failingHandler.HandledCount)
		assert.Equal(t, 1, successHandler.HandledCount)
	})
}

func TestLoggingHandler(t *testing.T) {
	var buf bytes.Buffer
	handler := NewLoggingHandler(slog.New(slog.NewJSONHandler(&buf, nil)))

	event, err := NewCatalogEvent(TypeRestaurantCreated, "r42", RestaurantCreatedPayload{Name: "Pizzeria", MenuItems: 3})
	require.NoError(t, err)

	require.NoError(t, handler.HandleEvent(context.Background(), event))

	out := buf.String()
	assert.Contains(t, out, `"event_type":"restaurant.created"`)
	assert.Contains(t, out, `"restaurant_id":"r42"`)
	assert.Contains(t, out, `"component":"catalog_events"`)
}
