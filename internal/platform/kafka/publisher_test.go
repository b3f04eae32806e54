package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/phrazzld/food-delivery-api/internal/config"
	"github.com/phrazzld/food-delivery-api/internal/events"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingWriter struct {
	messages []kafka.Message
	err      error
	closed   bool
}

func (w *recordingWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.messages = append(w.messages, msgs...)
	return nil
}

func (w *recordingWriter) Close() error {
	w.closed = true
	return nil
}

func TestPublisherHandleEvent(t *testing.T) {
	t.Parallel()

	w := &recordingWriter{}
	p := newPublisher(w, "catalog-events", nil)

	event, err := events.NewCatalogEvent(events.TypeMenuUpdated, "r1", events.MenuUpdatedPayload{
		UpdatedBy: "u1",
		ItemIDs:   []string{"a", "b"},
	})
	require.NoError(t, err)

	require.NoError(t, p.HandleEvent(context.Background(), event))
	require.Len(t, w.messages, 1)

	msg := w.messages[0]
	assert.Equal(t, "r1", string(msg.Key))
	require.Len(t, msg.Headers, 2)
	assert.Equal(t, "event_type", msg.Headers[0].Key)
	assert.Equal(t, events.TypeMenuUpdated, string(msg.Headers[0].Value))

	var decoded events.CatalogEvent
	require.NoError(t, json.Unmarshal(msg.Value, &decoded))
	assert.Equal(t, event.ID, decoded.ID)
	assert.Equal(t, "r1", decoded.RestaurantID)

	require.NoError(t, p.Close())
	assert.True(t, w.closed)
}

func TestPublisherWriteFailure(t *testing.T) {
	t.Parallel()

	w := &recordingWriter{err: errors.New("leader not available")}
	p := newPublisher(w, "catalog-events", nil)

	event, err := events.NewCatalogEvent(events.TypeMenuItemDeleted, "r1", events.MenuItemDeletedPayload{ItemID: "x"})
	require.NoError(t, err)

	err = p.HandleEvent(context.Background(), event)
	assert.ErrorContains(t, err, "leader not available")
}

func TestNewWriter(t *testing.T) {
	t.Parallel()

	w := NewWriter(config.KafkaConfig{
		Enabled: true,
		Brokers: []string{"localhost:9092", "localhost:9093"},
		Topic:   "catalog-events",
	})

	assert.Equal(t, "catalog-events", w.Topic)
	assert.Equal(t, "tcp,tcp", w.Addr.Network())
	assert.Equal(t, "localhost:9092,localhost:9093", w.Addr.String())
	assert.True(t, w.AllowAutoTopicCreation)
}
