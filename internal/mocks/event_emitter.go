package mocks

import (
	"context"
	"sync"

	"github.com/phrazzld/food-delivery-api/internal/events"
)

// RecordingEmitter implements events.EventEmitter by remembering every event.
type RecordingEmitter struct {
	// Err, when set, is returned from EmitEvent after recording the event.
	Err error

	mu     sync.Mutex
	events []*events.CatalogEvent
}

var _ events.EventEmitter = (*RecordingEmitter)(nil)

// EmitEvent implements events.EventEmitter.
func (r *RecordingEmitter) EmitEvent(_ context.Context, event *events.CatalogEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
	return r.Err
}

// Events returns the recorded events in emission order.
func (r *RecordingEmitter) Events() []*events.CatalogEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*events.CatalogEvent, len(r.events))
	copy(out, r.events)
	return out
}

// Types returns the types of the recorded events in emission order.
func (r *RecordingEmitter) Types() []string {
	recorded := r.Events()
	types := make([]string, len(recorded))
	for i, e := range recorded {
		types[i] = e.Type
	}
	return types
}
