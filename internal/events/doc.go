// Package events carries catalog change notifications from the services to
// whoever wants them.
//
// Services emit a CatalogEvent after every successful restaurant or menu
// mutation. Handlers registered on the emitter decide what to do with it:
// the application always logs events and can additionally publish them to
// Kafka (see internal/platform/kafka).
package events
