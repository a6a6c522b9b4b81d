package events

import "context"

// Publisher defines the interface for emitting encounter events
type Publisher interface {
	// Publish emits an event. Implementations must not block the pipeline on
	// broker outages longer than their configured timeout.
	Publish(ctx context.Context, event *EncounterEvent) error
	// Close flushes and releases the underlying producer
	Close() error
}
