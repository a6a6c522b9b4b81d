package messaging

import (
	"context"

	"clinical_voice_service/internal/domain/events"
)

type noopPublisher struct{}

// NewNoopPublisher returns a publisher that drops every event. Used when
// messaging is disabled by configuration.
func NewNoopPublisher() events.Publisher {
	return noopPublisher{}
}

func (noopPublisher) Publish(context.Context, *events.EncounterEvent) error { return nil }

func (noopPublisher) Close() error { return nil }
