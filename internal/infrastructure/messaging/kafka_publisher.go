package messaging

import (
	"context"
	"fmt"

	"clinical_voice_service/internal/domain/events"
	"clinical_voice_service/internal/pkg/config"
	"clinical_voice_service/internal/pkg/logger"

	"github.com/bytedance/sonic"
	"github.com/segmentio/kafka-go"
)

type kafkaPublisher struct {
	writer *kafka.Writer
	logger logger.Logger
}

// NewKafkaPublisher creates a Kafka-backed encounter event publisher. When no
// brokers are configured a no-op publisher is returned so callers never need
// to branch on messaging being enabled.
func NewKafkaPublisher(settings *config.KafkaSettings, log logger.Logger) (events.Publisher, error) {
	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("invalid Kafka settings: %w", err)
	}

	if len(settings.Brokers) == 0 {
		log.Info("Kafka publishing disabled, no brokers configured")
		return NewNoopPublisher(), nil
	}

	writer := &kafka.Writer{
		Addr:                   kafka.TCP(settings.Brokers...),
		Topic:                  settings.Topic,
		Balancer:               &kafka.Hash{},
		AllowAutoTopicCreation: true,
	}

	return &kafkaPublisher{
		writer: writer,
		logger: log,
	}, nil
}

func (p *kafkaPublisher) Publish(ctx context.Context, event *events.EncounterEvent) error {
	if err := event.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	value, err := sonic.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to encode event: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(event.EncounterID),
		Value: value,
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}

	p.logger.Info("Published ", event.Type, " event for encounter ", event.EncounterID)
	return nil
}

func (p *kafkaPublisher) Close() error {
	if err := p.writer.Close(); err != nil {
		return fmt.Errorf("failed to close Kafka writer: %w", err)
	}
	return nil
}
