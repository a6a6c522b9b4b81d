package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// KafkaSettings holds configuration for the encounter event publisher. An
// empty broker list disables publishing.
type KafkaSettings struct {
	Brokers []string `mapstructure:"brokers"`
	Topic   string   `mapstructure:"topic" validate:"required_with=Brokers"`
}

// Validate checks that all fields in KafkaSettings are valid
func (s *KafkaSettings) Validate() error {
	validate := validator.New()

	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("validation failed for KafkaSettings: %w", err)
	}

	return nil
}

// ArchiveSettings holds configuration for the S3 recording archive. An empty
// bucket disables archival uploads.
type ArchiveSettings struct {
	Bucket string `mapstructure:"bucket"`
	Prefix string `mapstructure:"prefix"`
}

// Validate checks that all fields in ArchiveSettings are valid
func (s *ArchiveSettings) Validate() error {
	validate := validator.New()

	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("validation failed for ArchiveSettings: %w", err)
	}

	return nil
}
