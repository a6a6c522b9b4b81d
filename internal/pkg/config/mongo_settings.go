package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// MongoSettings holds configuration settings for the transcript store. When
// Enabled is false, or the server is unreachable, transcripts are written to
// the file-based tier instead.
type MongoSettings struct {
	Enabled    bool   `mapstructure:"enabled"`
	URI        string `mapstructure:"uri" validate:"required_if=Enabled true"`
	Database   string `mapstructure:"database" validate:"required_if=Enabled true"`
	Collection string `mapstructure:"collection" validate:"required_if=Enabled true"`
	// Directory for the JSON file fallback tier.
	FallbackDir string `mapstructure:"fallback_dir" validate:"required"`
}

// Validate checks that all fields in MongoSettings are valid
func (s *MongoSettings) Validate() error {
	validate := validator.New()

	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("validation failed for MongoSettings: %w", err)
	}

	return nil
}
