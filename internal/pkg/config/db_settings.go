package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Database type constants
const (
	PostgresDbType = "postgres"
	SqliteDbType   = "sqlite"
)

// DatabaseSettings holds configuration settings for the EHR database connection.
// Postgres is the primary tier; sqlite serves as the embedded fallback when the
// primary is unreachable.
type DatabaseSettings struct {
	Type        string `mapstructure:"type" validate:"required,oneof=postgres sqlite"`
	DSN         string `mapstructure:"dsn" validate:"required"`
	Name        string `mapstructure:"name"`
	FallbackDSN string `mapstructure:"fallback_dsn"`
}

// Validate checks that all fields in DatabaseSettings are valid
func (s *DatabaseSettings) Validate() error {
	validate := validator.New()

	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("validation failed for DatabaseSettings: %w", err)
	}

	return nil
}
