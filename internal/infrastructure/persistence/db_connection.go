package persistence

import (
	"fmt"

	"clinical_voice_service/internal/pkg/config"
	"clinical_voice_service/internal/pkg/logger"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// NewDBConnection creates a database connection based on settings
// Supports both production and test environments
func NewDBConnection(settings config.DatabaseSettings) (*gorm.DB, error) {
	var db *gorm.DB
	var err error

	switch settings.Type {
	case config.PostgresDbType:
		db, err = connectPostgres(settings)
	case config.SqliteDbType:
		db, err = connectSQLite(settings)
	default:
		return nil, fmt.Errorf("unsupported database type: %s", settings.Type)
	}

	if err != nil {
		return nil, err
	}

	return db, nil
}

// NewDBConnectionWithFallback connects to the primary database and, when that
// fails and a fallback DSN is configured, degrades to the embedded SQLite
// tier so the assistant keeps serving EHR operations offline.
func NewDBConnectionWithFallback(settings config.DatabaseSettings, log logger.Logger) (*gorm.DB, error) {
	db, err := NewDBConnection(settings)
	if err == nil {
		return db, nil
	}

	if settings.FallbackDSN == "" {
		return nil, err
	}

	log.Warn("Primary database unreachable, using embedded fallback: ", err)

	fallback := config.DatabaseSettings{
		Type: config.SqliteDbType,
		DSN:  settings.FallbackDSN,
	}
	db, fbErr := NewDBConnection(fallback)
	if fbErr != nil {
		return nil, fmt.Errorf("fallback connection failed after primary error (%v): %w", err, fbErr)
	}

	return db, nil
}

// connectPostgres establishes PostgreSQL connection with optional database creation
func connectPostgres(settings config.DatabaseSettings) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(settings.DSN), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}

	return db, nil
}

// connectSQLite establishes SQLite connection
func connectSQLite(settings config.DatabaseSettings) (*gorm.DB, error) {
	// Use DSN if provided, otherwise default to in-memory
	dsn := settings.DSN
	if dsn == "" {
		dsn = ":memory:"
	}

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to SQLite: %w", err)
	}

	return db, nil
}

// CloseDB closes the database connection
func CloseDB(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}

	if err := sqlDB.Close(); err != nil {
		return fmt.Errorf("failed to close database connection: %w", err)
	}
	return nil
}
