package persistence

import (
	"fmt"

	"clinical_voice_service/internal/infrastructure/persistence/models"

	"gorm.io/gorm"
)

// AutoMigrate creates or updates the schema for every clinical table.
func AutoMigrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.PatientModel{},
		&models.MedicalRecordModel{},
		&models.PrescriptionModel{},
		&models.AppointmentModel{},
		&models.OrderModel{},
		&models.GuidelineChunkModel{},
	)
	if err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}
