package persistence

import (
	"context"
	"fmt"

	"clinical_voice_service/internal/domain/ehr"
	"clinical_voice_service/internal/infrastructure/persistence/models"
	"clinical_voice_service/internal/pkg/logger"

	"gorm.io/gorm"
)

type gormMedicalRecordRepository struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewGormMedicalRecordRepository creates a new GORM-based MedicalRecordRepository implementation
func NewGormMedicalRecordRepository(db *gorm.DB, logger logger.Logger) (ehr.MedicalRecordRepository, error) {
	return &gormMedicalRecordRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *gormMedicalRecordRepository) Create(ctx context.Context, record *ehr.MedicalRecord) error {
	if err := record.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	model := &models.MedicalRecordModel{}
	if err := model.FromDomain(record); err != nil {
		return fmt.Errorf("failed to map medical record: %w", err)
	}

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create medical record: %w", err)
	}

	r.logger.Info("Created medical record with id ", record.ID)
	return nil
}

func (r *gormMedicalRecordRepository) ListByPatientID(ctx context.Context, patientID string) ([]*ehr.MedicalRecord, error) {
	var modelList []*models.MedicalRecordModel
	err := r.db.WithContext(ctx).
		Where("patient_id = ?", patientID).
		Order("record_date desc").
		Find(&modelList).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch medical records: %w", err)
	}

	domainList := make([]*ehr.MedicalRecord, len(modelList))
	for i, model := range modelList {
		record, err := model.ToDomain()
		if err != nil {
			return nil, fmt.Errorf("failed to map medical record %s: %w", model.ID, err)
		}
		domainList[i] = record
	}

	return domainList, nil
}

type gormPrescriptionRepository struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewGormPrescriptionRepository creates a new GORM-based PrescriptionRepository implementation
func NewGormPrescriptionRepository(db *gorm.DB, logger logger.Logger) (ehr.PrescriptionRepository, error) {
	return &gormPrescriptionRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *gormPrescriptionRepository) Create(ctx context.Context, prescription *ehr.Prescription) error {
	if err := prescription.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	model := &models.PrescriptionModel{}
	model.FromDomain(prescription)

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create prescription: %w", err)
	}

	r.logger.Info("Created prescription with id ", prescription.ID)
	return nil
}

func (r *gormPrescriptionRepository) ListByPatientID(ctx context.Context, patientID string) ([]*ehr.Prescription, error) {
	var modelList []*models.PrescriptionModel
	err := r.db.WithContext(ctx).
		Where("patient_id = ?", patientID).
		Order("date_time_created desc").
		Find(&modelList).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch prescriptions: %w", err)
	}

	domainList := make([]*ehr.Prescription, len(modelList))
	for i, model := range modelList {
		domainList[i] = model.ToDomain()
	}

	return domainList, nil
}

func (r *gormPrescriptionRepository) UpdateByID(ctx context.Context, prescription *ehr.Prescription) error {
	if err := prescription.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	model := &models.PrescriptionModel{}
	model.FromDomain(prescription)

	if err := r.db.WithContext(ctx).Save(model).Error; err != nil {
		return fmt.Errorf("failed to update prescription: %w", err)
	}

	r.logger.Info("Updated prescription with id ", prescription.ID)
	return nil
}
