package persistence

import (
	"context"
	"errors"
	"fmt"

	"clinical_voice_service/internal/domain/ehr"
	"clinical_voice_service/internal/infrastructure/persistence/models"
	"clinical_voice_service/internal/pkg/logger"

	"gorm.io/gorm"
)

type gormPatientRepository struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewGormPatientRepository creates a new GORM-based PatientRepository implementation
func NewGormPatientRepository(db *gorm.DB, logger logger.Logger) (ehr.PatientRepository, error) {
	return &gormPatientRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *gormPatientRepository) Create(ctx context.Context, patient *ehr.Patient) error {
	// Validate domain entity (business rules)
	if err := patient.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	// Convert to GORM model
	model := &models.PatientModel{}
	if err := model.FromDomain(patient); err != nil {
		return fmt.Errorf("failed to map patient: %w", err)
	}

	// Persist to database
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create patient: %w", err)
	}

	r.logger.Info("Created patient with id ", patient.ID)
	return nil
}

func (r *gormPatientRepository) List(ctx context.Context, query *ehr.PatientQuery) ([]*ehr.Patient, error) {
	if err := query.Validate(); err != nil {
		return nil, fmt.Errorf("invalid query parameters: %w", err)
	}

	var modelList []*models.PatientModel
	dbQuery := r.db.WithContext(ctx).Model(&models.PatientModel{})

	// Apply filters
	if query.MRN != "" {
		dbQuery = dbQuery.Where("mrn = ?", query.MRN)
	}
	if query.Name != "" {
		dbQuery = dbQuery.Where("name LIKE ?", "%"+query.Name+"%")
	}

	// Pagination
	if query.Limit > 0 {
		dbQuery = dbQuery.Limit(query.Limit)
	}
	if query.Offset > 0 {
		dbQuery = dbQuery.Offset(query.Offset)
	}

	if err := dbQuery.Order("date_time_created desc").Find(&modelList).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch patients: %w", err)
	}

	// Convert to domain models
	domainList := make([]*ehr.Patient, len(modelList))
	for i, model := range modelList {
		patient, err := model.ToDomain()
		if err != nil {
			return nil, fmt.Errorf("failed to map patient %s: %w", model.ID, err)
		}
		domainList[i] = patient
	}

	return domainList, nil
}

func (r *gormPatientRepository) GetByID(ctx context.Context, patientID string) (*ehr.Patient, error) {
	var model models.PatientModel
	if err := r.db.WithContext(ctx).Where("id = ?", patientID).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("patient with ID %s not found", patientID)
		}
		return nil, fmt.Errorf("failed to fetch patient: %w", err)
	}
	return model.ToDomain()
}

func (r *gormPatientRepository) GetByMRN(ctx context.Context, mrn string) (*ehr.Patient, error) {
	var model models.PatientModel
	if err := r.db.WithContext(ctx).Where("mrn = ?", mrn).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("patient with MRN %s not found", mrn)
		}
		return nil, fmt.Errorf("failed to fetch patient: %w", err)
	}
	return model.ToDomain()
}

func (r *gormPatientRepository) UpdateByID(ctx context.Context, patient *ehr.Patient) error {
	if err := patient.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	model := &models.PatientModel{}
	if err := model.FromDomain(patient); err != nil {
		return fmt.Errorf("failed to map patient: %w", err)
	}

	if err := r.db.WithContext(ctx).Save(model).Error; err != nil {
		return fmt.Errorf("failed to update patient: %w", err)
	}

	r.logger.Info("Updated patient with id ", patient.ID)
	return nil
}

func (r *gormPatientRepository) DeleteByID(ctx context.Context, patientID string) error {
	if err := r.db.WithContext(ctx).Where("id = ?", patientID).Delete(&models.PatientModel{}).Error; err != nil {
		return fmt.Errorf("failed to delete patient: %w", err)
	}

	r.logger.Info("Deleted patient with id ", patientID)
	return nil
}
