package persistence

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"clinical_voice_service/internal/domain/scheduling"
	"clinical_voice_service/internal/infrastructure/persistence/models"
	"clinical_voice_service/internal/pkg/logger"

	"gorm.io/gorm"
)

type gormAppointmentRepository struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewGormAppointmentRepository creates a new GORM-based AppointmentRepository implementation
func NewGormAppointmentRepository(db *gorm.DB, logger logger.Logger) (scheduling.AppointmentRepository, error) {
	return &gormAppointmentRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *gormAppointmentRepository) Create(ctx context.Context, appointment *scheduling.Appointment) error {
	if err := appointment.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	model := &models.AppointmentModel{}
	model.FromDomain(appointment)

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("appointment %s: %w", appointment.Code, scheduling.ErrCodeTaken)
		}
		return fmt.Errorf("failed to create appointment: %w", err)
	}

	r.logger.Info("Created appointment ", appointment.Code)
	return nil
}

func (r *gormAppointmentRepository) List(ctx context.Context, query *scheduling.AppointmentQuery) ([]*scheduling.Appointment, error) {
	if err := query.Validate(); err != nil {
		return nil, fmt.Errorf("invalid query parameters: %w", err)
	}

	var modelList []*models.AppointmentModel
	dbQuery := r.db.WithContext(ctx).Model(&models.AppointmentModel{})

	// Apply filters
	if query.PatientID != "" {
		dbQuery = dbQuery.Where("patient_id = ?", query.PatientID)
	}
	if query.Provider != "" {
		dbQuery = dbQuery.Where("provider = ?", query.Provider)
	}
	if query.Status != "" {
		dbQuery = dbQuery.Where("status = ?", query.Status)
	}
	if query.From != nil {
		dbQuery = dbQuery.Where("scheduled_at >= ?", *query.From)
	}
	if query.To != nil {
		dbQuery = dbQuery.Where("scheduled_at <= ?", *query.To)
	}

	if query.Limit > 0 {
		dbQuery = dbQuery.Limit(query.Limit)
	}

	if err := dbQuery.Order("scheduled_at asc").Find(&modelList).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch appointments: %w", err)
	}

	domainList := make([]*scheduling.Appointment, len(modelList))
	for i, model := range modelList {
		domainList[i] = model.ToDomain()
	}

	return domainList, nil
}

func (r *gormAppointmentRepository) GetByCode(ctx context.Context, code string) (*scheduling.Appointment, error) {
	var model models.AppointmentModel
	if err := r.db.WithContext(ctx).Where("code = ?", code).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("appointment %s not found", code)
		}
		return nil, fmt.Errorf("failed to fetch appointment: %w", err)
	}
	return model.ToDomain(), nil
}

func (r *gormAppointmentRepository) UpdateByID(ctx context.Context, appointment *scheduling.Appointment) error {
	if err := appointment.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	model := &models.AppointmentModel{}
	model.FromDomain(appointment)

	if err := r.db.WithContext(ctx).Save(model).Error; err != nil {
		return fmt.Errorf("failed to update appointment: %w", err)
	}

	r.logger.Info("Updated appointment ", appointment.Code)
	return nil
}

// NextCode derives the next A%03d code from the highest code stored so far.
// Codes are ordered by length before value so A1000 sorts above A999.
func (r *gormAppointmentRepository) NextCode(ctx context.Context) (string, error) {
	var model models.AppointmentModel
	err := r.db.WithContext(ctx).
		Where("code LIKE ?", "A%").
		Order("length(code) desc, code desc").
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "A001", nil
		}
		return "", fmt.Errorf("failed to derive next appointment code: %w", err)
	}

	n, convErr := strconv.Atoi(strings.TrimPrefix(model.Code, "A"))
	if convErr != nil {
		return "", fmt.Errorf("malformed appointment code %q: %w", model.Code, convErr)
	}

	return fmt.Sprintf("A%03d", n+1), nil
}
