package persistence

import (
	"context"
	"errors"
	"fmt"

	"clinical_voice_service/internal/domain/orders"
	"clinical_voice_service/internal/infrastructure/persistence/models"
	"clinical_voice_service/internal/pkg/logger"

	"gorm.io/gorm"
)

type gormOrderRepository struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewGormOrderRepository creates a new GORM-based OrderRepository implementation
func NewGormOrderRepository(db *gorm.DB, logger logger.Logger) (orders.OrderRepository, error) {
	return &gormOrderRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *gormOrderRepository) Create(ctx context.Context, order *orders.ClinicalOrder) error {
	if err := order.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	model := &models.OrderModel{}
	if err := model.FromDomain(order); err != nil {
		return fmt.Errorf("failed to map order: %w", err)
	}

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}

	r.logger.Info("Created order ", order.Code)
	return nil
}

func (r *gormOrderRepository) List(ctx context.Context, query *orders.OrderQuery) ([]*orders.ClinicalOrder, error) {
	if err := query.Validate(); err != nil {
		return nil, fmt.Errorf("invalid query parameters: %w", err)
	}

	var modelList []*models.OrderModel
	dbQuery := r.db.WithContext(ctx).Model(&models.OrderModel{})

	if query.PatientID != "" {
		dbQuery = dbQuery.Where("patient_id = ?", query.PatientID)
	}
	if query.OrderType != "" {
		dbQuery = dbQuery.Where("order_type = ?", query.OrderType)
	}
	if query.Status != "" {
		dbQuery = dbQuery.Where("status = ?", query.Status)
	}
	if query.Limit > 0 {
		dbQuery = dbQuery.Limit(query.Limit)
	}

	if err := dbQuery.Order("date_time_created desc").Find(&modelList).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch orders: %w", err)
	}

	domainList := make([]*orders.ClinicalOrder, len(modelList))
	for i, model := range modelList {
		order, err := model.ToDomain()
		if err != nil {
			return nil, fmt.Errorf("failed to map order %s: %w", model.ID, err)
		}
		domainList[i] = order
	}

	return domainList, nil
}

func (r *gormOrderRepository) GetByCode(ctx context.Context, code string) (*orders.ClinicalOrder, error) {
	var model models.OrderModel
	if err := r.db.WithContext(ctx).Where("code = ?", code).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("order %s not found", code)
		}
		return nil, fmt.Errorf("failed to fetch order: %w", err)
	}
	return model.ToDomain()
}

func (r *gormOrderRepository) UpdateByID(ctx context.Context, order *orders.ClinicalOrder) error {
	if err := order.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	model := &models.OrderModel{}
	if err := model.FromDomain(order); err != nil {
		return fmt.Errorf("failed to map order: %w", err)
	}

	if err := r.db.WithContext(ctx).Save(model).Error; err != nil {
		return fmt.Errorf("failed to update order: %w", err)
	}

	r.logger.Info("Updated order ", order.Code)
	return nil
}
