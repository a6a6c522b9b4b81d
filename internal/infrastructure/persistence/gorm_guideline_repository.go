package persistence

import (
	"context"
	"fmt"

	"clinical_voice_service/internal/domain/guidelines"
	"clinical_voice_service/internal/infrastructure/persistence/models"
	"clinical_voice_service/internal/pkg/logger"

	"gorm.io/gorm"
)

type gormGuidelineRepository struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewGormGuidelineRepository creates a new GORM-based guideline chunk repository
func NewGormGuidelineRepository(db *gorm.DB, logger logger.Logger) (guidelines.Repository, error) {
	return &gormGuidelineRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *gormGuidelineRepository) Create(ctx context.Context, chunk *guidelines.Chunk) error {
	if err := chunk.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	model := &models.GuidelineChunkModel{}
	if err := model.FromDomain(chunk); err != nil {
		return fmt.Errorf("failed to map guideline chunk: %w", err)
	}

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create guideline chunk: %w", err)
	}

	return nil
}

func (r *gormGuidelineRepository) ListAll(ctx context.Context) ([]*guidelines.Chunk, error) {
	var modelList []*models.GuidelineChunkModel
	if err := r.db.WithContext(ctx).Find(&modelList).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch guideline chunks: %w", err)
	}

	domainList := make([]*guidelines.Chunk, len(modelList))
	for i, model := range modelList {
		chunk, err := model.ToDomain()
		if err != nil {
			return nil, fmt.Errorf("failed to map guideline chunk %s: %w", model.ID, err)
		}
		domainList[i] = chunk
	}

	return domainList, nil
}

func (r *gormGuidelineRepository) DeleteBySource(ctx context.Context, source string) error {
	if err := r.db.WithContext(ctx).Where("source = ?", source).Delete(&models.GuidelineChunkModel{}).Error; err != nil {
		return fmt.Errorf("failed to delete guideline chunks for source %s: %w", source, err)
	}

	r.logger.Info("Deleted guideline chunks for source ", source)
	return nil
}
