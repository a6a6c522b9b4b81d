package models

import (
	"time"

	"clinical_voice_service/internal/domain/guidelines"

	"gorm.io/datatypes"
)

// GuidelineChunkModel is the GORM database model for embedded guideline chunks
type GuidelineChunkModel struct {
	ID              string         `gorm:"primaryKey;type:uuid"`
	Source          string         `gorm:"not null;index;type:varchar(255)"`
	Content         string         `gorm:"not null;type:text"`
	Embedding       datatypes.JSON `gorm:"not null;type:jsonb"`
	DateTimeCreated time.Time      `gorm:"not null"`
}

// TableName specifies the table name for GORM
func (GuidelineChunkModel) TableName() string {
	return "guideline_chunks"
}

// ToDomain converts GORM model to domain entity
func (m *GuidelineChunkModel) ToDomain() (*guidelines.Chunk, error) {
	embedding, err := fromJSONFloats(m.Embedding)
	if err != nil {
		return nil, err
	}

	return &guidelines.Chunk{
		ID:              m.ID,
		Source:          m.Source,
		Content:         m.Content,
		Embedding:       embedding,
		DateTimeCreated: m.DateTimeCreated,
	}, nil
}

// FromDomain converts domain entity to GORM model
func (m *GuidelineChunkModel) FromDomain(c *guidelines.Chunk) error {
	embedding, err := toJSON(c.Embedding)
	if err != nil {
		return err
	}

	m.ID = c.ID
	m.Source = c.Source
	m.Content = c.Content
	m.Embedding = embedding
	m.DateTimeCreated = c.DateTimeCreated
	return nil
}
