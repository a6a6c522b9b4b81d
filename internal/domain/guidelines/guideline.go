package guidelines

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// Chunk entity, one embedded fragment of a clinical guideline document.
type Chunk struct {
	ID              string    `validate:"required,uuid4"`
	Source          string    `validate:"required,min=1,max=255"`
	Content         string    `validate:"required"`
	Embedding       []float32 `validate:"required,min=1"`
	DateTimeCreated time.Time `validate:"required"`
}

// Validate for validating Chunk struct
func (c *Chunk) Validate() error {
	validate := validator.New()

	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("validation failed for Chunk: %w", err)
	}

	return nil
}

// ScoredChunk pairs a chunk with its similarity to a query.
type ScoredChunk struct {
	Chunk *Chunk
	Score float64
}
