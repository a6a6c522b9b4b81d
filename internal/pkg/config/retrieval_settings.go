package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// RetrievalSettings holds configuration for the clinical guideline retrieval
// index used by the clinical decision agent.
type RetrievalSettings struct {
	TopK int `mapstructure:"top_k" validate:"required,gte=1,lte=20"`
	// Minimum cosine similarity for a chunk to be considered relevant.
	// Values range from 0.0 to 1.0, where higher values indicate stricter
	// relevance criteria.
	MinConfidence float64 `mapstructure:"min_confidence" validate:"gte=0,lte=1"`
}

// Validate checks that all fields in RetrievalSettings are valid
func (s *RetrievalSettings) Validate() error {
	validate := validator.New()

	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("validation failed for RetrievalSettings: %w", err)
	}

	return nil
}
