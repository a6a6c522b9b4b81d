package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Default Groq model used by all agents unless overridden
const DefaultGroqModel = "llama3-70b-8192"

// GroqSettings holds configuration settings for the Groq-hosted LLM accessed
// through its OpenAI-compatible endpoint.
type GroqSettings struct {
	APIKey         string  `mapstructure:"api_key" validate:"required"`
	BaseURL        string  `mapstructure:"base_url" validate:"required,url"`
	Model          string  `mapstructure:"model" validate:"required"`
	EmbeddingModel string  `mapstructure:"embedding_model"`
	Temperature    float32 `mapstructure:"temperature" validate:"gte=0,lte=2"`
	MaxTokens      int     `mapstructure:"max_tokens" validate:"gte=1,lte=8192"`
}

// Validate checks that all fields in GroqSettings are valid
func (s *GroqSettings) Validate() error {
	validate := validator.New()

	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("validation failed for GroqSettings: %w", err)
	}

	return nil
}
