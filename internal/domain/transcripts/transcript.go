package transcripts

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// Transcript entity, one captured and transcribed utterance.
type Transcript struct {
	Text      string                 `json:"text" validate:"required"`
	Timestamp time.Time              `json:"timestamp" validate:"required"`
	Metadata  map[string]interface{} `json:"metadata"`
}

// Validate for validating Transcript struct
func (t *Transcript) Validate() error {
	validate := validator.New()

	if err := validate.Struct(t); err != nil {
		return fmt.Errorf("validation failed for Transcript: %w", err)
	}

	return nil
}
