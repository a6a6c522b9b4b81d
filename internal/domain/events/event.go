package events

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// Encounter event types
const (
	TypeTranscriptSaved  = "transcript_saved"
	TypeAgentDispatched  = "agent_dispatched"
	TypeValidationFailed = "validation_failed"
)

// EncounterEvent entity, one audit record per pipeline stage of an encounter.
type EncounterEvent struct {
	EncounterID string                 `json:"encounter_id" validate:"required,uuid4"`
	Type        string                 `json:"type" validate:"required,oneof=transcript_saved agent_dispatched validation_failed"`
	Agent       string                 `json:"agent,omitempty"`
	Payload     map[string]interface{} `json:"payload"`
	Timestamp   time.Time              `json:"timestamp" validate:"required"`
}

// Validate for validating EncounterEvent struct
func (e *EncounterEvent) Validate() error {
	validate := validator.New()

	if err := validate.Struct(e); err != nil {
		return fmt.Errorf("validation failed for EncounterEvent: %w", err)
	}

	return nil
}
