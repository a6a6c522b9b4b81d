package ehr

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// MedicalRecord entity
type MedicalRecord struct {
	ID              string                 `validate:"required,uuid4"`
	PatientID       string                 `validate:"required,uuid4"`
	RecordType      string                 `validate:"required,min=1,max=50"`
	RecordDate      time.Time              `validate:"required"`
	Provider        string                 `validate:"omitempty,max=100"`
	Notes           string                 `validate:"omitempty"`
	Data            map[string]interface{} `validate:"omitempty"`
	DateTimeCreated time.Time              `validate:"required"`
}

// Validate for validating MedicalRecord struct
func (m *MedicalRecord) Validate() error {
	validate := validator.New()

	if err := validate.Struct(m); err != nil {
		return fmt.Errorf("validation failed for MedicalRecord: %w", err)
	}

	return nil
}

// Prescription entity, one row per active or historical medication order for a
// patient.
type Prescription struct {
	ID              string     `validate:"required,uuid4"`
	PatientID       string     `validate:"required,uuid4"`
	MedicationName  string     `validate:"required,min=1,max=200"`
	Dosage          string     `validate:"omitempty,max=100"`
	Frequency       string     `validate:"omitempty,max=100"`
	StartDate       *time.Time `validate:"omitempty"`
	EndDate         *time.Time `validate:"omitempty"`
	Prescriber      string     `validate:"omitempty,max=100"`
	Status          string     `validate:"required,oneof=active completed discontinued"`
	DateTimeCreated time.Time  `validate:"required"`
}

// Validate for validating Prescription struct
func (p *Prescription) Validate() error {
	validate := validator.New()

	if err := validate.Struct(p); err != nil {
		return fmt.Errorf("validation failed for Prescription: %w", err)
	}

	return nil
}
