package ehr

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// Patient entity
type Patient struct {
	ID              string                 `validate:"required,uuid4"`
	MRN             string                 `validate:"required,min=1,max=50"`
	Name            string                 `validate:"required,min=1,max=255"`
	DateOfBirth     *time.Time             `validate:"omitempty"`
	Gender          string                 `validate:"omitempty,max=20"`
	ContactInfo     map[string]interface{} `validate:"omitempty"`
	MedicalHistory  []string               `validate:"omitempty"`
	Medications     []string               `validate:"omitempty"`
	Allergies       []string               `validate:"omitempty"`
	DateTimeCreated time.Time              `validate:"required"`
}

// Validate for validating Patient struct
func (p *Patient) Validate() error {
	validate := validator.New()

	err := validate.Struct(p)
	if err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			var messages []string
			for _, fieldErr := range validationErrors {
				messages = append(messages, fmt.Sprintf("Field: %s, Tag: %s", fieldErr.Field(), fieldErr.Tag()))
			}
			return fmt.Errorf("validation failed: %v", messages)
		}
		return fmt.Errorf("validation error: %w", err)
	}

	return nil
}

// PatientQuery is the filter for listing patients.
type PatientQuery struct {
	MRN    string `validate:"omitempty,max=50"`
	Name   string `validate:"omitempty,max=255"`
	Limit  int    `validate:"omitempty,gte=1,lte=500"`
	Offset int    `validate:"omitempty,gte=0"`
}

// Validate for validating PatientQuery struct
func (q *PatientQuery) Validate() error {
	validate := validator.New()

	if err := validate.Struct(q); err != nil {
		return fmt.Errorf("validation failed for PatientQuery: %w", err)
	}

	return nil
}
