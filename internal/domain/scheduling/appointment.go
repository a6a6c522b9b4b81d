package scheduling

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// Appointment status values
const (
	StatusAvailable   = "available"
	StatusScheduled   = "scheduled"
	StatusRescheduled = "rescheduled"
	StatusCancelled   = "cancelled"
	StatusCompleted   = "completed"
)

// Appointment entity. Code is the short human-readable identifier spoken back
// to the user (A001 style); ID is the storage key.
type Appointment struct {
	ID              string    `validate:"required,uuid4"`
	Code            string    `validate:"required,min=2,max=20"`
	PatientID       string    `validate:"omitempty,uuid4"`
	Type            string    `validate:"required,min=1,max=100"`
	ScheduledAt     time.Time `validate:"required"`
	DurationMinutes int       `validate:"required,gte=5,lte=480"`
	Provider        string    `validate:"required,min=1,max=100"`
	Status          string    `validate:"required,oneof=available scheduled rescheduled cancelled completed"`
	Notes           string    `validate:"omitempty"`
	DateTimeCreated time.Time `validate:"required"`
}

// Validate for validating Appointment struct
func (a *Appointment) Validate() error {
	validate := validator.New()

	if err := validate.Struct(a); err != nil {
		return fmt.Errorf("validation failed for Appointment: %w", err)
	}

	return nil
}

// AppointmentQuery is the filter for listing appointments.
type AppointmentQuery struct {
	PatientID string     `validate:"omitempty,uuid4"`
	Provider  string     `validate:"omitempty,max=100"`
	Status    string     `validate:"omitempty,oneof=available scheduled rescheduled cancelled completed"`
	From      *time.Time `validate:"omitempty"`
	To        *time.Time `validate:"omitempty"`
	Limit     int        `validate:"omitempty,gte=1,lte=500"`
}

// Validate for validating AppointmentQuery struct
func (q *AppointmentQuery) Validate() error {
	validate := validator.New()

	if err := validate.Struct(q); err != nil {
		return fmt.Errorf("validation failed for AppointmentQuery: %w", err)
	}

	return nil
}
