package orders

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// Order type and status values
const (
	TypeTest       = "test"
	TypeMedication = "medication"
	TypeProcedure  = "procedure"

	StatusPending   = "pending"
	StatusVerified  = "verified"
	StatusCancelled = "cancelled"
)

// ClinicalOrder entity. Code carries the ORD-timestamp identifier announced
// to the user; ID is the storage key.
type ClinicalOrder struct {
	ID              string                 `validate:"required,uuid4"`
	Code            string                 `validate:"required,min=4,max=40"`
	PatientID       string                 `validate:"omitempty,uuid4"`
	OrderType       string                 `validate:"required,oneof=test medication procedure"`
	Details         map[string]interface{} `validate:"required"`
	Status          string                 `validate:"required,oneof=pending verified cancelled"`
	Warnings        []string               `validate:"omitempty"`
	DateTimeCreated time.Time              `validate:"required"`
}

// Validate for validating ClinicalOrder struct
func (o *ClinicalOrder) Validate() error {
	validate := validator.New()

	if err := validate.Struct(o); err != nil {
		return fmt.Errorf("validation failed for ClinicalOrder: %w", err)
	}

	return nil
}

// NewOrderCode derives the announced order code from a creation timestamp.
func NewOrderCode(t time.Time) string {
	return "ORD-" + t.Format("20060102150405")
}

// OrderQuery is the filter for listing clinical orders.
type OrderQuery struct {
	PatientID string `validate:"omitempty,uuid4"`
	OrderType string `validate:"omitempty,oneof=test medication procedure"`
	Status    string `validate:"omitempty,oneof=pending verified cancelled"`
	Limit     int    `validate:"omitempty,gte=1,lte=500"`
}

// Validate for validating OrderQuery struct
func (q *OrderQuery) Validate() error {
	validate := validator.New()

	if err := validate.Struct(q); err != nil {
		return fmt.Errorf("validation failed for OrderQuery: %w", err)
	}

	return nil
}
