package scheduling

import (
	"context"
	"errors"
)

// ErrCodeTaken reports that a freshly allocated appointment code collided
// with a concurrent insert. Callers allocate a new code and retry.
var ErrCodeTaken = errors.New("appointment code already taken")

// AppointmentRepository defines the interface for appointment operations
type AppointmentRepository interface {
	// Create adds a new Appointment to the database
	Create(ctx context.Context, appointment *Appointment) error
	// List lists Appointments in the database with optional filter
	List(ctx context.Context, query *AppointmentQuery) ([]*Appointment, error)
	// GetByCode retrieves an Appointment by its short human-readable code
	GetByCode(ctx context.Context, code string) (*Appointment, error)
	// UpdateByID updates an Appointment in the database by ID
	UpdateByID(ctx context.Context, appointment *Appointment) error
	// NextCode returns the next unused short code (A001, A002, ...)
	NextCode(ctx context.Context) (string, error)
}
