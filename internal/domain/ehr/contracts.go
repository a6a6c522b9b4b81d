package ehr

import "context"

// PatientRepository defines the interface for patient-related operations
type PatientRepository interface {
	// Create adds a new Patient to the database
	Create(ctx context.Context, patient *Patient) error
	// List lists Patients in the database with optional filter
	List(ctx context.Context, query *PatientQuery) ([]*Patient, error)
	// GetByID retrieves a Patient from the database by ID
	GetByID(ctx context.Context, patientID string) (*Patient, error)
	// GetByMRN retrieves a Patient from the database by medical record number
	GetByMRN(ctx context.Context, mrn string) (*Patient, error)
	// UpdateByID updates a Patient in the database by ID
	UpdateByID(ctx context.Context, patient *Patient) error
	// DeleteByID deletes a Patient in the database by ID
	DeleteByID(ctx context.Context, patientID string) error
}

// MedicalRecordRepository defines the interface for medical record operations
type MedicalRecordRepository interface {
	// Create adds a new MedicalRecord to the database
	Create(ctx context.Context, record *MedicalRecord) error
	// ListByPatientID lists a patient's records, newest record date first
	ListByPatientID(ctx context.Context, patientID string) ([]*MedicalRecord, error)
}

// PrescriptionRepository defines the interface for prescription operations
type PrescriptionRepository interface {
	// Create adds a new Prescription to the database
	Create(ctx context.Context, prescription *Prescription) error
	// ListByPatientID lists a patient's prescriptions
	ListByPatientID(ctx context.Context, patientID string) ([]*Prescription, error)
	// UpdateByID updates a Prescription in the database by ID
	UpdateByID(ctx context.Context, prescription *Prescription) error
}
