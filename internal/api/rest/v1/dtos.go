package v1

import (
	"fmt"
	"time"

	"clinical_voice_service/internal/domain/agents"
	"clinical_voice_service/internal/domain/ehr"
	"clinical_voice_service/internal/domain/orders"
	"clinical_voice_service/internal/domain/scheduling"
	"clinical_voice_service/internal/domain/transcripts"

	"github.com/go-playground/validator/v10"
)

// ErrorResponse is the error body returned by every handler
type ErrorResponse struct {
	Message *string `json:"message,omitempty"`
}

// InfoResponse is the informational body for operations without payloads
type InfoResponse struct {
	Message *string `json:"message,omitempty"`
}

// AssistRequest carries one typed utterance into the assistant pipeline
type AssistRequest struct {
	Message string `json:"message" validate:"required,min=1,max=4000"`
}

// Validate for validating AssistRequest struct
func (r *AssistRequest) Validate() error {
	validate := validator.New()

	if err := validate.Struct(r); err != nil {
		return fmt.Errorf("validation failed for AssistRequest: %w", err)
	}

	return nil
}

// AssistResponse is the outcome of one dispatched encounter
type AssistResponse struct {
	EncounterID string           `json:"encounter_id"`
	Agent       string           `json:"agent,omitempty"`
	Reply       string           `json:"reply"`
	Response    *agents.Response `json:"response,omitempty"`
}

// CreatePatientRequest carries a new patient record
type CreatePatientRequest struct {
	MRN            string                 `json:"mrn" validate:"omitempty,max=50"`
	Name           string                 `json:"name" validate:"required,min=1,max=255"`
	DateOfBirth    string                 `json:"date_of_birth" validate:"omitempty,datetime=2006-01-02"`
	Gender         string                 `json:"gender" validate:"omitempty,max=20"`
	ContactInfo    map[string]interface{} `json:"contact_info"`
	MedicalHistory []string               `json:"medical_history"`
	Medications    []string               `json:"medications"`
	Allergies      []string               `json:"allergies"`
}

// Validate for validating CreatePatientRequest struct
func (r *CreatePatientRequest) Validate() error {
	validate := validator.New()

	if err := validate.Struct(r); err != nil {
		return fmt.Errorf("validation failed for CreatePatientRequest: %w", err)
	}

	return nil
}

// PatientResponse renders a patient record
type PatientResponse struct {
	ID              string                 `json:"id"`
	MRN             string                 `json:"mrn"`
	Name            string                 `json:"name"`
	DateOfBirth     *string                `json:"date_of_birth,omitempty"`
	Gender          string                 `json:"gender,omitempty"`
	ContactInfo     map[string]interface{} `json:"contact_info,omitempty"`
	MedicalHistory  []string               `json:"medical_history"`
	Medications     []string               `json:"medications"`
	Allergies       []string               `json:"allergies"`
	DateTimeCreated time.Time              `json:"date_time_created"`
}

func newPatientResponse(patient *ehr.Patient) PatientResponse {
	resp := PatientResponse{
		ID:              patient.ID,
		MRN:             patient.MRN,
		Name:            patient.Name,
		Gender:          patient.Gender,
		ContactInfo:     patient.ContactInfo,
		MedicalHistory:  patient.MedicalHistory,
		Medications:     patient.Medications,
		Allergies:       patient.Allergies,
		DateTimeCreated: patient.DateTimeCreated,
	}
	if patient.DateOfBirth != nil {
		dob := patient.DateOfBirth.Format("2006-01-02")
		resp.DateOfBirth = &dob
	}
	return resp
}

// CreateAppointmentRequest carries a new appointment or availability slot
type CreateAppointmentRequest struct {
	PatientID       string `json:"patient_id" validate:"omitempty,uuid4"`
	Type            string `json:"type" validate:"omitempty,max=100"`
	ScheduledAt     string `json:"scheduled_at" validate:"required"`
	DurationMinutes int    `json:"duration_minutes" validate:"omitempty,gte=5,lte=480"`
	Provider        string `json:"provider" validate:"required,min=1,max=100"`
	Status          string `json:"status" validate:"omitempty,oneof=available scheduled"`
	Notes           string `json:"notes"`
}

// Validate for validating CreateAppointmentRequest struct
func (r *CreateAppointmentRequest) Validate() error {
	validate := validator.New()

	if err := validate.Struct(r); err != nil {
		return fmt.Errorf("validation failed for CreateAppointmentRequest: %w", err)
	}

	return nil
}

// UpdateAppointmentRequest carries a partial appointment update
type UpdateAppointmentRequest struct {
	ScheduledAt string `json:"scheduled_at" validate:"omitempty"`
	Provider    string `json:"provider" validate:"omitempty,max=100"`
	Status      string `json:"status" validate:"omitempty,oneof=available scheduled rescheduled cancelled completed"`
	Notes       string `json:"notes"`
}

// Validate for validating UpdateAppointmentRequest struct
func (r *UpdateAppointmentRequest) Validate() error {
	validate := validator.New()

	if err := validate.Struct(r); err != nil {
		return fmt.Errorf("validation failed for UpdateAppointmentRequest: %w", err)
	}

	return nil
}

// CreateOrderRequest carries a new clinical order
type CreateOrderRequest struct {
	PatientID string                 `json:"patient_id" validate:"omitempty,uuid4"`
	OrderType string                 `json:"order_type" validate:"required,oneof=test medication procedure"`
	Details   map[string]interface{} `json:"details"`
}

// Validate for validating CreateOrderRequest struct
func (r *CreateOrderRequest) Validate() error {
	validate := validator.New()

	if err := validate.Struct(r); err != nil {
		return fmt.Errorf("validation failed for CreateOrderRequest: %w", err)
	}

	return nil
}

// AppointmentResponse renders an appointment
type AppointmentResponse struct {
	Code            string    `json:"code"`
	PatientID       string    `json:"patient_id,omitempty"`
	Type            string    `json:"type"`
	ScheduledAt     time.Time `json:"scheduled_at"`
	DurationMinutes int       `json:"duration_minutes"`
	Provider        string    `json:"provider"`
	Status          string    `json:"status"`
	Notes           string    `json:"notes,omitempty"`
}

func newAppointmentResponse(appointment *scheduling.Appointment) AppointmentResponse {
	return AppointmentResponse{
		Code:            appointment.Code,
		PatientID:       appointment.PatientID,
		Type:            appointment.Type,
		ScheduledAt:     appointment.ScheduledAt,
		DurationMinutes: appointment.DurationMinutes,
		Provider:        appointment.Provider,
		Status:          appointment.Status,
		Notes:           appointment.Notes,
	}
}

// OrderResponse renders a clinical order
type OrderResponse struct {
	Code            string                 `json:"code"`
	PatientID       string                 `json:"patient_id,omitempty"`
	OrderType       string                 `json:"order_type"`
	Details         map[string]interface{} `json:"details"`
	Status          string                 `json:"status"`
	Warnings        []string               `json:"warnings,omitempty"`
	DateTimeCreated time.Time              `json:"date_time_created"`
}

func newOrderResponse(order *orders.ClinicalOrder) OrderResponse {
	return OrderResponse{
		Code:            order.Code,
		PatientID:       order.PatientID,
		OrderType:       order.OrderType,
		Details:         order.Details,
		Status:          order.Status,
		Warnings:        order.Warnings,
		DateTimeCreated: order.DateTimeCreated,
	}
}

// TranscriptResponse renders a stored transcript
type TranscriptResponse struct {
	Text      string                 `json:"text"`
	Timestamp time.Time              `json:"timestamp"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
}

func newTranscriptResponse(transcript *transcripts.Transcript) TranscriptResponse {
	return TranscriptResponse{
		Text:      transcript.Text,
		Timestamp: transcript.Timestamp,
		Metadata:  transcript.Metadata,
	}
}

// MedicalRecordResponse renders a medical record entry
type MedicalRecordResponse struct {
	ID              string                 `json:"id"`
	PatientID       string                 `json:"patient_id"`
	RecordType      string                 `json:"record_type"`
	RecordDate      time.Time              `json:"record_date"`
	Provider        string                 `json:"provider,omitempty"`
	Notes           string                 `json:"notes,omitempty"`
	Data            map[string]interface{} `json:"data,omitempty"`
	DateTimeCreated time.Time              `json:"date_time_created"`
}

func newMedicalRecordResponse(record *ehr.MedicalRecord) MedicalRecordResponse {
	return MedicalRecordResponse{
		ID:              record.ID,
		PatientID:       record.PatientID,
		RecordType:      record.RecordType,
		RecordDate:      record.RecordDate,
		Provider:        record.Provider,
		Notes:           record.Notes,
		Data:            record.Data,
		DateTimeCreated: record.DateTimeCreated,
	}
}

// PrescriptionResponse renders a prescription entry
type PrescriptionResponse struct {
	ID              string    `json:"id"`
	PatientID       string    `json:"patient_id"`
	MedicationName  string    `json:"medication_name"`
	Dosage          string    `json:"dosage,omitempty"`
	Frequency       string    `json:"frequency,omitempty"`
	StartDate       *string   `json:"start_date,omitempty"`
	EndDate         *string   `json:"end_date,omitempty"`
	Prescriber      string    `json:"prescriber,omitempty"`
	Status          string    `json:"status"`
	DateTimeCreated time.Time `json:"date_time_created"`
}

func newPrescriptionResponse(prescription *ehr.Prescription) PrescriptionResponse {
	resp := PrescriptionResponse{
		ID:              prescription.ID,
		PatientID:       prescription.PatientID,
		MedicationName:  prescription.MedicationName,
		Dosage:          prescription.Dosage,
		Frequency:       prescription.Frequency,
		Prescriber:      prescription.Prescriber,
		Status:          prescription.Status,
		DateTimeCreated: prescription.DateTimeCreated,
	}
	if prescription.StartDate != nil {
		start := prescription.StartDate.Format("2006-01-02")
		resp.StartDate = &start
	}
	if prescription.EndDate != nil {
		end := prescription.EndDate.Format("2006-01-02")
		resp.EndDate = &end
	}
	return resp
}
