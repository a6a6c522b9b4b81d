//go:build unit
// +build unit

package v1

import (
	"context"

	"clinical_voice_service/internal/app"
	"clinical_voice_service/internal/domain/ehr"
	"clinical_voice_service/internal/domain/orders"
	"clinical_voice_service/internal/domain/scheduling"
	"clinical_voice_service/internal/domain/transcripts"

	"github.com/stretchr/testify/mock"
)

// MockAssistService is a mock implementation of AssistService
type MockAssistService struct {
	mock.Mock
}

func (m *MockAssistService) Dispatch(ctx context.Context, message string) (*app.DispatchResult, error) {
	args := m.Called(ctx, message)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*app.DispatchResult), args.Error(1)
}

// MockPatientRepository is a mock implementation of PatientRepository
type MockPatientRepository struct {
	mock.Mock
}

func (m *MockPatientRepository) Create(ctx context.Context, patient *ehr.Patient) error {
	args := m.Called(ctx, patient)
	return args.Error(0)
}

func (m *MockPatientRepository) List(ctx context.Context, query *ehr.PatientQuery) ([]*ehr.Patient, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*ehr.Patient), args.Error(1)
}

func (m *MockPatientRepository) GetByID(ctx context.Context, patientID string) (*ehr.Patient, error) {
	args := m.Called(ctx, patientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ehr.Patient), args.Error(1)
}

func (m *MockPatientRepository) GetByMRN(ctx context.Context, mrn string) (*ehr.Patient, error) {
	args := m.Called(ctx, mrn)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ehr.Patient), args.Error(1)
}

func (m *MockPatientRepository) UpdateByID(ctx context.Context, patient *ehr.Patient) error {
	args := m.Called(ctx, patient)
	return args.Error(0)
}

func (m *MockPatientRepository) DeleteByID(ctx context.Context, patientID string) error {
	args := m.Called(ctx, patientID)
	return args.Error(0)
}

// MockMedicalRecordRepository is a mock implementation of MedicalRecordRepository
type MockMedicalRecordRepository struct {
	mock.Mock
}

func (m *MockMedicalRecordRepository) Create(ctx context.Context, record *ehr.MedicalRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockMedicalRecordRepository) ListByPatientID(ctx context.Context, patientID string) ([]*ehr.MedicalRecord, error) {
	args := m.Called(ctx, patientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*ehr.MedicalRecord), args.Error(1)
}

// MockPrescriptionRepository is a mock implementation of PrescriptionRepository
type MockPrescriptionRepository struct {
	mock.Mock
}

func (m *MockPrescriptionRepository) Create(ctx context.Context, prescription *ehr.Prescription) error {
	args := m.Called(ctx, prescription)
	return args.Error(0)
}

func (m *MockPrescriptionRepository) ListByPatientID(ctx context.Context, patientID string) ([]*ehr.Prescription, error) {
	args := m.Called(ctx, patientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*ehr.Prescription), args.Error(1)
}

func (m *MockPrescriptionRepository) UpdateByID(ctx context.Context, prescription *ehr.Prescription) error {
	args := m.Called(ctx, prescription)
	return args.Error(0)
}

// MockAppointmentRepository is a mock implementation of AppointmentRepository
type MockAppointmentRepository struct {
	mock.Mock
}

func (m *MockAppointmentRepository) Create(ctx context.Context, appointment *scheduling.Appointment) error {
	args := m.Called(ctx, appointment)
	return args.Error(0)
}

func (m *MockAppointmentRepository) List(ctx context.Context, query *scheduling.AppointmentQuery) ([]*scheduling.Appointment, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*scheduling.Appointment), args.Error(1)
}

func (m *MockAppointmentRepository) GetByCode(ctx context.Context, code string) (*scheduling.Appointment, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*scheduling.Appointment), args.Error(1)
}

func (m *MockAppointmentRepository) UpdateByID(ctx context.Context, appointment *scheduling.Appointment) error {
	args := m.Called(ctx, appointment)
	return args.Error(0)
}

func (m *MockAppointmentRepository) NextCode(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

// MockOrderRepository is a mock implementation of OrderRepository
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) Create(ctx context.Context, order *orders.ClinicalOrder) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockOrderRepository) List(ctx context.Context, query *orders.OrderQuery) ([]*orders.ClinicalOrder, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*orders.ClinicalOrder), args.Error(1)
}

func (m *MockOrderRepository) GetByCode(ctx context.Context, code string) (*orders.ClinicalOrder, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*orders.ClinicalOrder), args.Error(1)
}

func (m *MockOrderRepository) UpdateByID(ctx context.Context, order *orders.ClinicalOrder) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

// MockTranscriptStore is a mock implementation of transcripts.Store
type MockTranscriptStore struct {
	mock.Mock
}

func (m *MockTranscriptStore) Save(ctx context.Context, transcript *transcripts.Transcript) error {
	args := m.Called(ctx, transcript)
	return args.Error(0)
}

func (m *MockTranscriptStore) List(ctx context.Context, limit int) ([]*transcripts.Transcript, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*transcripts.Transcript), args.Error(1)
}

func (m *MockTranscriptStore) Close(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
