//go:build integration
// +build integration

package persistence

import (
	"testing"
	"time"

	"clinical_voice_service/internal/domain/ehr"
	"clinical_voice_service/internal/domain/orders"
	"clinical_voice_service/internal/domain/scheduling"
	"clinical_voice_service/internal/pkg/config"
	"clinical_voice_service/internal/pkg/testutil"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// TestContext holds test database and repositories
type TestContext struct {
	DB               *gorm.DB
	PatientRepo      ehr.PatientRepository
	RecordRepo       ehr.MedicalRecordRepository
	PrescriptionRepo ehr.PrescriptionRepository
	AppointmentRepo  scheduling.AppointmentRepository
	OrderRepo        orders.OrderRepository
}

// SetupTestDB initializes an in-memory test database with automatic cleanup
func SetupTestDB(t *testing.T) *TestContext {
	t.Helper()

	settings := config.DatabaseSettings{
		Type: config.SqliteDbType,
		DSN:  ":memory:",
	}

	db, err := NewDBConnection(settings)
	require.NoError(t, err, "Failed to create database connection")

	t.Cleanup(func() {
		_ = CloseDB(db)
	})

	require.NoError(t, AutoMigrate(db), "Failed to migrate schema")

	log := testutil.SetupTestLogger(t)

	patientRepo, err := NewGormPatientRepository(db, log)
	require.NoError(t, err, "Failed to create patient repository")

	appointmentRepo, err := NewGormAppointmentRepository(db, log)
	require.NoError(t, err, "Failed to create appointment repository")

	orderRepo, err := NewGormOrderRepository(db, log)
	require.NoError(t, err, "Failed to create order repository")

	recordRepo, err := NewGormMedicalRecordRepository(db, log)
	require.NoError(t, err, "Failed to create medical record repository")

	prescriptionRepo, err := NewGormPrescriptionRepository(db, log)
	require.NoError(t, err, "Failed to create prescription repository")

	return &TestContext{
		DB:               db,
		PatientRepo:      patientRepo,
		RecordRepo:       recordRepo,
		PrescriptionRepo: prescriptionRepo,
		AppointmentRepo:  appointmentRepo,
		OrderRepo:        orderRepo,
	}
}

// CreateTestPatient creates a test patient with default values
func CreateTestPatient(t *testing.T, name string) *ehr.Patient {
	t.Helper()

	if name == "" {
		name = "Test Patient"
	}

	return &ehr.Patient{
		ID:              uuid.NewString(),
		MRN:             "MRN-" + uuid.NewString()[:8],
		Name:            name,
		MedicalHistory:  []string{"hypertension"},
		Medications:     []string{"lisinopril"},
		Allergies:       []string{},
		DateTimeCreated: time.Now().UTC(),
	}
}

// CreateTestAppointment creates a test appointment with default values
func CreateTestAppointment(t *testing.T, code, status string) *scheduling.Appointment {
	t.Helper()

	return &scheduling.Appointment{
		ID:              uuid.NewString(),
		Code:            code,
		Type:            "Follow-up",
		ScheduledAt:     time.Now().UTC().Add(24 * time.Hour),
		DurationMinutes: 30,
		Provider:        "Dr. Smith",
		Status:          status,
		DateTimeCreated: time.Now().UTC(),
	}
}

// CreateTestOrder creates a test clinical order with default values
func CreateTestOrder(t *testing.T, orderType string) *orders.ClinicalOrder {
	t.Helper()

	return &orders.ClinicalOrder{
		ID:        uuid.NewString(),
		Code:      orders.NewOrderCode(time.Now().UTC()),
		OrderType: orderType,
		Details: map[string]interface{}{
			"name": "CBC",
		},
		Status:          orders.StatusPending,
		DateTimeCreated: time.Now().UTC(),
	}
}
