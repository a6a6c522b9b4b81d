//go:build unit
// +build unit

package ehr

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func validPatient() *Patient {
	dob := time.Date(1984, 6, 12, 0, 0, 0, 0, time.UTC)
	return &Patient{
		ID:          uuid.New().String(),
		MRN:         "MRN-000123",
		Name:        "Jordan Avery",
		DateOfBirth: &dob,
		Gender:      "female",
		ContactInfo: map[string]interface{}{
			"phone": "555-0123",
		},
		MedicalHistory:  []string{"hypertension"},
		Medications:     []string{"lisinopril"},
		Allergies:       []string{"penicillin"},
		DateTimeCreated: time.Now().UTC(),
	}
}

func TestPatientValidation(t *testing.T) {
	tests := []struct {
		name          string
		mutate        func(p *Patient)
		expectedError bool
	}{
		{
			name:          "valid patient",
			mutate:        func(p *Patient) {},
			expectedError: false,
		},
		{
			name:          "minimal patient",
			mutate:        func(p *Patient) { p.DateOfBirth, p.Gender, p.ContactInfo = nil, "", nil },
			expectedError: false,
		},
		{
			name:          "missing id",
			mutate:        func(p *Patient) { p.ID = "" },
			expectedError: true,
		},
		{
			name:          "non-uuid id",
			mutate:        func(p *Patient) { p.ID = "P001" },
			expectedError: true,
		},
		{
			name:          "missing mrn",
			mutate:        func(p *Patient) { p.MRN = "" },
			expectedError: true,
		},
		{
			name:          "missing name",
			mutate:        func(p *Patient) { p.Name = "" },
			expectedError: true,
		},
		{
			name:          "missing created timestamp",
			mutate:        func(p *Patient) { p.DateTimeCreated = time.Time{} },
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validPatient()
			tt.mutate(p)

			err := p.Validate()

			if tt.expectedError {
				assert.Error(t, err, "expected an error")
			} else {
				assert.NoError(t, err, "expected no error")
			}
		})
	}
}

func TestPatientQueryValidation(t *testing.T) {
	assert.NoError(t, (&PatientQuery{}).Validate())
	assert.NoError(t, (&PatientQuery{MRN: "MRN-000123", Limit: 10}).Validate())
	assert.Error(t, (&PatientQuery{Limit: 5000}).Validate())
	assert.Error(t, (&PatientQuery{Offset: -1}).Validate())
}

func TestPrescriptionValidation(t *testing.T) {
	valid := &Prescription{
		ID:              uuid.New().String(),
		PatientID:       uuid.New().String(),
		MedicationName:  "metformin",
		Dosage:          "500mg",
		Frequency:       "twice daily",
		Status:          "active",
		DateTimeCreated: time.Now().UTC(),
	}
	assert.NoError(t, valid.Validate())

	invalidStatus := *valid
	invalidStatus.Status = "paused"
	assert.Error(t, invalidStatus.Validate())

	missingName := *valid
	missingName.MedicationName = ""
	assert.Error(t, missingName.Validate())
}
