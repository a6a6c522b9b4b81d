//go:build unit
// +build unit

package v1

import (
	"strings"
	"testing"
	"time"

	"clinical_voice_service/internal/domain/ehr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssistRequest_Validate(t *testing.T) {
	tests := []struct {
		name      string
		request   AssistRequest
		shouldErr bool
	}{
		{"Valid message", AssistRequest{Message: "Schedule an appointment"}, false},
		{"Empty message", AssistRequest{Message: ""}, true},
		{"Message at limit", AssistRequest{Message: strings.Repeat("a", 4000)}, false},
		{"Message over limit", AssistRequest{Message: strings.Repeat("a", 4001)}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.request.Validate()
			if tt.shouldErr {
				require.Error(t, err, "expected validation error")
			} else {
				require.NoError(t, err, "expected no validation error")
			}
		})
	}
}

func TestCreatePatientRequest_Validate(t *testing.T) {
	tests := []struct {
		name      string
		request   CreatePatientRequest
		shouldErr bool
	}{
		{"Valid minimal", CreatePatientRequest{Name: "John Doe"}, false},
		{"Valid full", CreatePatientRequest{MRN: "MRN-12345", Name: "John Doe", DateOfBirth: "1985-04-12", Gender: "male"}, false},
		{"Missing name", CreatePatientRequest{MRN: "MRN-12345"}, true},
		{"Bad date of birth", CreatePatientRequest{Name: "John Doe", DateOfBirth: "12/04/1985"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.request.Validate()
			if tt.shouldErr {
				require.Error(t, err, "expected validation error")
			} else {
				require.NoError(t, err, "expected no validation error")
			}
		})
	}
}

func TestNewPatientResponse_FormatsDateOfBirth(t *testing.T) {
	dob := time.Date(1985, 4, 12, 0, 0, 0, 0, time.UTC)
	patient := &ehr.Patient{
		ID:              "id-1",
		MRN:             "MRN-12345",
		Name:            "John Doe",
		DateOfBirth:     &dob,
		DateTimeCreated: time.Now(),
	}

	response := newPatientResponse(patient)

	require.NotNil(t, response.DateOfBirth)
	assert.Equal(t, "1985-04-12", *response.DateOfBirth)
}

func TestNewPatientResponse_OmitsMissingDateOfBirth(t *testing.T) {
	patient := &ehr.Patient{
		ID:              "id-1",
		MRN:             "MRN-12345",
		Name:            "John Doe",
		DateTimeCreated: time.Now(),
	}

	response := newPatientResponse(patient)

	assert.Nil(t, response.DateOfBirth)
}
