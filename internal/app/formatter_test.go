//go:build unit
// +build unit

package app

import (
	"testing"
	"time"

	"clinical_voice_service/internal/domain/agents"
	"clinical_voice_service/internal/domain/ehr"

	"github.com/stretchr/testify/assert"
)

func TestFormatResponse_Errors(t *testing.T) {
	assert.Equal(t, "Error: no response produced", FormatResponse(nil))
	assert.Equal(t, "Error: Patient MRN-1 not found",
		FormatResponse(agents.NewErrorResponse("retrieve", "Patient MRN-1 not found")))
}

func TestFormatResponse_ScheduleAppointment(t *testing.T) {
	resp := agents.NewSuccessResponse("schedule_appointment", map[string]interface{}{
		"appointment_id": "A003",
		"date":           "2026-09-02",
		"time":           "10:30 AM",
		"type":           "Follow-up",
		"provider":       "Dr. Jones",
	})

	text := FormatResponse(resp)
	assert.Equal(t, "Your Follow-up appointment is confirmed for 2026-09-02 at 10:30 AM with Dr. Jones. Your appointment ID is A003.", text)
}

func TestFormatResponse_AvailabilityEmpty(t *testing.T) {
	resp := agents.NewSuccessResponse("check_availability", map[string]interface{}{
		"available_slots": []interface{}{},
	})
	assert.Equal(t, "There are no available appointments at the moment.", FormatResponse(resp))
}

func TestFormatResponse_PatientRetrieveIncludesHistoryAndMedications(t *testing.T) {
	patient := &ehr.Patient{
		ID:              "id-1",
		MRN:             "MRN-1",
		Name:            "Jane Roe",
		MedicalHistory:  []string{"hypertension"},
		Medications:     []string{"lisinopril"},
		DateTimeCreated: time.Now().UTC(),
	}

	resp := agents.NewSuccessResponse("retrieve", map[string]interface{}{
		"patients": []interface{}{patientData(patient)},
	})

	text := FormatResponse(resp)
	assert.Contains(t, text, "Jane Roe (MRN MRN-1)")
	assert.Contains(t, text, "history: hypertension")
	assert.Contains(t, text, "medications: lisinopril")
}

func TestFormatResponse_InteractionsWithWarnings(t *testing.T) {
	resp := agents.NewSuccessResponse("check_interactions", map[string]interface{}{
		"interactions": []interface{}{
			map[string]interface{}{"severity": "Moderate", "description": "Interaction between Aspirin and Warfarin"},
		},
	})
	resp.AddWarning("Monitor for adverse effects when taking Aspirin with Warfarin")

	text := FormatResponse(resp)
	assert.Contains(t, text, "Severity: Moderate")
	assert.Contains(t, text, "Important considerations:")
	assert.Contains(t, text, "- Monitor for adverse effects when taking Aspirin with Warfarin")
}

func TestFormatResponse_NoInteractions(t *testing.T) {
	resp := agents.NewSuccessResponse("check_interactions", map[string]interface{}{
		"interactions": []interface{}{},
	})
	assert.Equal(t, "No significant interactions found between the specified medications.", FormatResponse(resp))
}

func TestFormatResponse_ClinicalAnswerPassesThrough(t *testing.T) {
	resp := agents.NewSuccessResponse("check_guidelines", map[string]interface{}{
		"answer": "Administer antibiotics within one hour.",
	})
	assert.Equal(t, "Administer antibiotics within one hour.", FormatResponse(resp))
}

func TestFormatResponse_OrderLifecycle(t *testing.T) {
	created := agents.NewSuccessResponse("create_order", map[string]interface{}{"order_id": "ORD-20260827100000"})
	assert.Equal(t, "Order ORD-20260827100000 has been created and is pending verification.", FormatResponse(created))

	cancelled := agents.NewSuccessResponse("cancel_order", map[string]interface{}{"order_id": "ORD-20260827100000"})
	assert.Equal(t, "Order ORD-20260827100000 has been cancelled.", FormatResponse(cancelled))
}

func TestFormatValidationFailure(t *testing.T) {
	text := FormatValidationFailure(&ValidationResult{
		Violations:  []string{"Invalid operation: drop_table"},
		Suggestions: []string{"Valid operations for ehr: retrieve, update, create"},
	})
	assert.Contains(t, text, "Response validation failed:")
	assert.Contains(t, text, "- Invalid operation: drop_table")
	assert.Contains(t, text, "Suggestions:")
}
