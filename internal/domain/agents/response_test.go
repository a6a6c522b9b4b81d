//go:build unit
// +build unit

package agents

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResponseValidation(t *testing.T) {
	tests := []struct {
		name          string
		response      *Response
		expectedError bool
	}{
		{
			name:          "valid success envelope",
			response:      NewSuccessResponse("retrieve", map[string]interface{}{"patient_id": "123"}),
			expectedError: false,
		},
		{
			name:          "valid error envelope",
			response:      NewErrorResponse("retrieve", "patient not found"),
			expectedError: false,
		},
		{
			name: "missing operation",
			response: &Response{
				Status: StatusSuccess,
				Data:   map[string]interface{}{},
			},
			expectedError: true,
		},
		{
			name: "invalid status",
			response: &Response{
				Operation: "retrieve",
				Status:    "partial",
				Data:      map[string]interface{}{},
			},
			expectedError: true,
		},
		{
			name: "nil data",
			response: &Response{
				Operation: "retrieve",
				Status:    StatusSuccess,
			},
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.response.Validate()

			if tt.expectedError {
				assert.Error(t, err, "expected an error")
			} else {
				assert.NoError(t, err, "expected no error")
			}
		})
	}
}

func TestDecodeResponse(t *testing.T) {
	tests := []struct {
		name      string
		raw       string
		wantErr   bool
		operation string
		status    string
	}{
		{
			name:      "clean envelope",
			raw:       `{"operation":"retrieve","status":"success","data":{"patient_id":"123"},"warnings":[],"error":null}`,
			operation: "retrieve",
			status:    StatusSuccess,
		},
		{
			name:      "markdown fenced envelope",
			raw:       "```json\n{\"operation\":\"check_interactions\",\"status\":\"success\",\"data\":{}}\n```",
			operation: "check_interactions",
			status:    StatusSuccess,
		},
		{
			name:      "leading prose before envelope",
			raw:       `Here is the result: {"operation":"create_order","status":"success","data":{"order_id":"ORD-1"}}`,
			operation: "create_order",
			status:    StatusSuccess,
		},
		{
			name:    "not json at all",
			raw:     "I'm sorry, I cannot help with that.",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := DecodeResponse(tt.raw)

			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.operation, resp.Operation)
			assert.Equal(t, tt.status, resp.Status)
			assert.NotNil(t, resp.Data)
			assert.NotNil(t, resp.Warnings)
		})
	}
}

func TestDecodeResponseRoundTrip(t *testing.T) {
	original := NewSuccessResponse("schedule_appointment", map[string]interface{}{
		"appointment_id": "A001",
	})
	original.AddWarning("Provider calendar nearly full")

	encoded, err := original.Encode()
	require.NoError(t, err)

	decoded, err := DecodeResponse(string(encoded))
	require.NoError(t, err)

	assert.Equal(t, original.Operation, decoded.Operation)
	assert.Equal(t, original.Status, decoded.Status)
	assert.Equal(t, original.Warnings, decoded.Warnings)
	assert.Equal(t, "A001", decoded.Data["appointment_id"])
}

func TestOperationWhitelist(t *testing.T) {
	assert.True(t, IsAllowedOperation(AgentEHR, "retrieve"))
	assert.True(t, IsAllowedOperation(AgentScheduling, "reschedule_appointment"))
	assert.True(t, IsAllowedOperation(AgentAnalytics, "check_compliance"))

	assert.False(t, IsAllowedOperation(AgentEHR, "schedule_appointment"))
	assert.False(t, IsAllowedOperation(AgentMedication, ""))
	assert.False(t, IsAllowedOperation("unknown", "retrieve"))

	ops := OperationsFor(AgentOrder)
	assert.ElementsMatch(t, []string{"create_order", "verify_order", "cancel_order"}, ops)

	// mutating the returned slice must not affect the registry
	ops[0] = "tampered"
	assert.True(t, IsAllowedOperation(AgentOrder, "create_order"))

	assert.Nil(t, OperationsFor("unknown"))
}
