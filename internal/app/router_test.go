//go:build unit
// +build unit

package app

import (
	"testing"

	"clinical_voice_service/internal/domain/agents"

	"github.com/stretchr/testify/assert"
)

func TestRouteMessage(t *testing.T) {
	tests := []struct {
		name      string
		message   string
		wantAgent string
		wantMatch bool
	}{
		{"guideline question", "what are the latest sepsis guidelines?", agents.AgentClinicalDecision, true},
		{"record lookup", "show me the patient history", agents.AgentEHR, true},
		{"drug interaction", "any drug interaction with warfarin?", agents.AgentMedication, true},
		{"lab order", "order a lab panel", agents.AgentOrder, true},
		{"booking", "book an appointment for tomorrow", agents.AgentScheduling, true},
		{"usage report", "show me the usage report", agents.AgentAnalytics, true},
		{"case insensitive", "Check Available APPOINTMENT slots", agents.AgentScheduling, true},
		{"no match", "hello there", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			agent, matched := RouteMessage(tt.message)
			assert.Equal(t, tt.wantMatch, matched)
			assert.Equal(t, tt.wantAgent, agent)
		})
	}
}

func TestRouteMessage_ClinicalKeywordsWinOverRecords(t *testing.T) {
	// "clinical" and "patient" both appear; guideline questions take priority
	agent, matched := RouteMessage("what do clinical guidelines say about this patient?")
	assert.True(t, matched)
	assert.Equal(t, agents.AgentClinicalDecision, agent)
}

func TestRouteMessage_MedicationBeatsOrders(t *testing.T) {
	// "prescription" routes to medication even though "order" also matches
	agent, matched := RouteMessage("order a prescription refill")
	assert.True(t, matched)
	assert.Equal(t, agents.AgentMedication, agent)
}
