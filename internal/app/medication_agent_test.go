//go:build unit
// +build unit

package app

import (
	"context"
	"testing"

	"clinical_voice_service/internal/domain/agents"
	"clinical_voice_service/internal/pkg/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormulary_Lookup(t *testing.T) {
	formulary := LoadFormulary("", testutil.SetupTestLogger(t))

	assert.Nil(t, formulary.Lookup("Unobtanium"))

	entry := formulary.Lookup("aspirin")
	require.NotNil(t, entry)
	assert.Equal(t, "NSAID", entry.Class)
	assert.Contains(t, formulary.SameClass(entry), "Ibuprofen")
}

func TestFormulary_InteractionsBetween(t *testing.T) {
	formulary := LoadFormulary("", testutil.SetupTestLogger(t))

	found := formulary.InteractionsBetween([]string{"Aspirin", "Warfarin", "Metformin"})
	require.Len(t, found, 1)
	assert.Equal(t, "Moderate", found[0].Severity)
	assert.Equal(t, "Interaction between Aspirin and Warfarin", found[0].Description)

	assert.Empty(t, formulary.InteractionsBetween([]string{"Metformin", "Atorvastatin"}))
}

func TestMedicationAgent_CheckInteractions(t *testing.T) {
	chat := &stubChat{reply: `{
		"operation": "check_interactions",
		"status": "success",
		"data": {"medications": [{"name": "Aspirin"}, {"name": "Warfarin"}]},
		"error": null
	}`}
	agent, err := NewMedicationAgent(chat, LoadFormulary("", testutil.SetupTestLogger(t)), testutil.SetupTestLogger(t))
	require.NoError(t, err)

	resp, err := agent.Process(context.Background(), "any interaction between aspirin and warfarin?")
	require.NoError(t, err)

	require.Equal(t, agents.StatusSuccess, resp.Status)
	interactions, ok := resp.Data["interactions"].([]interface{})
	require.True(t, ok)
	require.Len(t, interactions, 1)
	require.Len(t, resp.Warnings, 1)
	assert.Equal(t, "Monitor for adverse effects when taking Aspirin with Warfarin", resp.Warnings[0])
}

func TestMedicationAgent_GetInfo(t *testing.T) {
	chat := &stubChat{reply: `{
		"operation": "get_info",
		"status": "success",
		"data": {"medications": ["Lisinopril"]},
		"error": null
	}`}
	agent, err := NewMedicationAgent(chat, LoadFormulary("", testutil.SetupTestLogger(t)), testutil.SetupTestLogger(t))
	require.NoError(t, err)

	resp, err := agent.Process(context.Background(), "tell me about lisinopril")
	require.NoError(t, err)

	require.Equal(t, agents.StatusSuccess, resp.Status)
	info, ok := resp.Data["medications"].([]interface{})
	require.True(t, ok)
	require.Len(t, info, 1)
	med := info[0].(map[string]interface{})
	assert.Equal(t, "Lisinopril", med["name"])
	assert.Equal(t, "ACE inhibitor", med["class"])
}

func TestMedicationAgent_GetInfoUnknownMedication(t *testing.T) {
	chat := &stubChat{reply: `{
		"operation": "get_info",
		"status": "success",
		"data": {"medications": ["Unobtanium"]},
		"error": null
	}`}
	agent, err := NewMedicationAgent(chat, LoadFormulary("", testutil.SetupTestLogger(t)), testutil.SetupTestLogger(t))
	require.NoError(t, err)

	resp, err := agent.Process(context.Background(), "tell me about unobtanium")
	require.NoError(t, err)

	assert.Equal(t, agents.StatusError, resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "Medication Unobtanium not found", *resp.Error)
}

func TestMedicationAgent_VerifyDosage(t *testing.T) {
	chat := &stubChat{reply: `{
		"operation": "verify_dosage",
		"status": "success",
		"data": {"medications": [{"name": "Metformin", "dosage": "500 mg twice daily"}]},
		"error": null
	}`}
	agent, err := NewMedicationAgent(chat, LoadFormulary("", testutil.SetupTestLogger(t)), testutil.SetupTestLogger(t))
	require.NoError(t, err)

	resp, err := agent.Process(context.Background(), "is 500 mg of metformin twice a day ok?")
	require.NoError(t, err)

	require.Equal(t, agents.StatusSuccess, resp.Status)
	assert.Equal(t, "500 mg twice daily", resp.Data["dosage"])
}

func TestMedicationAgent_NoMedications(t *testing.T) {
	chat := &stubChat{reply: `{
		"operation": "check_interactions",
		"status": "success",
		"data": {"note": "nothing extracted"},
		"error": null
	}`}
	agent, err := NewMedicationAgent(chat, LoadFormulary("", testutil.SetupTestLogger(t)), testutil.SetupTestLogger(t))
	require.NoError(t, err)

	resp, err := agent.Process(context.Background(), "check interactions")
	require.NoError(t, err)

	assert.Equal(t, agents.StatusError, resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "No medications specified", *resp.Error)
}
