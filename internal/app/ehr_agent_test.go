//go:build unit
// +build unit

package app

import (
	"context"
	"testing"
	"time"

	"clinical_voice_service/internal/domain/agents"
	"clinical_voice_service/internal/domain/ehr"
	"clinical_voice_service/internal/pkg/testutil"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedPatient(t *testing.T, repo *memPatientRepo, mrn, name string) *ehr.Patient {
	t.Helper()
	patient := &ehr.Patient{
		ID:              uuid.New().String(),
		MRN:             mrn,
		Name:            name,
		MedicalHistory:  []string{"hypertension"},
		Medications:     []string{"Lisinopril"},
		DateTimeCreated: time.Now().UTC(),
	}
	require.NoError(t, repo.Create(context.Background(), patient))
	return patient
}

func TestEHRAgent_Create(t *testing.T) {
	repo := &memPatientRepo{}
	chat := &stubChat{reply: `{
		"operation": "create",
		"status": "success",
		"data": {"name": "John Doe", "allergies": ["penicillin"]},
		"error": null
	}`}
	agent, err := NewEHRAgent(chat, repo, testutil.SetupTestLogger(t))
	require.NoError(t, err)

	resp, err := agent.Process(context.Background(), "create a record for John Doe, allergic to penicillin")
	require.NoError(t, err)

	assert.Equal(t, agents.StatusSuccess, resp.Status)
	assert.Equal(t, "create", resp.Operation)
	assert.Equal(t, "John Doe", resp.Data["name"])
	assert.NotEmpty(t, resp.Data["mrn"])

	stored, err := repo.List(context.Background(), &ehr.PatientQuery{})
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, []string{"penicillin"}, stored[0].Allergies)
}

func TestEHRAgent_RetrieveByMRN(t *testing.T) {
	repo := &memPatientRepo{}
	seedPatient(t, repo, "MRN-1001", "Jane Roe")
	chat := &stubChat{reply: `{
		"operation": "retrieve",
		"status": "success",
		"data": {"mrn": "MRN-1001"},
		"error": null
	}`}
	agent, err := NewEHRAgent(chat, repo, testutil.SetupTestLogger(t))
	require.NoError(t, err)

	resp, err := agent.Process(context.Background(), "pull up the record for MRN-1001")
	require.NoError(t, err)

	require.Equal(t, agents.StatusSuccess, resp.Status)
	patients, ok := resp.Data["patients"].([]interface{})
	require.True(t, ok)
	require.Len(t, patients, 1)
	patient := patients[0].(map[string]interface{})
	assert.Equal(t, "Jane Roe", patient["name"])
}

func TestEHRAgent_RetrieveUnknownPatient(t *testing.T) {
	repo := &memPatientRepo{}
	chat := &stubChat{reply: `{
		"operation": "retrieve",
		"status": "success",
		"data": {"mrn": "MRN-9999"},
		"error": null
	}`}
	agent, err := NewEHRAgent(chat, repo, testutil.SetupTestLogger(t))
	require.NoError(t, err)

	resp, err := agent.Process(context.Background(), "pull up MRN-9999")
	require.NoError(t, err)

	assert.Equal(t, agents.StatusError, resp.Status)
	require.NotNil(t, resp.Error)
	assert.Contains(t, *resp.Error, "MRN-9999 not found")
}

func TestEHRAgent_Update(t *testing.T) {
	repo := &memPatientRepo{}
	seedPatient(t, repo, "MRN-1001", "Jane Roe")
	chat := &stubChat{reply: `{
		"operation": "update",
		"status": "success",
		"data": {"mrn": "MRN-1001", "updates": {"medications": ["Metformin"]}},
		"error": null
	}`}
	agent, err := NewEHRAgent(chat, repo, testutil.SetupTestLogger(t))
	require.NoError(t, err)

	resp, err := agent.Process(context.Background(), "add metformin to MRN-1001")
	require.NoError(t, err)

	assert.Equal(t, agents.StatusSuccess, resp.Status)

	patient, err := repo.GetByMRN(context.Background(), "MRN-1001")
	require.NoError(t, err)
	assert.Equal(t, []string{"Metformin"}, patient.Medications)
}

func TestEHRAgent_UpdateWithoutFields(t *testing.T) {
	repo := &memPatientRepo{}
	seedPatient(t, repo, "MRN-1001", "Jane Roe")
	chat := &stubChat{reply: `{
		"operation": "update",
		"status": "success",
		"data": {"mrn": "MRN-1001"},
		"error": null
	}`}
	agent, err := NewEHRAgent(chat, repo, testutil.SetupTestLogger(t))
	require.NoError(t, err)

	resp, err := agent.Process(context.Background(), "update MRN-1001")
	require.NoError(t, err)

	assert.Equal(t, agents.StatusError, resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "No update fields provided", *resp.Error)
}

func TestEHRAgent_ModelErrorPassesThrough(t *testing.T) {
	repo := &memPatientRepo{}
	chat := &stubChat{reply: `{
		"operation": "retrieve",
		"status": "error",
		"data": null,
		"error": "ambiguous patient reference"
	}`}
	agent, err := NewEHRAgent(chat, repo, testutil.SetupTestLogger(t))
	require.NoError(t, err)

	resp, err := agent.Process(context.Background(), "show me the record")
	require.NoError(t, err)

	assert.Equal(t, agents.StatusError, resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "ambiguous patient reference", *resp.Error)
}
