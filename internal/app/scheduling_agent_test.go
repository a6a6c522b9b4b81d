//go:build unit
// +build unit

package app

import (
	"context"
	"testing"
	"time"

	"clinical_voice_service/internal/domain/agents"
	"clinical_voice_service/internal/domain/scheduling"
	"clinical_voice_service/internal/pkg/testutil"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedAvailableSlot(t *testing.T, repo *memAppointmentRepo, provider string) {
	t.Helper()
	slot := &scheduling.Appointment{
		ID:              uuid.New().String(),
		Code:            "A001",
		Type:            "Consultation",
		ScheduledAt:     time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC),
		DurationMinutes: 30,
		Provider:        provider,
		Status:          scheduling.StatusAvailable,
		DateTimeCreated: time.Now().UTC(),
	}
	require.NoError(t, repo.Create(context.Background(), slot))
}

func TestSchedulingAgent_CheckAvailability(t *testing.T) {
	repo := &memAppointmentRepo{}
	seedAvailableSlot(t, repo, "Dr. Smith")
	chat := &stubChat{reply: `{
		"operation": "check_availability",
		"status": "success",
		"data": {"date": "2026-09-01"},
		"error": null
	}`}
	agent, err := NewSchedulingAgent(chat, repo, testutil.SetupTestLogger(t))
	require.NoError(t, err)

	resp, err := agent.Process(context.Background(), "what slots are available?")
	require.NoError(t, err)

	require.Equal(t, agents.StatusSuccess, resp.Status)
	slots, ok := resp.Data["available_slots"].([]interface{})
	require.True(t, ok)
	require.Len(t, slots, 1)
	slot := slots[0].(map[string]interface{})
	assert.Equal(t, "2026-09-01", slot["date"])
	assert.Equal(t, "09:00 AM", slot["time"])
	assert.Equal(t, "Dr. Smith", slot["provider"])
}

func TestSchedulingAgent_ScheduleAppointment(t *testing.T) {
	repo := &memAppointmentRepo{}
	chat := &stubChat{reply: `{
		"operation": "schedule_appointment",
		"status": "success",
		"data": {"date": "2026-09-02", "time": "10:30 AM", "provider": "Dr. Jones", "type": "Follow-up", "duration": 45},
		"error": null
	}`}
	agent, err := NewSchedulingAgent(chat, repo, testutil.SetupTestLogger(t))
	require.NoError(t, err)

	resp, err := agent.Process(context.Background(), "book a follow-up with Dr. Jones")
	require.NoError(t, err)

	require.Equal(t, agents.StatusSuccess, resp.Status)
	assert.Equal(t, "A001", resp.Data["appointment_id"])
	assert.Equal(t, "10:30 AM", resp.Data["time"])

	stored, err := repo.GetByCode(context.Background(), "A001")
	require.NoError(t, err)
	assert.Equal(t, scheduling.StatusScheduled, stored.Status)
	assert.Equal(t, 45, stored.DurationMinutes)
}

func TestSchedulingAgent_ScheduleWithoutProvider(t *testing.T) {
	repo := &memAppointmentRepo{}
	chat := &stubChat{reply: `{
		"operation": "schedule_appointment",
		"status": "success",
		"data": {"date": "2026-09-02"},
		"error": null
	}`}
	agent, err := NewSchedulingAgent(chat, repo, testutil.SetupTestLogger(t))
	require.NoError(t, err)

	resp, err := agent.Process(context.Background(), "book an appointment")
	require.NoError(t, err)

	assert.Equal(t, agents.StatusError, resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "No provider specified", *resp.Error)
}

func TestSchedulingAgent_RescheduleNotFound(t *testing.T) {
	repo := &memAppointmentRepo{}
	chat := &stubChat{reply: `{
		"operation": "reschedule_appointment",
		"status": "success",
		"data": {"appointment_id": "A042", "new_date": "2026-09-05", "new_time": "11:00 AM"},
		"error": null
	}`}
	agent, err := NewSchedulingAgent(chat, repo, testutil.SetupTestLogger(t))
	require.NoError(t, err)

	resp, err := agent.Process(context.Background(), "move appointment A042")
	require.NoError(t, err)

	assert.Equal(t, agents.StatusError, resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "Appointment A042 not found", *resp.Error)
}

func TestSchedulingAgent_CancelAppointment(t *testing.T) {
	repo := &memAppointmentRepo{}
	seedAvailableSlot(t, repo, "Dr. Smith")
	chat := &stubChat{reply: `{
		"operation": "cancel_appointment",
		"status": "success",
		"data": {"appointment_id": "A001"},
		"error": null
	}`}
	agent, err := NewSchedulingAgent(chat, repo, testutil.SetupTestLogger(t))
	require.NoError(t, err)

	resp, err := agent.Process(context.Background(), "cancel appointment A001")
	require.NoError(t, err)

	require.Equal(t, agents.StatusSuccess, resp.Status)
	assert.Equal(t, scheduling.StatusCancelled, resp.Data["status"])

	stored, err := repo.GetByCode(context.Background(), "A001")
	require.NoError(t, err)
	assert.Equal(t, scheduling.StatusCancelled, stored.Status)
}
