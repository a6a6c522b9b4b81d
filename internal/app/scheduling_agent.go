package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"clinical_voice_service/internal/domain/agents"
	"clinical_voice_service/internal/domain/scheduling"
	"clinical_voice_service/internal/pkg/logger"

	"github.com/google/uuid"
)

const schedulingSystemPrompt = `You are a Scheduling Agent responsible for managing appointments and schedules.
You can perform the following operations:
- search_appointments: Search for available appointments
- check_availability: Check available appointment slots
- schedule_appointment: Schedule a new appointment
- reschedule_appointment: Reschedule an existing appointment
- cancel_appointment: Cancel an appointment

IMPORTANT: You must respond with a valid JSON object. The response must be parseable JSON.
CRITICAL JSON RULES:
1. NO escaped newlines in any string values
2. NO escaped quotes in any string values
3. NO trailing commas
4. All dates must be in YYYY-MM-DD format
5. All times must be in HH:MM AM/PM format
6. The error field must ONLY appear at the root level

Always respond in JSON format with the following structure:
{
    "operation": "<operation_type>",
    "status": "success" or "error",
    "data": {
        "appointment_id": "<id_if_mentioned>",
        "date": "<YYYY-MM-DD>",
        "time": "<HH:MM AM/PM>",
        "new_date": "<YYYY-MM-DD for reschedules>",
        "new_time": "<HH:MM AM/PM for reschedules>",
        "type": "<appointment_type>",
        "provider": "<provider_name>",
        "duration": 30
    },
    "warnings": [],
    "error": null or error_message
}`

const (
	appointmentDateLayout = "2006-01-02"
	appointmentTimeLayout = "03:04 PM"

	defaultAppointmentType     = "Follow-up"
	defaultAppointmentDuration = 30
)

// schedulingAgent resolves extracted scheduling requests against the
// appointment repository.
type schedulingAgent struct {
	chat         agents.ChatClient
	appointments scheduling.AppointmentRepository
	logger       logger.Logger
}

// NewSchedulingAgent creates a new instance of the scheduling agent
func NewSchedulingAgent(chat agents.ChatClient, appointments scheduling.AppointmentRepository, logger logger.Logger) (agents.Agent, error) {
	if chat == nil || appointments == nil {
		return nil, fmt.Errorf("chat client and appointment repository are required")
	}
	return &schedulingAgent{
		chat:         chat,
		appointments: appointments,
		logger:       logger,
	}, nil
}

func (a *schedulingAgent) Name() string {
	return agents.AgentScheduling
}

func (a *schedulingAgent) Process(ctx context.Context, message string) (*agents.Response, error) {
	envelope := completeEnvelope(ctx, a.chat, schedulingSystemPrompt, message)
	if envelope.Status == agents.StatusError {
		return envelope, nil
	}

	switch envelope.Operation {
	case "search_appointments", "check_availability":
		return a.handleAvailability(ctx, envelope.Operation)
	case "schedule_appointment":
		return a.handleSchedule(ctx, envelope.Data)
	case "reschedule_appointment":
		return a.handleReschedule(ctx, envelope.Data)
	case "cancel_appointment":
		return a.handleCancel(ctx, envelope.Data)
	default:
		return agents.NewErrorResponse(envelope.Operation, fmt.Sprintf("Unsupported operation: %s", envelope.Operation)), nil
	}
}

func (a *schedulingAgent) handleAvailability(ctx context.Context, operation string) (*agents.Response, error) {
	available, err := a.appointments.List(ctx, &scheduling.AppointmentQuery{Status: scheduling.StatusAvailable})
	if err != nil {
		return nil, fmt.Errorf("failed to list available slots: %w", err)
	}

	slots := make([]interface{}, 0, len(available))
	for _, slot := range available {
		slots = append(slots, map[string]interface{}{
			"date":     slot.ScheduledAt.Format(appointmentDateLayout),
			"time":     slot.ScheduledAt.Format(appointmentTimeLayout),
			"provider": slot.Provider,
			"duration": slot.DurationMinutes,
		})
	}

	key := "available_slots"
	if operation == "search_appointments" {
		key = "available_appointments"
	}
	return agents.NewSuccessResponse(operation, map[string]interface{}{key: slots}), nil
}

func (a *schedulingAgent) handleSchedule(ctx context.Context, data map[string]interface{}) (*agents.Response, error) {
	scheduledAt, err := parseAppointmentTime(data, "date", "time")
	if err != nil {
		return agents.NewErrorResponse("schedule_appointment", err.Error()), nil
	}

	provider := stringField(data, "provider")
	if provider == "" {
		return agents.NewErrorResponse("schedule_appointment", "No provider specified"), nil
	}

	appointmentType := stringField(data, "type")
	if appointmentType == "" {
		appointmentType = defaultAppointmentType
	}

	duration := intField(data, "duration")
	if duration <= 0 {
		duration = defaultAppointmentDuration
	}

	// A concurrent create can take the allocated code; retry with a fresh
	// one on collision.
	var appointment *scheduling.Appointment
	for attempt := 0; ; attempt++ {
		code, err := a.appointments.NextCode(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to allocate appointment code: %w", err)
		}

		appointment = &scheduling.Appointment{
			ID:              uuid.New().String(),
			Code:            code,
			Type:            appointmentType,
			ScheduledAt:     scheduledAt,
			DurationMinutes: duration,
			Provider:        provider,
			Status:          scheduling.StatusScheduled,
			DateTimeCreated: time.Now().UTC(),
		}
		if err := appointment.Validate(); err != nil {
			return nil, fmt.Errorf("invalid appointment: %w", err)
		}

		err = a.appointments.Create(ctx, appointment)
		if err == nil {
			break
		}
		if errors.Is(err, scheduling.ErrCodeTaken) && attempt < 2 {
			continue
		}
		return nil, fmt.Errorf("failed to create appointment: %w", err)
	}

	a.logger.Info("Scheduled appointment ", appointment.Code, " with ", provider)
	return agents.NewSuccessResponse("schedule_appointment", map[string]interface{}{
		"appointment_id": appointment.Code,
		"date":           appointment.ScheduledAt.Format(appointmentDateLayout),
		"time":           appointment.ScheduledAt.Format(appointmentTimeLayout),
		"type":           appointment.Type,
		"provider":       appointment.Provider,
		"duration":       appointment.DurationMinutes,
	}), nil
}

func (a *schedulingAgent) handleReschedule(ctx context.Context, data map[string]interface{}) (*agents.Response, error) {
	code := stringField(data, "appointment_id")
	if code == "" {
		return agents.NewErrorResponse("reschedule_appointment", "No appointment id provided"), nil
	}

	appointment, err := a.appointments.GetByCode(ctx, code)
	if err != nil {
		return agents.NewErrorResponse("reschedule_appointment", fmt.Sprintf("Appointment %s not found", code)), nil
	}

	newTime, err := parseAppointmentTime(data, "new_date", "new_time")
	if err != nil {
		return agents.NewErrorResponse("reschedule_appointment", err.Error()), nil
	}

	oldTime := appointment.ScheduledAt
	appointment.ScheduledAt = newTime
	appointment.Status = scheduling.StatusRescheduled
	if err := a.appointments.UpdateByID(ctx, appointment); err != nil {
		return nil, fmt.Errorf("failed to reschedule appointment %s: %w", code, err)
	}

	a.logger.Info("Rescheduled appointment ", code)
	return agents.NewSuccessResponse("reschedule_appointment", map[string]interface{}{
		"appointment_id": appointment.Code,
		"old_date":       oldTime.Format(appointmentDateLayout),
		"old_time":       oldTime.Format(appointmentTimeLayout),
		"new_date":       newTime.Format(appointmentDateLayout),
		"new_time":       newTime.Format(appointmentTimeLayout),
		"provider":       appointment.Provider,
	}), nil
}

func (a *schedulingAgent) handleCancel(ctx context.Context, data map[string]interface{}) (*agents.Response, error) {
	code := stringField(data, "appointment_id")
	if code == "" {
		return agents.NewErrorResponse("cancel_appointment", "No appointment id provided"), nil
	}

	appointment, err := a.appointments.GetByCode(ctx, code)
	if err != nil {
		return agents.NewErrorResponse("cancel_appointment", fmt.Sprintf("Appointment %s not found", code)), nil
	}

	appointment.Status = scheduling.StatusCancelled
	if err := a.appointments.UpdateByID(ctx, appointment); err != nil {
		return nil, fmt.Errorf("failed to cancel appointment %s: %w", code, err)
	}

	a.logger.Info("Cancelled appointment ", code)
	return agents.NewSuccessResponse("cancel_appointment", map[string]interface{}{
		"appointment_id": appointment.Code,
		"status":         appointment.Status,
	}), nil
}

// parseAppointmentTime combines a YYYY-MM-DD date and HH:MM AM/PM time from
// the extracted data into a single timestamp.
func parseAppointmentTime(data map[string]interface{}, dateKey, timeKey string) (time.Time, error) {
	date := stringField(data, dateKey)
	if date == "" {
		return time.Time{}, fmt.Errorf("No appointment date provided")
	}

	clock := stringField(data, timeKey)
	if clock == "" {
		clock = "09:00 AM"
	}

	parsed, err := time.Parse(appointmentDateLayout+" "+appointmentTimeLayout, date+" "+clock)
	if err != nil {
		return time.Time{}, fmt.Errorf("Invalid appointment time: %s %s", date, clock)
	}
	return parsed, nil
}

// intField reads a numeric data field, accepting the float64 shape JSON
// decoding produces.
func intField(data map[string]interface{}, key string) int {
	switch v := data[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	case int64:
		return int(v)
	}
	return 0
}
