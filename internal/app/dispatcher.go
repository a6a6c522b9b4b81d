package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"clinical_voice_service/internal/domain/agents"
	"clinical_voice_service/internal/domain/events"
	"clinical_voice_service/internal/domain/transcripts"
	"clinical_voice_service/internal/pkg/logger"

	"github.com/google/uuid"
)

// DispatchResult is the outcome of one routed encounter.
type DispatchResult struct {
	EncounterID string           `json:"encounter_id"`
	Agent       string           `json:"agent"`
	Response    *agents.Response `json:"response,omitempty"`
	Reply       string           `json:"reply"`
}

// Dispatcher routes an utterance to an agent, validates the envelope,
// persists the transcript and emits audit events. Transcript and event
// failures degrade to warnings so the spoken reply is never lost.
type Dispatcher struct {
	registry    map[string]agents.Agent
	inspector   *Inspector
	metrics     *MetricsRecorder
	transcripts transcripts.Store
	publisher   events.Publisher
	logger      logger.Logger
}

// NewDispatcher creates a new instance of the dispatcher
func NewDispatcher(
	agentList []agents.Agent,
	inspector *Inspector,
	metrics *MetricsRecorder,
	store transcripts.Store,
	publisher events.Publisher,
	logger logger.Logger,
) (*Dispatcher, error) {
	if len(agentList) == 0 {
		return nil, fmt.Errorf("at least one agent is required")
	}
	if inspector == nil || metrics == nil {
		return nil, fmt.Errorf("inspector and metrics recorder are required")
	}

	registry := make(map[string]agents.Agent, len(agentList))
	for _, agent := range agentList {
		if agent == nil {
			return nil, fmt.Errorf("nil agent in registry")
		}
		registry[agent.Name()] = agent
	}

	return &Dispatcher{
		registry:    registry,
		inspector:   inspector,
		metrics:     metrics,
		transcripts: store,
		publisher:   publisher,
		logger:      logger,
	}, nil
}

// Dispatch handles one utterance end to end and returns the reply to speak.
func (d *Dispatcher) Dispatch(ctx context.Context, message string) (*DispatchResult, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, fmt.Errorf("empty message")
	}

	encounterID := uuid.New().String()

	agentName, matched := RouteMessage(message)
	if !matched {
		d.logger.Info("No routing rule matched, asking to rephrase")
		result := &DispatchResult{
			EncounterID: encounterID,
			Reply:       rephrasePrompt,
		}
		d.saveTranscript(ctx, encounterID, message, "", nil)
		return result, nil
	}

	agent, ok := d.registry[agentName]
	if !ok {
		return nil, fmt.Errorf("no agent registered for %s", agentName)
	}

	d.logger.Info("Dispatching encounter ", encounterID, " to ", agentName)
	resp, err := agent.Process(ctx, message)
	if err != nil {
		d.metrics.RecordError(ErrorKindDispatch)
		d.logger.Error("Agent ", agentName, " failed: ", err)
		resp = agents.NewErrorResponse("unknown", fmt.Sprintf("agent failure: %v", err))
	}

	result := &DispatchResult{
		EncounterID: encounterID,
		Agent:       agentName,
		Response:    resp,
	}

	validation := d.inspector.ValidateResponse(agentName, resp)
	if !validation.IsValid {
		d.metrics.RecordError(ErrorKindValidation)
		d.publish(ctx, encounterID, events.TypeValidationFailed, agentName, map[string]interface{}{
			"violations": validation.Violations,
		})
		result.Reply = FormatValidationFailure(validation)
		d.saveTranscript(ctx, encounterID, message, agentName, resp)
		return result, nil
	}

	d.inspector.MonitorState(agentName, map[string]interface{}{
		"last_operation": resp.Operation,
		"last_status":    resp.Status,
		"encounter_id":   encounterID,
	})
	d.metrics.RecordEncounter(agentName)

	result.Reply = FormatResponse(resp)

	d.saveTranscript(ctx, encounterID, message, agentName, resp)
	d.publish(ctx, encounterID, events.TypeAgentDispatched, agentName, map[string]interface{}{
		"operation": resp.Operation,
		"status":    resp.Status,
	})

	return result, nil
}

func (d *Dispatcher) saveTranscript(ctx context.Context, encounterID, message, agentName string, resp *agents.Response) {
	if d.transcripts == nil {
		return
	}

	metadata := map[string]interface{}{
		"encounter_id": encounterID,
	}
	if agentName != "" {
		metadata["agent"] = agentName
	}
	if resp != nil {
		metadata["operation"] = resp.Operation
		metadata["status"] = resp.Status
	}

	transcript := &transcripts.Transcript{
		Text:      message,
		Timestamp: time.Now().UTC(),
		Metadata:  metadata,
	}
	if err := d.transcripts.Save(ctx, transcript); err != nil {
		d.metrics.RecordError(ErrorKindStorage)
		d.logger.Warn("Failed to persist transcript: ", err)
		return
	}

	d.publish(ctx, encounterID, events.TypeTranscriptSaved, agentName, map[string]interface{}{
		"length": len(message),
	})
}

func (d *Dispatcher) publish(ctx context.Context, encounterID, eventType, agentName string, payload map[string]interface{}) {
	if d.publisher == nil {
		return
	}

	event := &events.EncounterEvent{
		EncounterID: encounterID,
		Type:        eventType,
		Agent:       agentName,
		Payload:     payload,
		Timestamp:   time.Now().UTC(),
	}
	if err := d.publisher.Publish(ctx, event); err != nil {
		d.logger.Warn("Failed to publish ", eventType, " event: ", err)
	}
}
