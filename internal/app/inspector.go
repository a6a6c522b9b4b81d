package app

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"clinical_voice_service/internal/domain/agents"
	"clinical_voice_service/internal/pkg/logger"

	"github.com/bytedance/sonic"
)

const inspectorSystemPrompt = `You are the protocol inspector of a clinical multi-agent system.
You are given a snapshot of agent states, recorded protocol violations and shared context,
followed by a free-form inspection question. Answer strictly from the snapshot.
Respond ONLY with a JSON object in this exact format:
{"operation": "inspect", "status": "success", "data": {"answer": "<your answer>"}, "warnings": [], "error": null}
If the snapshot cannot answer the question, set status to "error" and explain in the error field.`

// ValidationResult reports whether an envelope conforms to the protocol.
type ValidationResult struct {
	IsValid     bool     `json:"is_valid"`
	Violations  []string `json:"violations"`
	Suggestions []string `json:"suggestions"`
}

// StateChange records an agent state transition observed by the inspector.
type StateChange struct {
	Agent         string                 `json:"agent"`
	PreviousState map[string]interface{} `json:"previous_state"`
	NewState      map[string]interface{} `json:"new_state"`
}

// ProtocolViolation is a recorded conflict or protocol breach.
type ProtocolViolation struct {
	Timestamp time.Time `json:"timestamp"`
	Agents    []string  `json:"agents"`
	Type      string    `json:"type"`
	Detail    string    `json:"detail"`
}

// ContextEntry is one shared fact tracked across agents.
type ContextEntry struct {
	Value       interface{} `json:"value"`
	SourceAgent string      `json:"source_agent"`
	Timestamp   time.Time   `json:"timestamp"`
}

// Inspector validates agent envelopes against the protocol and tracks agent
// state, conflicts and cross-agent context. Safe for concurrent use.
type Inspector struct {
	mu         sync.Mutex
	states     map[string]map[string]interface{}
	violations []ProtocolViolation
	context    map[string]ContextEntry
	logger     logger.Logger
}

// NewInspector creates a new instance of the inspector
func NewInspector(logger logger.Logger) *Inspector {
	return &Inspector{
		states:  map[string]map[string]interface{}{},
		context: map[string]ContextEntry{},
		logger:  logger,
	}
}

// ValidateResponse checks the envelope for required fields, a whitelisted
// operation and an object-shaped data field.
func (i *Inspector) ValidateResponse(agentName string, resp *agents.Response) *ValidationResult {
	result := &ValidationResult{IsValid: true, Violations: []string{}, Suggestions: []string{}}

	if resp == nil {
		result.IsValid = false
		result.Violations = append(result.Violations, "Missing response envelope")
		result.Suggestions = append(result.Suggestions, "Ensure the agent returns a response envelope")
		return result
	}

	if resp.Operation == "" {
		result.Violations = append(result.Violations, "Missing required field: operation")
	}
	if resp.Status == "" {
		result.Violations = append(result.Violations, "Missing required field: status")
	} else if resp.Status != agents.StatusSuccess && resp.Status != agents.StatusError {
		result.Violations = append(result.Violations, fmt.Sprintf("Invalid status: %s", resp.Status))
	}
	if resp.Data == nil {
		result.Violations = append(result.Violations, "Missing required field: data")
	}
	if len(result.Violations) > 0 {
		result.IsValid = false
		result.Suggestions = append(result.Suggestions, "Ensure all required fields are present in the response")
		i.recordViolation(agentName, "protocol", strings.Join(result.Violations, "; "))
		return result
	}

	if resp.Operation != "" && !agents.IsAllowedOperation(agentName, resp.Operation) {
		result.IsValid = false
		result.Violations = append(result.Violations, fmt.Sprintf("Invalid operation: %s", resp.Operation))
		result.Suggestions = append(result.Suggestions,
			fmt.Sprintf("Valid operations for %s: %s", agentName, strings.Join(agents.OperationsFor(agentName), ", ")))
		i.recordViolation(agentName, "operation_whitelist", resp.Operation)
		return result
	}

	return result
}

// MonitorState stores the agent's new state and returns the transition.
func (i *Inspector) MonitorState(agentName string, newState map[string]interface{}) *StateChange {
	i.mu.Lock()
	defer i.mu.Unlock()

	previous := i.states[agentName]
	if previous == nil {
		previous = map[string]interface{}{}
	}
	i.states[agentName] = newState

	return &StateChange{
		Agent:         agentName,
		PreviousState: previous,
		NewState:      newState,
	}
}

// ResolveConflicts records a conflict between two agents and returns the
// resolution summary.
func (i *Inspector) ResolveConflicts(agent1, agent2, conflictType string) string {
	i.mu.Lock()
	i.violations = append(i.violations, ProtocolViolation{
		Timestamp: time.Now().UTC(),
		Agents:    []string{agent1, agent2},
		Type:      conflictType,
		Detail:    "conflict resolved in favor of the most recent state",
	})
	i.mu.Unlock()

	resolution := fmt.Sprintf("Conflict between %s and %s resolved", agent1, agent2)
	i.logger.Warn("Resolved ", conflictType, " conflict between ", agent1, " and ", agent2)
	return resolution
}

// TrackContext stores a shared fact attributed to the source agent.
func (i *Inspector) TrackContext(key string, value interface{}, sourceAgent string) {
	i.mu.Lock()
	defer i.mu.Unlock()

	i.context[key] = ContextEntry{
		Value:       value,
		SourceAgent: sourceAgent,
		Timestamp:   time.Now().UTC(),
	}
}

// Context returns the tracked entry for a key.
func (i *Inspector) Context(key string) (ContextEntry, bool) {
	i.mu.Lock()
	defer i.mu.Unlock()

	entry, ok := i.context[key]
	return entry, ok
}

// Violations returns a copy of the recorded protocol violations.
func (i *Inspector) Violations() []ProtocolViolation {
	i.mu.Lock()
	defer i.mu.Unlock()

	out := make([]ProtocolViolation, len(i.violations))
	copy(out, i.violations)
	return out
}

// Inspect answers a free-form inspection question about the tracked agent
// states, violations and shared context. A nil chat client, or a model
// failure, degrades to the raw snapshot instead of an answer.
func (i *Inspector) Inspect(ctx context.Context, chat agents.ChatClient, message string) (*agents.Response, error) {
	snapshot := i.snapshot()

	if chat == nil {
		return agents.NewSuccessResponse("inspect", snapshot), nil
	}

	encoded, err := sonic.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode inspector snapshot: %w", err)
	}

	prompt := fmt.Sprintf("Snapshot:\n%s\n---\nQuestion: %s", string(encoded), message)
	raw, err := chat.Complete(ctx, inspectorSystemPrompt, prompt)
	if err != nil {
		i.logger.Warn("Inspection completion failed, returning snapshot: ", err)
		resp := agents.NewSuccessResponse("inspect", snapshot)
		resp.Warnings = append(resp.Warnings, "Model unavailable; returning raw snapshot")
		return resp, nil
	}

	resp, err := agents.DecodeResponse(raw)
	if err != nil {
		i.logger.Warn("Inspection envelope decode failed, returning snapshot: ", err)
		resp = agents.NewSuccessResponse("inspect", snapshot)
		resp.Warnings = append(resp.Warnings, "Model reply unusable; returning raw snapshot")
	}
	return resp, nil
}

// snapshot renders the tracked state for inspection.
func (i *Inspector) snapshot() map[string]interface{} {
	i.mu.Lock()
	defer i.mu.Unlock()

	states := map[string]interface{}{}
	for agent, state := range i.states {
		states[agent] = state
	}

	violations := make([]map[string]interface{}, 0, len(i.violations))
	for _, v := range i.violations {
		violations = append(violations, map[string]interface{}{
			"timestamp": v.Timestamp.Format(time.RFC3339),
			"agents":    v.Agents,
			"type":      v.Type,
			"detail":    v.Detail,
		})
	}

	shared := map[string]interface{}{}
	for key, entry := range i.context {
		shared[key] = map[string]interface{}{
			"value":        entry.Value,
			"source_agent": entry.SourceAgent,
			"timestamp":    entry.Timestamp.Format(time.RFC3339),
		}
	}

	return map[string]interface{}{
		"agent_states": states,
		"violations":   violations,
		"context":      shared,
	}
}

func (i *Inspector) recordViolation(agentName, violationType, detail string) {
	i.mu.Lock()
	defer i.mu.Unlock()

	i.violations = append(i.violations, ProtocolViolation{
		Timestamp: time.Now().UTC(),
		Agents:    []string{agentName},
		Type:      violationType,
		Detail:    detail,
	})
}
