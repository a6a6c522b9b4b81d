package app

import (
	"context"
	"fmt"

	"clinical_voice_service/internal/domain/agents"
	"clinical_voice_service/internal/pkg/logger"
)

const medicationSystemPrompt = `You are a Medication Agent responsible for managing medication information and interactions.
You can perform the following operations:
- check_interactions: Check interactions between medications
- verify_dosage: Verify medication dosage
- get_info: Get medication information

IMPORTANT: You must respond with a valid JSON object. The response must be parseable JSON.
DO NOT include any escaped characters or newlines in string values.

Always respond in JSON format with the following structure:
{
    "operation": "<operation_type>",
    "status": "success" or "error",
    "data": {
        "medications": [
            {
                "name": "<medication_name>",
                "dosage": "<dosage_if_mentioned>"
            }
        ]
    },
    "warnings": [],
    "error": null or error_message
}

Remember:
1. All string values must be properly quoted
2. No escaped newlines in string values
3. No trailing commas
4. Extract every medication name mentioned in the request`

// medicationAgent answers medication questions from the local formulary. The
// model only extracts the operation and medication names; interaction and
// dosage facts come from the formulary.
type medicationAgent struct {
	chat      agents.ChatClient
	formulary *Formulary
	logger    logger.Logger
}

// NewMedicationAgent creates a new instance of the medication agent
func NewMedicationAgent(chat agents.ChatClient, formulary *Formulary, logger logger.Logger) (agents.Agent, error) {
	if chat == nil || formulary == nil {
		return nil, fmt.Errorf("chat client and formulary are required")
	}
	return &medicationAgent{
		chat:      chat,
		formulary: formulary,
		logger:    logger,
	}, nil
}

func (a *medicationAgent) Name() string {
	return agents.AgentMedication
}

func (a *medicationAgent) Process(ctx context.Context, message string) (*agents.Response, error) {
	envelope := completeEnvelope(ctx, a.chat, medicationSystemPrompt, message)
	if envelope.Status == agents.StatusError {
		return envelope, nil
	}

	medications := stringSliceField(envelope.Data, "medications")

	switch envelope.Operation {
	case "check_interactions":
		return a.handleInteractions(medications), nil
	case "verify_dosage":
		return a.handleDosage(medications, envelope.Data), nil
	case "get_info":
		return a.handleInfo(medications), nil
	default:
		return agents.NewErrorResponse(envelope.Operation, fmt.Sprintf("Unsupported operation: %s", envelope.Operation)), nil
	}
}

func (a *medicationAgent) handleInteractions(medications []string) *agents.Response {
	if len(medications) == 0 {
		return agents.NewErrorResponse("check_interactions", "No medications specified")
	}

	interactions := a.formulary.InteractionsBetween(medications)

	listed := make([]interface{}, 0, len(interactions))
	resp := agents.NewSuccessResponse("check_interactions", nil)
	for _, interaction := range interactions {
		listed = append(listed, map[string]interface{}{
			"medication1": interaction.Medication1,
			"medication2": interaction.Medication2,
			"severity":    interaction.Severity,
			"description": interaction.Description,
		})
		resp.AddWarning(fmt.Sprintf("Monitor for adverse effects when taking %s with %s",
			interaction.Medication1, interaction.Medication2))
	}

	resp.Data = map[string]interface{}{
		"medications":  medications,
		"interactions": listed,
	}
	return resp
}

func (a *medicationAgent) handleDosage(medications []string, data map[string]interface{}) *agents.Response {
	if len(medications) == 0 {
		return agents.NewErrorResponse("verify_dosage", "No medications specified")
	}

	dosage := stringField(data, "dosage")
	if dosage == "" {
		if meds, ok := data["medications"].([]interface{}); ok && len(meds) > 0 {
			if med, ok := meds[0].(map[string]interface{}); ok {
				dosage = stringField(med, "dosage")
			}
		}
	}
	if dosage == "" {
		dosage = "Standard dosage"
	}

	verified := make([]interface{}, 0, len(medications))
	for _, name := range medications {
		entry := a.formulary.Lookup(name)
		if entry == nil {
			return agents.NewErrorResponse("verify_dosage", fmt.Sprintf("Medication %s not found", name))
		}
		verified = append(verified, map[string]interface{}{
			"name":       entry.Name,
			"class":      entry.Class,
			"indication": entry.Indication,
			"dosage":     dosage,
		})
	}

	return agents.NewSuccessResponse("verify_dosage", map[string]interface{}{
		"medications": verified,
		"dosage":      dosage,
	})
}

func (a *medicationAgent) handleInfo(medications []string) *agents.Response {
	if len(medications) == 0 {
		return agents.NewErrorResponse("get_info", "No medications specified")
	}

	info := make([]interface{}, 0, len(medications))
	for _, name := range medications {
		entry := a.formulary.Lookup(name)
		if entry == nil {
			a.logger.Warn("Medication not in formulary: ", name)
			continue
		}
		info = append(info, map[string]interface{}{
			"name":         entry.Name,
			"class":        entry.Class,
			"indication":   entry.Indication,
			"interactions": entry.Interactions,
			"alternatives": a.formulary.SameClass(entry),
		})
	}
	if len(info) == 0 {
		return agents.NewErrorResponse("get_info", fmt.Sprintf("Medication %s not found", medications[0]))
	}

	return agents.NewSuccessResponse("get_info", map[string]interface{}{
		"medications": info,
	})
}
