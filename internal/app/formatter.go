package app

import (
	"fmt"
	"strings"

	"clinical_voice_service/internal/domain/agents"
)

// rephrasePrompt is spoken back when no routing rule matches the utterance.
const rephrasePrompt = "I'm not sure which part of the system can help with that. Could you rephrase your request?"

// FormatResponse renders an envelope into the sentence spoken back to the
// user.
func FormatResponse(resp *agents.Response) string {
	if resp == nil {
		return "Error: no response produced"
	}
	if resp.Status == agents.StatusError {
		message := "Unknown error"
		if resp.Error != nil && *resp.Error != "" {
			message = *resp.Error
		}
		return fmt.Sprintf("Error: %s", message)
	}

	var text string
	switch resp.Operation {
	case "search_appointments":
		text = formatSlots(resp.Data, "available_appointments")
	case "check_availability":
		text = formatSlots(resp.Data, "available_slots")
	case "schedule_appointment":
		text = fmt.Sprintf("Your %s appointment is confirmed for %s at %s with %s. Your appointment ID is %s.",
			stringField(resp.Data, "type"),
			stringField(resp.Data, "date"),
			stringField(resp.Data, "time"),
			stringField(resp.Data, "provider"),
			stringField(resp.Data, "appointment_id"))
	case "reschedule_appointment":
		text = fmt.Sprintf("Appointment %s has been moved from %s %s to %s %s with %s.",
			stringField(resp.Data, "appointment_id"),
			stringField(resp.Data, "old_date"),
			stringField(resp.Data, "old_time"),
			stringField(resp.Data, "new_date"),
			stringField(resp.Data, "new_time"),
			stringField(resp.Data, "provider"))
	case "cancel_appointment":
		text = fmt.Sprintf("Appointment %s has been cancelled.", stringField(resp.Data, "appointment_id"))

	case "retrieve":
		text = formatPatients(resp.Data)
	case "create":
		text = fmt.Sprintf("Created a record for %s with medical record number %s.",
			stringField(resp.Data, "name"), stringField(resp.Data, "mrn"))
	case "update":
		text = fmt.Sprintf("Updated the record for medical record number %s.", stringField(resp.Data, "mrn"))

	case "get_info":
		text = formatMedicationInfo(resp.Data)
	case "check_interactions":
		text = formatInteractions(resp.Data)
	case "verify_dosage":
		text = fmt.Sprintf("Recommended dosage: %s", stringField(resp.Data, "dosage"))

	case "create_order":
		text = fmt.Sprintf("Order %s has been created and is pending verification.", stringField(resp.Data, "order_id"))
	case "verify_order":
		text = fmt.Sprintf("Order %s has been verified.", stringField(resp.Data, "order_id"))
	case "cancel_order":
		text = fmt.Sprintf("Order %s has been cancelled.", stringField(resp.Data, "order_id"))

	case "analyze_case", "check_guidelines", "assess_risk":
		text = stringField(resp.Data, "answer")

	case "generate_metrics", "analyze_trends":
		text = formatMetrics(resp.Data)
	case "check_compliance":
		text = fmt.Sprintf("Compliance status for %s: %s.",
			stringField(resp.Data, "compliance_area"), stringField(resp.Data, "status"))
	}

	if text == "" {
		if encoded, err := resp.Encode(); err == nil {
			text = string(encoded)
		} else {
			text = "The request completed."
		}
	}

	if len(resp.Warnings) > 0 {
		var b strings.Builder
		b.WriteString(text)
		b.WriteString("\n\nImportant considerations:")
		for _, warning := range resp.Warnings {
			b.WriteString("\n- ")
			b.WriteString(warning)
		}
		text = b.String()
	}

	return text
}

// FormatValidationFailure renders an inspector rejection.
func FormatValidationFailure(result *ValidationResult) string {
	var b strings.Builder
	b.WriteString("Response validation failed:")
	for _, violation := range result.Violations {
		b.WriteString("\n- ")
		b.WriteString(violation)
	}
	if len(result.Suggestions) > 0 {
		b.WriteString("\n\nSuggestions:")
		for _, suggestion := range result.Suggestions {
			b.WriteString("\n- ")
			b.WriteString(suggestion)
		}
	}
	return b.String()
}

func formatSlots(data map[string]interface{}, key string) string {
	slots, _ := data[key].([]interface{})
	if len(slots) == 0 {
		return "There are no available appointments at the moment."
	}

	var b strings.Builder
	fmt.Fprintf(&b, "I found %d available appointments:", len(slots))
	for _, item := range slots {
		slot, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		fmt.Fprintf(&b, "\n- %s at %s with %s",
			stringField(slot, "date"), stringField(slot, "time"), stringField(slot, "provider"))
	}
	return b.String()
}

func formatPatients(data map[string]interface{}) string {
	patients, _ := data["patients"].([]interface{})
	if len(patients) == 0 {
		return "No matching patient records were found."
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Found %d patient record(s):", len(patients))
	for _, item := range patients {
		patient, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		fmt.Fprintf(&b, "\n- %s (MRN %s)", stringField(patient, "name"), stringField(patient, "mrn"))
		if history := stringSliceField(patient, "medical_history"); len(history) > 0 {
			fmt.Fprintf(&b, ", history: %s", strings.Join(history, ", "))
		}
		if medications := stringSliceField(patient, "medications"); len(medications) > 0 {
			fmt.Fprintf(&b, ", medications: %s", strings.Join(medications, ", "))
		}
	}
	return b.String()
}

func formatMedicationInfo(data map[string]interface{}) string {
	medications, _ := data["medications"].([]interface{})
	if len(medications) == 0 {
		return "No medication information available."
	}

	var b strings.Builder
	b.WriteString("Medication information:")
	for _, item := range medications {
		med, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		fmt.Fprintf(&b, "\n%s (%s) - Used for %s.",
			stringField(med, "name"), stringField(med, "class"), stringField(med, "indication"))
	}
	return b.String()
}

func formatInteractions(data map[string]interface{}) string {
	interactions, _ := data["interactions"].([]interface{})
	if len(interactions) == 0 {
		return "No significant interactions found between the specified medications."
	}

	var b strings.Builder
	b.WriteString("Medication interaction analysis:")
	for _, item := range interactions {
		interaction, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		fmt.Fprintf(&b, "\nSeverity: %s\nDescription: %s",
			stringField(interaction, "severity"), stringField(interaction, "description"))
	}
	return b.String()
}

func formatMetrics(data map[string]interface{}) string {
	metrics := mapField(data, "metrics")
	if metrics == nil {
		return "No metrics recorded yet."
	}

	total := intField(metrics, "total_encounters")
	var b strings.Builder
	fmt.Fprintf(&b, "Recorded %d encounter(s) since startup.", total)
	if byAgent := mapField(metrics, "by_agent"); len(byAgent) > 0 {
		b.WriteString(" Breakdown:")
		for agentName := range byAgent {
			fmt.Fprintf(&b, " %s=%d", agentName, intField(byAgent, agentName))
		}
	}
	return b.String()
}
