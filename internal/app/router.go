package app

import "clinical_voice_service/internal/domain/agents"

// routingRules maps utterance keywords to agents. Rules are checked in
// order, so guideline questions win over record lookups when both match.
var routingRules = []struct {
	agent    string
	keywords []string
}{
	{agents.AgentClinicalDecision, []string{"guideline", "clinical", "latest", "standard", "protocol"}},
	{agents.AgentEHR, []string{"history", "record", "patient", "medical"}},
	{agents.AgentMedication, []string{"medication", "drug", "prescription", "interaction"}},
	{agents.AgentOrder, []string{"order", "test", "lab", "procedure"}},
	{agents.AgentScheduling, []string{"schedule", "appointment", "available", "book", "cancel"}},
	{agents.AgentAnalytics, []string{"report", "trend", "analytics", "statistic"}},
}

// RouteMessage picks the agent for an utterance. The second return value is
// false when no rule matches and the user should be asked to rephrase.
func RouteMessage(message string) (string, bool) {
	for _, rule := range routingRules {
		if containsAnyKeyword(message, rule.keywords) {
			return rule.agent, true
		}
	}
	return "", false
}
