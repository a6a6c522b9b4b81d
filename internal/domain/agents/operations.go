package agents

// Agent names
const (
	AgentEHR              = "ehr"
	AgentMedication       = "medication"
	AgentOrder            = "order"
	AgentClinicalDecision = "clinical_decision"
	AgentScheduling       = "scheduling"
	AgentAnalytics        = "analytics"
	AgentInspector        = "inspector"
)

// allowedOperations is the per-agent operation whitelist the inspector
// enforces on every envelope.
var allowedOperations = map[string][]string{
	AgentEHR:              {"retrieve", "update", "create"},
	AgentMedication:       {"check_interactions", "verify_dosage", "get_info"},
	AgentOrder:            {"create_order", "verify_order", "cancel_order"},
	AgentClinicalDecision: {"analyze_case", "check_guidelines", "assess_risk"},
	AgentScheduling: {
		"search_appointments",
		"check_availability",
		"schedule_appointment",
		"reschedule_appointment",
		"cancel_appointment",
	},
	AgentAnalytics: {"generate_metrics", "check_compliance", "analyze_trends"},
}

// OperationsFor returns the operation whitelist for the named agent. Unknown
// agents have no allowed operations.
func OperationsFor(agentName string) []string {
	ops, ok := allowedOperations[agentName]
	if !ok {
		return nil
	}
	out := make([]string, len(ops))
	copy(out, ops)
	return out
}

// IsAllowedOperation reports whether the operation is in the named agent's
// whitelist.
func IsAllowedOperation(agentName, operation string) bool {
	for _, op := range allowedOperations[agentName] {
		if op == operation {
			return true
		}
	}
	return false
}
