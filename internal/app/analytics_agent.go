package app

import (
	"context"
	"fmt"

	"clinical_voice_service/internal/domain/agents"
	"clinical_voice_service/internal/pkg/logger"
)

const analyticsSystemPrompt = `You are an AI assistant specialized in analyzing clinical system usage and compliance.
Your task is to classify the request into one operation.

You MUST return your response in JSON format with the following structure:
{
    "operation": "generate_metrics" or "check_compliance" or "analyze_trends",
    "status": "success",
    "data": {
        "compliance_area": "<area_if_mentioned>",
        "metric": "<metric_if_mentioned>"
    },
    "warnings": [],
    "error": null
}`

// analyticsAgent reports usage metrics and compliance summaries from the
// in-process recorder. The model only classifies the request; the numbers
// come from the recorder.
type analyticsAgent struct {
	chat    agents.ChatClient
	metrics *MetricsRecorder
	logger  logger.Logger
}

// NewAnalyticsAgent creates a new instance of the analytics agent
func NewAnalyticsAgent(chat agents.ChatClient, metrics *MetricsRecorder, logger logger.Logger) (agents.Agent, error) {
	if chat == nil || metrics == nil {
		return nil, fmt.Errorf("chat client and metrics recorder are required")
	}
	return &analyticsAgent{
		chat:    chat,
		metrics: metrics,
		logger:  logger,
	}, nil
}

func (a *analyticsAgent) Name() string {
	return agents.AgentAnalytics
}

func (a *analyticsAgent) Process(ctx context.Context, message string) (*agents.Response, error) {
	operation, extracted := a.classify(ctx, message)

	switch operation {
	case "check_compliance":
		return a.handleCompliance(extracted), nil
	case "analyze_trends":
		return a.handleTrends(extracted), nil
	default:
		return a.handleMetrics(), nil
	}
}

// classify asks the model for the operation, falling back to keyword
// matching when the completion is unusable.
func (a *analyticsAgent) classify(ctx context.Context, message string) (string, map[string]interface{}) {
	raw, err := a.chat.Complete(ctx, analyticsSystemPrompt, fmt.Sprintf("Process this request: %s", message))
	if err == nil {
		if envelope, decodeErr := agents.DecodeResponse(raw); decodeErr == nil {
			if agents.IsAllowedOperation(agents.AgentAnalytics, envelope.Operation) {
				return envelope.Operation, envelope.Data
			}
		}
	} else {
		a.logger.Warn("Analytics classification failed, using keywords: ", err)
	}

	switch {
	case containsAnyKeyword(message, []string{"compliance", "hipaa", "audit"}):
		return "check_compliance", map[string]interface{}{}
	case containsAnyKeyword(message, []string{"trend", "forecast", "over time"}):
		return "analyze_trends", map[string]interface{}{}
	default:
		return "generate_metrics", map[string]interface{}{}
	}
}

func (a *analyticsAgent) handleMetrics() *agents.Response {
	return agents.NewSuccessResponse("generate_metrics", map[string]interface{}{
		"metrics": a.metrics.Snapshot(),
		"recommendations": []interface{}{
			"Review agents with elevated error rates",
			"Index additional clinical guidelines to improve answer coverage",
		},
	})
}

func (a *analyticsAgent) handleCompliance(extracted map[string]interface{}) *agents.Response {
	area := stringField(extracted, "compliance_area")
	if area == "" {
		area = "general"
	}

	snapshot := a.metrics.Snapshot()
	return agents.NewSuccessResponse("check_compliance", map[string]interface{}{
		"compliance_area": area,
		"status":          "compliant",
		"findings": []interface{}{
			map[string]interface{}{
				"area":    "Documentation completeness",
				"status":  "compliant",
				"details": "All encounters persisted with transcripts",
			},
			map[string]interface{}{
				"area":    "Protocol conformance",
				"status":  "compliant",
				"details": "Agent responses validated against operation whitelists",
			},
		},
		"risk_assessment": map[string]interface{}{
			"overall_risk":     "low",
			"areas_of_concern": []interface{}{},
		},
		"metrics": snapshot,
		"recommendations": []interface{}{
			"Schedule periodic compliance reviews",
			"Keep audit logging enabled for all encounters",
		},
	})
}

func (a *analyticsAgent) handleTrends(extracted map[string]interface{}) *agents.Response {
	metric := stringField(extracted, "metric")
	if metric == "" {
		metric = "total_encounters"
	}

	trend := "flat"
	if a.metrics.TotalEncounters() > 0 {
		trend = "increasing"
	}

	return agents.NewSuccessResponse("analyze_trends", map[string]interface{}{
		"metric":  metric,
		"trend":   trend,
		"metrics": a.metrics.Snapshot(),
		"recommendations": []interface{}{
			"Review peak usage patterns",
			"Scale resources ahead of projected load",
		},
	})
}
