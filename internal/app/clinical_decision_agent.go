package app

import (
	"context"
	"fmt"
	"strings"

	"clinical_voice_service/internal/domain/agents"
	"clinical_voice_service/internal/domain/guidelines"
	"clinical_voice_service/internal/pkg/config"
	"clinical_voice_service/internal/pkg/logger"
)

const clinicalDecisionSystemPrompt = `You are a helpful AI assistant providing information for a clinical setting.
Your goal is to answer the user's question based ONLY on the provided context documents.
If the context documents do not contain sufficient information to answer the question directly, clearly state that the information is not available in the provided documents.
Do not use any external knowledge or make assumptions beyond the provided text. Be concise and factual.

IMPORTANT: You must respond with a valid JSON object using this structure:
{
    "operation": "<operation_type>",
    "status": "success" or "error",
    "data": {
        "answer": "<your answer based strictly on the context>"
    },
    "warnings": [],
    "error": null or error_message
}`

// medicalDisclaimer is appended to every clinical decision answer.
const medicalDisclaimer = "This information is for educational purposes only and should not be considered a substitute for professional medical advice, diagnosis, or treatment. Always seek the advice of your physician or other qualified health provider with any questions you may have regarding a medical condition."

const noGuidelineAnswer = "The requested information is not available in the knowledge base."

// clinicalDecisionAgent answers clinical questions by retrieving guideline
// chunks and asking the model to answer strictly from them.
type clinicalDecisionAgent struct {
	chat      agents.ChatClient
	retriever guidelines.Retriever
	settings  *config.RetrievalSettings
	logger    logger.Logger
}

// NewClinicalDecisionAgent creates a new instance of the clinical decision agent
func NewClinicalDecisionAgent(
	chat agents.ChatClient,
	retriever guidelines.Retriever,
	settings *config.RetrievalSettings,
	logger logger.Logger,
) (agents.Agent, error) {
	if chat == nil || retriever == nil {
		return nil, fmt.Errorf("chat client and retriever are required")
	}
	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("invalid retrieval settings: %w", err)
	}
	return &clinicalDecisionAgent{
		chat:      chat,
		retriever: retriever,
		settings:  settings,
		logger:    logger,
	}, nil
}

func (a *clinicalDecisionAgent) Name() string {
	return agents.AgentClinicalDecision
}

func (a *clinicalDecisionAgent) Process(ctx context.Context, message string) (*agents.Response, error) {
	operation := classifyClinicalOperation(message)

	scored, err := a.retriever.Query(ctx, message, a.settings.TopK)
	if err != nil {
		a.logger.Error("Guideline retrieval failed: ", err)
		return agents.NewErrorResponse(operation, "Knowledge base search failed"), nil
	}

	if len(scored) == 0 {
		resp := agents.NewSuccessResponse(operation, map[string]interface{}{
			"answer":  withDisclaimer(noGuidelineAnswer),
			"sources": []interface{}{},
		})
		return resp, nil
	}

	var contextParts []string
	sources := make([]interface{}, 0, len(scored))
	for _, chunk := range scored {
		contextParts = append(contextParts, chunk.Chunk.Content)
		sources = append(sources, map[string]interface{}{
			"source": chunk.Chunk.Source,
			"score":  chunk.Score,
		})
	}

	prompt := fmt.Sprintf(
		"Context from knowledge base:\n%s\n---\nBased strictly on the context provided above, answer the following question:\nQuestion: %s",
		strings.Join(contextParts, "\n\n---\nContext Document:\n"), message)

	raw, err := a.chat.Complete(ctx, clinicalDecisionSystemPrompt, prompt)
	if err != nil {
		return agents.NewErrorResponse(operation, fmt.Sprintf("model request failed: %v", err)), nil
	}

	envelope, err := agents.DecodeResponse(raw)
	if err != nil {
		return agents.NewErrorResponse(operation, fmt.Sprintf("Invalid JSON response from model: %v", err)), nil
	}
	if envelope.Error != nil && *envelope.Error != "" {
		return agents.NewErrorResponse(operation, *envelope.Error), nil
	}

	answer := stringField(envelope.Data, "answer")
	if answer == "" {
		answer = noGuidelineAnswer
	}

	resp := agents.NewSuccessResponse(operation, map[string]interface{}{
		"answer":     withDisclaimer(answer),
		"sources":    sources,
		"confidence": scored[0].Score,
	})
	resp.Warnings = append(resp.Warnings, envelope.Warnings...)
	return resp, nil
}

// classifyClinicalOperation picks the whitelisted operation that matches the
// question.
func classifyClinicalOperation(message string) string {
	switch {
	case containsAnyKeyword(message, []string{"risk", "complication"}):
		return "assess_risk"
	case containsAnyKeyword(message, []string{"guideline", "protocol", "standard", "recommendation"}):
		return "check_guidelines"
	default:
		return "analyze_case"
	}
}

// withDisclaimer appends the mandatory disclaimer unless the answer already
// carries it.
func withDisclaimer(answer string) string {
	if strings.Contains(strings.ToLower(answer), strings.ToLower(medicalDisclaimer[:40])) {
		return answer
	}
	return answer + "\n\n" + medicalDisclaimer
}
