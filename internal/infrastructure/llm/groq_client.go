package llm

import (
	"context"
	"fmt"

	"clinical_voice_service/internal/pkg/config"
	"clinical_voice_service/internal/pkg/logger"

	openai "github.com/sashabaranov/go-openai"
)

// GroqClient talks to the Groq OpenAI-compatible endpoint. It implements the
// agents.ChatClient and agents.EmbeddingClient contracts.
type GroqClient struct {
	client      *openai.Client
	model       string
	embedModel  string
	temperature float32
	maxTokens   int
	logger      logger.Logger
}

// NewGroqClient builds a client from the Groq settings.
func NewGroqClient(settings *config.GroqSettings, log logger.Logger) (*GroqClient, error) {
	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("invalid Groq settings: %w", err)
	}

	cfg := openai.DefaultConfig(settings.APIKey)
	cfg.BaseURL = settings.BaseURL

	return &GroqClient{
		client:      openai.NewClientWithConfig(cfg),
		model:       settings.Model,
		embedModel:  settings.EmbeddingModel,
		temperature: settings.Temperature,
		maxTokens:   settings.MaxTokens,
		logger:      log,
	}, nil
}

// Complete sends a system and user prompt in JSON mode and returns the raw
// completion text.
func (c *GroqClient) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		Temperature: c.temperature,
		MaxTokens:   c.maxTokens,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userPrompt},
		},
	})
	if err != nil {
		return "", fmt.Errorf("chat completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat completion returned no choices")
	}

	return resp.Choices[0].Message.Content, nil
}

// Embed returns one embedding vector per input text.
func (c *GroqClient) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if c.embedModel == "" {
		return nil, fmt.Errorf("no embedding model configured")
	}

	resp, err := c.client.CreateEmbeddings(ctx, openai.EmbeddingRequestStrings{
		Model: openai.EmbeddingModel(c.embedModel),
		Input: texts,
	})
	if err != nil {
		return nil, fmt.Errorf("embedding request failed: %w", err)
	}
	if len(resp.Data) != len(texts) {
		return nil, fmt.Errorf("embedding response count mismatch: got %d, want %d", len(resp.Data), len(texts))
	}

	out := make([][]float32, len(resp.Data))
	for i, d := range resp.Data {
		out[i] = d.Embedding
	}

	return out, nil
}
