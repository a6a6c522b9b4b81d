package agents

import "context"

// Agent defines a clinical agent that turns a user message into a validated
// response envelope.
type Agent interface {
	// Name returns the agent name used for routing and whitelist lookups.
	Name() string

	// Process handles a user message and returns the response envelope.
	// Provider or storage failures are reported as error envelopes where
	// possible; a non-nil error means no envelope could be produced.
	Process(ctx context.Context, message string) (*Response, error)
}

// ChatClient defines the JSON-mode chat completion contract backing the
// agents.
type ChatClient interface {
	// Complete sends a system and user prompt and returns the raw model
	// output, which is expected to be a single JSON object.
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// EmbeddingClient defines the embedding contract used by guideline retrieval.
type EmbeddingClient interface {
	// Embed returns one vector per input text, in input order.
	Embed(ctx context.Context, texts []string) ([][]float32, error)
}
