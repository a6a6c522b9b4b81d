package guidelines

import "context"

// Repository defines the interface for guideline chunk persistence
type Repository interface {
	// Create adds a new Chunk to the database
	Create(ctx context.Context, chunk *Chunk) error
	// ListAll returns every stored chunk
	ListAll(ctx context.Context) ([]*Chunk, error)
	// DeleteBySource removes every chunk ingested from the named source
	DeleteBySource(ctx context.Context, source string) error
}

// Retriever defines the interface for similarity search over stored chunks
type Retriever interface {
	// Query embeds the question and returns the topK most similar chunks at
	// or above the configured confidence threshold, best first.
	Query(ctx context.Context, question string, topK int) ([]*ScoredChunk, error)
}
