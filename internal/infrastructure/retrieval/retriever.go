package retrieval

import (
	"context"
	"fmt"
	"math"
	"sort"

	"clinical_voice_service/internal/domain/agents"
	"clinical_voice_service/internal/domain/guidelines"
	"clinical_voice_service/internal/pkg/config"
	"clinical_voice_service/internal/pkg/logger"
)

type embeddingRetriever struct {
	repo     guidelines.Repository
	embedder agents.EmbeddingClient
	minScore float64
	logger   logger.Logger
}

// NewEmbeddingRetriever returns a Retriever that cosine-ranks stored guideline
// chunks against the embedded question.
func NewEmbeddingRetriever(repo guidelines.Repository, embedder agents.EmbeddingClient, settings *config.RetrievalSettings, log logger.Logger) (guidelines.Retriever, error) {
	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("invalid retrieval settings: %w", err)
	}

	return &embeddingRetriever{
		repo:     repo,
		embedder: embedder,
		minScore: settings.MinConfidence,
		logger:   log,
	}, nil
}

func (r *embeddingRetriever) Query(ctx context.Context, question string, topK int) ([]*guidelines.ScoredChunk, error) {
	vectors, err := r.embedder.Embed(ctx, []string{question})
	if err != nil {
		return nil, fmt.Errorf("failed to embed question: %w", err)
	}
	query := vectors[0]

	chunks, err := r.repo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load guideline chunks: %w", err)
	}

	scored := make([]*guidelines.ScoredChunk, 0, len(chunks))
	for _, chunk := range chunks {
		score := cosineSimilarity(query, chunk.Embedding)
		if score < r.minScore {
			continue
		}
		scored = append(scored, &guidelines.ScoredChunk{Chunk: chunk, Score: score})
	}

	sort.Slice(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	if topK > 0 && len(scored) > topK {
		scored = scored[:topK]
	}

	r.logger.Info("Retrieved ", len(scored), " guideline chunks for query")
	return scored, nil
}

// cosineSimilarity returns 0 for mismatched or zero vectors so malformed
// stored embeddings rank last instead of erroring the query.
func cosineSimilarity(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}

	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
