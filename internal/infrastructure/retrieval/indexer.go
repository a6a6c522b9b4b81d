package retrieval

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"clinical_voice_service/internal/domain/agents"
	"clinical_voice_service/internal/domain/guidelines"
	"clinical_voice_service/internal/pkg/logger"

	"github.com/google/uuid"
)

// Chunking parameters for guideline documents
const (
	chunkSizeChars    = 1200
	chunkOverlapChars = 150
)

// Indexer embeds guideline documents and persists the chunks for retrieval.
type Indexer struct {
	repo     guidelines.Repository
	embedder agents.EmbeddingClient
	logger   logger.Logger
}

// NewIndexer creates a guideline indexer.
func NewIndexer(repo guidelines.Repository, embedder agents.EmbeddingClient, log logger.Logger) *Indexer {
	return &Indexer{
		repo:     repo,
		embedder: embedder,
		logger:   log,
	}
}

// IndexDirectory ingests every .txt and .md file under dir. Re-indexing a
// source replaces its previous chunks. Returns the number of chunks stored.
func (x *Indexer) IndexDirectory(ctx context.Context, dir string) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, fmt.Errorf("failed to read guideline directory: %w", err)
	}

	total := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if ext != ".txt" && ext != ".md" {
			continue
		}

		n, err := x.IndexFile(ctx, filepath.Join(dir, entry.Name()))
		if err != nil {
			return total, err
		}
		total += n
	}

	return total, nil
}

// IndexFile ingests a single guideline document.
func (x *Indexer) IndexFile(ctx context.Context, path string) (int, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("failed to read guideline file: %w", err)
	}

	source := filepath.Base(path)
	pieces := splitChunks(string(raw))
	if len(pieces) == 0 {
		x.logger.Warn("Skipping empty guideline document ", source)
		return 0, nil
	}

	vectors, err := x.embedder.Embed(ctx, pieces)
	if err != nil {
		return 0, fmt.Errorf("failed to embed guideline chunks: %w", err)
	}

	if err := x.repo.DeleteBySource(ctx, source); err != nil {
		return 0, err
	}

	for i, piece := range pieces {
		chunk := &guidelines.Chunk{
			ID:              uuid.New().String(),
			Source:          source,
			Content:         piece,
			Embedding:       vectors[i],
			DateTimeCreated: time.Now().UTC(),
		}
		if err := x.repo.Create(ctx, chunk); err != nil {
			return i, err
		}
	}

	x.logger.Info("Indexed ", len(pieces), " chunks from ", source)
	return len(pieces), nil
}

// splitChunks breaks a document into overlapping character windows on
// whitespace boundaries where possible.
func splitChunks(text string) []string {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil
	}

	var chunks []string
	for start := 0; start < len(trimmed); {
		end := start + chunkSizeChars
		if end >= len(trimmed) {
			chunks = append(chunks, strings.TrimSpace(trimmed[start:]))
			break
		}

		// Back off to the last whitespace inside the window.
		cut := end
		for cut > start && !isSpace(trimmed[cut-1]) {
			cut--
		}
		if cut == start {
			cut = end
		}

		chunks = append(chunks, strings.TrimSpace(trimmed[start:cut]))

		next := cut - chunkOverlapChars
		if next <= start {
			next = cut
		}
		start = next
	}

	out := chunks[:0]
	for _, c := range chunks {
		if c != "" {
			out = append(out, c)
		}
	}
	return out
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\n' || b == '\t' || b == '\r'
}
