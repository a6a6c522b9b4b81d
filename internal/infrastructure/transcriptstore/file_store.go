package transcriptstore

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"clinical_voice_service/internal/domain/transcripts"
	"clinical_voice_service/internal/pkg/logger"

	"github.com/bytedance/sonic"
)

const fileStoreName = "transcripts.json"

// fileDocument is the on-disk layout. Kept stable so exports remain readable
// by tooling that predates this service.
type fileDocument struct {
	Transcripts []*transcripts.Transcript `json:"transcripts"`
}

type fileStore struct {
	path   string
	mu     sync.Mutex
	logger logger.Logger
}

// NewFileStore returns a transcript store persisting to a single JSON file
// under dir. The directory is created if missing.
func NewFileStore(dir string, log logger.Logger) (transcripts.Store, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("failed to create transcript directory: %w", err)
	}

	return &fileStore{
		path:   filepath.Join(dir, fileStoreName),
		logger: log,
	}, nil
}

func (s *fileStore) Save(_ context.Context, transcript *transcripts.Transcript) error {
	if err := transcript.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.read()
	if err != nil {
		return err
	}
	doc.Transcripts = append(doc.Transcripts, transcript)

	if err := s.write(doc); err != nil {
		return err
	}

	s.logger.Info("Saved transcript to file store")
	return nil
}

func (s *fileStore) List(_ context.Context, limit int) ([]*transcripts.Transcript, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.read()
	if err != nil {
		return nil, err
	}

	// File order is append order; return newest first.
	out := make([]*transcripts.Transcript, 0, len(doc.Transcripts))
	for i := len(doc.Transcripts) - 1; i >= 0; i-- {
		out = append(out, doc.Transcripts[i])
		if limit > 0 && len(out) == limit {
			break
		}
	}

	return out, nil
}

func (s *fileStore) Close(_ context.Context) error {
	return nil
}

func (s *fileStore) read() (*fileDocument, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return &fileDocument{Transcripts: []*transcripts.Transcript{}}, nil
		}
		return nil, fmt.Errorf("failed to read transcript file: %w", err)
	}

	var doc fileDocument
	if err := sonic.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode transcript file: %w", err)
	}
	if doc.Transcripts == nil {
		doc.Transcripts = []*transcripts.Transcript{}
	}

	return &doc, nil
}

func (s *fileStore) write(doc *fileDocument) error {
	raw, err := sonic.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode transcript file: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o600); err != nil {
		return fmt.Errorf("failed to write transcript file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to replace transcript file: %w", err)
	}

	return nil
}
