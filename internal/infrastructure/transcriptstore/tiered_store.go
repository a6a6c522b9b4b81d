package transcriptstore

import (
	"context"
	"fmt"

	"clinical_voice_service/internal/domain/transcripts"
	"clinical_voice_service/internal/pkg/logger"
)

type tieredStore struct {
	primary  transcripts.Store
	fallback transcripts.Store
	logger   logger.Logger
}

// NewTieredStore chains a primary store with a fallback. A primary save or
// list failure degrades that single call to the fallback tier; transcripts
// are never dropped because the primary is down. primary may be nil when the
// deployment runs file-only.
func NewTieredStore(primary, fallback transcripts.Store, log logger.Logger) transcripts.Store {
	return &tieredStore{
		primary:  primary,
		fallback: fallback,
		logger:   log,
	}
}

func (s *tieredStore) Save(ctx context.Context, transcript *transcripts.Transcript) error {
	if s.primary != nil {
		err := s.primary.Save(ctx, transcript)
		if err == nil {
			return nil
		}
		s.logger.Warn("Primary transcript store save failed, degrading to fallback: ", err)
	}

	if err := s.fallback.Save(ctx, transcript); err != nil {
		return fmt.Errorf("all transcript store tiers failed: %w", err)
	}
	return nil
}

func (s *tieredStore) List(ctx context.Context, limit int) ([]*transcripts.Transcript, error) {
	if s.primary != nil {
		out, err := s.primary.List(ctx, limit)
		if err == nil {
			return out, nil
		}
		s.logger.Warn("Primary transcript store list failed, degrading to fallback: ", err)
	}

	return s.fallback.List(ctx, limit)
}

func (s *tieredStore) Close(ctx context.Context) error {
	var firstErr error
	if s.primary != nil {
		if err := s.primary.Close(ctx); err != nil {
			firstErr = err
		}
	}
	if err := s.fallback.Close(ctx); err != nil && firstErr == nil {
		firstErr = err
	}
	return firstErr
}
