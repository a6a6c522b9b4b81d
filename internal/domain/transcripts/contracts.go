package transcripts

import "context"

// Store defines the interface for transcript persistence. Implementations may
// tier saves across backends; a Save error means every tier failed.
type Store interface {
	// Save persists a transcript
	Save(ctx context.Context, transcript *Transcript) error
	// List returns up to limit transcripts, newest first. limit <= 0 returns all.
	List(ctx context.Context, limit int) ([]*Transcript, error)
	// Close releases the underlying connections
	Close(ctx context.Context) error
}
