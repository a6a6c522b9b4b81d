package stt

import (
	"context"
	"fmt"
	"io"
	"runtime"
	"strings"

	"clinical_voice_service/internal/pkg/config"
	"clinical_voice_service/internal/pkg/logger"

	"github.com/ggerganov/whisper.cpp/bindings/go/pkg/whisper"
)

// Transcriber converts 16 kHz mono PCM into text.
type Transcriber interface {
	// Transcribe returns the transcript text. An empty string means no speech
	// was recognized.
	Transcribe(ctx context.Context, pcm []float32) (string, error)
	// Close releases the model
	Close() error
}

type whisperTranscriber struct {
	model    whisper.Model
	settings *config.STTSettings
	logger   logger.Logger
}

// NewWhisperTranscriber loads the whisper.cpp model named by the settings.
func NewWhisperTranscriber(settings *config.STTSettings, log logger.Logger) (Transcriber, error) {
	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("invalid transcriber settings: %w", err)
	}

	model, err := whisper.New(settings.ModelPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load whisper model: %w", err)
	}

	return &whisperTranscriber{
		model:    model,
		settings: settings,
		logger:   log,
	}, nil
}

func (t *whisperTranscriber) Transcribe(ctx context.Context, pcm []float32) (string, error) {
	if len(pcm) == 0 {
		return "", nil
	}

	wctx, err := t.model.NewContext()
	if err != nil {
		return "", fmt.Errorf("failed to create whisper context: %w", err)
	}

	if err := wctx.SetLanguage(t.settings.Language); err != nil {
		return "", fmt.Errorf("failed to set language: %w", err)
	}

	threads := t.settings.Threads
	if threads <= 0 {
		threads = runtime.NumCPU()
	}
	wctx.SetThreads(uint(threads))

	if t.settings.BeamSize > 0 {
		wctx.SetBeamSize(t.settings.BeamSize)
	}

	if err := wctx.Process(pcm, nil, nil, nil); err != nil {
		return "", fmt.Errorf("transcription failed: %w", err)
	}

	var parts []string
	for {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		default:
		}

		segment, err := wctx.NextSegment()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("failed to read segment: %w", err)
		}
		parts = append(parts, strings.TrimSpace(segment.Text))
	}

	text := strings.TrimSpace(strings.Join(parts, " "))
	t.logger.Info("Transcribed ", len(pcm), " samples into ", len(text), " characters")
	return text, nil
}

func (t *whisperTranscriber) Close() error {
	if t.model == nil {
		return nil
	}
	return t.model.Close()
}
