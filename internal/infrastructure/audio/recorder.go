package audio

import (
	"context"
	"fmt"

	"clinical_voice_service/internal/pkg/config"
	"clinical_voice_service/internal/pkg/logger"

	"github.com/gordonklaus/portaudio"
)

// Recorder captures microphone audio as 16 kHz mono float32 PCM with energy
// based end-pointing.
type Recorder struct {
	settings *config.AudioSettings
	logger   logger.Logger
}

// NewRecorder validates the capture settings and initializes PortAudio.
func NewRecorder(settings *config.AudioSettings, log logger.Logger) (*Recorder, error) {
	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("invalid audio settings: %w", err)
	}
	if err := portaudio.Initialize(); err != nil {
		return nil, fmt.Errorf("failed to initialize audio backend: %w", err)
	}

	return &Recorder{
		settings: settings,
		logger:   log,
	}, nil
}

// Close releases the audio backend.
func (r *Recorder) Close() error {
	if err := portaudio.Terminate(); err != nil {
		return fmt.Errorf("failed to terminate audio backend: %w", err)
	}
	return nil
}

// Record blocks until one utterance is captured or ctx is cancelled. Returns
// the PCM samples; an empty slice means no speech was detected before the
// length cap.
func (r *Recorder) Record(ctx context.Context) ([]float32, error) {
	s := r.settings
	buf := make([]float32, s.FrameSize)

	stream, err := portaudio.OpenDefaultStream(1, 0, float64(s.SampleRate), len(buf), buf)
	if err != nil {
		return nil, fmt.Errorf("failed to open capture stream: %w", err)
	}
	defer func() {
		_ = stream.Close()
	}()

	if err := stream.Start(); err != nil {
		return nil, fmt.Errorf("failed to start capture stream: %w", err)
	}
	defer func() {
		_ = stream.Stop()
	}()

	frameMs := s.FrameSize * 1000 / s.SampleRate
	ep := NewEndpointer(s.SampleRate, frameMs, s.SilenceRMS, s.SilenceWindowMs, s.MaxSeconds)

	maxFrames := s.MaxSeconds * s.SampleRate / s.FrameSize
	for i := 0; i < maxFrames; i++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		if err := stream.Read(); err != nil {
			return nil, fmt.Errorf("failed to read capture frame: %w", err)
		}

		if ep.Feed(buf) {
			break
		}
	}

	samples := ep.Samples()
	r.logger.Info("Captured ", len(samples), " samples")
	return samples, nil
}
