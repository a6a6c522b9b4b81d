package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// AudioSettings holds capture and end-pointing parameters for the microphone
// pipeline. The defaults mirror a 16 kHz mono stream with 20 ms frames.
type AudioSettings struct {
	SampleRate      int     `mapstructure:"sample_rate" validate:"required,oneof=8000 16000 32000 48000"`
	FrameSize       int     `mapstructure:"frame_size" validate:"required,gt=0"`
	SilenceRMS      float64 `mapstructure:"silence_rms" validate:"gt=0,lt=1"`
	SilenceWindowMs int     `mapstructure:"silence_window_ms" validate:"gte=100,lte=5000"`
	MaxSeconds      int     `mapstructure:"max_seconds" validate:"gte=1,lte=300"`
	// Directory where captured segments are archived as WAV files. Empty
	// disables archival.
	RecordingDir string `mapstructure:"recording_dir"`
}

// Validate checks that all fields in AudioSettings are valid
func (s *AudioSettings) Validate() error {
	validate := validator.New()

	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("validation failed for AudioSettings: %w", err)
	}

	return nil
}

// STTSettings holds configuration for the local whisper.cpp transcriber.
type STTSettings struct {
	ModelPath string `mapstructure:"model_path" validate:"required"`
	Language  string `mapstructure:"language" validate:"required"`
	BeamSize  int    `mapstructure:"beam_size" validate:"gte=0,lte=16"`
	Threads   int    `mapstructure:"threads" validate:"gte=0"`
}

// Validate checks that all fields in STTSettings are valid
func (s *STTSettings) Validate() error {
	validate := validator.New()

	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("validation failed for STTSettings: %w", err)
	}

	return nil
}
