package audio

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// WriteWAV writes mono float32 PCM to a 16-bit WAV file under dir and
// returns the file path.
func WriteWAV(dir string, samples []float32, sampleRate int) (string, error) {
	if len(samples) == 0 {
		return "", fmt.Errorf("no samples to write")
	}
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return "", fmt.Errorf("failed to create recording directory: %w", err)
	}

	path := filepath.Join(dir, fmt.Sprintf("recording_%s.wav", time.Now().UTC().Format("20060102_150405")))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create recording file: %w", err)
	}

	enc := wav.NewEncoder(f, sampleRate, 16, 1, 1)

	ints := make([]int, len(samples))
	for i, v := range samples {
		x := v
		if x > 1 {
			x = 1
		} else if x < -1 {
			x = -1
		}
		ints[i] = int(x * 32767)
	}

	buf := &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: 1, SampleRate: sampleRate},
		SourceBitDepth: 16,
		Data:           ints,
	}
	if err := enc.Write(buf); err != nil {
		_ = f.Close()
		return "", fmt.Errorf("failed to encode wav: %w", err)
	}
	if err := enc.Close(); err != nil {
		_ = f.Close()
		return "", fmt.Errorf("failed to finalize wav: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("failed to close recording file: %w", err)
	}

	return path, nil
}
