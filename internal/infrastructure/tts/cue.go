package tts

import (
	"math"
	"sync"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/speaker"
)

const (
	cueSampleRate = beep.SampleRate(44100)
	cueFrequency  = 880.0
	cueDuration   = 150 * time.Millisecond
)

var cueInit sync.Once

// ReadyCue plays a short tone signalling that the microphone is live.
func ReadyCue() error {
	var initErr error
	cueInit.Do(func() {
		initErr = speaker.Init(cueSampleRate, cueSampleRate.N(time.Second/10))
	})
	if initErr != nil {
		return initErr
	}

	done := make(chan struct{})
	speaker.Play(beep.Seq(toneStreamer(cueFrequency, cueSampleRate.N(cueDuration)), beep.Callback(func() {
		close(done)
	})))
	<-done

	return nil
}

// toneStreamer produces a fixed-length sine tone.
func toneStreamer(freq float64, numSamples int) beep.Streamer {
	pos := 0
	return beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		if pos >= numSamples {
			return 0, false
		}
		n := 0
		for i := range samples {
			if pos >= numSamples {
				break
			}
			v := 0.3 * math.Sin(2*math.Pi*freq*float64(pos)/float64(cueSampleRate))
			samples[i][0] = v
			samples[i][1] = v
			pos++
			n++
		}
		return n, true
	})
}
