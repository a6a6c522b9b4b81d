package audio

import "math"

// Endpointer accumulates capture frames and decides when an utterance is
// complete: speech starts once a frame's RMS clears the silence threshold and
// ends after a configured run of silent frames.
type Endpointer struct {
	silenceRMS       float64
	silenceFrameGoal int
	maxSamples       int

	speaking      bool
	silenceFrames int
	samples       []float32
}

// NewEndpointer builds an endpointer. frameMs is the duration of each frame
// fed to Feed.
func NewEndpointer(sampleRate int, frameMs int, silenceRMS float64, silenceWindowMs int, maxSeconds int) *Endpointer {
	goal := silenceWindowMs / frameMs
	if goal < 1 {
		goal = 1
	}

	return &Endpointer{
		silenceRMS:       silenceRMS,
		silenceFrameGoal: goal,
		maxSamples:       sampleRate * maxSeconds,
	}
}

// Feed consumes one frame and reports whether the utterance is complete.
func (e *Endpointer) Feed(frame []float32) bool {
	rms := FrameRMS(frame)

	if rms > e.silenceRMS {
		e.speaking = true
		e.silenceFrames = 0
		e.samples = append(e.samples, frame...)
	} else if e.speaking {
		e.silenceFrames++
		if e.silenceFrames >= e.silenceFrameGoal {
			return true
		}
		e.samples = append(e.samples, frame...)
	}

	return len(e.samples) >= e.maxSamples
}

// Samples returns the captured utterance so far.
func (e *Endpointer) Samples() []float32 {
	return e.samples
}

// Speaking reports whether speech has been detected.
func (e *Endpointer) Speaking() bool {
	return e.speaking
}

// FrameRMS returns the root mean square energy of a frame.
func FrameRMS(frame []float32) float64 {
	if len(frame) == 0 {
		return 0
	}

	var sum float64
	for _, x := range frame {
		sum += float64(x * x)
	}
	return math.Sqrt(sum / float64(len(frame)))
}
