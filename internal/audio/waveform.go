// Package audio provides audio file decoding into in-memory waveforms.
package audio

// Waveform holds decoded mono samples at the file's native sample rate.
// Samples are normalized to [-1.0, 1.0]. A waveform belongs to a single
// analysis invocation and is never shared across files.
type Waveform struct {
	Samples    []float64
	SampleRate int
}

// Duration returns the waveform length in seconds.
func (w *Waveform) Duration() float64 {
	if w.SampleRate == 0 {
		return 0
	}
	return float64(len(w.Samples)) / float64(w.SampleRate)
}

// truncate cuts the waveform to at most maxSeconds. A zero or negative
// limit leaves the waveform untouched.
func (w *Waveform) truncate(maxSeconds float64) {
	if maxSeconds <= 0 {
		return
	}
	limit := int(maxSeconds * float64(w.SampleRate))
	if limit < len(w.Samples) {
		w.Samples = w.Samples[:limit]
	}
}

// downmix folds interleaved multi-channel samples into mono by averaging
// the channels, matching the behaviour of decoding with mono output.
func downmix(interleaved []float64, channels int) []float64 {
	if channels <= 1 {
		return interleaved
	}
	frames := len(interleaved) / channels
	mono := make([]float64, frames)
	for i := 0; i < frames; i++ {
		var sum float64
		for c := 0; c < channels; c++ {
			sum += interleaved[i*channels+c]
		}
		mono[i] = sum / float64(channels)
	}
	return mono
}
