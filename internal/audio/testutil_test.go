package audio

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	gaudio "github.com/go-audio/audio"
	gowav "github.com/go-audio/wav"
)

// toneOptions configures the synthetic audio to generate.
type toneOptions struct {
	DurationSecs float64 // Total duration in seconds (default: 1.0)
	SampleRate   int     // Sample rate (default: 44100)
	Freq         float64 // Sine frequency in Hz (0 = silence)
	Amplitude    float64 // Linear amplitude 0..1 (default: 0.5)
	Channels     int     // Channel count (default: 1)
}

// writeTestWAV creates a synthetic 16-bit PCM WAV file under dir and
// returns its path. Multi-channel output duplicates the same tone on
// every channel.
func writeTestWAV(t *testing.T, dir, name string, opts toneOptions) string {
	t.Helper()

	if opts.SampleRate == 0 {
		opts.SampleRate = 44100
	}
	if opts.DurationSecs == 0 {
		opts.DurationSecs = 1.0
	}
	if opts.Amplitude == 0 {
		opts.Amplitude = 0.5
	}
	if opts.Channels == 0 {
		opts.Channels = 1
	}

	frames := int(opts.DurationSecs * float64(opts.SampleRate))
	data := make([]int, frames*opts.Channels)
	for i := 0; i < frames; i++ {
		var s float64
		if opts.Freq > 0 {
			s = opts.Amplitude * math.Sin(2*math.Pi*opts.Freq*float64(i)/float64(opts.SampleRate))
		}
		v := int(s * math.MaxInt16)
		for c := 0; c < opts.Channels; c++ {
			data[i*opts.Channels+c] = v
		}
	}

	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create test file: %v", err)
	}

	enc := gowav.NewEncoder(f, opts.SampleRate, 16, opts.Channels, 1)
	buf := &gaudio.IntBuffer{
		Format:         &gaudio.Format{NumChannels: opts.Channels, SampleRate: opts.SampleRate},
		Data:           data,
		SourceBitDepth: 16,
	}
	if err := enc.Write(buf); err != nil {
		f.Close()
		t.Fatalf("failed to write WAV data: %v", err)
	}
	if err := enc.Close(); err != nil {
		f.Close()
		t.Fatalf("failed to finalize WAV file: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("failed to close test file: %v", err)
	}

	return path
}
