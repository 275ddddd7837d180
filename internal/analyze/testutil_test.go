package analyze

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	gaudio "github.com/go-audio/audio"
	gowav "github.com/go-audio/wav"
)

// writeToneWAV creates a mono 16-bit PCM WAV with a sine tone under dir
// and returns its path.
func writeToneWAV(t *testing.T, dir, name string, freq float64, seconds float64, sampleRate int) string {
	t.Helper()

	frames := int(seconds * float64(sampleRate))
	data := make([]int, frames)
	for i := range data {
		data[i] = int(0.5 * math.MaxInt16 * math.Sin(2*math.Pi*freq*float64(i)/float64(sampleRate)))
	}

	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create test file: %v", err)
	}

	enc := gowav.NewEncoder(f, sampleRate, 16, 1, 1)
	buf := &gaudio.IntBuffer{
		Format:         &gaudio.Format{NumChannels: 1, SampleRate: sampleRate},
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

// writeCorruptWAV creates a file with a WAV extension but unreadable
// contents.
func writeCorruptWAV(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("RIFFbroken"), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}
