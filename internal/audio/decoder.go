package audio

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/hajimehoshi/go-mp3"
	"github.com/jfreymuth/oggvorbis"
	"github.com/mewkiz/flac"

	gowav "github.com/go-audio/wav"
)

// ErrUnsupportedFormat is returned when no decoder exists for a file's
// extension. Callers treat it like any other recoverable decode failure.
var ErrUnsupportedFormat = errors.New("unsupported audio format")

// Decode reads an audio file into a mono waveform at its native sample
// rate. maxSeconds > 0 truncates the result. Decode failures are returned
// as errors, never panics, so a corrupt file only affects its own analysis.
func Decode(path string, maxSeconds float64) (*Waveform, error) {
	var (
		w   *Waveform
		err error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".wav":
		w, err = decodeWAV(path)
	case ".mp3":
		w, err = decodeMP3(path)
	case ".flac":
		w, err = decodeFLAC(path)
	case ".ogg":
		w, err = decodeOgg(path)
	default:
		// .m4a is discovered but has no pure-Go decoder; it fails here
		// and the batch carries on without the file.
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(path))
	}
	if err != nil {
		return nil, err
	}
	if len(w.Samples) == 0 {
		return nil, fmt.Errorf("decoded no samples from %s", path)
	}
	w.truncate(maxSeconds)
	return w, nil
}

func decodeWAV(path string) (*Waveform, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	dec := gowav.NewDecoder(f)
	if !dec.IsValidFile() {
		return nil, fmt.Errorf("invalid WAV file: %s", path)
	}
	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("reading WAV data from %s: %w", path, err)
	}

	bitDepth := int(dec.BitDepth)
	if bitDepth == 0 {
		bitDepth = buf.SourceBitDepth
	}
	// Integer PCM tops out at 32 bits; anything else is a malformed
	// header and would make the scale shift below undefined.
	if bitDepth <= 0 || bitDepth > 32 {
		return nil, fmt.Errorf("unknown bit depth %d in WAV file: %s", bitDepth, path)
	}
	scale := float64(int64(1) << (bitDepth - 1))

	interleaved := make([]float64, len(buf.Data))
	for i, s := range buf.Data {
		interleaved[i] = float64(s) / scale
	}

	return &Waveform{
		Samples:    downmix(interleaved, buf.Format.NumChannels),
		SampleRate: buf.Format.SampleRate,
	}, nil
}

func decodeMP3(path string) (*Waveform, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	dec, err := mp3.NewDecoder(f)
	if err != nil {
		return nil, fmt.Errorf("opening MP3 decoder for %s: %w", path, err)
	}

	// go-mp3 always yields 16-bit little-endian stereo.
	raw, err := io.ReadAll(dec)
	if err != nil {
		return nil, fmt.Errorf("decoding MP3 %s: %w", path, err)
	}

	frames := len(raw) / 4
	mono := make([]float64, frames)
	for i := 0; i < frames; i++ {
		l := int16(uint16(raw[i*4]) | uint16(raw[i*4+1])<<8)
		r := int16(uint16(raw[i*4+2]) | uint16(raw[i*4+3])<<8)
		mono[i] = (float64(l) + float64(r)) / (2 * float64(math.MaxInt16+1))
	}

	return &Waveform{Samples: mono, SampleRate: dec.SampleRate()}, nil
}

func decodeFLAC(path string) (*Waveform, error) {
	stream, err := flac.ParseFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening FLAC %s: %w", path, err)
	}
	defer stream.Close()

	channels := int(stream.Info.NChannels)
	scale := float64(int64(1) << (stream.Info.BitsPerSample - 1))

	mono := make([]float64, 0, stream.Info.NSamples)
	for {
		frame, err := stream.ParseNext()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("decoding FLAC %s: %w", path, err)
		}
		n := len(frame.Subframes[0].Samples)
		for i := 0; i < n; i++ {
			var sum float64
			for c := 0; c < channels; c++ {
				sum += float64(frame.Subframes[c].Samples[i]) / scale
			}
			mono = append(mono, sum/float64(channels))
		}
	}

	return &Waveform{Samples: mono, SampleRate: int(stream.Info.SampleRate)}, nil
}

func decodeOgg(path string) (*Waveform, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	data, format, err := oggvorbis.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("decoding Ogg Vorbis %s: %w", path, err)
	}

	interleaved := make([]float64, len(data))
	for i, s := range data {
		interleaved[i] = float64(s)
	}

	return &Waveform{
		Samples:    downmix(interleaved, format.Channels),
		SampleRate: format.SampleRate,
	}, nil
}
