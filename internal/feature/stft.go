// Package feature implements the named scalar audio features and the
// registry that maps feature names to their implementations.
package feature

import (
	"math"

	"gonum.org/v1/gonum/dsp/fourier"
)

// Framing parameters shared by all frame-based features and the
// spectrogram renderer. 2048/512 at 44.1kHz gives ~46ms frames with 75%
// overlap, the usual analysis defaults.
const (
	FrameSize = 2048
	HopSize   = 512
)

// Spectrum holds the magnitude spectrogram of a waveform: one row per
// analysis frame, FrameSize/2+1 bins per row, plus the frequency of each
// bin in Hz.
type Spectrum struct {
	Magnitudes [][]float64
	Freqs      []float64
}

// Frames returns the number of analysis frames.
func (s *Spectrum) Frames() int { return len(s.Magnitudes) }

// STFT computes the magnitude short-time Fourier transform of samples
// using a Hann window. Input shorter than one frame is zero-padded into a
// single frame so very short files still produce a defined spectrum.
func STFT(samples []float64, sampleRate int) *Spectrum {
	fft := fourier.NewFFT(FrameSize)
	window := hannWindow(FrameSize)

	frames := 1
	if len(samples) > FrameSize {
		frames = 1 + (len(samples)-FrameSize)/HopSize
	}

	bins := FrameSize/2 + 1
	freqs := make([]float64, bins)
	for k := range freqs {
		freqs[k] = float64(k) * float64(sampleRate) / float64(FrameSize)
	}

	mags := make([][]float64, frames)
	buf := make([]float64, FrameSize)
	for i := 0; i < frames; i++ {
		start := i * HopSize
		for j := 0; j < FrameSize; j++ {
			if start+j < len(samples) {
				buf[j] = samples[start+j] * window[j]
			} else {
				buf[j] = 0
			}
		}
		coeffs := fft.Coefficients(nil, buf)
		row := make([]float64, bins)
		for k := 0; k < bins && k < len(coeffs); k++ {
			row[k] = cmplxAbs(coeffs[k])
		}
		mags[i] = row
	}

	return &Spectrum{Magnitudes: mags, Freqs: freqs}
}

func cmplxAbs(c complex128) float64 {
	return math.Hypot(real(c), imag(c))
}

func hannWindow(n int) []float64 {
	w := make([]float64, n)
	for i := range w {
		w[i] = 0.5 * (1 - math.Cos(2*math.Pi*float64(i)/float64(n-1)))
	}
	return w
}

// frameCount returns how many frames a buffer of length n yields under
// the shared framing parameters, matching STFT.
func frameCount(n int) int {
	if n <= FrameSize {
		return 1
	}
	return 1 + (n-FrameSize)/HopSize
}
