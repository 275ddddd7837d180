package feature

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// rolloffPercent is the fraction of total spectral magnitude below the
// roll-off frequency.
const rolloffPercent = 0.85

// CentroidVariance is the variance of the per-frame spectral centroid.
// A large value indicates the spectral balance moves around over time.
func CentroidVariance(samples []float64, sampleRate int) (float64, error) {
	spec := STFT(samples, sampleRate)
	centroids := make([]float64, spec.Frames())
	for i, mags := range spec.Magnitudes {
		centroids[i] = centroid(mags, spec.Freqs)
	}
	return populationVariance(centroids), nil
}

// BandwidthMean is the mean per-frame spectral bandwidth: the
// magnitude-weighted standard deviation of frequency around the centroid.
func BandwidthMean(samples []float64, sampleRate int) (float64, error) {
	spec := STFT(samples, sampleRate)
	bandwidths := make([]float64, spec.Frames())
	for i, mags := range spec.Magnitudes {
		c := centroid(mags, spec.Freqs)
		var num, den float64
		for k, m := range mags {
			d := spec.Freqs[k] - c
			num += m * d * d
			den += m
		}
		if den > 0 {
			bandwidths[i] = math.Sqrt(num / den)
		}
	}
	return stat.Mean(bandwidths, nil), nil
}

// RolloffMedian is the median per-frame roll-off frequency: the lowest
// frequency below which rolloffPercent of the frame's magnitude lies.
func RolloffMedian(samples []float64, sampleRate int) (float64, error) {
	spec := STFT(samples, sampleRate)
	rolloffs := make([]float64, spec.Frames())
	for i, mags := range spec.Magnitudes {
		var total float64
		for _, m := range mags {
			total += m
		}
		threshold := rolloffPercent * total
		var cum float64
		for k, m := range mags {
			cum += m
			if cum >= threshold && total > 0 {
				rolloffs[i] = spec.Freqs[k]
				break
			}
		}
	}
	return median(rolloffs), nil
}

// FlatnessMean is the mean per-frame spectral flatness: the ratio of the
// geometric to the arithmetic mean of the power spectrum. Near 1 for
// noise, near 0 for tonal content.
func FlatnessMean(samples []float64, sampleRate int) (float64, error) {
	const amin = 1e-10
	spec := STFT(samples, sampleRate)
	flatness := make([]float64, spec.Frames())
	for i, mags := range spec.Magnitudes {
		var logSum, sum float64
		for _, m := range mags {
			p := math.Max(m*m, amin)
			logSum += math.Log(p)
			sum += p
		}
		n := float64(len(mags))
		flatness[i] = math.Exp(logSum/n) / (sum / n)
	}
	return stat.Mean(flatness, nil), nil
}

// CrestMean is the mean per-frame spectral crest factor: the peak
// magnitude over the mean magnitude. High for peaky, tonal spectra.
func CrestMean(samples []float64, sampleRate int) (float64, error) {
	spec := STFT(samples, sampleRate)
	crests := make([]float64, spec.Frames())
	for i, mags := range spec.Magnitudes {
		var peak, sum float64
		for _, m := range mags {
			if m > peak {
				peak = m
			}
			sum += m
		}
		if sum > 0 {
			crests[i] = peak / (sum / float64(len(mags)))
		}
	}
	return stat.Mean(crests, nil), nil
}

// centroid returns the magnitude-weighted mean frequency of one frame,
// or 0 for an all-zero frame (silence).
func centroid(mags, freqs []float64) float64 {
	var num, den float64
	for k, m := range mags {
		num += freqs[k] * m
		den += m
	}
	if den == 0 {
		return 0
	}
	return num / den
}

// populationVariance divides by n rather than n-1; per-frame statistics
// describe the frames actually observed, not a sampled estimate.
func populationVariance(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	mean := stat.Mean(xs, nil)
	var sum float64
	for _, x := range xs {
		d := x - mean
		sum += d * d
	}
	return sum / float64(len(xs))
}

func median(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	sorted := append([]float64(nil), xs...)
	sort.Float64s(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2
	}
	return sorted[mid]
}
