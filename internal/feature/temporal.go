package feature

import "math"

// ZCRMean is the mean per-frame zero-crossing rate: the fraction of
// sample pairs within a frame whose signs differ. Well-defined for
// silence (a constant-zero signal has rate 0).
func ZCRMean(samples []float64, sampleRate int) (float64, error) {
	n := frameCount(len(samples))
	var total float64
	for i := 0; i < n; i++ {
		start := i * HopSize
		end := start + FrameSize
		if end > len(samples) {
			end = len(samples)
		}
		crossings := 0
		for j := start + 1; j < end; j++ {
			if (samples[j-1] >= 0) != (samples[j] >= 0) {
				crossings++
			}
		}
		total += float64(crossings) / float64(FrameSize)
	}
	return total / float64(n), nil
}

// RMSVariance is the variance of the per-frame root-mean-square energy.
// It captures how much the signal's level fluctuates over time.
func RMSVariance(samples []float64, sampleRate int) (float64, error) {
	n := frameCount(len(samples))
	rms := make([]float64, n)
	for i := 0; i < n; i++ {
		start := i * HopSize
		end := start + FrameSize
		if end > len(samples) {
			end = len(samples)
		}
		var sum float64
		for j := start; j < end; j++ {
			sum += samples[j] * samples[j]
		}
		if end > start {
			rms[i] = math.Sqrt(sum / float64(end-start))
		}
	}
	return populationVariance(rms), nil
}
