package feature

// humBandwidthHz is the half-width of the band inspected around the
// mains fundamental and its second harmonic.
const humBandwidthHz = 10.0

// HumRatio returns the share of spectral power concentrated around
// mainsHz and its second harmonic, averaged across frames. Values near 1
// indicate the signal is dominated by mains hum.
func HumRatio(samples []float64, sampleRate int, mainsHz float64) (float64, error) {
	spec := STFT(samples, sampleRate)

	inBand := func(f float64) bool {
		for _, h := range []float64{mainsHz, 2 * mainsHz} {
			if f >= h-humBandwidthHz && f <= h+humBandwidthHz {
				return true
			}
		}
		return false
	}

	var hum, total float64
	for _, mags := range spec.Magnitudes {
		for k, m := range mags {
			p := m * m
			total += p
			if inBand(spec.Freqs[k]) {
				hum += p
			}
		}
	}
	if total == 0 {
		return 0, nil
	}
	return hum / total, nil
}
