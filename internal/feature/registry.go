package feature

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spectrokit/spectrokit/internal/mains"
)

// Func computes a scalar feature from a mono waveform and its sample
// rate. Implementations must be pure and tolerate silence, clipping and
// very short input.
type Func func(samples []float64, sampleRate int) (float64, error)

// registry is the explicit name-to-function mapping, built once at
// startup. Lookup is deliberately separate from enumeration: a callable
// that is not registered here is not a feature.
var registry = map[string]Func{
	"centroid_variance": CentroidVariance,
	"bandwidth_mean":    BandwidthMean,
	"zcr_mean":          ZCRMean,
	"rms_variance":      RMSVariance,
	"rolloff_median":    RolloffMedian,
	"flatness_mean":     FlatnessMean,
	"crest_mean":        CrestMean,
	"hum_ratio": func(samples []float64, sampleRate int) (float64, error) {
		return HumRatio(samples, sampleRate, float64(mains.Frequency()))
	},
}

// Register adds or replaces a named feature. Exposed for callers that
// extend the built-in set (and for failure-injection in tests).
func Register(name string, fn Func) {
	registry[name] = fn
}

// Lookup returns the function registered under name.
func Lookup(name string) (Func, bool) {
	fn, ok := registry[name]
	return fn, ok
}

// Names enumerates all registered feature names in sorted order, for
// request validation and help text.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Validate checks a feature request against the registry. Any unknown
// name is a configuration error, reported before a single file is
// opened. Duplicate names are rejected so every analysis map key is
// computed exactly once.
func Validate(requested []string) error {
	if len(requested) == 0 {
		return fmt.Errorf("no features requested; available: %s", strings.Join(Names(), ", "))
	}
	seen := make(map[string]bool, len(requested))
	for _, name := range requested {
		if _, ok := registry[name]; !ok {
			return fmt.Errorf("unknown feature %q; available: %s", name, strings.Join(Names(), ", "))
		}
		if seen[name] {
			return fmt.Errorf("feature %q requested more than once", name)
		}
		seen[name] = true
	}
	return nil
}
