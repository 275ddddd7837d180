package analyze

import (
	"sort"

	"gonum.org/v1/gonum/stat"
)

// Stats aggregates one feature across every file where it succeeded.
// StdDev is the sample standard deviation and requires at least two
// values; HasStdDev is false otherwise and the consumer must say
// "insufficient data" instead of printing a number.
type Stats struct {
	Mean      float64
	StdDev    float64
	HasStdDev bool
	Count     int
}

// Summary maps feature names to their aggregate statistics.
type Summary map[string]Stats

// Summarize is a pure function of a report: it collects the non-failed
// values per feature and computes mean, sample standard deviation and
// count. Every feature name appearing in any result gets an entry, so a
// feature that failed on every file still shows up with Count 0 rather
// than vanishing from the summary. Re-running it over a persisted
// report yields the same summary the run printed.
func Summarize(results []Result) Summary {
	values := make(map[string][]float64)
	for _, res := range results {
		for name, v := range res.Analysis {
			if _, seen := values[name]; !seen {
				values[name] = nil
			}
			if v.Ok() {
				values[name] = append(values[name], v.Value)
			}
		}
	}

	summary := make(Summary, len(values))
	for name, xs := range values {
		s := Stats{Count: len(xs)}
		if len(xs) > 0 {
			s.Mean = stat.Mean(xs, nil)
		}
		if len(xs) >= 2 {
			s.StdDev = stat.StdDev(xs, nil)
			s.HasStdDev = true
		}
		summary[name] = s
	}
	return summary
}

// Features returns the summarized feature names in sorted order for
// stable display.
func (s Summary) Features() []string {
	names := make([]string, 0, len(s))
	for name := range s {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
