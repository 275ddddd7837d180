// Package analyze runs feature extraction over batches of audio files
// and aggregates the results into a report.
package analyze

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
)

// FeatureValue is the outcome of one feature on one file: either a
// finite float or a structured failure. Failures serialize as JSON null
// in the report, so every result carries exactly the requested keys.
type FeatureValue struct {
	Value  float64
	Failed bool
	Reason string
}

// Ok reports whether the feature produced a usable value.
func (v FeatureValue) Ok() bool {
	return !v.Failed
}

// MarshalJSON writes the value, or null for a failure.
func (v FeatureValue) MarshalJSON() ([]byte, error) {
	if v.Failed {
		return []byte("null"), nil
	}
	return json.Marshal(v.Value)
}

// UnmarshalJSON restores a value or failure marker from a persisted
// report, so summaries can be re-derived from the JSON artifact.
func (v *FeatureValue) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*v = FeatureValue{Failed: true}
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	*v = FeatureValue{Value: f}
	return nil
}

// failedValue builds the failure marker recorded under the lenient
// policy when a feature errors or returns a non-finite float.
func failedValue(reason string) FeatureValue {
	return FeatureValue{Failed: true, Reason: reason}
}

// finiteValue wraps a computed float, demoting NaN and infinities to
// failures so the report never contains a non-finite number.
func finiteValue(f float64) FeatureValue {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return failedValue("non-finite result")
	}
	return FeatureValue{Value: f}
}

// Result is the per-file analysis record appended to the report. It is
// assembled once and immutable afterwards.
type Result struct {
	File     string                  `json:"file"`
	Labels   []string                `json:"labels"`
	Analysis map[string]FeatureValue `json:"analysis"`
}

// ReportFilename derives the report name from the label set: labels
// joined with underscores suffixed "-results.json", or "results.json"
// when no labels were given.
func ReportFilename(labels []string) string {
	if len(labels) == 0 {
		return "results.json"
	}
	return strings.Join(labels, "_") + "-results.json"
}

// WriteReport serializes results with stable two-space indentation into
// outputDir and returns the written path.
func WriteReport(outputDir string, labels []string, results []Result) (string, error) {
	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encoding report: %w", err)
	}
	path := filepath.Join(outputDir, ReportFilename(labels))
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return "", fmt.Errorf("writing report: %w", err)
	}
	return path, nil
}

// ReadReport loads a previously written report, for re-deriving
// summaries independently of the run that produced it.
func ReadReport(path string) ([]Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var results []Result
	if err := json.Unmarshal(data, &results); err != nil {
		return nil, fmt.Errorf("decoding report %s: %w", path, err)
	}
	return results, nil
}
