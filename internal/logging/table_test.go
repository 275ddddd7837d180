package logging

import (
	"strings"
	"testing"
)

func TestSummaryTableEmpty(t *testing.T) {
	table := &SummaryTable{}
	if got := table.String(); got != "" {
		t.Errorf("empty table rendered %q, want empty string", got)
	}
}

func TestSummaryTableAlignment(t *testing.T) {
	table := &SummaryTable{Rows: []SummaryRow{
		{Feature: "zcr_mean", Mean: "0.1234", StdDev: "0.0100", Count: "3"},
		{Feature: "centroid_variance", Mean: "123456.7890", StdDev: "insufficient data", Count: "1"},
	}}

	out := table.String()
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("got %d lines, want 4 (header, separator, two rows):\n%s", len(lines), out)
	}

	if !strings.HasPrefix(lines[0], "Feature") {
		t.Errorf("header line = %q, want Feature first", lines[0])
	}
	for _, h := range []string{"Mean", "Std Dev", "Count"} {
		if !strings.Contains(lines[0], h) {
			t.Errorf("header line %q missing column %q", lines[0], h)
		}
	}
	if strings.Trim(lines[1], "-") != "" {
		t.Errorf("separator line = %q, want dashes only", lines[1])
	}

	// All rows render to the same width.
	for i := 1; i < len(lines); i++ {
		if len(lines[i]) != len(lines[1]) {
			t.Errorf("line %d width %d, want %d:\n%s", i, len(lines[i]), len(lines[1]), out)
		}
	}

	if !strings.Contains(out, "insufficient data") {
		t.Errorf("table dropped marker cell:\n%s", out)
	}
}
