package logging

import (
	"fmt"
	"strings"
)

// SummaryRow is one feature's aggregate line in the end-of-run table.
// Values are pre-formatted strings so the caller controls precision and
// can substitute markers like "insufficient data".
type SummaryRow struct {
	Feature string
	Mean    string
	StdDev  string
	Count   string
}

// SummaryTable renders per-feature summary statistics with aligned
// columns: labels left-aligned, numbers right-aligned.
type SummaryTable struct {
	Rows []SummaryRow
}

// String renders the table, or an empty string when there are no rows.
func (t *SummaryTable) String() string {
	if len(t.Rows) == 0 {
		return ""
	}

	headers := []string{"Feature", "Mean", "Std Dev", "Count"}
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}
	for _, row := range t.Rows {
		for i, cell := range []string{row.Feature, row.Mean, row.StdDev, row.Count} {
			if len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	var sb strings.Builder
	writeRow := func(cells []string) {
		sb.WriteString(fmt.Sprintf("%-*s", widths[0], cells[0]))
		for i := 1; i < len(cells); i++ {
			sb.WriteString(fmt.Sprintf("  %*s", widths[i], cells[i]))
		}
		sb.WriteString("\n")
	}

	writeRow(headers)
	total := widths[0]
	for _, w := range widths[1:] {
		total += w + 2
	}
	sb.WriteString(strings.Repeat("-", total))
	sb.WriteString("\n")

	for _, row := range t.Rows {
		writeRow([]string{row.Feature, row.Mean, row.StdDev, row.Count})
	}

	return sb.String()
}
