package ui

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#1E66A8"))

	subtitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			Italic(true)

	okIcon   = lipgloss.NewStyle().Foreground(lipgloss.Color("#00AA00")).Render("✓")
	failIcon = lipgloss.NewStyle().Foreground(lipgloss.Color("#A40000")).Render("✗")
)

// renderProcessingView renders the live batch view.
func renderProcessingView(m Model) string {
	var b strings.Builder

	b.WriteString(renderHeader(m))
	b.WriteString("\n\n")
	b.WriteString(renderRecent(m))
	b.WriteString("\n")
	b.WriteString(renderOverallProgress(m))

	return b.String()
}

func renderHeader(m Model) string {
	title := headerStyle.Render("Spectrokit 🎛 - Batch Audio Analyzer")
	subtitle := subtitleStyle.Render(fmt.Sprintf("Analyzing %d file(s)", m.TotalFiles))
	return title + "\n" + subtitle
}

// renderRecent lists the most recently finished files with status icons.
func renderRecent(m Model) string {
	if len(m.Recent) == 0 {
		return subtitleStyle.Render(" Waiting for first results...") + "\n"
	}
	var b strings.Builder
	for _, c := range m.Recent {
		name := filepath.Base(c.File)
		if c.Err != nil {
			fmt.Fprintf(&b, " %s %s\n   %v\n", failIcon, name, c.Err)
		} else {
			fmt.Fprintf(&b, " %s %s\n", okIcon, name)
		}
	}
	return b.String()
}

// renderOverallProgress renders the batch progress bar and counters.
func renderOverallProgress(m Model) string {
	frac := 0.0
	if m.TotalFiles > 0 {
		frac = float64(m.CompletedFiles) / float64(m.TotalFiles)
	}

	elapsed := time.Since(m.StartTime).Seconds()
	line := fmt.Sprintf("%s  %d/%d files (%d failed)  %.1fs elapsed",
		renderProgressBar(frac, 40), m.CompletedFiles, m.TotalFiles, m.FailedFiles, elapsed)
	return line + "\n"
}

// renderProgressBar draws a textual bar of the given width.
func renderProgressBar(progress float64, width int) string {
	if progress < 0 {
		progress = 0
	} else if progress > 1 {
		progress = 1
	}
	filled := int(progress * float64(width))
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	return fmt.Sprintf("[%s] %3.0f%%", bar, progress*100)
}

// renderCompletionSummary renders the final state before the program
// hands the terminal back.
func renderCompletionSummary(m Model) string {
	succeeded := m.CompletedFiles - m.FailedFiles
	status := okIcon
	if m.FailedFiles > 0 {
		status = failIcon
	}
	return fmt.Sprintf("%s\n\n %s Processed %d of %d file(s) in %.1fs\n",
		renderHeader(m), status, succeeded, m.TotalFiles, time.Since(m.StartTime).Seconds())
}
