// Package ui provides the Bubbletea terminal user interface for batch
// progress.
package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// maxRecent caps how many finished files stay visible in the queue view;
// a batch can span thousands of files.
const maxRecent = 8

// Completion records one finished file for display.
type Completion struct {
	File string
	Err  error
}

// Model is the Bubbletea model for the batch progress display.
type Model struct {
	TotalFiles     int
	CompletedFiles int
	FailedFiles    int

	Recent []Completion

	StartTime time.Time
	Done      bool
	Quit      bool // user interrupted before the batch finished

	// Channel bridging orchestrator completions into the UI loop.
	ProgressChan chan tea.Msg

	Width  int
	Height int
}

// NewModel creates a progress model for a batch of total files.
func NewModel(total int) Model {
	return Model{
		TotalFiles:   total,
		StartTime:    time.Now(),
		ProgressChan: make(chan tea.Msg, 100),
	}
}

// Init starts listening for batch progress.
func (m Model) Init() tea.Cmd {
	return waitForProgress(m.ProgressChan)
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.Quit = true
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height

	case FileDoneMsg:
		m.CompletedFiles++
		if msg.Err != nil {
			m.FailedFiles++
		}
		m.Recent = append(m.Recent, Completion{File: msg.File, Err: msg.Err})
		if len(m.Recent) > maxRecent {
			m.Recent = m.Recent[len(m.Recent)-maxRecent:]
		}
		return m, waitForProgress(m.ProgressChan)

	case AllDoneMsg:
		m.Done = true
		return m, tea.Quit
	}

	return m, nil
}

// View renders the UI.
func (m Model) View() string {
	if m.Done {
		return renderCompletionSummary(m)
	}
	return renderProcessingView(m)
}

// waitForProgress creates a command that waits for batch messages.
func waitForProgress(progressChan chan tea.Msg) tea.Cmd {
	return func() tea.Msg {
		return <-progressChan
	}
}
