package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// Message types for the TUI

// RunStartMsg is sent when a fetch run begins
type RunStartMsg struct {
	RunID  string
	UserID string
	Budget int
}

// PageMsg is sent when a timeline page lands
type PageMsg struct {
	Page       int
	NextCursor string
}

// ItemMsg is sent when a tweet is appended to the record log
type ItemMsg struct {
	Total int
}

// RunDoneMsg is sent when the fetch run finishes
type RunDoneMsg struct {
	Written    int
	Pages      int
	StopReason string
}

// LogMsg is sent to add a log message
type LogMsg struct {
	Level   string
	Message string
}

// WindowSizeMsg is sent when the terminal is resized
type WindowSizeMsg struct {
	Width  int
	Height int
}

// TickMsg is sent periodically to update the UI
type TickMsg time.Time

// Update handles all messages and updates the model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case TickMsg:
		// Regular UI update tick
		return m, tea.Batch(
			tickCmd(),
			m.spinner.Tick,
		)

	case RunStartMsg:
		m.StartRun(msg.RunID, msg.UserID, msg.Budget)
		m.AddLogMessage("INFO", "Fetching timeline for user "+msg.UserID)
		return m, nil

	case PageMsg:
		m.RecordPage(msg.Page, msg.NextCursor)
		return m, nil

	case ItemMsg:
		m.RecordItem(msg.Total)
		return m, nil

	case RunDoneMsg:
		m.FinishRun(msg.Written, msg.Pages, msg.StopReason)
		return m, nil

	case LogMsg:
		m.AddLogMessage(msg.Level, msg.Message)
		return m, nil

	case WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}

	return m, nil
}

// handleKeyPress handles keyboard input
func (m *Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "Q", "ctrl+c":
		return m, tea.Quit

	case "?":
		m.showHelp = !m.showHelp
		return m, nil

	case "ctrl+l":
		// Clear logs
		m.mu.Lock()
		m.logMessages = []LogMessage{}
		m.mu.Unlock()
		return m, nil
	}

	return m, nil
}

// Commands

// tickCmd returns a command that sends a tick message
func tickCmd() tea.Cmd {
	return tea.Tick(time.Millisecond*100, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// Helper functions for external use

// SendRunStart creates a message announcing a new run
func SendRunStart(runID, userID string, budget int) tea.Msg {
	return RunStartMsg{
		RunID:  runID,
		UserID: userID,
		Budget: budget,
	}
}

// SendPage creates a message recording a page boundary
func SendPage(page int, nextCursor string) tea.Msg {
	return PageMsg{Page: page, NextCursor: nextCursor}
}

// SendItem creates a message updating the written counter
func SendItem(total int) tea.Msg {
	return ItemMsg{Total: total}
}

// SendRunDone creates a message finishing the run
func SendRunDone(written, pages int, stopReason string) tea.Msg {
	return RunDoneMsg{
		Written:    written,
		Pages:      pages,
		StopReason: stopReason,
	}
}

// SendLog creates a log message
func SendLog(level, message string) tea.Msg {
	return LogMsg{Level: level, Message: message}
}
