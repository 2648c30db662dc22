package tui

import (
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// RunState represents the state of the fetch run
type RunState int

const (
	RunIdle RunState = iota
	RunActive
	RunCompleted
	RunFailed
)

// trailEntry is one page boundary in the cursor trail
type trailEntry struct {
	page   int
	cursor string
}

// Model represents the TUI model
type Model struct {
	// UI components
	spinner   spinner.Model
	budgetBar progress.Model

	// Run state
	state      RunState
	runID      string
	userID     string
	budget     int
	written    int
	pages      int
	stopReason string

	// Cursor trail, most recent last
	trail    []trailEntry
	maxTrail int

	// Stats
	sessionStartTime time.Time

	// UI state
	width          int
	height         int
	showHelp       bool
	logMessages    []LogMessage
	maxLogMessages int

	// Mutex for thread safety
	mu sync.RWMutex
}

// LogMessage represents a log entry
type LogMessage struct {
	Time    time.Time
	Level   string
	Message string
	Color   lipgloss.Color
}

// NewModel creates a new TUI model
func NewModel(budget int) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(neonCyan)

	bar := progress.New(progress.WithDefaultGradient())
	bar.Width = 40

	return Model{
		spinner:          s,
		budgetBar:        bar,
		budget:           budget,
		trail:            []trailEntry{},
		maxTrail:         8,
		sessionStartTime: time.Now(),
		logMessages:      []LogMessage{},
		maxLogMessages:   50,
	}
}

// Init initializes the model
func (m *Model) Init() tea.Cmd {
	return m.spinner.Tick
}

// StartRun records the run identifiers and budget
func (m *Model) StartRun(runID, userID string, budget int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.state = RunActive
	m.runID = runID
	m.userID = userID
	if budget > 0 {
		m.budget = budget
	}
	m.sessionStartTime = time.Now()
}

// RecordPage appends a page boundary to the cursor trail
func (m *Model) RecordPage(page int, nextCursor string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.pages = page
	if nextCursor == "" {
		nextCursor = "(end)"
	}
	m.trail = append(m.trail, trailEntry{page: page, cursor: nextCursor})
	if len(m.trail) > m.maxTrail {
		m.trail = m.trail[len(m.trail)-m.maxTrail:]
	}
}

// RecordItem updates the written counter
func (m *Model) RecordItem(total int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.written = total
}

// FinishRun records the final counters and stop reason
func (m *Model) FinishRun(written, pages int, stopReason string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.written = written
	m.pages = pages
	m.stopReason = stopReason
	if stopReason == "error" || stopReason == "log_write_failed" {
		m.state = RunFailed
	} else {
		m.state = RunCompleted
	}
}

// AddLogMessage adds a log message
func (m *Model) AddLogMessage(level, message string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	color := dimWhite
	switch level {
	case "ERROR":
		color = lipgloss.Color("#FF0000")
	case "WARN":
		color = neonOrange
	case "SUCCESS":
		color = neonGreen
	case "INFO":
		color = neonCyan
	}

	m.logMessages = append(m.logMessages, LogMessage{
		Time:    time.Now(),
		Level:   level,
		Message: message,
		Color:   color,
	})

	// Keep only the last N messages
	if len(m.logMessages) > m.maxLogMessages {
		m.logMessages = m.logMessages[len(m.logMessages)-m.maxLogMessages:]
	}
}

// Progress returns the consumed fraction of the item budget
func (m *Model) Progress() float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.budget <= 0 {
		return 0
	}
	p := float64(m.written) / float64(m.budget)
	if p > 1 {
		p = 1
	}
	return p
}

// CursorTrail returns the most recent page cursors, formatted for display
func (m *Model) CursorTrail() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	trail := make([]string, 0, len(m.trail))
	for _, entry := range m.trail {
		trail = append(trail, fmt.Sprintf("p%-3d %s", entry.page, TruncateCursor(entry.cursor, 28)))
	}
	return trail
}

// Rate returns the average write rate in tweets per minute
func (m *Model) Rate() float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()

	elapsed := time.Since(m.sessionStartTime).Minutes()
	if elapsed == 0 {
		return 0
	}
	return float64(m.written) / elapsed
}

// TruncateCursor shortens long pagination tokens for display
func TruncateCursor(cursor string, max int) string {
	if len(cursor) <= max {
		return cursor
	}
	if max <= 3 {
		return cursor[:max]
	}
	return cursor[:max-3] + "..."
}
