package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// View renders the entire TUI
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing..."
	}

	// Build the UI layout
	var sections []string

	// Logo
	sections = append(sections, m.renderLogo())

	// Main content area with two columns
	leftColumn := m.renderLeftColumn()
	rightColumn := m.renderRightColumn()

	mainContent := lipgloss.JoinHorizontal(
		lipgloss.Top,
		leftColumn,
		"  ", // spacing
		rightColumn,
	)
	sections = append(sections, mainContent)

	// Help
	if m.showHelp {
		sections = append(sections, m.renderHelp())
	} else {
		sections = append(sections, helpStyle.Render("Press ? for help"))
	}

	// Join all sections vertically
	return baseStyle.Width(m.width).Height(m.height).Render(
		lipgloss.JoinVertical(lipgloss.Left, sections...),
	)
}

// renderLogo renders the cyberpunk logo
func (m *Model) renderLogo() string {
	logo := `
╔══════════════════════════════════════════════════════════════════╗
║ ██╗  ██╗███████╗ ██████╗██████╗  █████╗ ██████╗ ███████╗██████╗  ║
║ ╚██╗██╔╝██╔════╝██╔════╝██╔══██╗██╔══██╗██╔══██╗██╔════╝██╔══██╗ ║
║  ╚███╔╝ ███████╗██║     ██████╔╝███████║██████╔╝█████╗  ██████╔╝ ║
║  ██╔██╗ ╚════██║██║     ██╔══██╗██╔══██║██╔═══╝ ██╔══╝  ██╔══██╗ ║
║ ██╔╝ ██╗███████║╚██████╗██║  ██║██║  ██║██║     ███████╗██║  ██║ ║
║ ╚═╝  ╚═╝╚══════╝ ╚═════╝╚═╝  ╚═╝╚═╝  ╚═╝╚═╝     ╚══════╝╚═╝  ╚═╝ ║
║         NETRUNNER EDITION - TIMELINE EXTRACTION UTILITY          ║
╚══════════════════════════════════════════════════════════════════╝`

	return logoStyle.Width(m.width).Render(logo)
}

// renderLeftColumn renders the left side of the UI
func (m *Model) renderLeftColumn() string {
	width := (m.width - 4) / 2

	var sections []string

	// Stats panel
	sections = append(sections, m.renderStatsPanel(width))

	// Budget panel
	sections = append(sections, m.renderBudgetPanel(width))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderRightColumn renders the right side of the UI
func (m *Model) renderRightColumn() string {
	width := (m.width - 4) / 2

	var sections []string

	// Cursor trail panel
	sections = append(sections, m.renderTrailPanel(width))

	// Logs panel
	sections = append(sections, m.renderLogsPanel(width))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderStatsPanel renders the run statistics panel
func (m *Model) renderStatsPanel(width int) string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	title := titleStyle.Render(" RUN STATS ")

	elapsed := time.Since(m.sessionStartTime)
	rate := 0.0
	if minutes := elapsed.Minutes(); minutes > 0 {
		rate = float64(m.written) / minutes
	}

	runID := m.runID
	if len(runID) > 8 {
		runID = runID[:8]
	}
	if runID == "" {
		runID = "-"
	}
	userID := m.userID
	if userID == "" {
		userID = "-"
	}

	stats := []string{
		fmt.Sprintf("%s %s", statsLabelStyle.Render("Session Time:"), statsValueStyle.Render(formatDuration(elapsed))),
		fmt.Sprintf("%s %s", statsLabelStyle.Render("User ID:"), statsValueStyle.Render(userID)),
		fmt.Sprintf("%s %s", statsLabelStyle.Render("Run:"), statsValueStyle.Render(runID)),
		fmt.Sprintf("%s %s", statsLabelStyle.Render("Tweets Written:"), statsValueStyle.Render(fmt.Sprintf("%d", m.written))),
		fmt.Sprintf("%s %s", statsLabelStyle.Render("Pages Fetched:"), statsValueStyle.Render(fmt.Sprintf("%d", m.pages))),
		fmt.Sprintf("%s %s", statsLabelStyle.Render("Rate:"), statsValueStyle.Render(fmt.Sprintf("%.0f tweets/min", rate))),
	}

	content := lipgloss.JoinVertical(lipgloss.Left, stats...)

	return panelStyle.Width(width).Render(
		lipgloss.JoinVertical(lipgloss.Left, title, content),
	)
}

// renderBudgetPanel renders the item budget progress
func (m *Model) renderBudgetPanel(width int) string {
	m.mu.RLock()
	written := m.written
	budget := m.budget
	pages := m.pages
	state := m.state
	stopReason := m.stopReason
	m.mu.RUnlock()

	title := titleStyle.Render(" ITEM BUDGET ")

	usage := 0.0
	if budget > 0 {
		usage = float64(written) / float64(budget)
		if usage > 1.0 {
			usage = 1.0
		}
	}

	m.budgetBar.Width = width - 8
	bar := m.budgetBar.ViewAs(usage)

	budgetStyle := GetBudgetStyle(usage * 100)
	counter := fmt.Sprintf("%s %s", statsLabelStyle.Render("Used:"),
		budgetStyle.Render(fmt.Sprintf("%d/%d (%.0f%%)", written, budget, usage*100)))

	var status string
	switch state {
	case RunActive:
		status = m.spinner.View() + statsValueStyle.Render(fmt.Sprintf(" fetching page %d...", pages+1))
	case RunCompleted:
		status = successStyle.Render("✓ stopped: " + stopReason)
	case RunFailed:
		status = errorStyle.Render("✗ " + stopReason)
	default:
		status = lipgloss.NewStyle().Foreground(dimWhite).Render("waiting for run...")
	}

	content := []string{counter, bar, status}

	return panelStyle.Width(width).Render(
		lipgloss.JoinVertical(lipgloss.Left, title, strings.Join(content, "\n")),
	)
}

// renderTrailPanel renders the pagination cursor trail
func (m *Model) renderTrailPanel(width int) string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	title := titleStyle.Render(" CURSOR TRAIL ")

	if len(m.trail) == 0 {
		content := lipgloss.NewStyle().Foreground(dimWhite).Render("No pages yet...")
		return panelStyle.Width(width).Render(
			lipgloss.JoinVertical(lipgloss.Left, title, content),
		)
	}

	var lines []string
	last := len(m.trail) - 1
	for i, entry := range m.trail {
		line := fmt.Sprintf("p%-3d %s", entry.page, TruncateCursor(entry.cursor, width-12))
		if i == last {
			lines = append(lines, trailActiveStyle.Render("▶ "+line))
		} else {
			lines = append(lines, trailStyle.Render("  "+line))
		}
	}

	content := lipgloss.JoinVertical(lipgloss.Left, lines...)

	return panelStyle.Width(width).Render(
		lipgloss.JoinVertical(lipgloss.Left, title, content),
	)
}

// renderLogsPanel renders the logs panel
func (m *Model) renderLogsPanel(width int) string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	title := titleStyle.Render(" SYSTEM LOGS ")

	// Get recent logs
	start := len(m.logMessages) - 10
	if start < 0 {
		start = 0
	}

	var logs []string
	for i := start; i < len(m.logMessages); i++ {
		log := m.logMessages[i]
		timestamp := logTimestampStyle.Render(log.Time.Format("15:04:05"))
		level := lipgloss.NewStyle().Foreground(log.Color).Bold(true).Render(fmt.Sprintf("[%-7s]", log.Level))
		message := logMessageStyle.Render(log.Message)

		// Truncate message if too long
		maxMsgLen := width - 25
		if len(message) > maxMsgLen {
			message = message[:maxMsgLen-3] + "..."
		}

		logs = append(logs, fmt.Sprintf("%s %s %s", timestamp, level, message))
	}

	content := strings.Join(logs, "\n")
	if content == "" {
		content = lipgloss.NewStyle().Foreground(dimWhite).Render("No logs yet...")
	}

	// Calculate height for logs panel to fill remaining space
	logsHeight := m.height - 28 // Approximate calculation
	if logsHeight < 5 {
		logsHeight = 5
	}

	return panelStyle.Width(width).Height(logsHeight).Render(
		lipgloss.JoinVertical(lipgloss.Left, title, content),
	)
}

// renderHelp renders the help panel
func (m *Model) renderHelp() string {
	help := `
  Navigation:
    q/Q      - Quit the application
    ctrl+l   - Clear the log panel
    ?        - Toggle this help

  Status Indicators:
    ` + successStyle.Render("Green") + `    - Active/Healthy
    ` + warningStyle.Render("Orange") + `   - Warning/Pending
    ` + errorStyle.Render("Red") + `      - Error/Critical

  Icons:
    ▶        - Latest page cursor
    ✓        - Run completed
    █        - Progress indicator
`

	return panelStyle.Width(m.width).Render(help)
}

// formatDuration formats a duration in a human-readable way
func formatDuration(d time.Duration) string {
	if d < 0 {
		return "00:00:00"
	}

	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	s := int(d.Seconds()) % 60

	if h > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%02d:%02d", m, s)
}
