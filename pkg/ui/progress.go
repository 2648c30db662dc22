package ui

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// FetchProgress provides a clean, minimal progress display for a fetch
// run: one rewritten line with a budget bar, counters, and rate.
type FetchProgress struct {
	mu        sync.Mutex
	userID    string
	budget    int
	written   int
	page      int
	startTime time.Time
	isDebug   bool
}

// NewFetchProgress creates a new fetch progress display
func NewFetchProgress(userID string, budget int, debug bool) *FetchProgress {
	return &FetchProgress{
		userID:    userID,
		budget:    budget,
		startTime: time.Now(),
		isDebug:   debug,
	}
}

// ScanningPage indicates a new timeline page is being walked
func (p *FetchProgress) ScanningPage(page int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.page = page

	if p.isDebug {
		fmt.Printf("\n%s Fetching page %d...\n", Magenta("→"), page)
	}
}

// RecordWritten updates the display after a tweet lands in the log
func (p *FetchProgress) RecordWritten(total int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.written = total

	if !p.isDebug {
		p.printProgress()
	}
}

// printProgress prints the minimal progress line
func (p *FetchProgress) printProgress() {
	elapsed := time.Since(p.startTime)
	rate := float64(p.written) / elapsed.Minutes()

	// Build budget bar
	progress := float64(p.written) / float64(p.budget)
	if progress > 1 {
		progress = 1
	}
	barWidth := 20
	filled := int(progress * float64(barWidth))
	bar := strings.Repeat("━", filled) + strings.Repeat("─", barWidth-filled)

	line := fmt.Sprintf("\r%s [%s] %d/%d • %.0f/min • page %d",
		Cyan(p.userID),
		bar,
		p.written,
		p.budget,
		rate,
		p.page,
	)

	// Clear line and print
	fmt.Printf("\r%s\r%s", strings.Repeat(" ", 120), line)
}

// Complete marks the fetch run as complete
func (p *FetchProgress) Complete(written, pages int, stopReason string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	elapsed := time.Since(p.startTime)

	fmt.Printf("\n\n%s Fetched %d tweets for user %s\n",
		Green("✓"),
		written,
		p.userID,
	)

	fmt.Printf("  %s %d pages in %s (stopped: %s)\n",
		Dim("•"),
		pages,
		p.formatDuration(elapsed),
		stopReason,
	)
}

// Fail reports a failed fetch run
func (p *FetchProgress) Fail(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	fmt.Printf("\n%s Fetch failed after %d tweets: %v\n", Red("✗"), p.written, err)
}

// formatDuration formats a duration in a human-readable way
func (p *FetchProgress) formatDuration(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%ds", int(d.Seconds()))
	} else if d < time.Hour {
		return fmt.Sprintf("%dm%ds", int(d.Minutes()), int(d.Seconds())%60)
	} else {
		return fmt.Sprintf("%dh%dm", int(d.Hours()), int(d.Minutes())%60)
	}
}
