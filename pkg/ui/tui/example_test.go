package tui_test

import (
	"fmt"
	"time"

	"xscraper/pkg/ui/tui"
)

func ExampleTUI() {
	// Create a new TUI with an item budget of 100 tweets
	terminal := tui.NewTUI(100)

	// Start the TUI in a goroutine
	go func() {
		if err := terminal.Start(); err != nil {
			fmt.Printf("TUI error: %v\n", err)
		}
	}()

	// Announce the run
	terminal.StartRun("8f14e45f", "2244994945", 100)
	terminal.LogInfo("Fetching timeline for user 2244994945")

	// Simulate a paginated fetch
	written := 0
	for page := 1; page <= 4; page++ {
		cursor := fmt.Sprintf("7140dibdnow9c7btw482%d", page)
		if page == 4 {
			cursor = "" // last page carries no next cursor
		}
		terminal.PageFetched(page, cursor)

		for i := 0; i < 25; i++ {
			time.Sleep(50 * time.Millisecond)
			written++
			terminal.ItemWritten(written)
		}

		terminal.LogInfo("Page %d landed, %d tweets written", page, written)
	}

	// Finish the run
	terminal.Finish(written, 4, "cursor_absent")
	terminal.LogSuccess("Run complete: %d tweets across 4 pages", written)

	// Keep running for demo
	time.Sleep(10 * time.Second)
	terminal.Stop()
}
