// Package ui provides terminal UI components for xscraper
// This file demonstrates example usage of the UI components
package ui

/*
Example usage of the UI components:

// Terminal colors and output
ui.PrintLogo()                                   // Print ASCII logo
ui.PrintInfo("User", "2244994945")               // Cyan label, yellow value
ui.PrintSuccess("Fetch completed!")              // Green success message
ui.PrintError("Failed to fetch: %v", err)        // Red error message
ui.PrintWarning("Approaching budget")            // Yellow warning message
ui.PrintHighlight("[PROCESSING]")                // Magenta highlight message

// Output modes
ui.SetQuietMode(true)                            // Errors only
ui.SetProgressOnlyMode(true)                     // Progress line, no decoration

// Fetch progress display
progress := ui.NewFetchProgress("2244994945", 2000, false)
progress.ScanningPage(1)                         // New page being walked
progress.RecordWritten(42)                       // Tweet landed in the log
progress.Complete(2000, 20, "budget_reached")    // Final summary
progress.Fail(err)                               // Failure summary

// Notifications (cross-platform)
notifier := ui.NewNotifier()
notifier.SendNotification("Fetch Complete", "2000 tweets written to the record log")
notifier.SendError("Error", "Fetch failed")
notifier.SendSuccess("Success", "Summaries written")

// Direct color usage
fmt.Printf("%s: %s\n", ui.Cyan("User"), ui.Yellow("2244994945"))
fmt.Println(ui.Green("✓ Success"))
fmt.Println(ui.Red("✗ Failed"))
*/
