package logger

// This file shows how to integrate the logger into the main application

/*
Example integration in main.go:

package main

import (
	"context"
	"flag"
	"os"

	"xscraper/pkg/config"
	"xscraper/pkg/fetcher"
	"xscraper/pkg/logger"
	"xscraper/pkg/ui"
)

func main() {
	flag.Parse()

	// Show ASCII logo
	ui.PrintLogo()

	// ... get user id and flags ...

	// Load configuration
	cfg, err := config.Load(*configFile, flags)
	if err != nil {
		ui.PrintError("Failed to load configuration: %v", err)
		os.Exit(1)
	}

	// Initialize the logger
	if err := logger.Initialize(&cfg.Logging); err != nil {
		ui.PrintError("Failed to initialize logger: %v", err)
		os.Exit(1)
	}

	// Now you can use the logger throughout the application
	logger.Info("xscraper starting")
	logger.WithField("user_id", userID).Info("Fetching user timeline")

	// Log configuration (be careful not to log the bearer token)
	logger.WithFields(map[string]interface{}{
		"output_dir":  cfg.Output.Directory,
		"max_results": cfg.Fetch.MaxResults,
		"log_level":   cfg.Logging.Level,
	}).Debug("Configuration loaded")

	// Create and run the fetcher with logging
	logger.Info("Initializing fetcher")

	f, err := fetcher.New(cfg)
	if err != nil {
		logger.WithError(err).Fatal("Failed to initialize fetcher")
	}

	// Log component start
	logger.LogComponentStart("fetcher", map[string]interface{}{
		"user_id":     userID,
		"max_results": cfg.Fetch.MaxResults,
	})

	written, err := f.Fetch(context.Background(), userID, cfg.Fetch.MaxResults)
	if err != nil {
		logger.WithError(err).WithField("user_id", userID).Error("Fetch failed")
		logger.LogComponentStop("fetcher", "error")
		os.Exit(1)
	}

	logger.LogComponentStop("fetcher", "completed")
	logger.WithField("items_written", written).Info("Fetch completed successfully")
}
*/

// Example integration in the fetcher package:
/*
func (f *Fetcher) Fetch(ctx context.Context, userID string, maxResults int) (int, error) {
	log := logger.GetLogger().
		WithField("component", "fetcher").
		WithField("user_id", userID)

	log.Info("Starting fetch run")

	// Walk the timeline
	log.Debug("Opening record log")
	writer, err := tweetlog.OpenWriter(f.config.TweetsPath())
	if err != nil {
		log.WithError(err).Error("Failed to open record log")
		return 0, err
	}

	log.WithFields(map[string]interface{}{
		"log_path":    f.config.TweetsPath(),
		"max_results": maxResults,
	}).Info("Record log opened")

	// ... rest of the implementation ...
}
*/

// Example integration with the pagination engine:
/*
for pager.Next() {
	tweet := pager.Item()
	if err := writer.Append(tweet); err != nil {
		return written, err
	}
	written++

	// Use helper function for standardized logging
	logger.LogFetchProgress(userID, written, maxResults)
}
*/
