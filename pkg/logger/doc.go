// Package logger provides a structured logging interface for xscraper.
//
// It wraps the zerolog library to provide a clean, easy-to-use API with support for:
// - Multiple log levels (Debug, Info, Warn, Error, Fatal)
// - Structured logging with fields
// - Pretty console output with colors
// - File output
// - Context support for request tracing
// - Global logger instance for easy access
//
// Basic Usage:
//
//	import "xscraper/pkg/logger"
//
//	// Initialize the global logger
//	cfg := &config.LoggingConfig{
//	    Level: "info",
//	    File: "/var/log/xscraper.log",
//	}
//	err := logger.Initialize(cfg)
//
//	// Use the global logger
//	logger.Info("Application started")
//	logger.WithField("user_id", "2244994945").Info("Fetching timeline")
//	logger.WithError(err).Error("Failed to fetch page")
//
// Advanced Usage:
//
//	// Create a logger instance with fields
//	log := logger.GetLogger().
//	    WithField("component", "fetcher").
//	    WithField("run_id", runID)
//
//	// Use structured logging
//	log.InfoWithFields("Fetch run completed", map[string]interface{}{
//	    "items_written": 2000,
//	    "pages":         20,
//	    "stop_reason":   "budget_reached",
//	})
//
// The logger supports the following configuration options:
// - Level: Log level (debug, info, warn, error, fatal)
// - File: Path to log file (empty for console only)
package logger
