package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"
	"xscraper/pkg/auth"
	"xscraper/pkg/config"
	"xscraper/pkg/fetcher"
	"xscraper/pkg/logger"
	"xscraper/pkg/twitter"
	"xscraper/pkg/ui"
	"xscraper/pkg/ui/tui"
)

var (
	// Fetch command flags
	outputDir    string
	tweetsFile   string
	maxResults   int
	accountLabel string
	useTUI       bool
)

// fetchCmd represents the fetch command
var fetchCmd = &cobra.Command{
	Use:   "fetch [user-id]",
	Short: "Fetch a user's public posts into the record log",
	Long: `Fetch a user's public posts from the X API v2 and append them to the
local JSONL record log.

The user id is the numeric account id (not the @handle). It can be given as
an argument or configured as twitter.user_id. A bearer token must be
available through one of:
  - Stored credentials (use 'xscraper auth login' to store)
  - The XSCRAPER_BEARER_TOKEN environment variable
  - The configuration file

Pagination walks the timeline newest-first until the API stops returning a
next cursor, the item budget is reached, or the cursor misbehaves (stalls,
cycles, or turns up an empty page). Every fetched tweet is appended before
the next page is requested, so an interrupted run keeps everything fetched
so far.`,
	Example: `  # Fetch using the configured account
  xscraper fetch

  # Fetch a specific user with a 500-tweet budget
  xscraper fetch 2244994945 --max-results 500

  # Use a specific stored credential account
  xscraper fetch 2244994945 --account work

  # Watch the run in the full-screen terminal UI
  xscraper fetch 2244994945 --tui`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		runFetch(cmd, args)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(fetchCmd)

	// Local flags for fetch command
	fetchCmd.Flags().StringVarP(&outputDir, "output", "o", "", "output directory for the record log (default: current directory)")
	fetchCmd.Flags().StringVar(&tweetsFile, "tweets-file", "", "record log filename (default: tweets.jsonl)")
	fetchCmd.Flags().IntVar(&maxResults, "max-results", 0, "maximum number of tweets to fetch (default: 2000)")
	fetchCmd.Flags().StringVarP(&accountLabel, "account", "a", "", "use specific stored credential account")
	fetchCmd.Flags().BoolVar(&useTUI, "tui", false, "use interactive terminal UI with real-time progress")
}

func runFetch(cmd *cobra.Command, args []string) {
	cfg := loadConfigOrExit()
	userID := resolveUserID(cfg, args)

	// If TUI is enabled, we'll handle output differently
	if !cfg.Fetch.UseTUI {
		ui.PrintInfo("Target User", userID)
	}

	resolveCredentials(cfg)

	logger.WithField("user_id", userID).Info("Starting fetch operation")

	if err := fetchTimeline(cfg, userID); err != nil {
		os.Exit(1)
	}
}

// loadConfigOrExit merges flags into the layered configuration and brings
// the logger up, exiting on any failure.
func loadConfigOrExit() *config.Config {
	flags := make(map[string]interface{})
	if outputDir != "" {
		flags["output-dir"] = outputDir
	}
	if tweetsFile != "" {
		flags["tweets-file"] = tweetsFile
	}
	if mentionsFile != "" {
		flags["mentions-file"] = mentionsFile
	}
	if annotationsFile != "" {
		flags["annotations-file"] = annotationsFile
	}
	if maxResults > 0 {
		flags["max-results"] = maxResults
	}
	if useTUI {
		flags["tui"] = true
	}
	if !notifications {
		flags["notifications"] = false
	}
	if logLevel != "info" {
		flags["log-level"] = logLevel
	}

	cfg, err := config.Load(configFile, flags)
	if err != nil {
		ui.PrintError("Failed to load configuration: %v", err)
		os.Exit(1)
	}

	if err := logger.Initialize(&cfg.Logging); err != nil {
		ui.PrintError("Failed to initialize logger: %v", err)
		os.Exit(1)
	}
	logger.WithField("version", version).Info("X Scraper starting")

	return cfg
}

// resolveUserID picks the target account id from the argument or the config.
func resolveUserID(cfg *config.Config, args []string) string {
	userID := cfg.Twitter.UserID
	if len(args) > 0 {
		userID = strings.TrimSpace(args[0])
	}

	if userID == "" {
		ui.PrintError("No user id given")
		fmt.Println("\nPass the numeric account id as an argument:")
		fmt.Println("  xscraper fetch 2244994945")
		fmt.Println("\nOr configure it once:")
		fmt.Println("  export XSCRAPER_USER_ID=2244994945")
		os.Exit(1)
	}

	if !twitter.IsValidUserID(userID) {
		ui.PrintError("Invalid user id: %s", userID)
		if twitter.IsValidHandle(twitter.SanitizeHandle(userID)) {
			fmt.Println("\nThat looks like a handle. The fetch endpoint needs the numeric")
			fmt.Println("account id, e.g. 2244994945 for @XDevelopers.")
		}
		os.Exit(1)
	}

	return userID
}

// resolveCredentials fills in the bearer token, preferring stored accounts
// over config and environment values.
func resolveCredentials(cfg *config.Config) {
	credManager, err := auth.NewManager()
	if err != nil {
		ui.PrintError("Failed to initialize credential manager: %v", err)
		os.Exit(1)
	}

	var account *auth.Account

	if accountLabel != "" {
		// Use specific account
		account, err = credManager.Retrieve(accountLabel)
		if err != nil {
			ui.PrintError("Account not found: %s", accountLabel)
			ui.PrintInfo("Available accounts", "Use 'xscraper auth list' to see stored accounts")
			os.Exit(1)
		}
	} else if cfg.Twitter.BearerToken != "" && cfg.Twitter.BearerToken != "YOUR_BEARER_TOKEN" {
		// Use the token from config/env
		logger.Info("Using bearer token from configuration")
	} else {
		// Try to get default account from credential manager
		account, err = credManager.RetrieveDefault()
		if err != nil {
			logger.Error("No credentials found")
			ui.PrintError("No X API credentials found")
			fmt.Println("\nTo store a bearer token securely, run:")
			fmt.Println("  xscraper auth login")
			fmt.Println("\nFor one-off runs you can also set an environment variable:")
			fmt.Println("  export XSCRAPER_BEARER_TOKEN=your_bearer_token")
			os.Exit(1)
		}
	}

	// If we got an account from the credential manager, update config
	if account != nil {
		cfg.Twitter.BearerToken = account.BearerToken
		logger.WithField("account", account.Label).Info("Using stored credentials")
		ui.PrintInfo("Using account", account.Label)
	}

	// Final credential validation
	if cfg.Twitter.BearerToken == "" || cfg.Twitter.BearerToken == "YOUR_BEARER_TOKEN" {
		logger.Error("Missing bearer token")
		ui.PrintError("Missing bearer token: run 'xscraper auth login' to store credentials")
		os.Exit(1)
	}
}

// fetchTimeline runs the fetch in TUI or plain mode. Interrupts cancel the
// walk between pages; the page in flight still lands in the log.
func fetchTimeline(cfg *config.Config, userID string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if cfg.Fetch.UseTUI {
		terminal := tui.NewTUI(cfg.Fetch.MaxResults)

		// Run the fetch in a goroutine
		fetchDone := make(chan error, 1)
		var written int
		go func() {
			f, err := fetcher.New(cfg)
			if err != nil {
				fetchDone <- err
				return
			}

			// Set the TUI on the fetcher
			f.SetTUI(terminal)

			written, err = f.Fetch(ctx, userID, cfg.Fetch.MaxResults)
			fetchDone <- err
		}()

		// Run TUI in main thread
		tuiDone := make(chan error, 1)
		go func() {
			tuiDone <- terminal.Start()
		}()

		// Wait for either to finish
		select {
		case err := <-fetchDone:
			terminal.Stop()
			<-tuiDone // Wait for TUI to finish
			if err != nil {
				if isProtocolError(err) {
					reportMalformedPage(userID, written, err)
					return nil
				}
				logger.WithError(err).WithField("user_id", userID).Error("Fetch failed")
				ui.PrintError("TIMELINE EXTRACTION FAILED: %v", err)
				return err
			}
		case err := <-tuiDone:
			if err != nil {
				logger.WithError(err).Error("TUI failed")
				return err
			}
		}

		logger.WithField("user_id", userID).Info("Fetch completed successfully")
		return nil
	}

	// Plain flow
	ui.PrintHighlight("[INITIATING TIMELINE EXTRACTION]")

	f, err := fetcher.New(cfg)
	if err != nil {
		ui.PrintError("Failed to initialize fetcher: %v", err)
		return err
	}

	written, err := f.Fetch(ctx, userID, cfg.Fetch.MaxResults)
	if err != nil {
		if isProtocolError(err) {
			reportMalformedPage(userID, written, err)
			return nil
		}
		logger.WithError(err).WithField("user_id", userID).Error("Fetch failed")
		ui.PrintError("TIMELINE EXTRACTION FAILED: %v", err)
		return err
	}

	logger.WithFields(map[string]interface{}{
		"user_id": userID,
		"written": written,
	}).Info("Fetch completed successfully")
	ui.PrintSuccess(fmt.Sprintf("[EXTRACTION COMPLETED: %d TWEETS]", written))
	return nil
}

// isProtocolError reports whether the walk died on a malformed upstream
// page rather than a transport, auth, or storage failure.
func isProtocolError(err error) bool {
	var apiErr *twitter.Error
	return errors.As(err, &apiErr) && apiErr.Type == twitter.ErrorTypeParsing
}

// reportMalformedPage explains an early stop on a bad page. Everything
// appended before the bad page is a valid log prefix, so the command
// still exits clean.
func reportMalformedPage(userID string, written int, err error) {
	logger.WithError(err).WithFields(map[string]interface{}{
		"user_id": userID,
		"written": written,
	}).Warn("Upstream sent a malformed page, stopping early")
	ui.PrintWarning("Upstream sent a malformed page: %v", err)
	ui.PrintSuccess(fmt.Sprintf("[EXTRACTION STOPPED EARLY: %d TWEETS KEPT]", written))
}
