package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
	"xscraper/pkg/config"
	"xscraper/pkg/runmeta"
	"xscraper/pkg/ui"
)

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration files",
	Long: `Manage X Scraper configuration files.

Configuration can be loaded from:
  - Command line flags (highest priority)
  - Environment variables
  - Configuration file
  - Default values (lowest priority)`,
}

// initCmd represents the config init command
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create an example configuration file",
	Long: `Create an example configuration file with all available options.

The file will be created in the current directory as 'xscraper.yaml'
unless a different path is specified with the --config flag.`,
	Run: runConfigInit,
}

// showCmd represents the config show command
var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	Long: `Show the current configuration including values from all sources:
  - Command line flags
  - Environment variables
  - Configuration file
  - Default values

Sensitive values like the bearer token will be masked for security.
If a fetch run has been recorded, its manifest is shown as well.`,
	Run: runConfigShow,
}

// validateCmd represents the config validate command
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate configuration file",
	Long: `Validate a configuration file for syntax errors and invalid values.

This command checks:
  - YAML syntax
  - Required fields
  - Value types and ranges
  - Path accessibility`,
	Run: runConfigValidate,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(initCmd)
	configCmd.AddCommand(showCmd)
	configCmd.AddCommand(validateCmd)
}

func runConfigInit(cmd *cobra.Command, args []string) {
	// Determine config file path
	configPath := configFile
	if configPath == "" {
		configPath = "xscraper.yaml"
	}

	// Check if file already exists
	if _, err := os.Stat(configPath); err == nil {
		ui.PrintError("Configuration file already exists: %s", configPath)
		fmt.Println("\nTo overwrite, first remove the existing file:")
		fmt.Printf("  rm %s\n", configPath)
		os.Exit(1)
	}

	// Create example configuration
	exampleConfig := `# X Scraper Configuration File
#
# This file contains all available configuration options.
# You can also use environment variables prefixed with XSCRAPER_
# For example: XSCRAPER_BEARER_TOKEN, XSCRAPER_USER_ID

# X API credentials and identity
twitter:
  # API v2 bearer token
  # Leave the placeholder if you store tokens with 'xscraper auth login'
  bearer_token: "YOUR_BEARER_TOKEN"

  # Numeric id of the account to archive (not the @handle)
  # Example: 2244994945 for @XDevelopers
  user_id: ""

  # Handle of the account (optional)
  # Used to skip self-mentions when building the mentions summary
  handle: ""

  # User agent string (optional)
  # Leave empty to use default
  user_agent: ""

# Fetch configuration
fetch:
  # Maximum number of tweets to fetch per run
  max_results: 2000

  # Tweet fields requested from the API
  tweet_fields:
    - entities
    - context_annotations
    - conversation_id
    - created_at

  # Timeline entries excluded from the fetch
  excludes:
    - replies

  # Render the fetch in a full-screen terminal dashboard
  use_tui: false

# Output configuration
output:
  # Directory for the record log and summaries
  directory: "."

  # Append-only record log (JSON Lines, one tweet per line)
  tweets_file: "tweets.jsonl"

  # Ranked summary files
  mentions_file: "mentions.csv"
  annotations_file: "annotations.csv"

# Notification configuration
notifications:
  enabled: true
  on_complete: true
  on_error: true

  # Notification type: terminal, desktop, none
  notification_type: "terminal"

# Logging configuration
logging:
  # Log level: debug, info, warn, error
  level: "info"

  # Log file path (optional)
  # Leave empty to log to the console only
  file: ""
`

	// Write configuration file
	if err := os.WriteFile(configPath, []byte(exampleConfig), 0644); err != nil {
		ui.PrintError("Failed to create configuration file: %v", err)
		os.Exit(1)
	}

	ui.PrintSuccess("Configuration file created: " + configPath)
	fmt.Println("\nNext steps:")
	fmt.Println("1. Add your bearer token (or run 'xscraper auth login' instead)")
	fmt.Println("2. Run 'xscraper config validate' to check the configuration")
	fmt.Println("3. Start archiving with 'xscraper fetch <user-id>'")
}

func runConfigShow(cmd *cobra.Command, args []string) {
	// Load configuration
	cfg, err := config.Load(configFile, nil)
	if err != nil {
		ui.PrintError("Failed to load configuration: %v", err)
		os.Exit(1)
	}

	// Create a sanitized version for display
	displayCfg := *cfg

	// Mask the bearer token
	if displayCfg.Twitter.BearerToken != "" {
		if len(displayCfg.Twitter.BearerToken) > 8 {
			displayCfg.Twitter.BearerToken = displayCfg.Twitter.BearerToken[:4] + "..." + displayCfg.Twitter.BearerToken[len(displayCfg.Twitter.BearerToken)-4:]
		} else {
			displayCfg.Twitter.BearerToken = "***"
		}
	}

	// Convert to YAML for display
	data, err := yaml.Marshal(&displayCfg)
	if err != nil {
		ui.PrintError("Failed to format configuration: %v", err)
		os.Exit(1)
	}

	ui.PrintHighlight("Current Configuration")
	fmt.Println()
	fmt.Print(string(data))

	// Show configuration sources
	fmt.Println("\nConfiguration sources (in order of priority):")
	fmt.Println("1. Command line flags")
	fmt.Println("2. Environment variables (XSCRAPER_*)")
	if configFile != "" {
		fmt.Printf("3. Configuration file: %s\n", configFile)
	} else {
		fmt.Println("3. Configuration file: (not specified)")
	}
	fmt.Println("4. Default values")

	// Show the most recent run when a manifest sidecar exists
	manifest, err := runmeta.Load(cfg.TweetsPath())
	if err != nil || manifest == nil {
		return
	}
	fmt.Println("\nLast recorded run:")
	fmt.Printf("  Run ID: %s\n", manifest.RunID)
	fmt.Printf("  User ID: %s\n", manifest.UserID)
	fmt.Printf("  Items written: %d\n", manifest.ItemsWritten)
	fmt.Printf("  Pages fetched: %d\n", manifest.PagesFetched)
	fmt.Printf("  Stop reason: %s\n", manifest.StopReason)
	fmt.Printf("  Finished: %s (took %s)\n",
		manifest.FinishedAt.Local().Format("2006-01-02 15:04:05"),
		manifest.Duration().Round(time.Second))
	fmt.Printf("  Log size: %d bytes\n", manifest.LogSizeBytes)
}

func runConfigValidate(cmd *cobra.Command, args []string) {
	// Check if config file is specified
	if configFile == "" {
		// Try to find config file in common locations
		possiblePaths := []string{
			"xscraper.yaml",
			"xscraper.yml",
			".xscraper.yaml",
			".xscraper.yml",
			filepath.Join(os.Getenv("HOME"), ".xscraper.yaml"),
			filepath.Join(os.Getenv("HOME"), ".config", "xscraper", "config.yaml"),
		}

		for _, path := range possiblePaths {
			if _, err := os.Stat(path); err == nil {
				configFile = path
				break
			}
		}

		if configFile == "" {
			ui.PrintError("No configuration file found")
			fmt.Println("\nSpecify a file with the --config flag, or create one:")
			fmt.Println("  xscraper config init")
			os.Exit(1)
		}
	}

	ui.PrintInfo("Validating configuration", configFile)

	// Try to load and validate configuration
	cfg, err := config.Load(configFile, nil)
	if err != nil {
		ui.PrintError("Configuration validation failed: %v", err)
		os.Exit(1)
	}

	// Perform additional validation checks
	warnings := []string{}
	errors := []string{}

	// Check credentials
	if cfg.Twitter.BearerToken == "" || cfg.Twitter.BearerToken == "YOUR_BEARER_TOKEN" {
		warnings = append(warnings, "Bearer token not configured (a stored account or XSCRAPER_BEARER_TOKEN also works)")
	}
	if cfg.Twitter.UserID == "" {
		warnings = append(warnings, "Default user id not set (pass it as an argument to fetch)")
	}
	if cfg.Twitter.Handle == "" {
		warnings = append(warnings, "Handle not set (summary permalinks will have an empty account segment)")
	}

	// Check paths
	if cfg.Output.Directory != "" {
		if err := os.MkdirAll(cfg.Output.Directory, 0755); err != nil {
			errors = append(errors, fmt.Sprintf("Cannot create output directory: %v", err))
		}
	}

	// Check logging file path
	if cfg.Logging.File != "" {
		dir := filepath.Dir(cfg.Logging.File)
		if err := os.MkdirAll(dir, 0755); err != nil {
			errors = append(errors, fmt.Sprintf("Cannot create log directory: %v", err))
		}
	}

	// Display results
	if len(errors) > 0 {
		ui.PrintError("Configuration has errors:")
		for _, err := range errors {
			fmt.Printf("  - %s\n", err)
		}
		os.Exit(1)
	}

	if len(warnings) > 0 {
		ui.PrintWarning("Configuration warnings:")
		for _, warn := range warnings {
			fmt.Printf("  - %s\n", warn)
		}
		fmt.Println()
	}

	ui.PrintSuccess("Configuration is valid")

	// Show summary
	fmt.Println("\nConfiguration summary:")
	fmt.Printf("  Record log: %s\n", cfg.TweetsPath())
	fmt.Printf("  Summaries: %s, %s\n", cfg.MentionsPath(), cfg.AnnotationsPath())
	fmt.Printf("  Max results: %d\n", cfg.Fetch.MaxResults)
	fmt.Printf("  Excludes: %v\n", cfg.Fetch.Excludes)
	fmt.Printf("  Log level: %s\n", cfg.Logging.Level)
}
