package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration options for the X scraper
type Config struct {
	// Twitter/X API credentials and transport settings
	Twitter TwitterConfig `yaml:"twitter" json:"twitter"`

	// Fetch settings (pagination budget, request shaping)
	Fetch FetchConfig `yaml:"fetch" json:"fetch"`

	// Output settings (record log and summary files)
	Output OutputConfig `yaml:"output" json:"output"`

	// Notification preferences
	Notifications NotificationConfig `yaml:"notifications" json:"notifications"`

	// Logging configuration
	Logging LoggingConfig `yaml:"logging" json:"logging"`
}

// TwitterConfig holds X API-specific configuration
type TwitterConfig struct {
	BearerToken string        `yaml:"bearer_token" json:"bearer_token"`
	UserID      string        `yaml:"user_id" json:"user_id"`
	Handle      string        `yaml:"handle" json:"handle"`
	UserAgent   string        `yaml:"user_agent" json:"user_agent"`
	BaseURL     string        `yaml:"base_url" json:"base_url"`
	Timeout     time.Duration `yaml:"timeout" json:"timeout"`
}

// FetchConfig holds fetch-specific configuration
type FetchConfig struct {
	MaxResults  int      `yaml:"max_results" json:"max_results"`
	TweetFields []string `yaml:"tweet_fields" json:"tweet_fields"`
	Excludes    []string `yaml:"excludes" json:"excludes"`
	UseTUI      bool     `yaml:"use_tui" json:"use_tui"`
}

// OutputConfig holds output path configuration
type OutputConfig struct {
	Directory       string `yaml:"directory" json:"directory"`
	TweetsFile      string `yaml:"tweets_file" json:"tweets_file"`
	MentionsFile    string `yaml:"mentions_file" json:"mentions_file"`
	AnnotationsFile string `yaml:"annotations_file" json:"annotations_file"`
}

// NotificationConfig holds notification preferences
type NotificationConfig struct {
	Enabled          bool   `yaml:"enabled" json:"enabled"`
	OnComplete       bool   `yaml:"on_complete" json:"on_complete"`
	OnError          bool   `yaml:"on_error" json:"on_error"`
	NotificationType string `yaml:"notification_type" json:"notification_type"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level string `yaml:"level" json:"level"`
	File  string `yaml:"file" json:"file"`
}

// DefaultConfig returns a Config instance with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Twitter: TwitterConfig{
			UserAgent: "xscraper/1.0",
			BaseURL:   "https://api.twitter.com",
			Timeout:   30 * time.Second,
		},
		Fetch: FetchConfig{
			MaxResults:  2000,
			TweetFields: []string{"entities", "context_annotations", "conversation_id", "created_at"},
			Excludes:    []string{"replies"},
		},
		Output: OutputConfig{
			Directory:       ".",
			TweetsFile:      "tweets.jsonl",
			MentionsFile:    "mentions.csv",
			AnnotationsFile: "annotations.csv",
		},
		Notifications: NotificationConfig{
			Enabled:          true,
			OnComplete:       true,
			OnError:          true,
			NotificationType: "terminal",
		},
		Logging: LoggingConfig{
			Level: "info",
			File:  "",
		},
	}
}

// LoadFromEnv loads configuration from environment variables
func (c *Config) LoadFromEnv() error {
	// API credentials
	if token := os.Getenv("XSCRAPER_BEARER_TOKEN"); token != "" {
		c.Twitter.BearerToken = token
	}
	if userID := os.Getenv("XSCRAPER_USER_ID"); userID != "" {
		c.Twitter.UserID = userID
	}
	if handle := os.Getenv("XSCRAPER_HANDLE"); handle != "" {
		c.Twitter.Handle = handle
	}
	if userAgent := os.Getenv("XSCRAPER_USER_AGENT"); userAgent != "" {
		c.Twitter.UserAgent = userAgent
	}
	if baseURL := os.Getenv("XSCRAPER_BASE_URL"); baseURL != "" {
		c.Twitter.BaseURL = baseURL
	}

	// Fetch budget
	if maxResults := os.Getenv("XSCRAPER_MAX_RESULTS"); maxResults != "" {
		var val int
		fmt.Sscanf(maxResults, "%d", &val)
		if val > 0 {
			c.Fetch.MaxResults = val
		}
	}

	// Output paths
	if outputDir := os.Getenv("XSCRAPER_OUTPUT_DIR"); outputDir != "" {
		c.Output.Directory = outputDir
	}
	if tweetsFile := os.Getenv("XSCRAPER_TWEETS_FILE"); tweetsFile != "" {
		c.Output.TweetsFile = tweetsFile
	}

	// Notifications
	if notifEnabled := os.Getenv("XSCRAPER_NOTIFICATIONS_ENABLED"); notifEnabled != "" {
		c.Notifications.Enabled = strings.ToLower(notifEnabled) == "true"
	}

	// Logging level
	if logLevel := os.Getenv("XSCRAPER_LOG_LEVEL"); logLevel != "" {
		c.Logging.Level = logLevel
	}

	return nil
}

// LoadFromFile loads configuration from a YAML file
func (c *Config) LoadFromFile(path string) error {
	// If path is empty, try default locations
	if path == "" {
		path = c.findConfigFile()
		if path == "" {
			return nil // No config file found, not an error
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	return nil
}

// findConfigFile searches for config file in standard locations
func (c *Config) findConfigFile() string {
	// Check in order of precedence
	locations := []string{
		".xscraper.yaml",
		".xscraper.yml",
		filepath.Join(os.Getenv("HOME"), ".config", "xscraper", "config.yaml"),
		filepath.Join(os.Getenv("HOME"), ".config", "xscraper", "config.yml"),
		filepath.Join(os.Getenv("HOME"), ".xscraper.yaml"),
		filepath.Join(os.Getenv("HOME"), ".xscraper.yml"),
	}

	for _, loc := range locations {
		if _, err := os.Stat(loc); err == nil {
			return loc
		}
	}

	return ""
}

// Validate checks if the configuration is valid
//
// Credential presence is deliberately not checked here: the process and
// config commands work without any API access. The fetch path enforces
// credentials separately once it knows it will talk to the API.
func (c *Config) Validate() error {
	var errs []error

	// Validate identity fields when set
	if c.Twitter.UserID != "" && !isNumeric(c.Twitter.UserID) {
		errs = append(errs, errors.New("user id must be numeric"))
	}
	if c.Twitter.Handle != "" && !isValidHandle(strings.TrimPrefix(c.Twitter.Handle, "@")) {
		errs = append(errs, errors.New("handle must be 1-15 word characters"))
	}
	if c.Twitter.BaseURL == "" {
		errs = append(errs, errors.New("base URL is required"))
	}
	if c.Twitter.Timeout <= 0 {
		errs = append(errs, errors.New("request timeout must be positive"))
	}

	// Validate fetch settings
	if c.Fetch.MaxResults <= 0 {
		errs = append(errs, errors.New("max results must be positive"))
	}
	if len(c.Fetch.TweetFields) == 0 {
		errs = append(errs, errors.New("at least one tweet field is required"))
	}

	// Validate output settings
	if c.Output.Directory == "" {
		errs = append(errs, errors.New("output directory is required"))
	}
	if c.Output.TweetsFile == "" {
		errs = append(errs, errors.New("tweets file is required"))
	}
	if c.Output.MentionsFile == "" {
		errs = append(errs, errors.New("mentions file is required"))
	}
	if c.Output.AnnotationsFile == "" {
		errs = append(errs, errors.New("annotations file is required"))
	}

	// Validate logging
	validLogLevels := map[string]bool{
		"debug": true, "info": true, "warn": true, "error": true,
	}
	if !validLogLevels[strings.ToLower(c.Logging.Level)] {
		errs = append(errs, errors.New("invalid log level"))
	}

	// Validate notification type
	validNotifTypes := map[string]bool{
		"terminal": true, "desktop": true, "none": true,
	}
	if !validNotifTypes[strings.ToLower(c.Notifications.NotificationType)] {
		errs = append(errs, errors.New("invalid notification type"))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	return nil
}

// TweetsPath returns the full path of the record log file.
func (c *Config) TweetsPath() string {
	return filepath.Join(c.Output.Directory, c.Output.TweetsFile)
}

// MentionsPath returns the full path of the mentions summary file.
func (c *Config) MentionsPath() string {
	return filepath.Join(c.Output.Directory, c.Output.MentionsFile)
}

// AnnotationsPath returns the full path of the annotations summary file.
func (c *Config) AnnotationsPath() string {
	return filepath.Join(c.Output.Directory, c.Output.AnnotationsFile)
}

// Save saves the configuration to a file
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	// Create directory if it doesn't exist
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// MergeCommandLineFlags merges command line flags into the configuration
func (c *Config) MergeCommandLineFlags(flags map[string]interface{}) {
	if userID, ok := flags["user-id"].(string); ok && userID != "" {
		c.Twitter.UserID = userID
	}
	if handle, ok := flags["handle"].(string); ok && handle != "" {
		c.Twitter.Handle = handle
	}
	if token, ok := flags["bearer-token"].(string); ok && token != "" {
		c.Twitter.BearerToken = token
	}
	if maxResults, ok := flags["max-results"].(int); ok && maxResults > 0 {
		c.Fetch.MaxResults = maxResults
	}
	if outputDir, ok := flags["output-dir"].(string); ok && outputDir != "" {
		c.Output.Directory = outputDir
	}
	if tweetsFile, ok := flags["tweets-file"].(string); ok && tweetsFile != "" {
		c.Output.TweetsFile = tweetsFile
	}
	if mentionsFile, ok := flags["mentions-file"].(string); ok && mentionsFile != "" {
		c.Output.MentionsFile = mentionsFile
	}
	if annotationsFile, ok := flags["annotations-file"].(string); ok && annotationsFile != "" {
		c.Output.AnnotationsFile = annotationsFile
	}
	if useTUI, ok := flags["tui"].(bool); ok && useTUI {
		c.Fetch.UseTUI = true
	}
	if notifications, ok := flags["notifications"].(bool); ok && !notifications {
		c.Notifications.Enabled = false
	}
	if logLevel, ok := flags["log-level"].(string); ok && logLevel != "" {
		c.Logging.Level = logLevel
	}
}

// Load loads configuration from all sources with proper precedence
// Precedence order: Command line flags > Environment variables > .env file > Config file > Defaults
func Load(configPath string, flags map[string]interface{}) (*Config, error) {
	// Try to load .env files (don't fail if they don't exist)
	_ = godotenv.Load(".env")
	_ = godotenv.Load(filepath.Join(os.Getenv("HOME"), ".env"))
	_ = godotenv.Load(filepath.Join(os.Getenv("HOME"), ".xscraper.env"))

	// Start with defaults
	config := DefaultConfig()

	// Load from config file
	if err := config.LoadFromFile(configPath); err != nil {
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}

	// Override with environment variables (includes values from .env)
	if err := config.LoadFromEnv(); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	// Override with command line flags
	config.MergeCommandLineFlags(flags)

	// Validate final configuration
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func isValidHandle(handle string) bool {
	if len(handle) == 0 || len(handle) > 15 {
		return false
	}
	for _, r := range handle {
		if !((r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '_') {
			return false
		}
	}
	return true
}
