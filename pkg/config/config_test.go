package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	require.NotNil(t, cfg)

	// Twitter defaults
	assert.NotEmpty(t, cfg.Twitter.UserAgent)
	assert.Equal(t, "https://api.twitter.com", cfg.Twitter.BaseURL)
	assert.Equal(t, 30*time.Second, cfg.Twitter.Timeout)

	// Fetch defaults
	assert.Equal(t, 2000, cfg.Fetch.MaxResults)
	assert.Equal(t, []string{"entities", "context_annotations", "conversation_id", "created_at"}, cfg.Fetch.TweetFields)
	assert.Equal(t, []string{"replies"}, cfg.Fetch.Excludes)

	// Output defaults
	assert.Equal(t, ".", cfg.Output.Directory)
	assert.Equal(t, "tweets.jsonl", cfg.Output.TweetsFile)
	assert.Equal(t, "mentions.csv", cfg.Output.MentionsFile)
	assert.Equal(t, "annotations.csv", cfg.Output.AnnotationsFile)

	// Notification defaults
	assert.True(t, cfg.Notifications.Enabled)
	assert.Equal(t, "terminal", cfg.Notifications.NotificationType)

	// Logging defaults
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Empty(t, cfg.Logging.File)

	// Defaults must pass validation as-is
	assert.NoError(t, cfg.Validate())
}

func TestLoadFromEnv(t *testing.T) {
	envVars := map[string]string{
		"XSCRAPER_BEARER_TOKEN":          "env-token",
		"XSCRAPER_USER_ID":               "2244994945",
		"XSCRAPER_HANDLE":                "envhandle",
		"XSCRAPER_USER_AGENT":            "env-agent",
		"XSCRAPER_BASE_URL":              "http://localhost:8080",
		"XSCRAPER_MAX_RESULTS":           "500",
		"XSCRAPER_OUTPUT_DIR":            "/env/output",
		"XSCRAPER_TWEETS_FILE":           "env.jsonl",
		"XSCRAPER_NOTIFICATIONS_ENABLED": "false",
		"XSCRAPER_LOG_LEVEL":             "debug",
	}
	for key, value := range envVars {
		t.Setenv(key, value)
	}

	cfg := DefaultConfig()
	err := cfg.LoadFromEnv()
	require.NoError(t, err)

	assert.Equal(t, "env-token", cfg.Twitter.BearerToken)
	assert.Equal(t, "2244994945", cfg.Twitter.UserID)
	assert.Equal(t, "envhandle", cfg.Twitter.Handle)
	assert.Equal(t, "env-agent", cfg.Twitter.UserAgent)
	assert.Equal(t, "http://localhost:8080", cfg.Twitter.BaseURL)
	assert.Equal(t, 500, cfg.Fetch.MaxResults)
	assert.Equal(t, "/env/output", cfg.Output.Directory)
	assert.Equal(t, "env.jsonl", cfg.Output.TweetsFile)
	assert.False(t, cfg.Notifications.Enabled)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*Config)
		wantError bool
	}{
		{
			name:   "defaults are valid",
			mutate: func(c *Config) {},
		},
		{
			name: "valid identity fields",
			mutate: func(c *Config) {
				c.Twitter.UserID = "2244994945"
				c.Twitter.Handle = "jack"
			},
		},
		{
			name:      "non-numeric user id",
			mutate:    func(c *Config) { c.Twitter.UserID = "not-a-number" },
			wantError: true,
		},
		{
			name:      "handle too long",
			mutate:    func(c *Config) { c.Twitter.Handle = "sixteen_chars_ab" },
			wantError: true,
		},
		{
			name:   "handle with leading @ is accepted",
			mutate: func(c *Config) { c.Twitter.Handle = "@jack" },
		},
		{
			name:      "zero max results",
			mutate:    func(c *Config) { c.Fetch.MaxResults = 0 },
			wantError: true,
		},
		{
			name:      "no tweet fields",
			mutate:    func(c *Config) { c.Fetch.TweetFields = nil },
			wantError: true,
		},
		{
			name:      "missing tweets file",
			mutate:    func(c *Config) { c.Output.TweetsFile = "" },
			wantError: true,
		},
		{
			name:      "missing base URL",
			mutate:    func(c *Config) { c.Twitter.BaseURL = "" },
			wantError: true,
		},
		{
			name:      "invalid log level",
			mutate:    func(c *Config) { c.Logging.Level = "loud" },
			wantError: true,
		},
		{
			name:      "invalid notification type",
			mutate:    func(c *Config) { c.Notifications.NotificationType = "carrier-pigeon" },
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestMergeCommandLineFlags(t *testing.T) {
	cfg := DefaultConfig()

	flags := map[string]interface{}{
		"user-id":       "123456",
		"handle":        "flaghandle",
		"bearer-token":  "flag-token",
		"max-results":   50,
		"output-dir":    "/flag/output",
		"tweets-file":   "flag.jsonl",
		"notifications": false,
		"log-level":     "error",
	}

	cfg.MergeCommandLineFlags(flags)

	assert.Equal(t, "123456", cfg.Twitter.UserID)
	assert.Equal(t, "flaghandle", cfg.Twitter.Handle)
	assert.Equal(t, "flag-token", cfg.Twitter.BearerToken)
	assert.Equal(t, 50, cfg.Fetch.MaxResults)
	assert.Equal(t, "/flag/output", cfg.Output.Directory)
	assert.Equal(t, "flag.jsonl", cfg.Output.TweetsFile)
	assert.False(t, cfg.Notifications.Enabled)
	assert.Equal(t, "error", cfg.Logging.Level)
}

func TestFlagsOverrideEnv(t *testing.T) {
	t.Setenv("XSCRAPER_MAX_RESULTS", "700")
	t.Setenv("XSCRAPER_LOG_LEVEL", "warn")

	cfg := DefaultConfig()
	require.NoError(t, cfg.LoadFromEnv())
	cfg.MergeCommandLineFlags(map[string]interface{}{"max-results": 25})

	assert.Equal(t, 25, cfg.Fetch.MaxResults)
	assert.Equal(t, "warn", cfg.Logging.Level)
}

func TestSaveAndLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "test-config.yaml")

	cfg := DefaultConfig()
	cfg.Twitter.UserID = "44196397"
	cfg.Twitter.Handle = "saved"
	cfg.Fetch.MaxResults = 300

	err := cfg.Save(configPath)
	require.NoError(t, err)

	loaded := DefaultConfig()
	err = loaded.LoadFromFile(configPath)
	require.NoError(t, err)

	assert.Equal(t, "44196397", loaded.Twitter.UserID)
	assert.Equal(t, "saved", loaded.Twitter.Handle)
	assert.Equal(t, 300, loaded.Fetch.MaxResults)
}

func TestLoadFromFileMissingIsNotAnError(t *testing.T) {
	cfg := DefaultConfig()
	// Empty path and no config file in the search locations: keep defaults.
	home := t.TempDir()
	t.Setenv("HOME", home)

	cwd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	defer os.Chdir(cwd)

	require.NoError(t, cfg.LoadFromFile(""))
	assert.Equal(t, 2000, cfg.Fetch.MaxResults)
}

func TestOutputPaths(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Output.Directory = "/data"

	assert.Equal(t, filepath.Join("/data", "tweets.jsonl"), cfg.TweetsPath())
	assert.Equal(t, filepath.Join("/data", "mentions.csv"), cfg.MentionsPath())
	assert.Equal(t, filepath.Join("/data", "annotations.csv"), cfg.AnnotationsPath())
}
