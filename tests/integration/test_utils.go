package integration

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"xscraper/pkg/config"
	"xscraper/pkg/logger"
	"xscraper/pkg/tweetlog"
	"xscraper/pkg/twitter"
	"xscraper/pkg/ui"
)

// TestHelper provides common test utilities
type TestHelper struct {
	t          *testing.T
	mockServer *MockAPIServer
	tempDir    string
}

// NewTestHelper creates a new test helper. Terminal output is silenced
// for the whole binary so fetch runs don't spray progress lines into the
// test log.
func NewTestHelper(t *testing.T) *TestHelper {
	ui.SetQuietMode(true)

	return &TestHelper{
		t:       t,
		tempDir: t.TempDir(),
	}
}

// SetupMockServer starts the mock API server and ties its lifetime to
// the test.
func (h *TestHelper) SetupMockServer() *MockAPIServer {
	h.mockServer = NewMockAPIServer()
	h.t.Cleanup(h.mockServer.Close)
	return h.mockServer
}

// GetTempDir returns the temporary directory for test files
func (h *TestHelper) GetTempDir() string {
	return h.tempDir
}

// CreateTestLogger creates a test logger
func (h *TestHelper) CreateTestLogger() logger.Logger {
	return logger.NewTestLogger()
}

// CreateTestConfig creates a configuration pointed at the mock server
// with outputs under the test's temp directory. SetupMockServer must
// have been called first.
func (h *TestHelper) CreateTestConfig() *config.Config {
	cfg := config.DefaultConfig()

	cfg.Twitter.BearerToken = "AAAA_integration_test_token_0000000000000000"
	cfg.Twitter.BaseURL = h.mockServer.GetURL()
	cfg.Twitter.Handle = "probeunit"
	cfg.Twitter.Timeout = 5 * time.Second

	cfg.Output.Directory = h.tempDir

	cfg.Notifications.Enabled = false
	cfg.Logging.Level = "error"

	return cfg
}

// GenerateTimeline builds a timeline corpus, newest first, with ids
// descending from a fixed origin and created_at stepping back one minute
// per tweet. Entity payloads follow a fixed cadence so ranking results
// are predictable:
//
//	every 2nd tweet mentions alice
//	every 4th tweet also mentions bob
//	every 3rd tweet carries a "Product" annotation for Acme Phone
func GenerateTimeline(count int) []twitter.Tweet {
	const originID = 1700000000000000000
	origin := time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC)

	tweets := make([]twitter.Tweet, count)
	for i := 0; i < count; i++ {
		tweet := twitter.Tweet{
			ID:             fmt.Sprintf("%d", originID-int64(i)),
			Text:           fmt.Sprintf("post number %d", count-i),
			CreatedAt:      origin.Add(-time.Duration(i) * time.Minute).Format(time.RFC3339),
			ConversationID: fmt.Sprintf("%d", originID-int64(i)),
		}

		var mentions []twitter.MentionEntity
		if i%2 == 0 {
			mentions = append(mentions, twitter.MentionEntity{
				Start: 0, End: 6, Username: "alice", ID: "1001",
			})
		}
		if i%4 == 0 {
			mentions = append(mentions, twitter.MentionEntity{
				Start: 7, End: 11, Username: "bob", ID: "1002",
			})
		}

		var annotations []twitter.AnnotationEntity
		if i%3 == 0 {
			annotations = append(annotations, twitter.AnnotationEntity{
				Start: 12, End: 22, Probability: 0.91,
				Type: "Product", NormalizedText: "Acme Phone",
			})
		}

		if len(mentions) > 0 || len(annotations) > 0 {
			tweet.Entities = &twitter.Entities{
				Mentions:    mentions,
				Annotations: annotations,
			}
		}

		tweets[i] = tweet
	}
	return tweets
}

// ReadLogRecords reads every record of a record log in order.
func (h *TestHelper) ReadLogRecords(path string) []twitter.Tweet {
	reader, err := tweetlog.OpenReader(path)
	if err != nil {
		h.t.Fatalf("Failed to open record log %s: %v", path, err)
	}
	defer reader.Close()

	var tweets []twitter.Tweet
	for reader.Next() {
		tweets = append(tweets, reader.Tweet())
	}
	if err := reader.Err(); err != nil {
		h.t.Fatalf("Failed to read record log %s: %v", path, err)
	}
	return tweets
}

// ReadCSVRows reads a summary file and returns its rows without the
// header.
func (h *TestHelper) ReadCSVRows(path string) [][]string {
	file, err := os.Open(path)
	if err != nil {
		h.t.Fatalf("Failed to open summary %s: %v", path, err)
	}
	defer file.Close()

	rows, err := csv.NewReader(file).ReadAll()
	if err != nil {
		h.t.Fatalf("Failed to parse summary %s: %v", path, err)
	}
	if len(rows) == 0 {
		h.t.Fatalf("Summary %s has no header row", path)
	}
	return rows[1:]
}

// AssertFileExists checks if a file exists
func (h *TestHelper) AssertFileExists(path string) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		h.t.Errorf("Expected file to exist: %s", path)
	}
}

// AssertFileNotExists checks if a file does not exist
func (h *TestHelper) AssertFileNotExists(path string) {
	if _, err := os.Stat(path); err == nil {
		h.t.Errorf("Expected file to not exist: %s", path)
	}
}

// TempPath returns a path inside the test's temp directory.
func (h *TestHelper) TempPath(name string) string {
	return filepath.Join(h.tempDir, name)
}
