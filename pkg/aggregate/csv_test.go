package aggregate

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"xscraper/pkg/logger"
)

func sampleRows() []SummaryRow {
	return []SummaryRow{
		{
			Key:        "alice",
			Count:      2,
			LastSeenAt: time.Date(2022, 10, 2, 10, 0, 0, 0, time.UTC),
			LastSeenID: "20",
			Permalink:  "https://twitter.com/testy/status/20",
		},
		{
			Key:        "bob",
			Count:      1,
			LastSeenAt: time.Date(2022, 10, 1, 10, 0, 0, 0, time.UTC),
			LastSeenID: "10",
			Permalink:  "https://twitter.com/testy/status/10",
		},
	}
}

func TestWriteCSVExactBytes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mentions.csv")
	require.NoError(t, WriteCSV(path, sampleRows()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	expected := strings.Join([]string{
		"key,count,last_seen_at,last_seen_id,permalink",
		"alice,2,2022-10-02T10:00:00Z,20,https://twitter.com/testy/status/20",
		"bob,1,2022-10-01T10:00:00Z,10,https://twitter.com/testy/status/10",
		"",
	}, "\n")
	assert.Equal(t, expected, string(data))
}

func TestWriteCSVHeaderOnly(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mentions.csv")
	require.NoError(t, WriteCSV(path, nil))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "key,count,last_seen_at,last_seen_id,permalink\n", string(data))
}

func TestWriteCSVNormalizesToUTC(t *testing.T) {
	offset := time.FixedZone("UTC+2", 2*60*60)
	rows := []SummaryRow{{
		Key:        "alice",
		Count:      1,
		LastSeenAt: time.Date(2022, 10, 2, 12, 0, 0, 0, offset),
		LastSeenID: "20",
		Permalink:  "https://twitter.com/testy/status/20",
	}}

	path := filepath.Join(t.TempDir(), "mentions.csv")
	require.NoError(t, WriteCSV(path, rows))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "2022-10-02T10:00:00Z")
}

func TestWriteCSVCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "nested", "mentions.csv")
	require.NoError(t, WriteCSV(path, sampleRows()))

	_, err := os.Stat(path)
	require.NoError(t, err)
}

func TestWriteCSVReplacesExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mentions.csv")
	require.NoError(t, os.WriteFile(path, []byte("stale garbage\n"), 0644))

	require.NoError(t, WriteCSV(path, sampleRows()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "stale")
	assert.True(t, strings.HasPrefix(string(data), "key,count,"))
}

func TestWriteSummariesWritesBothFiles(t *testing.T) {
	dir := t.TempDir()
	mentionsPath := filepath.Join(dir, "mentions.csv")
	annotationsPath := filepath.Join(dir, "annotations.csv")

	require.NoError(t, WriteSummaries(mentionsPath, annotationsPath, sampleRows(), nil))

	mentions, err := os.ReadFile(mentionsPath)
	require.NoError(t, err)
	assert.Contains(t, string(mentions), "alice,2,")

	annotations, err := os.ReadFile(annotationsPath)
	require.NoError(t, err)
	assert.Equal(t, "key,count,last_seen_at,last_seen_id,permalink\n", string(annotations))
}

func TestWriteSummariesLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	mentionsPath := filepath.Join(dir, "mentions.csv")
	annotationsPath := filepath.Join(dir, "annotations.csv")

	require.NoError(t, WriteSummaries(mentionsPath, annotationsPath, sampleRows(), sampleRows()))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, entry.Name())
	}
	assert.ElementsMatch(t, []string{"mentions.csv", "annotations.csv"}, names)
}

func TestSummarizeThenWriteIsIdempotent(t *testing.T) {
	logPath := writeLog(t,
		mentionTweet("10", "2022-10-01T10:00:00Z", "alice"),
		mentionTweet("20", "2022-10-02T10:00:00Z", "alice", "bob"),
	)

	dir := t.TempDir()
	mentionsPath := filepath.Join(dir, "mentions.csv")
	annotationsPath := filepath.Join(dir, "annotations.csv")

	run := func() ([]byte, []byte) {
		s := New("testy", logger.NewTestLogger())
		mentions, annotations, err := s.Summarize(logPath)
		require.NoError(t, err)
		require.NoError(t, WriteSummaries(mentionsPath, annotationsPath, mentions, annotations))

		m, err := os.ReadFile(mentionsPath)
		require.NoError(t, err)
		a, err := os.ReadFile(annotationsPath)
		require.NoError(t, err)
		return m, a
	}

	firstMentions, firstAnnotations := run()
	secondMentions, secondAnnotations := run()
	assert.Equal(t, firstMentions, secondMentions, "re-aggregating an unchanged log is byte-identical")
	assert.Equal(t, firstAnnotations, secondAnnotations)
}
