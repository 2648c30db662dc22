package runmeta

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManifestRoundTrip(t *testing.T) {
	dir := t.TempDir()
	logPath := filepath.Join(dir, "tweets.jsonl")
	require.NoError(t, os.WriteFile(logPath, []byte("{\"id\":\"1\"}\n"), 0644))

	manifest := New("run-123", "2244994945")
	manifest.Finish(42, 3, "cursor_absent")
	require.NoError(t, manifest.Save(logPath))

	loaded, err := Load(logPath)
	require.NoError(t, err)
	require.NotNil(t, loaded)

	assert.Equal(t, "run-123", loaded.RunID)
	assert.Equal(t, "2244994945", loaded.UserID)
	assert.Equal(t, 42, loaded.ItemsWritten)
	assert.Equal(t, 3, loaded.PagesFetched)
	assert.Equal(t, "cursor_absent", loaded.StopReason)
	assert.Equal(t, int64(11), loaded.LogSizeBytes)
	assert.Equal(t, manifestVersion, loaded.Version)
	assert.False(t, loaded.StartedAt.IsZero())
	assert.False(t, loaded.FinishedAt.IsZero())
	assert.True(t, loaded.Duration() >= 0)
}

func TestManifestSidecarPath(t *testing.T) {
	assert.Equal(t, "out/tweets.jsonl.meta.json", SidecarPath("out/tweets.jsonl"))
}

func TestLoadMissingManifest(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "tweets.jsonl")

	loaded, err := Load(logPath)
	require.NoError(t, err)
	assert.Nil(t, loaded)
	assert.False(t, Exists(logPath))
}

func TestLoadCorruptManifest(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "tweets.jsonl")
	require.NoError(t, os.WriteFile(SidecarPath(logPath), []byte("{nope"), 0644))

	_, err := Load(logPath)
	require.Error(t, err)
}

func TestSaveReplacesPreviousManifest(t *testing.T) {
	dir := t.TempDir()
	logPath := filepath.Join(dir, "tweets.jsonl")
	require.NoError(t, os.WriteFile(logPath, []byte("x\n"), 0644))

	first := New("run-1", "100")
	first.Finish(1, 1, "budget_reached")
	require.NoError(t, first.Save(logPath))

	second := New("run-2", "100")
	second.Finish(9, 2, "cursor_absent")
	require.NoError(t, second.Save(logPath))

	loaded, err := Load(logPath)
	require.NoError(t, err)
	assert.Equal(t, "run-2", loaded.RunID)
	assert.Equal(t, 9, loaded.ItemsWritten)

	// No temp files survive a save
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, entry.Name())
	}
	assert.ElementsMatch(t, []string{"tweets.jsonl", "tweets.jsonl.meta.json"}, names)
}

func TestSaveWithoutLogFile(t *testing.T) {
	// Manifest can still be written when the log is absent; size stays zero.
	logPath := filepath.Join(t.TempDir(), "tweets.jsonl")

	manifest := New("run-1", "100")
	manifest.Finish(0, 1, "empty_page")
	require.NoError(t, manifest.Save(logPath))

	loaded, err := Load(logPath)
	require.NoError(t, err)
	assert.Equal(t, int64(0), loaded.LogSizeBytes)
	assert.Equal(t, "empty_page", loaded.StopReason)
}

func TestManifestTimestampsAreUTC(t *testing.T) {
	manifest := New("run-1", "100")
	manifest.Finish(0, 0, "cursor_absent")

	_, startOffset := manifest.StartedAt.Zone()
	_, finishOffset := manifest.FinishedAt.Zone()
	assert.Equal(t, 0, startOffset)
	assert.Equal(t, 0, finishOffset)
	assert.Equal(t, time.UTC, manifest.StartedAt.Location())
}
