// Package runmeta records a manifest for each fetch run as a JSON
// sidecar next to the record log. The manifest is purely additive
// observability: nothing reads it on the hot path, but batch tooling
// and tests use it to verify what a run did without replaying the log.
package runmeta

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

const manifestVersion = 1

// Manifest describes a completed fetch run.
type Manifest struct {
	RunID        string    `json:"run_id"`
	UserID       string    `json:"user_id"`
	ItemsWritten int       `json:"items_written"`
	PagesFetched int       `json:"pages_fetched"`
	StopReason   string    `json:"stop_reason"`
	StartedAt    time.Time `json:"started_at"`
	FinishedAt   time.Time `json:"finished_at"`
	LogSizeBytes int64     `json:"log_size_bytes"`
	Version      int       `json:"version"`
}

// New starts a manifest for a run. FinishedAt stays zero until Finish.
func New(runID, userID string) *Manifest {
	return &Manifest{
		RunID:     runID,
		UserID:    userID,
		StartedAt: time.Now().UTC(),
		Version:   manifestVersion,
	}
}

// Finish records the run outcome.
func (m *Manifest) Finish(itemsWritten, pagesFetched int, stopReason string) {
	m.ItemsWritten = itemsWritten
	m.PagesFetched = pagesFetched
	m.StopReason = stopReason
	m.FinishedAt = time.Now().UTC()
}

// Duration returns how long the run took.
func (m *Manifest) Duration() time.Duration {
	return m.FinishedAt.Sub(m.StartedAt)
}

// SidecarPath returns the manifest path for a record log.
func SidecarPath(logPath string) string {
	return logPath + ".meta.json"
}

// Save writes the manifest next to the record log atomically. The log
// size is measured here so the manifest always reflects the file as it
// existed when the manifest was written.
func (m *Manifest) Save(logPath string) error {
	if info, err := os.Stat(logPath); err == nil {
		m.LogSizeBytes = info.Size()
	}

	sidecarPath := SidecarPath(logPath)
	tempPath := sidecarPath + ".tmp"

	file, err := os.Create(tempPath)
	if err != nil {
		return fmt.Errorf("failed to create temporary manifest file: %w", err)
	}

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(m); err != nil {
		file.Close()
		os.Remove(tempPath)
		return fmt.Errorf("failed to encode manifest: %w", err)
	}

	if err := file.Sync(); err != nil {
		file.Close()
		os.Remove(tempPath)
		return fmt.Errorf("failed to sync manifest file: %w", err)
	}

	if err := file.Close(); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("failed to close manifest file: %w", err)
	}

	if err := os.Rename(tempPath, sidecarPath); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("failed to replace manifest file: %w", err)
	}

	return nil
}

// Load reads the manifest for a record log. Returns nil with no error
// when no manifest exists.
func Load(logPath string) (*Manifest, error) {
	data, err := os.ReadFile(SidecarPath(logPath))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read manifest file: %w", err)
	}

	var manifest Manifest
	if err := json.Unmarshal(data, &manifest); err != nil {
		return nil, fmt.Errorf("failed to unmarshal manifest: %w", err)
	}

	return &manifest, nil
}

// Exists reports whether a manifest file is present for the log.
func Exists(logPath string) bool {
	_, err := os.Stat(SidecarPath(logPath))
	return err == nil
}
