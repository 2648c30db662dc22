package aggregate

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// csvHeader is the header row of every summary file.
var csvHeader = []string{"key", "count", "last_seen_at", "last_seen_id", "permalink"}

// WriteCSV writes one summary table to path. The rows are staged to a
// temp file in the target directory and renamed over the final path only
// after a clean flush, so a failed write leaves no torn output behind.
func WriteCSV(path string, rows []SummaryRow) error {
	tmpPath, err := stageCSV(path, rows)
	if err != nil {
		return err
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to move summary into place: %w", err)
	}

	return nil
}

// WriteSummaries writes both summary tables. Both files are staged before
// either is moved into place, so an encoding failure on the second table
// cannot leave the first one already replaced.
func WriteSummaries(mentionsPath, annotationsPath string, mentions, annotations []SummaryRow) error {
	mentionsTmp, err := stageCSV(mentionsPath, mentions)
	if err != nil {
		return err
	}

	annotationsTmp, err := stageCSV(annotationsPath, annotations)
	if err != nil {
		os.Remove(mentionsTmp)
		return err
	}

	if err := os.Rename(mentionsTmp, mentionsPath); err != nil {
		os.Remove(mentionsTmp)
		os.Remove(annotationsTmp)
		return fmt.Errorf("failed to move summary into place: %w", err)
	}
	if err := os.Rename(annotationsTmp, annotationsPath); err != nil {
		os.Remove(annotationsTmp)
		return fmt.Errorf("failed to move summary into place: %w", err)
	}

	return nil
}

// stageCSV encodes one summary table to a temp file next to path and
// returns the temp file's name.
func stageCSV(path string, rows []SummaryRow) (string, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	writer := csv.NewWriter(tmp)
	if err := writer.Write(csvHeader); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return "", fmt.Errorf("failed to write summary header: %w", err)
	}

	for _, row := range rows {
		record := []string{
			row.Key,
			strconv.Itoa(row.Count),
			row.LastSeenAt.UTC().Format(time.RFC3339),
			row.LastSeenID,
			row.Permalink,
		}
		if err := writer.Write(record); err != nil {
			tmp.Close()
			os.Remove(tmpPath)
			return "", fmt.Errorf("failed to write summary row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return "", fmt.Errorf("failed to flush summary: %w", err)
	}

	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return "", fmt.Errorf("failed to sync summary: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("failed to close summary: %w", err)
	}

	return tmpPath, nil
}
