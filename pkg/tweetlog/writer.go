package tweetlog

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"xscraper/pkg/twitter"
)

// ErrLogWrite marks a failure to append to the record log. Callers match
// it with errors.Is to tell storage failures apart from upstream ones.
var ErrLogWrite = errors.New("record log write failed")

// Writer appends tweets to the record log, one JSON object per line.
// The log is strictly append-only: lines are never rewritten, reordered,
// or truncated, and each append hits the file before Append returns, so
// an interrupted run leaves a valid prefix behind.
type Writer struct {
	mu      sync.Mutex
	file    *os.File
	path    string
	written int
}

// OpenWriter opens the record log for appending, creating the file and
// its directory when missing.
func OpenWriter(path string) (*Writer, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open record log: %w", err)
	}

	return &Writer{file: file, path: path}, nil
}

// Append writes one tweet as a single JSON line.
func (w *Writer) Append(tweet twitter.Tweet) error {
	data, err := json.Marshal(tweet)
	if err != nil {
		return fmt.Errorf("%w: marshal tweet %s: %v", ErrLogWrite, tweet.ID, err)
	}
	data = append(data, '\n')

	w.mu.Lock()
	defer w.mu.Unlock()

	if _, err := w.file.Write(data); err != nil {
		return fmt.Errorf("%w: append tweet %s: %v", ErrLogWrite, tweet.ID, err)
	}
	w.written++

	return nil
}

// Written returns the number of records appended through this writer.
func (w *Writer) Written() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.written
}

// Path returns the log file path.
func (w *Writer) Path() string {
	return w.path
}

// Sync flushes the log to stable storage.
func (w *Writer) Sync() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.file.Sync(); err != nil {
		return fmt.Errorf("%w: sync: %v", ErrLogWrite, err)
	}
	return nil
}

// Close closes the underlying file.
func (w *Writer) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.file.Close()
}
