package tweetlog

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"

	"xscraper/pkg/twitter"
)

// MalformedRecordError reports a record log line that does not parse.
// Any malformed line fails the whole read pass; the log is not skimmed
// for salvageable records.
type MalformedRecordError struct {
	Line int
	Err  error
}

func (e *MalformedRecordError) Error() string {
	return fmt.Sprintf("record log line %d: %v", e.Line, e.Err)
}

func (e *MalformedRecordError) Unwrap() error {
	return e.Err
}

// Reader streams records back out of the log in append order.
type Reader struct {
	file    *os.File
	scanner *bufio.Scanner
	line    int
	tweet   twitter.Tweet
	err     error
}

// OpenReader opens the record log for reading.
func OpenReader(path string) (*Reader, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open record log: %w", err)
	}

	scanner := bufio.NewScanner(file)
	// Tweets with full entity payloads can exceed bufio's default token size
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	return &Reader{file: file, scanner: scanner}, nil
}

// Next advances to the next record. It returns false at the end of the
// log or on the first unreadable line, distinguishable through Err.
func (r *Reader) Next() bool {
	if r.err != nil {
		return false
	}

	if !r.scanner.Scan() {
		if err := r.scanner.Err(); err != nil {
			r.err = fmt.Errorf("failed to read record log: %w", err)
		}
		return false
	}
	r.line++

	var tweet twitter.Tweet
	if err := json.Unmarshal(r.scanner.Bytes(), &tweet); err != nil {
		r.err = &MalformedRecordError{Line: r.line, Err: err}
		return false
	}

	r.tweet = tweet
	return true
}

// Tweet returns the record produced by the last successful call to Next.
func (r *Reader) Tweet() twitter.Tweet {
	return r.tweet
}

// Line returns the line number of the current record, starting at 1.
func (r *Reader) Line() int {
	return r.line
}

// Err returns the error that stopped the read pass, or nil at a clean end
// of the log.
func (r *Reader) Err() error {
	return r.err
}

// Close closes the underlying file.
func (r *Reader) Close() error {
	return r.file.Close()
}

// ReadAll loads the whole record log into memory. Convenience for small
// logs and tests; the aggregation path streams through Reader instead.
func ReadAll(path string) ([]twitter.Tweet, error) {
	reader, err := OpenReader(path)
	if err != nil {
		return nil, err
	}
	defer reader.Close()

	var tweets []twitter.Tweet
	for reader.Next() {
		tweets = append(tweets, reader.Tweet())
	}
	if err := reader.Err(); err != nil {
		return nil, err
	}

	return tweets, nil
}
