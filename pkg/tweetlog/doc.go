// Package tweetlog persists fetched tweets as an append-only record log.
//
// The log is NDJSON: one tweet per line, UTF-8, written in yield order.
// Records are immutable once written. Re-running a fetch appends to the
// same log, including possible duplicates across runs; nothing is ever
// deduplicated, rewritten, or compacted.
//
// Writer appends records one line at a time, so a run that dies mid-fetch
// leaves a valid log prefix. Reader streams records back in append order
// and fails the whole pass on the first malformed line, reporting it as a
// MalformedRecordError with the offending line number.
package tweetlog
