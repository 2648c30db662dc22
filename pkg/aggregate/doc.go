// Package aggregate turns the record log into ranked summary tables.
//
// Summarize streams the log once, derives mention and annotation
// occurrences from each record's entity payload, and groups them by exact
// key (mention username, annotation normalized text). Each group carries
// its occurrence count, the newest creation timestamp, the newest tweet
// id in snowflake order, and a permalink to that tweet. Groups are ranked
// by count descending with ties broken by key ascending, which keeps
// re-aggregation of an unchanged log byte-identical.
//
// The pass is all-or-nothing: one malformed record aborts it, and the CSV
// writers stage output to temp files before renaming them into place, so
// a failed run never replaces or truncates existing summaries.
package aggregate
