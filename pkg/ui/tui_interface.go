package ui

// FetchTUI is the narrow surface the fetcher uses to report progress
// to a full-screen terminal UI
type FetchTUI interface {
	StartRun(runID, userID string, budget int)
	PageFetched(page int, nextCursor string)
	ItemWritten(total int)
	Finish(written, pages int, stopReason string)
	LogInfo(format string, args ...interface{})
	LogSuccess(format string, args ...interface{})
	LogWarning(format string, args ...interface{})
	LogError(format string, args ...interface{})
}
