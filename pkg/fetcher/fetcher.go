package fetcher

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"xscraper/pkg/config"
	"xscraper/pkg/logger"
	"xscraper/pkg/pagination"
	"xscraper/pkg/runmeta"
	"xscraper/pkg/tweetlog"
	"xscraper/pkg/twitter"
	"xscraper/pkg/ui"
)

// Fetcher orchestrates a timeline fetch: it walks a user's tweets
// through the pagination engine and appends each one to the record log.
type Fetcher struct {
	client   TwitterClient
	config   *config.Config
	logger   logger.Logger
	notifier *ui.Notifier
	tui      ui.FetchTUI
}

// New creates a new Fetcher instance
func New(cfg *config.Config) (*Fetcher, error) {
	log := logger.GetLogger()
	client := twitter.NewClient(&cfg.Twitter, log)

	return &Fetcher{
		client:   client,
		config:   cfg,
		logger:   log,
		notifier: ui.NewNotifier(),
	}, nil
}

// SetTUI routes progress reporting to a terminal UI.
func (f *Fetcher) SetTUI(tui ui.FetchTUI) {
	f.tui = tui
}

// Fetch walks the user's timeline and appends every yielded tweet to
// the record log, one JSON line per tweet, in yield order. It returns
// the number of tweets written; on error, tweets already flushed remain
// valid in the log. A run manifest is written next to the log whether
// the run succeeds or fails.
func (f *Fetcher) Fetch(ctx context.Context, userID string, maxResults int) (int, error) {
	runID := uuid.New().String()
	logPath := f.config.TweetsPath()

	runLog := f.logger.WithFields(map[string]interface{}{
		"run_id":  runID,
		"user_id": userID,
	})

	runLog.InfoWithFields("Starting fetch run", map[string]interface{}{
		"max_results": maxResults,
		"log_path":    logPath,
	})

	if f.tui != nil {
		f.tui.StartRun(runID, userID, maxResults)
		f.tui.LogInfo("Fetching timeline for user %s", userID)
	}

	var progress *ui.FetchProgress
	if f.tui == nil && !ui.IsQuietMode() {
		debugMode := strings.ToLower(f.config.Logging.Level) == "debug"
		progress = ui.NewFetchProgress(userID, maxResults, debugMode)
	}

	manifest := runmeta.New(runID, userID)

	writer, err := tweetlog.OpenWriter(logPath)
	if err != nil {
		runLog.WithError(err).Error("Failed to open record log")
		return 0, fmt.Errorf("failed to open record log: %w", err)
	}

	pages := &pageFetcher{
		ctx:         ctx,
		client:      f.client,
		userID:      userID,
		tweetFields: f.config.Fetch.TweetFields,
		excludes:    f.config.Fetch.Excludes,
	}
	pager := pagination.New(pages, maxResults, f.logger)

	written := 0
	pagesSeen := 0
	var appendErr error
	for pager.Next() {
		tweet := pager.Item()
		if err := writer.Append(tweet); err != nil {
			appendErr = err
			break
		}
		written++

		if pager.Pages() != pagesSeen {
			pagesSeen = pager.Pages()
			logger.LogFetchProgress(userID, written, maxResults)
			if f.tui != nil {
				f.tui.PageFetched(pagesSeen, tweet.NextToken)
			} else if progress != nil {
				progress.ScanningPage(pagesSeen)
			}
		}

		if f.tui != nil {
			f.tui.ItemWritten(written)
		} else if progress != nil {
			progress.RecordWritten(written)
		}
	}

	closeErr := writer.Close()

	stopReason := pager.StopReason().String()
	if appendErr != nil {
		stopReason = "log_write_failed"
	}

	manifest.Finish(written, pager.Pages(), stopReason)
	if err := manifest.Save(logPath); err != nil {
		runLog.WithError(err).Warn("Failed to write run manifest")
	}

	logger.LogRunSummary(runID, pager.Pages(), written, stopReason)

	if appendErr != nil {
		runLog.WithError(appendErr).ErrorWithFields("Record log became unwritable", map[string]interface{}{
			"items_written": written,
			"pages":         pager.Pages(),
		})
		f.reportFailure(progress, written, appendErr)
		return written, appendErr
	}

	if err := pager.Err(); err != nil {
		runLog.WithError(err).ErrorWithFields("Page walk failed, keeping items already written", map[string]interface{}{
			"items_written": written,
			"pages":         pager.Pages(),
		})
		f.reportFailure(progress, written, err)
		return written, fmt.Errorf("timeline page walk failed after %d items: %w", written, err)
	}

	if closeErr != nil {
		runLog.WithError(closeErr).Error("Failed to close record log")
		return written, fmt.Errorf("failed to close record log: %w", closeErr)
	}

	runLog.InfoWithFields("Fetch run completed", map[string]interface{}{
		"items_written": written,
		"pages":         pager.Pages(),
		"stop_reason":   stopReason,
		"action":        "fetch_complete",
	})

	if f.tui != nil {
		f.tui.Finish(written, pager.Pages(), stopReason)
	} else if progress != nil {
		progress.Complete(written, pager.Pages(), stopReason)
	}

	if f.config.Notifications.Enabled && f.config.Notifications.OnComplete {
		f.notifier.SendSuccess("xscraper", fmt.Sprintf("Fetched %d tweets in %d pages", written, pager.Pages()))
	}

	return written, nil
}

func (f *Fetcher) reportFailure(progress *ui.FetchProgress, written int, err error) {
	if f.tui != nil {
		f.tui.LogError("Fetch failed after %d tweets: %v", written, err)
	} else if progress != nil {
		progress.Fail(err)
	}
	if f.config.Notifications.Enabled && f.config.Notifications.OnError {
		f.notifier.SendError("xscraper", fmt.Sprintf("Fetch failed after %d tweets: %v", written, err))
	}
}
