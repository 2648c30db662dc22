package fetcher

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"xscraper/pkg/config"
	"xscraper/pkg/logger"
	"xscraper/pkg/runmeta"
	"xscraper/pkg/tweetlog"
	"xscraper/pkg/twitter"
	"xscraper/pkg/ui"
)

// mockTwitterClient is a mock implementation of the TwitterClient interface
type mockTwitterClient struct {
	fetchUserTweets func(userID string, opts twitter.UserTweetsOpts) (*twitter.Page, error)
	calls           []twitter.UserTweetsOpts
}

func (m *mockTwitterClient) FetchUserTweets(userID string, opts twitter.UserTweetsOpts) (*twitter.Page, error) {
	m.calls = append(m.calls, opts)
	if m.fetchUserTweets != nil {
		return m.fetchUserTweets(userID, opts)
	}
	return &twitter.Page{Meta: &twitter.Meta{}}, nil
}

// scriptedClient serves pages in order and keeps serving the last one.
func scriptedClient(pages ...*twitter.Page) *mockTwitterClient {
	call := 0
	m := &mockTwitterClient{}
	m.fetchUserTweets = func(userID string, opts twitter.UserTweetsOpts) (*twitter.Page, error) {
		page := pages[len(pages)-1]
		if call < len(pages) {
			page = pages[call]
		}
		call++
		return page, nil
	}
	return m
}

func makePage(nextToken string, ids ...string) *twitter.Page {
	page := &twitter.Page{Meta: &twitter.Meta{ResultCount: len(ids), NextToken: nextToken}}
	for _, id := range ids {
		page.Data = append(page.Data, twitter.Tweet{
			ID:        id,
			Text:      "tweet " + id,
			CreatedAt: "2022-10-01T10:00:00.000Z",
		})
	}
	return page
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Output.Directory = t.TempDir()
	cfg.Notifications.Enabled = false
	return cfg
}

func newTestFetcher(t *testing.T, cfg *config.Config, client TwitterClient) *Fetcher {
	t.Helper()
	ui.SetQuietMode(true)
	t.Cleanup(func() { ui.SetQuietMode(false) })

	return &Fetcher{
		client:   client,
		config:   cfg,
		logger:   logger.NewTestLogger(),
		notifier: ui.NewNotifier(),
	}
}

func TestNew(t *testing.T) {
	cfg := testConfig(t)
	cfg.Twitter.BearerToken = "test-token"

	f, err := New(cfg)
	require.NoError(t, err)
	assert.NotNil(t, f.client)
	assert.NotNil(t, f.logger)
	assert.NotNil(t, f.notifier)
	assert.Equal(t, cfg, f.config)
}

func TestFetchWritesTimelineToLog(t *testing.T) {
	cfg := testConfig(t)
	client := scriptedClient(
		makePage("cursor-1", "103", "102", "101"),
		makePage("", "100", "99"),
	)
	f := newTestFetcher(t, cfg, client)

	written, err := f.Fetch(context.Background(), "2244994945", 50)
	require.NoError(t, err)
	assert.Equal(t, 5, written)

	records, err := tweetlog.ReadAll(cfg.TweetsPath())
	require.NoError(t, err)
	require.Len(t, records, 5)
	assert.Equal(t, "103", records[0].ID)
	assert.Equal(t, "99", records[4].ID)
	assert.Equal(t, "cursor-1", records[0].NextToken, "items carry the cursor their page produced")
	assert.Equal(t, "", records[4].NextToken)

	// Request shape: first page unanchored, second anchored on the cursor
	require.Len(t, client.calls, 2)
	assert.Equal(t, "", client.calls[0].PaginationToken)
	assert.Equal(t, "cursor-1", client.calls[1].PaginationToken)
	assert.Equal(t, twitter.ClampPageSize(50), client.calls[0].MaxResults)
	assert.Equal(t, cfg.Fetch.TweetFields, client.calls[0].TweetFields)
	assert.Equal(t, cfg.Fetch.Excludes, client.calls[0].Excludes)

	manifest, err := runmeta.Load(cfg.TweetsPath())
	require.NoError(t, err)
	require.NotNil(t, manifest)
	assert.NotEmpty(t, manifest.RunID)
	assert.Equal(t, "2244994945", manifest.UserID)
	assert.Equal(t, 5, manifest.ItemsWritten)
	assert.Equal(t, 2, manifest.PagesFetched)
	assert.Equal(t, "cursor_absent", manifest.StopReason)
	assert.Greater(t, manifest.LogSizeBytes, int64(0))
}

func TestFetchAppendsAcrossRuns(t *testing.T) {
	cfg := testConfig(t)

	f := newTestFetcher(t, cfg, scriptedClient(makePage("", "2", "1")))
	written, err := f.Fetch(context.Background(), "100", 50)
	require.NoError(t, err)
	require.Equal(t, 2, written)

	f = newTestFetcher(t, cfg, scriptedClient(makePage("", "4", "3")))
	written, err = f.Fetch(context.Background(), "100", 50)
	require.NoError(t, err)
	require.Equal(t, 2, written)

	records, err := tweetlog.ReadAll(cfg.TweetsPath())
	require.NoError(t, err)
	require.Len(t, records, 4)
	assert.Equal(t, "2", records[0].ID)
	assert.Equal(t, "4", records[2].ID)
}

func TestFetchHonorsBudget(t *testing.T) {
	cfg := testConfig(t)
	cursor := 0
	client := &mockTwitterClient{}
	client.fetchUserTweets = func(userID string, opts twitter.UserTweetsOpts) (*twitter.Page, error) {
		cursor++
		ids := make([]string, opts.MaxResults)
		for i := range ids {
			ids[i] = fmt.Sprintf("%d-%d", cursor, i)
		}
		return makePage(fmt.Sprintf("cursor-%d", cursor), ids...), nil
	}
	f := newTestFetcher(t, cfg, client)

	written, err := f.Fetch(context.Background(), "100", 7)
	require.NoError(t, err)
	assert.Equal(t, 7, written)

	manifest, err := runmeta.Load(cfg.TweetsPath())
	require.NoError(t, err)
	assert.Equal(t, "budget_reached", manifest.StopReason)
	assert.Equal(t, 1, manifest.PagesFetched)
}

func TestFetchEmptyTimeline(t *testing.T) {
	cfg := testConfig(t)
	f := newTestFetcher(t, cfg, scriptedClient(&twitter.Page{Meta: &twitter.Meta{ResultCount: 0}}))

	written, err := f.Fetch(context.Background(), "100", 50)
	require.NoError(t, err)
	assert.Equal(t, 0, written)

	info, err := os.Stat(cfg.TweetsPath())
	require.NoError(t, err, "the record log is created even when nothing is written")
	assert.Equal(t, int64(0), info.Size())

	manifest, err := runmeta.Load(cfg.TweetsPath())
	require.NoError(t, err)
	assert.Equal(t, 0, manifest.ItemsWritten)
	assert.Equal(t, "cursor_absent", manifest.StopReason)
}

func TestFetchProtocolErrorKeepsWrittenItems(t *testing.T) {
	cfg := testConfig(t)
	client := scriptedClient(
		makePage("cursor-1", "2", "1"),
		&twitter.Page{Data: []twitter.Tweet{{ID: "0"}}}, // meta missing
	)
	f := newTestFetcher(t, cfg, client)

	written, err := f.Fetch(context.Background(), "100", 50)
	require.Error(t, err)
	assert.Equal(t, 2, written)

	var apiErr *twitter.Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, twitter.ErrorTypeParsing, apiErr.Type)
	assert.False(t, errors.Is(err, tweetlog.ErrLogWrite), "protocol errors are not storage errors")
	assert.Contains(t, err.Error(), "after 2 items")

	// The two good items survive; the bad page contributed nothing
	records, readErr := tweetlog.ReadAll(cfg.TweetsPath())
	require.NoError(t, readErr)
	require.Len(t, records, 2)

	manifest, manErr := runmeta.Load(cfg.TweetsPath())
	require.NoError(t, manErr)
	assert.Equal(t, 2, manifest.ItemsWritten)
	assert.Equal(t, "error", manifest.StopReason)
}

func TestFetchUpstreamErrorPropagates(t *testing.T) {
	cfg := testConfig(t)
	authErr := &twitter.Error{Type: twitter.ErrorTypeAuth, Message: "invalid bearer token", Code: 401}
	client := &mockTwitterClient{
		fetchUserTweets: func(userID string, opts twitter.UserTweetsOpts) (*twitter.Page, error) {
			return nil, authErr
		},
	}
	f := newTestFetcher(t, cfg, client)

	written, err := f.Fetch(context.Background(), "100", 50)
	require.Error(t, err)
	assert.Equal(t, 0, written)
	assert.True(t, errors.Is(err, authErr))
}

func TestFetchContextCanceled(t *testing.T) {
	cfg := testConfig(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	f := newTestFetcher(t, cfg, scriptedClient(makePage("cursor-1", "1")))

	written, err := f.Fetch(ctx, "100", 50)
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Equal(t, 0, written)
}

func TestFetchCancelBetweenPages(t *testing.T) {
	cfg := testConfig(t)
	ctx, cancel := context.WithCancel(context.Background())

	calls := 0
	client := &mockTwitterClient{}
	client.fetchUserTweets = func(userID string, opts twitter.UserTweetsOpts) (*twitter.Page, error) {
		calls++
		cancel() // takes effect before the next page request
		return makePage(fmt.Sprintf("cursor-%d", calls), "a", "b"), nil
	}
	f := newTestFetcher(t, cfg, client)

	written, err := f.Fetch(ctx, "100", 50)
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Equal(t, 2, written, "the page in flight still lands in the log")
	assert.Equal(t, 1, calls)
}

func TestFetchOpenLogFailure(t *testing.T) {
	cfg := testConfig(t)
	// A directory where the log file should be makes the open fail
	require.NoError(t, os.MkdirAll(cfg.TweetsPath(), 0755))

	f := newTestFetcher(t, cfg, scriptedClient(makePage("", "1")))

	written, err := f.Fetch(context.Background(), "100", 50)
	require.Error(t, err)
	assert.Equal(t, 0, written)
	assert.True(t, strings.Contains(err.Error(), "record log"))
}
