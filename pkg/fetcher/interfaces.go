package fetcher

import (
	"context"

	"xscraper/pkg/twitter"
)

// TwitterClient defines the interface for X API operations
type TwitterClient interface {
	FetchUserTweets(userID string, opts twitter.UserTweetsOpts) (*twitter.Page, error)
}

// pageFetcher adapts the timeline client to the pagination engine. The
// user id and field selections are fixed for the run; the engine varies
// only the cursor and page size. The context is checked before each
// page request so cancellation takes effect between pages.
type pageFetcher struct {
	ctx         context.Context
	client      TwitterClient
	userID      string
	tweetFields []string
	excludes    []string
}

func (f *pageFetcher) FetchPage(cursor string, pageSize int) (*twitter.Page, error) {
	if err := f.ctx.Err(); err != nil {
		return nil, err
	}
	return f.client.FetchUserTweets(f.userID, twitter.UserTweetsOpts{
		PaginationToken: cursor,
		MaxResults:      pageSize,
		TweetFields:     f.tweetFields,
		Excludes:        f.excludes,
	})
}
