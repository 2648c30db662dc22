// Package twitter provides a client for the X (Twitter) v2 API.
//
// This package includes:
//   - A bearer-token HTTP client with proper headers and error handling
//   - Type-safe models for timeline responses (tweets, entities, metadata)
//   - Helper functions for constructing API endpoints and permalinks
//   - Built-in error types for better error handling
//   - Snowflake id ordering helpers
//
// Example usage:
//
//	client := twitter.NewClient(&cfg.Twitter, log)
//
//	// Fetch one timeline page
//	page, err := client.FetchUserTweets("2244994945", twitter.UserTweetsOpts{
//	    MaxResults:  100,
//	    TweetFields: []string{"entities", "created_at"},
//	    Excludes:    []string{"replies"},
//	})
//	if err != nil {
//	    if apiErr, ok := err.(*twitter.Error); ok {
//	        switch apiErr.Type {
//	        case twitter.ErrorTypeAuth:
//	            // Handle authentication error
//	        case twitter.ErrorTypeRateLimit:
//	            // Handle rate limit
//	        }
//	    }
//	}
//
//	// Walk the page
//	for _, tweet := range page.Data {
//	    fmt.Println(tweet.ID, tweet.Text)
//	}
package twitter
