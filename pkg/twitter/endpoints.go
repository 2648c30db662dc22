package twitter

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

const (
	// DefaultBaseURL is the base URL of the X API.
	DefaultBaseURL = "https://api.twitter.com"

	// UserTweetsEndpoint is the endpoint pattern for a user's timeline.
	// The single placeholder is the numeric user id.
	UserTweetsEndpoint = "/2/users/%s/tweets"

	// MinPageSize is the smallest page size the timeline endpoint accepts.
	MinPageSize = 5

	// MaxPageSize is the largest page size the timeline endpoint accepts.
	MaxPageSize = 100
)

// UserTweetsOpts carries the query parameters of one timeline page request.
type UserTweetsOpts struct {
	// PaginationToken is the cursor of the page to fetch; empty requests
	// the first page.
	PaginationToken string

	// MaxResults is the page size. Values outside the endpoint's accepted
	// range are clamped; zero omits the parameter.
	MaxResults int

	// TweetFields lists the optional tweet fields to include.
	TweetFields []string

	// Excludes lists tweet classes to leave out (replies, retweets).
	Excludes []string
}

// UserTweetsURL constructs the URL for fetching one page of a user's
// timeline.
func UserTweetsURL(baseURL, userID string, opts UserTweetsOpts) string {
	params := url.Values{}

	if opts.MaxResults > 0 {
		params.Set("max_results", strconv.Itoa(ClampPageSize(opts.MaxResults)))
	}
	if opts.PaginationToken != "" {
		params.Set("pagination_token", opts.PaginationToken)
	}
	if len(opts.TweetFields) > 0 {
		params.Set("tweet.fields", strings.Join(opts.TweetFields, ","))
	}
	if len(opts.Excludes) > 0 {
		params.Set("exclude", strings.Join(opts.Excludes, ","))
	}

	endpoint := fmt.Sprintf(UserTweetsEndpoint, userID)
	if len(params) == 0 {
		return baseURL + endpoint
	}
	return fmt.Sprintf("%s%s?%s", baseURL, endpoint, params.Encode())
}

// ClampPageSize forces a page size into the range the timeline endpoint
// accepts.
func ClampPageSize(n int) int {
	if n < MinPageSize {
		return MinPageSize
	}
	if n > MaxPageSize {
		return MaxPageSize
	}
	return n
}

// StatusURL constructs the public permalink for a tweet.
func StatusURL(handle, tweetID string) string {
	if tweetID == "" {
		return ""
	}
	return fmt.Sprintf("https://twitter.com/%s/status/%s", handle, tweetID)
}

// IsValidHandle checks if a handle is valid according to X username rules.
func IsValidHandle(handle string) bool {
	if handle == "" || len(handle) > 15 {
		return false
	}

	// X usernames can only contain letters, numbers, and underscores
	for _, char := range handle {
		if !((char >= 'a' && char <= 'z') ||
			(char >= 'A' && char <= 'Z') ||
			(char >= '0' && char <= '9') ||
			char == '_') {
			return false
		}
	}

	return true
}

// SanitizeHandle strips the decorations people paste along with a handle.
func SanitizeHandle(handle string) string {
	if handle == "" {
		return ""
	}

	// Remove @ symbol if present at the beginning
	if handle[0] == '@' {
		handle = handle[1:]
	}

	// Remove any trailing slashes or spaces
	for len(handle) > 0 && (handle[len(handle)-1] == '/' || handle[len(handle)-1] == ' ') {
		handle = handle[:len(handle)-1]
	}

	return handle
}

// IsValidUserID checks if a user id is a plausible numeric API id.
func IsValidUserID(userID string) bool {
	if userID == "" {
		return false
	}
	for _, char := range userID {
		if char < '0' || char > '9' {
			return false
		}
	}
	return true
}
