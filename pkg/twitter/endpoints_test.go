package twitter

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserTweetsURL(t *testing.T) {
	tests := []struct {
		name       string
		userID     string
		opts       UserTweetsOpts
		wantPath   string
		wantParams map[string]string
		skipParams []string
	}{
		{
			name:     "first page with full options",
			userID:   "2244994945",
			opts:     UserTweetsOpts{MaxResults: 100, TweetFields: []string{"entities", "created_at"}, Excludes: []string{"replies"}},
			wantPath: "/2/users/2244994945/tweets",
			wantParams: map[string]string{
				"max_results":  "100",
				"tweet.fields": "entities,created_at",
				"exclude":      "replies",
			},
			skipParams: []string{"pagination_token"},
		},
		{
			name:     "subsequent page carries the cursor",
			userID:   "2244994945",
			opts:     UserTweetsOpts{MaxResults: 50, PaginationToken: "7140dibdnow9c7btw421dyz6jism75z99gyxd8egarsc4"},
			wantPath: "/2/users/2244994945/tweets",
			wantParams: map[string]string{
				"max_results":      "50",
				"pagination_token": "7140dibdnow9c7btw421dyz6jism75z99gyxd8egarsc4",
			},
		},
		{
			name:       "zero page size omits max_results",
			userID:     "123",
			opts:       UserTweetsOpts{},
			wantPath:   "/2/users/123/tweets",
			skipParams: []string{"max_results", "pagination_token", "tweet.fields", "exclude"},
		},
		{
			name:       "page size below the minimum is clamped",
			userID:     "123",
			opts:       UserTweetsOpts{MaxResults: 2},
			wantPath:   "/2/users/123/tweets",
			wantParams: map[string]string{"max_results": "5"},
		},
		{
			name:       "page size above the maximum is clamped",
			userID:     "123",
			opts:       UserTweetsOpts{MaxResults: 500},
			wantPath:   "/2/users/123/tweets",
			wantParams: map[string]string{"max_results": "100"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := UserTweetsURL(DefaultBaseURL, tt.userID, tt.opts)

			parsed, err := url.Parse(result)
			require.NoError(t, err)

			assert.Equal(t, tt.wantPath, parsed.Path)
			for key, want := range tt.wantParams {
				assert.Equal(t, want, parsed.Query().Get(key), "param %s", key)
			}
			for _, key := range tt.skipParams {
				assert.False(t, parsed.Query().Has(key), "param %s should be absent", key)
			}
		})
	}
}

func TestUserTweetsURLCustomBase(t *testing.T) {
	result := UserTweetsURL("http://127.0.0.1:8181", "42", UserTweetsOpts{MaxResults: 10})
	parsed, err := url.Parse(result)
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:8181", parsed.Host)
	assert.Equal(t, "/2/users/42/tweets", parsed.Path)
}

func TestClampPageSize(t *testing.T) {
	tests := []struct {
		in       int
		expected int
	}{
		{1, MinPageSize},
		{4, MinPageSize},
		{5, 5},
		{42, 42},
		{100, 100},
		{101, MaxPageSize},
		{2000, MaxPageSize},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, ClampPageSize(tt.in), "ClampPageSize(%d)", tt.in)
	}
}

func TestStatusURL(t *testing.T) {
	assert.Equal(t,
		"https://twitter.com/robotventures/status/1580661436132757506",
		StatusURL("robotventures", "1580661436132757506"))
	assert.Equal(t, "", StatusURL("robotventures", ""))
}

func TestIsValidHandle(t *testing.T) {
	tests := []struct {
		handle   string
		expected bool
	}{
		{"robotventures", true},
		{"a", true},
		{"user_123", true},
		{"XDevelopers", true},
		{"fifteen_chars15", true},
		{"", false},
		{"sixteen_chars_16", false},
		{"has space", false},
		{"has.dot", false},
		{"@prefixed", false},
	}

	for _, tt := range tests {
		t.Run(tt.handle, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsValidHandle(tt.handle))
		})
	}
}

func TestSanitizeHandle(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		expected string
	}{
		{"plain handle untouched", "robotventures", "robotventures"},
		{"leading at stripped", "@robotventures", "robotventures"},
		{"trailing slash stripped", "robotventures/", "robotventures"},
		{"trailing space stripped", "robotventures ", "robotventures"},
		{"empty stays empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SanitizeHandle(tt.in))
		})
	}
}

func TestIsValidUserID(t *testing.T) {
	assert.True(t, IsValidUserID("2244994945"))
	assert.True(t, IsValidUserID("1"))
	assert.False(t, IsValidUserID(""))
	assert.False(t, IsValidUserID("12a34"))
	assert.False(t, IsValidUserID("-5"))
}
