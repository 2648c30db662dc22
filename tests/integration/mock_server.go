package integration

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"

	"xscraper/pkg/twitter"
)

// MockAPIServer simulates the X API v2 endpoints the tool depends on: the
// user tweets timeline with cursor pagination, and single-tweet lookup.
// Timelines are served newest first from an in-memory corpus; cursors
// encode the offset of the next page. Knobs let tests force the upstream
// pathologies the pagination engine guards against.
type MockAPIServer struct {
	server *httptest.Server

	mu          sync.RWMutex
	timelines   map[string][]twitter.Tweet // user id -> corpus, newest first
	errorCodes  map[string]int             // user id -> forced status code
	failAfter   map[string]int             // user id -> pages served before 500s
	stallAfter  map[string]int             // user id -> pages served before cursors stall
	emptyFrom   map[string]int             // user id -> first page served empty
	pagesServed map[string]int             // user id -> timeline requests handled
	lastCursor  map[string]string          // user id -> last pagination_token seen

	requestCount int32
}

// NewMockAPIServer creates a mock API server with no timelines loaded.
func NewMockAPIServer() *MockAPIServer {
	m := &MockAPIServer{
		timelines:   make(map[string][]twitter.Tweet),
		errorCodes:  make(map[string]int),
		failAfter:   make(map[string]int),
		stallAfter:  make(map[string]int),
		emptyFrom:   make(map[string]int),
		pagesServed: make(map[string]int),
		lastCursor:  make(map[string]string),
	}

	mux := http.NewServeMux()

	// User timeline endpoint: /2/users/{id}/tweets
	mux.HandleFunc("/2/users/", m.handleUserTweets)

	// Single tweet lookup: /2/tweets/{id}
	mux.HandleFunc("/2/tweets/", m.handleTweetLookup)

	m.server = httptest.NewServer(mux)
	return m
}

// SetTimeline loads the full corpus served for a user, newest first.
func (m *MockAPIServer) SetTimeline(userID string, tweets []twitter.Tweet) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.timelines[userID] = tweets
}

// SetErrorResponse forces every timeline request for the user to return
// the given status code until cleared.
func (m *MockAPIServer) SetErrorResponse(userID string, code int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errorCodes[userID] = code
}

// ClearErrorResponse removes a forced error for the user.
func (m *MockAPIServer) ClearErrorResponse(userID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.errorCodes, userID)
}

// SetFailAfterPages serves the first n timeline pages normally and
// answers every request after that with a 500.
func (m *MockAPIServer) SetFailAfterPages(userID string, n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failAfter[userID] = n
}

// SetStallAfterPage makes every timeline page after the nth echo the
// cursor that requested it as the next cursor, so a client that keeps
// following it would refetch the same page forever.
func (m *MockAPIServer) SetStallAfterPage(userID string, n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stallAfter[userID] = n
}

// SetEmptyPagesFrom serves zero tweets from the given page on while the
// next cursor keeps advancing, mimicking an upstream that never reports
// the end of the data.
func (m *MockAPIServer) SetEmptyPagesFrom(userID string, page int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.emptyFrom[userID] = page
}

// GetURL returns the base URL of the mock server.
func (m *MockAPIServer) GetURL() string {
	return m.server.URL
}

// GetRequestCount returns the total number of requests handled.
func (m *MockAPIServer) GetRequestCount() int {
	return int(atomic.LoadInt32(&m.requestCount))
}

// GetPagesServed returns the number of timeline pages served for a user.
func (m *MockAPIServer) GetPagesServed(userID string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.pagesServed[userID]
}

// GetLastCursor returns the last pagination token a client sent for the
// user's timeline.
func (m *MockAPIServer) GetLastCursor(userID string) string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.lastCursor[userID]
}

// ResetCounters clears the request counters and pagination state.
func (m *MockAPIServer) ResetCounters() {
	atomic.StoreInt32(&m.requestCount, 0)
	m.mu.Lock()
	m.pagesServed = make(map[string]int)
	m.lastCursor = make(map[string]string)
	m.mu.Unlock()
}

// Close shuts down the mock server.
func (m *MockAPIServer) Close() {
	m.server.Close()
}

// handleUserTweets serves one page of a user's timeline.
func (m *MockAPIServer) handleUserTweets(w http.ResponseWriter, r *http.Request) {
	atomic.AddInt32(&m.requestCount, 1)

	if !authorized(r) {
		m.sendError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	userID := strings.TrimSuffix(strings.TrimPrefix(r.URL.Path, "/2/users/"), "/tweets")
	cursor := r.URL.Query().Get("pagination_token")

	pageSize := 10 // endpoint default
	if raw := r.URL.Query().Get("max_results"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < twitter.MinPageSize || n > twitter.MaxPageSize {
			m.sendError(w, http.StatusBadRequest, "The `max_results` query parameter value is not valid")
			return
		}
		pageSize = n
	}

	m.mu.Lock()
	m.pagesServed[userID]++
	pageNum := m.pagesServed[userID]
	m.lastCursor[userID] = cursor
	corpus := m.timelines[userID]
	forcedCode := m.errorCodes[userID]
	failAfter := m.failAfter[userID]
	stallAfter := m.stallAfter[userID]
	emptyFrom := m.emptyFrom[userID]
	m.mu.Unlock()

	if forcedCode > 0 {
		m.sendError(w, forcedCode, fmt.Sprintf("forced error for user %s", userID))
		return
	}
	if failAfter > 0 && pageNum > failAfter {
		m.sendError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	if corpus == nil {
		m.sendError(w, http.StatusNotFound, fmt.Sprintf("Could not find user with id: [%s]", userID))
		return
	}

	offset := 0
	if cursor != "" {
		n, err := strconv.Atoi(strings.TrimPrefix(cursor, "cursor_"))
		if err != nil || n < 0 {
			m.sendError(w, http.StatusBadRequest, "Invalid `pagination_token`")
			return
		}
		offset = n
	}

	// An upstream that keeps paging without ever surfacing data: items
	// empty, cursor still moving.
	if emptyFrom > 0 && pageNum >= emptyFrom {
		m.sendPage(w, nil, fmt.Sprintf("cursor_empty_%d", pageNum))
		return
	}

	end := offset + pageSize
	if end > len(corpus) {
		end = len(corpus)
	}
	var items []twitter.Tweet
	if offset < len(corpus) {
		items = corpus[offset:end]
	}

	nextToken := ""
	if end < len(corpus) {
		nextToken = fmt.Sprintf("cursor_%d", end)
	}
	if stallAfter > 0 && pageNum > stallAfter {
		nextToken = cursor
	}

	m.sendPage(w, items, nextToken)
}

// handleTweetLookup serves a minimal single-tweet response.
func (m *MockAPIServer) handleTweetLookup(w http.ResponseWriter, r *http.Request) {
	atomic.AddInt32(&m.requestCount, 1)

	if !authorized(r) {
		m.sendError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	tweetID := strings.TrimPrefix(r.URL.Path, "/2/tweets/")
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"data": map[string]string{
			"id":   tweetID,
			"text": fmt.Sprintf("tweet %s body", tweetID),
		},
	})
}

// sendPage encodes one timeline page in the v2 response envelope.
func (m *MockAPIServer) sendPage(w http.ResponseWriter, items []twitter.Tweet, nextToken string) {
	meta := &twitter.Meta{
		ResultCount: len(items),
		NextToken:   nextToken,
	}
	if len(items) > 0 {
		meta.NewestID = items[0].ID
		meta.OldestID = items[len(items)-1].ID
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(twitter.Page{Data: items, Meta: meta})
}

// sendError encodes an error the way the v2 API shapes its problem
// responses. The client only inspects the status code, but keeping the
// body realistic makes failures readable in test logs.
func (m *MockAPIServer) sendError(w http.ResponseWriter, code int, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"title":  http.StatusText(code),
		"detail": detail,
		"status": code,
		"type":   "about:blank",
	})
}

// authorized reports whether the request carries a non-empty bearer token.
func authorized(r *http.Request) bool {
	header := r.Header.Get("Authorization")
	return strings.HasPrefix(header, "Bearer ") && len(strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))) > 0
}
