package pagination

import (
	"xscraper/pkg/logger"
	"xscraper/pkg/twitter"
)

// PageFetcher is the capability the engine drives: fetch one page of a
// timeline starting at cursor. An empty cursor requests the first page.
type PageFetcher interface {
	FetchPage(cursor string, pageSize int) (*twitter.Page, error)
}

// StopReason identifies which rule ended a pagination run.
type StopReason int

const (
	// StopNone means the run has not terminated yet.
	StopNone StopReason = iota

	// StopCursorStalled means the upstream returned the same cursor that
	// requested the page, so following it again could never advance.
	StopCursorStalled

	// StopCursorCycle means the upstream returned a cursor already consumed
	// earlier in the run.
	StopCursorCycle

	// StopCursorAbsent means the page carried no next cursor: the natural
	// end of the data.
	StopCursorAbsent

	// StopBudgetReached means the run yielded at least maxResults items.
	StopBudgetReached

	// StopEmptyPage means the page carried zero items while its cursors
	// kept advancing; following such pages forever would never terminate.
	StopEmptyPage

	// StopError means the run died on a protocol error, available via Err.
	StopError
)

func (r StopReason) String() string {
	switch r {
	case StopNone:
		return "none"
	case StopCursorStalled:
		return "cursor_stalled"
	case StopCursorCycle:
		return "cursor_cycle"
	case StopCursorAbsent:
		return "cursor_absent"
	case StopBudgetReached:
		return "budget_reached"
	case StopEmptyPage:
		return "empty_page"
	case StopError:
		return "error"
	default:
		return "unknown"
	}
}

// Pager walks a cursor-paginated timeline as a lazy, forward-only,
// non-restartable sequence of tweets. It terminates for any upstream
// behavior, including cursors that stall, cycle, or never run out.
//
// Usage follows the scanner idiom:
//
//	p := pagination.New(fetcher, maxResults, log)
//	for p.Next() {
//	    tweet := p.Item()
//	}
//	if err := p.Err(); err != nil {
//	    // the sequence died on a protocol error; items already
//	    // yielded are still valid
//	}
type Pager struct {
	fetcher    PageFetcher
	maxResults int
	pageSize   int
	logger     logger.Logger

	currentCursor string
	seenCursors   map[string]bool
	itemsYielded  int
	pagesFetched  int

	buf    []twitter.Tweet
	bufIdx int
	item   twitter.Tweet
	reason StopReason
	err    error
	done   bool
}

// New creates a Pager that yields at most one page beyond maxResults
// items. The page size is fixed for the whole run at min(100, maxResults),
// raised to the endpoint minimum when maxResults is smaller than it.
func New(fetcher PageFetcher, maxResults int, log logger.Logger) *Pager {
	if log == nil {
		log = logger.GetLogger()
	}
	if maxResults < 1 {
		maxResults = 1
	}

	return &Pager{
		fetcher:     fetcher,
		maxResults:  maxResults,
		pageSize:    twitter.ClampPageSize(maxResults),
		logger:      log,
		seenCursors: make(map[string]bool),
	}
}

// Next advances the sequence to the next item. It returns false once the
// sequence has terminated, whether by a stop rule or a protocol error.
func (p *Pager) Next() bool {
	for {
		if p.bufIdx < len(p.buf) {
			p.item = p.buf[p.bufIdx]
			p.bufIdx++
			p.itemsYielded++
			return true
		}
		if p.done {
			return false
		}
		p.fetchPage()
	}
}

// Item returns the item produced by the last successful call to Next.
func (p *Pager) Item() twitter.Tweet {
	return p.item
}

// Err returns the protocol error that terminated the sequence, or nil
// when the run ended on a clean stop rule.
func (p *Pager) Err() error {
	return p.err
}

// StopReason returns which rule terminated the run, or StopNone while the
// sequence is still live.
func (p *Pager) StopReason() StopReason {
	return p.reason
}

// Pages returns the number of page requests issued so far.
func (p *Pager) Pages() int {
	return p.pagesFetched
}

// Items returns the number of items yielded so far.
func (p *Pager) Items() int {
	return p.itemsYielded
}

// PageSize returns the fixed per-request page size of this run.
func (p *Pager) PageSize() int {
	return p.pageSize
}

// fetchPage requests the next page, buffers its items, and decides whether
// the run ends once the buffer drains.
func (p *Pager) fetchPage() {
	p.pagesFetched++

	page, err := p.fetcher.FetchPage(p.currentCursor, p.pageSize)
	if err != nil {
		p.fail(err)
		return
	}
	if page == nil || page.Meta == nil {
		p.fail(&twitter.Error{
			Type:    twitter.ErrorTypeParsing,
			Message: "page response missing pagination metadata",
		})
		return
	}

	nextCursor := page.Meta.NextToken

	// Stamp every item with the new cursor, the one a resumed fetch would
	// use, not the cursor that requested this page.
	items := page.Data
	for i := range items {
		items[i].NextToken = nextCursor
	}
	p.buf = items
	p.bufIdx = 0

	p.logger.DebugWithFields("fetched timeline page", map[string]interface{}{
		"page":        p.pagesFetched,
		"items":       len(items),
		"cursor":      p.currentCursor,
		"next_cursor": nextCursor,
	})

	// Decide the run's fate now; the items above still drain through Next.
	// An empty cursor is absence, not a value, so the stall and cycle rules
	// only apply to real cursors.
	yieldedAfter := p.itemsYielded + len(items)
	switch {
	case nextCursor != "" && nextCursor == p.currentCursor:
		p.stop(StopCursorStalled)
	case nextCursor != "" && p.seenCursors[nextCursor]:
		p.stop(StopCursorCycle)
	case nextCursor == "":
		p.stop(StopCursorAbsent)
	case yieldedAfter >= p.maxResults:
		p.stop(StopBudgetReached)
	case len(items) == 0:
		p.stop(StopEmptyPage)
	default:
		p.seenCursors[nextCursor] = true
		p.currentCursor = nextCursor
	}
}

func (p *Pager) stop(reason StopReason) {
	p.done = true
	p.reason = reason
	p.logger.DebugWithFields("pagination stopped", map[string]interface{}{
		"reason": reason.String(),
		"pages":  p.pagesFetched,
		"items":  p.itemsYielded + len(p.buf) - p.bufIdx,
	})
}

func (p *Pager) fail(err error) {
	p.done = true
	p.reason = StopError
	p.err = err
	p.buf = nil
	p.bufIdx = 0
	p.logger.WarnWithFields("pagination terminated by protocol error", map[string]interface{}{
		"pages": p.pagesFetched,
		"items": p.itemsYielded,
		"error": err.Error(),
	})
}
