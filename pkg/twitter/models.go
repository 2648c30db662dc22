package twitter

// Page is the response envelope returned by the user tweets timeline
// endpoint: a list of tweet objects plus pagination metadata.
type Page struct {
	Data []Tweet `json:"data,omitempty"`
	Meta *Meta   `json:"meta,omitempty"`
}

// Meta carries the pagination metadata of one timeline page. A response
// without a decodable Meta does not expose a next cursor and cannot be
// paginated further.
type Meta struct {
	ResultCount int    `json:"result_count"`
	NewestID    string `json:"newest_id,omitempty"`
	OldestID    string `json:"oldest_id,omitempty"`
	NextToken   string `json:"next_token,omitempty"`
}

// Tweet is one fetched post as returned by the API. CreatedAt is carried
// verbatim as the RFC 3339 string the API sent, so a persisted record
// round-trips byte-for-byte.
//
// NextToken is not an API field: it is stamped onto the tweet at yield
// time with the next-page cursor returned alongside it, recording where a
// resumed fetch would continue from.
type Tweet struct {
	ID                 string              `json:"id"`
	Text               string              `json:"text"`
	CreatedAt          string              `json:"created_at,omitempty"`
	ConversationID     string              `json:"conversation_id,omitempty"`
	Entities           *Entities           `json:"entities,omitempty"`
	ContextAnnotations []ContextAnnotation `json:"context_annotations,omitempty"`
	NextToken          string              `json:"next_token,omitempty"`
}

// Entities holds the structured entity payload of a tweet. The whole
// struct and each list are optional; absence means zero occurrences.
type Entities struct {
	Mentions    []MentionEntity    `json:"mentions,omitempty"`
	Annotations []AnnotationEntity `json:"annotations,omitempty"`
	Hashtags    []TagEntity        `json:"hashtags,omitempty"`
	Cashtags    []TagEntity        `json:"cashtags,omitempty"`
	URLs        []URLEntity        `json:"urls,omitempty"`
}

// MentionEntity is one @-mention inside a tweet's text.
type MentionEntity struct {
	Start    int    `json:"start"`
	End      int    `json:"end"`
	Username string `json:"username"`
	ID       string `json:"id,omitempty"`
}

// AnnotationEntity is one classifier annotation over a span of the text.
type AnnotationEntity struct {
	Start          int     `json:"start"`
	End            int     `json:"end"`
	Probability    float64 `json:"probability,omitempty"`
	Type           string  `json:"type"`
	NormalizedText string  `json:"normalized_text"`
}

// TagEntity is a hashtag or cashtag occurrence.
type TagEntity struct {
	Start int    `json:"start"`
	End   int    `json:"end"`
	Tag   string `json:"tag"`
}

// URLEntity is one URL occurrence inside a tweet's text.
type URLEntity struct {
	Start       int    `json:"start"`
	End         int    `json:"end"`
	URL         string `json:"url"`
	ExpandedURL string `json:"expanded_url,omitempty"`
	DisplayURL  string `json:"display_url,omitempty"`
}

// ContextAnnotation is one entry of the tweet-level classifier output.
// Persisted with the record; not aggregated.
type ContextAnnotation struct {
	Domain ContextEntity `json:"domain"`
	Entity ContextEntity `json:"entity"`
}

// ContextEntity is the domain or entity half of a context annotation.
type ContextEntity struct {
	ID          string `json:"id"`
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`
}

// NextToken returns the page's next cursor, or "" when the page carries
// none.
func (p *Page) NextToken() string {
	if p.Meta == nil {
		return ""
	}
	return p.Meta.NextToken
}
