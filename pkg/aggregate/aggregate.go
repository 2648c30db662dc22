package aggregate

import (
	"fmt"
	"sort"
	"time"

	"xscraper/pkg/logger"
	"xscraper/pkg/tweetlog"
	"xscraper/pkg/twitter"
)

// Mention is one @-mention occurrence derived from a record at
// aggregation time. Occurrences are never persisted on their own.
type Mention struct {
	Username  string
	TweetID   string
	CreatedAt string
}

// Annotation is one classifier-annotation occurrence derived from a
// record at aggregation time.
type Annotation struct {
	NormalizedText string
	AnnotationType string
	TweetID        string
	CreatedAt      string
}

// SummaryRow is one ranked group of a summary table.
type SummaryRow struct {
	Key        string
	Count      int
	LastSeenAt time.Time
	LastSeenID string
	Permalink  string
}

// Summarizer derives the ranked mention and annotation summaries of a
// record log. Permalinks point at the configured account handle.
type Summarizer struct {
	handle string
	logger logger.Logger
}

// New creates a Summarizer for the given account handle.
func New(handle string, log logger.Logger) *Summarizer {
	if log == nil {
		log = logger.GetLogger()
	}
	return &Summarizer{handle: handle, logger: log}
}

// ExtractMentions returns the mention occurrences of one record. A record
// without an entity payload or without mentions contributes nothing.
func ExtractMentions(tweet twitter.Tweet) []Mention {
	if tweet.Entities == nil || len(tweet.Entities.Mentions) == 0 {
		return nil
	}

	mentions := make([]Mention, 0, len(tweet.Entities.Mentions))
	for _, m := range tweet.Entities.Mentions {
		mentions = append(mentions, Mention{
			Username:  m.Username,
			TweetID:   tweet.ID,
			CreatedAt: tweet.CreatedAt,
		})
	}
	return mentions
}

// ExtractAnnotations returns the annotation occurrences of one record.
func ExtractAnnotations(tweet twitter.Tweet) []Annotation {
	if tweet.Entities == nil || len(tweet.Entities.Annotations) == 0 {
		return nil
	}

	annotations := make([]Annotation, 0, len(tweet.Entities.Annotations))
	for _, a := range tweet.Entities.Annotations {
		annotations = append(annotations, Annotation{
			NormalizedText: a.NormalizedText,
			AnnotationType: a.Type,
			TweetID:        tweet.ID,
			CreatedAt:      tweet.CreatedAt,
		})
	}
	return annotations
}

// group accumulates the rank statistics of one key.
type group struct {
	count      int
	lastSeenAt time.Time
	lastSeenID string
}

func (g *group) add(tweetID string, createdAt time.Time) {
	g.count++
	if createdAt.After(g.lastSeenAt) {
		g.lastSeenAt = createdAt
	}
	if g.lastSeenID == "" {
		g.lastSeenID = tweetID
	} else {
		g.lastSeenID = twitter.MaxID(g.lastSeenID, tweetID)
	}
}

// Summarize streams the record log at path and groups its mention and
// annotation occurrences. Mentions group by username, annotations by
// normalized text, both by exact value. Any unreadable record fails the
// whole pass; there is no partial aggregation.
func (s *Summarizer) Summarize(path string) (mentions, annotations []SummaryRow, err error) {
	reader, err := tweetlog.OpenReader(path)
	if err != nil {
		return nil, nil, err
	}
	defer reader.Close()

	mentionGroups := make(map[string]*group)
	annotationGroups := make(map[string]*group)
	records, mentionTotal, annotationTotal := 0, 0, 0

	for reader.Next() {
		tweet := reader.Tweet()
		records++

		recordMentions := ExtractMentions(tweet)
		recordAnnotations := ExtractAnnotations(tweet)
		if len(recordMentions) == 0 && len(recordAnnotations) == 0 {
			continue
		}

		// Only records that contribute occurrences need a usable timestamp
		createdAt, terr := time.Parse(time.RFC3339, tweet.CreatedAt)
		if terr != nil {
			return nil, nil, &tweetlog.MalformedRecordError{
				Line: reader.Line(),
				Err:  fmt.Errorf("parse created_at %q: %v", tweet.CreatedAt, terr),
			}
		}

		for _, m := range recordMentions {
			accumulate(mentionGroups, m.Username, m.TweetID, createdAt)
			mentionTotal++
		}
		for _, a := range recordAnnotations {
			accumulate(annotationGroups, a.NormalizedText, a.TweetID, createdAt)
			annotationTotal++
		}
	}
	if err := reader.Err(); err != nil {
		return nil, nil, err
	}

	s.logger.InfoWithFields("aggregated record log", map[string]interface{}{
		"records":           records,
		"mentions":          mentionTotal,
		"annotations":       annotationTotal,
		"mention_groups":    len(mentionGroups),
		"annotation_groups": len(annotationGroups),
	})

	return s.rank(mentionGroups), s.rank(annotationGroups), nil
}

func accumulate(groups map[string]*group, key, tweetID string, createdAt time.Time) {
	g := groups[key]
	if g == nil {
		g = &group{}
		groups[key] = g
	}
	g.add(tweetID, createdAt)
}

// rank orders groups by count descending, ties by key ascending, so that
// re-aggregating an unchanged log reproduces the output byte for byte.
func (s *Summarizer) rank(groups map[string]*group) []SummaryRow {
	rows := make([]SummaryRow, 0, len(groups))
	for key, g := range groups {
		rows = append(rows, SummaryRow{
			Key:        key,
			Count:      g.count,
			LastSeenAt: g.lastSeenAt,
			LastSeenID: g.lastSeenID,
			Permalink:  twitter.StatusURL(s.handle, g.lastSeenID),
		})
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Count != rows[j].Count {
			return rows[i].Count > rows[j].Count
		}
		return rows[i].Key < rows[j].Key
	})

	return rows
}
