package aggregate

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"xscraper/pkg/logger"
	"xscraper/pkg/tweetlog"
	"xscraper/pkg/twitter"
)

func writeLog(t *testing.T, tweets ...twitter.Tweet) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "tweets.jsonl")
	writer, err := tweetlog.OpenWriter(path)
	require.NoError(t, err)
	for _, tweet := range tweets {
		require.NoError(t, writer.Append(tweet))
	}
	require.NoError(t, writer.Close())
	return path
}

func mentionTweet(id, createdAt string, usernames ...string) twitter.Tweet {
	entities := &twitter.Entities{}
	for _, username := range usernames {
		entities.Mentions = append(entities.Mentions, twitter.MentionEntity{Username: username})
	}
	return twitter.Tweet{ID: id, Text: "tweet " + id, CreatedAt: createdAt, Entities: entities}
}

func TestSummarizeGroupsAndRanks(t *testing.T) {
	// Two mentions of alice on ids 10 and 20, one rust annotation on id
	// 20, and one record contributing nothing.
	path := writeLog(t,
		mentionTweet("10", "2022-10-01T10:00:00.000Z", "alice"),
		twitter.Tweet{
			ID:        "20",
			Text:      "rust with @alice",
			CreatedAt: "2022-10-02T10:00:00.000Z",
			Entities: &twitter.Entities{
				Mentions:    []twitter.MentionEntity{{Username: "alice"}},
				Annotations: []twitter.AnnotationEntity{{Type: "Other", NormalizedText: "rust"}},
			},
		},
		twitter.Tweet{ID: "30", Text: "plain", CreatedAt: "2022-10-03T10:00:00.000Z"},
	)

	s := New("testy", logger.NewTestLogger())
	mentions, annotations, err := s.Summarize(path)
	require.NoError(t, err)

	require.Len(t, mentions, 1)
	assert.Equal(t, "alice", mentions[0].Key)
	assert.Equal(t, 2, mentions[0].Count)
	assert.Equal(t, "20", mentions[0].LastSeenID)
	assert.Equal(t, time.Date(2022, 10, 2, 10, 0, 0, 0, time.UTC), mentions[0].LastSeenAt.UTC())
	assert.Equal(t, "https://twitter.com/testy/status/20", mentions[0].Permalink)

	require.Len(t, annotations, 1)
	assert.Equal(t, "rust", annotations[0].Key)
	assert.Equal(t, 1, annotations[0].Count)
	assert.Equal(t, "20", annotations[0].LastSeenID)
	assert.Equal(t, "https://twitter.com/testy/status/20", annotations[0].Permalink)
}

func TestSummarizeCountInvariant(t *testing.T) {
	path := writeLog(t,
		mentionTweet("1", "2022-10-01T10:00:00Z", "alice", "bob"),
		mentionTweet("2", "2022-10-02T10:00:00Z", "alice"),
		mentionTweet("3", "2022-10-03T10:00:00Z", "carol", "alice", "bob"),
	)

	s := New("testy", logger.NewTestLogger())
	mentions, annotations, err := s.Summarize(path)
	require.NoError(t, err)
	assert.Empty(t, annotations)

	total := 0
	byKey := make(map[string]int)
	for _, row := range mentions {
		total += row.Count
		byKey[row.Key] = row.Count
	}
	assert.Equal(t, 6, total, "sum of group counts equals raw occurrences")
	assert.Equal(t, map[string]int{"alice": 3, "bob": 2, "carol": 1}, byKey)
}

func TestSummarizeOrdering(t *testing.T) {
	path := writeLog(t,
		mentionTweet("1", "2022-10-01T10:00:00Z", "zoe", "amy"),
		mentionTweet("2", "2022-10-02T10:00:00Z", "zoe", "amy"),
		mentionTweet("3", "2022-10-03T10:00:00Z", "mia", "mia", "mia"),
	)

	s := New("testy", logger.NewTestLogger())
	mentions, _, err := s.Summarize(path)
	require.NoError(t, err)

	// Count descending, equal counts by key ascending
	require.Len(t, mentions, 3)
	assert.Equal(t, "mia", mentions[0].Key)
	assert.Equal(t, 3, mentions[0].Count)
	assert.Equal(t, "amy", mentions[1].Key)
	assert.Equal(t, "zoe", mentions[2].Key)
}

func TestSummarizeSnowflakeOrder(t *testing.T) {
	// "1000" is newer than "999" even though it sorts lower as a string
	path := writeLog(t,
		mentionTweet("999", "2022-10-02T10:00:00Z", "alice"),
		mentionTweet("1000", "2022-10-01T10:00:00Z", "alice"),
	)

	s := New("testy", logger.NewTestLogger())
	mentions, _, err := s.Summarize(path)
	require.NoError(t, err)

	require.Len(t, mentions, 1)
	assert.Equal(t, "1000", mentions[0].LastSeenID)
	// LastSeenAt is independent of id order: the max createdAt wins
	assert.Equal(t, time.Date(2022, 10, 2, 10, 0, 0, 0, time.UTC), mentions[0].LastSeenAt.UTC())

	for _, id := range []string{"999", "1000"} {
		assert.GreaterOrEqual(t, twitter.CompareIDs(mentions[0].LastSeenID, id), 0)
	}
}

func TestSummarizeEmptyLog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tweets.jsonl")
	require.NoError(t, os.WriteFile(path, nil, 0644))

	s := New("testy", logger.NewTestLogger())
	mentions, annotations, err := s.Summarize(path)
	require.NoError(t, err)
	assert.Empty(t, mentions)
	assert.Empty(t, annotations)
}

func TestSummarizeNoOccurrences(t *testing.T) {
	path := writeLog(t,
		twitter.Tweet{ID: "1", Text: "plain", CreatedAt: "2022-10-01T10:00:00Z"},
		twitter.Tweet{ID: "2", Text: "also plain", CreatedAt: "2022-10-02T10:00:00Z"},
	)

	s := New("testy", logger.NewTestLogger())
	mentions, annotations, err := s.Summarize(path)
	require.NoError(t, err)
	assert.Empty(t, mentions)
	assert.Empty(t, annotations)
}

func TestSummarizeMalformedLine(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tweets.jsonl")
	content := `{"id":"1","text":"ok","created_at":"2022-10-01T10:00:00Z"}
{broken
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	s := New("testy", logger.NewTestLogger())
	_, _, err := s.Summarize(path)
	require.Error(t, err)

	var malformed *tweetlog.MalformedRecordError
	require.True(t, errors.As(err, &malformed))
	assert.Equal(t, 2, malformed.Line)
}

func TestSummarizeUnparseableTimestamp(t *testing.T) {
	path := writeLog(t, mentionTweet("1", "yesterday-ish", "alice"))

	s := New("testy", logger.NewTestLogger())
	_, _, err := s.Summarize(path)
	require.Error(t, err)

	var malformed *tweetlog.MalformedRecordError
	require.True(t, errors.As(err, &malformed))
	assert.Equal(t, 1, malformed.Line)
}

func TestSummarizeMissingLog(t *testing.T) {
	s := New("testy", logger.NewTestLogger())
	_, _, err := s.Summarize(filepath.Join(t.TempDir(), "absent.jsonl"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestExtractMentions(t *testing.T) {
	tweet := twitter.Tweet{
		ID:        "42",
		CreatedAt: "2022-10-01T10:00:00Z",
		Entities: &twitter.Entities{
			Mentions: []twitter.MentionEntity{{Username: "alice"}, {Username: "bob"}},
		},
	}

	mentions := ExtractMentions(tweet)
	require.Len(t, mentions, 2)
	assert.Equal(t, Mention{Username: "alice", TweetID: "42", CreatedAt: "2022-10-01T10:00:00Z"}, mentions[0])
	assert.Equal(t, "bob", mentions[1].Username)

	assert.Nil(t, ExtractMentions(twitter.Tweet{ID: "1"}))
	assert.Nil(t, ExtractMentions(twitter.Tweet{ID: "1", Entities: &twitter.Entities{}}))
}

func TestExtractAnnotations(t *testing.T) {
	tweet := twitter.Tweet{
		ID:        "42",
		CreatedAt: "2022-10-01T10:00:00Z",
		Entities: &twitter.Entities{
			Annotations: []twitter.AnnotationEntity{{Type: "Other", NormalizedText: "rust"}},
		},
	}

	annotations := ExtractAnnotations(tweet)
	require.Len(t, annotations, 1)
	assert.Equal(t, Annotation{
		NormalizedText: "rust",
		AnnotationType: "Other",
		TweetID:        "42",
		CreatedAt:      "2022-10-01T10:00:00Z",
	}, annotations[0])

	assert.Nil(t, ExtractAnnotations(twitter.Tweet{ID: "1"}))
}
