package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRawArticleValidate(t *testing.T) {
	tests := map[string]struct {
		item RawArticle
		want error
	}{
		"valid":         {item: RawArticle{URL: "https://a.example/1", Title: "Title"}, want: nil},
		"missing url":   {item: RawArticle{Title: "Title"}, want: ErrMissingURL},
		"blank url":     {item: RawArticle{URL: "  ", Title: "Title"}, want: ErrMissingURL},
		"missing title": {item: RawArticle{URL: "https://a.example/1"}, want: ErrMissingTitle},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			assert.ErrorIs(t, tc.item.Validate(), tc.want)
		})
	}
}

func TestCombinedTextSkipsEmptyFields(t *testing.T) {
	item := RawArticle{Title: "Title", Content: "Body."}
	assert.Equal(t, "Title Body.", item.CombinedText())
	assert.Empty(t, RawArticle{}.CombinedText())
}

func TestHaystackIsLowerCased(t *testing.T) {
	a := Article{Title: "Lakers WIN", Description: "Big Game", Content: "Overtime"}
	assert.Equal(t, "lakers win big game overtime", a.Haystack())
}

func TestInterestsRoundTrip(t *testing.T) {
	stored := JoinInterests([]string{" music ", "", "film"})
	assert.Equal(t, []string{"music", "film"}, SplitInterests(stored))
	assert.Empty(t, SplitInterests(""))
	assert.Equal(t, []string{"golf"}, CleanInterests([]string{"  golf", " "}))
}

func TestParsePublished(t *testing.T) {
	want := time.Date(2025, 1, 10, 10, 30, 0, 0, time.UTC)

	tests := map[string]string{
		"rfc3339 zulu":    "2025-01-10T10:30:00Z",
		"rfc3339 offset":  "2025-01-10T12:30:00+02:00",
		"naive iso":       "2025-01-10T10:30:00",
		"space separated": "2025-01-10 10:30:00",
		"gdelt compact":   "20250110T103000Z",
		"rfc1123":         "Fri, 10 Jan 2025 10:30:00 GMT",
	}

	for name, value := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := ParsePublished(value)
			require.NoError(t, err)
			assert.True(t, want.Equal(got), "got %s", got)
			assert.Equal(t, time.UTC, got.Location())
		})
	}
}

func TestParsePublishedRejectsGarbage(t *testing.T) {
	_, err := ParsePublished("")
	assert.ErrorIs(t, err, ErrEmptyTimestamp)

	_, err = ParsePublished("sometime last week")
	assert.Error(t, err)

	for _, value := range []string{"12:30", "3/4/5", "2024"} {
		_, err = ParsePublished(value)
		assert.ErrorIs(t, err, ErrIncompleteTimestamp, value)
	}
}

func TestFormatPublished(t *testing.T) {
	assert.Empty(t, FormatPublished(time.Time{}))

	ts := time.Date(2025, 1, 10, 12, 30, 0, 0, time.FixedZone("x", 2*3600))
	assert.Equal(t, "2025-01-10T10:30:00Z", FormatPublished(ts))
}
