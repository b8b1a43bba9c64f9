package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

var (
	ErrEmptyTimestamp      = errors.New("timestamp is empty")
	ErrIncompleteTimestamp = errors.New("timestamp does not name a calendar date")
)

// Shortest free-form input that can hold a full date, e.g. "1/2/2024".
const minFreeformTimestampLen = 8

const minPublishedYear = 1970

var publishedLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04:05",
	"20060102T150405Z",
	"2006-01-02",
}

// ParsePublished parses a provider timestamp and normalizes it to UTC.
// Timestamps without a zone are taken as UTC.
func ParsePublished(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, ErrEmptyTimestamp
	}

	for _, layout := range publishedLayouts {
		if t, err := time.ParseInLocation(layout, value, time.UTC); err == nil {
			return t.UTC(), nil
		}
	}

	// Free-form fallback. dateparse fills missing parts with zeros, so bare
	// times, years and short numeric triples have to be turned away here.
	if len(value) < minFreeformTimestampLen {
		return time.Time{}, fmt.Errorf("%w: %q", ErrIncompleteTimestamp, value)
	}
	t, err := dateparse.ParseIn(value, time.UTC)
	if err != nil {
		return time.Time{}, err
	}
	if t.Year() < minPublishedYear {
		return time.Time{}, fmt.Errorf("%w: %q", ErrIncompleteTimestamp, value)
	}
	return t.UTC(), nil
}

// FormatPublished renders a timestamp in the canonical stored form.
func FormatPublished(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
