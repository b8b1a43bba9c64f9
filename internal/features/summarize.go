package features

import (
	"context"
	"log/slog"
	"regexp"
	"strings"

	"NewsAggregator/internal/metrics"
	"NewsAggregator/internal/ports"
)

// DefaultMaxSentences is the extractive summary length.
const DefaultMaxSentences = 3

var sentenceBoundary = regexp.MustCompile(`[.!?]\s+`)

// Extractive picks the leading sentences of the text.
type Extractive struct {
	MaxSentences int
}

var _ ports.Summarizer = Extractive{}

// Summarize never fails; empty input yields an empty summary.
func (e Extractive) Summarize(_ context.Context, text string) (string, error) {
	return e.summary(text), nil
}

func (e Extractive) summary(text string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return ""
	}

	limit := e.MaxSentences
	if limit <= 0 {
		limit = DefaultMaxSentences
	}

	var sentences []string
	start := 0
	for _, loc := range sentenceBoundary.FindAllStringIndex(text, -1) {
		// keep the punctuation, drop the whitespace
		sentences = append(sentences, text[start:loc[0]+1])
		start = loc[1]
		if len(sentences) == limit {
			break
		}
	}
	if len(sentences) < limit && start < len(text) {
		sentences = append(sentences, text[start:])
	}

	return strings.Join(sentences, " ")
}

// FallbackSummarizer prefers a generative backend and degrades to the
// extractive summary when it fails or returns nothing.
type FallbackSummarizer struct {
	primary  ports.Summarizer
	fallback Extractive
	logger   *slog.Logger
}

var _ ports.Summarizer = (*FallbackSummarizer)(nil)

// NewFallbackSummarizer wraps primary; a nil primary means extractive only.
func NewFallbackSummarizer(primary ports.Summarizer, fallback Extractive, log *slog.Logger) *FallbackSummarizer {
	return &FallbackSummarizer{primary: primary, fallback: fallback, logger: log}
}

// Summarize always returns a nil error.
func (f *FallbackSummarizer) Summarize(ctx context.Context, text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", nil
	}
	if f.primary == nil {
		return f.fallback.summary(text), nil
	}

	summary, err := f.primary.Summarize(ctx, text)
	if err != nil {
		metrics.RecordSummarizerFallback()
		f.warn("summarizer backend failed, using extractive summary", "error", err)
		return f.fallback.summary(text), nil
	}
	summary = strings.TrimSpace(summary)
	if summary == "" {
		metrics.RecordSummarizerFallback()
		f.warn("summarizer backend returned empty output, using extractive summary")
		return f.fallback.summary(text), nil
	}
	return summary, nil
}

func (f *FallbackSummarizer) warn(msg string, args ...any) {
	if f.logger != nil {
		f.logger.Warn(msg, args...)
	}
}
