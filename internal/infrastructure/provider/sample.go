package provider

import (
	"context"
	"time"

	"NewsAggregator/internal/domain"
	"NewsAggregator/internal/ports"
)

const SampleName = "sample"

type sampleItem struct {
	slug        string
	title       string
	source      string
	age         time.Duration
	description string
}

var sampleItems = []sampleItem{
	{"chip-export-rules", "Chipmakers Weigh New Semiconductor Export Rules", "Sample Wire", 2 * time.Hour,
		"Nvidia and AMD executives said the rules could reshape GPU supply. Analysts expect revisions."},
	{"lakers-victory", "Lakers Secure Crucial Victory", "Sample Sports", 3 * time.Hour,
		"The Lakers beat the Warriors in overtime. The team now leads the season series."},
	{"quarterly-earnings", "Banks Report Strong Quarterly Earnings", "Sample Markets", 5 * time.Hour,
		"Revenue and profit rose across the banking sector. Shareholders welcomed higher dividends."},
	{"vaccine-trial", "Clinical Trial Shows Promise for New Vaccine", "Sample Health", 8 * time.Hour,
		"Researchers said the study met its primary goal. Doctors urged caution before wider treatment."},
	{"streaming-series", "Streaming Series Sweeps Television Awards", "Sample Arts", 12 * time.Hour,
		"The Netflix show won best series. Its director thanked the cast and the band behind the score."},
}

// Sample serves a fixed, deterministic article set stamped relative to now.
// It is the designated last resort when every live provider is empty.
//
// Filtering: none.
type Sample struct {
	now func() time.Time
}

var _ ports.ArticleProvider = (*Sample)(nil)

// NewSample builds the fallback provider; a nil clock uses time.Now.
func NewSample(now func() time.Time) *Sample {
	if now == nil {
		now = time.Now
	}
	return &Sample{now: now}
}

func (s *Sample) Name() string { return SampleName }

func (s *Sample) Fetch(_ context.Context, q ports.ProviderQuery) ([]domain.RawArticle, error) {
	now := s.now().UTC()
	out := make([]domain.RawArticle, 0, len(sampleItems))
	for _, item := range sampleItems {
		if q.Limit > 0 && len(out) >= q.Limit {
			break
		}
		out = append(out, domain.RawArticle{
			URL:         "https://example.org/sample/" + item.slug,
			Title:       item.title,
			Source:      item.source,
			PublishedAt: domain.FormatPublished(now.Add(-item.age)),
			Description: item.description,
		})
	}
	return out, nil
}
