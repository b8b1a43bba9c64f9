package provider

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/mmcdole/gofeed"

	"NewsAggregator/internal/domain"
	"NewsAggregator/internal/ports"
)

const RSSName = "rss"

// RSSConfig lists feed URLs per topic category.
type RSSConfig struct {
	Feeds    map[string][]string
	MaxItems int
	HTTP     HTTPOptions
}

// RSS reads configured RSS/Atom feeds for the requested category.
//
// Filtering: none beyond markup removal; feeds are curated in config.
// Topics without configured feeds fall back to the "general" feeds.
type RSS struct {
	cfg    RSSConfig
	http   *httpGetter
	logger *slog.Logger
}

var _ ports.ArticleProvider = (*RSS)(nil)

// NewRSS builds the adapter; MaxItems defaults to 50 per feed.
func NewRSS(cfg RSSConfig, log *slog.Logger) *RSS {
	if cfg.MaxItems <= 0 {
		cfg.MaxItems = 50
	}
	return &RSS{cfg: cfg, http: newHTTPGetter(RSSName, cfg.HTTP, log), logger: log}
}

func (r *RSS) Name() string { return RSSName }

func (r *RSS) Fetch(ctx context.Context, q ports.ProviderQuery) ([]domain.RawArticle, error) {
	feeds := r.feedsFor(q)
	if len(feeds) == 0 {
		return nil, nil
	}

	limit := r.cfg.MaxItems
	if q.Limit > 0 && q.Limit < limit {
		limit = q.Limit
	}

	var (
		out  []domain.RawArticle
		errs []error
	)
	for _, feedURL := range feeds {
		items, err := r.fetchFeed(ctx, feedURL, limit)
		if err != nil {
			errs = append(errs, fmt.Errorf("feed %s: %w", feedURL, err))
			continue
		}
		out = append(out, items...)
	}

	if len(out) == 0 && len(errs) > 0 {
		return nil, fmt.Errorf("rss: %w", errors.Join(errs...))
	}
	for _, err := range errs {
		r.warn("rss feed failed", "error", err)
	}
	return out, nil
}

func (r *RSS) feedsFor(q ports.ProviderQuery) []string {
	for _, key := range []string{q.Category, q.Topic, "general"} {
		key = strings.ToLower(strings.TrimSpace(key))
		if key == "" {
			continue
		}
		if feeds := r.cfg.Feeds[key]; len(feeds) > 0 {
			return feeds
		}
	}
	return nil
}

func (r *RSS) fetchFeed(ctx context.Context, feedURL string, limit int) ([]domain.RawArticle, error) {
	body, err := r.http.get(ctx, feedURL, nil, nil)
	if err != nil {
		return nil, err
	}

	feed, err := gofeed.NewParser().Parse(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse feed: %w", err)
	}

	source := strings.TrimSpace(feed.Title)
	out := make([]domain.RawArticle, 0, min(len(feed.Items), limit))
	for _, item := range feed.Items {
		if len(out) >= limit {
			break
		}

		raw := domain.RawArticle{
			URL:         strings.TrimSpace(item.Link),
			Title:       cleanInline(item.Title),
			Source:      source,
			Description: cleanBody(item.Description),
			Content:     cleanBody(item.Content),
		}
		if item.Author != nil {
			raw.Author = strings.TrimSpace(item.Author.Name)
		}
		switch {
		case item.PublishedParsed != nil:
			raw.PublishedAt = domain.FormatPublished(*item.PublishedParsed)
		case item.UpdatedParsed != nil:
			raw.PublishedAt = domain.FormatPublished(*item.UpdatedParsed)
		default:
			raw.PublishedAt = normalizePublished(item.Published)
		}
		out = append(out, raw)
	}
	return out, nil
}

func (r *RSS) warn(msg string, args ...any) {
	if r.logger != nil {
		r.logger.Warn(msg, args...)
	}
}
