package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"NewsAggregator/internal/domain"
	"NewsAggregator/internal/metrics"
	"NewsAggregator/internal/ports"
)

const (
	DefaultTopic           = "technology"
	DefaultCategory        = "general"
	DefaultRetentionWindow = 7 * 24 * time.Hour
	DefaultFetchLimit      = 80
)

// DailyCategories is the standard category set fetched by DailyUpdate.
var DailyCategories = []string{"general", "business", "technology", "sports", "entertainment", "health", "science"}

// interestCategories maps lower-cased interest tags to provider categories.
var interestCategories = map[string]string{
	"tech":          "technology",
	"technology":    "technology",
	"ai":            "technology",
	"software":      "technology",
	"programming":   "technology",
	"gadgets":       "technology",
	"cybersecurity": "technology",
	"startups":      "technology",
	"sports":        "sports",
	"sport":         "sports",
	"football":      "sports",
	"soccer":        "sports",
	"basketball":    "sports",
	"tennis":        "sports",
	"cricket":       "sports",
	"golf":          "sports",
	"nba":           "sports",
	"nfl":           "sports",
	"business":      "business",
	"finance":       "business",
	"economy":       "business",
	"markets":       "business",
	"stocks":        "business",
	"crypto":        "business",
	"health":        "health",
	"medicine":      "health",
	"fitness":       "health",
	"nutrition":     "health",
	"science":       "science",
	"space":         "science",
	"climate":       "science",
	"physics":       "science",
	"biology":       "science",
	"entertainment": "entertainment",
	"movies":        "entertainment",
	"film":          "entertainment",
	"music":         "entertainment",
	"tv":            "entertainment",
	"celebrity":     "entertainment",
	"gaming":        "entertainment",
}

// CategoryFor resolves one interest tag; unmapped tags fall back to the
// general category.
func CategoryFor(interest string) string {
	if category, ok := interestCategories[strings.ToLower(strings.TrimSpace(interest))]; ok {
		return category
	}
	return DefaultCategory
}

// IngestorDeps wires the driven adapters used by ingestion.
type IngestorDeps struct {
	Source          ports.ArticleSource
	Articles        ports.ArticleRepository
	Summarizer      ports.Summarizer
	Embedder        ports.Embedder
	Logger          *slog.Logger
	Now             func() time.Time
	DefaultTopic    string
	DailyCategories []string
	RetentionWindow time.Duration
	FetchLimit      int
}

// Ingestor fetches, deduplicates, enriches and stores articles.
type Ingestor struct {
	source          ports.ArticleSource
	articles        ports.ArticleRepository
	summarizer      ports.Summarizer
	embedder        ports.Embedder
	logger          *slog.Logger
	now             func() time.Time
	defaultTopic    string
	dailyCategories []string
	retention       time.Duration
	fetchLimit      int
}

// NewIngestor constructs the ingestion use case, filling unset tunables
// with their defaults.
func NewIngestor(deps IngestorDeps) *Ingestor {
	in := &Ingestor{
		source:          deps.Source,
		articles:        deps.Articles,
		summarizer:      deps.Summarizer,
		embedder:        deps.Embedder,
		logger:          deps.Logger,
		now:             deps.Now,
		defaultTopic:    deps.DefaultTopic,
		dailyCategories: deps.DailyCategories,
		retention:       deps.RetentionWindow,
		fetchLimit:      deps.FetchLimit,
	}
	if in.now == nil {
		in.now = time.Now
	}
	if in.defaultTopic == "" {
		in.defaultTopic = DefaultTopic
	}
	if len(in.dailyCategories) == 0 {
		in.dailyCategories = DailyCategories
	}
	if in.retention <= 0 {
		in.retention = DefaultRetentionWindow
	}
	if in.fetchLimit <= 0 {
		in.fetchLimit = DefaultFetchLimit
	}
	return in
}

// IngestTopic runs one fallback-chain fetch for the topic and stores the
// new items.
func (in *Ingestor) IngestTopic(ctx context.Context, topic string) (int, error) {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		topic = in.defaultTopic
	}

	items := in.fetch(ctx, ports.ProviderQuery{Topic: topic, Limit: in.fetchLimit})
	count, err := in.Ingest(ctx, items)
	if err != nil {
		return count, fmt.Errorf("ingest topic %q: %w", topic, err)
	}
	in.info("topic ingested", "topic", topic, "fetched", len(items), "ingested", count)
	return count, nil
}

// IngestForInterests fetches once per distinct category resolved from the
// interests and reports the categories in first-seen order.
func (in *Ingestor) IngestForInterests(ctx context.Context, interests []string) (domain.IngestResult, error) {
	var categories []string
	seen := map[string]struct{}{}
	for _, interest := range domain.CleanInterests(interests) {
		category := CategoryFor(interest)
		if _, ok := seen[category]; ok {
			continue
		}
		seen[category] = struct{}{}
		categories = append(categories, category)
	}
	if len(categories) == 0 {
		categories = []string{DefaultCategory}
	}

	items := in.fetchCategories(ctx, categories)
	count, err := in.Ingest(ctx, items)
	result := domain.IngestResult{Ingested: count, Categories: categories}
	if err != nil {
		return result, fmt.Errorf("ingest interests: %w", err)
	}
	in.info("interests ingested", "categories", categories, "fetched", len(items), "ingested", count)
	return result, nil
}

// DailyUpdate fetches the standard categories and keeps only items
// published within the retention window.
func (in *Ingestor) DailyUpdate(ctx context.Context) (domain.IngestResult, error) {
	items := in.fetchCategories(ctx, in.dailyCategories)

	cutoff := in.now().UTC().Add(-in.retention)
	fresh := make([]domain.RawArticle, 0, len(items))
	for _, item := range items {
		published, err := domain.ParsePublished(item.PublishedAt)
		if err != nil {
			metrics.RecordIngest("unparseable_date")
			in.debug("skip item with unparseable date", "url", item.URL, "published_at", item.PublishedAt)
			continue
		}
		if published.Before(cutoff) {
			metrics.RecordIngest("stale")
			in.debug("skip stale item", "url", item.URL, "published_at", item.PublishedAt)
			continue
		}
		fresh = append(fresh, item)
	}

	count, err := in.Ingest(ctx, fresh)
	result := domain.IngestResult{Ingested: count}
	if err != nil {
		return result, fmt.Errorf("daily update: %w", err)
	}
	in.info("daily update finished", "fetched", len(items), "fresh", len(fresh), "ingested", count)
	return result, nil
}

// Ingest validates, deduplicates, enriches and stores a batch. Invalid and
// duplicate items are skipped silently; a store failure aborts the batch
// and returns the count stored so far.
func (in *Ingestor) Ingest(ctx context.Context, items []domain.RawArticle) (int, error) {
	if in.articles == nil {
		return 0, fmt.Errorf("article repository is not configured")
	}

	count := 0
	seen := make(map[string]struct{}, len(items))
	for _, item := range items {
		if err := item.Validate(); err != nil {
			metrics.RecordIngest("invalid")
			in.debug("skip invalid item", "url", item.URL, "reason", err)
			continue
		}

		if _, ok := seen[item.URL]; ok {
			metrics.RecordIngest("duplicate")
			continue
		}
		seen[item.URL] = struct{}{}

		exists, err := in.articles.Exists(ctx, item.URL)
		if err != nil {
			in.errorLog("dedup lookup failed", "url", item.URL, "stored", count, "error", err)
			return count, err
		}
		if exists {
			metrics.RecordIngest("duplicate")
			in.debug("skip known url", "url", item.URL)
			continue
		}

		article := in.enrich(ctx, item)

		inserted, err := in.articles.Insert(ctx, article)
		if err != nil {
			in.errorLog("insert failed", "url", item.URL, "stored", count, "error", err)
			return count, err
		}
		if !inserted {
			// lost a race against a concurrent ingest of the same url
			metrics.RecordIngest("duplicate")
			continue
		}

		metrics.RecordIngest("ingested")
		count++
	}

	return count, nil
}

func (in *Ingestor) enrich(ctx context.Context, item domain.RawArticle) domain.Article {
	article := domain.Article{
		URL:         item.URL,
		Title:       item.Title,
		Source:      item.Source,
		Author:      item.Author,
		PublishedAt: item.PublishedAt,
		Description: item.Description,
		Content:     item.Content,
	}

	text := item.CombinedText()
	if text == "" {
		return article
	}

	if in.summarizer != nil {
		summary, err := in.summarizer.Summarize(ctx, text)
		if err != nil {
			in.warn("summary failed", "url", item.URL, "error", err)
		}
		article.Summary = summary
	}
	if in.embedder != nil {
		article.Embedding = in.embedder.Embed(text)
	}

	return article
}

func (in *Ingestor) fetch(ctx context.Context, q ports.ProviderQuery) []domain.RawArticle {
	if in.source == nil {
		return nil
	}
	return in.source.Fetch(ctx, q)
}

func (in *Ingestor) fetchCategories(ctx context.Context, categories []string) []domain.RawArticle {
	if in.source == nil {
		return nil
	}
	return in.source.FetchCategories(ctx, categories, in.fetchLimit)
}

func (in *Ingestor) debug(msg string, args ...any) {
	if in.logger != nil {
		in.logger.Debug(msg, args...)
	}
}

func (in *Ingestor) info(msg string, args ...any) {
	if in.logger != nil {
		in.logger.Info(msg, args...)
	}
}

func (in *Ingestor) warn(msg string, args ...any) {
	if in.logger != nil {
		in.logger.Warn(msg, args...)
	}
}

func (in *Ingestor) errorLog(msg string, args ...any) {
	if in.logger != nil {
		in.logger.Error(msg, args...)
	}
}
