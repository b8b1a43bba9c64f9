package ports

import (
	"context"

	"NewsAggregator/internal/domain"
)

// ProviderQuery selects what a provider adapter should fetch.
type ProviderQuery struct {
	Topic    string
	Category string
	Limit    int
}

// ArticleProvider normalizes one external news source into raw articles.
type ArticleProvider interface {
	Name() string
	Fetch(ctx context.Context, q ProviderQuery) ([]domain.RawArticle, error)
}

// ArticleSource is the fallback-ordered view over all providers. It never
// fails: provider errors are absorbed and count as no items.
type ArticleSource interface {
	Fetch(ctx context.Context, q ProviderQuery) []domain.RawArticle
	FetchCategories(ctx context.Context, categories []string, limit int) []domain.RawArticle
}

// ArticleRepository persists articles keyed by URL.
type ArticleRepository interface {
	Exists(ctx context.Context, url string) (bool, error)
	// Insert stores the article unless its URL is already present.
	Insert(ctx context.Context, article domain.Article) (bool, error)
	List(ctx context.Context) ([]domain.Article, error)
	Count(ctx context.Context) (int, error)
}

// ProfileRepository persists user interest profiles.
type ProfileRepository interface {
	Upsert(ctx context.Context, profile domain.UserProfile) error
	Get(ctx context.Context, userID string) (domain.UserProfile, bool, error)
}

// Summarizer condenses article text.
type Summarizer interface {
	Summarize(ctx context.Context, text string) (string, error)
}

// Embedder maps text to a fixed-length vector.
type Embedder interface {
	Embed(text string) []float64
	Dimensions() int
}
