package usecase

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"NewsAggregator/internal/config"
	"NewsAggregator/internal/domain"
	"NewsAggregator/internal/features"
	"NewsAggregator/internal/infrastructure/storage"
	"NewsAggregator/internal/ports"
	"NewsAggregator/internal/ranking"
)

var testNow = time.Date(2025, 1, 10, 12, 0, 0, 0, time.UTC)

type fakeSource struct {
	mu         sync.Mutex
	byTopic    map[string][]domain.RawArticle
	queries    []ports.ProviderQuery
	categories [][]string
}

func (f *fakeSource) Fetch(_ context.Context, q ports.ProviderQuery) []domain.RawArticle {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queries = append(f.queries, q)
	return f.byTopic[q.Topic]
}

func (f *fakeSource) FetchCategories(_ context.Context, categories []string, _ int) []domain.RawArticle {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.categories = append(f.categories, categories)
	var out []domain.RawArticle
	for _, c := range categories {
		out = append(out, f.byTopic[c]...)
	}
	return out
}

type failingSummarizer struct{}

func (failingSummarizer) Summarize(context.Context, string) (string, error) {
	return "", errors.New("backend down")
}

type brokenArticles struct{ ports.ArticleRepository }

func (brokenArticles) Exists(context.Context, string) (bool, error) {
	return false, errors.New("disk full")
}

type stores struct {
	articles *storage.ArticleRepository
	profiles *storage.ProfileRepository
}

func newStores(t *testing.T) stores {
	t.Helper()
	db, err := storage.Open(context.Background(), config.DatabaseConfig{
		Driver: storage.DialectSQLite,
		DSN:    filepath.Join(t.TempDir(), "news.db"),
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return stores{articles: storage.NewArticleRepository(db), profiles: storage.NewProfileRepository(db)}
}

func raw(url, title string, age time.Duration) domain.RawArticle {
	return domain.RawArticle{
		URL:         url,
		Title:       title,
		Source:      "Test Wire",
		PublishedAt: domain.FormatPublished(testNow.Add(-age)),
		Description: title + " in detail. More to follow.",
	}
}

func newIngestor(s stores, source ports.ArticleSource, summarizer ports.Summarizer) *Ingestor {
	return NewIngestor(IngestorDeps{
		Source:     source,
		Articles:   s.articles,
		Summarizer: summarizer,
		Embedder:   features.HashEmbedder{},
		Now:        func() time.Time { return testNow },
	})
}

func TestIngestSkipsInvalidAndKnownURLs(t *testing.T) {
	ctx := context.Background()
	s := newStores(t)
	source := &fakeSource{byTopic: map[string][]domain.RawArticle{
		"technology": {
			raw("https://a.example/1", "One", time.Hour),
			raw("https://a.example/2", "Two", time.Hour),
			raw("https://a.example/3", "Three", time.Hour),
			{Title: "No link"},
		},
	}}
	in := newIngestor(s, source, features.NewFallbackSummarizer(nil, features.Extractive{}, nil))

	count, err := in.IngestTopic(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, 3, count)
	require.Len(t, source.queries, 1)
	assert.Equal(t, "technology", source.queries[0].Topic)

	count, err = in.IngestTopic(ctx, "technology")
	require.NoError(t, err)
	assert.Zero(t, count)

	total, err := s.articles.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, total)
}

func TestIngestDeduplicatesWithinBatch(t *testing.T) {
	ctx := context.Background()
	s := newStores(t)
	in := newIngestor(s, nil, nil)

	count, err := in.Ingest(ctx, []domain.RawArticle{
		raw("https://a.example/same", "First copy", time.Hour),
		raw("https://a.example/same", "Second copy", time.Hour),
	})
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	articles, err := s.articles.List(ctx)
	require.NoError(t, err)
	require.Len(t, articles, 1)
	assert.Equal(t, "First copy", articles[0].Title)
}

func TestIngestEnrichesWithFallbackSummary(t *testing.T) {
	ctx := context.Background()
	s := newStores(t)
	summarizer := features.NewFallbackSummarizer(failingSummarizer{}, features.Extractive{MaxSentences: 1}, nil)
	in := newIngestor(s, nil, summarizer)

	count, err := in.Ingest(ctx, []domain.RawArticle{raw("https://a.example/1", "Headline", time.Hour)})
	require.NoError(t, err)
	require.Equal(t, 1, count)

	articles, err := s.articles.List(ctx)
	require.NoError(t, err)
	require.Len(t, articles, 1)
	assert.Equal(t, "Headline Headline in detail.", articles[0].Summary)
	assert.Len(t, articles[0].Embedding, features.HashDimensions)
}

func TestIngestReturnsStoreErrors(t *testing.T) {
	in := NewIngestor(IngestorDeps{Articles: brokenArticles{}})

	count, err := in.Ingest(context.Background(), []domain.RawArticle{raw("https://a.example/1", "One", 0)})
	assert.Error(t, err)
	assert.Zero(t, count)
}

func TestIngestForInterestsResolvesCategories(t *testing.T) {
	ctx := context.Background()
	s := newStores(t)
	source := &fakeSource{byTopic: map[string][]domain.RawArticle{
		"technology": {raw("https://a.example/t", "Chips", time.Hour)},
		"sports":     {raw("https://a.example/s", "Golf", time.Hour)},
	}}
	in := newIngestor(s, source, nil)

	result, err := in.IngestForInterests(ctx, []string{"AI", " golf ", "knitting", "ai", ""})
	require.NoError(t, err)
	assert.Equal(t, 2, result.Ingested)
	assert.Equal(t, []string{"technology", "sports", "general"}, result.Categories)
}

func TestDailyUpdateAppliesRetention(t *testing.T) {
	ctx := context.Background()
	s := newStores(t)
	undated := raw("https://a.example/undated", "Undated", 0)
	undated.PublishedAt = "soon"
	source := &fakeSource{byTopic: map[string][]domain.RawArticle{
		"general": {
			raw("https://a.example/fresh", "Fresh", 2*time.Hour),
			raw("https://a.example/stale", "Stale", 8*24*time.Hour),
			undated,
		},
		"science": {raw("https://a.example/edge", "Edge", 6*24*time.Hour)},
	}}
	in := newIngestor(s, source, nil)

	result, err := in.DailyUpdate(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Ingested)
	require.Len(t, source.categories, 1)
	assert.Equal(t, DailyCategories, source.categories[0])
}

func TestRecommendScenarios(t *testing.T) {
	ctx := context.Background()
	s := newStores(t)
	profiles := NewProfiles(s.profiles, nil)
	rec := NewRecommender(s.articles, s.profiles, ranking.NewEngine(ranking.DefaultConfig(), nil), func() time.Time { return testNow }, nil)

	require.NoError(t, profiles.SetProfile(ctx, "ann", []string{"ai"}))
	views, err := rec.Recommend(ctx, "ann", 5)
	require.NoError(t, err)
	assert.NotNil(t, views)
	assert.Empty(t, views)

	in := newIngestor(s, nil, nil)
	_, err = in.Ingest(ctx, []domain.RawArticle{
		raw("https://a.example/rates", "Central bank holds rates", time.Hour),
		raw("https://a.example/lakers", "Lakers Secure Crucial Victory", 2*time.Hour),
	})
	require.NoError(t, err)

	require.NoError(t, profiles.SetProfile(ctx, "sam", []string{"sports"}))
	views, err = rec.Recommend(ctx, "sam", 5)
	require.NoError(t, err)
	require.NotEmpty(t, views)
	assert.Equal(t, "Lakers Secure Crucial Victory", views[0].Title)

	views, err = rec.Recommend(ctx, "nobody", 1)
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, "Lakers Secure Crucial Victory", views[0].Title)

	views, err = rec.Recommend(ctx, "sam", 0)
	require.NoError(t, err)
	assert.Empty(t, views)
}

func TestRecommendMatchesProfileStoredUnderPaddedID(t *testing.T) {
	ctx := context.Background()
	s := newStores(t)
	profiles := NewProfiles(s.profiles, nil)
	rec := NewRecommender(s.articles, s.profiles, nil, func() time.Time { return testNow }, nil)

	in := newIngestor(s, nil, nil)
	_, err := in.Ingest(ctx, []domain.RawArticle{
		raw("https://a.example/lakers", "Lakers Secure Crucial Victory", 2*time.Hour),
		raw("https://a.example/rates", "Central bank holds rates", time.Hour),
	})
	require.NoError(t, err)

	require.NoError(t, profiles.SetProfile(ctx, " sam ", []string{"sports"}))

	for _, id := range []string{" sam ", "sam"} {
		views, err := rec.Recommend(ctx, id, 1)
		require.NoError(t, err)
		require.Len(t, views, 1)
		assert.Equal(t, "Lakers Secure Crucial Victory", views[0].Title, "user id %q", id)
	}
}

func TestProfilesReplaceInterests(t *testing.T) {
	ctx := context.Background()
	profiles := NewProfiles(newStores(t).profiles, nil)

	require.NoError(t, profiles.SetProfile(ctx, "bob", []string{"music", "film"}))
	require.NoError(t, profiles.SetProfile(ctx, "bob", []string{"golf"}))

	profile, err := profiles.GetProfile(ctx, "bob")
	require.NoError(t, err)
	assert.Equal(t, []string{"golf"}, profile.Interests)

	_, err = profiles.GetProfile(ctx, "carol")
	assert.ErrorIs(t, err, domain.ErrProfileNotFound)

	assert.ErrorIs(t, profiles.SetProfile(ctx, "  ", nil), domain.ErrMissingUserID)
}

func TestCategoryFor(t *testing.T) {
	assert.Equal(t, "technology", CategoryFor(" AI "))
	assert.Equal(t, "entertainment", CategoryFor("film"))
	assert.Equal(t, DefaultCategory, CategoryFor("knitting"))
}
