package ranking

import (
	"sort"
	"strings"
	"time"

	"NewsAggregator/internal/domain"
	"NewsAggregator/internal/features"
	"NewsAggregator/internal/ports"
)

const (
	DefaultDirectWeight   = 3.0
	DefaultCategoryWeight = 2.0
	DefaultRecentWindow   = 36 * time.Hour
	DefaultFallbackWindow = 7 * 24 * time.Hour
)

// Config tunes scoring weights and recency windows.
type Config struct {
	DirectWeight     float64
	CategoryWeight   float64
	RecentWindow     time.Duration
	FallbackWindow   time.Duration
	SimilarityWeight float64
}

// DefaultConfig returns the canonical keyword weights and windows.
func DefaultConfig() Config {
	return Config{
		DirectWeight:   DefaultDirectWeight,
		CategoryWeight: DefaultCategoryWeight,
		RecentWindow:   DefaultRecentWindow,
		FallbackWindow: DefaultFallbackWindow,
	}
}

// Engine scores articles against interests and selects the top k.
type Engine struct {
	cfg      Config
	embedder ports.Embedder
}

// NewEngine validates cfg; a direct weight not above the category weight
// reverts both weights to their defaults. embedder may be nil unless
// SimilarityWeight is positive.
func NewEngine(cfg Config, embedder ports.Embedder) *Engine {
	def := DefaultConfig()
	if cfg.DirectWeight <= cfg.CategoryWeight || cfg.CategoryWeight < 0 {
		cfg.DirectWeight = def.DirectWeight
		cfg.CategoryWeight = def.CategoryWeight
	}
	if cfg.RecentWindow <= 0 {
		cfg.RecentWindow = def.RecentWindow
	}
	if cfg.FallbackWindow <= 0 {
		cfg.FallbackWindow = def.FallbackWindow
	}
	if cfg.SimilarityWeight < 0 || embedder == nil {
		cfg.SimilarityWeight = 0
	}
	return &Engine{cfg: cfg, embedder: embedder}
}

// NormalizeInterests lower-cases and trims tags, dropping empty ones.
func NormalizeInterests(interests []string) []string {
	out := make([]string, 0, len(interests))
	for _, interest := range interests {
		interest = strings.ToLower(strings.TrimSpace(interest))
		if interest == "" {
			continue
		}
		out = append(out, interest)
	}
	return out
}

// Score computes the keyword relevance of one article. interests must
// already be normalized.
func (e *Engine) Score(article domain.Article, interests []string) float64 {
	haystack := article.Haystack()

	var score float64
	for _, interest := range interests {
		if strings.Contains(haystack, interest) {
			score += e.cfg.DirectWeight
		}
	}

	for _, topic := range Topics {
		if !topic.Triggered(interests) {
			continue
		}
		for _, keyword := range topic.Keywords {
			if strings.Contains(haystack, keyword) {
				score += e.cfg.CategoryWeight
			}
		}
	}

	return score
}

type scored struct {
	article domain.Article
	score   float64
}

// Rank orders articles by relevance and applies the recency window with
// its fallback tiers. articles is expected in store order.
func (e *Engine) Rank(articles []domain.Article, interests []string, now time.Time, k int) []domain.Article {
	result := make([]domain.Article, 0, max(k, 0))
	if k <= 0 {
		return result
	}

	interests = NormalizeInterests(interests)
	var interestVec []float64
	if e.cfg.SimilarityWeight > 0 && len(interests) > 0 {
		interestVec = e.embedder.Embed(strings.Join(interests, " "))
	}

	ranked := make([]scored, 0, len(articles))
	for _, article := range articles {
		s := e.Score(article, interests)
		if interestVec != nil && len(article.Embedding) > 0 {
			s += e.cfg.SimilarityWeight * features.Cosine(interestVec, article.Embedding)
		}
		ranked = append(ranked, scored{article: article, score: s})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].score != ranked[j].score {
			return ranked[i].score > ranked[j].score
		}
		return newer(ranked[i].article, ranked[j].article)
	})

	now = now.UTC()
	recentCutoff := now.Add(-e.cfg.RecentWindow)

	recent := make([]domain.Article, 0, len(ranked))
	for _, item := range ranked {
		published, err := domain.ParsePublished(item.article.PublishedAt)
		if err != nil {
			continue
		}
		if !published.Before(recentCutoff) {
			recent = append(recent, item.article)
		}
	}

	included := make(map[string]struct{}, k)
	result = appendUpTo(result, included, recent[:min(k, len(recent))], k)

	// tier 1: remaining recent items regardless of rank
	if len(result) < k {
		result = appendUpTo(result, included, recent, k)
	}

	// tier 2: anything dated within the fallback window, in store order
	if len(result) < k {
		fallbackCutoff := now.Add(-e.cfg.FallbackWindow)
		for _, article := range articles {
			if len(result) >= k {
				break
			}
			published, err := domain.ParsePublished(article.PublishedAt)
			if err != nil || published.Before(fallbackCutoff) {
				continue
			}
			result = appendUpTo(result, included, []domain.Article{article}, k)
		}
	}

	return result
}

// Latest returns the k most recently created articles that carry a
// parseable publication date, without scoring.
func (e *Engine) Latest(articles []domain.Article, k int) []domain.Article {
	result := make([]domain.Article, 0, max(k, 0))
	if k <= 0 {
		return result
	}

	ordered := make([]domain.Article, len(articles))
	copy(ordered, articles)
	sort.SliceStable(ordered, func(i, j int) bool {
		return newer(ordered[i], ordered[j])
	})

	for _, article := range ordered {
		if len(result) >= k {
			break
		}
		if _, err := domain.ParsePublished(article.PublishedAt); err != nil {
			continue
		}
		result = append(result, article)
	}
	return result
}

func newer(a, b domain.Article) bool {
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.After(b.CreatedAt)
	}
	return a.ID > b.ID
}

func appendUpTo(dst []domain.Article, included map[string]struct{}, src []domain.Article, k int) []domain.Article {
	for _, article := range src {
		if len(dst) >= k {
			break
		}
		if _, ok := included[article.URL]; ok {
			continue
		}
		included[article.URL] = struct{}{}
		dst = append(dst, article)
	}
	return dst
}
