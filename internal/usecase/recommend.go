package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"NewsAggregator/internal/domain"
	"NewsAggregator/internal/metrics"
	"NewsAggregator/internal/ports"
	"NewsAggregator/internal/ranking"
)

// Recommender answers recommendation queries from the stored articles.
type Recommender struct {
	articles ports.ArticleRepository
	profiles ports.ProfileRepository
	engine   *ranking.Engine
	logger   *slog.Logger
	now      func() time.Time
}

// NewRecommender wires the recommendation use case. A nil engine uses the
// default ranking configuration and a nil clock uses time.Now.
func NewRecommender(articles ports.ArticleRepository, profiles ports.ProfileRepository, engine *ranking.Engine, now func() time.Time, log *slog.Logger) *Recommender {
	if engine == nil {
		engine = ranking.NewEngine(ranking.DefaultConfig(), nil)
	}
	if now == nil {
		now = time.Now
	}
	return &Recommender{articles: articles, profiles: profiles, engine: engine, logger: log, now: now}
}

// Recommend returns up to k article views for the user. Users without a
// profile, or with no interests, get the latest articles unscored.
func (r *Recommender) Recommend(ctx context.Context, userID string, k int) ([]domain.ArticleView, error) {
	views := make([]domain.ArticleView, 0, max(k, 0))
	if k <= 0 {
		return views, nil
	}

	started := time.Now()
	userID = domain.NormalizeUserID(userID)

	profile, found, err := r.profiles.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load profile %q: %w", userID, err)
	}

	articles, err := r.articles.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("load articles: %w", err)
	}

	path := "ranked"
	var picked []domain.Article
	if !found || len(ranking.NormalizeInterests(profile.Interests)) == 0 {
		path = "latest"
		picked = r.engine.Latest(articles, k)
	} else {
		picked = r.engine.Rank(articles, profile.Interests, r.now(), k)
	}

	for _, article := range picked {
		views = append(views, article.View())
	}

	metrics.RecordRecommend(path, time.Since(started).Seconds())
	if r.logger != nil {
		r.logger.Debug("recommendations served", "user_id", userID, "path", path, "candidates", len(articles), "returned", len(views))
	}
	return views, nil
}
