package app

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"NewsAggregator/internal/api"
	"NewsAggregator/internal/config"
	"NewsAggregator/internal/features"
	"NewsAggregator/internal/infrastructure/llm"
	infraprovider "NewsAggregator/internal/infrastructure/provider"
	"NewsAggregator/internal/infrastructure/storage"
	"NewsAggregator/internal/logging"
	"NewsAggregator/internal/ports"
	"NewsAggregator/internal/provider"
	"NewsAggregator/internal/ranking"
	"NewsAggregator/internal/usecase"
)

// Application wires configuration to use cases and the HTTP surface.
type Application struct {
	cfg         config.Config
	logger      *slog.Logger
	db          *storage.DB
	Ingestor    *usecase.Ingestor
	Profiles    *usecase.Profiles
	Recommender *usecase.Recommender
	server      *echo.Echo
}

// New opens the store and builds every component.
func New(ctx context.Context, cfg config.Config, baseLogger *slog.Logger) (*Application, error) {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level)
	}

	db, err := storage.Open(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}
	articles := storage.NewArticleRepository(db)
	profiles := storage.NewProfileRepository(db)

	chain := provider.NewChain(NewRegistry(cfg.Providers, baseLogger), ProviderOrder(cfg.Providers), baseLogger.With("component", "provider.chain"))

	var generative ports.Summarizer
	if cfg.Summarizer.APIKey != "" {
		generative = llm.NewChatGPTClient(cfg.Summarizer)
	}
	summarizer := features.NewFallbackSummarizer(
		generative,
		features.Extractive{MaxSentences: cfg.Summarizer.MaxSentences},
		baseLogger.With("component", "summarizer"),
	)
	embedder := features.HashEmbedder{}

	ingestor := usecase.NewIngestor(usecase.IngestorDeps{
		Source:          chain,
		Articles:        articles,
		Summarizer:      summarizer,
		Embedder:        embedder,
		Logger:          baseLogger.With("component", "ingest"),
		DefaultTopic:    cfg.Ingestion.DefaultTopic,
		DailyCategories: cfg.Ingestion.DailyCategories,
		RetentionWindow: cfg.Ingestion.RetentionWindow,
		FetchLimit:      cfg.Ingestion.FetchLimit,
	})

	engine := ranking.NewEngine(ranking.Config{
		DirectWeight:     cfg.Ranking.DirectWeight,
		CategoryWeight:   cfg.Ranking.CategoryWeight,
		SimilarityWeight: cfg.Ranking.SimilarityWeight,
		RecentWindow:     cfg.Ranking.RecentWindow,
		FallbackWindow:   cfg.Ranking.FallbackWindow,
	}, embedder)
	recommender := usecase.NewRecommender(articles, profiles, engine, time.Now, baseLogger.With("component", "recommend"))
	profileService := usecase.NewProfiles(profiles, baseLogger.With("component", "profiles"))

	server := api.NewServer(api.Deps{
		Ingest:    ingestor,
		Profiles:  profileService,
		Recommend: recommender,
		Store:     db,
		DefaultK:  cfg.Ranking.DefaultK,
		MaxK:      cfg.Ranking.MaxK,
	}, baseLogger.With("component", "http"))

	baseLogger.Info("application ready",
		"database", db.Dialect(),
		"providers", chain.Providers(),
		"generative_summary", generative != nil)

	return &Application{
		cfg:         cfg,
		logger:      baseLogger,
		db:          db,
		Ingestor:    ingestor,
		Profiles:    profileService,
		Recommender: recommender,
		server:      server,
	}, nil
}

// Handler exposes the HTTP handler, mainly for tests.
func (a *Application) Handler() *echo.Echo {
	return a.server
}

// Run serves HTTP until ctx is cancelled.
func (a *Application) Run(ctx context.Context) error {
	return api.Serve(ctx, a.server, a.cfg.Server.Addr, a.logger.With("component", "http"))
}

// Close releases the store.
func (a *Application) Close() error {
	if a.db == nil {
		return nil
	}
	if err := a.db.Close(); err != nil {
		return fmt.Errorf("close store: %w", err)
	}
	return nil
}

// NewRegistry registers every provider adapter the configuration enables.
func NewRegistry(cfg config.ProviderConfig, log *slog.Logger) *provider.Registry {
	registry := provider.NewRegistry()

	registry.Register(infraprovider.NewNewsAPI(infraprovider.NewsAPIConfig{
		Endpoint: cfg.NewsAPI.Endpoint,
		APIKey:   cfg.NewsAPI.APIKey,
		Country:  cfg.NewsAPI.Country,
		PageSize: cfg.NewsAPI.PageSize,
		Filter: infraprovider.Filter{
			AllowedSources:    cfg.NewsAPI.AllowedSources,
			RequireASCIITitle: true,
		},
		HTTP: infraprovider.HTTPOptions{Timeout: cfg.Timeout, MinInterval: cfg.NewsAPI.MinInterval},
	}, log.With("component", "provider.newsapi")))

	registry.Register(infraprovider.NewGDELT(infraprovider.GDELTConfig{
		Endpoint:   cfg.GDELT.Endpoint,
		MaxRecords: cfg.GDELT.MaxRecords,
		Filter: infraprovider.Filter{
			AllowedSources:    cfg.GDELT.AllowedDomains,
			RequireASCIITitle: true,
			MinLatinRatio:     0.6,
			Languages:         cfg.GDELT.Languages,
		},
		HTTP: infraprovider.HTTPOptions{Timeout: cfg.Timeout, MinInterval: cfg.GDELT.MinInterval},
	}, log.With("component", "provider.gdelt")))

	registry.Register(infraprovider.NewRSS(infraprovider.RSSConfig{
		Feeds:    cfg.RSS.Feeds,
		MaxItems: cfg.RSS.MaxItems,
		HTTP:     infraprovider.HTTPOptions{Timeout: cfg.Timeout},
	}, log.With("component", "provider.rss")))

	if cfg.Sample.Enabled {
		registry.Register(infraprovider.NewSample(time.Now))
	}

	return registry
}

// ProviderOrder drops the sample provider from the order unless enabled.
func ProviderOrder(cfg config.ProviderConfig) []string {
	order := make([]string, 0, len(cfg.Order))
	for _, name := range cfg.Order {
		name = strings.ToLower(strings.TrimSpace(name))
		if name == infraprovider.SampleName && !cfg.Sample.Enabled {
			continue
		}
		order = append(order, name)
	}
	return order
}
