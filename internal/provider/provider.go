package provider

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"NewsAggregator/internal/domain"
	"NewsAggregator/internal/metrics"
	"NewsAggregator/internal/ports"
)

const defaultFetchConcurrency = 4

// Registry keeps a mapping from provider names to their adapters.
type Registry struct {
	providers map[string]ports.ArticleProvider
}

// NewRegistry builds an empty registry.
func NewRegistry() *Registry {
	return &Registry{providers: map[string]ports.ArticleProvider{}}
}

// Register adds or replaces a provider implementation.
func (r *Registry) Register(p ports.ArticleProvider) {
	if r.providers == nil {
		r.providers = map[string]ports.ArticleProvider{}
	}
	r.providers[p.Name()] = p
}

// Resolve returns a provider by name or an error if it is absent.
func (r *Registry) Resolve(name string) (ports.ArticleProvider, error) {
	if p, ok := r.providers[name]; ok {
		return p, nil
	}
	return nil, fmt.Errorf("provider %s is not registered", name)
}

// Chain tries providers in priority order; the first non-empty answer wins.
// Provider failures stop here: they are logged and count as empty.
type Chain struct {
	providers   []ports.ArticleProvider
	concurrency int
	logger      *slog.Logger
}

var _ ports.ArticleSource = (*Chain)(nil)

// NewChain resolves the configured order against the registry. Unknown
// names are logged and skipped.
func NewChain(reg *Registry, order []string, log *slog.Logger) *Chain {
	c := &Chain{concurrency: defaultFetchConcurrency, logger: log}
	for _, name := range order {
		p, err := reg.Resolve(name)
		if err != nil {
			c.warn("skip provider", "provider", name, "error", err)
			continue
		}
		c.providers = append(c.providers, p)
	}
	return c
}

// Providers returns the resolved adapter names in priority order.
func (c *Chain) Providers() []string {
	names := make([]string, 0, len(c.providers))
	for _, p := range c.providers {
		names = append(names, p.Name())
	}
	return names
}

// Fetch never returns an error; an exhausted chain yields no items.
func (c *Chain) Fetch(ctx context.Context, q ports.ProviderQuery) []domain.RawArticle {
	for _, p := range c.providers {
		if ctx.Err() != nil {
			return nil
		}

		started := time.Now()
		items, err := p.Fetch(ctx, q)
		elapsed := time.Since(started).Seconds()

		switch {
		case err != nil:
			metrics.RecordFetch(p.Name(), "error", elapsed)
			c.warn("provider failed", "provider", p.Name(), "topic", q.Topic, "category", q.Category, "error", err)
		case len(items) == 0:
			metrics.RecordFetch(p.Name(), "empty", elapsed)
			c.debug("provider returned nothing", "provider", p.Name(), "topic", q.Topic, "category", q.Category)
		default:
			metrics.RecordFetch(p.Name(), "ok", elapsed)
			c.debug("provider answered", "provider", p.Name(), "topic", q.Topic, "category", q.Category, "count", len(items))
			return items
		}
	}
	return nil
}

// FetchCategories runs one Fetch per category concurrently and concatenates
// the results in category order.
func (c *Chain) FetchCategories(ctx context.Context, categories []string, limit int) []domain.RawArticle {
	batches := make([][]domain.RawArticle, len(categories))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.concurrency)
	for i, category := range categories {
		g.Go(func() error {
			batches[i] = c.Fetch(gctx, ports.ProviderQuery{Topic: category, Category: category, Limit: limit})
			return nil
		})
	}
	_ = g.Wait()

	var out []domain.RawArticle
	for _, batch := range batches {
		out = append(out, batch...)
	}
	return out
}

func (c *Chain) debug(msg string, args ...any) {
	if c.logger != nil {
		c.logger.Debug(msg, args...)
	}
}

func (c *Chain) warn(msg string, args ...any) {
	if c.logger != nil {
		c.logger.Warn(msg, args...)
	}
}
