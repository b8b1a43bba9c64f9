package provider

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"
	"strings"

	"NewsAggregator/internal/domain"
	"NewsAggregator/internal/ports"
)

const (
	GDELTName            = "gdelt"
	DefaultGDELTEndpoint = "https://api.gdeltproject.org/api/v2/doc/doc"
)

// GDELTConfig configures the GDELT DOC 2.0 article-list adapter.
type GDELTConfig struct {
	Endpoint   string
	MaxRecords int
	Filter     Filter
	HTTP       HTTPOptions
}

// GDELT queries the GDELT document API in artlist mode.
//
// Filtering: items whose language label is not in Filter.Languages are
// dropped, as are titles failing the title checks and domains outside the
// allow-list. GDELT has no description field, so the title doubles as one.
type GDELT struct {
	cfg    GDELTConfig
	http   *httpGetter
	logger *slog.Logger
}

var _ ports.ArticleProvider = (*GDELT)(nil)

// NewGDELT builds the adapter; MaxRecords defaults to 80.
func NewGDELT(cfg GDELTConfig, log *slog.Logger) *GDELT {
	if cfg.Endpoint == "" {
		cfg.Endpoint = DefaultGDELTEndpoint
	}
	if cfg.MaxRecords <= 0 {
		cfg.MaxRecords = 80
	}
	return &GDELT{cfg: cfg, http: newHTTPGetter(GDELTName, cfg.HTTP, log), logger: log}
}

func (g *GDELT) Name() string { return GDELTName }

type gdeltResponse struct {
	Articles []struct {
		URL      string `json:"url"`
		Title    string `json:"title"`
		SeenDate string `json:"seendate"`
		Domain   string `json:"domain"`
		Language string `json:"language"`
		Snippet  string `json:"snippet"`
	} `json:"articles"`
}

func (g *GDELT) Fetch(ctx context.Context, q ports.ProviderQuery) ([]domain.RawArticle, error) {
	query := strings.TrimSpace(q.Topic)
	if query == "" {
		query = strings.TrimSpace(q.Category)
	}
	if query == "" {
		return nil, nil
	}

	maxRecords := g.cfg.MaxRecords
	if q.Limit > 0 && q.Limit < maxRecords {
		maxRecords = q.Limit
	}

	params := url.Values{}
	params.Set("query", query)
	params.Set("mode", "artlist")
	params.Set("maxrecords", strconv.Itoa(maxRecords))
	params.Set("format", "json")

	var resp gdeltResponse
	if err := g.http.getJSON(ctx, g.cfg.Endpoint, params, nil, &resp); err != nil {
		return nil, fmt.Errorf("gdelt: %w", err)
	}

	out := make([]domain.RawArticle, 0, len(resp.Articles))
	for _, item := range resp.Articles {
		title := cleanInline(item.Title)
		raw := domain.RawArticle{
			URL:         strings.TrimSpace(item.URL),
			Title:       title,
			Source:      strings.TrimSpace(item.Domain),
			PublishedAt: normalizePublished(item.SeenDate),
			Description: title,
			Content:     cleanBody(item.Snippet),
		}

		if !g.cfg.Filter.allowLanguage(item.Language) ||
			!g.cfg.Filter.allowTitle(raw.Title) ||
			!g.cfg.Filter.allowSource(raw.Source) {
			g.debug("gdelt item filtered", "url", raw.URL, "language", item.Language, "domain", raw.Source)
			continue
		}
		out = append(out, raw)
	}

	return out, nil
}

func (g *GDELT) debug(msg string, args ...any) {
	if g.logger != nil {
		g.logger.Debug(msg, args...)
	}
}
