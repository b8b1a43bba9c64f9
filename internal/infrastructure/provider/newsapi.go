package provider

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"NewsAggregator/internal/domain"
	"NewsAggregator/internal/ports"
)

const (
	NewsAPIName            = "newsapi"
	DefaultNewsAPIEndpoint = "https://newsapi.org/v2/top-headlines"
	removedPlaceholder     = "[Removed]"
)

var newsAPICategories = map[string]bool{
	"business":      true,
	"entertainment": true,
	"general":       true,
	"health":        true,
	"science":       true,
	"sports":        true,
	"technology":    true,
}

// NewsAPIConfig configures the NewsAPI top-headlines adapter.
type NewsAPIConfig struct {
	Endpoint string
	APIKey   string
	Country  string
	PageSize int
	Filter   Filter
	HTTP     HTTPOptions
}

// NewsAPI fetches top headlines from newsapi.org.
//
// Filtering: drops the "[Removed]" placeholders NewsAPI returns for taken
// down stories, applies the title checks of Filter and the source-name
// allow-list. Without an API key it always returns nothing.
type NewsAPI struct {
	cfg    NewsAPIConfig
	http   *httpGetter
	logger *slog.Logger
}

var _ ports.ArticleProvider = (*NewsAPI)(nil)

// NewNewsAPI builds the adapter; defaults: us headlines, 50 per page.
func NewNewsAPI(cfg NewsAPIConfig, log *slog.Logger) *NewsAPI {
	if cfg.Endpoint == "" {
		cfg.Endpoint = DefaultNewsAPIEndpoint
	}
	if cfg.Country == "" {
		cfg.Country = "us"
	}
	if cfg.PageSize <= 0 {
		cfg.PageSize = 50
	}
	return &NewsAPI{cfg: cfg, http: newHTTPGetter(NewsAPIName, cfg.HTTP, log), logger: log}
}

func (n *NewsAPI) Name() string { return NewsAPIName }

type newsAPIResponse struct {
	Status   string `json:"status"`
	Code     string `json:"code"`
	Message  string `json:"message"`
	Articles []struct {
		Source struct {
			Name string `json:"name"`
		} `json:"source"`
		Author      string `json:"author"`
		Title       string `json:"title"`
		Description string `json:"description"`
		URL         string `json:"url"`
		PublishedAt string `json:"publishedAt"`
		Content     string `json:"content"`
	} `json:"articles"`
}

// Fetch maps a known NewsAPI category to the category filter and any other
// topic to a free-text query.
func (n *NewsAPI) Fetch(ctx context.Context, q ports.ProviderQuery) ([]domain.RawArticle, error) {
	if n.cfg.APIKey == "" {
		return nil, nil
	}

	pageSize := n.cfg.PageSize
	if q.Limit > 0 && q.Limit < pageSize {
		pageSize = q.Limit
	}

	params := url.Values{}
	params.Set("country", n.cfg.Country)
	params.Set("pageSize", strconv.Itoa(pageSize))

	category := strings.ToLower(strings.TrimSpace(q.Category))
	if category == "" {
		category = strings.ToLower(strings.TrimSpace(q.Topic))
	}
	switch {
	case newsAPICategories[category]:
		params.Set("category", category)
	case strings.TrimSpace(q.Topic) != "":
		params.Set("q", strings.TrimSpace(q.Topic))
	}

	header := http.Header{}
	header.Set("X-Api-Key", n.cfg.APIKey)

	var resp newsAPIResponse
	if err := n.http.getJSON(ctx, n.cfg.Endpoint, params, header, &resp); err != nil {
		return nil, fmt.Errorf("newsapi: %w", err)
	}
	if resp.Status == "error" {
		return nil, fmt.Errorf("newsapi: %s: %s", resp.Code, resp.Message)
	}

	out := make([]domain.RawArticle, 0, len(resp.Articles))
	for _, item := range resp.Articles {
		raw := domain.RawArticle{
			URL:         strings.TrimSpace(item.URL),
			Title:       cleanInline(item.Title),
			Source:      strings.TrimSpace(item.Source.Name),
			Author:      cleanInline(item.Author),
			PublishedAt: normalizePublished(item.PublishedAt),
			Description: cleanInline(item.Description),
			Content:     cleanBody(item.Content),
		}

		if raw.Title == removedPlaceholder || raw.URL == "https://removed.com" {
			continue
		}
		if !n.cfg.Filter.allowTitle(raw.Title) || !n.cfg.Filter.allowSource(raw.Source) {
			n.debug("newsapi item filtered", "url", raw.URL, "source", raw.Source)
			continue
		}
		out = append(out, raw)
	}

	return out, nil
}

func (n *NewsAPI) debug(msg string, args ...any) {
	if n.logger != nil {
		n.logger.Debug(msg, args...)
	}
}

// normalizePublished rewrites parseable timestamps to RFC 3339 UTC and
// leaves anything else untouched for the ranking stage to reject.
func normalizePublished(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}
	t, err := domain.ParsePublished(value)
	if err != nil {
		return value
	}
	return domain.FormatPublished(t)
}
