package domain

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrMissingURL   = errors.New("article url is empty")
	ErrMissingTitle = errors.New("article title is empty")
)

// RawArticle is the normalized output of a provider adapter before enrichment.
type RawArticle struct {
	URL         string
	Title       string
	Source      string
	Author      string
	PublishedAt string
	Description string
	Content     string
}

// Validate reports why the item cannot be ingested, if at all.
func (r RawArticle) Validate() error {
	if strings.TrimSpace(r.URL) == "" {
		return ErrMissingURL
	}
	if strings.TrimSpace(r.Title) == "" {
		return ErrMissingTitle
	}
	return nil
}

// CombinedText joins title, description and content, skipping empty fields.
func (r RawArticle) CombinedText() string {
	parts := make([]string, 0, 3)
	for _, field := range []string{r.Title, r.Description, r.Content} {
		if field != "" {
			parts = append(parts, field)
		}
	}
	return strings.Join(parts, " ")
}

// Article is a deduplicated, enriched news item persisted by URL.
type Article struct {
	ID          int64
	URL         string
	Title       string
	Source      string
	Author      string
	PublishedAt string
	Description string
	Content     string
	Summary     string
	Embedding   []float64
	CreatedAt   time.Time
}

// Haystack is the lower-cased searchable text used by keyword scoring.
func (a Article) Haystack() string {
	return strings.ToLower(a.Title + " " + a.Description + " " + a.Content)
}

// View projects the article to the shape returned by recommendations.
func (a Article) View() ArticleView {
	return ArticleView{
		ID:          a.ID,
		URL:         a.URL,
		Title:       a.Title,
		Source:      a.Source,
		PublishedAt: a.PublishedAt,
		Summary:     a.Summary,
	}
}

// ArticleView is the summary projection exposed to clients.
type ArticleView struct {
	ID          int64  `json:"id"`
	URL         string `json:"url"`
	Title       string `json:"title"`
	Source      string `json:"source"`
	PublishedAt string `json:"published_at"`
	Summary     string `json:"summary"`
}

// IngestResult reports the outcome of an interest-targeted ingestion.
type IngestResult struct {
	Ingested   int      `json:"ingested"`
	Categories []string `json:"categories,omitempty"`
}
