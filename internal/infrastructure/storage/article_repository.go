package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"NewsAggregator/internal/domain"
	"NewsAggregator/internal/ports"
)

const articlesTable = "articles"

var articleColumns = []string{
	"id", "url", "title", "source", "author", "published_at",
	"description", "content", "summary", "embedding", "created_at",
}

// ArticleRepository persists articles keyed by their unique URL.
type ArticleRepository struct {
	*DB
}

var _ ports.ArticleRepository = (*ArticleRepository)(nil)

// NewArticleRepository wires the repository to an open store.
func NewArticleRepository(db *DB) *ArticleRepository {
	return &ArticleRepository{DB: db}
}

// Exists reports whether an article with this exact URL is stored.
func (r *ArticleRepository) Exists(ctx context.Context, url string) (bool, error) {
	query, args, err := r.builder.Select("1").From(articlesTable).Where(sq.Eq{"url": url}).Limit(1).ToSql()
	if err != nil {
		return false, fmt.Errorf("storage: build exists: %w", err)
	}

	var one int
	err = r.db.QueryRowContext(ctx, query, args...).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("storage: exists %s: %w", url, err)
	}
	return true, nil
}

// Insert stores the article in one atomic statement. A concurrent insert of
// the same URL loses the conflict and reports false without error.
func (r *ArticleRepository) Insert(ctx context.Context, article domain.Article) (bool, error) {
	var embedding any
	if len(article.Embedding) > 0 {
		raw, err := json.Marshal(article.Embedding)
		if err != nil {
			return false, fmt.Errorf("storage: encode embedding: %w", err)
		}
		embedding = string(raw)
	}

	createdAt := article.CreatedAt
	if createdAt.IsZero() {
		createdAt = r.now()
	}

	query, args, err := r.builder.Insert(articlesTable).
		Columns(articleColumns[1:]...).
		Values(
			article.URL,
			article.Title,
			article.Source,
			article.Author,
			article.PublishedAt,
			article.Description,
			article.Content,
			article.Summary,
			embedding,
			createdAt.UTC().UnixNano(),
		).
		Suffix("ON CONFLICT (url) DO NOTHING RETURNING id").
		ToSql()
	if err != nil {
		return false, fmt.Errorf("storage: build insert: %w", err)
	}

	var id int64
	err = r.db.QueryRowContext(ctx, query, args...).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("storage: insert %s: %w", article.URL, err)
	}
	return true, nil
}

// List returns every stored article in insertion order.
func (r *ArticleRepository) List(ctx context.Context) ([]domain.Article, error) {
	query, args, err := r.builder.Select(articleColumns...).From(articlesTable).OrderBy("id ASC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("storage: build list: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: list articles: %w", err)
	}

	var result []domain.Article
	for rows.Next() {
		article, err := scanArticle(rows)
		if err != nil {
			_ = rows.Close()
			return nil, err
		}
		result = append(result, article)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		_ = rows.Close()
		return nil, fmt.Errorf("storage: iterate articles: %w", rowsErr)
	}

	if closeErr := rows.Close(); closeErr != nil {
		return nil, fmt.Errorf("storage: close rows: %w", closeErr)
	}

	return result, nil
}

// Count returns the number of stored articles.
func (r *ArticleRepository) Count(ctx context.Context) (int, error) {
	query, args, err := r.builder.Select("COUNT(*)").From(articlesTable).ToSql()
	if err != nil {
		return 0, fmt.Errorf("storage: build count: %w", err)
	}

	var count int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("storage: count articles: %w", err)
	}
	return count, nil
}

func scanArticle(rows *sql.Rows) (domain.Article, error) {
	var (
		article   domain.Article
		embedding sql.NullString
		createdAt int64
	)
	err := rows.Scan(
		&article.ID,
		&article.URL,
		&article.Title,
		&article.Source,
		&article.Author,
		&article.PublishedAt,
		&article.Description,
		&article.Content,
		&article.Summary,
		&embedding,
		&createdAt,
	)
	if err != nil {
		return domain.Article{}, fmt.Errorf("storage: scan article: %w", err)
	}

	if embedding.Valid && embedding.String != "" {
		if err := json.Unmarshal([]byte(embedding.String), &article.Embedding); err != nil {
			return domain.Article{}, fmt.Errorf("storage: decode embedding for %s: %w", article.URL, err)
		}
	}
	article.CreatedAt = time.Unix(0, createdAt).UTC()

	return article, nil
}
