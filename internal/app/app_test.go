package app

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"NewsAggregator/internal/config"
	"NewsAggregator/internal/domain"
)

func newTestApp(t *testing.T) *Application {
	t.Helper()

	cfg := config.Config{
		Database: config.DatabaseConfig{Driver: "sqlite", DSN: filepath.Join(t.TempDir(), "news.db")},
		Providers: config.ProviderConfig{
			Order:  []string{"sample"},
			Sample: config.SampleConfig{Enabled: true},
		},
		Ranking: config.RankingConfig{DefaultK: 10, MaxK: 100},
	}

	application, err := New(context.Background(), cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	t.Cleanup(func() { _ = application.Close() })
	return application
}

func call(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestEndToEndWithSampleProvider(t *testing.T) {
	h := newTestApp(t).Handler()

	rec := call(t, h, http.MethodPost, "/ingest", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "5", strings.TrimSpace(rec.Body.String()))

	rec = call(t, h, http.MethodPost, "/ingest", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "0", strings.TrimSpace(rec.Body.String()))

	rec = call(t, h, http.MethodPost, "/profile", `{"user_id":"sam","interests":["sports"]}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = call(t, h, http.MethodGet, "/recommendations?user_id=sam&k=3", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var views []domain.ArticleView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &views))
	require.Len(t, views, 3)
	assert.Equal(t, "Lakers Secure Crucial Victory", views[0].Title)
	assert.NotEmpty(t, views[0].Summary)

	rec = call(t, h, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestProviderOrderDropsDisabledSample(t *testing.T) {
	order := ProviderOrder(config.ProviderConfig{Order: []string{"NewsAPI", "sample", "rss"}})
	assert.Equal(t, []string{"newsapi", "rss"}, order)

	order = ProviderOrder(config.ProviderConfig{Order: []string{"sample"}, Sample: config.SampleConfig{Enabled: true}})
	assert.Equal(t, []string{"sample"}, order)
}
