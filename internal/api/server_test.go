package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"NewsAggregator/internal/api"
	"NewsAggregator/internal/domain"
)

type fakeIngest struct {
	topic     string
	interests []string
	err       error
}

func (f *fakeIngest) IngestTopic(_ context.Context, topic string) (int, error) {
	f.topic = topic
	return 3, f.err
}

func (f *fakeIngest) IngestForInterests(_ context.Context, interests []string) (domain.IngestResult, error) {
	f.interests = interests
	return domain.IngestResult{Ingested: 2, Categories: []string{"technology"}}, f.err
}

func (f *fakeIngest) DailyUpdate(context.Context) (domain.IngestResult, error) {
	return domain.IngestResult{Ingested: 7}, f.err
}

type fakeProfiles struct {
	stored map[string][]string
	err    error
}

func (f *fakeProfiles) SetProfile(_ context.Context, userID string, interests []string) error {
	if f.err != nil {
		return f.err
	}
	f.stored[userID] = interests
	return nil
}

func (f *fakeProfiles) GetProfile(_ context.Context, userID string) (domain.UserProfile, error) {
	interests, ok := f.stored[userID]
	if !ok {
		return domain.UserProfile{}, domain.ErrProfileNotFound
	}
	return domain.UserProfile{UserID: userID, Interests: interests}, nil
}

type fakeRecommend struct {
	userID string
	k      int
	err    error
}

func (f *fakeRecommend) Recommend(_ context.Context, userID string, k int) ([]domain.ArticleView, error) {
	f.userID, f.k = userID, k
	if f.err != nil {
		return nil, f.err
	}
	return []domain.ArticleView{{ID: 1, URL: "https://a.example/1", Title: "One", PublishedAt: "2025-01-10T10:00:00Z"}}, nil
}

type fixture struct {
	ingest    *fakeIngest
	profiles  *fakeProfiles
	recommend *fakeRecommend
	handler   http.Handler
}

func newFixture() *fixture {
	f := &fixture{
		ingest:    &fakeIngest{},
		profiles:  &fakeProfiles{stored: map[string][]string{}},
		recommend: &fakeRecommend{},
	}
	f.handler = api.NewServer(api.Deps{
		Ingest:    f.ingest,
		Profiles:  f.profiles,
		Recommend: f.recommend,
	}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	return f
}

func (f *fixture) do(method, target, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)
	return rec
}

func TestIngestReturnsCount(t *testing.T) {
	f := newFixture()

	rec := f.do(http.MethodPost, "/ingest?query=science", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `3`, rec.Body.String())
	assert.Equal(t, "science", f.ingest.topic)
	assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))
}

func TestIngestInterests(t *testing.T) {
	f := newFixture()

	rec := f.do(http.MethodPost, "/ingest/interests", `{"interests":["ai","golf"]}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"ingested":2,"categories":["technology"]}`, rec.Body.String())
	assert.Equal(t, []string{"ai", "golf"}, f.ingest.interests)

	rec = f.do(http.MethodPost, "/ingest/interests", `{"interests":["ai,ml"]}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDailyUpdate(t *testing.T) {
	rec := newFixture().do(http.MethodPost, "/daily-update", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"ingested":7}`, rec.Body.String())
}

func TestProfileRoundTrip(t *testing.T) {
	f := newFixture()

	rec := f.do(http.MethodGet, "/profile/bob", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = f.do(http.MethodPost, "/profile", `{"user_id":"bob","interests":["golf"]}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"ok":true}`, rec.Body.String())

	rec = f.do(http.MethodGet, "/profile/bob", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"user_id":"bob","interests":["golf"]}`, rec.Body.String())
}

func TestProfileValidation(t *testing.T) {
	f := newFixture()

	tooMany := make([]string, 51)
	for i := range tooMany {
		tooMany[i] = "tag"
	}
	body, err := json.Marshal(map[string]any{"user_id": "bob", "interests": tooMany})
	require.NoError(t, err)

	tests := map[string]string{
		"missing user":    `{"interests":["golf"]}`,
		"comma in tag":    `{"user_id":"bob","interests":["golf,tennis"]}`,
		"too many tags":   string(body),
		"malformed json":  `{"user_id":`,
		"wrong type tags": `{"user_id":"bob","interests":"golf"}`,
	}

	for name, payload := range tests {
		t.Run(name, func(t *testing.T) {
			rec := f.do(http.MethodPost, "/profile", payload)
			assert.Equal(t, http.StatusBadRequest, rec.Code)

			var resp map[string]any
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.NotEmpty(t, resp["error"])
		})
	}
	assert.Empty(t, f.profiles.stored)
}

func TestRecommendations(t *testing.T) {
	f := newFixture()

	rec := f.do(http.MethodGet, "/recommendations?user_id=bob", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 10, f.recommend.k)
	assert.Equal(t, "bob", f.recommend.userID)

	var views []domain.ArticleView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &views))
	require.Len(t, views, 1)
	assert.Equal(t, "One", views[0].Title)

	for _, target := range []string{
		"/recommendations",
		"/recommendations?user_id=bob&k=0",
		"/recommendations?user_id=bob&k=101",
		"/recommendations?user_id=bob&k=ten",
	} {
		rec = f.do(http.MethodGet, target, "")
		assert.Equal(t, http.StatusBadRequest, rec.Code, target)
	}
}

func TestStoreFailureIsInternalError(t *testing.T) {
	f := newFixture()
	f.recommend.err = errors.New("database is locked")

	rec := f.do(http.MethodGet, "/recommendations?user_id=bob&k=5", "")
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"internal server error"}`, rec.Body.String())
}

func TestHealthAndMetrics(t *testing.T) {
	f := newFixture()

	rec := f.do(http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())

	rec = f.do(http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}
