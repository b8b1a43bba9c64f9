package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"NewsAggregator/internal/domain"
)

const defaultTimeout = 60 * time.Second

// StatusError is returned for non-2xx responses.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("news service returned %d", e.Code)
	}
	return fmt.Sprintf("news service returned %d: %s", e.Code, e.Message)
}

// Client talks to the news aggregator HTTP service.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New builds a client for baseURL. A nil httpClient gets a default with a
// 60 second timeout.
func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), httpClient: httpClient}
}

// IngestTopic triggers a topic ingestion and returns the stored count.
func (c *Client) IngestTopic(ctx context.Context, query string) (int, error) {
	params := url.Values{}
	if query != "" {
		params.Set("query", query)
	}

	var count int
	if err := c.do(ctx, http.MethodPost, "/ingest", params, nil, &count); err != nil {
		return 0, err
	}
	return count, nil
}

// IngestForInterests triggers an interest-targeted ingestion.
func (c *Client) IngestForInterests(ctx context.Context, interests []string) (domain.IngestResult, error) {
	var result domain.IngestResult
	body := map[string][]string{"interests": nonNil(interests)}
	if err := c.do(ctx, http.MethodPost, "/ingest/interests", nil, body, &result); err != nil {
		return domain.IngestResult{}, err
	}
	return result, nil
}

// DailyUpdate triggers the recency-targeted ingestion.
func (c *Client) DailyUpdate(ctx context.Context) (domain.IngestResult, error) {
	var result domain.IngestResult
	if err := c.do(ctx, http.MethodPost, "/daily-update", nil, nil, &result); err != nil {
		return domain.IngestResult{}, err
	}
	return result, nil
}

// SetProfile replaces the user's interests.
func (c *Client) SetProfile(ctx context.Context, userID string, interests []string) error {
	body := domain.UserProfile{UserID: userID, Interests: nonNil(interests)}
	return c.do(ctx, http.MethodPost, "/profile", nil, body, nil)
}

// GetProfile reads back a profile; a missing one yields domain.ErrProfileNotFound.
func (c *Client) GetProfile(ctx context.Context, userID string) (domain.UserProfile, error) {
	var profile domain.UserProfile
	err := c.do(ctx, http.MethodGet, "/profile/"+url.PathEscape(userID), nil, nil, &profile)
	var statusErr *StatusError
	if errors.As(err, &statusErr) && statusErr.Code == http.StatusNotFound {
		return domain.UserProfile{}, domain.ErrProfileNotFound
	}
	if err != nil {
		return domain.UserProfile{}, err
	}
	return profile, nil
}

// Recommend fetches up to k recommendations for the user.
func (c *Client) Recommend(ctx context.Context, userID string, k int) ([]domain.ArticleView, error) {
	params := url.Values{}
	params.Set("user_id", userID)
	params.Set("k", strconv.Itoa(k))

	var views []domain.ArticleView
	if err := c.do(ctx, http.MethodGet, "/recommendations", params, nil, &views); err != nil {
		return nil, err
	}
	return views, nil
}

func (c *Client) do(ctx context.Context, method, path string, params url.Values, body, out any) error {
	endpoint := c.baseURL + path
	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		var payload struct {
			Error string `json:"error"`
		}
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		if json.Unmarshal(raw, &payload) != nil || payload.Error == "" {
			payload.Error = strings.TrimSpace(string(raw))
		}
		return &StatusError{Code: resp.StatusCode, Message: payload.Error}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
