package provider

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"
)

const (
	userAgent       = "NewsAggregator/0.1 (+noncommercial)"
	defaultTimeout  = 20 * time.Second
	maxResponseSize = 8 << 20
)

// HTTPOptions tunes the outbound client shared by HTTP-backed adapters.
type HTTPOptions struct {
	Client          *http.Client
	Timeout         time.Duration
	MinInterval     time.Duration
	BreakerFailures uint32
	BreakerCooldown time.Duration
}

type httpGetter struct {
	client  *http.Client
	limiter *rate.Limiter
	breaker *gobreaker.CircuitBreaker
}

func newHTTPGetter(name string, opts HTTPOptions, log *slog.Logger) *httpGetter {
	client := opts.Client
	if client == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		client = &http.Client{Timeout: timeout}
	}

	var limiter *rate.Limiter
	if opts.MinInterval > 0 {
		limiter = rate.NewLimiter(rate.Every(opts.MinInterval), 1)
	}

	failures := opts.BreakerFailures
	if failures == 0 {
		failures = 5
	}
	cooldown := opts.BreakerCooldown
	if cooldown <= 0 {
		cooldown = time.Minute
	}

	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Timeout:     cooldown,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= failures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			if log != nil {
				log.Warn("provider circuit changed state", "provider", name, "from", from.String(), "to", to.String())
			}
		},
		IsSuccessful: func(err error) bool {
			// caller cancellation says nothing about provider health
			return err == nil || errors.Is(err, context.Canceled)
		},
	})

	return &httpGetter{client: client, limiter: limiter, breaker: breaker}
}

func (g *httpGetter) get(ctx context.Context, endpoint string, params url.Values, header http.Header) ([]byte, error) {
	if g.limiter != nil {
		if err := g.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limit: %w", err)
		}
	}

	body, err := g.breaker.Execute(func() (interface{}, error) {
		return g.do(ctx, endpoint, params, header)
	})
	if err != nil {
		return nil, err
	}
	return body.([]byte), nil
}

func (g *httpGetter) getJSON(ctx context.Context, endpoint string, params url.Values, header http.Header, v any) error {
	body, err := g.get(ctx, endpoint, params, header)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (g *httpGetter) do(ctx context.Context, endpoint string, params url.Values, header http.Header) ([]byte, error) {
	target := endpoint
	if len(params) > 0 {
		sep := "?"
		if strings.Contains(endpoint, "?") {
			sep = "&"
		}
		target = endpoint + sep + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	for key, values := range header {
		for _, value := range values {
			req.Header.Add(key, value)
		}
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("unexpected status %s: %s", resp.Status, strings.TrimSpace(string(snippet)))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	return body, nil
}
