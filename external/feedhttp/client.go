// Package feedhttp is the HTTP plumbing shared by provider feeds: retries with
// linear backoff, a per-provider circuit breaker, request collapsing and an
// optional response cache.
package feedhttp

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/valyala/bytebufferpool"
	"golang.org/x/sync/singleflight"

	"github.com/riskibarqy/film-grading/internal/platform/logging"
	"github.com/riskibarqy/film-grading/internal/platform/resilience"
	"github.com/riskibarqy/film-grading/internal/usecase"
)

const maxBodyBytes = 8 << 20

var errTransient = crerr.New("provider transient failure")

// ResponseCache stores raw provider bodies by request key.
type ResponseCache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// Observer receives request outcomes and breaker transitions.
type Observer interface {
	ObserveProvider(provider, outcome string)
	SetCircuitState(provider, state string)
}

type Config struct {
	Name           string
	BaseURL        string
	HTTPClient     *http.Client
	Timeout        time.Duration
	Retry          resilience.RetryConfig
	CircuitBreaker resilience.CircuitBreakerConfig
	Cache          ResponseCache
	CacheTTL       time.Duration
	Headers        map[string]string
	Logger         *logging.Logger
	Observer       Observer
}

type Client struct {
	name           string
	baseURL        string
	httpClient     *http.Client
	retry          resilience.RetryConfig
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
	cache          ResponseCache
	cacheTTL       time.Duration
	headers        map[string]string
	logger         *logging.Logger
	observer       Observer
	flight         singleflight.Group
}

func New(cfg Config) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	name := strings.TrimSpace(cfg.Name)
	if name == "" {
		name = "provider"
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = 15 * time.Second
	}

	breakerCfg := cfg.CircuitBreaker.Normalized()
	c := &Client{
		name:           name,
		baseURL:        strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"),
		httpClient:     httpClient,
		retry:          cfg.Retry.Normalized(),
		breaker:        resilience.NewCircuitBreaker(name, breakerCfg),
		circuitEnabled: breakerCfg.Enabled,
		cache:          cfg.Cache,
		cacheTTL:       cfg.CacheTTL,
		headers:        cfg.Headers,
		logger:         logger.With("provider", name),
		observer:       cfg.Observer,
	}
	if c.observer != nil {
		c.observer.SetCircuitState(name, string(resilience.CircuitStateClosed))
		c.breaker.OnStateChange(func(provider string, from, to resilience.CircuitState) {
			c.observer.SetCircuitState(provider, string(to))
		})
	}
	return c
}

func (c *Client) Name() string {
	return c.name
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

func (c *Client) CircuitState() resilience.CircuitState {
	return c.breaker.State()
}

// GetJSON fetches path and decodes the body into target. The raw body is returned as well.
func (c *Client) GetJSON(ctx context.Context, path string, query url.Values, target any) ([]byte, error) {
	raw, err := c.Get(ctx, path, query)
	if err != nil {
		return nil, err
	}
	if err := sonic.Unmarshal(raw, target); err != nil {
		return nil, fmt.Errorf("decode %s payload: %w", c.name, err)
	}
	return raw, nil
}

// Get fetches path relative to the base URL. Identical concurrent requests
// share one upstream call; cached bodies skip the network entirely.
func (c *Client) Get(ctx context.Context, path string, query url.Values) ([]byte, error) {
	fullURL := buildURL(c.baseURL, path)
	if encoded := query.Encode(); encoded != "" {
		fullURL += "?" + encoded
	}
	key := c.name + ":" + fullURL

	if raw, ok := c.cached(ctx, key); ok {
		c.observe("cache_hit")
		return raw, nil
	}

	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.observe("circuit_open")
			c.logger.WarnContext(ctx, "provider circuit breaker rejected request", "state", c.breaker.State())
			return nil, fmt.Errorf("%w: %s is temporarily unavailable", usecase.ErrDependencyUnavailable, c.name)
		}
	}

	out, err, _ := c.flight.Do(key, func() (any, error) {
		raw, reqErr := c.executeRequest(ctx, fullURL)
		if c.circuitEnabled {
			if isCircuitFailure(reqErr) {
				c.breaker.RecordFailure()
			} else {
				c.breaker.RecordSuccess()
			}
		}
		return raw, reqErr
	})
	if err != nil {
		c.observe("error")
		if isCircuitFailure(err) {
			return nil, fmt.Errorf("%w: %v", usecase.ErrDependencyUnavailable, err)
		}
		return nil, err
	}

	raw, ok := out.([]byte)
	if !ok {
		return nil, fmt.Errorf("unexpected response payload type %T", out)
	}
	c.observe("ok")
	c.store(ctx, key, raw)
	return raw, nil
}

func (c *Client) executeRequest(ctx context.Context, fullURL string) ([]byte, error) {
	var lastErr error
	for attempt := 1; attempt <= c.retry.MaxAttempts; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}
		req.Header.Set("accept", "application/json, text/html;q=0.9, text/csv;q=0.8")
		for k, v := range c.headers {
			req.Header.Set(k, v)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			lastErr = fmt.Errorf("%w: send request: %v", errTransient, err)
		} else {
			raw, readErr := readBody(resp.Body)
			_ = resp.Body.Close()
			switch {
			case readErr != nil:
				lastErr = fmt.Errorf("%w: read response body: %v", errTransient, readErr)
			case resp.StatusCode >= 200 && resp.StatusCode < 300:
				return raw, nil
			case resp.StatusCode == http.StatusNotFound:
				return nil, fmt.Errorf("%w: %s status=404 url=%s", usecase.ErrNotFound, c.name, fullURL)
			case isRetryableStatus(resp.StatusCode):
				lastErr = fmt.Errorf("%w: provider status=%d body=%s", errTransient, resp.StatusCode, abbreviateBody(raw))
			default:
				return nil, fmt.Errorf("provider status=%d body=%s", resp.StatusCode, abbreviateBody(raw))
			}
		}

		if attempt == c.retry.MaxAttempts {
			break
		}
		timer := time.NewTimer(c.retry.Delay(attempt))
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("%w: provider request failed", errTransient)
	}
	c.logger.WarnContext(ctx, "provider request failed", "url", fullURL, "attempts", c.retry.MaxAttempts, "error", lastErr)
	return nil, lastErr
}

// readBody drains at most maxBodyBytes through a pooled buffer and returns a copy.
func readBody(body io.Reader) ([]byte, error) {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	if _, err := buf.ReadFrom(io.LimitReader(body, maxBodyBytes)); err != nil {
		return nil, err
	}
	return append([]byte(nil), buf.B...), nil
}

func (c *Client) cached(ctx context.Context, key string) ([]byte, bool) {
	if c.cache == nil || c.cacheTTL <= 0 {
		return nil, false
	}
	raw, ok, err := c.cache.Get(ctx, key)
	if err != nil {
		c.logger.WarnContext(ctx, "provider cache read failed", "error", err)
		return nil, false
	}
	return raw, ok
}

func (c *Client) store(ctx context.Context, key string, raw []byte) {
	if c.cache == nil || c.cacheTTL <= 0 {
		return
	}
	if err := c.cache.Set(ctx, key, raw, c.cacheTTL); err != nil {
		c.logger.WarnContext(ctx, "provider cache write failed", "error", err)
	}
}

func (c *Client) observe(outcome string) {
	if c.observer != nil {
		c.observer.ObserveProvider(c.name, outcome)
	}
}

func isCircuitFailure(err error) bool {
	return err != nil && stderrors.Is(err, errTransient)
}

func isRetryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
}

func abbreviateBody(body []byte) string {
	text := strings.TrimSpace(string(body))
	if len(text) <= 240 {
		return text
	}
	return text[:240] + "..."
}

func buildURL(baseURL, path string) string {
	path = strings.TrimSpace(path)
	if path == "" {
		return baseURL
	}
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return baseURL + path
}
