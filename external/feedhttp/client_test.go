package feedhttp

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"github.com/riskibarqy/film-grading/internal/infrastructure/responsecache"
	"github.com/riskibarqy/film-grading/internal/platform/logging"
	"github.com/riskibarqy/film-grading/internal/platform/resilience"
	"github.com/riskibarqy/film-grading/internal/usecase"
)

type recordingObserver struct {
	outcomes []string
	states   []string
}

func (o *recordingObserver) ObserveProvider(_, outcome string) { o.outcomes = append(o.outcomes, outcome) }
func (o *recordingObserver) SetCircuitState(_, state string)   { o.states = append(o.states, state) }

func newTestClient(baseURL string, cfg Config) *Client {
	cfg.Name = "espn"
	cfg.BaseURL = baseURL
	cfg.Logger = logging.NewNop()
	if cfg.Retry.MaxAttempts == 0 {
		cfg.Retry = resilience.RetryConfig{MaxAttempts: 3, Backoff: time.Millisecond}
	}
	return New(cfg)
}

func TestClient_GetJSON_RetriesTransientStatus(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		if r.URL.Query().Get("event") != "401" {
			t.Errorf("unexpected query %q", r.URL.RawQuery)
		}
		_, _ = w.Write([]byte(`{"id":"401"}`))
	}))
	defer srv.Close()

	client := newTestClient(srv.URL, Config{})
	var out struct {
		ID string `json:"id"`
	}
	if _, err := client.GetJSON(t.Context(), "/summary", url.Values{"event": {"401"}}, &out); err != nil {
		t.Fatalf("get json: %v", err)
	}
	if out.ID != "401" || calls.Load() != 3 {
		t.Fatalf("unexpected result id=%q calls=%d", out.ID, calls.Load())
	}
}

func TestClient_Get_NotFoundIsNotRetried(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		http.NotFound(w, nil)
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL, Config{}).Get(t.Context(), "/summary", nil)
	if !errors.Is(err, usecase.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if calls.Load() != 1 {
		t.Fatalf("404 must not be retried, calls=%d", calls.Load())
	}
}

func TestClient_Get_OpensCircuitAfterRepeatedFailures(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	observer := &recordingObserver{}
	client := newTestClient(srv.URL, Config{
		Retry:          resilience.RetryConfig{MaxAttempts: 1},
		CircuitBreaker: resilience.CircuitBreakerConfig{Enabled: true, FailureThreshold: 2, OpenTimeout: time.Minute, HalfOpenMaxReq: 1},
		Observer:       observer,
	})

	for i := 0; i < 2; i++ {
		if _, err := client.Get(t.Context(), "/summary", nil); !errors.Is(err, usecase.ErrDependencyUnavailable) {
			t.Fatalf("attempt %d: expected ErrDependencyUnavailable, got %v", i, err)
		}
	}
	if client.CircuitState() != resilience.CircuitStateOpen {
		t.Fatalf("expected open circuit, got %s", client.CircuitState())
	}

	if _, err := client.Get(t.Context(), "/summary", nil); !errors.Is(err, usecase.ErrDependencyUnavailable) {
		t.Fatalf("expected rejection while open, got %v", err)
	}
	if calls.Load() != 2 {
		t.Fatalf("open circuit must not reach upstream, calls=%d", calls.Load())
	}
	if got := observer.outcomes[len(observer.outcomes)-1]; got != "circuit_open" {
		t.Fatalf("unexpected last outcome %q", got)
	}
	if got := observer.states[len(observer.states)-1]; got != string(resilience.CircuitStateOpen) {
		t.Fatalf("unexpected last state %q", got)
	}
}

func TestClient_Get_ServesFromCache(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		_, _ = w.Write([]byte(`ok`))
	}))
	defer srv.Close()

	client := newTestClient(srv.URL, Config{Cache: responsecache.NewMemory(time.Minute), CacheTTL: time.Minute})
	for i := 0; i < 3; i++ {
		raw, err := client.Get(t.Context(), "games", url.Values{"id": {"7"}})
		if err != nil || string(raw) != "ok" {
			t.Fatalf("get: %q %v", raw, err)
		}
	}
	if calls.Load() != 1 {
		t.Fatalf("expected one upstream call, got %d", calls.Load())
	}
}

func TestClient_Get_ClientErrorPassesThrough(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`bad key`))
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL, Config{}).Get(t.Context(), "/plays", nil)
	if err == nil || errors.Is(err, usecase.ErrDependencyUnavailable) {
		t.Fatalf("expected plain provider error, got %v", err)
	}
}
