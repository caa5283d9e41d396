package newsdata

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	apperrors "stock-researcher/internal/errors"
	"stock-researcher/pkg/utils"
)

const everythingBody = `{"status":"ok","articles":[` +
	`{"title":"Record quarter","description":"Profit up","url":"https://example.com/a",` +
	`"publishedAt":"2026-01-05T09:00:00Z","source":{"name":"Wire"}},` +
	`{"title":"Outlook raised","description":"Guidance up","url":"https://example.com/b",` +
	`"publishedAt":"2026-01-04T09:00:00Z","source":{"name":"Desk"}}]}`

func newTestNewsClient(t *testing.T, handler http.HandlerFunc) *NewsAPIClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c := NewNewsAPIClient("test-key", time.Second)
	c.client.SetBaseURL(srv.URL)
	c.retry = utils.RetryConfig{
		MaxAttempts:   3,
		InitialDelay:  time.Millisecond,
		MaxDelay:      5 * time.Millisecond,
		BackoffFactor: 2.0,
	}
	return c
}

func TestFetchNewsParsesArticles(t *testing.T) {
	c := newTestNewsClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("q"); got != "RELIANCE" {
			t.Errorf("query = %q, want base symbol without exchange suffix", got)
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, everythingBody)
	})

	articles, err := c.FetchNews(context.Background(), "RELIANCE.NS", 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(articles) != 2 {
		t.Fatalf("articles = %d, want 2", len(articles))
	}
	if articles[0].Title != "Record quarter" || articles[0].Source != "Wire" {
		t.Errorf("first article = %+v", articles[0])
	}
}

func TestFetchNewsRetriesRateLimit(t *testing.T) {
	var calls atomic.Int64
	c := newTestNewsClient(t, func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, everythingBody)
	})

	articles, err := c.FetchNews(context.Background(), "TCS.NS", 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(articles) != 2 {
		t.Errorf("articles = %d, want 2 after retries", len(articles))
	}
	if calls.Load() != 3 {
		t.Errorf("calls = %d, want 2 throttled attempts then success", calls.Load())
	}
}

func TestFetchNewsDoesNotRetryAPIError(t *testing.T) {
	var calls atomic.Int64
	c := newTestNewsClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"status":"error","message":"apiKeyInvalid"}`)
	})

	_, err := c.FetchNews(context.Background(), "TCS.NS", 10)
	if !apperrors.Is(err, apperrors.ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument, got %v", err)
	}
	if calls.Load() != 1 {
		t.Errorf("calls = %d, want 1 for a non-retryable response", calls.Load())
	}
}

func TestFetchNewsWithoutAPIKey(t *testing.T) {
	c := NewNewsAPIClient("", time.Second)
	articles, err := c.FetchNews(context.Background(), "TCS.NS", 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if articles != nil {
		t.Errorf("articles = %v, want nil without an API key", articles)
	}
}

func TestFetchNewsTruncatesToLimit(t *testing.T) {
	c := newTestNewsClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, everythingBody)
	})

	articles, err := c.FetchNews(context.Background(), "TCS.NS", 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(articles) != 1 {
		t.Errorf("articles = %d, want 1", len(articles))
	}
}
