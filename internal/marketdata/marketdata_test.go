package marketdata

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	apperrors "stock-researcher/internal/errors"
	"stock-researcher/internal/models"
	"stock-researcher/pkg/utils"
)

func TestSanitizeSymbol(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"lowercase gets exchange suffix", "reliance", "RELIANCE.NS"},
		{"existing nse suffix preserved", "TCS.NS", "TCS.NS"},
		{"bse suffix preserved", "infy.bo", "INFY.BO"},
		{"doubled dots collapsed", "tcs..ns", "TCS.NS"},
		{"surrounding whitespace trimmed", "  hdfcbank  ", "HDFCBANK.NS"},
		{"invalid characters stripped", "it-c!", "ITC.NS"},
		{"leading and trailing dots trimmed", ".sbin.", "SBIN.NS"},
		{"digits allowed", "540776", "540776.NS"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SanitizeSymbol(tt.input)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("SanitizeSymbol(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestSanitizeSymbolRejectsEmpty(t *testing.T) {
	for _, input := range []string{"", "   ", "...", "!@#$%"} {
		if _, err := SanitizeSymbol(input); !apperrors.Is(err, apperrors.ErrInputValidation) {
			t.Errorf("SanitizeSymbol(%q): expected ErrInputValidation, got %v", input, err)
		}
	}
}

func TestBaseSymbol(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"RELIANCE.NS", "RELIANCE"},
		{"INFY.BO", "INFY"},
		{"NOEXCHANGE", "NOEXCHANGE"},
	}
	for _, tt := range tests {
		if got := BaseSymbol(tt.input); got != tt.want {
			t.Errorf("BaseSymbol(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

const chartBody = `{"chart":{"result":[{"timestamp":[1704067200,1704153600],` +
	`"indicators":{"quote":[{"close":[100.5,101.25]}]}}],"error":null}}`

func fastRetry() utils.RetryConfig {
	return utils.RetryConfig{
		MaxAttempts:   3,
		InitialDelay:  time.Millisecond,
		MaxDelay:      5 * time.Millisecond,
		BackoffFactor: 2.0,
	}
}

func newTestYahooClient(t *testing.T, handler http.HandlerFunc) *YahooClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c := NewYahooClient(time.Second)
	c.client.SetBaseURL(srv.URL)
	c.retry = fastRetry()
	return c
}

func TestFetchPriceHistoryRetriesRateLimit(t *testing.T) {
	var calls atomic.Int64
	c := newTestYahooClient(t, func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, chartBody)
	})

	series, err := c.FetchPriceHistory(context.Background(), "RELIANCE.NS", "1mo")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(series) != 2 {
		t.Fatalf("series = %d points, want 2", len(series))
	}
	if series[0].Close != 100.5 || series[1].Close != 101.25 {
		t.Errorf("closes = %v/%v", series[0].Close, series[1].Close)
	}
	if calls.Load() != 3 {
		t.Errorf("calls = %d, want 2 throttled attempts then success", calls.Load())
	}
}

func TestFetchPriceHistoryDoesNotRetryNoData(t *testing.T) {
	var calls atomic.Int64
	c := newTestYahooClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"chart":{"result":null,"error":{"code":"Not Found","description":"No data found"}}}`)
	})

	_, err := c.FetchPriceHistory(context.Background(), "RELIANCE.NS", "1mo")
	if !apperrors.Is(err, apperrors.ErrNoUsableData) {
		t.Fatalf("expected ErrNoUsableData, got %v", err)
	}
	// One NSE attempt plus the BSE fallback, neither retried.
	if calls.Load() != 2 {
		t.Errorf("calls = %d, want 2", calls.Load())
	}
}

type timeoutErr struct{ timeout bool }

func (e *timeoutErr) Error() string   { return "dial tcp: i/o timeout" }
func (e *timeoutErr) Timeout() bool   { return e.timeout }
func (e *timeoutErr) Temporary() bool { return e.timeout }

func TestClassifyTransport(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{"nil passes through", nil, nil},
		{"deadline exceeded", context.DeadlineExceeded, apperrors.ErrTimeout},
		{"wrapped deadline", fmt.Errorf("get: %w", context.DeadlineExceeded), apperrors.ErrTimeout},
		{"net timeout", &timeoutErr{timeout: true}, apperrors.ErrTimeout},
		{"net error without timeout", &timeoutErr{timeout: false}, apperrors.ErrConnectionFailed},
		{"plain error", fmt.Errorf("connection refused"), apperrors.ErrConnectionFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classifyTransport(tt.err)
			if tt.want == nil {
				if got != nil {
					t.Fatalf("classifyTransport(nil) = %v, want nil", got)
				}
				return
			}
			if !apperrors.Is(got, tt.want) {
				t.Errorf("classifyTransport(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestQuoteFromSeries(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	series := models.PriceSeries{
		{Date: base, Close: 100},
		{Date: base.AddDate(0, 0, 1), Close: 110},
		{Date: base.AddDate(0, 0, 2), Close: 120},
	}

	q := QuoteFromSeries("TEST.NS", series)
	if q.Price != 120 {
		t.Errorf("price = %v, want 120", q.Price)
	}
	if q.Change != 10 {
		t.Errorf("change = %v, want 10", q.Change)
	}
	if math.Abs(q.ChangePercent-10.0/110*100) > 1e-9 {
		t.Errorf("change percent = %v", q.ChangePercent)
	}
	if math.Abs(q.PeriodReturn-20) > 1e-9 {
		t.Errorf("period return = %v, want 20", q.PeriodReturn)
	}
	if q.DataPoints != 3 {
		t.Errorf("data points = %d, want 3", q.DataPoints)
	}
}

func TestQuoteFromSeriesEmpty(t *testing.T) {
	q := QuoteFromSeries("TEST.NS", nil)
	if q.Price != 0 || q.DataPoints != 0 {
		t.Errorf("expected zero quote, got %+v", q)
	}
	if q.Ticker != "TEST.NS" {
		t.Errorf("ticker = %q", q.Ticker)
	}
}

func TestQuoteFromSeriesSinglePoint(t *testing.T) {
	series := models.PriceSeries{{Date: time.Now(), Close: 50}}
	q := QuoteFromSeries("X.NS", series)
	if q.Price != 50 || q.Change != 0 || q.PeriodReturn != 0 {
		t.Errorf("single point quote = %+v, want flat", q)
	}
}
