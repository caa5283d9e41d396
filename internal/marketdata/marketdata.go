// Package marketdata retrieves price history from external providers.
package marketdata

import (
	"context"
	"net"
	"regexp"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	apperrors "stock-researcher/internal/errors"
	"stock-researcher/internal/models"
	"stock-researcher/pkg/utils"
)

// PriceProvider fetches historical closing prices for a ticker.
type PriceProvider interface {
	FetchPriceHistory(ctx context.Context, ticker, period string) (models.PriceSeries, error)
}

var (
	multiDotPattern    = regexp.MustCompile(`\.+`)
	invalidCharPattern = regexp.MustCompile(`[^A-Z0-9.]`)
)

// SanitizeSymbol normalizes a user-supplied ticker: uppercase, runs of
// dots collapsed, invalid characters stripped. Symbols without an
// exchange suffix default to NSE.
func SanitizeSymbol(symbol string) (string, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	symbol = multiDotPattern.ReplaceAllString(symbol, ".")
	symbol = invalidCharPattern.ReplaceAllString(symbol, "")
	symbol = strings.Trim(symbol, ".")
	if symbol == "" {
		return "", apperrors.NewValidationError("symbol", symbol, "empty after sanitization")
	}
	if !strings.HasSuffix(symbol, ".NS") && !strings.HasSuffix(symbol, ".BO") {
		symbol += ".NS"
	}
	return symbol, nil
}

// BaseSymbol strips the exchange suffix from a sanitized symbol.
func BaseSymbol(symbol string) string {
	symbol = strings.TrimSuffix(symbol, ".NS")
	return strings.TrimSuffix(symbol, ".BO")
}

// YahooClient fetches daily price history from the Yahoo Finance
// chart API.
type YahooClient struct {
	client *resty.Client
	retry  utils.RetryConfig
}

// NewYahooClient creates a Yahoo Finance price provider. Transient
// failures (rate limits, timeouts, connection resets) are retried with
// exponential backoff.
func NewYahooClient(timeout time.Duration) *YahooClient {
	client := resty.New()
	client.SetBaseURL("https://query1.finance.yahoo.com")
	client.SetTimeout(timeout)
	client.SetHeader("User-Agent", "Mozilla/5.0 (compatible; stock-researcher/0.1)")
	return &YahooClient{client: client, retry: utils.DefaultRetryConfig()}
}

type chartQuote struct {
	Close []*float64 `json:"close"`
}

type chartAdjClose struct {
	AdjClose []*float64 `json:"adjclose"`
}

type chartResult struct {
	Timestamp  []int64 `json:"timestamp"`
	Indicators struct {
		Quote    []chartQuote    `json:"quote"`
		AdjClose []chartAdjClose `json:"adjclose"`
	} `json:"indicators"`
}

type chartError struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

type chartResponse struct {
	Chart struct {
		Result []chartResult `json:"result"`
		Error  *chartError   `json:"error"`
	} `json:"chart"`
}

var validPeriods = map[string]string{
	"1mo": "1mo",
	"3mo": "3mo",
	"6mo": "6mo",
	"1y":  "1y",
	"2y":  "2y",
	"5y":  "5y",
}

// FetchPriceHistory fetches daily closes for the given period. When an
// NSE symbol returns no data the BSE listing is tried before giving up.
func (c *YahooClient) FetchPriceHistory(ctx context.Context, ticker, period string) (models.PriceSeries, error) {
	symbol, err := SanitizeSymbol(ticker)
	if err != nil {
		return nil, err
	}
	yahooRange, ok := validPeriods[period]
	if !ok {
		yahooRange = "3mo"
	}

	series, err := utils.RetryWithResult(ctx, c.retry, func() (models.PriceSeries, error) {
		return c.fetchChart(ctx, symbol, yahooRange)
	})
	if err == nil && len(series) > 0 {
		return series, nil
	}
	if strings.HasSuffix(symbol, ".NS") {
		alt := strings.TrimSuffix(symbol, ".NS") + ".BO"
		altSeries, altErr := utils.RetryWithResult(ctx, c.retry, func() (models.PriceSeries, error) {
			return c.fetchChart(ctx, alt, yahooRange)
		})
		if altErr == nil && len(altSeries) > 0 {
			return altSeries, nil
		}
	}
	if err != nil {
		return nil, err
	}
	return nil, apperrors.NewFetchError("yahoo", ticker, apperrors.ErrNoUsableData)
}

func (c *YahooClient) fetchChart(ctx context.Context, symbol, yahooRange string) (models.PriceSeries, error) {
	var parsed chartResponse
	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"range":    yahooRange,
			"interval": "1d",
		}).
		SetResult(&parsed).
		Get("/v8/finance/chart/" + symbol)
	if err != nil {
		return nil, apperrors.NewFetchError("yahoo", symbol, classifyTransport(err))
	}
	if resp.StatusCode() == 429 {
		return nil, apperrors.NewFetchError("yahoo", symbol, apperrors.ErrRateLimited)
	}
	if resp.StatusCode() >= 500 {
		return nil, apperrors.NewFetchError("yahoo", symbol,
			apperrors.Wrapf(apperrors.ErrConnectionFailed, "status %d", resp.StatusCode()))
	}
	if resp.IsError() {
		// Yahoo answers unknown symbols with a 4xx; retrying cannot help.
		return nil, apperrors.NewFetchError("yahoo", symbol,
			apperrors.Wrapf(apperrors.ErrNoUsableData, "status %d", resp.StatusCode()))
	}
	if parsed.Chart.Error != nil {
		return nil, apperrors.NewFetchError("yahoo", symbol,
			apperrors.Wrap(apperrors.ErrNoUsableData, parsed.Chart.Error.Description))
	}
	if len(parsed.Chart.Result) == 0 {
		return nil, nil
	}

	result := parsed.Chart.Result[0]
	closes := closesFromResult(result.Indicators.Quote, result.Indicators.AdjClose)

	series := make(models.PriceSeries, 0, len(result.Timestamp))
	for i, ts := range result.Timestamp {
		if i >= len(closes) || closes[i] == nil {
			continue
		}
		series = append(series, models.PricePoint{
			Date:  time.Unix(ts, 0).UTC(),
			Close: *closes[i],
		})
	}
	return series, nil
}

func closesFromResult(quotes []chartQuote, adj []chartAdjClose) []*float64 {
	if len(quotes) > 0 && len(quotes[0].Close) > 0 {
		return quotes[0].Close
	}
	if len(adj) > 0 {
		return adj[0].AdjClose
	}
	return nil
}

// classifyTransport maps a transport failure to an error kind by type,
// never by message text.
func classifyTransport(err error) error {
	if err == nil {
		return nil
	}
	if apperrors.Is(err, context.DeadlineExceeded) {
		return apperrors.Wrap(apperrors.ErrTimeout, err.Error())
	}
	var netErr net.Error
	if apperrors.As(err, &netErr) && netErr.Timeout() {
		return apperrors.Wrap(apperrors.ErrTimeout, err.Error())
	}
	return apperrors.Wrap(apperrors.ErrConnectionFailed, err.Error())
}

// QuoteFromSeries derives the current quote metrics from a price
// series, mirroring what fuller market-data feeds report directly.
func QuoteFromSeries(ticker string, series models.PriceSeries) models.Quote {
	q := models.Quote{Ticker: ticker, DataPoints: len(series)}
	if len(series) == 0 {
		return q
	}

	latest := series[len(series)-1]
	q.Price = latest.Close

	prev := latest
	if len(series) > 1 {
		prev = series[len(series)-2]
	}
	q.Change = latest.Close - prev.Close
	if prev.Close != 0 {
		q.ChangePercent = q.Change / prev.Close * 100
	}
	if first := series[0].Close; first != 0 {
		q.PeriodReturn = (latest.Close - first) / first * 100
	}
	return q
}
