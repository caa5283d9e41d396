// Package newsdata retrieves recent news articles for a ticker.
package newsdata

import (
	"context"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"

	apperrors "stock-researcher/internal/errors"
	"stock-researcher/internal/marketdata"
	"stock-researcher/internal/models"
	"stock-researcher/pkg/utils"
)

// NewsProvider fetches recent articles mentioning a ticker.
type NewsProvider interface {
	FetchNews(ctx context.Context, ticker string, limit int) ([]models.Article, error)
}

// DefaultTimeout bounds a single news request.
const DefaultTimeout = 15 * time.Second

// NewsAPIClient fetches articles from newsapi.org.
type NewsAPIClient struct {
	client *resty.Client
	apiKey string
	retry  utils.RetryConfig
}

// NewNewsAPIClient creates a NewsAPI-backed provider. An empty API key
// is allowed; fetches then return no articles instead of failing, so
// analysis degrades to price-only. Transient failures are retried with
// exponential backoff.
func NewNewsAPIClient(apiKey string, timeout time.Duration) *NewsAPIClient {
	client := resty.New()
	client.SetBaseURL("https://newsapi.org")
	client.SetTimeout(timeout)
	return &NewsAPIClient{client: client, apiKey: apiKey, retry: utils.DefaultRetryConfig()}
}

type newsAPIArticle struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	URL         string    `json:"url"`
	PublishedAt time.Time `json:"publishedAt"`
	Source      struct {
		Name string `json:"name"`
	} `json:"source"`
}

type newsAPIResponse struct {
	Status   string           `json:"status"`
	Message  string           `json:"message"`
	Articles []newsAPIArticle `json:"articles"`
}

// FetchNews searches recent English-language articles for the ticker's
// base symbol, newest first.
func (c *NewsAPIClient) FetchNews(ctx context.Context, ticker string, limit int) ([]models.Article, error) {
	if c.apiKey == "" {
		return nil, nil
	}
	if limit < 1 {
		limit = 10
	}

	query := marketdata.BaseSymbol(ticker)
	parsed, err := utils.RetryWithResult(ctx, c.retry, func() (newsAPIResponse, error) {
		return c.fetchEverything(ctx, ticker, query, limit)
	})
	if err != nil {
		return nil, err
	}

	articles := make([]models.Article, 0, len(parsed.Articles))
	for _, a := range parsed.Articles {
		if len(articles) >= limit {
			break
		}
		articles = append(articles, models.Article{
			Title:       a.Title,
			Description: a.Description,
			Source:      a.Source.Name,
			URL:         a.URL,
			PublishedAt: a.PublishedAt,
		})
	}
	return articles, nil
}

func (c *NewsAPIClient) fetchEverything(ctx context.Context, ticker, query string, limit int) (newsAPIResponse, error) {
	var parsed newsAPIResponse
	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"q":        query,
			"language": "en",
			"sortBy":   "publishedAt",
			"pageSize": strconv.Itoa(limit),
			"apiKey":   c.apiKey,
		}).
		SetResult(&parsed).
		SetError(&parsed).
		Get("/v2/everything")
	if err != nil {
		return newsAPIResponse{}, apperrors.NewFetchError("newsapi", ticker, apperrors.Wrap(apperrors.ErrConnectionFailed, err.Error()))
	}
	if resp.StatusCode() == 429 {
		return newsAPIResponse{}, apperrors.NewFetchError("newsapi", ticker, apperrors.ErrRateLimited)
	}
	if resp.StatusCode() >= 500 {
		return newsAPIResponse{}, apperrors.NewFetchError("newsapi", ticker,
			apperrors.Wrapf(apperrors.ErrConnectionFailed, "status %d", resp.StatusCode()))
	}
	if resp.IsError() || parsed.Status != "ok" {
		// A rejected request (bad key, bad query) never succeeds on retry.
		msg := parsed.Message
		if msg == "" {
			msg = "status " + strconv.Itoa(resp.StatusCode())
		}
		return newsAPIResponse{}, apperrors.NewFetchError("newsapi", ticker, apperrors.Wrap(apperrors.ErrInvalidArgument, msg))
	}
	return parsed, nil
}
