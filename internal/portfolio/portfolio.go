// Package portfolio implements the multi-ticker analysis workflow:
// fetch, sentiment, indicators, portfolio analysis. Individual ticker
// failures are isolated; one bad ticker never stops the rest.
package portfolio

import (
	"context"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	apperrors "stock-researcher/internal/errors"
	"stock-researcher/internal/indicators"
	"stock-researcher/internal/logging"
	"stock-researcher/internal/marketdata"
	"stock-researcher/internal/models"
	"stock-researcher/internal/newsdata"
	"stock-researcher/internal/sentiment"
	"stock-researcher/internal/signals"
	"stock-researcher/internal/workflow"
)

// Stage identifiers for the portfolio workflow.
const (
	stageFetch workflow.StageID = iota + 1
	stageSentiment
	stageIndicators
	stageAnalysis
)

// MaxTickers is the hard limit on tickers per request, enforced before
// any fetch occurs.
const MaxTickers = 20

// Fetch defaults.
const (
	defaultNewsLimit   = 10
	defaultPeriod      = "1mo"
	defaultConcurrency = 5
)

// Request is a validated portfolio analysis request.
type Request struct {
	Tickers     []string `validate:"required,min=1,max=20,dive,required"`
	WatchlistID string
}

// tickerData is the fetched raw data for one ticker.
type tickerData struct {
	articles []models.Article
	series   models.PriceSeries
	errMsg   string
}

// record is the analysis record threaded through the portfolio
// workflow.
type record struct {
	tickers     []string
	watchlistID string

	data             map[string]tickerData
	sentimentScores  map[string]float64
	technicalSignals map[string]*models.TechnicalReport

	summary         *models.PortfolioSummary
	recommendations []models.Recommendation
	risk            *models.RiskMetrics

	errMsg    string
	timestamp time.Time
}

// Analyzer runs portfolio analyses.
type Analyzer struct {
	prices      marketdata.PriceProvider
	news        newsdata.NewsProvider
	scorer      *sentiment.Analyzer
	logger      zerolog.Logger
	validate    *validator.Validate
	newsLimit   int
	period      string
	concurrency int
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithConcurrency bounds how many tickers are fetched in parallel.
func WithConcurrency(n int) Option {
	return func(a *Analyzer) {
		if n > 0 {
			a.concurrency = n
		}
	}
}

// WithPeriod overrides the price-history period.
func WithPeriod(period string) Option {
	return func(a *Analyzer) { a.period = period }
}

// NewAnalyzer creates a portfolio workflow runner.
func NewAnalyzer(prices marketdata.PriceProvider, news newsdata.NewsProvider, scorer *sentiment.Analyzer, logger zerolog.Logger, opts ...Option) *Analyzer {
	a := &Analyzer{
		prices:      prices,
		news:        news,
		scorer:      scorer,
		logger:      logger,
		validate:    validator.New(),
		newsLimit:   defaultNewsLimit,
		period:      defaultPeriod,
		concurrency: defaultConcurrency,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Run validates the request and executes the portfolio workflow. An
// invalid request (including more than MaxTickers tickers) is rejected
// before any fetch occurs.
func (a *Analyzer) Run(ctx context.Context, req Request) (models.PortfolioReport, error) {
	if err := a.validate.Struct(req); err != nil {
		if len(req.Tickers) > MaxTickers {
			return models.PortfolioReport{}, apperrors.Wrapf(apperrors.ErrTickerLimit,
				"%d tickers, maximum %d", len(req.Tickers), MaxTickers)
		}
		return models.PortfolioReport{}, apperrors.NewValidationError("tickers", req.Tickers, err.Error())
	}

	logger := a.logger.With().Int("tickers", len(req.Tickers)).Logger()

	graph := workflow.New[record]("portfolio", logger)
	graph.AddStage(stageFetch, "fetch", a.fetch, afterFetch, stageSentiment, stageAnalysis)
	graph.AddStage(stageSentiment, "sentiment", a.sentiment, func(record) workflow.StageID {
		return stageIndicators
	}, stageIndicators)
	graph.AddStage(stageIndicators, "indicators", a.indicators, func(record) workflow.StageID {
		return stageAnalysis
	}, stageAnalysis)
	graph.AddStage(stageAnalysis, "analysis", a.analysis, func(record) workflow.StageID {
		return workflow.Terminate
	})
	graph.SetEntry(stageFetch)

	initial := record{
		tickers:     req.Tickers,
		watchlistID: req.WatchlistID,
		timestamp:   time.Now().UTC(),
	}

	rec, err := graph.Run(ctx, initial)
	if err != nil {
		return models.PortfolioReport{
			Tickers:     req.Tickers,
			WatchlistID: req.WatchlistID,
			Timestamp:   initial.timestamp,
			Error:       err.Error(),
		}, nil
	}

	return models.PortfolioReport{
		Tickers:          rec.tickers,
		WatchlistID:      rec.watchlistID,
		Timestamp:        rec.timestamp,
		PortfolioSummary: rec.summary,
		Recommendations:  rec.recommendations,
		RiskMetrics:      rec.risk,
		SentimentScores:  rec.sentimentScores,
		TechnicalSignals: rec.technicalSignals,
		Error:            rec.errMsg,
	}, nil
}

// fetch retrieves news and price history for every ticker through a
// bounded worker pool. Results land in a slice indexed by ticker
// position, so completion order never affects the merged record.
func (a *Analyzer) fetch(ctx context.Context, rec record) record {
	results := make([]tickerData, len(rec.tickers))

	var wg sync.WaitGroup
	sem := make(chan struct{}, a.concurrency)

	for i, ticker := range rec.tickers {
		wg.Add(1)
		go func(idx int, ticker string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			results[idx] = a.fetchTicker(ctx, ticker)
		}(i, ticker)
	}
	wg.Wait()

	rec.data = make(map[string]tickerData, len(rec.tickers))
	for i, ticker := range rec.tickers {
		rec.data[ticker] = results[i]
	}
	rec.timestamp = time.Now().UTC()
	return rec
}

func (a *Analyzer) fetchTicker(ctx context.Context, ticker string) tickerData {
	var data tickerData
	logger := logging.WithTicker(a.logger, ticker)

	newsStart := time.Now()
	articles, err := a.news.FetchNews(ctx, ticker, a.newsLimit)
	logging.LogFetch(logger, "newsapi", ticker, len(articles), time.Since(newsStart), err)
	if err != nil {
		logger.Warn().Err(err).Msg("News fetch failed")
		data.errMsg = err.Error()
	} else {
		data.articles = articles
	}

	priceStart := time.Now()
	series, err := a.prices.FetchPriceHistory(ctx, ticker, a.period)
	logging.LogFetch(logger, "yahoo", ticker, len(series), time.Since(priceStart), err)
	if err != nil {
		logger.Warn().Err(err).Msg("Price fetch failed")
		data.errMsg = err.Error()
	} else {
		data.series = series
	}
	return data
}

func afterFetch(rec record) workflow.StageID {
	if rec.errMsg != "" {
		return stageAnalysis
	}
	usable := false
	for _, d := range rec.data {
		if d.errMsg == "" && (len(d.articles) > 0 || len(d.series) > 0) {
			usable = true
			break
		}
	}
	if !usable {
		return workflow.Terminate
	}
	return stageSentiment
}

// sentiment scores each ticker's news. Tickers with failed fetches or
// no news get a neutral 0.5.
func (a *Analyzer) sentiment(ctx context.Context, rec record) record {
	scores := make(map[string]float64, len(rec.tickers))
	for _, ticker := range rec.tickers {
		data := rec.data[ticker]
		if data.errMsg != "" || len(data.articles) == 0 {
			scores[ticker] = 0.5
			continue
		}

		summary, err := a.scorer.ScoreArticles(ctx, data.articles)
		if err != nil {
			a.logger.Warn().Err(err).Str("ticker", ticker).Msg("Sentiment scoring failed")
			scores[ticker] = 0.5
			continue
		}
		scores[ticker] = summary.Overall.Score
	}
	rec.sentimentScores = scores
	a.logger.Info().Int("count", len(scores)).Msg("Portfolio sentiment analysis complete")
	return rec
}

// indicators computes the technical report per ticker. Failures are
// captured on the ticker's report, not on the workflow.
func (a *Analyzer) indicators(_ context.Context, rec record) record {
	reports := make(map[string]*models.TechnicalReport, len(rec.tickers))
	for _, ticker := range rec.tickers {
		data := rec.data[ticker]
		if data.errMsg != "" {
			reports[ticker] = &models.TechnicalReport{Error: data.errMsg}
			continue
		}
		if len(data.series) == 0 {
			reports[ticker] = &models.TechnicalReport{Error: "No historical data"}
			continue
		}

		set, err := indicators.Compute(data.series)
		if err != nil {
			reports[ticker] = &models.TechnicalReport{Error: err.Error()}
			continue
		}
		sig := signals.Generate(set)
		reports[ticker] = &models.TechnicalReport{
			Indicators: &set,
			Signals:    &sig,
			Summary:    signals.Summarize(sig),
		}
	}
	rec.technicalSignals = reports
	a.logger.Info().Int("count", len(reports)).Msg("Portfolio indicators calculated")
	return rec
}

// analysis produces the summary, per-ticker recommendations and risk
// metrics from the merged results.
func (a *Analyzer) analysis(_ context.Context, rec record) record {
	if len(rec.sentimentScores) == 0 && len(rec.technicalSignals) == 0 {
		rec.errMsg = "No analysis data available"
		return rec
	}

	rec.summary = buildSummary(rec.tickers, rec.sentimentScores, rec.technicalSignals)
	rec.recommendations = buildRecommendations(rec.tickers, rec.sentimentScores, rec.technicalSignals)
	rec.risk = buildRiskMetrics(rec.tickers, rec.sentimentScores, rec.technicalSignals)

	for _, r := range rec.recommendations {
		logging.LogRecommendation(a.logger, r.Ticker, string(r.Action), r.Score, r.Priority)
	}
	return rec
}
