// Package research implements the single-ticker research workflow:
// fetch, sentiment, indicators, synthesis. A fetch failure degrades to
// a synthesis-only report; total absence of data ends the workflow
// early with nothing to analyze.
package research

import (
	"context"
	"time"

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

// Stage identifiers for the research workflow.
const (
	stageFetch workflow.StageID = iota + 1
	stageSentiment
	stageIndicators
	stageSynthesis
)

// Fetch defaults.
const (
	defaultNewsLimit = 20
	defaultPeriod    = "3mo"
)

// record is the analysis record threaded through the research
// workflow. Each stage receives it by value and returns the updated
// copy.
type record struct {
	ticker string
	query  string

	articles []models.Article
	series   models.PriceSeries
	quote    models.Quote

	sentimentScore   float64
	sentimentSummary *models.SentimentSummary

	indicators       *models.IndicatorSet
	signal           *models.TradingSignal
	technicalSummary string
	technicalErr     string

	summary         string
	recommendations []string
	riskScore       float64

	errMsg    string
	timestamp time.Time
}

// Researcher runs research analyses for single tickers.
type Researcher struct {
	prices    marketdata.PriceProvider
	news      newsdata.NewsProvider
	analyzer  *sentiment.Analyzer
	logger    zerolog.Logger
	newsLimit int
	period    string
}

// Option configures a Researcher.
type Option func(*Researcher)

// WithNewsLimit overrides how many articles are fetched per ticker.
func WithNewsLimit(limit int) Option {
	return func(r *Researcher) { r.newsLimit = limit }
}

// WithPeriod overrides the price-history period.
func WithPeriod(period string) Option {
	return func(r *Researcher) { r.period = period }
}

// NewResearcher creates a research workflow runner.
func NewResearcher(prices marketdata.PriceProvider, news newsdata.NewsProvider, analyzer *sentiment.Analyzer, logger zerolog.Logger, opts ...Option) *Researcher {
	r := &Researcher{
		prices:    prices,
		news:      news,
		analyzer:  analyzer,
		logger:    logger,
		newsLimit: defaultNewsLimit,
		period:    defaultPeriod,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run executes the research workflow and returns the report. Degraded
// conditions are reported through the report's Error field, never as a
// hard failure.
func (r *Researcher) Run(ctx context.Context, ticker, query string) models.ResearchReport {
	logger := logging.WithTicker(r.logger, ticker)

	graph := workflow.New[record]("research", logger)
	graph.AddStage(stageFetch, "fetch", r.fetch, afterFetch, stageSentiment, stageSynthesis)
	graph.AddStage(stageSentiment, "sentiment", r.sentiment, func(record) workflow.StageID {
		// Technical analysis still runs when sentiment failed.
		return stageIndicators
	}, stageIndicators)
	graph.AddStage(stageIndicators, "indicators", r.indicators, func(record) workflow.StageID {
		return stageSynthesis
	}, stageSynthesis)
	graph.AddStage(stageSynthesis, "synthesis", r.synthesize, func(record) workflow.StageID {
		return workflow.Terminate
	})
	graph.SetEntry(stageFetch)

	initial := record{
		ticker:         ticker,
		query:          query,
		sentimentScore: 0.5,
		timestamp:      time.Now().UTC(),
	}

	rec, err := graph.Run(ctx, initial)
	if err != nil {
		return models.ResearchReport{
			Ticker:    ticker,
			Timestamp: initial.timestamp,
			Error:     err.Error(),
		}
	}
	return buildReport(rec)
}

func (r *Researcher) fetch(ctx context.Context, rec record) record {
	newsStart := time.Now()
	articles, err := r.news.FetchNews(ctx, rec.ticker, r.newsLimit)
	logging.LogFetch(r.logger, "newsapi", rec.ticker, len(articles), time.Since(newsStart), err)
	if err != nil {
		r.logger.Warn().Err(err).Str("ticker", rec.ticker).Msg("News fetch failed")
		rec.errMsg = apperrors.NewStageError("research", "fetch", err).Error()
	} else {
		rec.articles = articles
	}

	priceStart := time.Now()
	series, err := r.prices.FetchPriceHistory(ctx, rec.ticker, r.period)
	logging.LogFetch(r.logger, "yahoo", rec.ticker, len(series), time.Since(priceStart), err)
	if err != nil {
		r.logger.Warn().Err(err).Str("ticker", rec.ticker).Msg("Price fetch failed")
		rec.errMsg = apperrors.NewStageError("research", "fetch", err).Error()
	} else {
		rec.series = series
		rec.quote = marketdata.QuoteFromSeries(rec.ticker, series)
	}

	rec.timestamp = time.Now().UTC()
	return rec
}

func afterFetch(rec record) workflow.StageID {
	if rec.errMsg != "" {
		return stageSynthesis
	}
	if len(rec.articles) == 0 && len(rec.series) == 0 {
		return workflow.Terminate
	}
	return stageSentiment
}

func (r *Researcher) sentiment(ctx context.Context, rec record) record {
	if len(rec.articles) == 0 {
		r.logger.Warn().Str("ticker", rec.ticker).Msg("No news data for sentiment analysis")
		rec.sentimentScore = 0.5
		return rec
	}

	summary, err := r.analyzer.ScoreArticles(ctx, rec.articles)
	if err != nil {
		r.logger.Error().Err(err).Str("ticker", rec.ticker).Msg("Sentiment analysis failed")
		rec.errMsg = apperrors.NewStageError("research", "sentiment", err).Error()
		rec.sentimentScore = 0.5
		return rec
	}

	rec.sentimentSummary = &summary
	rec.sentimentScore = summary.Overall.Score
	return rec
}

func (r *Researcher) indicators(_ context.Context, rec record) record {
	if len(rec.series) == 0 {
		r.logger.Warn().Str("ticker", rec.ticker).Msg("No historical data for indicators")
		rec.technicalErr = "No historical data"
		return rec
	}

	set, err := indicators.Compute(rec.series)
	if err != nil {
		r.logger.Error().Err(err).Str("ticker", rec.ticker).Msg("Indicator calculation failed")
		rec.errMsg = apperrors.NewStageError("research", "indicators", err).Error()
		return rec
	}

	sig := signals.Generate(set)
	rec.indicators = &set
	rec.signal = &sig
	rec.technicalSummary = signals.Summarize(sig)
	return rec
}

func (r *Researcher) synthesize(_ context.Context, rec record) record {
	rec.summary = buildSummary(rec)
	rec.recommendations = buildRecommendations(rec.sentimentScore, overallSignal(rec))
	rec.riskScore = riskScore(rec.sentimentSummary, signalStrength(rec))
	return rec
}

func overallSignal(rec record) models.OverallSignal {
	if rec.signal == nil {
		return models.Hold
	}
	return rec.signal.Overall
}

func signalStrength(rec record) int {
	if rec.signal == nil {
		return 0
	}
	return rec.signal.Strength
}

func buildReport(rec record) models.ResearchReport {
	report := models.ResearchReport{
		Ticker:          rec.ticker,
		Timestamp:       rec.timestamp,
		Summary:         rec.summary,
		Recommendations: rec.recommendations,
		RiskScore:       rec.riskScore,
		Error:           rec.errMsg,
	}

	report.Sentiment = &models.SentimentScore{
		Score:    rec.sentimentScore,
		Analysis: rec.sentimentSummary,
	}
	report.Technical = &models.TechnicalReport{
		Indicators: rec.indicators,
		Signals:    rec.signal,
		Summary:    rec.technicalSummary,
		Error:      rec.technicalErr,
	}
	return report
}
