package models

import "time"

// TechnicalReport is the technical-analysis section of a report.
type TechnicalReport struct {
	Indicators *IndicatorSet  `json:"indicators,omitempty"`
	Signals    *TradingSignal `json:"signals,omitempty"`
	Summary    string         `json:"summary,omitempty"`
	Error      string         `json:"error,omitempty"`
}

// SentimentScore is the sentiment section of a report.
type SentimentScore struct {
	Score    float64           `json:"score"`
	Analysis *SentimentSummary `json:"analysis,omitempty"`
}

// ResearchReport is the full output of a single-ticker research run.
type ResearchReport struct {
	Ticker          string           `json:"ticker"`
	Timestamp       time.Time        `json:"timestamp"`
	Sentiment       *SentimentScore  `json:"sentiment,omitempty"`
	Technical       *TechnicalReport `json:"technical,omitempty"`
	Summary         string           `json:"summary,omitempty"`
	Recommendations []string         `json:"recommendations,omitempty"`
	RiskScore       float64          `json:"risk_score"`
	Error           string           `json:"error,omitempty"`
}

// SentimentReport is the output of a sentiment-only run.
type SentimentReport struct {
	Aggregated      *AggregatedSentiment `json:"aggregated,omitempty"`
	Individual      []ScoredText         `json:"individual,omitempty"`
	KeyTopics       []string             `json:"key_topics,omitempty"`
	ConfidenceScore float64              `json:"confidence_score"`
	TextCount       int                  `json:"text_count"`
	Error           string               `json:"error,omitempty"`
}

// Action is a portfolio recommendation action.
type Action string

const (
	ActionStrongBuy   Action = "Strong Buy"
	ActionBuy         Action = "Buy"
	ActionStrongSell  Action = "Strong Sell"
	ActionSell        Action = "Sell"
	ActionHoldMonitor Action = "Hold - Monitor Closely"
	ActionHold        Action = "Hold"
)

// Recommendation is a per-ticker portfolio action with its priority.
// Priority 1 is the most urgent.
type Recommendation struct {
	Ticker    string        `json:"ticker"`
	Action    Action        `json:"action"`
	Score     float64       `json:"score"`
	Sentiment float64       `json:"sentiment"`
	Signal    OverallSignal `json:"signal"`
	Priority  int           `json:"priority"`
}

// RiskLevel classifies the overall portfolio risk.
type RiskLevel string

const (
	RiskLow    RiskLevel = "Low"
	RiskMedium RiskLevel = "Medium"
	RiskHigh   RiskLevel = "High"
)

// RiskMetrics summarizes portfolio-level risk.
type RiskMetrics struct {
	OverallRiskScore    float64   `json:"overall_risk_score"`
	AverageSentiment    float64   `json:"average_sentiment"`
	SentimentVolatility float64   `json:"sentiment_volatility"`
	HighRiskPositions   []string  `json:"high_risk_positions"`
	BearishSignals      []string  `json:"bearish_signals"`
	RiskLevel           RiskLevel `json:"risk_level"`
}

// PortfolioSummary is the headline section of a portfolio report.
type PortfolioSummary struct {
	TotalTickers     int      `json:"total_tickers"`
	OverallSentiment float64  `json:"overall_sentiment"`
	BullishCount     int      `json:"bullish_count"`
	BearishCount     int      `json:"bearish_count"`
	NeutralCount     int      `json:"neutral_count"`
	TopOpportunities []string `json:"top_opportunities"`
	RiskAlerts       []string `json:"risk_alerts"`
}

// PortfolioReport is the full output of a multi-ticker portfolio run.
type PortfolioReport struct {
	Tickers          []string                    `json:"tickers"`
	WatchlistID      string                      `json:"watchlist_id,omitempty"`
	Timestamp        time.Time                   `json:"timestamp"`
	PortfolioSummary *PortfolioSummary           `json:"portfolio_summary,omitempty"`
	Recommendations  []Recommendation            `json:"recommendations,omitempty"`
	RiskMetrics      *RiskMetrics                `json:"risk_metrics,omitempty"`
	SentimentScores  map[string]float64          `json:"sentiment_scores,omitempty"`
	TechnicalSignals map[string]*TechnicalReport `json:"technical_signals,omitempty"`
	Error            string                      `json:"error,omitempty"`
}
