package portfolio

import (
	"math"
	"sort"

	"stock-researcher/internal/models"
)

// Score weights and thresholds for ranking tickers.
const (
	sentimentWeight = 0.6
	technicalWeight = 0.4

	opportunityThreshold = 0.6
	riskAlertThreshold   = 0.4
	topOpportunityCount  = 3

	riskHighThreshold   = 0.7
	riskMediumThreshold = 0.4
)

var signalScores = map[models.OverallSignal]float64{
	models.StrongBuy:  1.0,
	models.Buy:        0.75,
	models.Hold:       0.5,
	models.Sell:       0.25,
	models.StrongSell: 0.0,
}

// TickerScore blends sentiment and the technical signal into a single
// 0 to 1 composite.
func TickerScore(sentimentScore float64, signal models.OverallSignal) float64 {
	technical, ok := signalScores[signal]
	if !ok {
		technical = 0.5
	}
	return sentimentScore*sentimentWeight + technical*technicalWeight
}

// DetermineAction picks the recommended action from a fixed decision
// table. Rules are evaluated in order; the first match wins.
func DetermineAction(sentimentScore float64, signal models.OverallSignal) models.Action {
	switch {
	case sentimentScore >= 0.7 && signal.Bullish():
		return models.ActionStrongBuy
	case (sentimentScore >= 0.6 && signal == models.Buy) ||
		(sentimentScore >= 0.7 && signal == models.Hold):
		return models.ActionBuy
	case sentimentScore <= 0.3 && signal.Bearish():
		return models.ActionStrongSell
	case (sentimentScore <= 0.4 && signal == models.Sell) ||
		(sentimentScore <= 0.3 && signal == models.Hold):
		return models.ActionSell
	case (sentimentScore >= 0.6 && signal.Bearish()) ||
		(sentimentScore <= 0.4 && signal.Bullish()):
		return models.ActionHoldMonitor
	default:
		return models.ActionHold
	}
}

// DeterminePriority assigns a 1 (most urgent) to 5 (least urgent) rank
// from a fixed table keyed on the composite score, sentiment alignment
// and signal.
func DeterminePriority(score, sentimentScore float64, signal models.OverallSignal) int {
	switch {
	case (score >= 0.8 && sentimentScore >= 0.7 && signal == models.StrongBuy) ||
		(score <= 0.2 && sentimentScore <= 0.3 && signal == models.StrongSell):
		return 1
	case (score >= 0.7 && signal.Bullish()) ||
		(score <= 0.3 && signal.Bearish()):
		return 2
	case (score >= 0.4 && score <= 0.6) ||
		(sentimentScore >= 0.6 && signal.Bearish()) ||
		(sentimentScore <= 0.4 && signal.Bullish()):
		return 3
	case signal == models.Hold:
		return 4
	default:
		return 5
	}
}

func signalFor(ticker string, reports map[string]*models.TechnicalReport) models.OverallSignal {
	if report, ok := reports[ticker]; ok && report.Signals != nil {
		return report.Signals.Overall
	}
	return models.Hold
}

// buildRecommendations ranks every scored ticker. The result is sorted
// most urgent first: ascending priority, then descending score.
func buildRecommendations(tickers []string, scores map[string]float64, reports map[string]*models.TechnicalReport) []models.Recommendation {
	recs := make([]models.Recommendation, 0, len(tickers))
	for _, ticker := range tickers {
		sentimentScore, ok := scores[ticker]
		if !ok {
			sentimentScore = 0.5
		}
		signal := signalFor(ticker, reports)
		score := TickerScore(sentimentScore, signal)

		recs = append(recs, models.Recommendation{
			Ticker:    ticker,
			Action:    DetermineAction(sentimentScore, signal),
			Score:     score,
			Sentiment: sentimentScore,
			Signal:    signal,
			Priority:  DeterminePriority(score, sentimentScore, signal),
		})
	}

	sort.SliceStable(recs, func(i, j int) bool {
		if recs[i].Priority != recs[j].Priority {
			return recs[i].Priority < recs[j].Priority
		}
		return recs[i].Score > recs[j].Score
	})
	return recs
}

// buildSummary computes the headline portfolio counts, the top-scoring
// opportunities and the tickers worth a risk alert.
func buildSummary(tickers []string, scores map[string]float64, reports map[string]*models.TechnicalReport) *models.PortfolioSummary {
	summary := &models.PortfolioSummary{
		TotalTickers:     len(scores),
		TopOpportunities: []string{},
		RiskAlerts:       []string{},
	}

	type scored struct {
		ticker string
		score  float64
		signal models.OverallSignal
	}
	analysis := make([]scored, 0, len(tickers))

	var sentimentSum float64
	for _, ticker := range tickers {
		sentimentScore, ok := scores[ticker]
		if !ok {
			continue
		}
		sentimentSum += sentimentScore

		signal := signalFor(ticker, reports)
		switch {
		case signal.Bullish():
			summary.BullishCount++
		case signal.Bearish():
			summary.BearishCount++
		default:
			summary.NeutralCount++
		}

		analysis = append(analysis, scored{
			ticker: ticker,
			score:  TickerScore(sentimentScore, signal),
			signal: signal,
		})
	}

	if len(scores) > 0 {
		summary.OverallSentiment = sentimentSum / float64(len(scores))
	}

	sort.SliceStable(analysis, func(i, j int) bool {
		return analysis[i].score > analysis[j].score
	})

	for i, entry := range analysis {
		if i < topOpportunityCount && entry.score > opportunityThreshold {
			summary.TopOpportunities = append(summary.TopOpportunities, entry.ticker)
		}
		if entry.score < riskAlertThreshold || entry.signal.Bearish() {
			summary.RiskAlerts = append(summary.RiskAlerts, entry.ticker)
		}
	}
	return summary
}

// buildRiskMetrics averages three unweighted factors: sentiment
// volatility across tickers, the fraction with a bearish signal, and
// the fraction with extreme sentiment.
func buildRiskMetrics(tickers []string, scores map[string]float64, reports map[string]*models.TechnicalReport) *models.RiskMetrics {
	if len(scores) == 0 {
		return nil
	}

	var sentimentSum float64
	for _, s := range scores {
		sentimentSum += s
	}
	avg := sentimentSum / float64(len(scores))

	var variance float64
	extreme := 0
	highRisk := []string{}
	for _, ticker := range tickers {
		s, ok := scores[ticker]
		if !ok {
			continue
		}
		diff := s - avg
		variance += diff * diff
		if s <= 0.3 || s >= 0.7 {
			extreme++
			highRisk = append(highRisk, ticker)
		}
	}
	variance /= float64(len(scores))
	volatility := math.Sqrt(variance)

	bearish := []string{}
	for _, ticker := range tickers {
		if signalFor(ticker, reports).Bearish() {
			bearish = append(bearish, ticker)
		}
	}

	n := float64(len(scores))
	overall := (volatility + float64(len(bearish))/n + float64(extreme)/n) / 3

	level := models.RiskLow
	if overall >= riskHighThreshold {
		level = models.RiskHigh
	} else if overall >= riskMediumThreshold {
		level = models.RiskMedium
	}

	return &models.RiskMetrics{
		OverallRiskScore:    overall,
		AverageSentiment:    avg,
		SentimentVolatility: volatility,
		HighRiskPositions:   highRisk,
		BearishSignals:      bearish,
		RiskLevel:           level,
	}
}
