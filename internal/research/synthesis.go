package research

import (
	"fmt"
	"strings"

	"stock-researcher/internal/models"
)

// Sentiment thresholds used by the recommendation rules.
const (
	sentimentHigh    = 0.7
	sentimentLow     = 0.3
	alignmentHigh    = 0.6
	alignmentLow     = 0.4
	defaultRiskScore = 0.5
)

// buildSummary renders the research summary text from whatever the
// earlier stages managed to produce.
func buildSummary(rec record) string {
	price := "N/A"
	if len(rec.series) > 0 {
		price = fmt.Sprintf("%.2f", rec.quote.Price)
	}

	signalText := strings.ReplaceAll(strings.ToUpper(string(overallSignal(rec))), "_", " ")
	label := models.SentimentNeutral
	if rec.sentimentSummary != nil {
		label = rec.sentimentSummary.Overall.Label
	}

	parts := []string{
		fmt.Sprintf("Research Summary for %s", rec.ticker),
		fmt.Sprintf("Current Price: $%s", price),
		"",
		fmt.Sprintf("Market Sentiment: %s (Score: %.2f)", strings.ToUpper(string(label)), rec.sentimentScore),
		fmt.Sprintf("Technical Signal: %s", signalText),
		"",
	}

	if rec.sentimentSummary != nil {
		parts = append(parts,
			fmt.Sprintf("Sentiment Analysis (%d articles):", rec.sentimentSummary.ArticleCount),
			fmt.Sprintf("  Positive: %d", rec.sentimentSummary.Overall.PositiveCount),
			fmt.Sprintf("  Negative: %d", rec.sentimentSummary.Overall.NegativeCount),
			"",
		)
	}

	if rec.indicators != nil {
		parts = append(parts,
			"Technical Indicators:",
			fmt.Sprintf("  %s", rec.technicalSummary),
			"",
		)
	}

	return strings.Join(parts, "\n")
}

// buildRecommendations applies independent rule checks on the
// sentiment score and overall signal. Every matching rule contributes
// a line; with no match the output defaults to holding.
func buildRecommendations(sentimentScore float64, signal models.OverallSignal) []string {
	var recs []string

	if sentimentScore >= sentimentHigh {
		recs = append(recs, "Positive market sentiment detected - consider increasing position")
	} else if sentimentScore <= sentimentLow {
		recs = append(recs, "Negative market sentiment detected - exercise caution")
	}

	switch signal {
	case models.StrongBuy:
		recs = append(recs, "Strong technical buy signal - potential entry point")
	case models.Buy:
		recs = append(recs, "Moderate buy signal - consider scaling in")
	case models.StrongSell:
		recs = append(recs, "Strong sell signal - consider reducing exposure")
	case models.Sell:
		recs = append(recs, "Moderate sell signal - monitor closely")
	}

	switch {
	case sentimentScore >= alignmentHigh && signal.Bullish():
		recs = append(recs, "Both sentiment and technicals align positively - high confidence opportunity")
	case sentimentScore <= alignmentLow && signal.Bearish():
		recs = append(recs, "Both sentiment and technicals align negatively - consider risk management")
	case (sentimentScore >= alignmentHigh && signal.Bearish()) ||
		(sentimentScore <= alignmentLow && signal.Bullish()):
		recs = append(recs, "Mixed signals - proceed with caution and do additional research")
	}

	if len(recs) == 0 {
		recs = append(recs, "Hold current position and monitor for changes")
	}
	return recs
}

// riskScore averages two factors: article agreement (strong agreement
// between positive and negative coverage lowers risk) and technical
// alignment (more aligned indicators lower risk).
func riskScore(summary *models.SentimentSummary, strength int) float64 {
	var factors []float64

	if summary != nil && summary.ArticleCount > 0 {
		diff := summary.Overall.PositiveCount - summary.Overall.NegativeCount
		if diff < 0 {
			diff = -diff
		}
		agreement := float64(diff) / float64(summary.ArticleCount)
		factors = append(factors, 1-agreement)
	}

	if strength < 0 {
		strength = -strength
	}
	switch {
	case strength >= 3:
		factors = append(factors, 0.2)
	case strength >= 2:
		factors = append(factors, 0.4)
	case strength == 1:
		factors = append(factors, 0.6)
	default:
		factors = append(factors, 0.8)
	}

	if len(factors) == 0 {
		return defaultRiskScore
	}
	var total float64
	for _, f := range factors {
		total += f
	}
	return total / float64(len(factors))
}
