package sentiment

import (
	"context"
	"regexp"
	"sort"
	"strings"

	"stock-researcher/internal/models"
)

// Label thresholds. Per-text labels cut on the compound scale while
// the aggregate cuts on the normalized [0, 1] scale; the two operate
// on different scales and are not interchangeable.
const (
	compoundPositive  = 0.05
	compoundNegative  = -0.05
	aggregatePositive = 0.6
	aggregateNegative = 0.4
)

// Analyzer scores texts and aggregates the results.
type Analyzer struct {
	scorer PolarityScorer
}

// NewAnalyzer creates an analyzer backed by the given polarity scorer.
func NewAnalyzer(scorer PolarityScorer) *Analyzer {
	return &Analyzer{scorer: scorer}
}

// Score classifies a single text. The compound score is normalized to
// [0, 1] via (compound+1)/2 and confidence is its absolute value.
func (a *Analyzer) Score(ctx context.Context, text string) (models.SentimentResult, error) {
	polarity, err := a.scorer.ScorePolarity(ctx, text)
	if err != nil {
		return models.SentimentResult{}, err
	}

	label := models.SentimentNeutral
	if polarity.Compound >= compoundPositive {
		label = models.SentimentPositive
	} else if polarity.Compound <= compoundNegative {
		label = models.SentimentNegative
	}

	confidence := polarity.Compound
	if confidence < 0 {
		confidence = -confidence
	}

	return models.SentimentResult{
		Score:      (polarity.Compound + 1) / 2,
		Compound:   polarity.Compound,
		Label:      label,
		Confidence: confidence,
		Positive:   polarity.Positive,
		Neutral:    polarity.Neutral,
		Negative:   polarity.Negative,
	}, nil
}

// Aggregate combines per-text results into a single reading. Empty
// input yields the documented neutral default rather than an error.
func Aggregate(results []models.SentimentResult) models.AggregatedSentiment {
	if len(results) == 0 {
		return models.AggregatedSentiment{
			Score:      0.5,
			Label:      models.SentimentNeutral,
			Confidence: 0.0,
			Count:      0,
		}
	}

	var scoreSum, confidenceSum float64
	agg := models.AggregatedSentiment{Count: len(results)}
	for _, r := range results {
		scoreSum += r.Score
		confidenceSum += r.Confidence
		switch r.Label {
		case models.SentimentPositive:
			agg.PositiveCount++
		case models.SentimentNegative:
			agg.NegativeCount++
		default:
			agg.NeutralCount++
		}
	}

	agg.Score = scoreSum / float64(len(results))
	agg.Confidence = confidenceSum / float64(len(results))

	switch {
	case agg.Score >= aggregatePositive:
		agg.Label = models.SentimentPositive
	case agg.Score <= aggregateNegative:
		agg.Label = models.SentimentNegative
	default:
		agg.Label = models.SentimentNeutral
	}
	return agg
}

// ScoreArticles scores each article's combined title and description
// and returns the individual results alongside the aggregate.
func (a *Analyzer) ScoreArticles(ctx context.Context, articles []models.Article) (models.SentimentSummary, error) {
	individual := make([]models.ScoredText, 0, len(articles))
	results := make([]models.SentimentResult, 0, len(articles))

	for _, article := range articles {
		text := article.Text()
		result, err := a.Score(ctx, text)
		if err != nil {
			return models.SentimentSummary{}, err
		}
		source := article.Source
		if source == "" {
			source = "Unknown"
		}
		individual = append(individual, models.ScoredText{
			Source:    source,
			Sentiment: result,
			Preview:   preview(text, 100),
		})
		results = append(results, result)
	}

	return models.SentimentSummary{
		Overall:      Aggregate(results),
		Individual:   individual,
		ArticleCount: len(articles),
	}, nil
}

var topicWordPattern = regexp.MustCompile(`\b[a-z]{4,}\b`)

var stopWords = map[string]struct{}{
	"the": {}, "a": {}, "an": {}, "and": {}, "or": {}, "but": {},
	"in": {}, "on": {}, "at": {}, "to": {}, "for": {}, "of": {},
	"with": {}, "by": {}, "this": {}, "that": {}, "from": {}, "have": {},
}

// KeyTopics extracts the most frequent meaningful words across the
// given texts, most common first. Ties break alphabetically so the
// output is deterministic.
func KeyTopics(texts []string, topN int) []string {
	combined := strings.ToLower(strings.Join(texts, " "))
	counts := make(map[string]int)
	for _, word := range topicWordPattern.FindAllString(combined, -1) {
		if _, stop := stopWords[word]; stop {
			continue
		}
		counts[word]++
	}

	words := make([]string, 0, len(counts))
	for w := range counts {
		words = append(words, w)
	}
	sort.Slice(words, func(i, j int) bool {
		if counts[words[i]] != counts[words[j]] {
			return counts[words[i]] > counts[words[j]]
		}
		return words[i] < words[j]
	})

	if len(words) > topN {
		words = words[:topN]
	}
	return words
}

func preview(text string, limit int) string {
	if len(text) <= limit {
		return text
	}
	// Cut on a rune boundary so multibyte text stays valid.
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit])
}
