// Package sentiment scores text polarity and aggregates per-text
// results into a single reading for a ticker or topic.
package sentiment

import (
	"context"
	"strings"
)

// Polarity holds the raw output of a polarity classifier. Compound is
// the overall score in [-1, 1]; Positive, Neutral and Negative are the
// per-class proportions.
type Polarity struct {
	Compound float64
	Positive float64
	Neutral  float64
	Negative float64
}

// PolarityScorer classifies the polarity of a single text.
type PolarityScorer interface {
	ScorePolarity(ctx context.Context, text string) (Polarity, error)
}

// LexiconScorer is a dependency-free PolarityScorer backed by word
// lists. It is the default scorer when no API-backed classifier is
// configured.
type LexiconScorer struct{}

// NewLexiconScorer creates a new lexicon-based scorer.
func NewLexiconScorer() *LexiconScorer {
	return &LexiconScorer{}
}

var positiveWords = []string{
	"surge", "rally", "gain", "profit", "growth", "bullish", "upgrade",
	"beat", "exceed", "strong", "positive", "outperform", "buy",
	"record", "high", "boost", "improve", "success", "optimistic",
}

var negativeWords = []string{
	"fall", "drop", "decline", "loss", "bearish", "downgrade",
	"miss", "weak", "negative", "underperform", "sell", "concern",
	"low", "cut", "reduce", "warning", "risk", "pessimistic",
}

var negations = []string{"not", "no", "never", "neither", "without"}

// ScorePolarity estimates polarity by counting positive and negative
// words, damping hits that follow a negation word.
func (s *LexiconScorer) ScorePolarity(_ context.Context, text string) (Polarity, error) {
	words := strings.Fields(strings.ToLower(text))

	var positiveCount, negativeCount float64
	for i, w := range words {
		w = strings.Trim(w, ".,;:!?\"'()")
		weight := 1.0
		if i > 0 && isNegation(strings.Trim(words[i-1], ".,;:!?\"'()")) {
			weight = -0.5
		}
		if containsWord(positiveWords, w) {
			positiveCount += weight
		} else if containsWord(negativeWords, w) {
			negativeCount += weight
		}
	}
	if positiveCount < 0 {
		negativeCount += -positiveCount
		positiveCount = 0
	}
	if negativeCount < 0 {
		positiveCount += -negativeCount
		negativeCount = 0
	}

	total := positiveCount + negativeCount
	if total == 0 {
		return Polarity{Neutral: 1}, nil
	}

	compound := (positiveCount - negativeCount) / total
	// Scale by hit density so a single word does not saturate the score.
	wordCount := float64(len(words))
	if wordCount > 0 {
		density := total / wordCount
		if density > 1 {
			density = 1
		}
		compound *= 0.5 + 0.5*density
	}

	pos := positiveCount / total
	neg := negativeCount / total
	return Polarity{
		Compound: clampCompound(compound),
		Positive: pos,
		Negative: neg,
		Neutral:  1 - pos - neg,
	}, nil
}

func isNegation(word string) bool {
	return containsWord(negations, word)
}

func containsWord(list []string, word string) bool {
	for _, w := range list {
		if strings.Contains(word, w) {
			return true
		}
	}
	return false
}

func clampCompound(v float64) float64 {
	if v > 1 {
		return 1
	}
	if v < -1 {
		return -1
	}
	return v
}
