package models

// SentimentLabel classifies the tone of a text or aggregate.
type SentimentLabel string

const (
	SentimentPositive SentimentLabel = "positive"
	SentimentNeutral  SentimentLabel = "neutral"
	SentimentNegative SentimentLabel = "negative"
)

// SentimentResult is the scored sentiment of a single text.
// Score is normalized to [0, 1]; Compound keeps the raw [-1, 1] value.
type SentimentResult struct {
	Score      float64        `json:"score"`
	Compound   float64        `json:"compound"`
	Label      SentimentLabel `json:"label"`
	Confidence float64        `json:"confidence"`
	Positive   float64        `json:"positive"`
	Neutral    float64        `json:"neutral"`
	Negative   float64        `json:"negative"`
}

// AggregatedSentiment combines per-text results into a single reading.
type AggregatedSentiment struct {
	Score           float64        `json:"score"`
	Label           SentimentLabel `json:"label"`
	Confidence      float64        `json:"confidence"`
	Count           int            `json:"count"`
	PositiveCount   int            `json:"positive_count"`
	NegativeCount   int            `json:"negative_count"`
	NeutralCount    int            `json:"neutral_count"`
	Interpretation  string         `json:"interpretation,omitempty"`
	ConfidenceLevel string         `json:"confidence_level,omitempty"`
}

// ScoredText pairs a source text with its sentiment.
type ScoredText struct {
	Source    string          `json:"source"`
	Sentiment SentimentResult `json:"sentiment"`
	Preview   string          `json:"preview"`
}

// SentimentSummary is the sentiment section of a research report.
type SentimentSummary struct {
	Overall      AggregatedSentiment `json:"overall"`
	Individual   []ScoredText        `json:"individual,omitempty"`
	ArticleCount int                 `json:"article_count"`
}
