package sentiment

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"stock-researcher/internal/models"
	"stock-researcher/internal/workflow"
)

// Stage identifiers for the standalone sentiment workflow.
const (
	stagePreprocess workflow.StageID = iota + 1
	stageAnalyze
	stagePostprocess
)

const topicCount = 5

// flowRecord is the analysis record threaded through the standalone
// sentiment workflow.
type flowRecord struct {
	texts      []string
	sources    []string
	individual []models.ScoredText
	aggregated *models.AggregatedSentiment
	keyTopics  []string
	errMsg     string
}

// Flow runs the standalone sentiment workflow over a batch of texts.
type Flow struct {
	analyzer *Analyzer
	logger   zerolog.Logger
}

// NewFlow creates a sentiment workflow runner.
func NewFlow(analyzer *Analyzer, logger zerolog.Logger) *Flow {
	return &Flow{analyzer: analyzer, logger: logger}
}

// Run analyzes the given texts and returns the aggregated report.
// Sources are optional; missing entries default to "Unknown".
func (f *Flow) Run(ctx context.Context, texts, sources []string) models.SentimentReport {
	graph := workflow.New[flowRecord]("sentiment", f.logger)
	graph.AddStage(stagePreprocess, "preprocess", f.preprocess, afterPreprocess, stageAnalyze)
	graph.AddStage(stageAnalyze, "analyze", f.analyze, func(flowRecord) workflow.StageID {
		// Postprocessing runs even when analysis recorded an error.
		return stagePostprocess
	}, stagePostprocess)
	graph.AddStage(stagePostprocess, "postprocess", f.postprocess, func(flowRecord) workflow.StageID {
		return workflow.Terminate
	})
	graph.SetEntry(stagePreprocess)

	rec, err := graph.Run(ctx, flowRecord{texts: texts, sources: sources})
	if err != nil {
		return models.SentimentReport{Error: err.Error(), TextCount: len(texts)}
	}

	report := models.SentimentReport{
		Aggregated: rec.aggregated,
		Individual: rec.individual,
		KeyTopics:  rec.keyTopics,
		TextCount:  len(rec.texts),
		Error:      rec.errMsg,
	}
	if rec.aggregated != nil {
		report.ConfidenceScore = rec.aggregated.Confidence
	}
	return report
}

// preprocess strips empty and whitespace-only texts, collapsing runs
// of whitespace in the ones that remain.
func (f *Flow) preprocess(_ context.Context, rec flowRecord) flowRecord {
	cleaned := make([]string, 0, len(rec.texts))
	keptSources := make([]string, 0, len(rec.texts))
	for i, text := range rec.texts {
		normalized := strings.Join(strings.Fields(text), " ")
		if normalized == "" {
			continue
		}
		cleaned = append(cleaned, normalized)
		if i < len(rec.sources) {
			keptSources = append(keptSources, rec.sources[i])
		} else {
			keptSources = append(keptSources, "Unknown")
		}
	}
	rec.texts = cleaned
	rec.sources = keptSources
	f.logger.Debug().Int("count", len(cleaned)).Msg("Preprocessed texts for sentiment analysis")
	return rec
}

func afterPreprocess(rec flowRecord) workflow.StageID {
	if len(rec.texts) == 0 {
		return workflow.Terminate
	}
	return stageAnalyze
}

func (f *Flow) analyze(ctx context.Context, rec flowRecord) flowRecord {
	individual := make([]models.ScoredText, 0, len(rec.texts))
	results := make([]models.SentimentResult, 0, len(rec.texts))

	for i, text := range rec.texts {
		result, err := f.analyzer.Score(ctx, text)
		if err != nil {
			rec.errMsg = err.Error()
			return rec
		}
		individual = append(individual, models.ScoredText{
			Source:    rec.sources[i],
			Sentiment: result,
			Preview:   preview(text, 200),
		})
		results = append(results, result)
	}

	aggregated := Aggregate(results)
	rec.individual = individual
	rec.aggregated = &aggregated
	rec.keyTopics = KeyTopics(rec.texts, topicCount)
	return rec
}

// postprocess annotates the aggregate with a textual interpretation
// and a confidence level.
func (f *Flow) postprocess(_ context.Context, rec flowRecord) flowRecord {
	if rec.aggregated == nil {
		return rec
	}

	score := rec.aggregated.Score
	switch {
	case score >= 0.7:
		rec.aggregated.Interpretation = "Strongly positive sentiment"
	case score >= 0.55:
		rec.aggregated.Interpretation = "Moderately positive sentiment"
	case score >= 0.45:
		rec.aggregated.Interpretation = "Neutral sentiment"
	case score >= 0.3:
		rec.aggregated.Interpretation = "Moderately negative sentiment"
	default:
		rec.aggregated.Interpretation = "Strongly negative sentiment"
	}

	confidence := rec.aggregated.Confidence
	switch {
	case confidence >= 0.8:
		rec.aggregated.ConfidenceLevel = "High confidence"
	case confidence >= 0.6:
		rec.aggregated.ConfidenceLevel = "Moderate confidence"
	default:
		rec.aggregated.ConfidenceLevel = "Low confidence"
	}

	f.logger.Info().
		Str("interpretation", rec.aggregated.Interpretation).
		Str("confidence", rec.aggregated.ConfidenceLevel).
		Msg("Sentiment analysis complete")
	return rec
}
