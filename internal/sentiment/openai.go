package sentiment

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"
)

// OpenAIScorer implements PolarityScorer using the OpenAI API. It asks
// the model for a compound score plus class proportions and falls back
// to a lexicon scorer when the response cannot be parsed.
type OpenAIScorer struct {
	client   *openai.Client
	model    string
	fallback PolarityScorer
}

// NewOpenAIScorer creates a new OpenAI-backed polarity scorer.
func NewOpenAIScorer(apiKey, model string) *OpenAIScorer {
	return &OpenAIScorer{
		client:   openai.NewClient(apiKey),
		model:    model,
		fallback: NewLexiconScorer(),
	}
}

const polarityPrompt = `You are a financial sentiment classifier.
Given a news text, respond with ONLY a JSON object:
{"compound": <float -1 to 1>, "pos": <float 0 to 1>, "neu": <float 0 to 1>, "neg": <float 0 to 1>}
The pos, neu and neg proportions must sum to 1.`

type polarityResponse struct {
	Compound float64 `json:"compound"`
	Pos      float64 `json:"pos"`
	Neu      float64 `json:"neu"`
	Neg      float64 `json:"neg"`
}

// ScorePolarity classifies a text via the OpenAI chat API.
func (s *OpenAIScorer) ScorePolarity(ctx context.Context, text string) (Polarity, error) {
	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: s.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: polarityPrompt},
			{Role: openai.ChatMessageRoleUser, Content: text},
		},
	})
	if err != nil {
		return Polarity{}, fmt.Errorf("openai polarity request failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return Polarity{}, fmt.Errorf("no response from openai")
	}

	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")

	var parsed polarityResponse
	if err := json.Unmarshal([]byte(strings.TrimSpace(content)), &parsed); err != nil {
		return s.fallback.ScorePolarity(ctx, text)
	}

	return Polarity{
		Compound: clampCompound(parsed.Compound),
		Positive: parsed.Pos,
		Neutral:  parsed.Neu,
		Negative: parsed.Neg,
	}, nil
}
