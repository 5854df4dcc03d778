package repository

import (
	"context"
	"fmt"
	"strings"

	"intelvest/internal/domain"

	"github.com/ayush6624/go-chatgpt"
)

// ExplanationRepository produces a plain-English summary of a prediction's
// drivers. Used as a fallback when upstream sends a blank explanation -
// mirrors the LLM summarization step the ml service does server-side.
type ExplanationRepository interface {
	ExplainPrediction(ctx context.Context, symbol string, shap []domain.ShapFeature, sentimentScore float64) (string, error)
}

type explanationRepositoryHandler struct {
	GptClient *chatgpt.Client
}

func NewExplanationRepository(apiKey string) (ExplanationRepository, error) {
	client, err := chatgpt.NewClient(apiKey)
	if err != nil {
		return nil, fmt.Errorf("failed to construct gpt client: %w", err)
	}

	return explanationRepositoryHandler{
		GptClient: client,
	}, nil
}

const explanationPrompt = `
You are summarizing the drivers of a short-term stock price forecast for a retail investor. You will receive the stock symbol, the model's SHAP feature attributions (feature name and signed contribution, ordered by importance), and a news sentiment score in [-1, 1].

Write two or three plain sentences naming the strongest drivers and whether they push the forecast up or down. Do not mention SHAP, models, or machine learning. Do not give financial advice.
`

func (h explanationRepositoryHandler) ExplainPrediction(ctx context.Context, symbol string, shap []domain.ShapFeature, sentimentScore float64) (string, error) {
	drivers := []string{}
	for _, feature := range shap {
		drivers = append(drivers, fmt.Sprintf("%s: %+.4f", feature.Feature, feature.Value))
	}

	request := fmt.Sprintf(
		"symbol: %s\nsentiment score: %.3f\ndrivers:\n%s",
		symbol,
		sentimentScore,
		strings.Join(drivers, "\n"),
	)

	response, err := h.GptClient.Send(ctx, &chatgpt.ChatCompletionRequest{
		Model: chatgpt.GPT35Turbo,
		Messages: []chatgpt.ChatMessage{
			{
				Role:    chatgpt.ChatGPTModelRoleSystem,
				Content: explanationPrompt,
			},
			{
				Role:    chatgpt.ChatGPTModelRoleUser,
				Content: request,
			},
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to generate explanation: %w", err)
	}
	if len(response.Choices) == 0 {
		return "", fmt.Errorf("gpt returned no choices")
	}

	return strings.TrimSpace(response.Choices[0].Message.Content), nil
}
