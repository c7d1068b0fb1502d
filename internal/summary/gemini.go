package summary

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/genai"
)

type generateFunc func(ctx context.Context, model, prompt string) (string, error)

// GeminiSummarizer asks a Gemini model for the summary.
type GeminiSummarizer struct {
	model    string
	generate generateFunc
}

func NewGeminiSummarizer(ctx context.Context, apiKey, model string) (*GeminiSummarizer, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	generate := func(ctx context.Context, model, prompt string) (string, error) {
		resp, err := client.Models.GenerateContent(ctx, model, genai.Text(prompt), &genai.GenerateContentConfig{
			ResponseMIMEType: "application/json",
		})
		if err != nil {
			return "", err
		}
		return resp.Text(), nil
	}

	return &GeminiSummarizer{model: model, generate: generate}, nil
}

func (g *GeminiSummarizer) Summarize(ctx context.Context, txs []TransactionForAI) (string, error) {
	if len(txs) == 0 {
		return EmptyHistoryMessage, nil
	}

	prompt, err := buildPrompt(txs)
	if err != nil {
		return "", err
	}

	raw, err := g.generate(ctx, g.model, prompt)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}
	if raw == "" {
		return "", errors.New("empty response from model")
	}

	return parseOutput(raw)
}

// Unavailable is used when no model is configured.
type Unavailable struct{}

var ErrUnavailable = errors.New("summary model not configured")

func (Unavailable) Summarize(_ context.Context, txs []TransactionForAI) (string, error) {
	if len(txs) == 0 {
		return EmptyHistoryMessage, nil
	}
	return "", ErrUnavailable
}
