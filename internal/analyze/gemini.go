package analyze

import (
	"context"
	"fmt"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// GeminiBackend generates free text through the Gemini API.
type GeminiBackend struct {
	client      *genai.Client
	model       string
	temperature float32
	topP        float32
	maxTokens   int32
}

func NewGeminiBackend(apiKey, model string, temperature, topP float32, maxTokens int32) (*GeminiBackend, error) {
	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiBackend{
		client:      client,
		model:       model,
		temperature: temperature,
		topP:        topP,
		maxTokens:   maxTokens,
	}, nil
}

func (b *GeminiBackend) Name() string { return "gemini" }

func (b *GeminiBackend) Generate(ctx context.Context, prompt string) (string, error) {
	model := b.client.GenerativeModel(b.model)
	model.SetTemperature(b.temperature)
	model.SetTopP(b.topP)
	model.SetMaxOutputTokens(b.maxTokens)

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("gemini: generate content: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("gemini: empty response")
	}

	return fmt.Sprintf("%v", resp.Candidates[0].Content.Parts[0]), nil
}

func (b *GeminiBackend) Close() {
	if b.client != nil {
		b.client.Close()
	}
}
