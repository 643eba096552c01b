package analyze

import (
	"context"
	"fmt"

	"github.com/sashabaranov/go-openai"
)

// OpenAIBackend is the second rung of the backend ladder, used when Gemini
// is unavailable or over budget.
type OpenAIBackend struct {
	client      *openai.Client
	model       string
	temperature float32
	topP        float32
	maxTokens   int
}

func NewOpenAIBackend(apiKey, model string, temperature, topP float32, maxTokens int) *OpenAIBackend {
	return &OpenAIBackend{
		client:      openai.NewClient(apiKey),
		model:       model,
		temperature: temperature,
		topP:        topP,
		maxTokens:   maxTokens,
	}
}

func (b *OpenAIBackend) Name() string { return "openai" }

func (b *OpenAIBackend) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := b.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       b.model,
		Temperature: b.temperature,
		TopP:        b.topP,
		MaxTokens:   b.maxTokens,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", fmt.Errorf("openai: chat completion: %w", err)
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("openai: empty response")
	}
	return resp.Choices[0].Message.Content, nil
}
