package openai

import (
	"context"
	"fmt"

	"ankibridge-be/pkg/llm"

	goopenai "github.com/sashabaranov/go-openai"
)

type Provider struct {
	client    *goopenai.Client
	modelName string
}

// Ensure Provider implements llm.Provider
var _ llm.Provider = &Provider{}

// NewProvider creates a provider against the official OpenAI API.
func NewProvider(apiKey, modelName string) *Provider {
	return &Provider{
		client:    goopenai.NewClient(apiKey),
		modelName: modelName,
	}
}

// NewCustomProvider creates a provider against any OpenAI-compatible endpoint
// (Ollama, vLLM, LM Studio, ...). The API key may be empty for unauthenticated
// local endpoints.
func NewCustomProvider(apiKey, baseURL, modelName string) *Provider {
	config := goopenai.DefaultConfig(apiKey)
	config.BaseURL = baseURL
	return &Provider{
		client:    goopenai.NewClientWithConfig(config),
		modelName: modelName,
	}
}

func (p *Provider) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	options := llm.Apply(opts)

	messages := make([]goopenai.ChatCompletionMessage, len(history))
	for i, msg := range history {
		role := msg.Role
		if role == "model" {
			role = goopenai.ChatMessageRoleAssistant
		}
		messages[i] = goopenai.ChatCompletionMessage{
			Role:    role,
			Content: msg.Content,
		}
	}

	model := p.modelName
	if options.Model != "" {
		model = options.Model
	}

	req := goopenai.ChatCompletionRequest{
		Model:       model,
		Messages:    messages,
		Temperature: float32(options.Temperature),
	}
	if options.MaxTokens > 0 {
		req.MaxTokens = options.MaxTokens
	}

	resp, err := p.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("openai request failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("openai returned no choices")
	}

	return resp.Choices[0].Message.Content, nil
}

func (p *Provider) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	return p.Chat(ctx, []llm.Message{{Role: goopenai.ChatMessageRoleUser, Content: prompt}}, opts...)
}
