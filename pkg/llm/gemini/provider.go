package gemini

import (
	"context"
	"fmt"

	"ankibridge-be/pkg/llm"

	"google.golang.org/genai"
)

type Provider struct {
	client    *genai.Client
	modelName string
}

// Ensure Provider implements llm.Provider
var _ llm.Provider = &Provider{}

func NewProvider(ctx context.Context, apiKey, modelName string) (*Provider, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &Provider{
		client:    client,
		modelName: modelName,
	}, nil
}

func (p *Provider) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	options := llm.Apply(opts)

	contents := make([]*genai.Content, 0, len(history))
	for _, msg := range history {
		// Gemini only knows "user" and "model"; system prompts ride along as
		// user turns, assistant turns map to model.
		role := "user"
		if msg.Role == "assistant" || msg.Role == "model" {
			role = "model"
		}
		contents = append(contents, &genai.Content{
			Role:  role,
			Parts: []*genai.Part{{Text: msg.Content}},
		})
	}

	model := p.modelName
	if options.Model != "" {
		model = options.Model
	}

	config := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(float32(options.Temperature)),
	}
	if options.MaxTokens > 0 {
		config.MaxOutputTokens = int32(options.MaxTokens)
	}

	resp, err := p.client.Models.GenerateContent(ctx, model, contents, config)
	if err != nil {
		return "", fmt.Errorf("gemini request failed: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("gemini returned no content")
	}
	return text, nil
}

func (p *Provider) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	return p.Chat(ctx, []llm.Message{{Role: "user", Content: prompt}}, opts...)
}
