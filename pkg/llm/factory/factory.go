package factory

import (
	"context"
	"fmt"

	"ankibridge-be/pkg/llm"
	"ankibridge-be/pkg/llm/gemini"
	"ankibridge-be/pkg/llm/openai"
)

// Settings carries everything any provider might need; each provider picks
// what it understands.
type Settings struct {
	Provider      string // "gemini", "openai" or "custom"
	Model         string
	OpenAIKey     string
	GeminiKey     string
	CustomKey     string
	CustomBaseURL string
}

func NewProvider(ctx context.Context, s Settings) (llm.Provider, error) {
	switch s.Provider {
	case "gemini":
		if s.GeminiKey == "" {
			return nil, fmt.Errorf("gemini API key not found, set GEMINI_API_KEY")
		}
		return gemini.NewProvider(ctx, s.GeminiKey, s.Model)
	case "openai":
		if s.OpenAIKey == "" {
			return nil, fmt.Errorf("openai API key not found, set OPENAI_API_KEY")
		}
		return openai.NewProvider(s.OpenAIKey, s.Model), nil
	case "custom":
		baseURL := s.CustomBaseURL
		if baseURL == "" {
			baseURL = "http://localhost:11434/v1" // Default
		}
		return openai.NewCustomProvider(s.CustomKey, baseURL, s.Model), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", s.Provider)
	}
}
