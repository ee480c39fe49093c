package cardgen

import (
	"context"
	"fmt"

	"ankibridge-be/pkg/llm"
)

// Generator turns a single word into a populated field map using an LLM
// provider. It performs exactly one provider call per request; retry policy
// belongs to the user, not here.
type Generator struct {
	provider llm.Provider
}

func NewGenerator(provider llm.Provider) *Generator {
	return &Generator{provider: provider}
}

func (g *Generator) GenerateFields(ctx context.Context, req Request) (map[string]string, error) {
	if req.Word == "" {
		return nil, fmt.Errorf("word must not be empty")
	}
	if len(req.FieldNames) == 0 {
		return nil, fmt.Errorf("model %q has no fields", req.ModelName)
	}

	history := []llm.Message{
		{Role: "system", Content: systemPrompt},
		{Role: "user", Content: BuildPrompt(req)},
	}

	content, err := g.provider.Chat(ctx, history,
		llm.WithTemperature(0.7),
		llm.WithMaxTokens(500),
	)
	if err != nil {
		return nil, err
	}

	fields, err := ParseFieldJSON(content)
	if err != nil {
		return nil, err
	}

	normalizeWordField(req.Word, fields)
	return fields, nil
}

// normalizeWordField pins word-like fields back to the input when the model
// drifts, e.g. answering with an inflected form.
func normalizeWordField(word string, fields map[string]string) {
	for _, name := range []string{"Word", "word"} {
		if v, ok := fields[name]; ok && v != word {
			fields[name] = word
		}
	}
}
