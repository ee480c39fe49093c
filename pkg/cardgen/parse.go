package cardgen

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ParseFieldJSON decodes the model's response into a field map, tolerating the
// markdown code fences some models insist on wrapping JSON in.
func ParseFieldJSON(content string) (map[string]string, error) {
	content = stripFences(strings.TrimSpace(content))

	var fields map[string]string
	if err := json.Unmarshal([]byte(content), &fields); err != nil {
		return nil, fmt.Errorf("parse field JSON: %w | raw: %s", err, content)
	}
	if len(fields) == 0 {
		return nil, fmt.Errorf("model returned an empty field object")
	}
	return fields, nil
}

func stripFences(content string) string {
	if !strings.HasPrefix(content, "```") {
		return content
	}
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	if idx := strings.LastIndex(content, "```"); idx >= 0 {
		content = content[:idx]
	}
	return strings.TrimSpace(content)
}
