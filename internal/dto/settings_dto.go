package dto

type SettingsResponse struct {
	LLMProvider string   `json:"llm_provider"`
	LLMModel    string   `json:"llm_model"`
	AnkiHost    string   `json:"anki_host"`
	AnkiPort    int      `json:"anki_port"`
	DefaultTags []string `json:"default_tags"`
}

type UpdateSettingsRequest struct {
	LLMProvider string   `json:"llm_provider" validate:"required,oneof=gemini openai custom"`
	LLMModel    string   `json:"llm_model" validate:"required"`
	AnkiHost    string   `json:"anki_host" validate:"required"`
	AnkiPort    int      `json:"anki_port" validate:"required,min=1,max=65535"`
	DefaultTags []string `json:"default_tags"`
}
