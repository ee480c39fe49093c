package dto

import "ankibridge-be/internal/staging"

type StageBatchRequest struct {
	Words     []string `json:"words" validate:"required,min=1"`
	DeckName  string   `json:"deck_name" validate:"required"`
	ModelName string   `json:"model_name" validate:"required"`
	Language  string   `json:"language" validate:"required"`
}

type BatchSessionResponse struct {
	SessionID string         `json:"session_id"`
	Items     []staging.Item `json:"items"`
}

type SetCheckedRequest struct {
	Checked *bool `json:"checked" validate:"required"`
}

type SelectAllRequest struct {
	Checked *bool `json:"checked" validate:"required"`
}

type ForceIncludeResponse struct {
	// Applied is false when the item had no generated content to submit.
	Applied bool           `json:"applied"`
	Items   []staging.Item `json:"items"`
}

type EditFieldsRequest struct {
	Fields map[string]string `json:"fields" validate:"required,min=1"`
	// Replace discards fields not present in the request instead of merging.
	Replace bool `json:"replace"`
}

type SubmitBatchResponse struct {
	Summary staging.Summary `json:"summary"`
	// Completed reports that every submitted item succeeded and the staging
	// session has been discarded.
	Completed bool           `json:"completed"`
	Items     []staging.Item `json:"items"`
}
