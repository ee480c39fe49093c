package dto

import "ankibridge-be/pkg/ankiconnect"

type GenerateCardRequest struct {
	Word      string `json:"word" validate:"required"`
	DeckName  string `json:"deck_name" validate:"required"`
	ModelName string `json:"model_name" validate:"required"`
	Language  string `json:"language" validate:"required"`
	Context   string `json:"context"`
}

type GenerateCardResponse struct {
	Fields map[string]string `json:"fields"`
	CanAdd bool              `json:"can_add"`
	Note   ankiconnect.Note  `json:"note"`
}

type AddCardRequest struct {
	Note           ankiconnect.Note `json:"note" validate:"required"`
	AllowDuplicate bool             `json:"allow_duplicate"`
}

type AddCardResponse struct {
	NoteID int64 `json:"note_id"`
}
