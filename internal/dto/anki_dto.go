package dto

type ConnectionResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Version int    `json:"version,omitempty"`
}

type DeckListResponse struct {
	Decks []string `json:"decks"`
}

type CreateDeckRequest struct {
	Name string `json:"name" validate:"required"`
}

type CreateDeckResponse struct {
	Id int64 `json:"id"`
}

type ModelListResponse struct {
	Models []string `json:"models"`
}

type ModelFieldsResponse struct {
	Fields []string `json:"fields"`
}
