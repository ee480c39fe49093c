package dto

type OpenBrowseRequest struct {
	Deck     string `json:"deck"`
	Search   string `json:"search"`
	PageSize int    `json:"page_size" validate:"omitempty,min=1,max=100"`
}

type BrowseNote struct {
	NoteID    int64             `json:"note_id"`
	ModelName string            `json:"model_name"`
	Tags      []string          `json:"tags"`
	Fields    map[string]string `json:"fields"`
	Selected  bool              `json:"selected"`
}

type Pagination struct {
	Page  int `json:"page"`
	Pages int `json:"pages"`
	Total int `json:"total"`
}

type BrowsePageResponse struct {
	SessionID     string       `json:"session_id"`
	Notes         []BrowseNote `json:"notes"`
	Pagination    Pagination   `json:"pagination"`
	SelectedCount int          `json:"selected_count"`
}

type SelectNotesRequest struct {
	NoteIDs  []int64 `json:"note_ids" validate:"required,min=1"`
	Selected *bool   `json:"selected" validate:"required"`
}

type SelectionResponse struct {
	NoteIDs []int64 `json:"note_ids"`
}

type UpdateNoteRequest struct {
	Fields map[string]string `json:"fields" validate:"required,min=1"`
}

type DeleteSelectedRequest struct {
	// Deletion is destructive; the UI must send an explicit confirmation.
	Confirm bool `json:"confirm"`
}

type DeleteSelectedResponse struct {
	Deleted int `json:"deleted"`
}
