package ankiconnect

// Note is a candidate note submission in AnkiConnect's shape.
type Note struct {
	DeckName  string            `json:"deckName"`
	ModelName string            `json:"modelName"`
	Fields    map[string]string `json:"fields"`
	Tags      []string          `json:"tags"`
	Options   *NoteOptions      `json:"options,omitempty"`
}

type NoteOptions struct {
	AllowDuplicate bool `json:"allowDuplicate"`
}

// NoteInfo is a stored note as returned by notesInfo.
type NoteInfo struct {
	NoteID    int64                 `json:"noteId"`
	ModelName string                `json:"modelName"`
	Tags      []string              `json:"tags"`
	Fields    map[string]FieldValue `json:"fields"`
}

type FieldValue struct {
	Value string `json:"value"`
	Order int    `json:"order"`
}

// FieldMap flattens the ordered field values into a plain name -> content map.
func (n NoteInfo) FieldMap() map[string]string {
	fields := make(map[string]string, len(n.Fields))
	for name, fv := range n.Fields {
		fields[name] = fv.Value
	}
	return fields
}
