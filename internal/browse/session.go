package browse

import (
	"sort"

	"ankibridge-be/pkg/ankiconnect"
)

// Session holds the note-management view state for one browser session: the
// active filter, the last fetched page and the cross-page selection set. The
// set, not the page slice, is the authoritative selection record, so
// selections survive pagination.
type Session struct {
	ID       string
	Deck     string
	Search   string
	Page     int
	PageSize int

	pageNotes []ankiconnect.NoteInfo
	selected  map[int64]struct{}
}

func NewSession(id string, deck, search string, pageSize int) *Session {
	return &Session{
		ID:       id,
		Deck:     deck,
		Search:   search,
		Page:     1,
		PageSize: pageSize,
		selected: make(map[int64]struct{}),
	}
}

// CachePage records the freshly fetched page.
func (s *Session) CachePage(page int, notes []ankiconnect.NoteInfo) {
	s.Page = page
	s.pageNotes = notes
}

func (s *Session) CachedPage() []ankiconnect.NoteInfo {
	return s.pageNotes
}

// SetSelected marks or unmarks one note id; the id does not have to belong to
// the currently cached page.
func (s *Session) SetSelected(noteID int64, selected bool) {
	if selected {
		s.selected[noteID] = struct{}{}
	} else {
		delete(s.selected, noteID)
	}
}

func (s *Session) IsSelected(noteID int64) bool {
	_, ok := s.selected[noteID]
	return ok
}

// SelectedIDs returns the full selection across all pages, sorted for stable
// output.
func (s *Session) SelectedIDs() []int64 {
	ids := make([]int64, 0, len(s.selected))
	for id := range s.selected {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func (s *Session) ClearSelection() {
	s.selected = make(map[int64]struct{})
}
