package service

import (
	"context"
	"fmt"

	"ankibridge-be/internal/browse"
	"ankibridge-be/internal/dto"
	"ankibridge-be/internal/pkg/logger"
	"ankibridge-be/internal/repository/memory"
	"ankibridge-be/pkg/ankiconnect"

	"github.com/google/uuid"
)

type IBrowseService interface {
	Open(ctx context.Context, req *dto.OpenBrowseRequest) (*dto.BrowsePageResponse, error)
	Page(ctx context.Context, sessionID string, page int) (*dto.BrowsePageResponse, error)
	Select(sessionID string, req *dto.SelectNotesRequest) (*dto.SelectionResponse, error)
	Selection(sessionID string) (*dto.SelectionResponse, error)
	UpdateNote(ctx context.Context, noteID int64, req *dto.UpdateNoteRequest) error
	DeleteSelected(ctx context.Context, sessionID string, confirm bool) (*dto.DeleteSelectedResponse, error)
}

type browseService struct {
	store           IAnkiStore
	sessions        *memory.BrowseRepository
	defaultPageSize int
	logger          logger.ILogger
}

func NewBrowseService(store IAnkiStore, sessions *memory.BrowseRepository, defaultPageSize int, log logger.ILogger) IBrowseService {
	return &browseService{
		store:           store,
		sessions:        sessions,
		defaultPageSize: defaultPageSize,
		logger:          log,
	}
}

// buildQuery assembles an Anki search query from the session filter. With no
// filter at all the query matches every note.
func buildQuery(deck, search string) string {
	query := ""
	if deck != "" {
		query = fmt.Sprintf("deck:%q", deck)
	}
	if search != "" {
		if query != "" {
			query += " "
		}
		query += search
	}
	if query == "" {
		query = "deck:*"
	}
	return query
}

func (s *browseService) Open(ctx context.Context, req *dto.OpenBrowseRequest) (*dto.BrowsePageResponse, error) {
	pageSize := req.PageSize
	if pageSize <= 0 {
		pageSize = s.defaultPageSize
	}

	session := browse.NewSession(uuid.NewString(), req.Deck, req.Search, pageSize)
	resp, err := s.fetchPage(ctx, session, 1)
	if err != nil {
		return nil, err
	}
	s.sessions.Save(session)
	return resp, nil
}

func (s *browseService) Page(ctx context.Context, sessionID string, page int) (*dto.BrowsePageResponse, error) {
	session, found := s.sessions.Get(sessionID)
	if !found {
		return nil, ErrSessionNotFound
	}
	resp, err := s.fetchPage(ctx, session, page)
	if err != nil {
		return nil, err
	}
	s.sessions.Save(session)
	return resp, nil
}

// fetchPage runs the session query against the store and caches the requested
// page on the session. Out-of-range pages clamp rather than fail: note counts
// shift underneath an open browse session whenever Anki state changes.
func (s *browseService) fetchPage(ctx context.Context, session *browse.Session, page int) (*dto.BrowsePageResponse, error) {
	ids, err := s.store.FindNotes(ctx, buildQuery(session.Deck, session.Search))
	if err != nil {
		return nil, err
	}

	total := len(ids)
	pages := (total + session.PageSize - 1) / session.PageSize
	if pages == 0 {
		pages = 1
	}
	if page < 1 {
		page = 1
	}
	if page > pages {
		page = pages
	}

	start := (page - 1) * session.PageSize
	end := start + session.PageSize
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	var infos []ankiconnect.NoteInfo
	if start < end {
		infos, err = s.store.NotesInfo(ctx, ids[start:end])
		if err != nil {
			return nil, err
		}
	}
	session.CachePage(page, infos)

	notes := make([]dto.BrowseNote, 0, len(infos))
	for _, info := range infos {
		notes = append(notes, dto.BrowseNote{
			NoteID:    info.NoteID,
			ModelName: info.ModelName,
			Tags:      info.Tags,
			Fields:    info.FieldMap(),
			Selected:  session.IsSelected(info.NoteID),
		})
	}

	return &dto.BrowsePageResponse{
		SessionID: session.ID,
		Notes:     notes,
		Pagination: dto.Pagination{
			Page:  page,
			Pages: pages,
			Total: total,
		},
		SelectedCount: len(session.SelectedIDs()),
	}, nil
}

func (s *browseService) Select(sessionID string, req *dto.SelectNotesRequest) (*dto.SelectionResponse, error) {
	session, found := s.sessions.Get(sessionID)
	if !found {
		return nil, ErrSessionNotFound
	}
	for _, id := range req.NoteIDs {
		session.SetSelected(id, *req.Selected)
	}
	s.sessions.Save(session)
	return &dto.SelectionResponse{NoteIDs: session.SelectedIDs()}, nil
}

func (s *browseService) Selection(sessionID string) (*dto.SelectionResponse, error) {
	session, found := s.sessions.Get(sessionID)
	if !found {
		return nil, ErrSessionNotFound
	}
	return &dto.SelectionResponse{NoteIDs: session.SelectedIDs()}, nil
}

func (s *browseService) UpdateNote(ctx context.Context, noteID int64, req *dto.UpdateNoteRequest) error {
	return s.store.UpdateNoteFields(ctx, noteID, req.Fields)
}

// DeleteSelected removes every selected note across all pages, not just the
// visible one. The confirm flag must be set; there is no undo in Anki.
func (s *browseService) DeleteSelected(ctx context.Context, sessionID string, confirm bool) (*dto.DeleteSelectedResponse, error) {
	if !confirm {
		return nil, ErrConfirmRequired
	}

	session, found := s.sessions.Get(sessionID)
	if !found {
		return nil, ErrSessionNotFound
	}

	ids := session.SelectedIDs()
	if len(ids) == 0 {
		return nil, ErrNothingSelected
	}

	if err := s.store.DeleteNotes(ctx, ids); err != nil {
		return nil, err
	}

	session.ClearSelection()
	s.sessions.Save(session)

	s.logger.Info("browse", "notes deleted", map[string]interface{}{
		"session_id": sessionID,
		"count":      len(ids),
	})

	return &dto.DeleteSelectedResponse{Deleted: len(ids)}, nil
}
