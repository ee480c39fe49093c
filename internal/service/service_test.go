package service

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"ankibridge-be/internal/repository/file"
	"ankibridge-be/pkg/ankiconnect"
	"ankibridge-be/pkg/cardgen"
	"ankibridge-be/pkg/events"

	"github.com/stretchr/testify/assert"
)

// fakeStore is an in-memory IAnkiStore. Duplicate and rejection behavior is
// keyed on the candidate note's first word-ish field value.
type fakeStore struct {
	fieldNames []string
	duplicates map[string]bool
	rejectAdd  map[string]bool

	err error // when set, every call fails with it

	added   []ankiconnect.Note
	deleted []int64
	updated map[int64]map[string]string

	findIDs []int64
	infos   map[int64]ankiconnect.NoteInfo
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		fieldNames: []string{"Front", "Back"},
		duplicates: map[string]bool{},
		rejectAdd:  map[string]bool{},
		updated:    map[int64]map[string]string{},
		infos:      map[int64]ankiconnect.NoteInfo{},
	}
}

func noteKey(note ankiconnect.Note) string {
	for _, name := range []string{"Word", "Front"} {
		if v, ok := note.Fields[name]; ok {
			return v
		}
	}
	return ""
}

func (s *fakeStore) Version(ctx context.Context) (int, error) {
	if s.err != nil {
		return 0, s.err
	}
	return 6, nil
}

func (s *fakeStore) DeckNames(ctx context.Context) ([]string, error) {
	if s.err != nil {
		return nil, s.err
	}
	return []string{"Vocab", "Default"}, nil
}

func (s *fakeStore) CreateDeck(ctx context.Context, deck string) (int64, error) {
	if s.err != nil {
		return 0, s.err
	}
	return 1, nil
}

func (s *fakeStore) ModelNames(ctx context.Context) ([]string, error) {
	if s.err != nil {
		return nil, s.err
	}
	return []string{"Cloze", "Basic"}, nil
}

func (s *fakeStore) ModelFieldNames(ctx context.Context, model string) ([]string, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.fieldNames, nil
}

func (s *fakeStore) CanAddNotes(ctx context.Context, notes []ankiconnect.Note) ([]bool, error) {
	if s.err != nil {
		return nil, s.err
	}
	verdicts := make([]bool, len(notes))
	for i, note := range notes {
		verdicts[i] = !s.duplicates[noteKey(note)]
	}
	return verdicts, nil
}

func (s *fakeStore) AddNotes(ctx context.Context, notes []ankiconnect.Note) ([]*int64, error) {
	if s.err != nil {
		return nil, s.err
	}
	ids := make([]*int64, len(notes))
	for i, note := range notes {
		if s.rejectAdd[noteKey(note)] {
			continue
		}
		s.added = append(s.added, note)
		id := int64(1000 + len(s.added))
		ids[i] = &id
	}
	return ids, nil
}

func (s *fakeStore) FindNotes(ctx context.Context, query string) ([]int64, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.findIDs, nil
}

func (s *fakeStore) NotesInfo(ctx context.Context, ids []int64) ([]ankiconnect.NoteInfo, error) {
	if s.err != nil {
		return nil, s.err
	}
	infos := make([]ankiconnect.NoteInfo, 0, len(ids))
	for _, id := range ids {
		if info, ok := s.infos[id]; ok {
			infos = append(infos, info)
		}
	}
	return infos, nil
}

func (s *fakeStore) UpdateNoteFields(ctx context.Context, id int64, fields map[string]string) error {
	if s.err != nil {
		return s.err
	}
	s.updated[id] = fields
	return nil
}

func (s *fakeStore) DeleteNotes(ctx context.Context, ids []int64) error {
	if s.err != nil {
		return s.err
	}
	s.deleted = append(s.deleted, ids...)
	return nil
}

// fakeGenerator produces deterministic fields; words in failWords error out.
type fakeGenerator struct {
	failWords map[string]bool
	calls     []string
}

func (g *fakeGenerator) GenerateFields(ctx context.Context, req cardgen.Request) (map[string]string, error) {
	g.calls = append(g.calls, req.Word)
	if g.failWords[req.Word] {
		return nil, fmt.Errorf("generation failed for %s", req.Word)
	}
	return map[string]string{
		"Front": req.Word,
		"Back":  "meaning of " + req.Word,
	}, nil
}

// recordingGenerator reports the per-model instructions it was handed.
type recordingGenerator struct {
	onCall func(instructions string)
}

func (g *recordingGenerator) GenerateFields(ctx context.Context, req cardgen.Request) (map[string]string, error) {
	if g.onCall != nil {
		g.onCall(req.Instructions)
	}
	return map[string]string{"Front": req.Word, "Back": "x"}, nil
}

// fakePublisher records published events.
type fakePublisher struct {
	published []events.Event
}

func (p *fakePublisher) Publish(ctx context.Context, event events.Event) error {
	p.published = append(p.published, event)
	return nil
}

// nopLogger satisfies logger.ILogger without output noise in tests.
type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }

func newTestFileRepos(t *testing.T) (*file.InstructionRepository, *file.SettingsRepository) {
	t.Helper()
	dir := t.TempDir()

	instructions, err := file.NewInstructionRepository(filepath.Join(dir, "model_instructions.json"))
	assert.NoError(t, err)

	settings, err := file.NewSettingsRepository(filepath.Join(dir, "anki_config.json"), file.Settings{
		LLMProvider: "gemini",
		LLMModel:    "gemini-2.5-flash-lite",
		AnkiHost:    "localhost",
		AnkiPort:    8765,
		DefaultTags: []string{"auto"},
	})
	assert.NoError(t, err)

	return instructions, settings
}
