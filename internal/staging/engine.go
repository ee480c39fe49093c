package staging

import (
	"context"
	"errors"
	"strings"

	"ankibridge-be/pkg/ankiconnect"
)

// Programming-contract violations surfaced immediately to the caller.
var (
	ErrIndexOutOfRange = errors.New("staged item index out of range")
	ErrEmptySelection  = errors.New("no staged items selected for submission")
)

type Status string

const (
	StatusReady     Status = "ready"
	StatusDuplicate Status = "duplicate"
	StatusError     Status = "error"
)

// Item is one pending word's generation outcome awaiting user approval.
// Its index in the engine is its only identity for the session.
type Item struct {
	Word           string            `json:"word"`
	Status         Status            `json:"status"`
	Fields         map[string]string `json:"fields"`
	Note           *ankiconnect.Note `json:"note,omitempty"`
	Checked        bool              `json:"checked"`
	Error          string            `json:"error,omitempty"`
	ForceDuplicate bool              `json:"force_duplicate"`
}

// Context is the deck/model/language context candidate notes are built from.
type Context struct {
	Deck     string
	Model    string
	Language string
	Tags     []string
}

// GenerateFunc produces field content for one word. Partial fields may be
// returned alongside an error; they are kept for inspection.
type GenerateFunc func(ctx context.Context, word string) (map[string]string, error)

// DuplicateFunc reports whether the store already holds a match for the
// candidate note.
type DuplicateFunc func(ctx context.Context, note *ankiconnect.Note) (bool, error)

// Engine owns the staged item list for one batch session. All mutation goes
// through its operations; rendering code only ever reads Items().
type Engine struct {
	noteCtx Context
	items   []Item
}

func NewEngine(noteCtx Context) *Engine {
	return &Engine{noteCtx: noteCtx}
}

// SplitWords turns raw textarea input into the trimmed, non-blank word list
// staging expects.
func SplitWords(text string) []string {
	var words []string
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			words = append(words, line)
		}
	}
	return words
}

// Stage populates the engine from a word list: one generator call per word,
// issued sequentially in input order. One word's failure never aborts its
// siblings, and nothing is written to the store. The resulting item list has
// the same length and order as words.
func (e *Engine) Stage(ctx context.Context, words []string, generate GenerateFunc, isDuplicate DuplicateFunc) []Item {
	e.items = make([]Item, 0, len(words))

	for _, word := range words {
		item := Item{Word: word}

		fields, err := generate(ctx, word)
		if err != nil {
			item.Status = StatusError
			item.Error = err.Error()
			item.Fields = fields // partial output kept for inspection
			e.items = append(e.items, item)
			continue
		}

		item.Fields = fields
		item.Note = e.buildNote(fields, false)

		dup, err := isDuplicate(ctx, item.Note)
		switch {
		case err != nil:
			item.Status = StatusError
			item.Error = err.Error()
			item.Note = nil
		case dup:
			// Note stays built so a later force-add needs no regeneration.
			item.Status = StatusDuplicate
		default:
			item.Status = StatusReady
			item.Checked = true
		}

		e.items = append(e.items, item)
	}

	return e.Items()
}

func (e *Engine) buildNote(fields map[string]string, allowDuplicate bool) *ankiconnect.Note {
	note := &ankiconnect.Note{
		DeckName:  e.noteCtx.Deck,
		ModelName: e.noteCtx.Model,
		Fields:    fields,
		Tags:      e.noteCtx.Tags,
	}
	if allowDuplicate {
		note.Options = &ankiconnect.NoteOptions{AllowDuplicate: true}
	}
	return note
}

// Items returns a copy of the staged list for rendering.
func (e *Engine) Items() []Item {
	items := make([]Item, len(e.items))
	copy(items, e.items)
	return items
}

func (e *Engine) Len() int {
	return len(e.items)
}

func (e *Engine) checkIndex(index int) error {
	if index < 0 || index >= len(e.items) {
		return ErrIndexOutOfRange
	}
	return nil
}

// SetChecked toggles inclusion of one item. Status is untouched: unchecking a
// ready item keeps it ready.
func (e *Engine) SetChecked(index int, value bool) error {
	if err := e.checkIndex(index); err != nil {
		return err
	}
	e.items[index].Checked = value
	return nil
}

// SelectAll sets checked on every item without altering status.
func (e *Engine) SelectAll(value bool) {
	for i := range e.items {
		e.items[i].Checked = value
	}
}

// ForceInclude overrides a duplicate or error classification. It returns
// false without mutating anything when the item has no fields at all: a hard
// generation failure has no content to submit.
func (e *Engine) ForceInclude(index int) (bool, error) {
	if err := e.checkIndex(index); err != nil {
		return false, err
	}

	item := &e.items[index]
	if len(item.Fields) == 0 {
		return false, nil
	}

	if item.Note == nil {
		item.Note = e.buildNote(item.Fields, true)
	} else {
		item.Note.Options = &ankiconnect.NoteOptions{AllowDuplicate: true}
	}
	item.Status = StatusReady
	item.Checked = true
	item.ForceDuplicate = true
	item.Error = ""
	return true, nil
}

// EditFields replaces or merges the item's fields, rebuilds the note and
// transitions the item to ready/checked. The duplicate bypass flag survives a
// prior ForceInclude.
func (e *Engine) EditFields(index int, values map[string]string, replace bool) error {
	if err := e.checkIndex(index); err != nil {
		return err
	}

	item := &e.items[index]
	if replace || item.Fields == nil {
		item.Fields = make(map[string]string, len(values))
	}
	for name, value := range values {
		item.Fields[name] = value
	}

	item.Note = e.buildNote(item.Fields, item.ForceDuplicate)
	item.Status = StatusReady
	item.Checked = true
	item.Error = ""
	return nil
}

// Submission is one approved item bound for the bulk store call.
type Submission struct {
	Word           string            `json:"word"`
	Note           *ankiconnect.Note `json:"note"`
	ForceDuplicate bool              `json:"force_duplicate"`

	index int
}

// BuildSubmission filters the staged list down to checked items with a built
// note, preserving original order. This is the sole payload sent to the store.
func (e *Engine) BuildSubmission() ([]Submission, error) {
	var subs []Submission
	for i, item := range e.items {
		if item.Checked && item.Note != nil {
			subs = append(subs, Submission{
				Word:           item.Word,
				Note:           item.Note,
				ForceDuplicate: item.ForceDuplicate,
				index:          i,
			})
		}
	}
	if len(subs) == 0 {
		return nil, ErrEmptySelection
	}
	return subs, nil
}

// ItemResult is the store's verdict on one submitted item, aligned by
// position with the submission list.
type ItemResult struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// Summary aggregates a submission round.
type Summary struct {
	Total      int `json:"total"`
	Successful int `json:"successful"`
	Failed     int `json:"failed"`
}

// ApplyResults merges per-item outcomes back into the staged list.
// Successfully submitted items are terminal and leave the working set; failed
// items stay staged with their error set and their checked state preserved so
// the user can retry without re-entering data.
func (e *Engine) ApplyResults(subs []Submission, results []ItemResult) Summary {
	summary := Summary{Total: len(subs)}

	succeeded := make(map[int]bool, len(subs))
	for i, sub := range subs {
		if i >= len(results) {
			break
		}
		if results[i].Success {
			summary.Successful++
			succeeded[sub.index] = true
		} else {
			summary.Failed++
			e.items[sub.index].Error = results[i].Error
		}
	}

	remaining := e.items[:0]
	for i := range e.items {
		if !succeeded[i] {
			remaining = append(remaining, e.items[i])
		}
	}
	e.items = remaining

	return summary
}
