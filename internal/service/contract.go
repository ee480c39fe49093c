package service

import (
	"context"
	"errors"

	"ankibridge-be/pkg/ankiconnect"
	"ankibridge-be/pkg/cardgen"
)

// Service-level sentinels controllers map to HTTP statuses.
var (
	ErrSessionNotFound = errors.New("session not found or expired")
	ErrNoWords         = errors.New("no words to stage")
	ErrNoteRejected    = errors.New("note was rejected by the store (duplicate?)")
	ErrConfirmRequired = errors.New("deletion requires explicit confirmation")
	ErrNothingSelected = errors.New("no notes selected")
)

// IAnkiStore is the slice of the AnkiConnect client the services depend on.
type IAnkiStore interface {
	Version(ctx context.Context) (int, error)
	DeckNames(ctx context.Context) ([]string, error)
	CreateDeck(ctx context.Context, deck string) (int64, error)
	ModelNames(ctx context.Context) ([]string, error)
	ModelFieldNames(ctx context.Context, model string) ([]string, error)
	CanAddNotes(ctx context.Context, notes []ankiconnect.Note) ([]bool, error)
	AddNotes(ctx context.Context, notes []ankiconnect.Note) ([]*int64, error)
	FindNotes(ctx context.Context, query string) ([]int64, error)
	NotesInfo(ctx context.Context, ids []int64) ([]ankiconnect.NoteInfo, error)
	UpdateNoteFields(ctx context.Context, id int64, fields map[string]string) error
	DeleteNotes(ctx context.Context, ids []int64) error
}

// IFieldGenerator produces field content for one word.
type IFieldGenerator interface {
	GenerateFields(ctx context.Context, req cardgen.Request) (map[string]string, error)
}
