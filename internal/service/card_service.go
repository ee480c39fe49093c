package service

import (
	"context"
	"strings"
	"time"

	"ankibridge-be/internal/dto"
	"ankibridge-be/internal/pkg/logger"
	"ankibridge-be/internal/repository/file"
	"ankibridge-be/pkg/ankiconnect"
	"ankibridge-be/pkg/cardgen"
	"ankibridge-be/pkg/events"
)

type ICardService interface {
	Generate(ctx context.Context, req *dto.GenerateCardRequest) (*dto.GenerateCardResponse, error)
	Add(ctx context.Context, req *dto.AddCardRequest) (*dto.AddCardResponse, error)
}

type cardService struct {
	store        IAnkiStore
	generator    IFieldGenerator
	instructions *file.InstructionRepository
	settings     *file.SettingsRepository
	publisher    IPublisherService
	logger       logger.ILogger
}

func NewCardService(
	store IAnkiStore,
	generator IFieldGenerator,
	instructions *file.InstructionRepository,
	settings *file.SettingsRepository,
	publisher IPublisherService,
	log logger.ILogger,
) ICardService {
	return &cardService{
		store:        store,
		generator:    generator,
		instructions: instructions,
		settings:     settings,
		publisher:    publisher,
		logger:       log,
	}
}

// cardTags builds the tag list for a generated note: language, provenance
// markers, then the user's configured default tags.
func cardTags(language string, defaults []string, extra ...string) []string {
	tags := []string{strings.ToLower(language), "llm-generated"}
	tags = append(tags, extra...)
	tags = append(tags, defaults...)
	return tags
}

// Generate produces field content for one word and reports whether the store
// would accept the resulting note. Nothing is written to the store here; the
// user reviews the draft and confirms via Add.
func (s *cardService) Generate(ctx context.Context, req *dto.GenerateCardRequest) (*dto.GenerateCardResponse, error) {
	fieldNames, err := s.store.ModelFieldNames(ctx, req.ModelName)
	if err != nil {
		return nil, err
	}

	fields, err := s.generator.GenerateFields(ctx, cardgen.Request{
		Word:         req.Word,
		ModelName:    req.ModelName,
		FieldNames:   fieldNames,
		Language:     req.Language,
		Instructions: s.instructions.Get(req.ModelName),
		Context:      req.Context,
	})
	if err != nil {
		return nil, err
	}

	note := ankiconnect.Note{
		DeckName:  req.DeckName,
		ModelName: req.ModelName,
		Fields:    fields,
		Tags:      cardTags(req.Language, s.settings.Get().DefaultTags, "web-ui"),
	}

	verdicts, err := s.store.CanAddNotes(ctx, []ankiconnect.Note{note})
	if err != nil {
		return nil, err
	}

	return &dto.GenerateCardResponse{
		Fields: fields,
		CanAdd: len(verdicts) > 0 && verdicts[0],
		Note:   note,
	}, nil
}

// Add pushes one reviewed note into the store.
func (s *cardService) Add(ctx context.Context, req *dto.AddCardRequest) (*dto.AddCardResponse, error) {
	note := req.Note
	if req.AllowDuplicate {
		note.Options = &ankiconnect.NoteOptions{AllowDuplicate: true}
	}

	ids, err := s.store.AddNotes(ctx, []ankiconnect.Note{note})
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 || ids[0] == nil {
		return nil, ErrNoteRejected
	}

	if err := s.publisher.Publish(ctx, events.BaseEvent{
		Type: events.TypeCardAdded,
		Data: map[string]interface{}{
			"note_id": *ids[0],
			"deck":    note.DeckName,
			"model":   note.ModelName,
		},
		OccurredAt: time.Now(),
	}); err != nil {
		s.logger.Warn("card", "failed to publish card added event", map[string]interface{}{"error": err.Error()})
	}

	return &dto.AddCardResponse{NoteID: *ids[0]}, nil
}
