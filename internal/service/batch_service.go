package service

import (
	"context"
	"time"

	"ankibridge-be/internal/dto"
	"ankibridge-be/internal/pkg/logger"
	"ankibridge-be/internal/repository/file"
	"ankibridge-be/internal/repository/memory"
	"ankibridge-be/internal/staging"
	"ankibridge-be/pkg/ankiconnect"
	"ankibridge-be/pkg/cardgen"
	"ankibridge-be/pkg/events"

	"github.com/google/uuid"
)

type IBatchService interface {
	Stage(ctx context.Context, req *dto.StageBatchRequest) (*dto.BatchSessionResponse, error)
	Session(sessionID string) (*dto.BatchSessionResponse, error)
	SetChecked(sessionID string, index int, checked bool) (*dto.BatchSessionResponse, error)
	SelectAll(sessionID string, checked bool) (*dto.BatchSessionResponse, error)
	ForceInclude(sessionID string, index int) (*dto.ForceIncludeResponse, error)
	EditFields(sessionID string, index int, req *dto.EditFieldsRequest) (*dto.BatchSessionResponse, error)
	Submit(ctx context.Context, sessionID string) (*dto.SubmitBatchResponse, error)
}

type batchService struct {
	store        IAnkiStore
	generator    IFieldGenerator
	sessions     *memory.StagingRepository
	instructions *file.InstructionRepository
	settings     *file.SettingsRepository
	publisher    IPublisherService
	logger       logger.ILogger
}

func NewBatchService(
	store IAnkiStore,
	generator IFieldGenerator,
	sessions *memory.StagingRepository,
	instructions *file.InstructionRepository,
	settings *file.SettingsRepository,
	publisher IPublisherService,
	log logger.ILogger,
) IBatchService {
	return &batchService{
		store:        store,
		generator:    generator,
		sessions:     sessions,
		instructions: instructions,
		settings:     settings,
		publisher:    publisher,
		logger:       log,
	}
}

// Stage generates a candidate card per word and parks the batch in a staging
// session for review. The store is consulted read-only (duplicate checks);
// nothing is written until Submit.
func (s *batchService) Stage(ctx context.Context, req *dto.StageBatchRequest) (*dto.BatchSessionResponse, error) {
	words := make([]string, 0, len(req.Words))
	for _, word := range req.Words {
		words = append(words, staging.SplitWords(word)...)
	}
	if len(words) == 0 {
		return nil, ErrNoWords
	}

	fieldNames, err := s.store.ModelFieldNames(ctx, req.ModelName)
	if err != nil {
		return nil, err
	}
	instruction := s.instructions.Get(req.ModelName)

	engine := staging.NewEngine(staging.Context{
		Deck:     req.DeckName,
		Model:    req.ModelName,
		Language: req.Language,
		Tags:     cardTags(req.Language, s.settings.Get().DefaultTags, "batch-import"),
	})

	generate := func(ctx context.Context, word string) (map[string]string, error) {
		return s.generator.GenerateFields(ctx, cardgen.Request{
			Word:         word,
			ModelName:    req.ModelName,
			FieldNames:   fieldNames,
			Language:     req.Language,
			Instructions: instruction,
		})
	}
	isDuplicate := func(ctx context.Context, note *ankiconnect.Note) (bool, error) {
		verdicts, err := s.store.CanAddNotes(ctx, []ankiconnect.Note{*note})
		if err != nil {
			return false, err
		}
		return len(verdicts) > 0 && !verdicts[0], nil
	}

	items := engine.Stage(ctx, words, generate, isDuplicate)

	sessionID := uuid.NewString()
	s.sessions.Save(sessionID, engine)

	s.logger.Info("batch", "batch staged", map[string]interface{}{
		"session_id": sessionID,
		"words":      len(words),
	})

	return &dto.BatchSessionResponse{SessionID: sessionID, Items: items}, nil
}

func (s *batchService) engine(sessionID string) (*staging.Engine, error) {
	engine, found := s.sessions.Get(sessionID)
	if !found {
		return nil, ErrSessionNotFound
	}
	return engine, nil
}

func (s *batchService) Session(sessionID string) (*dto.BatchSessionResponse, error) {
	engine, err := s.engine(sessionID)
	if err != nil {
		return nil, err
	}
	return &dto.BatchSessionResponse{SessionID: sessionID, Items: engine.Items()}, nil
}

func (s *batchService) SetChecked(sessionID string, index int, checked bool) (*dto.BatchSessionResponse, error) {
	engine, err := s.engine(sessionID)
	if err != nil {
		return nil, err
	}
	if err := engine.SetChecked(index, checked); err != nil {
		return nil, err
	}
	s.sessions.Save(sessionID, engine)
	return &dto.BatchSessionResponse{SessionID: sessionID, Items: engine.Items()}, nil
}

func (s *batchService) SelectAll(sessionID string, checked bool) (*dto.BatchSessionResponse, error) {
	engine, err := s.engine(sessionID)
	if err != nil {
		return nil, err
	}
	engine.SelectAll(checked)
	s.sessions.Save(sessionID, engine)
	return &dto.BatchSessionResponse{SessionID: sessionID, Items: engine.Items()}, nil
}

func (s *batchService) ForceInclude(sessionID string, index int) (*dto.ForceIncludeResponse, error) {
	engine, err := s.engine(sessionID)
	if err != nil {
		return nil, err
	}
	applied, err := engine.ForceInclude(index)
	if err != nil {
		return nil, err
	}
	s.sessions.Save(sessionID, engine)
	return &dto.ForceIncludeResponse{Applied: applied, Items: engine.Items()}, nil
}

func (s *batchService) EditFields(sessionID string, index int, req *dto.EditFieldsRequest) (*dto.BatchSessionResponse, error) {
	engine, err := s.engine(sessionID)
	if err != nil {
		return nil, err
	}
	if err := engine.EditFields(index, req.Fields, req.Replace); err != nil {
		return nil, err
	}
	s.sessions.Save(sessionID, engine)
	return &dto.BatchSessionResponse{SessionID: sessionID, Items: engine.Items()}, nil
}

// Submit sends every checked item to the store in one bulk call. If the store
// is unreachable the session is left untouched for retry. Per-item rejections
// keep their items staged with an error; a fully successful round discards the
// session.
func (s *batchService) Submit(ctx context.Context, sessionID string) (*dto.SubmitBatchResponse, error) {
	engine, err := s.engine(sessionID)
	if err != nil {
		return nil, err
	}

	subs, err := engine.BuildSubmission()
	if err != nil {
		return nil, err
	}

	notes := make([]ankiconnect.Note, len(subs))
	for i, sub := range subs {
		notes[i] = *sub.Note
	}

	ids, err := s.store.AddNotes(ctx, notes)
	if err != nil {
		// Bulk call failed outright; no item state to reconcile.
		return nil, err
	}

	results := make([]staging.ItemResult, len(subs))
	for i := range subs {
		if i < len(ids) && ids[i] != nil {
			results[i] = staging.ItemResult{Success: true}
		} else {
			results[i] = staging.ItemResult{Success: false, Error: "rejected by Anki (duplicate or invalid note)"}
		}
	}

	summary := engine.ApplyResults(subs, results)
	completed := summary.Failed == 0
	if completed {
		s.sessions.Delete(sessionID)
	} else {
		s.sessions.Save(sessionID, engine)
	}

	if err := s.publisher.Publish(ctx, events.BaseEvent{
		Type: events.TypeBatchSubmitted,
		Data: map[string]interface{}{
			"session_id": sessionID,
			"total":      summary.Total,
			"successful": summary.Successful,
			"failed":     summary.Failed,
		},
		OccurredAt: time.Now(),
	}); err != nil {
		s.logger.Warn("batch", "failed to publish batch submitted event", map[string]interface{}{"error": err.Error()})
	}

	return &dto.SubmitBatchResponse{
		Summary:   summary,
		Completed: completed,
		Items:     engine.Items(),
	}, nil
}
