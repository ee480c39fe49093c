package service

import (
	"context"
	"errors"
	"sort"

	"ankibridge-be/internal/dto"
	"ankibridge-be/internal/pkg/logger"
	"ankibridge-be/pkg/ankiconnect"
)

type IAnkiService interface {
	TestConnection(ctx context.Context) *dto.ConnectionResponse
	Decks(ctx context.Context) (*dto.DeckListResponse, error)
	CreateDeck(ctx context.Context, req *dto.CreateDeckRequest) (*dto.CreateDeckResponse, error)
	Models(ctx context.Context) (*dto.ModelListResponse, error)
	ModelFields(ctx context.Context, model string) (*dto.ModelFieldsResponse, error)
}

type ankiService struct {
	store  IAnkiStore
	logger logger.ILogger
}

func NewAnkiService(store IAnkiStore, log logger.ILogger) IAnkiService {
	return &ankiService{
		store:  store,
		logger: log,
	}
}

// TestConnection probes the store and reports the outcome as data rather than
// as an error: an unreachable Anki is an expected state the settings page has
// to render, not a failed request.
func (s *ankiService) TestConnection(ctx context.Context) *dto.ConnectionResponse {
	version, err := s.store.Version(ctx)
	if err != nil {
		s.logger.Warn("anki", "connection test failed", map[string]interface{}{"error": err.Error()})
		message := "Could not connect to Anki. Is Anki running with the AnkiConnect add-on?"
		if !errors.Is(err, ankiconnect.ErrUnavailable) {
			message = err.Error()
		}
		return &dto.ConnectionResponse{Status: "disconnected", Message: message}
	}
	return &dto.ConnectionResponse{
		Status:  "connected",
		Message: "Connected to AnkiConnect",
		Version: version,
	}
}

func (s *ankiService) Decks(ctx context.Context) (*dto.DeckListResponse, error) {
	decks, err := s.store.DeckNames(ctx)
	if err != nil {
		return nil, err
	}
	sort.Strings(decks)
	return &dto.DeckListResponse{Decks: decks}, nil
}

func (s *ankiService) CreateDeck(ctx context.Context, req *dto.CreateDeckRequest) (*dto.CreateDeckResponse, error) {
	id, err := s.store.CreateDeck(ctx, req.Name)
	if err != nil {
		return nil, err
	}
	s.logger.Info("anki", "deck created", map[string]interface{}{"deck": req.Name, "id": id})
	return &dto.CreateDeckResponse{Id: id}, nil
}

func (s *ankiService) Models(ctx context.Context) (*dto.ModelListResponse, error) {
	models, err := s.store.ModelNames(ctx)
	if err != nil {
		return nil, err
	}
	sort.Strings(models)
	return &dto.ModelListResponse{Models: models}, nil
}

func (s *ankiService) ModelFields(ctx context.Context, model string) (*dto.ModelFieldsResponse, error) {
	fields, err := s.store.ModelFieldNames(ctx, model)
	if err != nil {
		return nil, err
	}
	return &dto.ModelFieldsResponse{Fields: fields}, nil
}
