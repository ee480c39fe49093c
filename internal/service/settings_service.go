package service

import (
	"ankibridge-be/internal/dto"
	"ankibridge-be/internal/pkg/logger"
	"ankibridge-be/internal/repository/file"
)

type ISettingsService interface {
	Get() *dto.SettingsResponse
	Update(req *dto.UpdateSettingsRequest) (*dto.SettingsResponse, error)
}

// settingsService persists user settings. Provider and connection changes take
// effect on the next start; the wired clients are built once at bootstrap.
type settingsService struct {
	settings *file.SettingsRepository
	logger   logger.ILogger
}

func NewSettingsService(settings *file.SettingsRepository, log logger.ILogger) ISettingsService {
	return &settingsService{
		settings: settings,
		logger:   log,
	}
}

func toResponse(s file.Settings) *dto.SettingsResponse {
	return &dto.SettingsResponse{
		LLMProvider: s.LLMProvider,
		LLMModel:    s.LLMModel,
		AnkiHost:    s.AnkiHost,
		AnkiPort:    s.AnkiPort,
		DefaultTags: s.DefaultTags,
	}
}

func (s *settingsService) Get() *dto.SettingsResponse {
	return toResponse(s.settings.Get())
}

func (s *settingsService) Update(req *dto.UpdateSettingsRequest) (*dto.SettingsResponse, error) {
	updated := file.Settings{
		LLMProvider: req.LLMProvider,
		LLMModel:    req.LLMModel,
		AnkiHost:    req.AnkiHost,
		AnkiPort:    req.AnkiPort,
		DefaultTags: req.DefaultTags,
	}
	if err := s.settings.Update(updated); err != nil {
		return nil, err
	}
	s.logger.Info("settings", "settings updated", map[string]interface{}{
		"llm_provider": req.LLMProvider,
		"llm_model":    req.LLMModel,
	})
	return toResponse(updated), nil
}
