package file

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Settings are the user-tunable knobs persisted between runs. Environment
// variables provide the defaults; this file overrides them.
type Settings struct {
	LLMProvider string   `json:"llm_provider"`
	LLMModel    string   `json:"llm_model"`
	AnkiHost    string   `json:"anki_host"`
	AnkiPort    int      `json:"anki_port"`
	DefaultTags []string `json:"default_tags"`
}

// SettingsRepository persists Settings as a single JSON document.
type SettingsRepository struct {
	path string

	mu       sync.RWMutex
	settings Settings
}

func NewSettingsRepository(path string, defaults Settings) (*SettingsRepository, error) {
	r := &SettingsRepository{
		path:     path,
		settings: defaults,
	}
	if err := r.load(); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *SettingsRepository) load() error {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // keep defaults
		}
		return fmt.Errorf("read settings file: %w", err)
	}
	// Loaded values overlay the defaults field by field.
	if err := json.Unmarshal(data, &r.settings); err != nil {
		return fmt.Errorf("parse settings file %s: %w", r.path, err)
	}
	return nil
}

func (r *SettingsRepository) Get() Settings {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s := r.settings
	s.DefaultTags = append([]string(nil), r.settings.DefaultTags...)
	return s
}

func (r *SettingsRepository) Update(s Settings) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.settings = s

	data, err := json.MarshalIndent(r.settings, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(r.path), 0755); err != nil {
		return err
	}
	if err := os.WriteFile(r.path, data, 0644); err != nil {
		return fmt.Errorf("write settings file: %w", err)
	}
	return nil
}
