package file

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// InstructionRepository persists per-model prompt instructions as a flat
// model -> instruction JSON object. The shape is fixed here, at the load
// boundary; readers always get a plain string per model, never a raw blob to
// re-interpret.
type InstructionRepository struct {
	path string

	mu           sync.RWMutex
	instructions map[string]string
}

func NewInstructionRepository(path string) (*InstructionRepository, error) {
	r := &InstructionRepository{
		path:         path,
		instructions: make(map[string]string),
	}
	if err := r.load(); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *InstructionRepository) load() error {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // first run, empty store
		}
		return fmt.Errorf("read instructions file: %w", err)
	}
	if err := json.Unmarshal(data, &r.instructions); err != nil {
		return fmt.Errorf("parse instructions file %s: %w", r.path, err)
	}
	return nil
}

func (r *InstructionRepository) flush() error {
	data, err := json.MarshalIndent(r.instructions, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(r.path), 0755); err != nil {
		return err
	}
	if err := os.WriteFile(r.path, data, 0644); err != nil {
		return fmt.Errorf("write instructions file: %w", err)
	}
	return nil
}

// All returns a copy of every stored instruction.
func (r *InstructionRepository) All() map[string]string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[string]string, len(r.instructions))
	for model, instruction := range r.instructions {
		out[model] = instruction
	}
	return out
}

// Get returns the instruction for one model, empty when none is stored.
func (r *InstructionRepository) Get(model string) string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.instructions[model]
}

func (r *InstructionRepository) Set(model, instruction string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.instructions[model] = instruction
	return r.flush()
}

func (r *InstructionRepository) Remove(model string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.instructions[model]; !ok {
		return nil
	}
	delete(r.instructions, model)
	return r.flush()
}
