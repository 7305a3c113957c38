package classifier

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"kharcha/internal/common"
)

// Store loads and saves trained model artifacts. A missing artifact is
// reported as common.ErrModelNotFound, which callers treat as "run on the
// keyword fallback", never as a fatal condition.
type Store interface {
	Load() (*Model, error)
	Save(m *Model) error
}

// FileStore persists the model artifact as a JSON file on disk.
type FileStore struct {
	path string
}

// NewFileStore creates a store writing to the given file path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the artifact location.
func (s *FileStore) Path() string {
	return s.path
}

// Load reads and validates the artifact. It returns common.ErrModelNotFound
// when no artifact exists and common.ErrModelCorrupt when one exists but
// cannot be decoded or fails validation.
func (s *FileStore) Load() (*Model, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, common.ErrModelNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("reading model artifact: %w", err)
	}

	var m Model
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrModelCorrupt, err)
	}
	if err := m.Prepare(); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrModelCorrupt, err)
	}
	return &m, nil
}

// Save writes the artifact atomically: to a temporary file first, then a
// rename, so a concurrent Load never sees a half-written model.
func (s *FileStore) Save(m *Model) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0750); err != nil {
		return fmt.Errorf("creating model directory: %w", err)
	}

	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding model artifact: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return fmt.Errorf("writing model artifact: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replacing model artifact: %w", err)
	}
	return nil
}
