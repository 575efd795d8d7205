package sessions

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/trackinventory/trackinventory/internal/encoding"
	"github.com/trackinventory/trackinventory/internal/fileutil"
)

// FileStore implements the session store interface with a single record file
// on disk.
type FileStore struct {
	path    string
	encoder encoding.MarshalUnmarshaler
}

var _ Store = (*FileStore)(nil)

// NewFileStore creates a store backed by the file at path, creating the
// parent directory if needed.
func NewFileStore(path string, encoder encoding.MarshalUnmarshaler) (*FileStore, error) {
	if path == "" {
		return nil, fmt.Errorf("internal/sessions: file store path cannot be empty")
	}
	if encoder == nil {
		return nil, fmt.Errorf("internal/sessions: encoder cannot be nil")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("internal/sessions: create state directory: %w", err)
	}
	return &FileStore{path: path, encoder: encoder}, nil
}

// LoadSession reads and decodes the record file.
func (s *FileStore) LoadSession() (*State, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNoSessionFound
	} else if err != nil {
		return nil, fmt.Errorf("internal/sessions: read session file: %w", err)
	}

	var state State
	if err := s.encoder.Unmarshal(data, &state); err != nil {
		return nil, ErrMalformed
	}
	if !state.HasToken() {
		return nil, ErrNoSessionFound
	}
	return &state, nil
}

// SaveSession writes the record file, or deletes it when the state carries no
// token.
func (s *FileStore) SaveSession(state *State) error {
	if !state.HasToken() {
		return s.ClearSession()
	}
	data, err := s.encoder.Marshal(state)
	if err != nil {
		return fmt.Errorf("internal/sessions: marshal session: %w", err)
	}
	return fileutil.WriteFileAtomically(s.path, data, 0o600)
}

// ClearSession deletes the record file. A missing file is not an error.
func (s *FileStore) ClearSession() error {
	err := os.Remove(s.path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}
