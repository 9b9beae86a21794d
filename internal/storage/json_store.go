package storage

import (
	"fmt"
	"os"
	"path/filepath"
)

// JSONStore keeps the document in a single JSON file.
type JSONStore struct {
	path   string
	loaded bool
}

func NewJSONStore(configPath string) *JSONStore {
	return &JSONStore{
		path: configPath,
	}
}

func (s *JSONStore) Init() error {
	// Create config directory if it doesn't exist
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	s.loaded = true
	return nil
}

func (s *JSONStore) Load() error {
	if info, err := os.Stat(s.path); err == nil && info.IsDir() {
		return fmt.Errorf("storage path is a directory: %s", s.path)
	}
	return s.Init()
}

func (s *JSONStore) Close() error {
	s.loaded = false
	return nil
}

func (s *JSONStore) Read() ([]byte, error) {
	if !s.loaded {
		return nil, ErrNotLoaded
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to read storage: %w", err)
	}
	return data, nil
}

// Write replaces the file atomically: the data goes to a temporary file in
// the same directory which is then renamed over the old one.
func (s *JSONStore) Write(data []byte) error {
	if !s.loaded {
		return ErrNotLoaded
	}
	return WriteFileAtomic(s.path, data, 0600)
}

func (s *JSONStore) GetConfigPath() string {
	return s.path
}

// WriteFileAtomic writes data to a temporary sibling of path and renames it
// into place.
func WriteFileAtomic(path string, data []byte, perm os.FileMode) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}
	tmpPath := tmp.Name()

	cleanup := func() {
		_ = os.Remove(tmpPath)
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		cleanup()
		return fmt.Errorf("failed to write storage: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		cleanup()
		return fmt.Errorf("failed to sync storage: %w", err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return fmt.Errorf("failed to close storage: %w", err)
	}
	if err := os.Chmod(tmpPath, perm); err != nil {
		cleanup()
		return fmt.Errorf("failed to set storage permissions: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		cleanup()
		return fmt.Errorf("failed to replace storage: %w", err)
	}
	return nil
}
