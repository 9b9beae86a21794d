package storage

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/peterbourgon/diskv/v3"

	"github.com/julianstephens/diario/internal/constants"
)

// DiskvStore keeps the document in a diskv key/value directory.
type DiskvStore struct {
	basePath string
	d        *diskv.Diskv
}

func NewDiskvStore(basePath string) *DiskvStore {
	return &DiskvStore{
		basePath: basePath,
	}
}

func (s *DiskvStore) Init() error {
	if err := os.MkdirAll(s.basePath, 0700); err != nil {
		return fmt.Errorf("failed to create storage directory: %w", err)
	}

	s.d = diskv.New(diskv.Options{
		BasePath: s.basePath,
		// TempDir makes diskv write to a temporary file and rename it into place.
		TempDir:      filepath.Join(s.basePath, ".tmp"),
		Transform:    func(string) []string { return []string{} },
		CacheSizeMax: 1024 * 1024, // 1MB
		FilePerm:     0600,
		PathPerm:     0700,
	})
	return nil
}

func (s *DiskvStore) Load() error {
	if s.d != nil {
		return nil
	}
	return s.Init()
}

func (s *DiskvStore) Close() error {
	s.d = nil
	return nil
}

func (s *DiskvStore) Read() ([]byte, error) {
	if s.d == nil {
		return nil, ErrNotLoaded
	}
	if !s.d.Has(constants.StorageKey) {
		return nil, ErrNotFound
	}
	data, err := s.d.Read(constants.StorageKey)
	if err != nil {
		return nil, fmt.Errorf("failed to read storage: %w", err)
	}
	return data, nil
}

func (s *DiskvStore) Write(data []byte) error {
	if s.d == nil {
		return ErrNotLoaded
	}
	if err := s.d.Write(constants.StorageKey, data); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}
	return nil
}

func (s *DiskvStore) GetConfigPath() string {
	return s.basePath
}
