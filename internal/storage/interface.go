package storage

import "errors"

var (
	// ErrNotFound is returned by Read when nothing has been persisted yet
	ErrNotFound = errors.New("no diary data stored")
	// ErrNotLoaded is returned when a provider is used before Init or Load
	ErrNotLoaded = errors.New("storage not loaded")
)

// Provider persists the diary document as a single blob under
// constants.StorageKey. Every Write replaces the whole blob.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Blob
	Read() ([]byte, error)
	Write(data []byte) error

	// Utils
	GetConfigPath() string
}
