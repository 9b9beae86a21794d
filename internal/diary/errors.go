package diary

import "errors"

var (
	// ErrValidation is returned when input is missing or malformed. The
	// wrapped *validation.Error names the offending fields.
	ErrValidation = errors.New("validation failed")
	// ErrCorrupt is returned by Load when the persisted document cannot be used
	ErrCorrupt = errors.New("stored diary is corrupt")
	// ErrInvalidBackup is returned by ReplaceAll when the replacement document
	// cannot be parsed
	ErrInvalidBackup = errors.New("invalid backup file")
	// ErrNotLoaded is returned by every operation before a successful Load
	ErrNotLoaded = errors.New("diary not loaded")
)

// SaveResult reports whether SaveEntry changed the entry.
type SaveResult int

const (
	SaveOK SaveResult = iota
	SaveLocked
	// SaveFailed accompanies every error returned by SaveEntry
	SaveFailed
)

func (r SaveResult) OK() bool {
	return r == SaveOK
}

func (r SaveResult) String() string {
	switch r {
	case SaveOK:
		return "ok"
	case SaveLocked:
		return "locked"
	case SaveFailed:
		return "failed"
	default:
		return "unknown"
	}
}
