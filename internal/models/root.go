package models

// Root is the whole persisted diary document. It is always read and written
// as a single blob.
type Root struct {
	Version  int                `json:"version"`
	Entries  map[string]Entry   `json:"entries"`
	Events   map[string][]Event `json:"events"`
	Settings Settings           `json:"settings"`
}

// NewRoot returns an empty document at the given schema version.
func NewRoot(version int) *Root {
	return &Root{
		Version:  version,
		Entries:  make(map[string]Entry),
		Events:   make(map[string][]Event),
		Settings: DefaultSettings(),
	}
}

// EnsureMaps initializes nil maps so callers can index them safely.
func (r *Root) EnsureMaps() {
	if r.Entries == nil {
		r.Entries = make(map[string]Entry)
	}
	if r.Events == nil {
		r.Events = make(map[string][]Event)
	}
}
