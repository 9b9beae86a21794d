package validation

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/julianstephens/diario/internal/constants"
	"github.com/julianstephens/diario/internal/datekey"
	"github.com/julianstephens/diario/internal/models"
)

// ConflictType represents the type of document problem found
type ConflictType string

const (
	ConflictMalformedKey    ConflictType = "malformed_key"
	ConflictMissingTitle    ConflictType = "missing_event_title"
	ConflictUnknownTheme    ConflictType = "unknown_theme"
	ConflictEmptyLockedPage ConflictType = "empty_locked_entry"
)

// Conflict is a single problem found in a diary document
type Conflict struct {
	Type    ConflictType
	Key     string
	Message string
}

// ValidationResult collects the conflicts found by ValidateDocument
type ValidationResult struct {
	Conflicts []Conflict
}

// HasConflicts reports whether any conflict was found
func (r ValidationResult) HasConflicts() bool {
	return len(r.Conflicts) > 0
}

// Error describes missing or invalid input fields
type Error struct {
	Fields map[string]string
}

func (e *Error) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, fmt.Sprintf("%s: %s", name, e.Fields[name]))
	}
	return "invalid input: " + strings.Join(parts, ", ")
}

func (e *Error) add(field, msg string) {
	if e.Fields == nil {
		e.Fields = make(map[string]string)
	}
	e.Fields[field] = msg
}

// ValidateEvent checks the fields required to schedule an event. date may be a
// day key or an ISO date. The returned error is an *Error or nil.
func ValidateEvent(date, title, eventTime string) error {
	verr := &Error{}

	if strings.TrimSpace(date) == "" {
		verr.add("date", "required")
	} else if _, err := datekey.Normalize(date); err != nil {
		verr.add("date", "invalid date, use YYYY-MM-DD")
	}

	if strings.TrimSpace(title) == "" {
		verr.add("title", "required")
	}

	// Time is free-form; only reject an obviously broken HH:MM.
	if t := strings.TrimSpace(eventTime); t != "" && strings.Contains(t, ":") && len(t) == 5 {
		if _, err := time.Parse(constants.TimeFormat, t); err != nil {
			verr.add("time", "invalid time, use HH:MM")
		}
	}

	if len(verr.Fields) > 0 {
		return verr
	}
	return nil
}

// ValidateDocument reports problems in a loaded document. None of them
// prevent the document from being used.
func ValidateDocument(root *models.Root) ValidationResult {
	var result ValidationResult

	for _, key := range sortedKeys(root.Entries) {
		if _, _, _, err := datekey.Decode(key); err != nil {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:    ConflictMalformedKey,
				Key:     key,
				Message: fmt.Sprintf("entry key %q is not a valid day", key),
			})
		}
		entry := root.Entries[key]
		if entry.Locked && entry.Title == "" && entry.Content == "" {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:    ConflictEmptyLockedPage,
				Key:     key,
				Message: fmt.Sprintf("entry %s is locked but empty", key),
			})
		}
	}

	for _, key := range sortedKeys(root.Events) {
		if _, _, _, err := datekey.Decode(key); err != nil {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:    ConflictMalformedKey,
				Key:     key,
				Message: fmt.Sprintf("event key %q is not a valid day", key),
			})
		}
		for i, ev := range root.Events[key] {
			if strings.TrimSpace(ev.Title) == "" {
				result.Conflicts = append(result.Conflicts, Conflict{
					Type:    ConflictMissingTitle,
					Key:     key,
					Message: fmt.Sprintf("event #%d on %s has no title", i+1, key),
				})
			}
		}
	}

	if theme := root.Settings.Theme; theme != "" && !theme.Valid() {
		result.Conflicts = append(result.Conflicts, Conflict{
			Type:    ConflictUnknownTheme,
			Message: fmt.Sprintf("unknown theme %q", theme),
		})
	}

	return result
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return datekey.Less(keys[i], keys[j]) })
	return keys
}
