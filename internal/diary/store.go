// Package diary holds the in-memory diary document and keeps it in sync with
// a storage provider. Every mutation is written back as one whole blob.
package diary

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/diario/internal/clock"
	"github.com/julianstephens/diario/internal/constants"
	"github.com/julianstephens/diario/internal/datekey"
	"github.com/julianstephens/diario/internal/logger"
	"github.com/julianstephens/diario/internal/migration"
	"github.com/julianstephens/diario/internal/models"
	"github.com/julianstephens/diario/internal/storage"
	"github.com/julianstephens/diario/internal/validation"
)

type Store struct {
	mu       sync.Mutex
	provider storage.Provider
	clock    clock.Clock
	runner   *migration.Runner
	root     *models.Root

	listeners []func()
}

func New(provider storage.Provider, clk clock.Clock) *Store {
	if clk == nil {
		clk = clock.New()
	}
	return &Store{
		provider: provider,
		clock:    clk,
		runner:   migration.Default(),
	}
}

func (s *Store) Provider() storage.Provider {
	return s.provider
}

func (s *Store) Clock() clock.Clock {
	return s.clock
}

// Load reads the persisted document. A missing document yields an empty
// diary and nothing is written until the first mutation.
func (s *Store) Load() error {
	if err := s.provider.Load(); err != nil {
		return fmt.Errorf("failed to open storage: %w", err)
	}

	data, err := s.provider.Read()
	if errors.Is(err, storage.ErrNotFound) {
		s.mu.Lock()
		s.root = models.NewRoot(s.runner.LatestVersion())
		s.mu.Unlock()
		logger.Debug("No stored diary, starting empty", "path", s.provider.GetConfigPath())
		return nil
	}
	if err != nil {
		return err
	}

	root, err := s.decode(data)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrCorrupt, err)
	}

	s.mu.Lock()
	s.root = root
	s.mu.Unlock()
	return nil
}

func (s *Store) Loaded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.root != nil
}

// decode migrates raw document bytes to the current schema and parses them.
func (s *Store) decode(data []byte) (*models.Root, error) {
	upgraded, applied, err := s.runner.Upgrade(data, func(msg string) { logger.Info(msg) })
	if err != nil {
		return nil, err
	}
	if applied > 0 {
		logger.Info("Upgraded diary document", "migrations", applied, "version", s.runner.LatestVersion())
	}

	var root models.Root
	if err := json.Unmarshal(upgraded, &root); err != nil {
		return nil, err
	}
	root.EnsureMaps()
	if root.Settings.Theme == "" {
		root.Settings.Theme = constants.DefaultTheme
	}

	for _, c := range validation.ValidateDocument(&root).Conflicts {
		logger.Warn("Diary document conflict", "type", c.Type, "key", c.Key, "message", c.Message)
	}
	return &root, nil
}

func (s *Store) GetEntry(key string) (models.Entry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.root == nil {
		return models.Entry{}, false
	}
	entry, ok := s.root.Entries[canonical(key)]
	return entry, ok
}

func (s *Store) HasEntry(key string) bool {
	_, ok := s.GetEntry(key)
	return ok
}

// GetEvents returns a copy of the events of the day in insertion order.
func (s *Store) GetEvents(key string) []models.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.root == nil {
		return []models.Event{}
	}
	events := s.root.Events[canonical(key)]
	out := make([]models.Event, len(events))
	copy(out, events)
	return out
}

// EventCount satisfies calendar.EventSource.
func (s *Store) EventCount(key string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.root == nil {
		return 0
	}
	return len(s.root.Events[canonical(key)])
}

// SaveEntry writes title and content to the day's entry, creating it on
// first save. Locked entries are left untouched.
func (s *Store) SaveEntry(key, title, content string) (SaveResult, error) {
	key, err := normalizeKey(key)
	if err != nil {
		return SaveFailed, err
	}

	s.mu.Lock()
	result, err := s.saveEntryLocked(key, title, content)
	s.mu.Unlock()

	if err == nil && result.OK() {
		s.notify()
	}
	return result, err
}

func (s *Store) saveEntryLocked(key, title, content string) (SaveResult, error) {
	if s.root == nil {
		return SaveFailed, ErrNotLoaded
	}

	prev, existed := s.root.Entries[key]
	entry := prev
	if !existed {
		entry = models.Entry{CreatedAt: s.now()}
	}
	if entry.Locked {
		return SaveLocked, nil
	}

	now := s.now()
	entry.Title = title
	entry.Content = content
	entry.UpdatedAt = &now
	s.root.Entries[key] = entry

	if err := s.persistLocked(); err != nil {
		if existed {
			s.root.Entries[key] = prev
		} else {
			delete(s.root.Entries, key)
		}
		return SaveFailed, err
	}
	return SaveOK, nil
}

// SetLocked sets the lock flag. Locking a day without an entry first saves
// title and content so there is something to lock; unlocking such a day is
// a no-op.
func (s *Store) SetLocked(key string, locked bool, title, content string) error {
	key, err := normalizeKey(key)
	if err != nil {
		return err
	}

	s.mu.Lock()
	err = s.setLockedLocked(key, locked, title, content)
	s.mu.Unlock()

	if err == nil {
		s.notify()
	}
	return err
}

func (s *Store) setLockedLocked(key string, locked bool, title, content string) error {
	if s.root == nil {
		return ErrNotLoaded
	}

	prev, existed := s.root.Entries[key]
	if !existed {
		if !locked {
			return nil
		}
		result, err := s.saveEntryLocked(key, title, content)
		if err != nil {
			return err
		}
		if !result.OK() {
			return fmt.Errorf("failed to create entry %s before locking", key)
		}
		prev = s.root.Entries[key]
	}

	entry := prev
	entry.Locked = locked
	s.root.Entries[key] = entry
	if err := s.persistLocked(); err != nil {
		s.root.Entries[key] = prev
		return err
	}
	return nil
}

// AddEvent validates and appends an event to the day. date may be a key or
// an ISO date; it is stored under the canonical key.
func (s *Store) AddEvent(date string, event models.Event) (models.Event, error) {
	if err := validation.ValidateEvent(date, event.Title, event.Time); err != nil {
		return models.Event{}, fmt.Errorf("%w: %w", ErrValidation, err)
	}
	key, err := datekey.Normalize(date)
	if err != nil {
		return models.Event{}, fmt.Errorf("%w: %w", ErrValidation, err)
	}

	event.Title = strings.TrimSpace(event.Title)
	event.Time = strings.TrimSpace(event.Time)
	if event.ID == "" {
		event.ID = uuid.New().String()
	}
	if event.CreatedAt.IsZero() {
		event.CreatedAt = s.now()
	}

	s.mu.Lock()
	if s.root == nil {
		s.mu.Unlock()
		return models.Event{}, ErrNotLoaded
	}
	prev := s.root.Events[key]
	next := make([]models.Event, len(prev), len(prev)+1)
	copy(next, prev)
	s.root.Events[key] = append(next, event)
	if err := s.persistLocked(); err != nil {
		if prev == nil {
			delete(s.root.Events, key)
		} else {
			s.root.Events[key] = prev
		}
		s.mu.Unlock()
		return models.Event{}, err
	}
	s.mu.Unlock()

	s.notify()
	return event, nil
}

// ReplaceAll swaps the whole document for data. On any failure the current
// document stays in memory and in storage unchanged.
func (s *Store) ReplaceAll(data []byte) error {
	root, err := s.decodeReplacement(data)
	if err != nil {
		return err
	}

	s.mu.Lock()
	prev := s.root
	s.root = root
	if err := s.persistLocked(); err != nil {
		s.root = prev
		s.mu.Unlock()
		return err
	}
	s.mu.Unlock()

	logger.Info("Diary replaced", "entries", len(root.Entries), "eventDays", len(root.Events))
	s.notify()
	return nil
}

// Verify reports whether ReplaceAll would accept data, without touching the
// current document.
func (s *Store) Verify(data []byte) error {
	_, err := s.decodeReplacement(data)
	return err
}

func (s *Store) decodeReplacement(data []byte) (*models.Root, error) {
	root, err := s.decode(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidBackup, &validation.Error{
			Fields: map[string]string{"file": err.Error()},
		})
	}
	return root, nil
}

// Reset replaces the document with an empty one and persists it.
func (s *Store) Reset() error {
	s.mu.Lock()
	prev := s.root
	s.root = models.NewRoot(s.runner.LatestVersion())
	if err := s.persistLocked(); err != nil {
		s.root = prev
		s.mu.Unlock()
		return err
	}
	s.mu.Unlock()

	s.notify()
	return nil
}

// Validate reports problems in the loaded document.
func (s *Store) Validate() (validation.ValidationResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.root == nil {
		return validation.ValidationResult{}, ErrNotLoaded
	}
	return validation.ValidateDocument(s.root), nil
}

// SchemaVersion returns the schema version documents are migrated to.
func (s *Store) SchemaVersion() int {
	return s.runner.LatestVersion()
}

func (s *Store) persistLocked() error {
	if s.root == nil {
		return ErrNotLoaded
	}
	data, err := json.Marshal(s.root)
	if err != nil {
		return fmt.Errorf("failed to encode diary: %w", err)
	}
	if err := s.provider.Write(data); err != nil {
		logger.Error("Failed to persist diary", "error", err)
		return fmt.Errorf("failed to persist diary: %w", err)
	}
	return nil
}

// Snapshot returns the serialized document.
func (s *Store) Snapshot() ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.root == nil {
		return nil, ErrNotLoaded
	}
	return json.Marshal(s.root)
}

// Raw returns the bytes currently held by the provider, whether or not
// they could be loaded. Used to keep a copy of a corrupt document before it
// is replaced.
func (s *Store) Raw() ([]byte, error) {
	if err := s.provider.Load(); err != nil {
		return nil, err
	}
	return s.provider.Read()
}

func (s *Store) Settings() models.Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.root == nil {
		return models.DefaultSettings()
	}
	return s.root.Settings
}

func (s *Store) SetAutoSaveInterval(ms int) error {
	if ms < 0 {
		return fmt.Errorf("%w: %w", ErrValidation, &validation.Error{
			Fields: map[string]string{constants.SettingAutoSaveIntervalMs: "must not be negative"},
		})
	}
	return s.updateSettings(func(st *models.Settings) { st.AutoSaveIntervalMs = ms })
}

func (s *Store) SetTheme(theme constants.Theme) error {
	if !theme.Valid() {
		return fmt.Errorf("%w: %w", ErrValidation, &validation.Error{
			Fields: map[string]string{constants.SettingTheme: fmt.Sprintf("unknown theme %q", theme)},
		})
	}
	return s.updateSettings(func(st *models.Settings) { st.Theme = theme })
}

func (s *Store) updateSettings(fn func(*models.Settings)) error {
	s.mu.Lock()
	if s.root == nil {
		s.mu.Unlock()
		return ErrNotLoaded
	}
	prev := s.root.Settings
	fn(&s.root.Settings)
	if err := s.persistLocked(); err != nil {
		s.root.Settings = prev
		s.mu.Unlock()
		return err
	}
	s.mu.Unlock()

	s.notify()
	return nil
}

// Keys returns entry keys in chronological order.
func (s *Store) Keys() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.root == nil {
		return nil
	}
	keys := make([]string, 0, len(s.root.Entries))
	for k := range s.root.Entries {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return datekey.Less(keys[i], keys[j]) })
	return keys
}

// EventKeys returns the days that have events, in chronological order.
func (s *Store) EventKeys() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.root == nil {
		return nil
	}
	keys := make([]string, 0, len(s.root.Events))
	for k, evs := range s.root.Events {
		if len(evs) > 0 {
			keys = append(keys, k)
		}
	}
	sort.Slice(keys, func(i, j int) bool { return datekey.Less(keys[i], keys[j]) })
	return keys
}

// OnChange registers fn to run after every successful mutation. fn runs
// without the store lock held and may call back into the store.
func (s *Store) OnChange(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

func (s *Store) notify() {
	s.mu.Lock()
	listeners := make([]func(), len(s.listeners))
	copy(listeners, s.listeners)
	s.mu.Unlock()

	for _, fn := range listeners {
		fn()
	}
}

func (s *Store) now() time.Time {
	return s.clock.Now().UTC()
}

// canonical maps ISO dates to keys for lookups; anything else is used as is.
func canonical(key string) string {
	if k, err := datekey.Normalize(key); err == nil {
		return k
	}
	return key
}

func normalizeKey(key string) (string, error) {
	k, err := datekey.Normalize(key)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrValidation, &validation.Error{
			Fields: map[string]string{"date": err.Error()},
		})
	}
	return k, nil
}
