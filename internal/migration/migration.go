// Package migration upgrades persisted diary documents to the current schema
// version. Documents written before versioning existed are version 0.
package migration

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"sort"
)

var (
	// ErrNotObject is returned when the document is valid JSON but not an object
	ErrNotObject = errors.New("document is not a JSON object")
	// ErrTooNew is returned when the document was written by a newer version of the application
	ErrTooNew = errors.New("document schema version is newer than supported")
)

// Document is a decoded diary document in its generic JSON form.
type Document map[string]any

// Migration is a single upgrade step from Version-1 to Version.
type Migration struct {
	Version int
	Name    string
	Apply   func(doc Document) error
}

// Runner applies an ordered set of migrations
type Runner struct {
	migrations []Migration
}

// NewRunner creates a runner for the given migrations. Versions must be unique
// and at least 1.
func NewRunner(migrations []Migration) (*Runner, error) {
	sorted := make([]Migration, len(migrations))
	copy(sorted, migrations)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Version < sorted[j].Version
	})

	for i, m := range sorted {
		if m.Version < 1 {
			return nil, fmt.Errorf("invalid migration version %d (%s): version must be at least 1", m.Version, m.Name)
		}
		if i > 0 && sorted[i-1].Version == m.Version {
			return nil, fmt.Errorf("duplicate migration version %d", m.Version)
		}
	}

	return &Runner{migrations: sorted}, nil
}

// Default returns a runner with the application's registered migrations.
func Default() *Runner {
	r, err := NewRunner(registered)
	if err != nil {
		panic(err)
	}
	return r
}

// LatestVersion returns the highest migration version available
func (r *Runner) LatestVersion() int {
	if len(r.migrations) == 0 {
		return 0
	}
	return r.migrations[len(r.migrations)-1].Version
}

// CurrentVersion returns the schema version recorded in the document, 0 when absent.
func CurrentVersion(doc Document) (int, error) {
	raw, ok := doc["version"]
	if !ok || raw == nil {
		return 0, nil
	}
	f, ok := raw.(float64)
	if !ok || f < 0 || f != math.Trunc(f) {
		return 0, fmt.Errorf("invalid document version: %v", raw)
	}
	return int(f), nil
}

// ValidateVersion checks if the document version is compatible with the application
func (r *Runner) ValidateVersion(doc Document) error {
	current, err := CurrentVersion(doc)
	if err != nil {
		return err
	}
	if latest := r.LatestVersion(); current > latest {
		return fmt.Errorf("%w: document version %d, supported %d - please upgrade the application", ErrTooNew, current, latest)
	}
	return nil
}

// ApplyMigrations applies all pending migrations to doc in place.
// Returns the number of migrations applied
func (r *Runner) ApplyMigrations(doc Document, logFn func(string)) (int, error) {
	if logFn == nil {
		logFn = func(string) {}
	}

	if err := r.ValidateVersion(doc); err != nil {
		return 0, err
	}
	current, _ := CurrentVersion(doc)

	applied := 0
	for _, m := range r.migrations {
		if m.Version <= current {
			continue
		}
		logFn(fmt.Sprintf("Applying document migration %d: %s", m.Version, m.Name))
		if err := m.Apply(doc); err != nil {
			return applied, fmt.Errorf("failed to apply migration %d (%s): %w", m.Version, m.Name, err)
		}
		doc["version"] = float64(m.Version)
		applied++
	}

	return applied, nil
}

// Upgrade decodes raw JSON, migrates it to the latest version and re-encodes it.
func (r *Runner) Upgrade(data []byte, logFn func(string)) ([]byte, int, error) {
	var decoded any
	if err := json.Unmarshal(data, &decoded); err != nil {
		return nil, 0, err
	}
	obj, ok := decoded.(map[string]any)
	if !ok {
		return nil, 0, ErrNotObject
	}
	doc := Document(obj)

	applied, err := r.ApplyMigrations(doc, logFn)
	if err != nil {
		return nil, applied, err
	}

	out, err := json.Marshal(doc)
	if err != nil {
		return nil, applied, fmt.Errorf("failed to re-encode document: %w", err)
	}
	return out, applied, nil
}
