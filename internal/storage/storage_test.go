package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func providers(t *testing.T) map[string]Provider {
	dir := t.TempDir()
	return map[string]Provider{
		"json":  NewJSONStore(filepath.Join(dir, "config", "diario.json")),
		"diskv": NewDiskvStore(filepath.Join(dir, "diskv")),
	}
}

func TestProviders(t *testing.T) {
	for name, p := range providers(t) {
		t.Run(name, func(t *testing.T) {
			if _, err := p.Read(); !errors.Is(err, ErrNotLoaded) {
				t.Errorf("Read before Load error = %v, want ErrNotLoaded", err)
			}

			if err := p.Load(); err != nil {
				t.Fatalf("Load failed: %v", err)
			}
			defer p.Close()

			if _, err := p.Read(); !errors.Is(err, ErrNotFound) {
				t.Errorf("Read on empty store error = %v, want ErrNotFound", err)
			}

			if err := p.Write([]byte(`{"a":1}`)); err != nil {
				t.Fatalf("Write failed: %v", err)
			}
			if err := p.Write([]byte(`{"a":2}`)); err != nil {
				t.Fatalf("Write failed: %v", err)
			}

			got, err := p.Read()
			if err != nil {
				t.Fatalf("Read failed: %v", err)
			}
			if string(got) != `{"a":2}` {
				t.Errorf("Read() = %s, want {\"a\":2}", got)
			}
		})
	}
}

func TestJSONStoreWriteIsAtomic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "diario.json")
	store := NewJSONStore(path)
	if err := store.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	if err := store.Write([]byte(`{"version":2}`)); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir failed: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("expected only the storage file, found %d entries", len(entries))
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Stat failed: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("storage file mode = %v, want 0600", perm)
	}
}

func TestJSONStoreRejectsDirectory(t *testing.T) {
	dir := t.TempDir()
	store := NewJSONStore(dir)
	if err := store.Load(); err == nil {
		t.Error("expected error when the storage path is a directory")
	}
}
