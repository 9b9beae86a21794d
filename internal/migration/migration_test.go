package migration

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func decode(t *testing.T, data []byte) Document {
	t.Helper()
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("failed to decode document: %v", err)
	}
	return doc
}

func TestNewRunnerRejectsDuplicates(t *testing.T) {
	noop := func(Document) error { return nil }
	_, err := NewRunner([]Migration{
		{Version: 1, Name: "a", Apply: noop},
		{Version: 1, Name: "b", Apply: noop},
	})
	if err == nil {
		t.Fatal("expected error for duplicate versions")
	}

	_, err = NewRunner([]Migration{{Version: 0, Name: "zero", Apply: noop}})
	if err == nil {
		t.Fatal("expected error for version 0")
	}
}

func TestApplyMigrationsInOrder(t *testing.T) {
	var order []int
	step := func(v int) func(Document) error {
		return func(Document) error {
			order = append(order, v)
			return nil
		}
	}
	r, err := NewRunner([]Migration{
		{Version: 3, Name: "three", Apply: step(3)},
		{Version: 1, Name: "one", Apply: step(1)},
		{Version: 2, Name: "two", Apply: step(2)},
	})
	if err != nil {
		t.Fatalf("NewRunner failed: %v", err)
	}

	doc := Document{"version": float64(1)}
	var logs []string
	applied, err := r.ApplyMigrations(doc, func(s string) { logs = append(logs, s) })
	if err != nil {
		t.Fatalf("ApplyMigrations failed: %v", err)
	}
	if applied != 2 {
		t.Errorf("applied = %d, want 2", applied)
	}
	if len(order) != 2 || order[0] != 2 || order[1] != 3 {
		t.Errorf("order = %v, want [2 3]", order)
	}
	if v, _ := CurrentVersion(doc); v != 3 {
		t.Errorf("version after migration = %d, want 3", v)
	}
	if len(logs) != 2 {
		t.Errorf("expected 2 log lines, got %d", len(logs))
	}
}

func TestApplyMigrationsStopsOnError(t *testing.T) {
	boom := errors.New("boom")
	r, err := NewRunner([]Migration{
		{Version: 1, Name: "ok", Apply: func(Document) error { return nil }},
		{Version: 2, Name: "fails", Apply: func(Document) error { return boom }},
	})
	if err != nil {
		t.Fatalf("NewRunner failed: %v", err)
	}

	doc := Document{}
	applied, err := r.ApplyMigrations(doc, nil)
	if !errors.Is(err, boom) {
		t.Fatalf("error = %v, want %v", err, boom)
	}
	if applied != 1 {
		t.Errorf("applied = %d, want 1", applied)
	}
}

func TestValidateVersionTooNew(t *testing.T) {
	r := Default()
	doc := Document{"version": float64(r.LatestVersion() + 1)}
	if err := r.ValidateVersion(doc); !errors.Is(err, ErrTooNew) {
		t.Errorf("ValidateVersion() error = %v, want ErrTooNew", err)
	}
}

func TestCurrentVersionInvalid(t *testing.T) {
	for _, v := range []any{"1", float64(-1), 1.5, true} {
		if _, err := CurrentVersion(Document{"version": v}); err == nil {
			t.Errorf("CurrentVersion(%v) returned no error", v)
		}
	}
}

func TestUpgradeLegacyDocument(t *testing.T) {
	legacy := []byte(`{
		"entries": {"2024-3-5": {"title": "T", "content": "C", "locked": false}},
		"events": {"2024-03-05": [{"time": "10:00", "title": "Dentista"}]},
		"settings": {"autoSave": 60000}
	}`)

	out, applied, err := Default().Upgrade(legacy, nil)
	if err != nil {
		t.Fatalf("Upgrade failed: %v", err)
	}
	if applied != Default().LatestVersion() {
		t.Errorf("applied = %d, want %d", applied, Default().LatestVersion())
	}

	doc := decode(t, out)
	settings := doc["settings"].(map[string]any)
	if settings["autoSaveIntervalMs"] != float64(60000) {
		t.Errorf("autoSaveIntervalMs = %v, want 60000", settings["autoSaveIntervalMs"])
	}
	if _, ok := settings["autoSave"]; ok {
		t.Error("legacy autoSave key was not removed")
	}
	if settings["theme"] != "light" {
		t.Errorf("theme = %v, want light", settings["theme"])
	}

	events := doc["events"].(map[string]any)
	if _, ok := events["2024-03-05"]; ok {
		t.Error("padded event key was not rewritten")
	}
	list, ok := events["2024-3-5"].([]any)
	if !ok || len(list) != 1 {
		t.Fatalf("events[2024-3-5] = %v, want one event", events["2024-3-5"])
	}
}

func TestUpgradeMergesCollidingEventKeys(t *testing.T) {
	doc := Document{
		"events": map[string]any{
			"2024-3-5":   []any{map[string]any{"title": "a"}},
			"2024-03-05": []any{map[string]any{"title": "b"}},
		},
		"entries": map[string]any{},
	}
	if err := canonicalizeKeys(doc); err != nil {
		t.Fatalf("canonicalizeKeys failed: %v", err)
	}

	list := doc["events"].(map[string]any)["2024-3-5"].([]any)
	if len(list) != 2 {
		t.Fatalf("merged list has %d events, want 2", len(list))
	}
	if list[0].(map[string]any)["title"] != "a" {
		t.Errorf("canonical events should come first, got %v", list)
	}
}

func TestUpgradeKeepsExplicitInterval(t *testing.T) {
	data := []byte(`{"settings": {"autoSave": 1000, "autoSaveIntervalMs": 0}}`)
	out, _, err := Default().Upgrade(data, nil)
	if err != nil {
		t.Fatalf("Upgrade failed: %v", err)
	}
	settings := decode(t, out)["settings"].(map[string]any)
	if settings["autoSaveIntervalMs"] != float64(0) {
		t.Errorf("autoSaveIntervalMs = %v, want 0", settings["autoSaveIntervalMs"])
	}
}

func TestUpgradeRejectsNonObjects(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{name: "array", data: `[1, 2]`},
		{name: "string", data: `"diary"`},
		{name: "entries not object", data: `{"entries": []}`},
		{name: "invalid json", data: `{"entries":`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, err := Default().Upgrade([]byte(tt.data), nil); err == nil {
				t.Error("expected error")
			} else if tt.name == "array" && !strings.Contains(err.Error(), "not a JSON object") {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}
