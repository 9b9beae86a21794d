package migration

import (
	"fmt"

	"github.com/julianstephens/diario/internal/constants"
	"github.com/julianstephens/diario/internal/datekey"
)

var registered = []Migration{
	{Version: 1, Name: "versioned_settings", Apply: migrateSettings},
	{Version: 2, Name: "canonical_day_keys", Apply: canonicalizeKeys},
}

// migrateSettings makes the top-level maps explicit and renames the legacy
// "autoSave" interval to "autoSaveIntervalMs".
func migrateSettings(doc Document) error {
	for _, field := range []string{"entries", "events", "settings"} {
		v, ok := doc[field]
		if !ok || v == nil {
			doc[field] = map[string]any{}
			continue
		}
		if _, ok := v.(map[string]any); !ok {
			return fmt.Errorf("field %q is not an object", field)
		}
	}

	settings := doc["settings"].(map[string]any)
	if legacy, ok := settings[constants.LegacySettingAutoSave]; ok {
		if _, exists := settings[constants.SettingAutoSaveIntervalMs]; !exists {
			settings[constants.SettingAutoSaveIntervalMs] = legacy
		}
		delete(settings, constants.LegacySettingAutoSave)
	}
	if _, ok := settings[constants.SettingAutoSaveIntervalMs]; !ok {
		settings[constants.SettingAutoSaveIntervalMs] = float64(constants.DefaultAutoSaveIntervalMs)
	}
	if theme, ok := settings[constants.SettingTheme].(string); !ok || theme == "" {
		settings[constants.SettingTheme] = string(constants.DefaultTheme)
	}

	return nil
}

// canonicalizeKeys rewrites zero-padded ISO day keys ("2024-03-05") to the
// canonical form ("2024-3-5"). Events saved from a date picker used the padded
// form and never matched the calendar. Event lists that collide are merged,
// keeping the canonical list first; for entries the canonical one wins.
func canonicalizeKeys(doc Document) error {
	events, _ := doc["events"].(map[string]any)
	for key, raw := range events {
		canonical, err := datekey.Normalize(key)
		if err != nil || canonical == key {
			continue
		}
		moved, ok := raw.([]any)
		if !ok {
			return fmt.Errorf("events for %q are not a list", key)
		}
		if existing, ok := events[canonical].([]any); ok {
			moved = append(existing, moved...)
		}
		events[canonical] = moved
		delete(events, key)
	}

	entries, _ := doc["entries"].(map[string]any)
	for key, raw := range entries {
		canonical, err := datekey.Normalize(key)
		if err != nil || canonical == key {
			continue
		}
		if _, exists := entries[canonical]; !exists {
			entries[canonical] = raw
		}
		delete(entries, key)
	}

	return nil
}
