package models

import "github.com/julianstephens/diario/internal/constants"

// Settings represents application-wide settings
type Settings struct {
	AutoSaveIntervalMs int             `json:"autoSaveIntervalMs"` // periodic autosave interval, <= 0 disables it
	Theme              constants.Theme `json:"theme,omitempty"`    // "light" or "dark"
}

// DefaultSettings returns the settings of a freshly initialized diary.
func DefaultSettings() Settings {
	return Settings{
		AutoSaveIntervalMs: constants.DefaultAutoSaveIntervalMs,
		Theme:              constants.DefaultTheme,
	}
}
