package constants

// Theme is the color theme of the interactive editor
type Theme string

const (
	// Settings keys, as they appear in the persisted document
	SettingAutoSaveIntervalMs = "autoSaveIntervalMs"
	SettingTheme              = "theme"

	// LegacySettingAutoSave is the interval key written by the first version of the diary
	LegacySettingAutoSave = "autoSave"

	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"

	DefaultTheme = ThemeLight
)

// Valid reports whether t is a known theme.
func (t Theme) Valid() bool {
	return t == ThemeLight || t == ThemeDark
}

// Toggle returns the other theme.
func (t Theme) Toggle() Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}
