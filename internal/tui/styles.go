package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/diario/internal/calendar"
	"github.com/julianstephens/diario/internal/constants"
)

// Styles are the editor styles of one theme. The calendar grid shares the
// same palette.
type Styles struct {
	Calendar calendar.Styles
	Header   lipgloss.Style
	Label    lipgloss.Style
	Status   lipgloss.Style
	Locked   lipgloss.Style
	Error    lipgloss.Style
	Pane     lipgloss.Style
	Doc      lipgloss.Style
}

func stylesFor(theme constants.Theme) Styles {
	accent, muted, warn := lipgloss.Color("62"), lipgloss.Color("245"), lipgloss.Color("160")
	if theme == constants.ThemeDark {
		accent, muted, warn = lipgloss.Color("205"), lipgloss.Color("240"), lipgloss.Color("203")
	}

	return Styles{
		Calendar: calendar.StylesFor(theme),
		Header:   lipgloss.NewStyle().Foreground(accent).Bold(true).Padding(0, 1),
		Label:    lipgloss.NewStyle().Foreground(muted),
		Status:   lipgloss.NewStyle().Foreground(muted).Italic(true).Padding(0, 1),
		Locked:   lipgloss.NewStyle().Foreground(warn).Bold(true),
		Error:    lipgloss.NewStyle().Foreground(warn),
		Pane: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(muted).
			Padding(0, 1),
		Doc: lipgloss.NewStyle().Padding(1, 2),
	}
}
