package calendar

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/diario/internal/constants"
)

const cellWidth = 5

// Styles are the lipgloss styles used to draw a grid.
type Styles struct {
	Title    lipgloss.Style
	Weekday  lipgloss.Style
	Day      lipgloss.Style
	Entry    lipgloss.Style
	Today    lipgloss.Style
	Selected lipgloss.Style
	Marker   lipgloss.Style
	Border   lipgloss.Style
}

// StylesFor returns the palette of a theme. Unknown themes fall back to light.
func StylesFor(theme constants.Theme) Styles {
	fg, muted, accent, entry, selBg := lipgloss.Color("236"), lipgloss.Color("245"), lipgloss.Color("62"), lipgloss.Color("28"), lipgloss.Color("153")
	if theme == constants.ThemeDark {
		fg, muted, accent, entry, selBg = lipgloss.Color("252"), lipgloss.Color("240"), lipgloss.Color("205"), lipgloss.Color("114"), lipgloss.Color("238")
	}

	cell := lipgloss.NewStyle().Width(cellWidth).Align(lipgloss.Center)
	return Styles{
		Title:    lipgloss.NewStyle().Foreground(accent).Bold(true).Width(cellWidth * 7).Align(lipgloss.Center),
		Weekday:  cell.Foreground(muted),
		Day:      cell.Foreground(fg),
		Entry:    cell.Foreground(entry).Bold(true),
		Today:    cell.Foreground(accent).Bold(true).Underline(true),
		Selected: cell.Foreground(fg).Background(selBg).Bold(true),
		Marker:   lipgloss.NewStyle().Foreground(accent),
		Border:   lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(muted).Padding(0, 1),
	}
}

// Render draws the grid. selected is the highlighted day of month, 0 for none.
// Days with an entry are emphasized; days with events carry a dot.
func Render(g Grid, st Styles, selected int) string {
	var b strings.Builder

	b.WriteString(st.Title.Render(g.Title()))
	b.WriteString("\n")

	header := make([]string, 7)
	for i := range header {
		header[i] = st.Weekday.Render(weekdayNames[i])
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, header...))

	for _, week := range g.Weeks() {
		b.WriteString("\n")
		cells := make([]string, 7)
		for i, d := range week {
			cells[i] = renderDay(d, st, selected)
		}
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}

	return st.Border.Render(b.String())
}

func renderDay(d *Day, st Styles, selected int) string {
	if d == nil {
		return st.Day.Render("")
	}

	label := fmt.Sprintf("%d", d.Day)
	if d.Events > 0 {
		label += st.Marker.Render("•")
	}

	switch {
	case d.Day == selected:
		return st.Selected.Render(label)
	case d.IsToday:
		return st.Today.Render(label)
	case d.HasEntry:
		return st.Entry.Render(label)
	default:
		return st.Day.Render(label)
	}
}
