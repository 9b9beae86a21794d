package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/diario/internal/calendar"
	"github.com/julianstephens/diario/internal/constants"
	"github.com/julianstephens/diario/internal/datekey"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string

	switch m.state {
	case StateAgenda:
		content = m.viewAgenda()
	case StateDetails:
		content = m.viewDetails()
	case StateEventForm, StateRestoreForm, StateIntervalForm:
		content = m.viewForm()
	default:
		content = m.viewEditor()
	}

	return m.styles.Doc.Render(lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewHeader(),
		content,
		m.styles.Status.Render(m.line.Message()),
		m.help.View(m),
	))
}

func (m Model) viewHeader() string {
	var header string
	switch m.state {
	case StateAgenda, StateDetails:
		header = "Agenda"
	case StateRestoreForm:
		header = "Backup"
	case StateIntervalForm:
		header = "Configurações"
	default:
		header = longDate(m.dayKey)
	}
	return m.styles.Header.Render("Diário · " + header)
}

func (m Model) viewEditor() string {
	title := m.styles.Label.Render("Título")
	if m.locked {
		title += " " + m.styles.Locked.Render("🔒 "+constants.StatusLocked)
	}
	return lipgloss.JoinVertical(
		lipgloss.Left,
		title,
		m.title.View(),
		"",
		m.styles.Label.Render("Texto"),
		m.content.View(),
	)
}

func (m Model) viewAgenda() string {
	grid := calendar.Build(m.cursor.Year, m.cursor.Month, m.store, m.clock.Now())
	selected := 0
	if m.selected.Year() == m.cursor.Year && m.selected.Month() == m.cursor.Month {
		selected = m.selected.Day()
	}
	cal := calendar.Render(grid, m.styles.Calendar, selected)

	key := datekey.Encode(m.selected)
	var side strings.Builder
	side.WriteString(m.styles.Label.Render(longDate(key)))
	side.WriteString("\n\n")
	if evs := m.store.GetEvents(key); len(evs) > 0 {
		for _, ev := range evs {
			side.WriteString("• " + ev.Line() + "\n")
		}
	} else {
		side.WriteString(m.styles.Label.Render("Sem compromissos"))
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, cal, "  ", m.styles.Pane.Render(side.String()))
}

func (m Model) viewDetails() string {
	return m.styles.Pane.Render(m.details.View())
}

func (m Model) viewForm() string {
	view := m.form.View()
	if m.formError != "" {
		view = lipgloss.JoinVertical(lipgloss.Left, view, m.styles.Error.Render(m.formError))
	}
	return view
}

// dayDetails is the text of the details pane: a preview of the entry and
// the day's events.
func (m Model) dayDetails(key string) string {
	var b strings.Builder
	b.WriteString(longDate(key))
	b.WriteString("\n\n")

	b.WriteString(constants.DiaryHeading + "\n")
	if entry, ok := m.store.GetEntry(key); ok {
		title := entry.Title
		if title == "" {
			title = constants.UntitledEntry
		}
		if entry.Locked {
			title += " 🔒"
		}
		b.WriteString(title + "\n")
		b.WriteString(Preview(entry.Content) + "\n")
	} else {
		b.WriteString(constants.NoEntryForDay + "\n")
	}

	if evs := m.store.GetEvents(key); len(evs) > 0 {
		b.WriteString("\n" + constants.EventsHeading + "\n")
		for _, ev := range evs {
			b.WriteString("• " + ev.Line() + "\n")
		}
	}
	return b.String()
}

// Preview returns the first constants.PreviewLength characters of content,
// with an ellipsis when it was cut.
func Preview(content string) string {
	r := []rune(content)
	if len(r) <= constants.PreviewLength {
		return content
	}
	return string(r[:constants.PreviewLength]) + "..."
}

func longDate(key string) string {
	t, err := datekey.Date(key, nil)
	if err != nil {
		return key
	}
	return fmt.Sprintf("%s, %d de %s de %d", calendar.WeekdayName(t.Weekday()), t.Day(), calendar.MonthName(t.Month()), t.Year())
}
