package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/diario/internal/autosave"
	"github.com/julianstephens/diario/internal/calendar"
	"github.com/julianstephens/diario/internal/constants"
	"github.com/julianstephens/diario/internal/datekey"
	"github.com/julianstephens/diario/internal/errors"
	"github.com/julianstephens/diario/internal/logger"
	"github.com/julianstephens/diario/internal/tui/components/eventform"
	"github.com/julianstephens/diario/internal/tui/components/settingsform"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case saveMsg:
		if msg.page != m.page.Load() {
			// queued before another page was opened
			return m, nil
		}
		m.save(msg.trigger)
		return m, nil

	case statusMsg:
		// View reads the line directly; the message only forces a redraw.
		return m, nil
	}

	// Handle Form States
	if m.form != nil {
		return m.updateForm(msg)
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m.forward(msg)
	}

	switch {
	case key.Matches(keyMsg, m.keys.Quit):
		return m.quit()
	case key.Matches(keyMsg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(keyMsg, m.keys.Theme):
		m.toggleTheme()
		return m, nil
	case key.Matches(keyMsg, m.keys.Restore):
		return m.openRestoreForm()
	case key.Matches(keyMsg, m.keys.Interval):
		return m.openIntervalForm()
	}

	switch m.state {
	case StateAgenda:
		return m.updateAgenda(keyMsg)
	case StateDetails:
		return m.updateDetails(keyMsg)
	default:
		return m.updateEditor(keyMsg)
	}
}

func (m Model) updateEditor(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Save):
		m.save(autosave.TriggerDebounce)
		return m, nil
	case key.Matches(msg, m.keys.Lock):
		m.toggleLock()
		return m, nil
	case key.Matches(msg, m.keys.NewEvent):
		return m.openEventForm(m.dayKey)
	case key.Matches(msg, m.keys.Agenda):
		m.flush()
		m.state = StateAgenda
		return m, nil
	case key.Matches(msg, m.keys.Focus):
		m.setFocus(1 - m.focus)
		return m, nil
	}

	if m.locked {
		m.line.Set(constants.StatusLockedNoEdit)
		return m, nil
	}

	before := m.title.Value() + "\x00" + m.content.Value()
	model, cmd := m.forward(msg)
	m = model.(Model)
	if m.title.Value()+"\x00"+m.content.Value() != before {
		m.dirty = true
		m.autosave.Touch()
		m.line.Set(constants.StatusEditing)
	}
	return m, cmd
}

func (m Model) updateAgenda(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		m.state = StateEditor
	case key.Matches(msg, m.keys.Left):
		m.moveSelection(-1)
	case key.Matches(msg, m.keys.Right):
		m.moveSelection(1)
	case key.Matches(msg, m.keys.Up):
		m.moveSelection(-7)
	case key.Matches(msg, m.keys.Down):
		m.moveSelection(7)
	case key.Matches(msg, m.keys.PrevMonth):
		m.shiftMonth(-1)
	case key.Matches(msg, m.keys.NextMonth):
		m.shiftMonth(1)
	case key.Matches(msg, m.keys.Today):
		now := m.clock.Now()
		m.selected = dateOnly(now)
		m.cursor.Today(now)
	case key.Matches(msg, m.keys.Enter):
		m.details.SetContent(m.dayDetails(datekey.Encode(m.selected)))
		m.details.GotoTop()
		m.state = StateDetails
	case key.Matches(msg, m.keys.Edit):
		m.switchDay(datekey.Encode(m.selected))
		m.state = StateEditor
	case key.Matches(msg, m.keys.AddEvent):
		return m.openEventForm(datekey.Encode(m.selected))
	}
	return m, nil
}

func (m Model) updateDetails(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		m.state = StateAgenda
		return m, nil
	case key.Matches(msg, m.keys.Edit):
		m.switchDay(datekey.Encode(m.selected))
		m.state = StateEditor
		return m, nil
	}
	var cmd tea.Cmd
	m.details, cmd = m.details.Update(msg)
	return m, cmd
}

func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
		m.closeForm()
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		if err := m.submit(&m); err != nil {
			// stay in the form so the input can be fixed
			m.formError = errors.Status(err)
			m.form.State = huh.StateNormal
			return m, cmd
		}
		m.closeForm()
	case huh.StateAborted:
		m.closeForm()
	}
	return m, cmd
}

// openForm shows form until it completes; submit then applies its values.
func (m Model) openForm(state SessionState, form *huh.Form, submit func(*Model) error) (tea.Model, tea.Cmd) {
	m.form = form
	m.submit = submit
	m.formError = ""
	m.prevState = m.state
	m.state = state
	return m, m.form.Init()
}

func (m *Model) closeForm() {
	m.form = nil
	m.submit = nil
	m.formError = ""
	m.state = m.prevState
	if m.state == StateDetails {
		m.details.SetContent(m.dayDetails(datekey.Encode(m.selected)))
	}
}

func (m Model) openEventForm(key string) (tea.Model, tea.Cmd) {
	values := eventform.Defaults(key)
	m.formValues = values
	return m.openForm(StateEventForm, eventform.New(values, m.theme), func(m *Model) error {
		if _, err := m.store.AddEvent(values.Date, values.Event()); err != nil {
			return err
		}
		m.line.Set(constants.StatusEventSaved)
		return nil
	})
}

func (m Model) openRestoreForm() (tea.Model, tea.Cmd) {
	backups, err := m.backups.ListBackups()
	if err != nil {
		logger.Error("Failed to list backups", "error", err)
		m.line.Set(errors.Status(err))
		return m, nil
	}
	if len(backups) == 0 {
		m.line.Set(constants.StatusNoBackups)
		return m, nil
	}

	values := &settingsform.RestoreValues{}
	return m.openForm(StateRestoreForm, settingsform.Restore(values, backups, m.theme), func(m *Model) error {
		if values.Confirm {
			m.restoreBackup(values.Path)
		}
		return nil
	})
}

func (m Model) openIntervalForm() (tea.Model, tea.Cmd) {
	values := settingsform.NewIntervalValues(m.store.Settings().AutoSaveIntervalMs)
	return m.openForm(StateIntervalForm, settingsform.Interval(values, m.theme), func(m *Model) error {
		ms, err := values.Value()
		if err != nil {
			return err
		}
		return m.setInterval(ms)
	})
}

// forward passes msg to the focused input.
func (m Model) forward(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	if m.focus == focusTitle {
		m.title, cmd = m.title.Update(msg)
	} else {
		m.content, cmd = m.content.Update(msg)
	}
	return m, cmd
}

// save writes the editor fields to the open day. Periodic saves of an
// unchanged page are skipped so browsing days never creates empty entries;
// a locked page still goes through SaveEntry, which reports the lock.
func (m *Model) save(trigger autosave.Trigger) {
	if trigger == autosave.TriggerPeriodic && !m.dirty && !m.locked {
		return
	}
	m.autosave.Cancel()
	result, err := m.store.SaveEntry(m.dayKey, m.title.Value(), m.content.Value())
	switch {
	case err != nil:
		logger.Error("Save failed", "day", m.dayKey, "trigger", trigger, "error", err)
		m.line.Set(errors.Status(err))
	case !result.OK():
		m.line.Set(constants.StatusLockedNoEdit)
	default:
		m.dirty = false
		m.line.Saved(m.clock.Now())
	}
}

// flush saves pending edits right away.
func (m *Model) flush() {
	if m.dirty && !m.locked {
		m.save(autosave.TriggerDebounce)
	}
}

func (m *Model) switchDay(key string) {
	if key == m.dayKey {
		return
	}
	m.flush()
	m.openDay(key)
	m.line.Set(constants.StatusEntryLoaded)
}

func (m *Model) toggleLock() {
	m.flush()
	locked := !m.locked
	if err := m.store.SetLocked(m.dayKey, locked, m.title.Value(), m.content.Value()); err != nil {
		m.line.Set(errors.Status(err))
		return
	}
	if !locked && !m.store.HasEntry(m.dayKey) {
		// nothing was stored, so there is nothing to unlock
		return
	}
	m.locked = locked
	m.dirty = false
	m.setFocus(m.focus)
	if locked {
		m.line.Set(constants.StatusLocked)
	} else {
		m.line.Set(constants.StatusUnlocked)
	}
}

// restoreBackup replaces the diary with the backup at path and reopens the
// session on today with the restored settings.
func (m *Model) restoreBackup(path string) {
	m.flush()
	if _, err := m.backups.Restore(m.store, path); err != nil {
		logger.Error("Restore failed", "path", path, "error", err)
		m.line.Set(constants.StatusRestoreFailed)
		return
	}
	m.reload()
	m.line.Set(constants.StatusRestored)
}

// reload re-derives the session from the stored document: theme, autosave
// interval and today's page.
func (m *Model) reload() {
	settings := m.store.Settings()
	m.theme = settings.Theme
	m.styles = stylesFor(settings.Theme)
	m.autosave.SetInterval(settings.AutoSaveIntervalMs)

	now := m.clock.Now()
	m.selected = dateOnly(now)
	m.cursor = calendar.NewCursor(now)
	m.openDay(datekey.Encode(now))
}

func (m *Model) setInterval(ms int) error {
	if err := m.store.SetAutoSaveInterval(ms); err != nil {
		return err
	}
	m.autosave.SetInterval(ms)
	m.line.Set(constants.StatusIntervalSet)
	return nil
}

func (m *Model) toggleTheme() {
	next := m.theme.Toggle()
	if err := m.store.SetTheme(next); err != nil {
		m.line.Set(errors.Status(err))
		return
	}
	m.theme = next
	m.styles = stylesFor(next)
	m.line.Set(constants.StatusThemeChanged)
}

func (m *Model) moveSelection(days int) {
	m.selected = m.selected.AddDate(0, 0, days)
	m.cursor = calendar.NewCursor(m.selected)
}

// shiftMonth moves the calendar by n months, keeping the selected day of
// month when the new month has it.
func (m *Model) shiftMonth(n int) {
	m.cursor.Shift(n)
	day := m.selected.Day()
	if last := datekey.DaysIn(m.cursor.Year, m.cursor.Month); day > last {
		day = last
	}
	m.selected = time.Date(m.cursor.Year, m.cursor.Month, day, 0, 0, 0, 0, m.selected.Location())
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	m.flush()
	m.autosave.Stop()
	m.quitting = true
	return m, tea.Quit
}

func (m *Model) resize(width, height int) {
	m.width = width
	m.height = height
	m.help.Width = width

	w := width - 6
	if w < 20 {
		w = 20
	}
	m.title.Width = w
	m.content.SetWidth(w)
	h := height - 10
	if h < 3 {
		h = 3
	}
	m.content.SetHeight(h)
	m.details.Width = w
	m.details.Height = h
}
