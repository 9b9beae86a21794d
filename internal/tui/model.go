// Package tui is the interactive diary editor.
package tui

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/diario/internal/autosave"
	"github.com/julianstephens/diario/internal/backup"
	"github.com/julianstephens/diario/internal/calendar"
	"github.com/julianstephens/diario/internal/clock"
	"github.com/julianstephens/diario/internal/constants"
	"github.com/julianstephens/diario/internal/datekey"
	"github.com/julianstephens/diario/internal/diary"
	"github.com/julianstephens/diario/internal/status"
	"github.com/julianstephens/diario/internal/tui/components/eventform"
)

type SessionState int

const (
	StateEditor SessionState = iota
	StateAgenda
	StateDetails
	StateEventForm
	StateRestoreForm
	StateIntervalForm
)

const (
	focusTitle = iota
	focusContent
)

// saveMsg asks the update loop to save the open entry. page identifies the
// page that was open when the timer fired.
type saveMsg struct {
	trigger autosave.Trigger
	page    uint64
}

// statusMsg asks for a redraw after the status line or the diary changed.
type statusMsg struct{}

// sender forwards messages from timer goroutines into the running program.
// It is shared by every copy of the model.
type sender struct {
	mu sync.Mutex
	fn func(tea.Msg)
}

func (s *sender) set(fn func(tea.Msg)) {
	s.mu.Lock()
	s.fn = fn
	s.mu.Unlock()
}

// send never blocks the caller: it may run inside Update, where a
// synchronous Program.Send would deadlock.
func (s *sender) send(msg tea.Msg) {
	s.mu.Lock()
	fn := s.fn
	s.mu.Unlock()
	if fn != nil {
		go fn(msg)
	}
}

type Model struct {
	store    *diary.Store
	clock    clock.Clock
	backups  *backup.Manager
	autosave *autosave.Scheduler
	line     *status.Line
	out      *sender

	state     SessionState
	prevState SessionState
	keys      KeyMap
	help      help.Model
	theme     constants.Theme
	styles    Styles

	// editor
	page    *atomic.Uint64 // bumped whenever a page is opened
	dayKey  string
	title   textinput.Model
	content textarea.Model
	focus   int
	locked  bool
	dirty   bool

	// agenda
	selected time.Time
	cursor   calendar.Cursor
	details  viewport.Model

	// forms
	form       *huh.Form
	submit     func(*Model) error
	formValues *eventform.Values
	formError  string

	quitting bool
	width    int
	height   int
}

func NewModel(store *diary.Store, clk clock.Clock, backups *backup.Manager) Model {
	if clk == nil {
		clk = clock.New()
	}
	out := &sender{}
	settings := store.Settings()

	ti := textinput.New()
	ti.Placeholder = "Título do dia"
	ti.CharLimit = 200

	ta := textarea.New()
	ta.Placeholder = "Querido diário..."
	ta.ShowLineNumbers = false
	ta.CharLimit = 0

	now := clk.Now()
	m := Model{
		store:    store,
		clock:    clk,
		backups:  backups,
		line:     status.New(clk),
		out:      out,
		state:    StateEditor,
		keys:     DefaultKeyMap(),
		help:     help.New(),
		theme:    settings.Theme,
		styles:   stylesFor(settings.Theme),
		page:     new(atomic.Uint64),
		title:    ti,
		content:  ta,
		selected: dateOnly(now),
		cursor:   calendar.NewCursor(now),
		details:  viewport.New(60, 12),
	}
	m.line.OnChange(func(string) { out.send(statusMsg{}) })
	store.OnChange(func() { out.send(statusMsg{}) })
	page := m.page
	m.autosave = autosave.New(clk, settings.AutoSaveIntervalMs, func(t autosave.Trigger) {
		out.send(saveMsg{trigger: t, page: page.Load()})
	})
	m.openDay(datekey.Encode(now))
	return m
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, textarea.Blink)
}

// Send lets a running program receive autosave and status messages.
func (m Model) Send(fn func(tea.Msg)) {
	m.out.set(fn)
}

// openDay loads key into the editor and reinstalls the periodic timer.
func (m *Model) openDay(key string) {
	entry, _ := m.store.GetEntry(key)
	m.page.Add(1)
	m.dayKey = key
	m.title.SetValue(entry.Title)
	m.content.SetValue(entry.Content)
	m.locked = entry.Locked
	m.dirty = false
	m.setFocus(focusTitle)
	m.autosave.Restart()
}

func (m *Model) setFocus(f int) {
	m.focus = f
	m.title.Blur()
	m.content.Blur()
	if m.locked {
		return
	}
	if f == focusTitle {
		m.title.Focus()
	} else {
		m.content.Focus()
	}
}

// DayKey is the day open in the editor.
func (m Model) DayKey() string {
	return m.dayKey
}

func (m Model) State() SessionState {
	return m.state
}

func (m Model) StatusMessage() string {
	return m.line.Message()
}

func (m Model) ShortHelp() []key.Binding {
	switch m.state {
	case StateAgenda:
		return []key.Binding{m.keys.Enter, m.keys.Edit, m.keys.AddEvent, m.keys.Back, m.keys.Help}
	case StateDetails:
		return []key.Binding{m.keys.Edit, m.keys.Back, m.keys.Help}
	case StateEventForm, StateRestoreForm, StateIntervalForm:
		return []key.Binding{m.keys.Back}
	default:
		return []key.Binding{m.keys.Save, m.keys.Lock, m.keys.Agenda, m.keys.Quit, m.keys.Help}
	}
}

func (m Model) FullHelp() [][]key.Binding {
	global := []key.Binding{m.keys.Quit, m.keys.Help, m.keys.Theme, m.keys.Restore, m.keys.Interval}
	switch m.state {
	case StateAgenda:
		return [][]key.Binding{
			{m.keys.Up, m.keys.Down, m.keys.Left, m.keys.Right},
			{m.keys.PrevMonth, m.keys.NextMonth, m.keys.Today},
			{m.keys.Enter, m.keys.Edit, m.keys.AddEvent, m.keys.Back},
			global,
		}
	case StateDetails:
		return [][]key.Binding{{m.keys.Up, m.keys.Down, m.keys.Edit, m.keys.Back}, global}
	default:
		return [][]key.Binding{
			{m.keys.Save, m.keys.Lock, m.keys.NewEvent},
			{m.keys.Focus, m.keys.Agenda},
			global,
		}
	}
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
