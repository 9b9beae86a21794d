// Package status keeps the transient one-line message shown under the editor.
package status

import (
	"sync"
	"time"

	"github.com/julianstephens/diario/internal/clock"
	"github.com/julianstephens/diario/internal/constants"
)

// Line holds the current status message. Messages other than
// constants.StatusEditing clear themselves after the clear delay unless
// another message replaced them first.
type Line struct {
	mu       sync.Mutex
	clock    clock.Clock
	delay    time.Duration
	msg      string
	seq      uint64
	timer    clock.Timer
	onChange func(string)
}

func New(clk clock.Clock) *Line {
	if clk == nil {
		clk = clock.New()
	}
	return &Line{clock: clk, delay: constants.StatusClearDelay}
}

// OnChange registers fn to receive every new message, including the empty
// message when the line clears.
func (l *Line) OnChange(fn func(string)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.onChange = fn
}

func (l *Line) Set(msg string) {
	l.mu.Lock()
	l.seq++
	seq := l.seq
	l.msg = msg
	if l.timer != nil {
		l.timer.Stop()
		l.timer = nil
	}
	if msg != "" && msg != constants.StatusEditing {
		l.timer = l.clock.AfterFunc(l.delay, func() { l.clear(seq) })
	}
	fn := l.onChange
	l.mu.Unlock()

	if fn != nil {
		fn(msg)
	}
}

// Saved reports a successful save at t.
func (l *Line) Saved(t time.Time) {
	l.Set(constants.StatusSavedPrefix + t.Format(constants.StatusTimeFormat))
}

func (l *Line) Message() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.msg
}

func (l *Line) clear(seq uint64) {
	l.mu.Lock()
	if seq != l.seq {
		l.mu.Unlock()
		return
	}
	l.msg = ""
	l.timer = nil
	fn := l.onChange
	l.mu.Unlock()

	if fn != nil {
		fn("")
	}
}
