// Package autosave runs the two autosave timers: a debounce timer restarted
// on every edit and a periodic timer driven by the autosave interval setting.
package autosave

import (
	"sync"
	"time"

	"github.com/julianstephens/diario/internal/clock"
	"github.com/julianstephens/diario/internal/constants"
	"github.com/julianstephens/diario/internal/logger"
)

// Trigger says which timer caused a save.
type Trigger int

const (
	TriggerDebounce Trigger = iota
	TriggerPeriodic
)

func (t Trigger) String() string {
	switch t {
	case TriggerDebounce:
		return "debounce"
	case TriggerPeriodic:
		return "periodic"
	default:
		return "unknown"
	}
}

type SaveFunc func(Trigger)

type Scheduler struct {
	mu       sync.Mutex
	saveMu   sync.Mutex
	clock    clock.Clock
	save     SaveFunc
	delay    time.Duration
	interval time.Duration

	debounce clock.Timer
	periodic clock.Timer
	// generation invalidates periodic callbacks that were already due when
	// their timer was replaced.
	generation uint64
	stopped    bool
}

// New creates a scheduler and installs the periodic timer. intervalMs <= 0
// disables periodic saves.
func New(clk clock.Clock, intervalMs int, save SaveFunc) *Scheduler {
	if clk == nil {
		clk = clock.New()
	}
	s := &Scheduler{
		clock:    clk,
		save:     save,
		delay:    constants.DebounceDelay,
		interval: msToDuration(intervalMs),
	}
	s.mu.Lock()
	s.armPeriodicLocked()
	s.mu.Unlock()
	return s
}

// Touch records an edit: the pending debounce save is pushed back by the
// debounce delay.
func (s *Scheduler) Touch() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped {
		return
	}
	if s.debounce != nil {
		s.debounce.Stop()
	}
	var t clock.Timer
	t = s.clock.AfterFunc(s.delay, func() {
		s.mu.Lock()
		if s.stopped || s.debounce != t {
			s.mu.Unlock()
			return
		}
		s.debounce = nil
		s.mu.Unlock()
		s.fire(TriggerDebounce)
	})
	s.debounce = t
}

// Pending reports whether a debounce save is waiting.
func (s *Scheduler) Pending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.debounce != nil
}

// SetInterval replaces the periodic timer. At most one periodic timer is live.
func (s *Scheduler) SetInterval(ms int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.interval = msToDuration(ms)
	if s.stopped {
		return
	}
	s.armPeriodicLocked()
	logger.Debug("Autosave interval changed", "interval", s.interval)
}

func (s *Scheduler) Interval() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.interval
}

// Restart drops the pending debounce save and reinstalls the periodic timer.
// Used when a different day is opened or the document is replaced.
func (s *Scheduler) Restart() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopped = false
	s.cancelDebounceLocked()
	s.armPeriodicLocked()
}

// Cancel drops the pending debounce save, if any.
func (s *Scheduler) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cancelDebounceLocked()
}

// Flush runs a pending debounce save immediately.
func (s *Scheduler) Flush() {
	s.mu.Lock()
	pending := s.debounce != nil && !s.stopped
	s.cancelDebounceLocked()
	s.mu.Unlock()

	if pending {
		s.fire(TriggerDebounce)
	}
}

// Stop cancels both timers. Touch is ignored until Restart.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopped = true
	s.cancelDebounceLocked()
	s.cancelPeriodicLocked()
}

func (s *Scheduler) cancelDebounceLocked() {
	if s.debounce != nil {
		s.debounce.Stop()
		s.debounce = nil
	}
}

func (s *Scheduler) cancelPeriodicLocked() {
	s.generation++
	if s.periodic != nil {
		s.periodic.Stop()
		s.periodic = nil
	}
}

func (s *Scheduler) armPeriodicLocked() {
	s.cancelPeriodicLocked()
	if s.interval <= 0 {
		return
	}
	s.schedulePeriodicLocked(s.generation)
}

func (s *Scheduler) schedulePeriodicLocked(gen uint64) {
	s.periodic = s.clock.AfterFunc(s.interval, func() {
		s.mu.Lock()
		if s.stopped || gen != s.generation {
			s.mu.Unlock()
			return
		}
		s.schedulePeriodicLocked(gen)
		s.mu.Unlock()
		s.fire(TriggerPeriodic)
	})
}

func (s *Scheduler) fire(trigger Trigger) {
	s.saveMu.Lock()
	defer s.saveMu.Unlock()
	if s.save != nil {
		s.save(trigger)
	}
}

func msToDuration(ms int) time.Duration {
	if ms <= 0 {
		return 0
	}
	return time.Duration(ms) * time.Millisecond
}
