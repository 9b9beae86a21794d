package status

import (
	"testing"
	"time"

	"github.com/julianstephens/diario/internal/clock"
	"github.com/julianstephens/diario/internal/constants"
)

func TestMessageClearsAfterDelay(t *testing.T) {
	clk := clock.NewFake(time.Now())
	l := New(clk)

	l.Set(constants.StatusEventSaved)
	clk.Advance(constants.StatusClearDelay - time.Millisecond)
	if l.Message() != constants.StatusEventSaved {
		t.Fatalf("message cleared early: %q", l.Message())
	}
	clk.Advance(time.Millisecond)
	if l.Message() != "" {
		t.Errorf("message not cleared: %q", l.Message())
	}
}

func TestSupersededMessageKeepsNewOne(t *testing.T) {
	clk := clock.NewFake(time.Now())
	l := New(clk)

	l.Set(constants.StatusLocked)
	clk.Advance(2 * time.Second)
	l.Set(constants.StatusUnlocked)
	clk.Advance(2 * time.Second)

	if l.Message() != constants.StatusUnlocked {
		t.Errorf("first message's timer cleared the second: %q", l.Message())
	}
	clk.Advance(time.Second)
	if l.Message() != "" {
		t.Errorf("second message not cleared: %q", l.Message())
	}
}

func TestEditingNeverClears(t *testing.T) {
	clk := clock.NewFake(time.Now())
	l := New(clk)

	l.Set(constants.StatusSavedPrefix + "10:00:00")
	l.Set(constants.StatusEditing)
	clk.Advance(time.Hour)

	if l.Message() != constants.StatusEditing {
		t.Errorf("Message() = %q, want editing", l.Message())
	}
	if clk.Pending() != 0 {
		t.Errorf("pending timers = %d, want 0", clk.Pending())
	}
}

func TestSavedFormatsTime(t *testing.T) {
	l := New(clock.NewFake(time.Now()))
	l.Saved(time.Date(2024, time.March, 5, 14, 7, 9, 0, time.UTC))

	if want := "Salvo automaticamente 14:07:09"; l.Message() != want {
		t.Errorf("Message() = %q, want %q", l.Message(), want)
	}
}

func TestOnChange(t *testing.T) {
	clk := clock.NewFake(time.Now())
	l := New(clk)

	var got []string
	l.OnChange(func(msg string) { got = append(got, msg) })

	l.Set(constants.StatusEntryLoaded)
	clk.Advance(constants.StatusClearDelay)

	if len(got) != 2 || got[0] != constants.StatusEntryLoaded || got[1] != "" {
		t.Errorf("OnChange saw %q", got)
	}
}
