package clock

import (
	"testing"
	"time"
)

func TestFakeAdvanceFiresInOrder(t *testing.T) {
	clk := NewFake(time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC))

	var fired []string
	clk.AfterFunc(3*time.Second, func() { fired = append(fired, "c") })
	clk.AfterFunc(1*time.Second, func() { fired = append(fired, "a") })
	clk.AfterFunc(2*time.Second, func() { fired = append(fired, "b") })

	clk.Advance(2 * time.Second)
	if len(fired) != 2 || fired[0] != "a" || fired[1] != "b" {
		t.Fatalf("fired = %v, want [a b]", fired)
	}

	clk.Advance(time.Second)
	if len(fired) != 3 || fired[2] != "c" {
		t.Fatalf("fired = %v, want [a b c]", fired)
	}
	if clk.Pending() != 0 {
		t.Errorf("Pending() = %d, want 0", clk.Pending())
	}
}

func TestFakeStop(t *testing.T) {
	clk := NewFake(time.Now())

	called := false
	timer := clk.AfterFunc(time.Second, func() { called = true })
	if !timer.Stop() {
		t.Fatal("Stop() = false for a pending timer")
	}
	if timer.Stop() {
		t.Error("second Stop() = true, want false")
	}

	clk.Advance(time.Minute)
	if called {
		t.Error("stopped timer fired")
	}
}

func TestFakeCallbackCanReschedule(t *testing.T) {
	start := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	clk := NewFake(start)

	var times []time.Time
	var tick func()
	tick = func() {
		times = append(times, clk.Now())
		clk.AfterFunc(time.Second, tick)
	}
	clk.AfterFunc(time.Second, tick)

	clk.Advance(3500 * time.Millisecond)
	if len(times) != 3 {
		t.Fatalf("ticks = %d, want 3", len(times))
	}
	for i, got := range times {
		want := start.Add(time.Duration(i+1) * time.Second)
		if !got.Equal(want) {
			t.Errorf("tick %d at %v, want %v", i, got, want)
		}
	}
	if !clk.Now().Equal(start.Add(3500 * time.Millisecond)) {
		t.Errorf("Now() = %v after advance", clk.Now())
	}
}
