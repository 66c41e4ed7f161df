package engine

import (
	"testing"
	"time"
)

func TestClockPauseAccounting(t *testing.T) {
	c := NewClock()
	if c.IsPaused() {
		t.Fatal("fresh clock should be running")
	}
	if c.TotalPaused() != 0 {
		t.Fatalf("fresh clock accumulated %v paused time", c.TotalPaused())
	}

	c.Pause()
	if !c.IsPaused() {
		t.Fatal("clock should report paused")
	}
	time.Sleep(20 * time.Millisecond)
	if c.TotalPaused() < 10*time.Millisecond {
		t.Errorf("in-flight pause not counted: %v", c.TotalPaused())
	}

	c.Resume()
	if c.IsPaused() {
		t.Fatal("clock should report running after Resume")
	}
	settled := c.TotalPaused()
	if settled < 10*time.Millisecond {
		t.Errorf("settled pause time %v, want at least 10ms", settled)
	}
	time.Sleep(10 * time.Millisecond)
	if got := c.TotalPaused(); got != settled {
		t.Errorf("paused time advanced from %v to %v while running", settled, got)
	}
}

func TestClockPauseResumeIdempotent(t *testing.T) {
	c := NewClock()
	c.Resume() // resume while running is a no-op
	c.Pause()
	c.Pause() // double pause must not reset the pause start
	time.Sleep(10 * time.Millisecond)
	c.Resume()
	c.Resume()
	if c.TotalPaused() < 5*time.Millisecond {
		t.Errorf("double pause lost accounting: %v", c.TotalPaused())
	}
}
