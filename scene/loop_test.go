package scene

import (
	"testing"
	"time"
)

func TestFixedStepDue(t *testing.T) {
	clock := newFakeClock()
	f := NewFixedStep(15*time.Millisecond, 5, clock.Now)

	steps := []struct {
		name    string
		advance time.Duration
		want    int
	}{
		{"arms_first", 0, 0},
		{"under_interval", 14 * time.Millisecond, 0},
		{"carries_remainder", time.Millisecond, 1},
		{"several", 45 * time.Millisecond, 3},
		{"partial_kept", 20 * time.Millisecond, 1},
		{"remainder_completes", 10 * time.Millisecond, 1},
		{"clamped", time.Second, 5},
		{"backlog_dropped", 0, 0},
		{"clock_backwards", -time.Second, 0},
	}
	for _, s := range steps {
		t.Run(s.name, func(t *testing.T) {
			clock.Advance(s.advance)
			if got := f.Due(); got != s.want {
				t.Fatalf("expected %d ticks, got %d", s.want, got)
			}
		})
	}
}

func TestFixedStepReset(t *testing.T) {
	clock := newFakeClock()
	f := NewFixedStep(10*time.Millisecond, 0, clock.Now)
	if f.MaxSteps != DefaultMaxSteps {
		t.Fatalf("expected default max steps, got %d", f.MaxSteps)
	}

	f.Reset()
	clock.Advance(25 * time.Millisecond)
	f.Reset()
	clock.Advance(5 * time.Millisecond)
	if got := f.Due(); got != 0 {
		t.Fatalf("reset should drop backlog, got %d ticks", got)
	}
	clock.Advance(5 * time.Millisecond)
	if got := f.Due(); got != 1 {
		t.Fatalf("expected 1 tick, got %d", got)
	}
}
