package scene

import "time"

// DefaultMaxSteps caps how many physics ticks one Update may run.
const DefaultMaxSteps = 5

// FixedStep converts elapsed wall time into a count of fixed-length physics
// ticks. Backlog beyond MaxSteps ticks is dropped.
type FixedStep struct {
	Interval time.Duration
	MaxSteps int

	now   func() time.Time
	last  time.Time
	acc   time.Duration
	armed bool
}

// NewFixedStep returns an unarmed accumulator. now defaults to time.Now,
// whose readings carry the monotonic clock.
func NewFixedStep(interval time.Duration, maxSteps int, now func() time.Time) *FixedStep {
	if now == nil {
		now = time.Now
	}
	if maxSteps <= 0 {
		maxSteps = DefaultMaxSteps
	}
	return &FixedStep{Interval: interval, MaxSteps: maxSteps, now: now}
}

// Reset restarts timing from now and forgets any backlog.
func (f *FixedStep) Reset() {
	f.last = f.now()
	f.acc = 0
	f.armed = true
}

// Due reports how many ticks are owed since the previous call. The first call
// on an unarmed accumulator arms it and returns 0.
func (f *FixedStep) Due() int {
	if !f.armed || f.Interval <= 0 {
		f.Reset()
		return 0
	}

	t := f.now()
	if elapsed := t.Sub(f.last); elapsed > 0 {
		f.acc += elapsed
	}
	f.last = t

	n := int(f.acc / f.Interval)
	if n > f.MaxSteps {
		f.acc = 0
		return f.MaxSteps
	}
	f.acc -= time.Duration(n) * f.Interval
	return n
}
