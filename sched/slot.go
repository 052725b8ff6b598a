package sched

import "time"

// Slot holds the single active continuation of one state machine. Setting a
// new continuation cancels the previous one, so a stale callback can never
// run after a transition.
type Slot struct {
	s *Scheduler
	t *Timer
}

func NewSlot(s *Scheduler) *Slot {
	return &Slot{s: s}
}

// Set replaces the pending continuation.
func (sl *Slot) Set(d time.Duration, fn func()) {
	sl.Cancel()
	sl.t = sl.s.After(d, fn)
}

// Cancel drops the pending continuation, if any.
func (sl *Slot) Cancel() {
	if sl.t != nil {
		sl.t.Cancel()
		sl.t = nil
	}
}

// Active reports whether a continuation is waiting.
func (sl *Slot) Active() bool {
	return sl.t.Active()
}

// Remaining is the time left until the continuation fires, or zero.
func (sl *Slot) Remaining() time.Duration {
	if !sl.Active() {
		return 0
	}
	return sl.t.due - sl.s.now
}
