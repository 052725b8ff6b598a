package sched

import (
	"container/heap"
	"time"
)

// Scheduler runs delayed callbacks against a simulation clock. Nothing moves
// until Advance is called, so every timing window is reproducible.
//
// Not safe for concurrent use; the combat loop is single-threaded.
type Scheduler struct {
	now     time.Duration
	seq     uint64
	queue   timerQueue
	stopped bool
}

// Timer is a handle to one scheduled callback.
type Timer struct {
	due       time.Duration
	seq       uint64
	fn        func()
	index     int
	cancelled bool
	fired     bool
}

func New() *Scheduler {
	return &Scheduler{}
}

// Now is the simulation time elapsed since the scheduler was created.
func (s *Scheduler) Now() time.Duration {
	return s.now
}

// After schedules fn to run once d has elapsed. Timers due at the same
// instant run in the order they were scheduled. A stopped scheduler returns
// an inert timer.
func (s *Scheduler) After(d time.Duration, fn func()) *Timer {
	if d < 0 {
		d = 0
	}
	s.seq++
	t := &Timer{due: s.now + d, seq: s.seq, fn: fn, index: -1}
	if s.stopped {
		t.cancelled = true
		return t
	}
	heap.Push(&s.queue, t)
	return t
}

// Advance moves the clock forward by dt, firing due timers in order. The
// clock reads each timer's due time while its callback runs, and callbacks
// may schedule further timers that fall inside the same step.
func (s *Scheduler) Advance(dt time.Duration) {
	if dt < 0 {
		dt = 0
	}
	target := s.now + dt
	for !s.stopped && len(s.queue) > 0 && s.queue[0].due <= target {
		t := heap.Pop(&s.queue).(*Timer)
		if t.cancelled {
			continue
		}
		s.now = t.due
		t.fired = true
		t.fn()
	}
	if target > s.now {
		s.now = target
	}
}

// Pending counts timers that are scheduled and not cancelled.
func (s *Scheduler) Pending() int {
	n := 0
	for _, t := range s.queue {
		if !t.cancelled {
			n++
		}
	}
	return n
}

// CancelAll drops every outstanding timer.
func (s *Scheduler) CancelAll() {
	for _, t := range s.queue {
		t.cancelled = true
	}
	s.queue = s.queue[:0]
}

// Stop cancels everything and refuses new timers. Used to freeze a finished
// encounter; callbacks already on the stack may still try to schedule.
func (s *Scheduler) Stop() {
	s.stopped = true
	s.CancelAll()
}

func (s *Scheduler) Stopped() bool {
	return s.stopped
}

// Cancel prevents the callback from running. It reports whether the timer
// was still pending.
func (t *Timer) Cancel() bool {
	if t == nil || t.cancelled || t.fired {
		return false
	}
	t.cancelled = true
	return true
}

// Active reports whether the timer is still waiting to fire.
func (t *Timer) Active() bool {
	return t != nil && !t.cancelled && !t.fired
}

// Due is the simulation time the timer fires at.
func (t *Timer) Due() time.Duration {
	return t.due
}

type timerQueue []*Timer

func (q timerQueue) Len() int { return len(q) }

func (q timerQueue) Less(i, j int) bool {
	if q[i].due == q[j].due {
		return q[i].seq < q[j].seq
	}
	return q[i].due < q[j].due
}

func (q timerQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].index = i
	q[j].index = j
}

func (q *timerQueue) Push(x any) {
	t := x.(*Timer)
	t.index = len(*q)
	*q = append(*q, t)
}

func (q *timerQueue) Pop() any {
	old := *q
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	t.index = -1
	*q = old[:n-1]
	return t
}
