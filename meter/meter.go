package meter

// Meter is a bounded integer pool. The invariant 0 <= current <= max holds
// after every call; out-of-range deltas saturate.
type Meter struct {
	current int
	max     int
	tripped bool

	// OnChanged fires after every Initialize, Reset and Modify.
	OnChanged func(current, max int)
	// OnDepleted fires once per trip to zero.
	OnDepleted func()
}

// New returns a full meter of the given capacity with no callbacks attached.
func New(max int) *Meter {
	m := &Meter{}
	m.set(max, max)
	return m
}

// Initialize fills the meter to max and re-arms depletion.
func (m *Meter) Initialize(max int) {
	m.Reset(max, max)
}

// Reset sets capacity and level. current is clamped into range.
func (m *Meter) Reset(max, current int) {
	m.set(max, current)
	m.tripped = m.current == 0
	m.changed()
}

// Modify applies a signed delta with saturation.
func (m *Meter) Modify(delta int) {
	m.current = clamp(m.current+delta, 0, m.max)
	m.changed()

	if m.current == 0 {
		if !m.tripped {
			m.tripped = true
			if m.OnDepleted != nil {
				m.OnDepleted()
			}
		}
		return
	}
	m.tripped = false
}

// HasAtLeast reports whether the pool can afford n.
func (m *Meter) HasAtLeast(n int) bool {
	return m.current >= n
}

func (m *Meter) Current() int { return m.current }
func (m *Meter) Max() int     { return m.max }

func (m *Meter) IsDepleted() bool {
	return m.current == 0
}

func (m *Meter) IsFull() bool {
	return m.current == m.max
}

func (m *Meter) set(max, current int) {
	if max < 0 {
		max = 0
	}
	m.max = max
	m.current = clamp(current, 0, max)
}

func (m *Meter) changed() {
	if m.OnChanged != nil {
		m.OnChanged(m.current, m.max)
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
