package bus

// Bus is a synchronous, typed publish/subscribe channel. Publish delivers to
// every matching subscriber in registration order before it returns; a
// handler that publishes dispatches the nested message depth-first.
//
// A Bus belongs to one combat session and is discarded with it.
type Bus struct {
	subs   []*subscription
	nextID int
	closed bool
}

type subscription struct {
	id      int
	deliver func(Message)
	removed bool
}

func New() *Bus {
	return &Bus{}
}

// Subscribe registers fn for messages of type T and returns a func that
// removes it.
func Subscribe[T Message](b *Bus, fn func(T)) func() {
	return b.add(func(m Message) {
		if msg, ok := m.(T); ok {
			fn(msg)
		}
	})
}

// SubscribeAll registers fn for every message.
func (b *Bus) SubscribeAll(fn func(Message)) func() {
	return b.add(fn)
}

// Publish delivers m. Publishing on a closed bus does nothing.
func (b *Bus) Publish(m Message) {
	if b.closed {
		return
	}
	// Subscribers added during dispatch see only later messages.
	subs := b.subs
	for _, s := range subs {
		if b.closed {
			return
		}
		if s.removed {
			continue
		}
		s.deliver(m)
	}
}

// Close drops every subscriber and silences later publishes.
func (b *Bus) Close() {
	b.closed = true
	for _, s := range b.subs {
		s.removed = true
	}
	b.subs = nil
}

func (b *Bus) Closed() bool {
	return b.closed
}

func (b *Bus) add(fn func(Message)) func() {
	if b.closed {
		return func() {}
	}
	b.nextID++
	s := &subscription{id: b.nextID, deliver: fn}
	b.subs = append(b.subs, s)
	return func() { b.remove(s.id) }
}

func (b *Bus) remove(id int) {
	for i, s := range b.subs {
		if s.id == id {
			s.removed = true
			// Copy so an in-flight Publish keeps iterating its own slice.
			next := make([]*subscription, 0, len(b.subs)-1)
			next = append(next, b.subs[:i]...)
			b.subs = append(next, b.subs[i+1:]...)
			return
		}
	}
}
