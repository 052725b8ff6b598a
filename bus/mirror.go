package bus

import (
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// FrameMessage carries one bus message through the donburi event queue.
type FrameMessage struct {
	Message Message
}

// FrameEvent queues bus messages on a donburi world for collaborators that
// drain once per rendered frame instead of reacting inline.
var FrameEvent = events.NewEventType[FrameMessage]()

// Mirror copies every message published on b into w's FrameEvent queue.
// Queued messages are delivered by FrameEvent.ProcessEvents(w).
func (b *Bus) Mirror(w donburi.World) func() {
	return b.SubscribeAll(func(m Message) {
		FrameEvent.Publish(w, FrameMessage{Message: m})
	})
}
