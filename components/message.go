package components

import (
	"time"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/math"
)

// NotificationData is one floating combat text
type NotificationData struct {
	Text     string
	Position math.Vec2 // drifts upward while alive
	Age      time.Duration
	TTL      time.Duration
}

var Notification = donburi.NewComponentType[NotificationData]()
