package components

import (
	"time"

	"github.com/yohamta/donburi"
)

// FlashData tracks the hit flash on a fighter sprite
type FlashData struct {
	Remaining time.Duration
	R, G, B   float32 // color multipliers (1,1,1 = white, 1,0.5,0.5 = red tint)
}

var Flash = donburi.NewComponentType[FlashData]()
