package systems

import (
	"time"

	"github.com/automoto/doomerang-duel/components"
	"github.com/yohamta/donburi"
)

// UpdateEffects ticks the hit flashes down by one frame.
func UpdateEffects(w donburi.World, dt time.Duration) {
	components.Flash.Each(w, func(e *donburi.Entry) {
		f := components.Flash.Get(e)
		if f.Remaining > dt {
			f.Remaining -= dt
			return
		}
		f.Remaining = 0
	})
}

// flash tints a fighter sprite for d.
func flash(entry *donburi.Entry, d time.Duration, r, g, b float32) {
	f := components.Flash.Get(entry)
	f.Remaining = d
	f.R, f.G, f.B = r, g, b
}
