package systems

import (
	"sort"
	"strconv"
	"time"

	"github.com/automoto/doomerang-duel/archetypes"
	"github.com/automoto/doomerang-duel/bus"
	"github.com/automoto/doomerang-duel/components"
	"github.com/automoto/doomerang-duel/config"
	"github.com/automoto/doomerang-duel/tags"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/math"
)

func notify(c *Combat, text string, at math.Vec2) {
	c.Bus.Publish(bus.Notification{Text: text, Position: at})
}

func damageText(damage int) string {
	return "-" + strconv.Itoa(damage)
}

// SpawnNotification turns a notification message into a floating text entity.
func SpawnNotification(w donburi.World, cfg config.CombatConfig, n bus.Notification) *donburi.Entry {
	e := archetypes.Notification.Spawn(w)
	data := components.Notification.Get(e)
	data.Text = n.Text
	data.Position = n.Position
	data.TTL = config.Seconds(cfg.NotificationDuration)
	return e
}

// UpdateNotifications floats the active texts upward and removes expired ones.
func UpdateNotifications(w donburi.World, cfg config.CombatConfig, dt time.Duration) {
	var expired []*donburi.Entry

	tags.Notification.Each(w, func(e *donburi.Entry) {
		n := components.Notification.Get(e)
		n.Age += dt
		n.Position.Y += cfg.NotificationFloatSpeed * dt.Seconds()
		if n.Age >= n.TTL {
			expired = append(expired, e)
		}
	})

	for _, e := range expired {
		e.Remove()
	}
}

// ActiveNotifications lists the texts still on screen, oldest first.
func ActiveNotifications(w donburi.World) []components.NotificationData {
	var out []components.NotificationData
	tags.Notification.Each(w, func(e *donburi.Entry) {
		out = append(out, *components.Notification.Get(e))
	})
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Age > out[j].Age
	})
	return out
}
