package archetypes

import (
	"github.com/automoto/doomerang-duel/components"
	"github.com/automoto/doomerang-duel/tags"
	"github.com/yohamta/donburi"
)

var (
	Player = newArchetype(
		tags.Player,
		components.Fighter,
		components.Player,
		components.Energy,
		components.State,
		components.Flash,
	)
	Enemy = newArchetype(
		tags.Enemy,
		components.Fighter,
		components.Enemy,
		components.Energy,
		components.State,
		components.Telegraph,
		components.Flash,
	)
	Notification = newArchetype(
		tags.Notification,
		components.Notification,
	)
)

type archetype struct {
	components []donburi.IComponentType
}

func newArchetype(cs ...donburi.IComponentType) *archetype {
	return &archetype{
		components: cs,
	}
}

// Spawn creates an entity with the archetype's components plus any extras,
// such as the optional posture or crit meter.
func (a *archetype) Spawn(w donburi.World, cs ...donburi.IComponentType) *donburi.Entry {
	all := make([]donburi.IComponentType, 0, len(a.components)+len(cs))
	all = append(all, a.components...)
	all = append(all, cs...)
	return w.Entry(w.Create(all...))
}
