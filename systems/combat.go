package systems

import (
	"context"
	"errors"
	"math/rand"
	"time"

	"github.com/automoto/doomerang-duel/bus"
	"github.com/automoto/doomerang-duel/components"
	"github.com/automoto/doomerang-duel/config"
	"github.com/automoto/doomerang-duel/meter"
	"github.com/automoto/doomerang-duel/sched"
	"github.com/looplab/fsm"
	"github.com/yohamta/donburi"
)

// Combat bundles what every combat system of one encounter shares. It is
// built by the session and discarded with it.
type Combat struct {
	World  donburi.World
	Bus    *bus.Bus
	Sched  *sched.Scheduler
	Config config.CombatConfig
	Rand   *rand.Rand

	// Defeated is called when a fighter's energy first reaches zero.
	Defeated func(config.Fighter)
}

// Fighter is the capability both sides of the duel share.
type Fighter interface {
	Kind() config.Fighter
	Entry() *donburi.Entry
	Energy() *meter.Meter
	ReceiveDamage(amount int)
}

// Opponent is the player's view of the enemy.
type Opponent interface {
	Fighter
	IsStunned() bool
}

// FSM event names shared by both fighters.
const (
	evRecover = "recover"
	evDefeat  = "defeat"
)

// fire runs a transition on the entry's machine and stamps the entry time.
// Illegal events report false and leave the state untouched; a self
// transition counts as success.
func (c *Combat) fire(entry *donburi.Entry, event string) bool {
	st := components.State.Get(entry)
	prev := st.Current()
	if err := st.Machine.Event(context.Background(), event); err != nil {
		var noop fsm.NoTransitionError
		if !errors.As(err, &noop) {
			return false
		}
	}
	st.Previous = prev
	st.EnteredAt = c.Sched.Now()
	return true
}

func (c *Combat) can(entry *donburi.Entry, event string) bool {
	return components.State.Get(entry).Machine.Can(event)
}

func stateOf(entry *donburi.Entry) config.StateID {
	return components.State.Get(entry).Current()
}

// wireEnergy publishes energy changes and routes the first depletion to
// onDepleted.
func (c *Combat) wireEnergy(entry *donburi.Entry, onDepleted func()) {
	kind := components.Fighter.Get(entry).Kind
	m := components.Energy.Get(entry)
	m.OnChanged = func(current, max int) {
		c.Bus.Publish(bus.EnergyChanged{Fighter: kind, Current: current, Max: max})
	}
	m.OnDepleted = onDepleted
}

// between draws a duration uniformly from [min, max] seconds.
func (c *Combat) between(min, max float64) time.Duration {
	if max <= min {
		return config.Seconds(min)
	}
	return config.Seconds(min + c.Rand.Float64()*(max-min))
}
