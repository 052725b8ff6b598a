package systems

import (
	"github.com/automoto/doomerang-duel/bus"
	"github.com/automoto/doomerang-duel/components"
	"github.com/automoto/doomerang-duel/config"
	"github.com/automoto/doomerang-duel/meter"
	"github.com/yohamta/donburi"
)

// CritMeter is the player's critical meter. It fills from parries and
// landed punches. Once full it stays ready, even through defensive
// decreases, and ignores further gains until consumed.
type CritMeter struct {
	c     *Combat
	entry *donburi.Entry
	ready bool
}

// NewCritMeter returns nil when the crit meter is disabled. entry must carry
// the Crit component.
func NewCritMeter(c *Combat, entry *donburi.Entry) *CritMeter {
	if !c.Config.CritMeterEnabled {
		return nil
	}
	cm := &CritMeter{c: c, entry: entry}
	cm.meter().OnChanged = func(current, max int) {
		c.Bus.Publish(bus.CritMeterChanged{Current: current, Max: max})
	}
	bus.Subscribe(c.Bus, cm.onDefenseResult)
	bus.Subscribe(c.Bus, cm.onPlayerAttack)
	return cm
}

func (cm *CritMeter) meter() *meter.Meter {
	return components.Crit.Get(cm.entry)
}

// Start empties the meter for a new encounter.
func (cm *CritMeter) Start() {
	cm.ready = false
	cm.meter().Reset(cm.c.Config.CritMeterMax, 0)
}

func (cm *CritMeter) Current() int { return cm.meter().Current() }
func (cm *CritMeter) Max() int     { return cm.meter().Max() }

// Ready reports whether the meter has filled since it was last consumed.
func (cm *CritMeter) Ready() bool {
	return cm.ready
}

// Consume zeroes the meter and announces the crit.
func (cm *CritMeter) Consume() {
	cm.ready = false
	cm.meter().Reset(cm.c.Config.CritMeterMax, 0)
	cm.c.Bus.Publish(bus.CritActivated{})
}

// OnBlockPerformed is called by the player when a block absorbs a hit.
func (cm *CritMeter) OnBlockPerformed() {
	if cm.c.Config.CritDecreasesOnDefensive {
		cm.add(-cm.c.Config.CritDecreaseAmount)
	}
}

func (cm *CritMeter) add(amount int) {
	if amount == 0 || (amount > 0 && cm.ready) {
		return
	}
	cm.meter().Modify(amount)
	if amount > 0 && cm.meter().IsFull() {
		cm.ready = true
		notify(cm.c, "CRIT READY!", config.PlayerAnchor)
	}
}

func (cm *CritMeter) onDefenseResult(m bus.DefenseResult) {
	switch {
	case m.Result == config.Parry:
		cm.add(cm.c.Config.CritMeterGainOnParry)
	case m.Result == config.Dodge && cm.c.Config.CritDecreasesOnDefensive:
		cm.add(-cm.c.Config.CritDecreaseAmount)
	}
}

func (cm *CritMeter) onPlayerAttack(bus.PlayerAttack) {
	cm.add(cm.c.Config.CritMeterGainOnAttack)
}
