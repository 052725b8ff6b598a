package systems

import (
	"github.com/automoto/doomerang-duel/bus"
	"github.com/automoto/doomerang-duel/components"
	"github.com/automoto/doomerang-duel/config"
	"github.com/automoto/doomerang-duel/meter"
	"github.com/yohamta/donburi"
)

// Posture is the enemy's break meter. Parries and landed punches wear it
// down; at zero it refills and the enemy is stunned.
type Posture struct {
	c     *Combat
	entry *donburi.Entry
}

// NewPosture returns nil when posture is disabled. entry must carry the
// Posture component.
func NewPosture(c *Combat, entry *donburi.Entry) *Posture {
	if !c.Config.PostureEnabled {
		return nil
	}
	p := &Posture{c: c, entry: entry}
	m := p.meter()
	m.OnChanged = func(current, max int) {
		c.Bus.Publish(bus.PostureChanged{Current: current, Max: max})
	}
	m.OnDepleted = p.broken
	bus.Subscribe(c.Bus, p.onDefenseResult)
	bus.Subscribe(c.Bus, p.onPlayerAttack)
	return p
}

func (p *Posture) meter() *meter.Meter {
	return components.Posture.Get(p.entry)
}

// Start fills the meter for a new encounter.
func (p *Posture) Start() {
	p.meter().Initialize(p.c.Config.MaxPosture)
}

func (p *Posture) Current() int { return p.meter().Current() }
func (p *Posture) Max() int     { return p.meter().Max() }

func (p *Posture) onDefenseResult(m bus.DefenseResult) {
	if m.Result == config.Parry {
		p.meter().Modify(-p.c.Config.PostureDamageOnParry)
	}
}

func (p *Posture) onPlayerAttack(bus.PlayerAttack) {
	p.meter().Modify(-p.c.Config.PostureDamageOnAttack)
}

func (p *Posture) broken() {
	p.meter().Initialize(p.c.Config.MaxPosture)
	p.c.Bus.Publish(bus.PostureBroken{StunDuration: config.Seconds(p.c.Config.PostureStunDuration)})
	notify(p.c, "POSTURE BREAK!", config.EnemyAnchor)
}
