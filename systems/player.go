package systems

import (
	"math"

	"github.com/automoto/doomerang-duel/bus"
	"github.com/automoto/doomerang-duel/components"
	"github.com/automoto/doomerang-duel/config"
	"github.com/automoto/doomerang-duel/meter"
	"github.com/automoto/doomerang-duel/sched"
	"github.com/looplab/fsm"
	"github.com/yohamta/donburi"
)

const (
	evParry = "parry"
	evBlock = "block"
	evDodge = "dodge"
	evPunch = "punch"
)

func newPlayerMachine() *fsm.FSM {
	return fsm.NewFSM(
		config.Idle,
		fsm.Events{
			{Name: evParry, Src: []string{config.Idle}, Dst: config.Parrying},
			{Name: evBlock, Src: []string{config.Parrying}, Dst: config.Blocking},
			{Name: evDodge, Src: []string{config.Idle}, Dst: config.Dodging},
			{Name: evPunch, Src: []string{config.Idle}, Dst: config.Punching},
			{Name: evRecover, Src: []string{config.Parrying, config.Blocking, config.Dodging, config.Punching}, Dst: config.Idle},
			{Name: evDefeat, Src: []string{config.Idle, config.Parrying, config.Blocking, config.Dodging, config.Punching}, Dst: config.Defeated},
		},
		fsm.Callbacks{},
	)
}

// PlayerCombat is the player's state machine. Commands that are illegal in
// the current state are ignored.
type PlayerCombat struct {
	c     *Combat
	entry *donburi.Entry
	slot  *sched.Slot
	enemy Opponent
	crit  *CritMeter
}

// NewPlayerCombat attaches the player machine to entry and subscribes it to
// landed enemy attacks. crit may be nil when the crit meter is disabled.
func NewPlayerCombat(c *Combat, entry *donburi.Entry, enemy Opponent, crit *CritMeter) *PlayerCombat {
	p := &PlayerCombat{
		c:     c,
		entry: entry,
		slot:  sched.NewSlot(c.Sched),
		enemy: enemy,
		crit:  crit,
	}

	fighter := components.Fighter.Get(entry)
	fighter.Kind = config.PlayerFighter
	fighter.Anchor = config.PlayerAnchor
	components.State.Get(entry).Machine = newPlayerMachine()

	c.wireEnergy(entry, p.defeat)
	bus.Subscribe(c.Bus, p.onAttackLand)
	return p
}

// Start fills the energy pool for a new encounter.
func (p *PlayerCombat) Start() {
	p.Energy().Initialize(p.c.Config.PlayerStartingEnergy)
}

func (p *PlayerCombat) Kind() config.Fighter     { return config.PlayerFighter }
func (p *PlayerCombat) Entry() *donburi.Entry    { return p.entry }
func (p *PlayerCombat) Energy() *meter.Meter     { return components.Energy.Get(p.entry) }
func (p *PlayerCombat) State() config.StateID    { return stateOf(p.entry) }
func (p *PlayerCombat) Crit() *CritMeter         { return p.crit }
func (p *PlayerCombat) ReceiveDamage(amount int) { p.Energy().Modify(-amount) }

// ParryPress opens a parry window in direction d.
func (p *PlayerCombat) ParryPress(d config.Direction) {
	if !d.Valid() || !p.c.fire(p.entry, evParry) {
		return
	}
	data := components.Player.Get(p.entry)
	data.ParryDirection = d
	data.ParryHeld = true
	p.slot.Set(config.Seconds(p.c.Config.ParryWindowDuration), p.parryWindowClosed)
}

// ParryRelease lets go of the parry button, ending a block.
func (p *PlayerCombat) ParryRelease() {
	components.Player.Get(p.entry).ParryHeld = false
	if p.State() == config.Blocking {
		p.recover()
	}
}

func (p *PlayerCombat) parryWindowClosed() {
	if p.c.Config.BlockEnabled && components.Player.Get(p.entry).ParryHeld {
		if p.c.fire(p.entry, evBlock) {
			p.c.Bus.Publish(bus.BlockActivated{})
		}
		return
	}
	p.recover()
}

// Dodge avoids the next landed attack for the dodge duration.
func (p *PlayerCombat) Dodge() {
	cfg := p.c.Config
	if !cfg.DodgeEnabled || !p.c.can(p.entry, evDodge) || !p.Energy().HasAtLeast(cfg.DodgeEnergyCost) {
		return
	}
	p.c.fire(p.entry, evDodge)
	p.slot.Set(config.Seconds(cfg.DodgeDuration), p.recover)
	p.Energy().Modify(-cfg.DodgeEnergyCost)
}

// Punch attacks the enemy. A ready crit meter turns it into a crit when
// auto activation is on.
func (p *PlayerCombat) Punch() {
	cfg := p.c.Config
	data := components.Player.Get(p.entry)
	if !p.c.can(p.entry, evPunch) || p.c.Sched.Now() < data.CooldownUntil {
		return
	}
	if cfg.AttackEnergyCost > 0 && !p.Energy().HasAtLeast(cfg.AttackEnergyCost) {
		return
	}

	p.c.fire(p.entry, evPunch)
	data.CooldownUntil = p.c.Sched.Now() + config.Seconds(cfg.AttackCooldown)
	p.slot.Set(config.Seconds(cfg.PunchDuration), p.recover)
	if cfg.AttackEnergyCost > 0 {
		p.Energy().Modify(-cfg.AttackEnergyCost)
		if p.State() == config.Defeated {
			return
		}
	}

	damage, text := cfg.AttackDamage, "PUNCH!"
	switch {
	case p.crit != nil && cfg.CritAutoActivate && p.crit.Ready():
		damage, text = cfg.CritDamage, "CRIT!"
		p.crit.Consume()
		if cfg.CritRestoresEnergy {
			p.Energy().Modify(cfg.CritEnergyRestore)
		}
	case data.CritArmed && p.enemy.IsStunned():
		data.CritArmed = false
		if cfg.AttackDuringStunWithCritRefillsEnergy {
			p.Energy().Modify(cfg.StunAttackEnergyRefill)
		}
	}

	notify(p.c, text, config.PlayerAnchor)
	p.c.Bus.Publish(bus.PlayerAttack{Damage: damage})
}

// ActivateCrit spends a ready crit meter by hand. It deals no damage; the
// next punch on a stunned enemy may refill energy instead.
func (p *PlayerCombat) ActivateCrit() {
	cfg := p.c.Config
	if p.crit == nil || cfg.CritAutoActivate || p.State() == config.Defeated || !p.crit.Ready() {
		return
	}
	p.crit.Consume()
	components.Player.Get(p.entry).CritArmed = true
	if cfg.CritRestoresEnergy {
		p.Energy().Modify(cfg.CritEnergyRestore)
	}
	notify(p.c, "CRIT!", config.PlayerAnchor)
}

// onAttackLand classifies a landed enemy attack against the state the
// player is in at the moment of delivery.
func (p *PlayerCombat) onAttackLand(m bus.AttackLand) {
	state := p.State()
	if state == config.Defeated {
		return
	}
	data := components.Player.Get(p.entry)

	switch {
	case state == config.Parrying && data.ParryDirection == m.Direction:
		p.parried(m.Direction)
	case state == config.Blocking:
		p.blocked(m.Direction)
	case state == config.Dodging:
		p.c.Bus.Publish(bus.DefenseResult{Result: config.Dodge, Direction: m.Direction})
		notify(p.c, "DODGE!", config.PlayerAnchor)
	default:
		// Result first: a fatal hit must precede the defeat it causes.
		p.c.Bus.Publish(bus.DefenseResult{Result: config.Hit, Direction: m.Direction})
		notify(p.c, "HIT!", config.PlayerAnchor)
		p.hit(m.Direction, p.c.Config.EnemyAttackDamage)
	}
}

func (p *PlayerCombat) parried(d config.Direction) {
	cfg := p.c.Config
	if cfg.ParryRefillsEnergy {
		p.Energy().Modify(cfg.ParryEnergyRefill)
	}
	p.c.Bus.Publish(bus.DefenseResult{Result: config.Parry, Direction: d})
	notify(p.c, "PARRY!", config.PlayerAnchor)
	if cfg.ParryDrainsEnemyEnergy && p.enemy.Energy().Current() > 0 {
		p.enemy.ReceiveDamage(cfg.ParryEnemyEnergyDrain)
	}
}

func (p *PlayerCombat) blocked(d config.Direction) {
	cfg := p.c.Config
	p.c.Bus.Publish(bus.DefenseResult{Result: config.Hit, Direction: d})
	notify(p.c, "BLOCK!", config.PlayerAnchor)
	if p.crit != nil {
		p.crit.OnBlockPerformed()
	}
	p.hit(d, blockedDamage(cfg.EnemyAttackDamage, cfg.BlockDamageReduction))
}

func (p *PlayerCombat) hit(_ config.Direction, damage int) {
	p.ReceiveDamage(damage)
	flash(p.entry, config.Seconds(p.c.Config.HitFlashDuration), 1, 0.5, 0.5)
}

// blockedDamage rounds the reduced damage and never lets a block absorb a
// whole hit.
func blockedDamage(damage int, reduction float64) int {
	if damage <= 0 {
		return 0
	}
	reduced := int(math.Round(float64(damage) * (1 - reduction)))
	if reduced < 1 {
		return 1
	}
	return reduced
}

func (p *PlayerCombat) recover() {
	p.c.fire(p.entry, evRecover)
}

func (p *PlayerCombat) defeat() {
	p.slot.Cancel()
	p.c.fire(p.entry, evDefeat)
	components.Player.Get(p.entry).ParryHeld = false
	if p.c.Defeated != nil {
		p.c.Defeated(config.PlayerFighter)
	}
}
