package systems

import (
	"time"

	"github.com/automoto/doomerang-duel/bus"
	"github.com/automoto/doomerang-duel/components"
	"github.com/automoto/doomerang-duel/config"
	"github.com/automoto/doomerang-duel/meter"
	"github.com/automoto/doomerang-duel/sched"
	"github.com/looplab/fsm"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
	"github.com/yohamta/donburi"
)

const (
	evTelegraph = "telegraph"
	evAttack    = "attack"
	evStun      = "stun"
)

func newEnemyMachine() *fsm.FSM {
	return fsm.NewFSM(
		config.Idle,
		fsm.Events{
			{Name: evTelegraph, Src: []string{config.Idle}, Dst: config.Telegraphing},
			{Name: evAttack, Src: []string{config.Telegraphing}, Dst: config.Attacking},
			{Name: evRecover, Src: []string{config.Attacking, config.Stunned}, Dst: config.Idle},
			{Name: evStun, Src: []string{config.Idle, config.Telegraphing, config.Attacking, config.Stunned}, Dst: config.Stunned},
			{Name: evDefeat, Src: []string{config.Idle, config.Telegraphing, config.Attacking, config.Stunned}, Dst: config.Defeated},
		},
		fsm.Callbacks{},
	)
}

// EnemyCombat is the enemy's telegraph/attack/stun loop. Every wait runs
// through one slot, so a stun or defeat drops whatever was in flight.
type EnemyCombat struct {
	c     *Combat
	entry *donburi.Entry
	slot  *sched.Slot
}

// NewEnemyCombat attaches the enemy machine to entry. Subscribe it before
// the posture meter so a posture break stun overrides the parry stun.
func NewEnemyCombat(c *Combat, entry *donburi.Entry) *EnemyCombat {
	e := &EnemyCombat{
		c:     c,
		entry: entry,
		slot:  sched.NewSlot(c.Sched),
	}

	fighter := components.Fighter.Get(entry)
	fighter.Kind = config.EnemyFighter
	fighter.Anchor = config.EnemyAnchor
	components.State.Get(entry).Machine = newEnemyMachine()

	c.wireEnergy(entry, e.defeat)
	bus.Subscribe(c.Bus, e.onDefenseResult)
	bus.Subscribe(c.Bus, e.onPlayerAttack)
	bus.Subscribe(c.Bus, e.onPostureBroken)
	return e
}

// Start fills the energy pool for a new encounter.
func (e *EnemyCombat) Start() {
	e.Energy().Initialize(e.c.Config.EnemyStartingEnergy)
}

func (e *EnemyCombat) Kind() config.Fighter     { return config.EnemyFighter }
func (e *EnemyCombat) Entry() *donburi.Entry    { return e.entry }
func (e *EnemyCombat) Energy() *meter.Meter     { return components.Energy.Get(e.entry) }
func (e *EnemyCombat) State() config.StateID    { return stateOf(e.entry) }
func (e *EnemyCombat) IsStunned() bool          { return e.State() == config.Stunned }
func (e *EnemyCombat) ReceiveDamage(amount int) { e.Energy().Modify(-amount) }

// TelegraphIntensity is the color-fade progress of the current telegraph,
// 0 when it appears and 1 when the attack lands.
func (e *EnemyCombat) TelegraphIntensity() float32 {
	t := components.Telegraph.Get(e.entry)
	if !t.Active {
		return 0
	}
	return t.Intensity
}

// Begin starts the attack loop after the initial delay.
func (e *EnemyCombat) Begin() {
	e.slot.Set(config.Seconds(e.c.Config.EnemyInitialDelay), e.cooldown)
}

func (e *EnemyCombat) cooldown() {
	cfg := e.c.Config
	e.slot.Set(e.c.between(cfg.EnemyAttackCooldownMin, cfg.EnemyAttackCooldownMax), e.attack)
}

func (e *EnemyCombat) attack() {
	if e.State() != config.Idle {
		e.cooldown()
		return
	}
	if combo, ok := e.pickCombo(); ok {
		e.comboStep(combo, 0)
		return
	}

	cfg := e.c.Config
	dir := config.Directions[e.c.Rand.Intn(len(config.Directions))]
	dur := e.c.between(cfg.TelegraphDurationMin, cfg.TelegraphDurationMax)
	e.telegraph(dir, dur, func() {
		e.land(dir, config.Seconds(cfg.EnemyPostAttackWindow), func() {
			e.recover()
			e.cooldown()
		})
	})
}

// pickCombo rolls combo_chance among the enabled combos.
func (e *EnemyCombat) pickCombo() (config.Combo, bool) {
	cfg := e.c.Config
	if !cfg.CombosEnabled {
		return config.Combo{}, false
	}
	enabled := cfg.EnabledCombos()
	if len(enabled) == 0 || e.c.Rand.Float64() >= cfg.ComboChance {
		return config.Combo{}, false
	}
	return enabled[e.c.Rand.Intn(len(enabled))], true
}

func (e *EnemyCombat) comboStep(combo config.Combo, i int) {
	data := components.Enemy.Get(e.entry)
	data.Combo = combo.Name
	data.ComboIndex = i
	data.ComboLength = len(combo.Attacks)

	a := combo.Attacks[i]
	post := config.Seconds(e.c.Config.ComboPostAttackWindow)
	e.telegraph(a.Direction, config.Seconds(a.TelegraphDuration), func() {
		e.land(a.Direction, post, func() {
			e.recover()
			if i == len(combo.Attacks)-1 {
				e.clearCombo()
				e.cooldown()
				return
			}
			e.slot.Set(config.Seconds(a.IntervalAfter), func() {
				e.comboStep(combo, i+1)
			})
		})
	})
}

func (e *EnemyCombat) telegraph(dir config.Direction, dur time.Duration, then func()) {
	if !e.c.fire(e.entry, evTelegraph) {
		return
	}
	t := components.Telegraph.Get(e.entry)
	t.Active = true
	t.Direction = dir
	t.Intensity = 0
	t.Fade = gween.New(0, 1, float32(dur.Seconds()), ease.Linear)

	e.slot.Set(dur, then)
	e.c.Bus.Publish(bus.Telegraph{Direction: dir, Duration: dur})
}

// land delivers the attack. The player resolves it synchronously, so by the
// time Publish returns the enemy may already be stunned or defeated.
func (e *EnemyCombat) land(dir config.Direction, post time.Duration, then func()) {
	if !e.c.fire(e.entry, evAttack) {
		return
	}
	components.Telegraph.Get(e.entry).Active = false
	components.Enemy.Get(e.entry).Attacks++

	e.c.Bus.Publish(bus.AttackLand{Direction: dir})
	if e.State() != config.Attacking {
		return
	}
	e.slot.Set(post, then)
}

func (e *EnemyCombat) stun(d time.Duration) {
	if !e.c.fire(e.entry, evStun) {
		return
	}
	e.clearCombo()
	components.Telegraph.Get(e.entry).Active = false
	e.slot.Set(d, func() {
		e.recover()
		e.Begin()
	})
	flash(e.entry, d, 1, 1, 1)
	e.c.Bus.Publish(bus.EnemyStunned{Duration: d})
	notify(e.c, "STUNNED!", config.EnemyAnchor)
}

// midCombo reports whether more combo attacks follow the current one.
func (e *EnemyCombat) midCombo() bool {
	data := components.Enemy.Get(e.entry)
	return data.Combo != "" && data.ComboIndex < data.ComboLength-1
}

func (e *EnemyCombat) onDefenseResult(m bus.DefenseResult) {
	if m.Result != config.Parry {
		return
	}
	if e.midCombo() && !e.c.Config.ComboParryStuns {
		return
	}
	e.stun(config.Seconds(e.c.Config.ParryStunDuration))
}

func (e *EnemyCombat) onPostureBroken(m bus.PostureBroken) {
	e.stun(m.StunDuration)
}

func (e *EnemyCombat) onPlayerAttack(m bus.PlayerAttack) {
	if e.State() == config.Defeated {
		return
	}
	flash(e.entry, config.Seconds(e.c.Config.HitFlashDuration), 1, 0.5, 0.5)
	notify(e.c, damageText(m.Damage), config.EnemyAnchor)
	e.ReceiveDamage(m.Damage)
}

func (e *EnemyCombat) clearCombo() {
	data := components.Enemy.Get(e.entry)
	data.Combo = ""
	data.ComboIndex = 0
	data.ComboLength = 0
}

func (e *EnemyCombat) recover() {
	e.c.fire(e.entry, evRecover)
}

func (e *EnemyCombat) defeat() {
	e.slot.Cancel()
	e.c.fire(e.entry, evDefeat)
	e.clearCombo()
	components.Telegraph.Get(e.entry).Active = false
	if e.c.Defeated != nil {
		e.c.Defeated(config.EnemyFighter)
	}
}

// UpdateTelegraph advances the telegraph fade by one frame.
func UpdateTelegraph(w donburi.World, dt time.Duration) {
	components.Telegraph.Each(w, func(entry *donburi.Entry) {
		t := components.Telegraph.Get(entry)
		if !t.Active || t.Fade == nil {
			return
		}
		v, _ := t.Fade.Update(float32(dt.Seconds()))
		t.Intensity = v
	})
}
