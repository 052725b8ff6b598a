package systems

import (
	"math/rand"
	"time"

	"github.com/automoto/doomerang-duel/bus"
	"github.com/automoto/doomerang-duel/config"
	"github.com/automoto/doomerang-duel/sched"
)

// Controls is the inbound command surface the autopilot drives.
type Controls interface {
	ParryPress(d config.Direction)
	ParryRelease()
	Punch()
	Dodge()
	ActivateCrit()
}

// parryHold is how long the autopilot keeps the parry button down after the
// attack is due, so block-enabled rule sets see a held button.
const parryHold = 50 * time.Millisecond

// Autopilot plays the player side. It reacts to telegraphs with a parry or
// dodge and punches stunned enemies, with mistakes drawn from its tuning.
type Autopilot struct {
	controls Controls
	sched    *sched.Scheduler
	rng      *rand.Rand
	tuning   config.BotDifficultyConfig

	attackCooldown time.Duration
	parryWindow    time.Duration
	manualCrit     bool
	critReady      bool

	Parries int // parry presses issued
	Dodges  int
	Punches int
}

// NewAutopilot subscribes to the bus of one encounter.
func NewAutopilot(b *bus.Bus, s *sched.Scheduler, controls Controls, cfg config.CombatConfig, tuning config.BotDifficultyConfig, rng *rand.Rand) *Autopilot {
	a := &Autopilot{
		controls:       controls,
		sched:          s,
		rng:            rng,
		tuning:         tuning,
		attackCooldown: config.Seconds(cfg.AttackCooldown),
		parryWindow:    config.Seconds(cfg.ParryWindowDuration),
		manualCrit:     cfg.CritMeterEnabled && !cfg.CritAutoActivate,
	}
	bus.Subscribe(b, a.onTelegraph)
	bus.Subscribe(b, a.onEnemyStunned)
	bus.Subscribe(b, a.onCritMeterChanged)
	return a
}

func (a *Autopilot) onTelegraph(m bus.Telegraph) {
	at := m.Duration - config.Seconds(a.tuning.ReactionTime)
	if at < 0 {
		at = 0
	}
	a.sched.After(at, func() {
		if a.rng.Float64() < a.tuning.DodgeChance {
			a.Dodges++
			a.controls.Dodge()
			return
		}
		dir := m.Direction
		if a.rng.Float64() >= a.tuning.ParryAccuracy {
			dir = a.wrongDirection(m.Direction)
		}
		a.Parries++
		a.controls.ParryPress(dir)
		a.sched.After(m.Duration-at+parryHold, a.controls.ParryRelease)
	})
}

func (a *Autopilot) onEnemyStunned(m bus.EnemyStunned) {
	if !a.tuning.PunchOnStun {
		return
	}
	// The parry that caused the stun is still open; punch once it closes,
	// then once per attack cooldown while the stun lasts.
	step := a.attackCooldown + 10*time.Millisecond
	for i := 0; i < a.tuning.MaxStunPunches; i++ {
		at := a.parryWindow + time.Duration(i)*step
		if at >= m.Duration {
			break
		}
		a.sched.After(at, func() {
			if a.manualCrit && a.critReady {
				a.controls.ActivateCrit()
			}
			a.Punches++
			a.controls.Punch()
		})
	}
}

// onCritMeterChanged mirrors the meter's latch: ready once full, cleared
// only when the meter is emptied.
func (a *Autopilot) onCritMeterChanged(m bus.CritMeterChanged) {
	switch {
	case m.Max > 0 && m.Current >= m.Max:
		a.critReady = true
	case m.Current == 0:
		a.critReady = false
	}
}

func (a *Autopilot) wrongDirection(d config.Direction) config.Direction {
	others := make([]config.Direction, 0, len(config.Directions)-1)
	for _, o := range config.Directions {
		if o != d {
			others = append(others, o)
		}
	}
	return others[a.rng.Intn(len(others))]
}
