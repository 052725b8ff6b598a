package systems

import (
	"math/rand"
	"testing"

	"github.com/automoto/doomerang-duel/archetypes"
	"github.com/automoto/doomerang-duel/bus"
	"github.com/automoto/doomerang-duel/components"
	"github.com/automoto/doomerang-duel/config"
	"github.com/automoto/doomerang-duel/meter"
	"github.com/automoto/doomerang-duel/sched"
	"github.com/stretchr/testify/require"
	"github.com/yohamta/donburi"
)

// harness wires the combat systems of one encounter without a session.
type harness struct {
	c       *Combat
	msgs    []bus.Message
	defeats []config.Fighter
}

func newHarness(t *testing.T, cfg config.CombatConfig) *harness {
	t.Helper()
	require.NoError(t, cfg.Validate())

	h := &harness{}
	h.c = &Combat{
		World:  donburi.NewWorld(),
		Bus:    bus.New(),
		Sched:  sched.New(),
		Config: cfg,
		Rand:   rand.New(rand.NewSource(1)),
		Defeated: func(f config.Fighter) {
			h.defeats = append(h.defeats, f)
		},
	}
	// First subscriber, so messages are recorded in publish order.
	h.c.Bus.SubscribeAll(func(m bus.Message) {
		h.msgs = append(h.msgs, m)
	})
	return h
}

func (h *harness) spawnPlayer(enemy Opponent) *PlayerCombat {
	var extras []donburi.IComponentType
	if h.c.Config.CritMeterEnabled {
		extras = append(extras, components.Crit)
	}
	entry := archetypes.Player.Spawn(h.c.World, extras...)
	crit := NewCritMeter(h.c, entry)
	p := NewPlayerCombat(h.c, entry, enemy, crit)
	p.Start()
	if crit != nil {
		crit.Start()
	}
	return p
}

func (h *harness) spawnEnemy() (*EnemyCombat, *Posture) {
	var extras []donburi.IComponentType
	if h.c.Config.PostureEnabled {
		extras = append(extras, components.Posture)
	}
	entry := archetypes.Enemy.Spawn(h.c.World, extras...)
	e := NewEnemyCombat(h.c, entry)
	posture := NewPosture(h.c, entry)
	e.Start()
	if posture != nil {
		posture.Start()
	}
	return e, posture
}

func (h *harness) reset() {
	h.msgs = nil
}

func messagesOf[T bus.Message](h *harness) []T {
	var out []T
	for _, m := range h.msgs {
		if v, ok := m.(T); ok {
			out = append(out, v)
		}
	}
	return out
}

func notificationTexts(h *harness) []string {
	var out []string
	for _, n := range messagesOf[bus.Notification](h) {
		out = append(out, n.Text)
	}
	return out
}

// stubOpponent stands in for the enemy in player tests.
type stubOpponent struct {
	energy  *meter.Meter
	stunned bool
}

func newStubOpponent(energy int) *stubOpponent {
	return &stubOpponent{energy: meter.New(energy)}
}

func (s *stubOpponent) Kind() config.Fighter     { return config.EnemyFighter }
func (s *stubOpponent) Entry() *donburi.Entry    { return nil }
func (s *stubOpponent) Energy() *meter.Meter     { return s.energy }
func (s *stubOpponent) ReceiveDamage(amount int) { s.energy.Modify(-amount) }
func (s *stubOpponent) IsStunned() bool          { return s.stunned }

// fixedTiming removes randomness from the enemy loop: first telegraph at
// 3s, attacks land 0.5s later, 2.2s between single attacks.
func fixedTiming(cfg config.CombatConfig) config.CombatConfig {
	cfg.EnemyInitialDelay = 1
	cfg.EnemyAttackCooldownMin = 2
	cfg.EnemyAttackCooldownMax = 2
	cfg.TelegraphDurationMin = 0.5
	cfg.TelegraphDurationMax = 0.5
	return cfg
}
