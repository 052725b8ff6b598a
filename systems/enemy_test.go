package systems

import (
	"testing"
	"time"

	"github.com/automoto/doomerang-duel/bus"
	"github.com/automoto/doomerang-duel/components"
	"github.com/automoto/doomerang-duel/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func twinCombo(cfg config.CombatConfig) config.CombatConfig {
	cfg.CombosEnabled = true
	cfg.ComboChance = 1
	cfg.Combos = []config.Combo{{
		Name:    "Twin",
		Enabled: true,
		Attacks: []config.ComboAttack{
			{Direction: config.Up, TelegraphDuration: 0.5, IntervalAfter: 0.3},
			{Direction: config.Down, TelegraphDuration: 0.4},
		},
	}}
	return cfg
}

// landTimes records the simulation time of every landed attack.
func landTimes(h *harness) *[]time.Duration {
	var times []time.Duration
	bus.Subscribe(h.c.Bus, func(bus.AttackLand) {
		times = append(times, h.c.Sched.Now())
	})
	return &times
}

func TestEnemyAttackTimeline(t *testing.T) {
	h := newHarness(t, fixedTiming(config.Defaults()))
	e, _ := h.spawnEnemy()
	e.Begin()

	h.c.Sched.Advance(2999 * time.Millisecond)
	assert.Equal(t, config.Idle, e.State())
	assert.Empty(t, messagesOf[bus.Telegraph](h))

	h.c.Sched.Advance(time.Millisecond)
	require.Equal(t, config.Telegraphing, e.State())
	tel := messagesOf[bus.Telegraph](h)
	require.Len(t, tel, 1)
	assert.Equal(t, 500*time.Millisecond, tel[0].Duration)

	h.c.Sched.Advance(500 * time.Millisecond)
	assert.Equal(t, config.Attacking, e.State())
	assert.Equal(t, []bus.AttackLand{{Direction: tel[0].Direction}}, messagesOf[bus.AttackLand](h))

	h.c.Sched.Advance(200 * time.Millisecond)
	assert.Equal(t, config.Idle, e.State())

	h.c.Sched.Advance(2 * time.Second)
	assert.Equal(t, config.Telegraphing, e.State())
	assert.Len(t, messagesOf[bus.Telegraph](h), 2)
}

func TestTelegraphIntensity(t *testing.T) {
	h := newHarness(t, fixedTiming(config.Defaults()))
	e, _ := h.spawnEnemy()
	e.Begin()
	assert.Zero(t, e.TelegraphIntensity())

	h.c.Sched.Advance(3 * time.Second)
	UpdateTelegraph(h.c.World, 250*time.Millisecond)
	assert.InDelta(t, 0.5, e.TelegraphIntensity(), 0.001)

	h.c.Sched.Advance(500 * time.Millisecond)
	assert.Zero(t, e.TelegraphIntensity())
}

func TestParryStunCancelsAttack(t *testing.T) {
	h := newHarness(t, fixedTiming(config.Defaults()))
	e, _ := h.spawnEnemy()
	e.Begin()

	h.c.Sched.Advance(3 * time.Second)
	require.Equal(t, config.Telegraphing, e.State())
	h.c.Bus.Publish(bus.DefenseResult{Result: config.Parry, Direction: config.Up})

	assert.Equal(t, config.Stunned, e.State())
	assert.True(t, e.IsStunned())
	assert.Equal(t, []bus.EnemyStunned{{Duration: time.Second}}, messagesOf[bus.EnemyStunned](h))
	assert.Contains(t, notificationTexts(h), "STUNNED!")
	assert.Equal(t, time.Second, components.Flash.Get(e.Entry()).Remaining)

	h.c.Sched.Advance(time.Second)
	assert.Equal(t, config.Idle, e.State())
	assert.Empty(t, messagesOf[bus.AttackLand](h), "telegraphed attack was dropped")

	// Recovery restarts the loop from the initial delay.
	h.c.Sched.Advance(2999 * time.Millisecond)
	assert.Len(t, messagesOf[bus.Telegraph](h), 1)
	h.c.Sched.Advance(time.Millisecond)
	assert.Len(t, messagesOf[bus.Telegraph](h), 2)
}

func TestNonParryResultsDoNotStun(t *testing.T) {
	h := newHarness(t, fixedTiming(config.Defaults()))
	e, _ := h.spawnEnemy()

	h.c.Bus.Publish(bus.DefenseResult{Result: config.Dodge, Direction: config.Up})
	h.c.Bus.Publish(bus.DefenseResult{Result: config.Hit, Direction: config.Up})
	assert.Equal(t, config.Idle, e.State())
	assert.Empty(t, messagesOf[bus.EnemyStunned](h))
}

func TestPlayerAttackDamagesEnemy(t *testing.T) {
	h := newHarness(t, config.Defaults())
	e, _ := h.spawnEnemy()
	h.reset()

	h.c.Bus.Publish(bus.PlayerAttack{Damage: 4})

	assert.Equal(t, 46, e.Energy().Current())
	assert.Equal(t, []bus.EnergyChanged{{Fighter: config.EnemyFighter, Current: 46, Max: 50}}, messagesOf[bus.EnergyChanged](h))
	assert.Equal(t, []string{"-4"}, notificationTexts(h))
	assert.Equal(t, 150*time.Millisecond, components.Flash.Get(e.Entry()).Remaining)
}

func TestEnemyDefeat(t *testing.T) {
	cfg := fixedTiming(config.Defaults())
	cfg.EnemyStartingEnergy = 4
	h := newHarness(t, cfg)
	e, _ := h.spawnEnemy()
	e.Begin()

	h.c.Bus.Publish(bus.PlayerAttack{Damage: 4})
	assert.Equal(t, config.Defeated, e.State())
	assert.Equal(t, []config.Fighter{config.EnemyFighter}, h.defeats)

	h.c.Sched.Advance(10 * time.Second)
	assert.Empty(t, messagesOf[bus.Telegraph](h))

	h.c.Bus.Publish(bus.PlayerAttack{Damage: 4})
	h.c.Bus.Publish(bus.DefenseResult{Result: config.Parry})
	assert.Equal(t, config.Defeated, e.State())
	assert.Len(t, h.defeats, 1)
}

func TestComboTimeline(t *testing.T) {
	h := newHarness(t, twinCombo(fixedTiming(config.Defaults())))
	e, _ := h.spawnEnemy()
	times := landTimes(h)
	e.Begin()

	h.c.Sched.Advance(3 * time.Second)
	data := components.Enemy.Get(e.Entry())
	assert.Equal(t, "Twin", data.Combo)
	assert.Equal(t, 0, data.ComboIndex)
	assert.Equal(t, 2, data.ComboLength)

	h.c.Sched.Advance(1500 * time.Millisecond)
	assert.Equal(t, []time.Duration{3500 * time.Millisecond, 4350 * time.Millisecond}, *times)
	assert.Equal(t, []bus.AttackLand{{Direction: config.Up}, {Direction: config.Down}}, messagesOf[bus.AttackLand](h))
	assert.Equal(t, config.Idle, e.State())
	assert.Empty(t, components.Enemy.Get(e.Entry()).Combo)

	// Back to the cooldown after the last attack.
	h.c.Sched.Advance(1999 * time.Millisecond)
	assert.Len(t, messagesOf[bus.Telegraph](h), 2)
	h.c.Sched.Advance(time.Millisecond)
	assert.Len(t, messagesOf[bus.Telegraph](h), 3)
}

// parryFirst answers the first n landed attacks with a parry.
func parryFirst(h *harness, n int) {
	bus.Subscribe(h.c.Bus, func(m bus.AttackLand) {
		if n == 0 {
			return
		}
		n--
		h.c.Bus.Publish(bus.DefenseResult{Result: config.Parry, Direction: m.Direction})
	})
}

func TestMidComboParryDoesNotStun(t *testing.T) {
	h := newHarness(t, twinCombo(fixedTiming(config.Defaults())))
	e, _ := h.spawnEnemy()
	parryFirst(h, 1)
	e.Begin()

	h.c.Sched.Advance(3500 * time.Millisecond)
	assert.Equal(t, config.Attacking, e.State())
	assert.Empty(t, messagesOf[bus.EnemyStunned](h))

	h.c.Sched.Advance(time.Second)
	assert.Len(t, messagesOf[bus.AttackLand](h), 2)
}

func TestComboParryStunsWhenEnabled(t *testing.T) {
	cfg := twinCombo(fixedTiming(config.Defaults()))
	cfg.ComboParryStuns = true
	h := newHarness(t, cfg)
	e, _ := h.spawnEnemy()
	parryFirst(h, 1)
	e.Begin()

	h.c.Sched.Advance(3500 * time.Millisecond)
	assert.Equal(t, config.Stunned, e.State())
	assert.Empty(t, components.Enemy.Get(e.Entry()).Combo)

	h.c.Sched.Advance(900 * time.Millisecond)
	assert.Len(t, messagesOf[bus.AttackLand](h), 1, "combo aborted")
}

func TestLastComboAttackParryStuns(t *testing.T) {
	h := newHarness(t, twinCombo(fixedTiming(config.Defaults())))
	e, _ := h.spawnEnemy()
	parryFirst(h, 2)
	e.Begin()

	h.c.Sched.Advance(4350 * time.Millisecond)
	assert.Equal(t, config.Stunned, e.State())
	assert.Len(t, messagesOf[bus.EnemyStunned](h), 1)
}
