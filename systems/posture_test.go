package systems

import (
	"testing"
	"time"

	"github.com/automoto/doomerang-duel/bus"
	"github.com/automoto/doomerang-duel/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func postureConfig() config.CombatConfig {
	cfg := config.Defaults()
	cfg.PostureEnabled = true
	cfg.MaxPosture = 60
	cfg.PostureDamageOnParry = 30
	return cfg
}

func TestPostureDisabled(t *testing.T) {
	h := newHarness(t, config.Defaults())
	_, posture := h.spawnEnemy()
	assert.Nil(t, posture)
}

func TestPostureBreak(t *testing.T) {
	h := newHarness(t, postureConfig())
	e, posture := h.spawnEnemy()
	require.NotNil(t, posture)
	assert.Equal(t, 60, posture.Current())
	h.reset()

	parry := bus.DefenseResult{Result: config.Parry, Direction: config.Left}
	h.c.Bus.Publish(parry)
	h.c.Bus.Publish(parry)

	assert.Equal(t, []bus.PostureChanged{{Current: 30, Max: 60}, {Current: 0, Max: 60}, {Current: 60, Max: 60}}, messagesOf[bus.PostureChanged](h))
	assert.Equal(t, []bus.PostureBroken{{StunDuration: 5 * time.Second}}, messagesOf[bus.PostureBroken](h))
	assert.Equal(t, []bus.EnemyStunned{{Duration: time.Second}, {Duration: time.Second}, {Duration: 5 * time.Second}}, messagesOf[bus.EnemyStunned](h))
	assert.Contains(t, notificationTexts(h), "POSTURE BREAK!")
	assert.Equal(t, 60, posture.Current())

	// The posture stun replaces the parry stun.
	h.c.Sched.Advance(4999 * time.Millisecond)
	assert.Equal(t, config.Stunned, e.State())
	h.c.Sched.Advance(time.Millisecond)
	assert.Equal(t, config.Idle, e.State())
}

func TestPunchWearsPosture(t *testing.T) {
	h := newHarness(t, postureConfig())
	_, posture := h.spawnEnemy()

	h.c.Bus.Publish(bus.PlayerAttack{Damage: 4})
	assert.Equal(t, 50, posture.Current())

	h.c.Bus.Publish(bus.DefenseResult{Result: config.Dodge})
	h.c.Bus.Publish(bus.DefenseResult{Result: config.Hit})
	assert.Equal(t, 50, posture.Current())
}
