package systems

import (
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/automoto/doomerang-duel/bus"
	"github.com/automoto/doomerang-duel/config"
	"github.com/automoto/doomerang-duel/sched"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingControls logs every command with the time it was issued.
type recordingControls struct {
	s     *sched.Scheduler
	calls []string
}

func (r *recordingControls) log(format string, args ...any) {
	r.calls = append(r.calls, fmt.Sprintf("%s@%s", fmt.Sprintf(format, args...), r.s.Now()))
}

func (r *recordingControls) ParryPress(d config.Direction) { r.log("parry %s", d) }
func (r *recordingControls) ParryRelease()                 { r.log("release") }
func (r *recordingControls) Punch()                        { r.log("punch") }
func (r *recordingControls) Dodge()                        { r.log("dodge") }
func (r *recordingControls) ActivateCrit()                 { r.log("crit") }

func newTestAutopilot(cfg config.CombatConfig, tuning config.BotDifficultyConfig) (*Autopilot, *recordingControls, *bus.Bus, *sched.Scheduler) {
	b := bus.New()
	s := sched.New()
	rc := &recordingControls{s: s}
	a := NewAutopilot(b, s, rc, cfg, tuning, rand.New(rand.NewSource(7)))
	return a, rc, b, s
}

func perfectTuning() config.BotDifficultyConfig {
	return config.BotDifficultyConfig{
		ReactionTime:   0.15,
		ParryAccuracy:  1,
		DodgeChance:    0,
		PunchOnStun:    true,
		MaxStunPunches: 2,
	}
}

func TestAutopilotParriesTelegraph(t *testing.T) {
	a, rc, b, s := newTestAutopilot(config.Defaults(), perfectTuning())

	b.Publish(bus.Telegraph{Direction: config.Left, Duration: 500 * time.Millisecond})
	s.Advance(time.Second)

	assert.Equal(t, []string{"parry left@350ms", "release@550ms"}, rc.calls)
	assert.Equal(t, 1, a.Parries)
}

func TestAutopilotDodges(t *testing.T) {
	tuning := perfectTuning()
	tuning.DodgeChance = 1
	a, rc, b, s := newTestAutopilot(config.Defaults(), tuning)

	b.Publish(bus.Telegraph{Direction: config.Up, Duration: 100 * time.Millisecond})
	s.Advance(time.Second)

	assert.Equal(t, []string{"dodge@0s"}, rc.calls)
	assert.Equal(t, 1, a.Dodges)
}

func TestAutopilotMisreadsDirection(t *testing.T) {
	tuning := perfectTuning()
	tuning.ParryAccuracy = 0
	_, rc, b, s := newTestAutopilot(config.Defaults(), tuning)

	b.Publish(bus.Telegraph{Direction: config.Up, Duration: 500 * time.Millisecond})
	s.Advance(time.Second)

	require.Len(t, rc.calls, 2)
	assert.NotEqual(t, "parry up@350ms", rc.calls[0])
	assert.Contains(t, rc.calls[0], "@350ms")
}

func TestAutopilotPunchesStunnedEnemy(t *testing.T) {
	a, rc, b, s := newTestAutopilot(config.Defaults(), perfectTuning())

	b.Publish(bus.EnemyStunned{Duration: time.Second})
	s.Advance(2 * time.Second)

	assert.Equal(t, []string{"punch@300ms", "punch@810ms"}, rc.calls)
	assert.Equal(t, 2, a.Punches)
}

func TestAutopilotStunTooShort(t *testing.T) {
	_, rc, b, s := newTestAutopilot(config.Defaults(), perfectTuning())

	b.Publish(bus.EnemyStunned{Duration: 200 * time.Millisecond})
	s.Advance(time.Second)
	assert.Empty(t, rc.calls)
}

func TestAutopilotManualCrit(t *testing.T) {
	cfg := config.Defaults()
	cfg.CritMeterEnabled = true
	cfg.CritAutoActivate = false
	tuning := perfectTuning()
	tuning.MaxStunPunches = 1
	_, rc, b, s := newTestAutopilot(cfg, tuning)

	b.Publish(bus.CritMeterChanged{Current: 100, Max: 100})
	b.Publish(bus.EnemyStunned{Duration: time.Second})
	s.Advance(time.Second)

	assert.Equal(t, []string{"crit@300ms", "punch@300ms"}, rc.calls)
}

func TestAutopilotCritLatchSurvivesDecrease(t *testing.T) {
	cfg := config.Defaults()
	cfg.CritMeterEnabled = true
	cfg.CritAutoActivate = false
	tuning := perfectTuning()
	tuning.MaxStunPunches = 1
	_, rc, b, s := newTestAutopilot(cfg, tuning)

	b.Publish(bus.CritMeterChanged{Current: 100, Max: 100})
	b.Publish(bus.CritMeterChanged{Current: 90, Max: 100})
	b.Publish(bus.EnemyStunned{Duration: time.Second})
	s.Advance(time.Second)
	assert.Equal(t, []string{"crit@300ms", "punch@300ms"}, rc.calls)

	b.Publish(bus.CritMeterChanged{Current: 0, Max: 100})
	b.Publish(bus.EnemyStunned{Duration: time.Second})
	s.Advance(time.Second)
	assert.Equal(t, []string{"crit@300ms", "punch@300ms", "punch@1.3s"}, rc.calls)
}
