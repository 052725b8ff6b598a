package bus

import (
	"fmt"
	"time"

	"github.com/automoto/doomerang-duel/config"
	"github.com/yohamta/donburi/features/math"
)

// Message is any payload carried by the bus.
type Message interface {
	Kind() string
}

// Outbound messages. Field sets are the full contract with rendering,
// UI and input collaborators.
type (
	EnergyChanged struct {
		Fighter config.Fighter
		Current int
		Max     int
	}

	PostureChanged struct {
		Current int
		Max     int
	}

	CritMeterChanged struct {
		Current int
		Max     int
	}

	Telegraph struct {
		Direction config.Direction
		Duration  time.Duration
	}

	AttackLand struct {
		Direction config.Direction
	}

	DefenseResult struct {
		Result    config.CombatResult
		Direction config.Direction
	}

	PlayerAttack struct {
		Damage int
	}

	FighterDefeated struct {
		Fighter config.Fighter
	}

	EnemyStunned struct {
		Duration time.Duration
	}

	PostureBroken struct {
		StunDuration time.Duration
	}

	CritActivated struct{}

	BlockActivated struct{}

	CombatStarted struct{}

	Notification struct {
		Text     string
		Position math.Vec2
	}
)

func (EnergyChanged) Kind() string    { return "energy_changed" }
func (PostureChanged) Kind() string   { return "posture_changed" }
func (CritMeterChanged) Kind() string { return "crit_meter_changed" }
func (Telegraph) Kind() string        { return "telegraph" }
func (AttackLand) Kind() string       { return "attack_land" }
func (DefenseResult) Kind() string    { return "defense_result" }
func (PlayerAttack) Kind() string     { return "player_attack" }
func (FighterDefeated) Kind() string  { return "fighter_defeated" }
func (EnemyStunned) Kind() string     { return "enemy_stunned" }
func (PostureBroken) Kind() string    { return "posture_broken" }
func (CritActivated) Kind() string    { return "crit_activated" }
func (BlockActivated) Kind() string   { return "block_activated" }
func (CombatStarted) Kind() string    { return "combat_started" }
func (Notification) Kind() string     { return "notification" }

// Describe renders a message for logs.
func Describe(m Message) string {
	switch m := m.(type) {
	case EnergyChanged:
		return fmt.Sprintf("%s %s %d/%d", m.Kind(), m.Fighter, m.Current, m.Max)
	case PostureChanged:
		return fmt.Sprintf("%s %d/%d", m.Kind(), m.Current, m.Max)
	case CritMeterChanged:
		return fmt.Sprintf("%s %d/%d", m.Kind(), m.Current, m.Max)
	case Telegraph:
		return fmt.Sprintf("%s %s %s", m.Kind(), m.Direction, m.Duration)
	case AttackLand:
		return fmt.Sprintf("%s %s", m.Kind(), m.Direction)
	case DefenseResult:
		return fmt.Sprintf("%s %s %s", m.Kind(), m.Result, m.Direction)
	case PlayerAttack:
		return fmt.Sprintf("%s %d", m.Kind(), m.Damage)
	case FighterDefeated:
		return fmt.Sprintf("%s %s", m.Kind(), m.Fighter)
	case EnemyStunned:
		return fmt.Sprintf("%s %s", m.Kind(), m.Duration)
	case PostureBroken:
		return fmt.Sprintf("%s %s", m.Kind(), m.StunDuration)
	case Notification:
		return fmt.Sprintf("%s %q at (%.1f, %.1f)", m.Kind(), m.Text, m.Position.X, m.Position.Y)
	}
	return m.Kind()
}
