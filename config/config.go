package config

import (
	"time"

	"github.com/yohamta/donburi/features/math"
)

// ComboAttack is one telegraphed hit inside a combo.
type ComboAttack struct {
	Direction         Direction `yaml:"direction"`
	TelegraphDuration float64   `yaml:"telegraph_duration"` // seconds
	IntervalAfter     float64   `yaml:"interval_after"`     // seconds before the next hit
}

// Combo is a fixed ordered sequence of enemy attacks.
type Combo struct {
	Name    string        `yaml:"name"`
	Enabled bool          `yaml:"enabled"`
	Attacks []ComboAttack `yaml:"attacks"`
}

// CombatConfig contains every tunable of one encounter. Durations are in seconds.
// A session takes an exclusive copy when combat starts and never mutates it.
type CombatConfig struct {
	// Player core
	PlayerStartingEnergy int     `yaml:"player_starting_energy"`
	AttackDamage         int     `yaml:"attack_damage"`
	AttackEnergyCost     int     `yaml:"attack_energy_cost"`
	AttackCooldown       float64 `yaml:"attack_cooldown"`
	PunchDuration        float64 `yaml:"punch_duration"`

	// Parry
	ParryWindowDuration    float64 `yaml:"parry_window_duration"`
	ParryRefillsEnergy     bool    `yaml:"parry_refills_energy"`
	ParryEnergyRefill      int     `yaml:"parry_energy_refill"`
	ParryDrainsEnemyEnergy bool    `yaml:"parry_drains_enemy_energy"`
	ParryEnemyEnergyDrain  int     `yaml:"parry_enemy_energy_drain"`

	// Dodge
	DodgeEnabled    bool    `yaml:"dodge_enabled"`
	DodgeEnergyCost int     `yaml:"dodge_energy_cost"`
	DodgeDuration   float64 `yaml:"dodge_duration"`

	// Block
	BlockEnabled         bool    `yaml:"block_enabled"`
	BlockDamageReduction float64 `yaml:"block_damage_reduction"` // fraction 0..1

	// Posture (enemy)
	PostureEnabled        bool    `yaml:"posture_enabled"`
	MaxPosture            int     `yaml:"max_posture"`
	PostureDamageOnParry  int     `yaml:"posture_damage_on_parry"`
	PostureDamageOnAttack int     `yaml:"posture_damage_on_attack"`
	PostureStunDuration   float64 `yaml:"posture_stun_duration"`

	// Crit (player)
	CritMeterEnabled                      bool `yaml:"crit_meter_enabled"`
	CritAutoActivate                      bool `yaml:"crit_auto_activate"`
	CritMeterMax                          int  `yaml:"crit_meter_max"`
	CritMeterGainOnParry                  int  `yaml:"crit_meter_gain_on_parry"`
	CritMeterGainOnAttack                 int  `yaml:"crit_meter_gain_on_attack"`
	CritDamage                            int  `yaml:"crit_damage"`
	CritRestoresEnergy                    bool `yaml:"crit_restores_energy"`
	CritEnergyRestore                     int  `yaml:"crit_energy_restore"`
	CritDecreasesOnDefensive              bool `yaml:"crit_decreases_on_defensive"`
	CritDecreaseAmount                    int  `yaml:"crit_decrease_amount"`
	AttackDuringStunWithCritRefillsEnergy bool `yaml:"attack_during_stun_with_crit_refills_energy"`
	StunAttackEnergyRefill                int  `yaml:"stun_attack_energy_refill"`

	// Enemy
	EnemyStartingEnergy    int     `yaml:"enemy_starting_energy"`
	EnemyAttackDamage      int     `yaml:"enemy_attack_damage"`
	TelegraphDurationMin   float64 `yaml:"telegraph_duration_min"`
	TelegraphDurationMax   float64 `yaml:"telegraph_duration_max"`
	EnemyAttackCooldownMin float64 `yaml:"enemy_attack_cooldown_min"`
	EnemyAttackCooldownMax float64 `yaml:"enemy_attack_cooldown_max"`
	ParryStunDuration      float64 `yaml:"parry_stun_duration"`
	EnemyInitialDelay      float64 `yaml:"enemy_initial_delay"`
	EnemyPostAttackWindow  float64 `yaml:"enemy_post_attack_window"`
	ComboPostAttackWindow  float64 `yaml:"combo_post_attack_window"`
	ComboChance            float64 `yaml:"combo_chance"`

	// Enemy combos. A parried hit stuns the enemy only on the last attack of
	// a combo unless ComboParryStuns is set.
	CombosEnabled   bool    `yaml:"combos_enabled"`
	ComboParryStuns bool    `yaml:"combo_parry_stuns"`
	Combos          []Combo `yaml:"combos"`

	// Visual, read by the rendering collaborators only
	HitFlashDuration       float64 `yaml:"hit_flash_duration"`
	NotificationDuration   float64 `yaml:"notification_duration"`
	NotificationFloatSpeed float64 `yaml:"notification_float_speed"`
}

// Fighter anchors used as the position of notifications.
var (
	PlayerAnchor = math.NewVec2(-2, 0)
	EnemyAnchor  = math.NewVec2(2, 0)
)

// Seconds converts a config duration into a time.Duration.
func Seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}

// Defaults returns the baseline values every preset is decoded over.
func Defaults() CombatConfig {
	return CombatConfig{
		PlayerStartingEnergy: 20,
		AttackDamage:         4,
		AttackEnergyCost:     2,
		AttackCooldown:       0.5,
		PunchDuration:        0.3,

		ParryWindowDuration:    0.3,
		ParryRefillsEnergy:     true,
		ParryEnergyRefill:      6,
		ParryDrainsEnemyEnergy: false,
		ParryEnemyEnergyDrain:  3,

		DodgeEnabled:    true,
		DodgeEnergyCost: 2,
		DodgeDuration:   0.4,

		BlockEnabled:         false,
		BlockDamageReduction: 0.5,

		PostureEnabled:        false,
		MaxPosture:            100,
		PostureDamageOnParry:  30,
		PostureDamageOnAttack: 10,
		PostureStunDuration:   5,

		CritMeterEnabled:                      false,
		CritAutoActivate:                      true,
		CritMeterMax:                          100,
		CritMeterGainOnParry:                  25,
		CritMeterGainOnAttack:                 10,
		CritDamage:                            20,
		CritRestoresEnergy:                    false,
		CritEnergyRestore:                     20,
		CritDecreasesOnDefensive:              false,
		CritDecreaseAmount:                    10,
		AttackDuringStunWithCritRefillsEnergy: false,
		StunAttackEnergyRefill:                6,

		EnemyStartingEnergy:    50,
		EnemyAttackDamage:      5,
		TelegraphDurationMin:   0.5,
		TelegraphDurationMax:   1.0,
		EnemyAttackCooldownMin: 1.5,
		EnemyAttackCooldownMax: 3.0,
		ParryStunDuration:      1.0,
		EnemyInitialDelay:      1.0,
		EnemyPostAttackWindow:  0.2,
		ComboPostAttackWindow:  0.15,
		ComboChance:            0.4,

		CombosEnabled:   false,
		ComboParryStuns: false,
		Combos:          DefaultCombos(),

		HitFlashDuration:       0.15,
		NotificationDuration:   0.8,
		NotificationFloatSpeed: 1.5,
	}
}

// DefaultCombos returns the three disabled placeholder combos used when a
// preset names none.
func DefaultCombos() []Combo {
	combos := make([]Combo, 3)
	for i := range combos {
		combos[i] = Combo{
			Name:    "Combo " + string(rune('1'+i)),
			Enabled: false,
			Attacks: []ComboAttack{
				{Direction: Left, TelegraphDuration: 0.5, IntervalAfter: 0.3},
				{Direction: Right, TelegraphDuration: 0.4, IntervalAfter: 0.3},
			},
		}
	}
	return combos
}

// Clone returns a deep copy; the combo list is never shared between copies.
func (c CombatConfig) Clone() CombatConfig {
	out := c
	if c.Combos != nil {
		out.Combos = make([]Combo, len(c.Combos))
		for i, combo := range c.Combos {
			out.Combos[i] = combo
			out.Combos[i].Attacks = append([]ComboAttack(nil), combo.Attacks...)
		}
	}
	return out
}

// EnabledCombos returns the combos eligible for selection.
func (c CombatConfig) EnabledCombos() []Combo {
	var out []Combo
	for _, combo := range c.Combos {
		if combo.Enabled && len(combo.Attacks) > 0 {
			out = append(out, combo)
		}
	}
	return out
}
