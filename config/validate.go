package config

import (
	"errors"
	"fmt"
)

// MaxComboAttacks bounds the length of a single combo.
const MaxComboAttacks = 5

var (
	ErrInvalidConfig = errors.New("invalid combat config")
	ErrUnknownPreset = errors.New("unknown preset")
	ErrUnknownField  = errors.New("unknown config field")
)

// Validate rejects configurations that would give the simulation an
// ill-defined random range or a stalled loop. Every problem is reported.
func (c CombatConfig) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	check(c.PlayerStartingEnergy >= 1, "player_starting_energy must be at least 1, got %d", c.PlayerStartingEnergy)
	check(c.EnemyStartingEnergy >= 1, "enemy_starting_energy must be at least 1, got %d", c.EnemyStartingEnergy)

	nonNegativeInts := []struct {
		key string
		v   int
	}{
		{"attack_damage", c.AttackDamage},
		{"attack_energy_cost", c.AttackEnergyCost},
		{"parry_energy_refill", c.ParryEnergyRefill},
		{"parry_enemy_energy_drain", c.ParryEnemyEnergyDrain},
		{"dodge_energy_cost", c.DodgeEnergyCost},
		{"posture_damage_on_parry", c.PostureDamageOnParry},
		{"posture_damage_on_attack", c.PostureDamageOnAttack},
		{"crit_meter_gain_on_parry", c.CritMeterGainOnParry},
		{"crit_meter_gain_on_attack", c.CritMeterGainOnAttack},
		{"crit_damage", c.CritDamage},
		{"crit_energy_restore", c.CritEnergyRestore},
		{"crit_decrease_amount", c.CritDecreaseAmount},
		{"stun_attack_energy_refill", c.StunAttackEnergyRefill},
		{"enemy_attack_damage", c.EnemyAttackDamage},
	}
	for _, f := range nonNegativeInts {
		check(f.v >= 0, "%s must not be negative, got %d", f.key, f.v)
	}

	positiveDurations := []struct {
		key string
		v   float64
	}{
		{"punch_duration", c.PunchDuration},
		{"parry_window_duration", c.ParryWindowDuration},
		{"dodge_duration", c.DodgeDuration},
		{"posture_stun_duration", c.PostureStunDuration},
		{"parry_stun_duration", c.ParryStunDuration},
		{"telegraph_duration_min", c.TelegraphDurationMin},
		{"enemy_attack_cooldown_min", c.EnemyAttackCooldownMin},
	}
	for _, f := range positiveDurations {
		check(f.v > 0, "%s must be positive, got %g", f.key, f.v)
	}

	nonNegativeDurations := []struct {
		key string
		v   float64
	}{
		{"attack_cooldown", c.AttackCooldown},
		{"enemy_initial_delay", c.EnemyInitialDelay},
		{"enemy_post_attack_window", c.EnemyPostAttackWindow},
		{"combo_post_attack_window", c.ComboPostAttackWindow},
		{"hit_flash_duration", c.HitFlashDuration},
		{"notification_duration", c.NotificationDuration},
	}
	for _, f := range nonNegativeDurations {
		check(f.v >= 0, "%s must not be negative, got %g", f.key, f.v)
	}

	check(c.TelegraphDurationMin <= c.TelegraphDurationMax,
		"telegraph_duration_min %g exceeds telegraph_duration_max %g", c.TelegraphDurationMin, c.TelegraphDurationMax)
	check(c.EnemyAttackCooldownMin <= c.EnemyAttackCooldownMax,
		"enemy_attack_cooldown_min %g exceeds enemy_attack_cooldown_max %g", c.EnemyAttackCooldownMin, c.EnemyAttackCooldownMax)
	check(c.BlockDamageReduction >= 0 && c.BlockDamageReduction <= 1,
		"block_damage_reduction must be within [0, 1], got %g", c.BlockDamageReduction)
	check(c.ComboChance >= 0 && c.ComboChance <= 1,
		"combo_chance must be within [0, 1], got %g", c.ComboChance)
	check(!c.PostureEnabled || c.MaxPosture >= 1, "max_posture must be at least 1 when posture is enabled, got %d", c.MaxPosture)
	check(!c.CritMeterEnabled || c.CritMeterMax >= 1, "crit_meter_max must be at least 1 when the crit meter is enabled, got %d", c.CritMeterMax)

	for i, combo := range c.Combos {
		n := len(combo.Attacks)
		check(n >= 1 && n <= MaxComboAttacks, "combos[%d] %q must have 1-%d attacks, got %d", i, combo.Name, MaxComboAttacks, n)
		for j, atk := range combo.Attacks {
			check(atk.Direction.Valid(), "combos[%d].attacks[%d] has unknown direction %d", i, j, int(atk.Direction))
			check(atk.TelegraphDuration > 0, "combos[%d].attacks[%d].telegraph_duration must be positive, got %g", i, j, atk.TelegraphDuration)
			check(atk.IntervalAfter >= 0, "combos[%d].attacks[%d].interval_after must not be negative, got %g", i, j, atk.IntervalAfter)
		}
	}

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
}
