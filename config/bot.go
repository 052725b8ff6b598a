package config

import "fmt"

// BotDifficulty affects reaction time and decision quality
type BotDifficulty int

const (
	BotDifficultyEasy BotDifficulty = iota
	BotDifficultyNormal
	BotDifficultyHard
)

// ParseBotDifficulty accepts "easy", "normal" or "hard".
func ParseBotDifficulty(s string) (BotDifficulty, error) {
	switch s {
	case "easy":
		return BotDifficultyEasy, nil
	case "normal", "":
		return BotDifficultyNormal, nil
	case "hard":
		return BotDifficultyHard, nil
	}
	return 0, fmt.Errorf("unknown bot difficulty %q", s)
}

// BotDifficultyConfig holds tuning values for the autopilot at a specific difficulty
type BotDifficultyConfig struct {
	ReactionTime   float64 // Seconds before the telegraph ends that the parry is pressed
	ParryAccuracy  float64 // Chance the parry uses the telegraphed direction
	DodgeChance    float64 // Chance to dodge instead of parry when energy allows
	PunchOnStun    bool    // Punch while the enemy is stunned
	MaxStunPunches int     // Punches per stun window
}

// BotConfigData holds all bot-related configuration
type BotConfigData struct {
	Difficulties map[BotDifficulty]BotDifficultyConfig
}

// Bot holds the autopilot presets. Read-only after init.
var Bot BotConfigData

func init() {
	Bot = BotConfigData{
		Difficulties: map[BotDifficulty]BotDifficultyConfig{
			BotDifficultyEasy: {
				ReactionTime:   0.05,
				ParryAccuracy:  0.5,
				DodgeChance:    0.2,
				PunchOnStun:    true,
				MaxStunPunches: 1,
			},
			BotDifficultyNormal: {
				ReactionTime:   0.15,
				ParryAccuracy:  0.75,
				DodgeChance:    0.1,
				PunchOnStun:    true,
				MaxStunPunches: 2,
			},
			BotDifficultyHard: {
				ReactionTime:   0.2,
				ParryAccuracy:  0.95,
				DodgeChance:    0,
				PunchOnStun:    true,
				MaxStunPunches: 3,
			},
		},
	}
}
