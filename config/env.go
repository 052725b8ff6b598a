package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// RunnerEnv holds the headless runner settings read from the environment.
type RunnerEnv struct {
	Preset        string        `env:"DUEL_PRESET"`
	Seed          int64         `env:"DUEL_SEED" envDefault:"42"`
	Tick          time.Duration `env:"DUEL_TICK" envDefault:"16ms"`
	MaxDuration   time.Duration `env:"DUEL_MAX_DURATION" envDefault:"3m"`
	BotDifficulty string        `env:"DUEL_BOT_DIFFICULTY" envDefault:"normal"`
	Verbose       bool          `env:"DUEL_VERBOSE"`
	Persist       bool          `env:"DUEL_PERSIST"`
	AppName       string        `env:"DUEL_APP_NAME" envDefault:"doomerang-duel"`
}

// ParseRunnerEnv loads runner settings from environment variables.
func ParseRunnerEnv() (RunnerEnv, error) {
	var cfg RunnerEnv
	if err := env.Parse(&cfg); err != nil {
		return RunnerEnv{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.Tick <= 0 {
		return RunnerEnv{}, fmt.Errorf("parse env: DUEL_TICK must be positive, got %s", cfg.Tick)
	}
	return cfg, nil
}
