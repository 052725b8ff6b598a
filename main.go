package main

import (
	"log"
	"math/rand"

	"github.com/automoto/doomerang-duel/bus"
	"github.com/automoto/doomerang-duel/config"
	"github.com/automoto/doomerang-duel/session"
	"github.com/automoto/doomerang-duel/systems"
)

// Headless runner: plays one encounter with the autopilot on the player side
// and prints the outcome.
func main() {
	env, err := config.ParseRunnerEnv()
	if err != nil {
		log.Fatalf("Failed to read environment: %v", err)
	}

	catalog, err := config.BuiltinCatalog()
	if err != nil {
		log.Fatalf("Failed to load presets: %v", err)
	}
	rt, err := config.NewRuntime(catalog)
	if err != nil {
		log.Fatalf("Failed to create customization buffer: %v", err)
	}

	// Initialize persistence and restore the saved customization
	var store systems.ItemStore
	if env.Persist {
		if m, err := systems.OpenPersistence(env.AppName); err == nil {
			store = m
		}
	}
	if store != nil {
		if ok, err := systems.LoadCustomization(store, rt); err != nil {
			log.Printf("Warning: Ignoring saved customization: %v", err)
		} else if ok {
			log.Printf("Restored customization based on %q", rt.PresetName())
		}
	}
	if env.Preset != "" {
		if err := rt.LoadPreset(env.Preset); err != nil {
			log.Fatalf("Failed to load preset: %v (available: %v)", err, catalog.Names())
		}
	}

	difficulty, err := config.ParseBotDifficulty(env.BotDifficulty)
	if err != nil {
		log.Fatalf("Failed to read bot difficulty: %v", err)
	}

	opts := []session.Option{
		session.WithLogger(log.Default()),
		session.WithRand(rand.New(rand.NewSource(env.Seed))),
		session.WithAutopilot(config.Bot.Difficulties[difficulty]),
	}
	if env.Verbose {
		opts = append(opts, session.WithObserver(func(s *session.Session) {
			s.Bus().SubscribeAll(func(m bus.Message) {
				log.Printf("[%8s] %s", s.Now(), bus.Describe(m))
			})
		}))
	}

	s := session.New(rt, opts...)
	log.Printf("Preset %q, seed %d, bot %s", rt.PresetName(), env.Seed, env.BotDifficulty)
	if err := s.Start(); err != nil {
		log.Fatalf("Failed to start combat: %v", err)
	}

	for !s.Over() && s.Now() < env.MaxDuration {
		s.Advance(env.Tick)
	}

	if winner, over := s.Outcome(); over {
		log.Printf("Winner: %s after %s", winner, s.Now())
	} else {
		log.Printf("No winner after %s: player %d, enemy %d energy",
			s.Now(), s.Player().Energy().Current(), s.Enemy().Energy().Current())
	}
	if bot := s.Autopilot(); bot != nil {
		log.Printf("Autopilot: %d parries, %d dodges, %d punches", bot.Parries, bot.Dodges, bot.Punches)
	}

	if store != nil {
		if err := systems.SaveCustomization(store, rt); err != nil {
			log.Printf("Warning: Could not save customization: %v", err)
		}
	}
}
