// Package session runs one player-versus-enemy encounter: it owns the
// config snapshot, the world with both fighters, the bus and the timers, and
// reports the winner when a fighter's energy runs out.
package session

import (
	"fmt"
	"io"
	"log"
	"math/rand"
	"time"

	"github.com/automoto/doomerang-duel/archetypes"
	"github.com/automoto/doomerang-duel/bus"
	"github.com/automoto/doomerang-duel/components"
	"github.com/automoto/doomerang-duel/config"
	"github.com/automoto/doomerang-duel/sched"
	"github.com/automoto/doomerang-duel/systems"
	"github.com/yohamta/donburi"
)

// ConfigSource hands out the config for a new encounter. *config.Runtime
// implements it.
type ConfigSource interface {
	Snapshot() (config.CombatConfig, error)
}

// StaticConfig is a ConfigSource that always returns a copy of itself.
type StaticConfig config.CombatConfig

func (c StaticConfig) Snapshot() (config.CombatConfig, error) {
	cfg := config.CombatConfig(c)
	if err := cfg.Validate(); err != nil {
		return config.CombatConfig{}, err
	}
	return cfg.Clone(), nil
}

type Option func(*Session)

// WithLogger sets the session logger. nil discards.
func WithLogger(l *log.Logger) Option {
	return func(s *Session) {
		if l == nil {
			l = log.New(io.Discard, "", 0)
		}
		s.logger = l
	}
}

// WithRand sets the random source for attack timing and direction.
func WithRand(r *rand.Rand) Option {
	return func(s *Session) {
		s.rng = r
	}
}

// WithSeed is WithRand with a fresh source.
func WithSeed(seed int64) Option {
	return WithRand(rand.New(rand.NewSource(seed)))
}

// WithObserver registers fn to run on every Start once the bus exists and
// before CombatStarted is published. Use it to subscribe collaborators.
func WithObserver(fn func(*Session)) Option {
	return func(s *Session) {
		s.observers = append(s.observers, fn)
	}
}

// WithAutopilot lets the built-in bot play the player side.
func WithAutopilot(tuning config.BotDifficultyConfig) Option {
	return func(s *Session) {
		s.tuning = &tuning
	}
}

// Session is not safe for concurrent use. Drive it from one goroutine with
// Advance and the command methods.
type Session struct {
	source    ConfigSource
	logger    *log.Logger
	rng       *rand.Rand
	observers []func(*Session)
	frame     []func(bus.Message)
	tuning    *config.BotDifficultyConfig

	cfg      config.CombatConfig
	world    donburi.World
	bus      *bus.Bus
	sched    *sched.Scheduler
	mirrored bool

	player  *systems.PlayerCombat
	enemy   *systems.EnemyCombat
	posture *systems.Posture
	crit    *systems.CritMeter
	bot     *systems.Autopilot

	started bool
	over    bool
	winner  config.Fighter
}

func New(source ConfigSource, opts ...Option) *Session {
	s := &Session{
		source: source,
		logger: log.New(io.Discard, "", 0),
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start snapshots the config and begins a fresh encounter. A rejected
// config leaves any running encounter untouched.
func (s *Session) Start() error {
	cfg, err := s.source.Snapshot()
	if err != nil {
		s.logger.Printf("combat config rejected: %v", err)
		return fmt.Errorf("start combat: %w", err)
	}
	s.teardown()

	s.cfg = cfg
	s.world = donburi.NewWorld()
	s.bus = bus.New()
	s.sched = sched.New()
	s.mirrored = false
	s.over = false
	s.started = true

	c := &systems.Combat{
		World:    s.world,
		Bus:      s.bus,
		Sched:    s.sched,
		Config:   cfg,
		Rand:     s.rng,
		Defeated: s.defeated,
	}

	var playerExtras, enemyExtras []donburi.IComponentType
	if cfg.CritMeterEnabled {
		playerExtras = append(playerExtras, components.Crit)
	}
	if cfg.PostureEnabled {
		enemyExtras = append(enemyExtras, components.Posture)
	}
	playerEntry := archetypes.Player.Spawn(s.world, playerExtras...)
	enemyEntry := archetypes.Enemy.Spawn(s.world, enemyExtras...)

	// Subscription order is resolution order.
	s.enemy = systems.NewEnemyCombat(c, enemyEntry)
	s.posture = systems.NewPosture(c, enemyEntry)
	s.crit = systems.NewCritMeter(c, playerEntry)
	s.player = systems.NewPlayerCombat(c, playerEntry, s.enemy, s.crit)

	bus.Subscribe(s.bus, func(n bus.Notification) {
		systems.SpawnNotification(s.world, s.cfg, n)
	})
	for _, fn := range s.frame {
		s.attachFrame(fn)
	}
	s.bot = nil
	if s.tuning != nil {
		s.bot = systems.NewAutopilot(s.bus, s.sched, s, cfg, *s.tuning, s.rng)
	}
	for _, fn := range s.observers {
		fn(s)
	}

	s.player.Start()
	s.enemy.Start()
	if s.posture != nil {
		s.posture.Start()
	}
	if s.crit != nil {
		s.crit.Start()
	}
	s.bus.Publish(bus.CombatStarted{})
	s.enemy.Begin()

	s.logger.Printf("combat started: player %d energy, enemy %d energy", cfg.PlayerStartingEnergy, cfg.EnemyStartingEnergy)
	return nil
}

// Restart discards every timer and fighter state and starts over with a
// fresh config snapshot.
func (s *Session) Restart() error {
	s.logger.Printf("combat restarting")
	return s.Start()
}

func (s *Session) teardown() {
	if !s.started {
		return
	}
	s.sched.Stop()
	s.bus.Close()
}

func (s *Session) defeated(f config.Fighter) {
	if s.over {
		return
	}
	s.over = true
	s.winner = f.Opponent()
	s.sched.Stop()
	s.logger.Printf("combat over: %s defeated, %s wins at %s", f, s.winner, s.sched.Now())
	s.bus.Publish(bus.FighterDefeated{Fighter: f})
}

// Advance runs the simulation for dt, then steps the per-frame visuals.
// After the encounter ends only the visuals keep moving.
func (s *Session) Advance(dt time.Duration) {
	if !s.started {
		return
	}
	s.sched.Advance(dt)
	systems.UpdateTelegraph(s.world, dt)
	systems.UpdateEffects(s.world, dt)
	systems.UpdateNotifications(s.world, s.cfg, dt)
}

// OnFrame registers fn for messages queued since the last Flush.
func (s *Session) OnFrame(fn func(bus.Message)) {
	s.frame = append(s.frame, fn)
	if s.started {
		s.attachFrame(fn)
	}
}

// Flush delivers the queued frame messages.
func (s *Session) Flush() {
	if !s.started {
		return
	}
	bus.FrameEvent.ProcessEvents(s.world)
}

func (s *Session) attachFrame(fn func(bus.Message)) {
	if !s.mirrored {
		s.bus.Mirror(s.world)
		s.mirrored = true
	}
	bus.FrameEvent.Subscribe(s.world, func(_ donburi.World, f bus.FrameMessage) {
		fn(f.Message)
	})
}

func (s *Session) active() bool {
	return s.started && !s.over
}

func (s *Session) ParryPress(d config.Direction) {
	if s.active() {
		s.player.ParryPress(d)
	}
}

func (s *Session) ParryRelease() {
	if s.active() {
		s.player.ParryRelease()
	}
}

func (s *Session) Punch() {
	if s.active() {
		s.player.Punch()
	}
}

func (s *Session) Dodge() {
	if s.active() {
		s.player.Dodge()
	}
}

func (s *Session) ActivateCrit() {
	if s.active() {
		s.player.ActivateCrit()
	}
}

// Command routes an input action. pressed is false for a button release,
// which only parry actions react to.
func (s *Session) Command(a config.ActionID, pressed bool) {
	if d, ok := a.ParryDirection(); ok {
		if pressed {
			s.ParryPress(d)
		} else {
			s.ParryRelease()
		}
		return
	}
	if !pressed {
		return
	}
	switch a {
	case config.ActionPunch:
		s.Punch()
	case config.ActionDodge:
		s.Dodge()
	case config.ActionActivateCrit:
		s.ActivateCrit()
	}
}

// Outcome reports the winner once the encounter is over.
func (s *Session) Outcome() (winner config.Fighter, over bool) {
	return s.winner, s.over
}

func (s *Session) Over() bool                    { return s.over }
func (s *Session) Started() bool                 { return s.started }
func (s *Session) Config() config.CombatConfig   { return s.cfg.Clone() }
func (s *Session) Player() *systems.PlayerCombat { return s.player }
func (s *Session) Enemy() *systems.EnemyCombat   { return s.enemy }
func (s *Session) Posture() *systems.Posture     { return s.posture }
func (s *Session) Crit() *systems.CritMeter      { return s.crit }
func (s *Session) Autopilot() *systems.Autopilot { return s.bot }
func (s *Session) Bus() *bus.Bus                 { return s.bus }
func (s *Session) Scheduler() *sched.Scheduler   { return s.sched }
func (s *Session) World() donburi.World          { return s.world }

// Now is the simulation time since the encounter started.
func (s *Session) Now() time.Duration {
	if !s.started {
		return 0
	}
	return s.sched.Now()
}

// Notifications lists the floating texts still alive, oldest first.
func (s *Session) Notifications() []components.NotificationData {
	if !s.started {
		return nil
	}
	return systems.ActiveNotifications(s.world)
}
