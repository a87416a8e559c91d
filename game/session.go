// Package game owns one running arena: the ECS world, the physics space,
// progression and the unique-drop registry, advanced by a fixed dt.
package game

import (
	"fmt"
	"log"
	"math/rand"

	"github.com/milk9111/dungeondash/combat"
	"github.com/milk9111/dungeondash/common"
	"github.com/milk9111/dungeondash/ecs"
	"github.com/milk9111/dungeondash/ecs/component"
	"github.com/milk9111/dungeondash/ecs/entity"
	"github.com/milk9111/dungeondash/ecs/system"
	"github.com/milk9111/dungeondash/physics"
	"github.com/milk9111/dungeondash/prefabs"
)

const defaultArena = "arena"

// Options configures a Session.
type Options struct {
	// Arena is the arena prefab to load. Ignored when Spec is set.
	Arena string
	// Spec, when non-nil, is used instead of loading Arena.
	Spec *prefabs.ArenaSpec
	Seed int64
	// DashUnlocked starts new games with the dash already available.
	DashUnlocked bool
	Cues         combat.CueSink
	// LogEvents prints every drained world event.
	LogEvents bool
}

// Session is a single-threaded game instance. Frontends call SetInput and
// Update once per fixed tick and read Snapshot for presentation.
type Session struct {
	opts Options

	world    *ecs.World
	physics  *physics.World
	registry *combat.UniqueDropRegistry
	progress *combat.Progression
	rng      *rand.Rand
	combat   *combat.EventEmitter
	deps     *entity.Deps

	input     *system.InputSystem
	scripts   *system.AIScriptSystem
	scheduler *ecs.Scheduler

	player ecs.Entity
	tick   uint64
}

func NewSession(opts Options) (*Session, error) {
	if opts.Arena == "" {
		opts.Arena = defaultArena
	}
	if opts.Cues == nil {
		opts.Cues = combat.NopCues{}
	}
	s := &Session{
		opts:     opts,
		registry: combat.NewUniqueDropRegistry(),
		progress: &combat.Progression{DashUnlocked: opts.DashUnlocked},
		rng:      rand.New(rand.NewSource(opts.Seed)),
	}
	if err := s.loadArena(); err != nil {
		return nil, err
	}
	return s, nil
}

// NewGame forgets every unique drop and all progression, then rebuilds the
// arena from scratch.
func (s *Session) NewGame() error {
	s.registry.Reset()
	s.progress.Reset()
	s.progress.DashUnlocked = s.opts.DashUnlocked
	return s.loadArena()
}

// Reload rebuilds the arena keeping progression and claimed unique drops.
// The player returns at the active checkpoint.
func (s *Session) Reload() error {
	return s.loadArena()
}

func (s *Session) loadArena() error {
	spec, err := s.arenaSpec()
	if err != nil {
		return err
	}

	loot, err := combat.NewLootGenerator(s.registry, s.rng)
	if err != nil {
		return err
	}
	world := ecs.NewWorld()
	s.combat = &combat.EventEmitter{}
	s.combat.Subscribe(func(evt combat.Event) {
		id := evt.TargetID
		if id == 0 {
			id = evt.AttackerID
		}
		world.Events().Push(ecs.Event{Kind: ecs.EventCombat, Entity: ecs.FromCombatID(id), Combat: evt})
	})
	pw := physics.NewWorld()
	deps := &entity.Deps{
		Physics:  pw,
		Rand:     s.rng,
		Cues:     s.opts.Cues,
		Loot:     loot,
		Progress: s.progress,
		Events:   s.combat,
	}

	player, err := entity.BuildArena(world, deps, spec)
	if err != nil {
		return fmt.Errorf("game: load arena %s: %w", spec.Name, err)
	}

	s.world, s.physics, s.deps, s.player = world, pw, deps, player
	s.input = system.NewInputSystem()
	s.scripts = system.NewAIScriptSystem(s.opts.Cues)
	s.scheduler = ecs.NewScheduler(
		s.input,
		system.NewPlayerControllerSystem(),
		system.NewAISystem(),
		s.scripts,
		system.NewPhysicsSystem(pw),
		system.NewBoundarySystem(),
		system.NewDashSystem(),
		system.NewAttackSystem(),
		system.NewContactDamageSystem(pw),
		system.NewHealthSystem(),
		system.NewPickupSystem(deps),
		system.NewInteractSystem(deps),
		system.NewCheckpointSystem(),
		system.NewDeathSystem(deps),
	)
	s.tick = 0
	log.Printf("game: loaded arena %s (%d entities)", spec.Name, len(ecs.Entities(world)))
	return nil
}

func (s *Session) arenaSpec() (prefabs.ArenaSpec, error) {
	if s.opts.Spec != nil {
		return *s.opts.Spec, nil
	}
	return prefabs.LoadArenaSpec(s.opts.Arena)
}

// SetInput records the frontend's intent for the next Update.
func (s *Session) SetInput(in component.Input) {
	s.input.Set(in)
}

// Update advances the world by dt and returns the events it produced.
func (s *Session) Update(dt float64) []ecs.Event {
	if dt <= 0 {
		return nil
	}
	s.scheduler.Update(s.world, dt)
	s.tick++
	events := s.world.Events().Drain()
	if s.opts.LogEvents {
		for _, evt := range events {
			logEvent(evt)
		}
	}
	return events
}

// ReloadScripts makes enemy scripts recompile on their next transition.
func (s *Session) ReloadScripts() {
	s.scripts.Reload()
}

func (s *Session) World() *ecs.World                    { return s.world }
func (s *Session) Physics() *physics.World              { return s.physics }
func (s *Session) Player() ecs.Entity                   { return s.player }
func (s *Session) Progress() *combat.Progression        { return s.progress }
func (s *Session) Registry() *combat.UniqueDropRegistry { return s.registry }
func (s *Session) Deps() *entity.Deps                   { return s.deps }
func (s *Session) Tick() uint64                         { return s.tick }

// Spawn builds a prefab into the running arena.
func (s *Session) Spawn(prefab string, pos common.Vec2) (ecs.Entity, error) {
	return entity.BuildEntity(s.world, s.deps, prefab, pos)
}

func logEvent(evt ecs.Event) {
	switch evt.Kind {
	case ecs.EventCombat:
		c := evt.Combat
		if c.Type == combat.EventHit || c.Type == combat.EventDeath {
			log.Printf("combat: %s attacker=%d target=%d dmg=%.1f", c.Type, c.AttackerID, c.TargetID, c.Damage)
		}
	default:
		log.Printf("event: %s entity=%s %s", evt.Kind, evt.Entity, evt.Detail)
	}
}
