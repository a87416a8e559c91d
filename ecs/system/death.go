package system

import (
	"log"

	"github.com/milk9111/dungeondash/combat"
	"github.com/milk9111/dungeondash/common"
	"github.com/milk9111/dungeondash/ecs"
	"github.com/milk9111/dungeondash/ecs/component"
	"github.com/milk9111/dungeondash/ecs/entity"
)

// DeathSystem runs last. Dead enemies drop their loot and despawn; a dead
// player waits out its respawn delay and returns at the active checkpoint.
type DeathSystem struct {
	Deps *entity.Deps
}

func NewDeathSystem(deps *entity.Deps) *DeathSystem {
	return &DeathSystem{Deps: deps}
}

func (s *DeathSystem) Update(w *ecs.World, dt float64) {
	if w == nil {
		return
	}
	s.respawnPlayers(w, dt)
	s.killPlayers(w)
	s.despawnEnemies(w)
}

func (s *DeathSystem) respawnPlayers(w *ecs.World, dt float64) {
	ecs.ForEach2(w, component.RespawnComponent.Kind(), component.HealthComponent.Kind(), func(e ecs.Entity, r *component.Respawn, h *combat.Health) {
		if !r.Countdown.Tick(dt) {
			return
		}
		ecs.Remove(w, e, component.RespawnComponent.Kind())
		if err := entity.SetEntityPosition(w, e, s.spawnPoint(w, e)); err != nil {
			log.Printf("respawn %s: %v", e, err)
		}
		h.Revive()
		if d, ok := ecs.Get(w, e, component.DashComponent.Kind()); ok {
			d.Reset()
		}
		if a, ok := ecs.Get(w, e, component.AttackComponent.Kind()); ok {
			a.Cancel()
		}
		if kb, ok := ecs.Get(w, e, component.KnockbackComponent.Kind()); ok {
			kb.Clear()
		}
		w.Events().Push(ecs.Event{Kind: ecs.EventRespawn, Entity: e})
	})
}

func (s *DeathSystem) killPlayers(w *ecs.World) {
	ecs.ForEach3(w, component.PlayerComponent.Kind(), component.HealthComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, p *component.Player, h *combat.Health, t *component.Transform) {
		if !h.IsDead() || ecs.Has(w, e, component.RespawnComponent.Kind()) {
			return
		}
		r := &component.Respawn{}
		r.Countdown.Start(p.RespawnDelay)
		if err := ecs.Add(w, e, component.RespawnComponent.Kind(), r); err != nil {
			log.Printf("player %s: schedule respawn: %v", e, err)
			return
		}
		if b, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind()); ok {
			b.Desired = common.Vec2{}
		}
		s.cues().PlayCue(combat.CueDeath, t.Pos)
	})
}

func (s *DeathSystem) despawnEnemies(w *ecs.World) {
	ecs.ForEach3(w, component.EnemyTagComponent.Kind(), component.HealthComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, _ *component.EnemyTag, h *combat.Health, t *component.Transform) {
		if !h.IsDead() {
			return
		}
		if table, ok := ecs.Get(w, e, component.LootTableComponent.Kind()); ok {
			bag, dropped, err := entity.SpawnLootBag(w, s.Deps, t.Pos, table.Entries)
			switch {
			case err != nil:
				log.Printf("enemy %s: drop loot: %v", e, err)
			case dropped:
				w.Events().Push(ecs.Event{Kind: ecs.EventLootBag, Entity: bag, Detail: "dropped"})
			}
		}
		s.cues().StopLoop(e.CombatID())
		s.cues().PlayCue(combat.CueDeath, t.Pos)
		entity.Destroy(w, s.Deps, e)
		w.Events().Push(ecs.Event{Kind: ecs.EventDespawn, Entity: e})
	})
}

// spawnPoint returns the active checkpoint's spawn, falling back to the
// first spawn and then to the entity's own position.
func (s *DeathSystem) spawnPoint(w *ecs.World, e ecs.Entity) common.Vec2 {
	arenaEnt, ok := ecs.First(w, component.ArenaComponent.Kind())
	if !ok {
		return positionOf(w, e)
	}
	arena, _ := ecs.Get(w, arenaEnt, component.ArenaComponent.Kind())
	idx := 0
	if prog, ok := ecs.Get(w, e, component.ProgressionComponent.Kind()); ok {
		idx = prog.Checkpoint
	}
	if p, ok := arena.SpawnFor(idx); ok {
		return p
	}
	return positionOf(w, e)
}

func (s *DeathSystem) cues() combat.CueSink {
	if s.Deps == nil {
		return combat.NopCues{}
	}
	return cuesOrNop(s.Deps.Cues)
}
