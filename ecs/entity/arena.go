package entity

import (
	"fmt"
	"log"

	"github.com/milk9111/dungeondash/common"
	"github.com/milk9111/dungeondash/ecs"
	"github.com/milk9111/dungeondash/ecs/component"
	"github.com/milk9111/dungeondash/prefabs"
)

// BuildArena creates the arena singleton, the player at the active
// checkpoint and every placed entity. A placement that fails to build is
// logged and skipped so one bad prefab does not take the arena down.
func BuildArena(w *ecs.World, deps *Deps, spec prefabs.ArenaSpec) (ecs.Entity, error) {
	arena := ecs.CreateEntity(w)
	spawns := make([]common.Vec2, 0, len(spec.SpawnPoints))
	for _, p := range spec.SpawnPoints {
		spawns = append(spawns, common.V(p.X, p.Y))
	}
	a := &component.Arena{
		Name:   spec.Name,
		Bounds: common.Rect{Width: spec.Width, Height: spec.Height},
		Spawns: spawns,
	}
	if err := ecs.Add(w, arena, component.ArenaComponent.Kind(), a); err != nil {
		return 0, err
	}

	checkpoint := 0
	if deps != nil && deps.Progress != nil {
		checkpoint = deps.Progress.Checkpoint
	}
	spawn, ok := a.SpawnFor(checkpoint)
	if !ok {
		return 0, fmt.Errorf("arena %s: no spawn points", spec.Name)
	}
	player, err := NewPlayer(w, deps, spec.Player, spawn)
	if err != nil {
		return 0, fmt.Errorf("arena %s: player: %w", spec.Name, err)
	}

	for i, p := range spec.Entities {
		if _, err := BuildEntity(w, deps, p.Prefab, common.V(p.X, p.Y)); err != nil {
			log.Printf("arena %s: entity %d (%s): %v", spec.Name, i, p.Prefab, err)
		}
	}
	return player, nil
}
