package system

import (
	"fmt"

	"github.com/milk9111/dungeondash/ecs"
	"github.com/milk9111/dungeondash/ecs/component"
)

// CheckpointSystem activates a checkpoint when the live player reaches it.
type CheckpointSystem struct{}

func NewCheckpointSystem() *CheckpointSystem { return &CheckpointSystem{} }

func (s *CheckpointSystem) Update(w *ecs.World, _ float64) {
	if w == nil {
		return
	}
	p, ok := findPlayer(w)
	if !ok || !p.alive() || p.Progress == nil {
		return
	}
	arenaEnt, ok := ecs.First(w, component.ArenaComponent.Kind())
	if !ok {
		return
	}
	arena, _ := ecs.Get(w, arenaEnt, component.ArenaComponent.Kind())

	ecs.ForEach2(w, component.CheckpointComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, c *component.Checkpoint, t *component.Transform) {
		if c.Index == p.Progress.Checkpoint || p.Transform.Pos.Dist(t.Pos) > c.Radius {
			return
		}
		if p.Progress.SetCheckpoint(c.Index, len(arena.Spawns)) {
			w.Events().Push(ecs.Event{Kind: ecs.EventCheckpoint, Entity: e, Detail: fmt.Sprintf("checkpoint %d", c.Index)})
		}
	})
}
