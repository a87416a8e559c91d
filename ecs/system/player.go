package system

import (
	"github.com/milk9111/dungeondash/combat"
	"github.com/milk9111/dungeondash/common"
	"github.com/milk9111/dungeondash/ecs"
	"github.com/milk9111/dungeondash/ecs/component"
)

type playerView struct {
	Entity    ecs.Entity
	Transform *component.Transform
	Health    *combat.Health
	Progress  *combat.Progression
	Input     *component.Input
}

// findPlayer returns the first player entity with a transform. Health,
// progression and input are nil when the player lacks them.
func findPlayer(w *ecs.World) (playerView, bool) {
	e, ok := ecs.First(w, component.PlayerTagComponent.Kind())
	if !ok {
		return playerView{}, false
	}
	t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok {
		return playerView{}, false
	}
	v := playerView{Entity: e, Transform: t}
	v.Health, _ = ecs.Get(w, e, component.HealthComponent.Kind())
	v.Progress, _ = ecs.Get(w, e, component.ProgressionComponent.Kind())
	v.Input, _ = ecs.Get(w, e, component.InputComponent.Kind())
	return v, true
}

func (p playerView) alive() bool {
	return p.Health == nil || !p.Health.IsDead()
}

func isDead(w *ecs.World, e ecs.Entity) bool {
	h, ok := ecs.Get(w, e, component.HealthComponent.Kind())
	return ok && h.IsDead()
}

func cuesOrNop(c combat.CueSink) combat.CueSink {
	if c == nil {
		return combat.NopCues{}
	}
	return c
}

func positionOf(w *ecs.World, e ecs.Entity) common.Vec2 {
	if t, ok := ecs.Get(w, e, component.TransformComponent.Kind()); ok {
		return t.Pos
	}
	return common.Vec2{}
}
