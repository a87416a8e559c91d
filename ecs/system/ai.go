package system

import (
	"github.com/milk9111/dungeondash/combat"
	"github.com/milk9111/dungeondash/common"
	"github.com/milk9111/dungeondash/ecs"
	"github.com/milk9111/dungeondash/ecs/component"
)

// AISystem feeds every enemy brain the live player's position and applies
// the resulting intent to the enemy's body and facing.
type AISystem struct{}

func NewAISystem() *AISystem { return &AISystem{} }

func (s *AISystem) Update(w *ecs.World, dt float64) {
	if w == nil {
		return
	}
	var target common.Vec2
	hasTarget := false
	if p, ok := findPlayer(w); ok && p.alive() {
		target, hasTarget = p.Transform.Pos, true
	}

	ecs.ForEach2(w, component.BrainComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, brain *combat.EnemyBrain, t *component.Transform) {
		body, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())
		if !ok {
			return
		}
		if isDead(w, e) {
			body.Desired = common.Vec2{}
			return
		}
		intent := brain.Update(dt, t.Pos, target, hasTarget)
		body.Desired = intent.Velocity
		t.Facing = intent.Facing
	})
}
