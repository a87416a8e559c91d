package system

import (
	"github.com/milk9111/dungeondash/combat"
	"github.com/milk9111/dungeondash/ecs"
	"github.com/milk9111/dungeondash/ecs/component"
)

// AttackSystem advances every attack sequencer from its owner's position
// and facing.
type AttackSystem struct{}

func NewAttackSystem() *AttackSystem { return &AttackSystem{} }

func (s *AttackSystem) Update(w *ecs.World, dt float64) {
	if w == nil {
		return
	}
	ecs.ForEach2(w, component.AttackComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, a *combat.AttackSequencer, t *component.Transform) {
		if isDead(w, e) {
			a.Cancel()
			return
		}
		a.Tick(dt, t.Pos, t.Facing)
	})
}
