package system

import (
	"github.com/milk9111/dungeondash/common"
	"github.com/milk9111/dungeondash/ecs"
	"github.com/milk9111/dungeondash/ecs/component"
)

// BoundarySystem clamps bodies back inside their boundary, or the arena
// when they have none, and stops them.
type BoundarySystem struct{}

func NewBoundarySystem() *BoundarySystem { return &BoundarySystem{} }

func (s *BoundarySystem) Update(w *ecs.World, _ float64) {
	if w == nil {
		return
	}
	var arena common.Rect
	if e, ok := ecs.First(w, component.ArenaComponent.Kind()); ok {
		a, _ := ecs.Get(w, e, component.ArenaComponent.Kind())
		arena = a.Bounds
	}

	ecs.ForEach2(w, component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, b *component.PhysicsBody, t *component.Transform) {
		rect := arena
		if bound, ok := ecs.Get(w, e, component.BoundaryComponent.Kind()); ok {
			rect = bound.Rect
		}
		if rect.Empty() || rect.Contains(t.Pos) {
			return
		}
		t.Pos = rect.ClampPoint(t.Pos)
		b.Desired = common.Vec2{}
		if b.Body != nil {
			b.Body.SetPosition(t.Pos)
			b.Body.SetVelocity(common.Vec2{})
		}
	})
}
