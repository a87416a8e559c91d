package system

import (
	"github.com/milk9111/dungeondash/ecs"
	"github.com/milk9111/dungeondash/ecs/component"
	"github.com/milk9111/dungeondash/physics"
)

// PhysicsSystem pushes desired velocities into the space, steps it and
// copies positions back into transforms.
type PhysicsSystem struct {
	World *physics.World
}

func NewPhysicsSystem(world *physics.World) *PhysicsSystem {
	return &PhysicsSystem{World: world}
}

func (s *PhysicsSystem) Update(w *ecs.World, dt float64) {
	if w == nil || s.World == nil {
		return
	}
	ecs.ForEach(w, component.PhysicsBodyComponent.Kind(), func(_ ecs.Entity, b *component.PhysicsBody) {
		if b.Body != nil {
			b.Body.SetVelocity(b.Desired)
		}
	})
	s.World.Step(dt)
	ecs.ForEach2(w, component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, b *component.PhysicsBody, t *component.Transform) {
		if b.Body != nil {
			t.Pos = b.Body.Position()
		}
	})
}
