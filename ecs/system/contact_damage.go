package system

import (
	"github.com/milk9111/dungeondash/combat"
	"github.com/milk9111/dungeondash/ecs"
	"github.com/milk9111/dungeondash/ecs/component"
	"github.com/milk9111/dungeondash/physics"
)

// ContactDamageSystem hurts and knocks back the player when an enemy body
// touches it. A dashing player sits on the dash category and is not found.
type ContactDamageSystem struct {
	World *physics.World
}

func NewContactDamageSystem(world *physics.World) *ContactDamageSystem {
	return &ContactDamageSystem{World: world}
}

func (s *ContactDamageSystem) Update(w *ecs.World, dt float64) {
	if w == nil || s.World == nil {
		return
	}
	ecs.ForEach(w, component.KnockbackComponent.Kind(), func(_ ecs.Entity, kb *combat.Knockback) {
		kb.Tick(dt)
	})

	ecs.ForEach3(w, component.ContactDamageComponent.Kind(), component.TransformComponent.Kind(), component.PhysicsBodyComponent.Kind(), func(e ecs.Entity, c *combat.ContactDamage, t *component.Transform, b *component.PhysicsBody) {
		c.Tick(dt)
		if !c.Ready() || isDead(w, e) || b.Body == nil {
			return
		}
		radius := b.Body.Radius() + c.Config.Radius
		for _, hit := range s.World.QueryRadius(t.Pos, radius, combat.CategoryPlayer) {
			victim := ecs.FromCombatID(hit.ID)
			vt, ok := ecs.Get(w, victim, component.TransformComponent.Kind())
			if !ok {
				continue
			}
			kb, _ := ecs.Get(w, victim, component.KnockbackComponent.Kind())
			if c.Touch(hit.Target, kb, t.Pos, vt.Pos) {
				return
			}
		}
	})
}
