package system

import (
	"github.com/milk9111/dungeondash/common"
	"github.com/milk9111/dungeondash/ecs"
	"github.com/milk9111/dungeondash/ecs/component"
)

// PlayerControllerSystem turns input into potion use, strikes, dashes and
// a desired velocity. Dash and knockback velocities override walking.
type PlayerControllerSystem struct{}

func NewPlayerControllerSystem() *PlayerControllerSystem { return &PlayerControllerSystem{} }

func (s *PlayerControllerSystem) Update(w *ecs.World, _ float64) {
	if w == nil {
		return
	}
	p, ok := findPlayer(w)
	if !ok || p.Input == nil {
		return
	}
	body, ok := ecs.Get(w, p.Entity, component.PhysicsBodyComponent.Kind())
	if !ok {
		return
	}
	if !p.alive() {
		body.Desired = common.Vec2{}
		return
	}

	in := p.Input
	move := in.Move
	if move.Len() > 1 {
		move = move.Normalize()
	}
	if !move.IsZero() {
		p.Transform.Facing = move.Normalize()
	}

	if in.UsePotion && p.Health != nil && p.Progress != nil {
		if player, ok := ecs.Get(w, p.Entity, component.PlayerComponent.Kind()); ok && p.Progress.TakePotion() {
			p.Health.Heal(player.PotionHeal)
		}
	}

	dash, hasDash := ecs.Get(w, p.Entity, component.DashComponent.Kind())
	if in.Dash && hasDash {
		dir := move
		if dir.IsZero() {
			dir = p.Transform.Facing
		}
		dash.TryDash(dir, p.Transform.Pos)
	}

	if in.Attack && !(hasDash && dash.IsDashing()) {
		if a, ok := ecs.Get(w, p.Entity, component.AttackComponent.Kind()); ok {
			a.TryStrike()
		}
	}

	switch {
	case hasDash && dash.IsDashing():
		body.Desired = dash.Velocity()
	case s.knockedBack(w, p.Entity):
		kb, _ := ecs.Get(w, p.Entity, component.KnockbackComponent.Kind())
		body.Desired = kb.Velocity()
	default:
		speed := 0.0
		if player, ok := ecs.Get(w, p.Entity, component.PlayerComponent.Kind()); ok {
			speed = player.MoveSpeed
		}
		body.Desired = move.Scale(speed)
	}
}

func (s *PlayerControllerSystem) knockedBack(w *ecs.World, e ecs.Entity) bool {
	kb, ok := ecs.Get(w, e, component.KnockbackComponent.Kind())
	return ok && kb.Active()
}
