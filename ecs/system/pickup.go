package system

import (
	"fmt"

	"github.com/milk9111/dungeondash/combat"
	"github.com/milk9111/dungeondash/ecs"
	"github.com/milk9111/dungeondash/ecs/component"
	"github.com/milk9111/dungeondash/ecs/entity"
)

// PickupSystem credits pickups the live player walks over. A pickup that
// does not fit, such as a potion at the cap, stays in the world.
type PickupSystem struct {
	Deps *entity.Deps
}

func NewPickupSystem(deps *entity.Deps) *PickupSystem {
	return &PickupSystem{Deps: deps}
}

func (s *PickupSystem) Update(w *ecs.World, _ float64) {
	if w == nil {
		return
	}
	p, ok := findPlayer(w)
	if !ok || !p.alive() || p.Progress == nil {
		return
	}

	ecs.ForEach2(w, component.PickupComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, pk *component.Pickup, t *component.Transform) {
		if p.Transform.Pos.Dist(t.Pos) > pk.Radius {
			return
		}
		left := p.Progress.Apply(combat.AwardedLoot{Name: string(pk.Kind), Kind: pk.Kind, Quantity: pk.Quantity})
		if left == pk.Quantity {
			return
		}
		s.cues().PlayCue(pickupCue(pk.Kind), t.Pos)
		w.Events().Push(ecs.Event{Kind: ecs.EventPickup, Entity: e, Detail: fmt.Sprintf("%s x%d", pk.Kind, pk.Quantity-left)})
		if left > 0 {
			pk.Quantity = left
			return
		}
		entity.Destroy(w, s.Deps, e)
	})
}

func (s *PickupSystem) cues() combat.CueSink {
	if s.Deps == nil {
		return combat.NopCues{}
	}
	return cuesOrNop(s.Deps.Cues)
}

func pickupCue(kind combat.ItemKind) string {
	switch kind {
	case combat.ItemKey:
		return combat.CueKey
	case combat.ItemBossKey:
		return combat.CueBossKey
	case combat.ItemDash:
		return combat.CuePowerUp
	default:
		return combat.CueCollect
	}
}
