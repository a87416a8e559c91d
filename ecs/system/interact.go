package system

import (
	"fmt"
	"log"
	"math"

	"github.com/milk9111/dungeondash/combat"
	"github.com/milk9111/dungeondash/common"
	"github.com/milk9111/dungeondash/ecs"
	"github.com/milk9111/dungeondash/ecs/component"
	"github.com/milk9111/dungeondash/ecs/entity"
)

var chestDropOffset = common.V(0, 1)

// InteractSystem handles the interact button: emptying loot bags, opening
// chests and doors. It also runs pending teleport countdowns.
type InteractSystem struct {
	Deps *entity.Deps
}

func NewInteractSystem(deps *entity.Deps) *InteractSystem {
	return &InteractSystem{Deps: deps}
}

func (s *InteractSystem) Update(w *ecs.World, dt float64) {
	if w == nil {
		return
	}
	p, ok := findPlayer(w)
	if !ok {
		return
	}
	s.tickTeleports(w, p, dt)

	if p.Input == nil || !p.Input.Interact || !p.alive() || p.Progress == nil {
		return
	}
	target, kind := s.nearest(w, p.Transform.Pos)
	switch kind {
	case interactBag:
		s.openBag(w, p, target)
	case interactChest:
		s.openChest(w, target)
	case interactDoor:
		s.openDoor(w, p, target)
	}
}

type interactKind int

const (
	interactNone interactKind = iota
	interactBag
	interactChest
	interactDoor
)

// nearest picks the closest interactable in range of pos.
func (s *InteractSystem) nearest(w *ecs.World, pos common.Vec2) (ecs.Entity, interactKind) {
	var best ecs.Entity
	kind := interactNone
	bestDist := math.Inf(1)
	consider := func(e ecs.Entity, at common.Vec2, radius float64, k interactKind) {
		d := pos.Dist(at)
		if d <= radius && d < bestDist {
			best, kind, bestDist = e, k, d
		}
	}

	ecs.ForEach2(w, component.LootBagComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, b *component.LootBag, t *component.Transform) {
		consider(e, t.Pos, b.Radius, interactBag)
	})
	ecs.ForEach2(w, component.ChestComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, c *component.Chest, t *component.Transform) {
		if !c.Opened {
			consider(e, t.Pos, c.Radius, interactChest)
		}
	})
	ecs.ForEach2(w, component.DoorComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, d *component.Door, t *component.Transform) {
		if !d.Pending {
			consider(e, t.Pos, d.Radius, interactDoor)
		}
	})
	return best, kind
}

func (s *InteractSystem) openBag(w *ecs.World, p playerView, e ecs.Entity) {
	b, _ := ecs.Get(w, e, component.LootBagComponent.Kind())
	var kept []combat.AwardedLoot
	for _, item := range b.Bag.TakeAll() {
		left := p.Progress.Apply(item)
		if left < item.Quantity || item.Quantity == 0 {
			s.cues().PlayCue(pickupCue(item.Kind), p.Transform.Pos)
		}
		if left > 0 {
			item.Quantity = left
			kept = append(kept, item)
		}
	}
	w.Events().Push(ecs.Event{Kind: ecs.EventLootBag, Entity: e, Detail: "opened"})
	if len(kept) > 0 {
		b.Bag = combat.NewLootBag(kept)
		return
	}
	entity.Destroy(w, s.Deps, e)
}

func (s *InteractSystem) openChest(w *ecs.World, e ecs.Entity) {
	c, _ := ecs.Get(w, e, component.ChestComponent.Kind())
	t, _ := ecs.Get(w, e, component.TransformComponent.Kind())
	c.Opened = true
	if c.Contents != "" {
		if _, err := entity.BuildEntity(w, s.Deps, c.Contents, t.Pos.Add(chestDropOffset)); err != nil {
			log.Printf("chest %s: spawn %q: %v", e, c.Contents, err)
		}
	}
	w.Events().Push(ecs.Event{Kind: ecs.EventDoor, Entity: e, Detail: "chest opened"})
}

func (s *InteractSystem) openDoor(w *ecs.World, p playerView, e ecs.Entity) {
	d, _ := ecs.Get(w, e, component.DoorComponent.Kind())
	t, _ := ecs.Get(w, e, component.TransformComponent.Kind())
	switch d.Kind {
	case component.DoorBoss:
		if !p.Progress.UseBossKey() {
			return
		}
		s.cues().PlayCue(combat.CueBossKey, t.Pos)
	case component.DoorLocked:
		if !p.Progress.UseKey() {
			return
		}
		s.cues().PlayCue(combat.CueKey, t.Pos)
	case component.DoorTeleport:
		d.Pending = true
		d.Countdown.Start(d.Delay)
		if !d.Countdown.IsActive() {
			s.teleport(w, p, e, d)
		}
		return
	}
	w.Events().Push(ecs.Event{Kind: ecs.EventDoor, Entity: e, Detail: fmt.Sprintf("%s door opened", d.Kind)})
	entity.Destroy(w, s.Deps, e)
}

func (s *InteractSystem) tickTeleports(w *ecs.World, p playerView, dt float64) {
	ecs.ForEach(w, component.DoorComponent.Kind(), func(e ecs.Entity, d *component.Door) {
		if d.Pending && d.Countdown.Tick(dt) {
			s.teleport(w, p, e, d)
		}
	})
}

func (s *InteractSystem) teleport(w *ecs.World, p playerView, e ecs.Entity, d *component.Door) {
	d.Pending = false
	if !p.alive() {
		return
	}
	if err := entity.SetEntityPosition(w, p.Entity, d.Dest); err != nil {
		log.Printf("teleport %s: %v", e, err)
		return
	}
	if d.RestoreFull && p.Health != nil {
		p.Health.Heal(p.Health.Max())
	}
	w.Events().Push(ecs.Event{Kind: ecs.EventDoor, Entity: e, Detail: "teleported"})
}

func (s *InteractSystem) cues() combat.CueSink {
	if s.Deps == nil {
		return combat.NopCues{}
	}
	return cuesOrNop(s.Deps.Cues)
}
