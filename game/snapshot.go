package game

import (
	"sort"

	"github.com/milk9111/dungeondash/combat"
	"github.com/milk9111/dungeondash/common"
	"github.com/milk9111/dungeondash/ecs"
	"github.com/milk9111/dungeondash/ecs/component"
)

// EntityKind groups entities for presentation.
type EntityKind string

const (
	KindPlayer     EntityKind = "player"
	KindEnemy      EntityKind = "enemy"
	KindPickup     EntityKind = "pickup"
	KindLootBag    EntityKind = "loot_bag"
	KindDoor       EntityKind = "door"
	KindChest      EntityKind = "chest"
	KindCheckpoint EntityKind = "checkpoint"
	KindOther      EntityKind = "other"
)

// EntityStatus is a read-only view of one entity for frontends.
type EntityStatus struct {
	Entity ecs.Entity
	Kind   EntityKind
	Label  string
	Pos    common.Vec2
	Facing common.Vec2
	Radius float64

	HP    float64
	MaxHP float64

	IsAttacking bool
	IsMoving    bool
	IsDashing   bool
	IsDead      bool
	IsFlashing  bool
	State       string

	DashCooldown float64
}

type Snapshot struct {
	Tick     uint64
	Bounds   common.Rect
	Progress combat.Progression
	Entities []EntityStatus
}

// Player returns the player's status, if present.
func (s Snapshot) Player() (EntityStatus, bool) {
	for _, e := range s.Entities {
		if e.Kind == KindPlayer {
			return e, true
		}
	}
	return EntityStatus{}, false
}

// Snapshot collects every positioned entity, ordered by entity id.
func (s *Session) Snapshot() Snapshot {
	snap := Snapshot{Tick: s.tick, Progress: *s.progress}
	w := s.world
	if e, ok := ecs.First(w, component.ArenaComponent.Kind()); ok {
		a, _ := ecs.Get(w, e, component.ArenaComponent.Kind())
		snap.Bounds = a.Bounds
	}

	ecs.ForEach(w, component.TransformComponent.Kind(), func(e ecs.Entity, t *component.Transform) {
		st := EntityStatus{Entity: e, Kind: KindOther, Pos: t.Pos, Facing: t.Facing}
		if b, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind()); ok && b.Body != nil {
			st.Radius = b.Body.Radius()
			st.IsMoving = !b.Desired.IsZero()
		}
		if h, ok := ecs.Get(w, e, component.HealthComponent.Kind()); ok {
			st.HP, st.MaxHP = h.Current(), h.Max()
			st.IsDead = h.IsDead()
			st.IsFlashing = h.IsFlashing()
		}
		if a, ok := ecs.Get(w, e, component.AttackComponent.Kind()); ok {
			st.IsAttacking = a.IsAttacking()
			st.State = a.State().String()
		}
		if d, ok := ecs.Get(w, e, component.DashComponent.Kind()); ok {
			st.IsDashing = d.IsDashing()
			st.DashCooldown = d.CooldownFraction()
		}
		if b, ok := ecs.Get(w, e, component.BrainComponent.Kind()); ok {
			st.IsMoving = b.IsMoving()
			st.State = b.State().String()
		}
		classify(w, e, &st)
		snap.Entities = append(snap.Entities, st)
	})
	sort.Slice(snap.Entities, func(i, j int) bool { return snap.Entities[i].Entity < snap.Entities[j].Entity })
	return snap
}

func classify(w *ecs.World, e ecs.Entity, st *EntityStatus) {
	switch {
	case ecs.Has(w, e, component.PlayerTagComponent.Kind()):
		st.Kind, st.Label = KindPlayer, "player"
	case ecs.Has(w, e, component.EnemyTagComponent.Kind()):
		st.Kind, st.Label = KindEnemy, "enemy"
	}
	if p, ok := ecs.Get(w, e, component.PickupComponent.Kind()); ok {
		st.Kind, st.Label, st.Radius = KindPickup, string(p.Kind), p.Radius
	}
	if b, ok := ecs.Get(w, e, component.LootBagComponent.Kind()); ok {
		st.Kind, st.Label, st.Radius = KindLootBag, "loot", b.Radius
	}
	if d, ok := ecs.Get(w, e, component.DoorComponent.Kind()); ok {
		st.Kind, st.Label, st.Radius = KindDoor, string(d.Kind), d.Radius
	}
	if c, ok := ecs.Get(w, e, component.ChestComponent.Kind()); ok {
		st.Kind, st.Label, st.Radius = KindChest, "chest", c.Radius
		if c.Opened {
			st.State = "opened"
		}
	}
	if c, ok := ecs.Get(w, e, component.CheckpointComponent.Kind()); ok {
		st.Kind, st.Label, st.Radius = KindCheckpoint, "checkpoint", c.Radius
	}
}
