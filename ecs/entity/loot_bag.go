package entity

import (
	"fmt"

	"github.com/milk9111/dungeondash/combat"
	"github.com/milk9111/dungeondash/common"
	"github.com/milk9111/dungeondash/ecs"
	"github.com/milk9111/dungeondash/ecs/component"
)

const droppedBagRadius = 1.0

// SpawnLootBag rolls entries and, when anything dropped, places a bag at
// pos. The roll commits unique drops before this returns.
func SpawnLootBag(w *ecs.World, deps *Deps, pos common.Vec2, entries []combat.LootEntry) (ecs.Entity, bool, error) {
	if deps == nil || deps.Loot == nil {
		return 0, false, fmt.Errorf("%w: loot generator", combat.ErrMissingCollaborator)
	}
	items := deps.Loot.GenerateLoot(entries)
	if len(items) == 0 {
		return 0, false, nil
	}
	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{Pos: pos, Facing: common.V(1, 0)}); err != nil {
		ecs.DestroyEntity(w, e)
		return 0, false, err
	}
	if err := ecs.Add(w, e, component.LootBagComponent.Kind(), &component.LootBag{Bag: combat.NewLootBag(items), Radius: droppedBagRadius}); err != nil {
		ecs.DestroyEntity(w, e)
		return 0, false, err
	}
	return e, true, nil
}
