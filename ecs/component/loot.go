package component

import "github.com/milk9111/dungeondash/combat"

// LootTable is rolled into a loot bag when its owner dies.
type LootTable struct {
	Entries []combat.LootEntry
}

var LootTableComponent = NewComponent[LootTable]()

// LootBag is an interactable container of rolled items.
type LootBag struct {
	Bag    *combat.LootBag
	Radius float64
}

var LootBagComponent = NewComponent[LootBag]()
