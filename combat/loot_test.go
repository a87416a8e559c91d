package combat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLoot(t *testing.T) *LootGenerator {
	t.Helper()
	g, err := NewLootGenerator(NewUniqueDropRegistry(), testRNG())
	require.NoError(t, err)
	return g
}

func TestLootCertainDrop(t *testing.T) {
	g := newTestLoot(t)
	table := []LootEntry{{Name: "coin", Kind: ItemCoin, MinQty: 1, MaxQty: 1, DropChance: 100}}
	for i := 0; i < 100; i++ {
		got := g.GenerateLoot(table)
		require.Len(t, got, 1)
		assert.Equal(t, AwardedLoot{Name: "coin", Kind: ItemCoin, Quantity: 1}, got[0])
	}
}

func TestLootNeverDrops(t *testing.T) {
	g := newTestLoot(t)
	table := []LootEntry{
		{Name: "nothing", MinQty: 1, MaxQty: 5, DropChance: 0},
		{Name: "negative", MinQty: 1, MaxQty: 5, DropChance: -10},
	}
	for i := 0; i < 100; i++ {
		assert.Empty(t, g.GenerateLoot(table))
	}
}

func TestLootUniqueAcrossTables(t *testing.T) {
	g := newTestLoot(t)
	fragment := LootEntry{Name: "fragment", Kind: ItemFragment, MinQty: 1, MaxQty: 1, DropChance: 100, UniqueKey: "fragment_1"}

	first := g.GenerateLoot([]LootEntry{fragment, fragment})
	require.Len(t, first, 1, "one pass cannot award a unique item twice")
	assert.Empty(t, g.GenerateLoot([]LootEntry{fragment}))
	assert.True(t, g.Registry.Has("fragment_1"))

	g.Registry.Reset()
	assert.Len(t, g.GenerateLoot([]LootEntry{fragment}), 1)
}

func TestLootPreservesOrderAndRange(t *testing.T) {
	g := newTestLoot(t)
	table := []LootEntry{
		{Name: "a", MinQty: 2, MaxQty: 4, DropChance: 100},
		{Name: "b", MinQty: 5, MaxQty: 1, DropChance: 100},
		{Name: "c", MinQty: 0, MaxQty: 0, DropChance: 250},
	}
	seen := map[int]bool{}
	for i := 0; i < 200; i++ {
		got := g.GenerateLoot(table)
		require.Len(t, got, 3)
		assert.Equal(t, []string{"a", "b", "c"}, []string{got[0].Name, got[1].Name, got[2].Name})
		assert.GreaterOrEqual(t, got[0].Quantity, 2)
		assert.LessOrEqual(t, got[0].Quantity, 4)
		assert.GreaterOrEqual(t, got[1].Quantity, 1)
		assert.LessOrEqual(t, got[1].Quantity, 5)
		seen[got[0].Quantity] = true
	}
	assert.Len(t, seen, 3, "every quantity in range shows up")
}

func TestLootPartialChance(t *testing.T) {
	g := newTestLoot(t)
	table := []LootEntry{{Name: "gem", MinQty: 1, MaxQty: 1, DropChance: 25}}
	drops := 0
	for i := 0; i < 4000; i++ {
		drops += len(g.GenerateLoot(table))
	}
	assert.InDelta(t, 1000, drops, 150)
}

func TestLootEntryValidate(t *testing.T) {
	cases := []struct {
		name  string
		entry LootEntry
		ok    bool
	}{
		{"valid", LootEntry{Name: "x", MinQty: 1, MaxQty: 2, DropChance: 50}, true},
		{"no name", LootEntry{MinQty: 1, MaxQty: 1, DropChance: 50}, false},
		{"inverted", LootEntry{Name: "x", MinQty: 3, MaxQty: 1, DropChance: 50}, false},
		{"chance too high", LootEntry{Name: "x", MinQty: 1, MaxQty: 1, DropChance: 101}, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			err := c.entry.Validate()
			if c.ok {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, ErrInvalidLootEntry)
		})
	}
}

func TestLootBagTransfer(t *testing.T) {
	bag := NewLootBag([]AwardedLoot{
		{Name: "coin", Kind: ItemCoin, Quantity: 7},
		{Name: "potion", Kind: ItemPotion, Quantity: 5},
		{Name: "key", Kind: ItemKey, Quantity: 1},
	})
	var p Progression
	for _, item := range bag.TakeAll() {
		p.Apply(item)
	}
	assert.True(t, bag.Empty())
	assert.Equal(t, 7, p.Coins)
	assert.Equal(t, MaxPotions, p.Potions)
	assert.Equal(t, 1, p.Keys)
}
