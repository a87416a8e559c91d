package combat

import (
	"errors"
	"fmt"
	"math/rand"
	"sync"
)

// ErrInvalidLootEntry reports a loot table row that cannot be rolled.
var ErrInvalidLootEntry = errors.New("combat: invalid loot entry")

// ItemKind says how an awarded item is applied to progression.
type ItemKind string

const (
	ItemMisc     ItemKind = ""
	ItemCoin     ItemKind = "coin"
	ItemPotion   ItemKind = "potion"
	ItemFragment ItemKind = "fragment"
	ItemKey      ItemKind = "key"
	ItemBossKey  ItemKind = "boss_key"
	ItemDash     ItemKind = "dash"
)

// LootEntry is one row of a loot table. DropChance is a percentage in
// [0,100]. A non-empty UniqueKey limits the item to one drop per session.
type LootEntry struct {
	Name       string   `yaml:"name"`
	Kind       ItemKind `yaml:"kind"`
	MinQty     int      `yaml:"min_qty"`
	MaxQty     int      `yaml:"max_qty"`
	DropChance float64  `yaml:"drop_chance"`
	UniqueKey  string   `yaml:"unique_key"`
}

// Validate reports rows a designer most likely got wrong.
func (e LootEntry) Validate() error {
	switch {
	case e.Name == "":
		return fmt.Errorf("%w: empty name", ErrInvalidLootEntry)
	case e.MinQty < 0 || e.MaxQty < 0:
		return fmt.Errorf("%w: %s: negative quantity", ErrInvalidLootEntry, e.Name)
	case e.MinQty > e.MaxQty:
		return fmt.Errorf("%w: %s: min_qty %d > max_qty %d", ErrInvalidLootEntry, e.Name, e.MinQty, e.MaxQty)
	case e.DropChance < 0 || e.DropChance > 100:
		return fmt.Errorf("%w: %s: drop_chance %.2f outside [0,100]", ErrInvalidLootEntry, e.Name, e.DropChance)
	}
	return nil
}

// AwardedLoot is one item produced by a roll.
type AwardedLoot struct {
	Name      string   `yaml:"name"`
	Kind      ItemKind `yaml:"kind"`
	Quantity  int      `yaml:"quantity"`
	UniqueKey string   `yaml:"unique_key,omitempty"`
}

// UniqueDropRegistry remembers which unique items already dropped this
// session. It is safe for concurrent use.
type UniqueDropRegistry struct {
	mu   sync.Mutex
	keys map[string]struct{}
}

func NewUniqueDropRegistry() *UniqueDropRegistry {
	return &UniqueDropRegistry{keys: make(map[string]struct{})}
}

func (r *UniqueDropRegistry) Has(key string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.keys[key]
	return ok
}

// Claim records key and reports whether it was unclaimed.
func (r *UniqueDropRegistry) Claim(key string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.keys == nil {
		r.keys = make(map[string]struct{})
	}
	if _, ok := r.keys[key]; ok {
		return false
	}
	r.keys[key] = struct{}{}
	return true
}

// Keys returns the claimed keys in no particular order.
func (r *UniqueDropRegistry) Keys() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.keys))
	for k := range r.keys {
		out = append(out, k)
	}
	return out
}

// Reset forgets every claim. Called when a new game starts.
func (r *UniqueDropRegistry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	clear(r.keys)
}

// LootGenerator rolls loot tables.
type LootGenerator struct {
	Registry *UniqueDropRegistry
	Rand     *rand.Rand
}

func NewLootGenerator(registry *UniqueDropRegistry, rng *rand.Rand) (*LootGenerator, error) {
	if registry == nil || rng == nil {
		return nil, fmt.Errorf("%w: loot generator needs a registry and a random source", ErrMissingCollaborator)
	}
	return &LootGenerator{Registry: registry, Rand: rng}, nil
}

// GenerateLoot rolls every entry independently and returns what dropped in
// table order. A roll r in [0,100) succeeds when r <= DropChance, so a
// chance of 0 never drops and 100 always does. Inverted quantity bounds are
// swapped and chances are clamped rather than rejected.
func (g *LootGenerator) GenerateLoot(table []LootEntry) []AwardedLoot {
	var out []AwardedLoot
	for _, entry := range table {
		if entry.UniqueKey != "" && g.Registry.Has(entry.UniqueKey) {
			continue
		}
		chance := entry.DropChance
		if chance <= 0 {
			continue
		}
		if chance > 100 {
			chance = 100
		}
		if g.Rand.Float64()*100 > chance {
			continue
		}
		lo, hi := entry.MinQty, entry.MaxQty
		if lo > hi {
			lo, hi = hi, lo
		}
		qty := lo + g.Rand.Intn(hi-lo+1)
		if entry.UniqueKey != "" && !g.Registry.Claim(entry.UniqueKey) {
			continue
		}
		out = append(out, AwardedLoot{Name: entry.Name, Kind: entry.Kind, Quantity: qty, UniqueKey: entry.UniqueKey})
	}
	return out
}

// LootBag holds rolled items until the player opens it.
type LootBag struct {
	items []AwardedLoot
}

func NewLootBag(items []AwardedLoot) *LootBag {
	return &LootBag{items: append([]AwardedLoot(nil), items...)}
}

func (b *LootBag) Items() []AwardedLoot {
	if b == nil {
		return nil
	}
	return append([]AwardedLoot(nil), b.items...)
}

func (b *LootBag) Empty() bool { return b == nil || len(b.items) == 0 }

// TakeAll empties the bag and returns its contents.
func (b *LootBag) TakeAll() []AwardedLoot {
	if b == nil {
		return nil
	}
	items := b.items
	b.items = nil
	return items
}
