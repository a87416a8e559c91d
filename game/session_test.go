package game

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/milk9111/dungeondash/combat"
	"github.com/milk9111/dungeondash/common"
	"github.com/milk9111/dungeondash/ecs"
	"github.com/milk9111/dungeondash/ecs/component"
	"github.com/milk9111/dungeondash/ecs/entity"
	"github.com/milk9111/dungeondash/prefabs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const dt = 1.0 / 60.0

func testSpec(entities ...prefabs.PlacementSpec) *prefabs.ArenaSpec {
	return &prefabs.ArenaSpec{
		Name:        "test",
		Width:       24,
		Height:      10,
		SpawnPoints: []prefabs.PointSpec{{X: 3, Y: 5}, {X: 10, Y: 5}},
		Player:      "player",
		Entities:    entities,
	}
}

func newTestSession(t *testing.T, spec *prefabs.ArenaSpec) *Session {
	t.Helper()
	s, err := NewSession(Options{Spec: spec, Seed: 12345, DashUnlocked: true})
	require.NoError(t, err)
	return s
}

func health(t *testing.T, s *Session, e ecs.Entity) *combat.Health {
	t.Helper()
	h, ok := ecs.Get(s.World(), e, component.HealthComponent.Kind())
	require.True(t, ok)
	return h
}

func position(t *testing.T, s *Session, e ecs.Entity) common.Vec2 {
	t.Helper()
	tr, ok := ecs.Get(s.World(), e, component.TransformComponent.Kind())
	require.True(t, ok)
	return tr.Pos
}

func lootBags(s *Session) map[ecs.Entity][]combat.AwardedLoot {
	out := map[ecs.Entity][]combat.AwardedLoot{}
	ecs.ForEach(s.World(), component.LootBagComponent.Kind(), func(e ecs.Entity, b *component.LootBag) {
		out[e] = b.Bag.Items()
	})
	return out
}

func hasKind(items []combat.AwardedLoot, kind combat.ItemKind) bool {
	for _, it := range items {
		if it.Kind == kind {
			return true
		}
	}
	return false
}

func runUntil(s *Session, maxTicks int, done func([]ecs.Event) bool) bool {
	for i := 0; i < maxTicks; i++ {
		if done(s.Update(dt)) {
			return true
		}
	}
	return false
}

func TestDashKillDropsUniqueFragmentOnce(t *testing.T) {
	s := newTestSession(t, testSpec())
	enemy, err := s.Spawn("enemy_wanderer", common.V(6, 5))
	require.NoError(t, err)
	health(t, s, enemy).SetCurrent(20)

	s.SetInput(component.Input{Move: common.V(1, 0), Dash: true})
	killed := runUntil(s, 60, func([]ecs.Event) bool { return !ecs.IsAlive(s.World(), enemy) })
	require.True(t, killed, "dash should kill the wounded enemy")
	assert.True(t, s.Registry().Has("wanderer_fragment"))

	bags := lootBags(s)
	require.Len(t, bags, 1)
	var first ecs.Entity
	for e, items := range bags {
		first = e
		assert.True(t, hasKind(items, combat.ItemFragment))
		assert.True(t, hasKind(items, combat.ItemCoin))
	}

	s.SetInput(component.Input{})
	second, err := s.Spawn("enemy_wanderer", common.V(20, 8))
	require.NoError(t, err)
	health(t, s, second).TakeDamage(1000)
	s.Update(dt)
	require.False(t, ecs.IsAlive(s.World(), second))

	bags = lootBags(s)
	require.Len(t, bags, 2)
	for e, items := range bags {
		if e == first {
			continue
		}
		assert.False(t, hasKind(items, combat.ItemFragment), "unique fragment drops once")
		assert.True(t, hasKind(items, combat.ItemCoin))
	}

	require.NoError(t, entity.SetEntityPosition(s.World(), s.Player(), position(t, s, first)))
	s.SetInput(component.Input{Interact: true})
	s.Update(dt)
	assert.Equal(t, 1, s.Progress().Fragments)
	assert.Greater(t, s.Progress().Coins, 0)
	assert.False(t, ecs.IsAlive(s.World(), first), "emptied bag despawns")
}

func TestPlayerRespawnsAtCheckpoint(t *testing.T) {
	s := newTestSession(t, testSpec(prefabs.PlacementSpec{Prefab: "checkpoint", X: 10, Y: 5}))
	player := s.Player()
	assert.InDelta(t, 3.0, position(t, s, player).X, 1e-9)

	require.NoError(t, entity.SetEntityPosition(s.World(), player, common.V(10, 5)))
	s.Update(dt)
	require.Equal(t, 1, s.Progress().Checkpoint)

	require.NoError(t, entity.SetEntityPosition(s.World(), player, common.V(18, 5)))
	health(t, s, player).SetCurrent(5)
	_, err := s.Spawn("enemy_grunt", common.V(19, 5))
	require.NoError(t, err)

	died := runUntil(s, 5*60, func([]ecs.Event) bool { return health(t, s, player).IsDead() })
	require.True(t, died, "grunt should kill the player")
	assert.True(t, ecs.Has(s.World(), player, component.RespawnComponent.Kind()))

	respawned := runUntil(s, 3*60, func(events []ecs.Event) bool {
		for _, e := range events {
			if e.Kind == ecs.EventRespawn {
				return true
			}
		}
		return false
	})
	require.True(t, respawned)

	h := health(t, s, player)
	assert.False(t, h.IsDead())
	assert.Equal(t, h.Max(), h.Current())
	pos := position(t, s, player)
	assert.InDelta(t, 10.0, pos.X, 1e-9)
	assert.InDelta(t, 5.0, pos.Y, 1e-9)
	assert.False(t, ecs.Has(s.World(), player, component.RespawnComponent.Kind()))
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s := newTestSession(t, testSpec())
	p := s.Progress()
	p.AddCoins(7)
	p.AddFragment()
	p.AddKey()
	p.AddKey()
	require.True(t, p.SetCheckpoint(1, 2))
	s.Registry().Claim("wanderer_fragment")
	health(t, s, s.Player()).SetCurrent(40)

	path := filepath.Join(t.TempDir(), "save.yaml")
	require.NoError(t, s.Save(path))

	loaded := newTestSession(t, testSpec())
	require.NoError(t, loaded.Load(path))

	assert.Equal(t, *p, *loaded.Progress())
	assert.True(t, loaded.Registry().Has("wanderer_fragment"))
	assert.Equal(t, 40.0, health(t, loaded, loaded.Player()).Current())
	assert.InDelta(t, 10.0, position(t, loaded, loaded.Player()).X, 1e-9, "player starts at the saved checkpoint")

	assert.Error(t, loaded.Load(filepath.Join(t.TempDir(), "missing.yaml")))
}

func TestLoadClampsCheckpointOutsideSpawns(t *testing.T) {
	cases := []struct {
		name       string
		checkpoint int
		wantX      float64
		wantIndex  int
	}{
		{name: "negative", checkpoint: -1, wantX: 3, wantIndex: 0},
		{name: "one past the end", checkpoint: 2, wantX: 3, wantIndex: 0},
		{name: "far out", checkpoint: 99, wantX: 3, wantIndex: 0},
		{name: "valid", checkpoint: 1, wantX: 10, wantIndex: 1},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "save.yaml")
			raw := fmt.Sprintf("progression:\n  checkpoint: %d\n  coins: 4\nplayer_hp: 30\n", c.checkpoint)
			require.NoError(t, os.WriteFile(path, []byte(raw), 0o644))

			s := newTestSession(t, testSpec())
			assert.NotPanics(t, func() { require.NoError(t, s.Load(path)) })
			assert.Equal(t, c.wantIndex, s.Progress().Checkpoint)
			assert.Equal(t, 4, s.Progress().Coins)
			assert.InDelta(t, c.wantX, position(t, s, s.Player()).X, 1e-9)
		})
	}
}

func TestRespawnFallsBackToFirstSpawn(t *testing.T) {
	s := newTestSession(t, testSpec())
	player := s.Player()
	require.NoError(t, entity.SetEntityPosition(s.World(), player, common.V(15, 5)))
	s.Progress().Checkpoint = -1
	require.True(t, health(t, s, player).TakeDamage(1000))

	var respawned bool
	assert.NotPanics(t, func() {
		respawned = runUntil(s, 4*60, func(events []ecs.Event) bool {
			for _, e := range events {
				if e.Kind == ecs.EventRespawn {
					return true
				}
			}
			return false
		})
	})
	require.True(t, respawned)
	assert.InDelta(t, 3.0, position(t, s, player).X, 1e-9)
	assert.False(t, health(t, s, player).IsDead())
}

func TestNewGameResetsProgressAndRegistry(t *testing.T) {
	s := newTestSession(t, testSpec())
	s.Progress().AddCoins(3)
	s.Registry().Claim("bag_key")
	old := s.World()

	require.NoError(t, s.NewGame())
	assert.Equal(t, combat.Progression{DashUnlocked: true}, *s.Progress())
	assert.Empty(t, s.Registry().Keys())
	assert.NotSame(t, old, s.World())
}

func TestPickupsDoorsAndChests(t *testing.T) {
	s := newTestSession(t, testSpec(
		prefabs.PlacementSpec{Prefab: "key", X: 5, Y: 5},
		prefabs.PlacementSpec{Prefab: "locked_door", X: 8, Y: 2},
		prefabs.PlacementSpec{Prefab: "chest", X: 14, Y: 5},
	))
	s.Progress().DashUnlocked = false
	player := s.Player()
	w := s.World()

	require.NoError(t, entity.SetEntityPosition(w, player, common.V(5, 5)))
	s.Update(dt)
	assert.Equal(t, 1, s.Progress().Keys)

	var door ecs.Entity
	ecs.ForEach(w, component.DoorComponent.Kind(), func(e ecs.Entity, _ *component.Door) { door = e })
	require.NoError(t, entity.SetEntityPosition(w, player, common.V(8, 3)))
	s.SetInput(component.Input{Interact: true})
	s.Update(dt)
	assert.Equal(t, 0, s.Progress().Keys)
	assert.False(t, ecs.IsAlive(w, door))

	require.NoError(t, entity.SetEntityPosition(w, player, common.V(14, 5)))
	s.SetInput(component.Input{Interact: true})
	s.Update(dt)
	require.NoError(t, entity.SetEntityPosition(w, player, common.V(14, 6)))
	s.Update(dt)
	assert.True(t, s.Progress().DashUnlocked, "chest reveals the dash power-up")
}

func TestSnapshotReportsPlayer(t *testing.T) {
	s := newTestSession(t, testSpec(prefabs.PlacementSpec{Prefab: "coin", X: 12, Y: 8}))
	s.SetInput(component.Input{Move: common.V(1, 0), Dash: true})
	s.Update(dt)

	snap := s.Snapshot()
	p, ok := snap.Player()
	require.True(t, ok)
	assert.True(t, p.IsDashing)
	assert.Equal(t, 100.0, p.MaxHP)
	assert.Equal(t, 24.0, snap.Bounds.Width)

	var coins int
	for _, e := range snap.Entities {
		if e.Kind == KindPickup && e.Label == "coin" {
			coins++
		}
	}
	assert.Equal(t, 1, coins)
}
