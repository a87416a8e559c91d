package entity

import (
	"fmt"
	"sort"

	"github.com/milk9111/dungeondash/combat"
	"github.com/milk9111/dungeondash/common"
	"github.com/milk9111/dungeondash/ecs"
	"github.com/milk9111/dungeondash/ecs/component"
	"github.com/milk9111/dungeondash/prefabs"
)

type buildContext struct {
	PrefabPath string
	Deps       *Deps
	Pos        common.Vec2
}

type componentBuildFn func(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error

var componentRegistry = map[string]componentBuildFn{
	"player_tag":     addPlayerTag,
	"enemy_tag":      addEnemyTag,
	"transform":      addTransform,
	"body":           addBody,
	"health":         addHealth,
	"player":         addPlayer,
	"input":          addInput,
	"attack":         addAttack,
	"dash":           addDash,
	"brain":          addBrain,
	"ai_script":      addAIScript,
	"contact_damage": addContactDamage,
	"knockback":      addKnockback,
	"boundary":       addBoundary,
	"loot_table":     addLootTable,
	"loot_bag":       addLootBag,
	"pickup":         addPickup,
	"door":           addDoor,
	"chest":          addChest,
	"checkpoint":     addCheckpoint,
}

// Builders later in the order may depend on components added earlier.
// loot_bag rolls its table and claims unique drops, so it runs once every
// other builder has succeeded.
var componentBuildOrder = []string{
	"player_tag",
	"enemy_tag",
	"transform",
	"body",
	"health",
	"player",
	"input",
	"attack",
	"dash",
	"brain",
	"ai_script",
	"contact_damage",
	"knockback",
	"boundary",
	"loot_table",
	"pickup",
	"door",
	"chest",
	"checkpoint",
	"loot_bag",
}

// BuildEntity creates an entity from a prefab at pos. On any builder
// error the half-built entity is destroyed and removed from physics.
func BuildEntity(w *ecs.World, deps *Deps, prefabPath string, pos common.Vec2) (ecs.Entity, error) {
	if w == nil {
		return 0, fmt.Errorf("build entity: world is nil")
	}

	spec, err := prefabs.LoadEntityBuildSpec(prefabPath)
	if err != nil {
		return 0, fmt.Errorf("build entity: load %q: %w", prefabPath, err)
	}
	if len(spec.Components) == 0 {
		return 0, fmt.Errorf("build entity: prefab %q does not define components", prefabPath)
	}
	return buildFromSpec(w, deps, prefabPath, spec.Components, pos)
}

func buildFromSpec(w *ecs.World, deps *Deps, prefabPath string, components map[string]any, pos common.Vec2) (ecs.Entity, error) {
	e := ecs.CreateEntity(w)
	ctx := &buildContext{PrefabPath: prefabPath, Deps: deps, Pos: pos}

	fail := func(name string, err error) (ecs.Entity, error) {
		Destroy(w, deps, e)
		return 0, fmt.Errorf("build entity: %q: add %q: %w", prefabPath, name, err)
	}

	names := make([]string, 0, len(components))
	for _, name := range componentBuildOrder {
		if _, ok := components[name]; ok {
			names = append(names, name)
		}
	}
	var extra []string
	for name := range components {
		if _, ok := componentRegistry[name]; !ok {
			extra = append(extra, name)
		}
	}
	if len(extra) > 0 {
		sort.Strings(extra)
		Destroy(w, deps, e)
		return 0, fmt.Errorf("build entity: %q: no builder for component %q", prefabPath, extra[0])
	}

	for _, name := range names {
		if err := componentRegistry[name](w, e, components[name], ctx); err != nil {
			return fail(name, err)
		}
	}
	return e, nil
}

// Destroy removes e from the world and from physics.
func Destroy(w *ecs.World, deps *Deps, e ecs.Entity) bool {
	if deps != nil && deps.Physics != nil {
		deps.Physics.Remove(e.CombatID())
	}
	return ecs.DestroyEntity(w, e)
}

// SetEntityPosition moves e and its body.
func SetEntityPosition(w *ecs.World, e ecs.Entity, pos common.Vec2) error {
	t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok {
		return fmt.Errorf("set position: entity %s has no transform", e)
	}
	t.Pos = pos
	if b, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind()); ok && b.Body != nil {
		b.Body.SetPosition(pos)
	}
	return nil
}

func addPlayerTag(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.PlayerTagComponent.Kind(), &component.PlayerTag{})
}

func addEnemyTag(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.EnemyTagComponent.Kind(), &component.EnemyTag{})
}

type transformSpec = prefabs.TransformComponentSpec

func addTransform(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[transformSpec](raw)
	if err != nil {
		return fmt.Errorf("decode transform spec: %w", err)
	}
	pos := ctx.Pos.Add(common.V(spec.X, spec.Y))
	return ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{Pos: pos, Facing: common.V(1, 0)})
}

type bodySpec = prefabs.BodyComponentSpec

func addBody(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[bodySpec](raw)
	if err != nil {
		return fmt.Errorf("decode body spec: %w", err)
	}
	pw, err := ctx.Deps.physics()
	if err != nil {
		return err
	}
	cat, ok := combat.ParseCategory(spec.Category)
	if !ok {
		return fmt.Errorf("unknown category %q", spec.Category)
	}
	t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok {
		return fmt.Errorf("body requires a transform")
	}
	body, err := pw.Add(e.CombatID(), t.Pos, spec.Radius, cat, nil)
	if err != nil {
		return err
	}
	return ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{Body: body})
}

func addHealth(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.HealthComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode health spec: %w", err)
	}
	h := combat.NewHealth(spec)
	if b, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind()); ok && b.Body != nil {
		b.Body.SetTarget(h)
	}
	if events := ctx.Deps.events(); events != nil {
		id := e.CombatID()
		h.OnDeath(func(*combat.Health) {
			events.Emit(combat.Event{Type: combat.EventDeath, TargetID: id})
		})
	}
	return ecs.Add(w, e, component.HealthComponent.Kind(), h)
}

type playerSpec = prefabs.PlayerComponentSpec

func addPlayer(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[playerSpec](raw)
	if err != nil {
		return fmt.Errorf("decode player spec: %w", err)
	}
	if ctx.Deps == nil || ctx.Deps.Progress == nil {
		return fmt.Errorf("%w: player progression", combat.ErrMissingCollaborator)
	}
	if spec.RespawnDelay <= 0 {
		spec.RespawnDelay = 2
	}
	if err := ecs.Add(w, e, component.ProgressionComponent.Kind(), ctx.Deps.Progress); err != nil {
		return err
	}
	return ecs.Add(w, e, component.PlayerComponent.Kind(), &component.Player{
		MoveSpeed:    spec.MoveSpeed,
		PotionHeal:   spec.PotionHeal,
		RespawnDelay: spec.RespawnDelay,
	})
}

func addInput(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.InputComponent.Kind(), &component.Input{})
}

type attackSpec = prefabs.AttackComponentSpec

func addAttack(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[attackSpec](raw)
	if err != nil {
		return fmt.Errorf("decode attack spec: %w", err)
	}
	pw, err := ctx.Deps.physics()
	if err != nil {
		return err
	}
	cfg := spec.AttackConfig
	if cfg.Target, err = parseTarget(spec.Target); err != nil {
		return err
	}
	a, err := combat.NewAttackSequencer(e.CombatID(), cfg, pw)
	if err != nil {
		return err
	}
	a.Events = ctx.Deps.events()
	if h, ok := ecs.Get(w, e, component.HealthComponent.Kind()); ok {
		h.OnDeath(func(*combat.Health) { a.Cancel() })
	}
	return ecs.Add(w, e, component.AttackComponent.Kind(), a)
}

type dashSpec = prefabs.DashComponentSpec

func addDash(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[dashSpec](raw)
	if err != nil {
		return fmt.Errorf("decode dash spec: %w", err)
	}
	pw, err := ctx.Deps.physics()
	if err != nil {
		return err
	}
	cfg := spec.DashConfig
	if cfg.Target, err = parseTarget(spec.Target); err != nil {
		return err
	}
	deps := combat.DashDeps{Query: pw, Cues: ctx.Deps.cues(), Events: ctx.Deps.events()}
	if ctx.Deps != nil {
		deps.Progress = ctx.Deps.Progress
	}
	if h, ok := ecs.Get(w, e, component.HealthComponent.Kind()); ok {
		deps.Health = h
	}
	if b, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind()); ok && b.Body != nil {
		deps.Collider = b.Body
	}
	d, err := combat.NewDash(e.CombatID(), cfg, deps)
	if err != nil {
		return err
	}
	return ecs.Add(w, e, component.DashComponent.Kind(), d)
}

func addBrain(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.BrainComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode brain spec: %w", err)
	}
	var striker combat.Striker
	if a, ok := ecs.Get(w, e, component.AttackComponent.Kind()); ok {
		striker = a
	}
	if ctx.Deps == nil {
		return fmt.Errorf("%w: brain deps", combat.ErrMissingCollaborator)
	}
	b, err := combat.NewEnemyBrain(e.CombatID(), spec, striker, ctx.Deps.Rand, ctx.Deps.cues())
	if err != nil {
		return err
	}
	if h, ok := ecs.Get(w, e, component.HealthComponent.Kind()); ok {
		h.OnDeath(func(*combat.Health) { b.Halt() })
	}
	return ecs.Add(w, e, component.BrainComponent.Kind(), b)
}

func addAIScript(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.AIScriptComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode ai_script spec: %w", err)
	}
	if spec.Script == "" {
		return fmt.Errorf("ai_script: empty script path")
	}
	b, ok := ecs.Get(w, e, component.BrainComponent.Kind())
	if !ok {
		return fmt.Errorf("ai_script requires a brain")
	}
	script := &component.AIScript{Path: spec.Script}
	b.OnStateChange = func(from, to combat.BrainState) {
		script.Pending = append(script.Pending, component.StateChange{From: from, To: to})
	}
	return ecs.Add(w, e, component.AIScriptComponent.Kind(), script)
}

func addContactDamage(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.ContactDamageComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode contact_damage spec: %w", err)
	}
	return ecs.Add(w, e, component.ContactDamageComponent.Kind(), &combat.ContactDamage{Config: spec})
}

func addKnockback(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.KnockbackComponent.Kind(), &combat.Knockback{})
}

func addBoundary(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.BoundaryComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode boundary spec: %w", err)
	}
	rect := common.Rect{X: spec.X, Y: spec.Y, Width: spec.Width, Height: spec.Height}
	if rect.Empty() {
		return fmt.Errorf("boundary: empty rect")
	}
	return ecs.Add(w, e, component.BoundaryComponent.Kind(), &component.Boundary{Rect: rect})
}

func addLootTable(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.LootTableComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode loot_table spec: %w", err)
	}
	if err := spec.Validate(); err != nil {
		return err
	}
	return ecs.Add(w, e, component.LootTableComponent.Kind(), &component.LootTable{Entries: spec.Entries})
}

// addLootBag resolves the bag's table immediately, so the unique-drop
// registry is updated the moment the bag exists.
func addLootBag(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.LootBagComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode loot_bag spec: %w", err)
	}
	if err := spec.Validate(); err != nil {
		return err
	}
	if ctx.Deps == nil || ctx.Deps.Loot == nil {
		return fmt.Errorf("%w: loot generator", combat.ErrMissingCollaborator)
	}
	if spec.Radius <= 0 {
		spec.Radius = 1
	}
	bag := combat.NewLootBag(ctx.Deps.Loot.GenerateLoot(spec.Entries))
	return ecs.Add(w, e, component.LootBagComponent.Kind(), &component.LootBag{Bag: bag, Radius: spec.Radius})
}

func addPickup(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.PickupComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode pickup spec: %w", err)
	}
	if spec.Quantity <= 0 {
		spec.Quantity = 1
	}
	return ecs.Add(w, e, component.PickupComponent.Kind(), &component.Pickup{Kind: spec.Kind, Quantity: spec.Quantity, Radius: spec.Radius})
}

func addDoor(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.DoorComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode door spec: %w", err)
	}
	kind := component.DoorKind(spec.Kind)
	switch kind {
	case component.DoorBoss, component.DoorLocked, component.DoorTeleport:
	default:
		return fmt.Errorf("door: unknown kind %q", spec.Kind)
	}
	return ecs.Add(w, e, component.DoorComponent.Kind(), &component.Door{
		Kind:        kind,
		Radius:      spec.Radius,
		Dest:        common.V(spec.DestX, spec.DestY),
		Delay:       spec.Delay,
		RestoreFull: spec.RestoreFull,
	})
}

func addChest(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.ChestComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode chest spec: %w", err)
	}
	return ecs.Add(w, e, component.ChestComponent.Kind(), &component.Chest{Radius: spec.Radius, Contents: spec.Contents})
}

func addCheckpoint(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.CheckpointComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode checkpoint spec: %w", err)
	}
	return ecs.Add(w, e, component.CheckpointComponent.Kind(), &component.Checkpoint{Index: spec.Index, Radius: spec.Radius})
}

func parseTarget(name string) (combat.Category, error) {
	if name == "" {
		return combat.CategoryNone, fmt.Errorf("missing target category")
	}
	cat, ok := combat.ParseCategory(name)
	if !ok {
		return combat.CategoryNone, fmt.Errorf("unknown target category %q", name)
	}
	return cat, nil
}
