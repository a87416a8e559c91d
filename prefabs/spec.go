package prefabs

import (
	"errors"
	"fmt"
	"io/fs"

	"gopkg.in/yaml.v3"

	"github.com/milk9111/dungeondash/combat"
)

// ErrUnknownPrefab is returned when a prefab name matches no file.
var ErrUnknownPrefab = errors.New("prefabs: unknown prefab")

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return zero, fmt.Errorf("%w: %s", ErrUnknownPrefab, filename)
		}
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// EntityBuildSpec is a named bag of component specs keyed by builder name.
type EntityBuildSpec struct {
	Name       string         `yaml:"name"`
	Components map[string]any `yaml:"components"`
}

func LoadEntityBuildSpec(filename string) (EntityBuildSpec, error) {
	return LoadSpec[EntityBuildSpec](filename)
}

// DecodeComponentSpec re-decodes a loosely typed YAML node into T.
func DecodeComponentSpec[T any](raw any) (T, error) {
	var zero T
	if raw == nil {
		return zero, nil
	}
	b, err := yaml.Marshal(raw)
	if err != nil {
		return zero, err
	}
	var out T
	if err := yaml.Unmarshal(b, &out); err != nil {
		return zero, err
	}
	return out, nil
}

type TransformComponentSpec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

type BodyComponentSpec struct {
	Radius   float64 `yaml:"radius"`
	Category string  `yaml:"category"`
}

type PlayerComponentSpec struct {
	MoveSpeed    float64 `yaml:"move_speed"`
	PotionHeal   float64 `yaml:"potion_heal"`
	RespawnDelay float64 `yaml:"respawn_delay"`
}

type AttackComponentSpec struct {
	combat.AttackConfig `yaml:",inline"`
	Target              string `yaml:"target"`
}

type DashComponentSpec struct {
	combat.DashConfig `yaml:",inline"`
	Target            string `yaml:"target"`
}

type BrainComponentSpec = combat.BrainConfig

type HealthComponentSpec = combat.HealthConfig

type ContactDamageComponentSpec = combat.ContactConfig

type AIScriptComponentSpec struct {
	Script string `yaml:"script"`
}

type BoundaryComponentSpec struct {
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

type LootTableComponentSpec struct {
	Entries []combat.LootEntry `yaml:"entries"`
}

type LootBagComponentSpec struct {
	Radius  float64            `yaml:"radius"`
	Entries []combat.LootEntry `yaml:"entries"`
}

type PickupComponentSpec struct {
	Kind     combat.ItemKind `yaml:"kind"`
	Quantity int             `yaml:"quantity"`
	Radius   float64         `yaml:"radius"`
}

type DoorComponentSpec struct {
	Kind        string  `yaml:"kind"`
	Radius      float64 `yaml:"radius"`
	DestX       float64 `yaml:"dest_x"`
	DestY       float64 `yaml:"dest_y"`
	Delay       float64 `yaml:"delay"`
	RestoreFull bool    `yaml:"restore_full"`
}

type ChestComponentSpec struct {
	Radius   float64 `yaml:"radius"`
	Contents string  `yaml:"contents"`
}

type CheckpointComponentSpec struct {
	Index  int     `yaml:"index"`
	Radius float64 `yaml:"radius"`
}

// Validate checks every loot row and reports the first bad one.
func (s LootTableComponentSpec) Validate() error {
	return validateEntries(s.Entries)
}

func (s LootBagComponentSpec) Validate() error {
	return validateEntries(s.Entries)
}

func validateEntries(entries []combat.LootEntry) error {
	for i, e := range entries {
		if err := e.Validate(); err != nil {
			return fmt.Errorf("entry %d: %w", i, err)
		}
	}
	return nil
}
