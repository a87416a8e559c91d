package prefabs

import "fmt"

// PointSpec is a world-space position in arena files.
type PointSpec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// PlacementSpec places one prefab in an arena.
type PlacementSpec struct {
	Prefab string  `yaml:"prefab"`
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
}

// ArenaSpec describes a playable arena: its bounds, the checkpoint spawn
// points and everything placed in it. The first placement of a prefab
// with a player component becomes the player.
type ArenaSpec struct {
	Name        string          `yaml:"name"`
	Width       float64         `yaml:"width"`
	Height      float64         `yaml:"height"`
	SpawnPoints []PointSpec     `yaml:"spawn_points"`
	Player      string          `yaml:"player"`
	Entities    []PlacementSpec `yaml:"entities"`
}

func LoadArenaSpec(filename string) (ArenaSpec, error) {
	spec, err := LoadSpec[ArenaSpec](filename)
	if err != nil {
		return ArenaSpec{}, err
	}
	if len(spec.SpawnPoints) == 0 {
		return ArenaSpec{}, fmt.Errorf("prefabs: arena %s has no spawn points", filename)
	}
	if spec.Player == "" {
		spec.Player = "player.yaml"
	}
	return spec, nil
}
