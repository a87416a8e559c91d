package entity

import (
	"github.com/milk9111/dungeondash/common"
	"github.com/milk9111/dungeondash/ecs"
)

func NewPlayer(w *ecs.World, deps *Deps, prefab string, pos common.Vec2) (ecs.Entity, error) {
	if prefab == "" {
		prefab = "player.yaml"
	}
	return BuildEntity(w, deps, prefab, pos)
}
