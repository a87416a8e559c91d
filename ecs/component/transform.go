package component

import "github.com/milk9111/dungeondash/common"

type Transform struct {
	Pos    common.Vec2
	Facing common.Vec2
}

var TransformComponent = NewComponent[Transform]()
