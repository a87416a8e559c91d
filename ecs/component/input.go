package component

import "github.com/milk9111/dungeondash/common"

// Input stores per-tick intent for an entity. Button fields hold for
// exactly one tick.
type Input struct {
	Move      common.Vec2
	Attack    bool
	Dash      bool
	Interact  bool
	UsePotion bool
}

var InputComponent = NewComponent[Input]()
