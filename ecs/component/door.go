package component

import (
	"github.com/milk9111/dungeondash/combat"
	"github.com/milk9111/dungeondash/common"
)

type DoorKind string

const (
	DoorBoss     DoorKind = "boss"
	DoorLocked   DoorKind = "locked"
	DoorTeleport DoorKind = "teleport"
)

// Door opens on interact. Boss and locked doors consume a key and
// despawn; teleport doors move the player after Delay.
type Door struct {
	Kind        DoorKind
	Radius      float64
	Dest        common.Vec2
	Delay       float64
	RestoreFull bool

	Countdown combat.Timer
	Pending   bool
}

var DoorComponent = NewComponent[Door]()
