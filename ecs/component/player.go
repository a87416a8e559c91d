package component

import "github.com/milk9111/dungeondash/combat"

type Player struct {
	MoveSpeed    float64
	PotionHeal   float64
	RespawnDelay float64
}

var PlayerComponent = NewComponent[Player]()

// ProgressionComponent holds the player's persisted progression. The
// session owns the value; the component points at it.
var ProgressionComponent = NewComponent[combat.Progression]()
