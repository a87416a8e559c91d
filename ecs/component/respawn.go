package component

import "github.com/milk9111/dungeondash/combat"

// Respawn counts down a dead player's return to the active checkpoint.
type Respawn struct {
	Countdown combat.Timer
}

var RespawnComponent = NewComponent[Respawn]()
