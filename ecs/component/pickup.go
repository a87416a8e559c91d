package component

import "github.com/milk9111/dungeondash/combat"

// Pickup is collected on touch.
type Pickup struct {
	Kind     combat.ItemKind
	Quantity int
	Radius   float64
}

var PickupComponent = NewComponent[Pickup]()
