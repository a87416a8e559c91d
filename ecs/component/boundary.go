package component

import "github.com/milk9111/dungeondash/common"

// Boundary keeps an enemy inside Rect.
type Boundary struct {
	Rect common.Rect
}

var BoundaryComponent = NewComponent[Boundary]()
