package component

// Chest reveals the Contents prefab when opened.
type Chest struct {
	Radius   float64
	Contents string
	Opened   bool
}

var ChestComponent = NewComponent[Chest]()
