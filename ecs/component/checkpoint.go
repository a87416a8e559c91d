package component

type Checkpoint struct {
	Index  int
	Radius float64
}

var CheckpointComponent = NewComponent[Checkpoint]()
