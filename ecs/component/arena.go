package component

import "github.com/milk9111/dungeondash/common"

// Arena is the singleton describing the playable area.
type Arena struct {
	Name   string
	Bounds common.Rect
	Spawns []common.Vec2
}

// SpawnFor returns the spawn point for a checkpoint index. Indices outside
// the spawn list fall back to the first spawn; ok is false only when the
// arena has none.
func (a *Arena) SpawnFor(checkpoint int) (common.Vec2, bool) {
	if a == nil || len(a.Spawns) == 0 {
		return common.Vec2{}, false
	}
	if checkpoint < 0 || checkpoint >= len(a.Spawns) {
		checkpoint = 0
	}
	return a.Spawns[checkpoint], true
}

var ArenaComponent = NewComponent[Arena]()
