package component

import "github.com/milk9111/dungeondash/combat"

// StateChange is one brain transition waiting for its script hooks.
type StateChange struct {
	From combat.BrainState
	To   combat.BrainState
}

// AIScript binds a tengo script to an enemy brain. The brain appends
// transitions to Pending; the script system drains them.
type AIScript struct {
	Path    string
	Pending []StateChange
}

var AIScriptComponent = NewComponent[AIScript]()
