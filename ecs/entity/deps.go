package entity

import (
	"fmt"
	"math/rand"

	"github.com/milk9111/dungeondash/combat"
	"github.com/milk9111/dungeondash/physics"
)

// Deps are the shared collaborators handed to component builders.
type Deps struct {
	Physics  *physics.World
	Rand     *rand.Rand
	Cues     combat.CueSink
	Loot     *combat.LootGenerator
	Progress *combat.Progression
	Events   *combat.EventEmitter
}

func (d *Deps) physics() (*physics.World, error) {
	if d == nil || d.Physics == nil {
		return nil, fmt.Errorf("%w: physics world", combat.ErrMissingCollaborator)
	}
	return d.Physics, nil
}

func (d *Deps) cues() combat.CueSink {
	if d == nil || d.Cues == nil {
		return combat.NopCues{}
	}
	return d.Cues
}

func (d *Deps) events() *combat.EventEmitter {
	if d == nil {
		return nil
	}
	return d.Events
}
