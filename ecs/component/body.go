package component

import (
	"github.com/milk9111/dungeondash/common"
	"github.com/milk9111/dungeondash/physics"
)

// PhysicsBody links an entity to its circle in the physics world.
type PhysicsBody struct {
	Body *physics.Body
	// Desired is the velocity systems request this tick before physics runs.
	Desired common.Vec2
}

var PhysicsBodyComponent = NewComponent[PhysicsBody]()
