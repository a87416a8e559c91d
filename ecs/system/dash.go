package system

import (
	"github.com/milk9111/dungeondash/combat"
	"github.com/milk9111/dungeondash/ecs"
	"github.com/milk9111/dungeondash/ecs/component"
)

// DashSystem advances dash timers and resolves dash hits along the path
// each dashing body travelled this tick.
type DashSystem struct{}

func NewDashSystem() *DashSystem { return &DashSystem{} }

func (s *DashSystem) Update(w *ecs.World, dt float64) {
	if w == nil {
		return
	}
	ecs.ForEach2(w, component.DashComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, d *combat.Dash, t *component.Transform) {
		d.Tick(dt, t.Pos)
	})
}
