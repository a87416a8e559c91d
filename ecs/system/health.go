package system

import (
	"github.com/milk9111/dungeondash/combat"
	"github.com/milk9111/dungeondash/ecs"
	"github.com/milk9111/dungeondash/ecs/component"
)

// HealthSystem advances invulnerability windows and flash cadence.
type HealthSystem struct{}

func NewHealthSystem() *HealthSystem { return &HealthSystem{} }

func (s *HealthSystem) Update(w *ecs.World, dt float64) {
	if w == nil {
		return
	}
	ecs.ForEach(w, component.HealthComponent.Kind(), func(_ ecs.Entity, h *combat.Health) {
		h.Tick(dt)
	})
}
