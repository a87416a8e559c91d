package system

import (
	"github.com/milk9111/dungeondash/ecs"
	"github.com/milk9111/dungeondash/ecs/component"
)

// InputSystem copies the frontend's latest intent into the player's Input.
// Button presses latch until the next tick consumes them, so a press that
// arrives between ticks is never lost.
type InputSystem struct {
	latest component.Input
}

func NewInputSystem() *InputSystem { return &InputSystem{} }

// Set records intent from a frontend. Move replaces the previous value;
// buttons accumulate until the next Update.
func (s *InputSystem) Set(in component.Input) {
	s.latest.Move = in.Move
	s.latest.Attack = s.latest.Attack || in.Attack
	s.latest.Dash = s.latest.Dash || in.Dash
	s.latest.Interact = s.latest.Interact || in.Interact
	s.latest.UsePotion = s.latest.UsePotion || in.UsePotion
}

func (s *InputSystem) Update(w *ecs.World, _ float64) {
	if w == nil {
		return
	}
	p, ok := findPlayer(w)
	if ok && p.Input != nil {
		*p.Input = s.latest
	}
	s.latest = component.Input{Move: s.latest.Move}
}
