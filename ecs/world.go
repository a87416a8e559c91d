package ecs

import (
	"fmt"

	"github.com/milk9111/dungeondash/ecs/component"
)

var (
	ErrEntityNotAlive       = component.ErrEntityNotAlive
	ErrNilComponent         = component.ErrNilComponent
	ErrInvalidComponentKind = component.ErrInvalidComponentKind
)

// World owns entities, their components and the event queue.
type World struct {
	entities entityStore
	stores   map[component.ComponentID]store
	events   EventQueue
}

// NewWorld creates an empty ECS world.
func NewWorld() *World {
	return &World{stores: make(map[component.ComponentID]store)}
}

// Events returns the world event queue.
func (w *World) Events() *EventQueue {
	if w == nil {
		return nil
	}
	return &w.events
}

func CreateEntity(w *World) Entity {
	return w.entities.create()
}

// DestroyEntity kills e and drops all of its components.
func DestroyEntity(w *World, e Entity) bool {
	if w == nil || !w.entities.destroy(e) {
		return false
	}
	for _, s := range w.stores {
		s.remove(e.id())
	}
	return true
}

func IsAlive(w *World, e Entity) bool {
	return w != nil && w.entities.isAlive(e)
}

// Entities returns every live entity in id order.
func Entities(w *World) []Entity {
	if w == nil {
		return nil
	}
	return w.entities.entities()
}

func storeFor[T any](w *World, kind component.ComponentKind[T], create bool) *sparseStore[T] {
	s, ok := w.stores[kind.ID()]
	if !ok {
		if !create {
			return nil
		}
		typed := &sparseStore[T]{}
		w.stores[kind.ID()] = typed
		return typed
	}
	typed, _ := s.(*sparseStore[T])
	return typed
}

// Add attaches value to e, replacing any existing component of that kind.
func Add[T any](w *World, e Entity, kind component.ComponentKind[T], value *T) error {
	if !kind.Valid() {
		return ErrInvalidComponentKind
	}
	if value == nil {
		return ErrNilComponent
	}
	if !IsAlive(w, e) {
		return fmt.Errorf("%w: %s", ErrEntityNotAlive, e)
	}
	s := storeFor(w, kind, true)
	if s == nil {
		return fmt.Errorf("%w: kind %d registered with another type", ErrInvalidComponentKind, kind.ID())
	}
	s.set(e.id(), value)
	return nil
}

func Get[T any](w *World, e Entity, kind component.ComponentKind[T]) (*T, bool) {
	if !IsAlive(w, e) {
		return nil, false
	}
	s := storeFor(w, kind, false)
	if s == nil {
		return nil, false
	}
	return s.get(e.id())
}

func Has[T any](w *World, e Entity, kind component.ComponentKind[T]) bool {
	_, ok := Get(w, e, kind)
	return ok
}

func Remove[T any](w *World, e Entity, kind component.ComponentKind[T]) bool {
	if !IsAlive(w, e) {
		return false
	}
	s := storeFor(w, kind, false)
	if s == nil {
		return false
	}
	return s.remove(e.id())
}

// Count returns how many entities carry kind.
func Count[T any](w *World, kind component.ComponentKind[T]) int {
	if w == nil {
		return 0
	}
	s := storeFor(w, kind, false)
	if s == nil {
		return 0
	}
	return s.len()
}

// snapshot copies the dense ids so callbacks may add, remove or destroy
// while iterating.
func snapshot[T any](w *World, kind component.ComponentKind[T]) (*sparseStore[T], []Entity) {
	if w == nil {
		return nil, nil
	}
	s := storeFor(w, kind, false)
	if s == nil || s.len() == 0 {
		return nil, nil
	}
	out := make([]Entity, 0, len(s.dense))
	for _, id := range s.dense {
		out = append(out, makeEntity(id, w.entities.gen[id-1]))
	}
	return s, out
}

// ForEach calls fn for every live entity that has kind.
func ForEach[T any](w *World, kind component.ComponentKind[T], fn func(Entity, *T)) {
	s, ents := snapshot(w, kind)
	for _, e := range ents {
		if !IsAlive(w, e) {
			continue
		}
		if v, ok := s.get(e.id()); ok {
			fn(e, v)
		}
	}
}

func ForEach2[A, B any](w *World, ka component.ComponentKind[A], kb component.ComponentKind[B], fn func(Entity, *A, *B)) {
	ForEach(w, ka, func(e Entity, a *A) {
		if b, ok := Get(w, e, kb); ok {
			fn(e, a, b)
		}
	})
}

func ForEach3[A, B, C any](w *World, ka component.ComponentKind[A], kb component.ComponentKind[B], kc component.ComponentKind[C], fn func(Entity, *A, *B, *C)) {
	ForEach2(w, ka, kb, func(e Entity, a *A, b *B) {
		if c, ok := Get(w, e, kc); ok {
			fn(e, a, b, c)
		}
	})
}

func ForEach4[A, B, C, D any](w *World, ka component.ComponentKind[A], kb component.ComponentKind[B], kc component.ComponentKind[C], kd component.ComponentKind[D], fn func(Entity, *A, *B, *C, *D)) {
	ForEach3(w, ka, kb, kc, func(e Entity, a *A, b *B, c *C) {
		if d, ok := Get(w, e, kd); ok {
			fn(e, a, b, c, d)
		}
	})
}

// First returns the lowest-id live entity carrying kind.
func First[T any](w *World, kind component.ComponentKind[T]) (Entity, bool) {
	_, ents := snapshot(w, kind)
	var best Entity
	found := false
	for _, e := range ents {
		if !IsAlive(w, e) {
			continue
		}
		if !found || e.id() < best.id() {
			best, found = e, true
		}
	}
	return best, found
}
