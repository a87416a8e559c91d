package ecs

import "github.com/milk9111/dungeondash/combat"

// EventKind identifies what happened.
type EventKind string

const (
	EventCombat     EventKind = "combat"
	EventPickup     EventKind = "pickup"
	EventLootBag    EventKind = "loot_bag"
	EventCheckpoint EventKind = "checkpoint"
	EventDoor       EventKind = "door"
	EventRespawn    EventKind = "respawn"
	EventDespawn    EventKind = "despawn"
)

// Event is a world notification queued during a tick and drained by the
// owner of the world afterwards.
type Event struct {
	Kind   EventKind
	Entity Entity
	Combat combat.Event
	Detail string
}

// EventQueue is a simple FIFO queue.
type EventQueue struct {
	items []Event
}

// Push adds an event.
func (q *EventQueue) Push(evt Event) {
	if q == nil {
		return
	}
	q.items = append(q.items, evt)
}

// Drain returns all events and clears the queue.
func (q *EventQueue) Drain() []Event {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}

func (q *EventQueue) Len() int {
	if q == nil {
		return 0
	}
	return len(q.items)
}
