package combat

import "github.com/milk9111/dungeondash/common"

// EventType defines the kind of combat event.
type EventType string

const (
	EventHit         EventType = "hit"
	EventDeath       EventType = "death"
	EventIFrameStart EventType = "iframe_start"
	EventIFrameEnd   EventType = "iframe_end"
	EventStrike      EventType = "strike"
	EventDashStart   EventType = "dash_start"
	EventDashEnd     EventType = "dash_end"
	EventLoot        EventType = "loot"
)

// Event is emitted during combat resolution.
type Event struct {
	Type       EventType
	AttackerID EntityID
	TargetID   EntityID
	Damage     float64
	Pos        common.Vec2
}

// EventHandler handles combat events.
type EventHandler func(evt Event)

// EventEmitter fans events out to its handlers. A nil emitter drops events.
type EventEmitter struct {
	Handlers []EventHandler
}

// Subscribe appends a handler.
func (e *EventEmitter) Subscribe(h EventHandler) {
	if e == nil || h == nil {
		return
	}
	e.Handlers = append(e.Handlers, h)
}

// Emit sends a combat event to all handlers.
func (e *EventEmitter) Emit(evt Event) {
	if e == nil || len(e.Handlers) == 0 {
		return
	}
	for _, h := range e.Handlers {
		if h != nil {
			h(evt)
		}
	}
}
