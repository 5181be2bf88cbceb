package sapling

import (
	"slices"

	"github.com/akmonengine/sapling/actor"
	"github.com/google/uuid"
)

const (
	TRIGGER_ENTER EventType = iota
	COLLISION_ENTER
	TRIGGER_STAY
	COLLISION_STAY
	TRIGGER_EXIT
	COLLISION_EXIT
)

// pairKey holds a pair in world registration order, so a pair always maps to the same key
type pairKey struct {
	bodyA *actor.PhysicsObject
	bodyB *actor.PhysicsObject
}

func (p pairKey) isTrigger() bool {
	return p.bodyA.IsTrigger || p.bodyB.IsTrigger
}

type EventType uint8

func (t EventType) String() string {
	switch t {
	case TRIGGER_ENTER:
		return "trigger_enter"
	case COLLISION_ENTER:
		return "collision_enter"
	case TRIGGER_STAY:
		return "trigger_stay"
	case COLLISION_STAY:
		return "collision_stay"
	case TRIGGER_EXIT:
		return "trigger_exit"
	case COLLISION_EXIT:
		return "collision_exit"
	default:
		return "unknown"
	}
}

// Event interface - all events implement this
type Event interface {
	Type() EventType
	Bodies() (*actor.PhysicsObject, *actor.PhysicsObject)
}

type pairEvent struct {
	BodyA *actor.PhysicsObject
	BodyB *actor.PhysicsObject
}

func (e pairEvent) Bodies() (*actor.PhysicsObject, *actor.PhysicsObject) {
	return e.BodyA, e.BodyB
}

// Trigger events
type TriggerEnterEvent struct{ pairEvent }

func (e TriggerEnterEvent) Type() EventType { return TRIGGER_ENTER }

type TriggerStayEvent struct{ pairEvent }

func (e TriggerStayEvent) Type() EventType { return TRIGGER_STAY }

type TriggerExitEvent struct{ pairEvent }

func (e TriggerExitEvent) Type() EventType { return TRIGGER_EXIT }

// Collision events
type CollisionEnterEvent struct{ pairEvent }

func (e CollisionEnterEvent) Type() EventType { return COLLISION_ENTER }

type CollisionStayEvent struct{ pairEvent }

func (e CollisionStayEvent) Type() EventType { return COLLISION_STAY }

type CollisionExitEvent struct{ pairEvent }

func (e CollisionExitEvent) Type() EventType { return COLLISION_EXIT }

// EventListener - callback for events
type EventListener func(event Event)

// SubscriptionID identifies a listener for Unsubscribe
type SubscriptionID string

type subscription struct {
	id       SubscriptionID
	listener EventListener
}

// Events tracks contacts across steps and dispatches Enter/Stay/Exit events
type Events struct {
	// Listeners by event type
	listeners map[EventType][]subscription

	// Event buffer to send at flush
	buffer []Event

	// Collision tracking for Enter/Stay/Exit detection
	previousActivePairs map[pairKey]bool
	currentActivePairs  map[pairKey]bool
}

func NewEvents() Events {
	return Events{
		listeners:           make(map[EventType][]subscription),
		buffer:              make([]Event, 0, 64),
		previousActivePairs: make(map[pairKey]bool),
		currentActivePairs:  make(map[pairKey]bool),
	}
}

func (e *Events) init() {
	if e.listeners == nil {
		*e = NewEvents()
	}
}

// Subscribe adds a listener for an event type
func (e *Events) Subscribe(eventType EventType, listener EventListener) SubscriptionID {
	e.init()

	id := SubscriptionID(uuid.NewString())
	e.listeners[eventType] = append(e.listeners[eventType], subscription{id: id, listener: listener})

	return id
}

// Unsubscribe removes a listener, and reports whether it was found
func (e *Events) Unsubscribe(id SubscriptionID) bool {
	for eventType, subs := range e.listeners {
		if !slices.ContainsFunc(subs, func(sub subscription) bool { return sub.id == id }) {
			continue
		}
		// a fresh slice, flush may be ranging over the old one
		e.listeners[eventType] = slices.DeleteFunc(slices.Clone(subs), func(sub subscription) bool {
			return sub.id == id
		})
		return true
	}

	return false
}

// recordCollision marks a pair as touching during the current step
func (e *Events) recordCollision(bodyA, bodyB *actor.PhysicsObject) {
	e.init()
	e.currentActivePairs[pairKey{bodyA: bodyA, bodyB: bodyB}] = true
}

// forget drops the tracked pairs of a body leaving the world, without Exit events
func (e *Events) forget(body *actor.PhysicsObject) {
	for pair := range e.previousActivePairs {
		if pair.bodyA == body || pair.bodyB == body {
			delete(e.previousActivePairs, pair)
		}
	}
	for pair := range e.currentActivePairs {
		if pair.bodyA == body || pair.bodyB == body {
			delete(e.currentActivePairs, pair)
		}
	}
}

// processCollisionEvents compares current and previous pairs to detect Enter/Stay/Exit
func (e *Events) processCollisionEvents() {
	// Detect Enter and Stay events
	for pair := range e.currentActivePairs {
		base := pairEvent{BodyA: pair.bodyA, BodyB: pair.bodyB}

		if e.previousActivePairs[pair] {
			// Pair was active before and still is, Stay
			if pair.isTrigger() {
				e.buffer = append(e.buffer, TriggerStayEvent{base})
			} else {
				e.buffer = append(e.buffer, CollisionStayEvent{base})
			}
		} else {
			// New pair, Enter
			if pair.isTrigger() {
				e.buffer = append(e.buffer, TriggerEnterEvent{base})
			} else {
				e.buffer = append(e.buffer, CollisionEnterEvent{base})
			}
		}
	}

	// Detect Exit events
	for pair := range e.previousActivePairs {
		if e.currentActivePairs[pair] {
			continue
		}

		base := pairEvent{BodyA: pair.bodyA, BodyB: pair.bodyB}
		if pair.isTrigger() {
			e.buffer = append(e.buffer, TriggerExitEvent{base})
		} else {
			e.buffer = append(e.buffer, CollisionExitEvent{base})
		}
	}

	// Swap for next step and clear current
	e.previousActivePairs, e.currentActivePairs = e.currentActivePairs, e.previousActivePairs
	clear(e.currentActivePairs)
}

// flush sends all buffered events and clears the buffer
func (e *Events) flush() {
	e.init()
	e.processCollisionEvents()

	for _, event := range e.buffer {
		// listeners may subscribe or unsubscribe while being called
		for _, sub := range slices.Clone(e.listeners[event.Type()]) {
			sub.listener(event)
		}
	}
	e.buffer = e.buffer[:0]
}
