package convex

import (
	"bytes"

	"github.com/akmonengine/convex/actor"
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

type pairKey struct {
	idA uuid.UUID
	idB uuid.UUID
}

// makePairKey creates a normalized pair key with consistent ordering
func makePairKey(bodyA, bodyB *actor.Body) (pairKey, Pair) {
	if bytes.Compare(bodyB.ID[:], bodyA.ID[:]) < 0 {
		bodyA, bodyB = bodyB, bodyA
	}

	return pairKey{idA: bodyA.ID, idB: bodyB.ID}, Pair{BodyA: bodyA, BodyB: bodyB}
}

type EventType uint8

// Event interface - all events implement this
type Event interface {
	Type() EventType
}

// Trigger events
type TriggerEnterEvent struct {
	BodyA *actor.Body
	BodyB *actor.Body
}

func (e TriggerEnterEvent) Type() EventType { return TRIGGER_ENTER }

type TriggerStayEvent struct {
	BodyA *actor.Body
	BodyB *actor.Body
}

func (e TriggerStayEvent) Type() EventType { return TRIGGER_STAY }

type TriggerExitEvent struct {
	BodyA *actor.Body
	BodyB *actor.Body
}

func (e TriggerExitEvent) Type() EventType { return TRIGGER_EXIT }

// Collision events
type CollisionEnterEvent struct {
	BodyA *actor.Body
	BodyB *actor.Body
	// Contact is the contact of the step the pair started touching
	Contact Contact
}

func (e CollisionEnterEvent) Type() EventType { return COLLISION_ENTER }

type CollisionStayEvent struct {
	BodyA   *actor.Body
	BodyB   *actor.Body
	Contact Contact
}

func (e CollisionStayEvent) Type() EventType { return COLLISION_STAY }

type CollisionExitEvent struct {
	BodyA *actor.Body
	BodyB *actor.Body
}

func (e CollisionExitEvent) Type() EventType { return COLLISION_EXIT }

// EventListener - callback for events
type EventListener func(event Event)

type activePair struct {
	pair    Pair
	contact Contact
}

// Events tracks the pairs in contact from one step to the next
type Events struct {
	listeners map[EventType][]EventListener

	// Event buffer to send at flush
	buffer []Event

	previousActivePairs map[pairKey]activePair
	currentActivePairs  map[pairKey]activePair
}

func NewEvents() Events {
	return Events{
		listeners:           make(map[EventType][]EventListener),
		buffer:              make([]Event, 0, 256),
		previousActivePairs: make(map[pairKey]activePair),
		currentActivePairs:  make(map[pairKey]activePair),
	}
}

// Subscribe adds a listener for an event type
func (e *Events) Subscribe(eventType EventType, listener EventListener) {
	e.listeners[eventType] = append(e.listeners[eventType], listener)
}

// recordContacts marks the pairs of the step as active, and drops the contacts
// involving a trigger from the returned contacts
func (e *Events) recordContacts(contacts []Contact) []Contact {
	n := 0
	for _, c := range contacts {
		key, pair := makePairKey(c.BodyA, c.BodyB)
		e.currentActivePairs[key] = activePair{pair: pair, contact: c}

		if !c.BodyA.IsTrigger && !c.BodyB.IsTrigger {
			contacts[n] = c
			n++
		}
	}

	return contacts[:n]
}

// forget drops every tracked pair involving body, without emitting exit events
func (e *Events) forget(body *actor.Body) {
	for key := range e.previousActivePairs {
		if key.idA == body.ID || key.idB == body.ID {
			delete(e.previousActivePairs, key)
		}
	}
}

// processCollisionEvents compares current and previous pairs to detect Enter/Stay/Exit
func (e *Events) processCollisionEvents() {
	for key, active := range e.currentActivePairs {
		bodyA, bodyB := active.pair.BodyA, active.pair.BodyB
		isTrigger := bodyA.IsTrigger || bodyB.IsTrigger

		_, wasActive := e.previousActivePairs[key]
		switch {
		case wasActive && isTrigger:
			e.buffer = append(e.buffer, TriggerStayEvent{BodyA: bodyA, BodyB: bodyB})
		case wasActive:
			e.buffer = append(e.buffer, CollisionStayEvent{BodyA: bodyA, BodyB: bodyB, Contact: active.contact})
		case isTrigger:
			e.buffer = append(e.buffer, TriggerEnterEvent{BodyA: bodyA, BodyB: bodyB})
		default:
			e.buffer = append(e.buffer, CollisionEnterEvent{BodyA: bodyA, BodyB: bodyB, Contact: active.contact})
		}
	}

	for key, active := range e.previousActivePairs {
		if _, ok := e.currentActivePairs[key]; ok {
			continue
		}

		bodyA, bodyB := active.pair.BodyA, active.pair.BodyB
		if bodyA.IsTrigger || bodyB.IsTrigger {
			e.buffer = append(e.buffer, TriggerExitEvent{BodyA: bodyA, BodyB: bodyB})
		} else {
			e.buffer = append(e.buffer, CollisionExitEvent{BodyA: bodyA, BodyB: bodyB})
		}
	}

	// Swap for next step and clear current
	e.previousActivePairs, e.currentActivePairs = e.currentActivePairs, e.previousActivePairs
	clear(e.currentActivePairs)
}

// flush sends all buffered events and clears the buffer
func (e *Events) flush() {
	e.processCollisionEvents()

	for _, event := range e.buffer {
		for _, listener := range e.listeners[event.Type()] {
			listener(event)
		}
	}
	e.buffer = e.buffer[:0]
}
