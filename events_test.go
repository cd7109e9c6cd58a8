package convex

import (
	"testing"

	"github.com/akmonengine/convex/actor"
	"github.com/akmonengine/convex/geom"
	"github.com/go-gl/mathgl/mgl64"
)

// createTestBody creates a sphere body for event testing
func createTestBody(isTrigger bool) *actor.Body {
	body := actor.NewBody(geom.NewTransform(), &actor.Sphere{Radius: 1.0}, actor.BodyTypeDynamic)
	body.IsTrigger = isTrigger
	return body
}

func createTestContact(bodyA, bodyB *actor.Body) Contact {
	return Contact{
		BodyA:       bodyA,
		BodyB:       bodyB,
		Normal:      mgl64.Vec3{1, 0, 0},
		Penetration: 0.1,
	}
}

type eventCapture struct {
	events []Event
}

func (ec *eventCapture) capture(event Event) {
	ec.events = append(ec.events, event)
}

func (ec *eventCapture) reset() {
	ec.events = ec.events[:0]
}

func (ec *eventCapture) count(eventType EventType) int {
	n := 0
	for _, e := range ec.events {
		if e.Type() == eventType {
			n++
		}
	}
	return n
}

func subscribeAll(events *Events, capture *eventCapture) {
	for _, eventType := range []EventType{TRIGGER_ENTER, COLLISION_ENTER, TRIGGER_STAY, COLLISION_STAY, TRIGGER_EXIT, COLLISION_EXIT} {
		events.Subscribe(eventType, capture.capture)
	}
}

func TestEvents_Subscribe(t *testing.T) {
	events := NewEvents()
	capture := &eventCapture{}

	events.Subscribe(COLLISION_ENTER, capture.capture)
	events.Subscribe(COLLISION_ENTER, capture.capture)

	if len(events.listeners[COLLISION_ENTER]) != 2 {
		t.Errorf("Expected 2 listeners for COLLISION_ENTER, got %d", len(events.listeners[COLLISION_ENTER]))
	}
	if len(events.listeners[COLLISION_EXIT]) != 0 {
		t.Errorf("Expected no listener for COLLISION_EXIT, got %d", len(events.listeners[COLLISION_EXIT]))
	}
}

func TestEvents_CollisionLifecycle(t *testing.T) {
	events := NewEvents()
	capture := &eventCapture{}
	subscribeAll(&events, capture)

	bodyA, bodyB := createTestBody(false), createTestBody(false)

	steps := []struct {
		name     string
		contacts []Contact
		want     EventType
	}{
		{name: "enter", contacts: []Contact{createTestContact(bodyA, bodyB)}, want: COLLISION_ENTER},
		{name: "stay", contacts: []Contact{createTestContact(bodyA, bodyB)}, want: COLLISION_STAY},
		{name: "stay with swapped bodies", contacts: []Contact{createTestContact(bodyB, bodyA)}, want: COLLISION_STAY},
		{name: "exit", contacts: nil, want: COLLISION_EXIT},
	}

	for _, step := range steps {
		capture.reset()
		events.recordContacts(step.contacts)
		events.flush()

		if len(capture.events) != 1 {
			t.Fatalf("%s: expected 1 event, got %d", step.name, len(capture.events))
		}
		if got := capture.events[0].Type(); got != step.want {
			t.Errorf("%s: expected event type %d, got %d", step.name, step.want, got)
		}
	}

	capture.reset()
	events.recordContacts(nil)
	events.flush()
	if len(capture.events) != 0 {
		t.Errorf("Expected no event once the pair has left, got %d", len(capture.events))
	}
}

func TestEvents_CollisionEnterCarriesContact(t *testing.T) {
	events := NewEvents()
	var got CollisionEnterEvent
	events.Subscribe(COLLISION_ENTER, func(event Event) {
		got = event.(CollisionEnterEvent)
	})

	bodyA, bodyB := createTestBody(false), createTestBody(false)
	events.recordContacts([]Contact{createTestContact(bodyA, bodyB)})
	events.flush()

	if got.Contact.Penetration != 0.1 {
		t.Errorf("Expected penetration 0.1, got %v", got.Contact.Penetration)
	}
}

func TestEvents_Triggers(t *testing.T) {
	events := NewEvents()
	capture := &eventCapture{}
	subscribeAll(&events, capture)

	trigger, body, other := createTestBody(true), createTestBody(false), createTestBody(false)

	contacts := events.recordContacts([]Contact{
		createTestContact(trigger, body),
		createTestContact(body, other),
	})
	events.flush()

	if len(contacts) != 1 || contacts[0].BodyA != body || contacts[0].BodyB != other {
		t.Errorf("Expected only the solid contact to be kept, got %d contacts", len(contacts))
	}
	if capture.count(TRIGGER_ENTER) != 1 || capture.count(COLLISION_ENTER) != 1 {
		t.Errorf("Expected one trigger enter and one collision enter, got %d and %d",
			capture.count(TRIGGER_ENTER), capture.count(COLLISION_ENTER))
	}

	capture.reset()
	events.recordContacts([]Contact{createTestContact(body, trigger)})
	events.flush()

	if capture.count(TRIGGER_STAY) != 1 {
		t.Errorf("Expected 1 TRIGGER_STAY, got %d", capture.count(TRIGGER_STAY))
	}
	if capture.count(COLLISION_EXIT) != 1 {
		t.Errorf("Expected 1 COLLISION_EXIT, got %d", capture.count(COLLISION_EXIT))
	}

	capture.reset()
	events.recordContacts(nil)
	events.flush()

	if capture.count(TRIGGER_EXIT) != 1 {
		t.Errorf("Expected 1 TRIGGER_EXIT, got %d", capture.count(TRIGGER_EXIT))
	}
}

func TestEvents_Forget(t *testing.T) {
	events := NewEvents()
	capture := &eventCapture{}
	subscribeAll(&events, capture)

	bodyA, bodyB := createTestBody(false), createTestBody(false)
	events.recordContacts([]Contact{createTestContact(bodyA, bodyB)})
	events.flush()

	capture.reset()
	events.forget(bodyB)
	events.recordContacts(nil)
	events.flush()

	if len(capture.events) != 0 {
		t.Errorf("Expected no exit event for a forgotten body, got %d events", len(capture.events))
	}
}

func TestMakePairKey_Ordering(t *testing.T) {
	bodyA, bodyB := createTestBody(false), createTestBody(false)

	keyAB, pairAB := makePairKey(bodyA, bodyB)
	keyBA, pairBA := makePairKey(bodyB, bodyA)

	if keyAB != keyBA {
		t.Errorf("Expected the same key in both orders")
	}
	if pairAB != pairBA {
		t.Errorf("Expected the same pair in both orders")
	}
}
