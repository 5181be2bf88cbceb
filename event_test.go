package sapling

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

type eventCapture struct {
	events []Event
}

func (ec *eventCapture) capture(event Event) {
	ec.events = append(ec.events, event)
}

func (ec *eventCapture) reset() {
	ec.events = ec.events[:0]
}

func (ec *eventCapture) count() int {
	return len(ec.events)
}

func (ec *eventCapture) hasEventType(eventType EventType) bool {
	for _, e := range ec.events {
		if e.Type() == eventType {
			return true
		}
	}
	return false
}

func subscribeAll(events *Events, capture *eventCapture) {
	for _, eventType := range []EventType{
		TRIGGER_ENTER, COLLISION_ENTER, TRIGGER_STAY, COLLISION_STAY, TRIGGER_EXIT, COLLISION_EXIT,
	} {
		events.Subscribe(eventType, capture.capture)
	}
}

// =============================================================================
// Subscribe and Listeners Tests
// =============================================================================

func TestEvents_Subscribe(t *testing.T) {
	events := NewEvents()
	capture := &eventCapture{}

	id := events.Subscribe(COLLISION_ENTER, capture.capture)

	if id == "" {
		t.Error("Subscribe() should return a subscription id")
	}
	if len(events.listeners[COLLISION_ENTER]) != 1 {
		t.Errorf("Expected 1 listener for COLLISION_ENTER, got %d", len(events.listeners[COLLISION_ENTER]))
	}
}

func TestEvents_Unsubscribe(t *testing.T) {
	events := NewEvents()
	capture := &eventCapture{}
	bodyA := createSphere(t, mgl64.Vec3{}, 1)
	bodyB := createSphere(t, mgl64.Vec3{}, 1)

	id := events.Subscribe(COLLISION_ENTER, capture.capture)
	other := events.Subscribe(COLLISION_ENTER, func(Event) {})
	if id == other {
		t.Fatal("subscription ids should be unique")
	}

	if !events.Unsubscribe(id) {
		t.Fatal("Unsubscribe() should find the listener")
	}
	if events.Unsubscribe(id) {
		t.Error("Unsubscribe() twice should report false")
	}

	events.recordCollision(bodyA, bodyB)
	events.flush()

	if capture.count() != 0 {
		t.Errorf("Unsubscribed listener received %d events", capture.count())
	}
}

func TestEvents_MultipleListeners(t *testing.T) {
	events := NewEvents()
	captures := []*eventCapture{{}, {}, {}}
	for _, c := range captures {
		events.Subscribe(COLLISION_ENTER, c.capture)
	}

	events.recordCollision(createSphere(t, mgl64.Vec3{}, 1), createSphere(t, mgl64.Vec3{}, 1))
	events.flush()

	for i, c := range captures {
		if c.count() != 1 {
			t.Errorf("Capture%d expected 1 event, got %d", i+1, c.count())
		}
	}
}

func TestEvents_UnsubscribeDuringFlush(t *testing.T) {
	events := NewEvents()
	bodyA := createSphere(t, mgl64.Vec3{}, 1)
	bodyB := createSphere(t, mgl64.Vec3{}, 1)
	calls := map[string]int{}

	var once SubscriptionID
	once = events.Subscribe(COLLISION_ENTER, func(Event) {
		calls["once"]++
		events.Unsubscribe(once)
	})
	events.Subscribe(COLLISION_ENTER, func(Event) { calls["second"]++ })
	events.Subscribe(COLLISION_ENTER, func(Event) { calls["third"]++ })

	events.recordCollision(bodyA, bodyB)
	events.flush()

	for _, name := range []string{"once", "second", "third"} {
		if calls[name] != 1 {
			t.Errorf("listener %s called %d times, want 1 (calls: %v)", name, calls[name], calls)
		}
	}
	if len(events.listeners[COLLISION_ENTER]) != 2 {
		t.Errorf("Expected 2 listeners left, got %d", len(events.listeners[COLLISION_ENTER]))
	}

	// exit then enter again: the one-shot listener stays gone
	events.flush()
	events.recordCollision(bodyA, bodyB)
	events.flush()
	if calls["once"] != 1 || calls["second"] != 2 || calls["third"] != 2 {
		t.Errorf("after a second enter, calls = %v", calls)
	}
}

func TestEvents_ZeroValue(t *testing.T) {
	var events Events
	capture := &eventCapture{}
	events.Subscribe(COLLISION_ENTER, capture.capture)

	events.recordCollision(createSphere(t, mgl64.Vec3{}, 1), createSphere(t, mgl64.Vec3{}, 1))
	events.flush()

	if capture.count() != 1 {
		t.Errorf("zero value Events expected 1 event, got %d", capture.count())
	}
}

// =============================================================================
// Enter / Stay / Exit Tests
// =============================================================================

func TestEvents_CollisionLifecycle(t *testing.T) {
	events := NewEvents()
	capture := &eventCapture{}
	subscribeAll(&events, capture)

	bodyA := createSphere(t, mgl64.Vec3{}, 1)
	bodyB := createSphere(t, mgl64.Vec3{}, 1)

	steps := []struct {
		touching bool
		want     EventType
	}{
		{true, COLLISION_ENTER},
		{true, COLLISION_STAY},
		{false, COLLISION_EXIT},
		{true, COLLISION_ENTER},
	}

	for i, step := range steps {
		capture.reset()
		if step.touching {
			events.recordCollision(bodyA, bodyB)
		}
		events.flush()

		if capture.count() != 1 || !capture.hasEventType(step.want) {
			t.Fatalf("step %d: expected a single %v event, got %v", i, step.want, capture.events)
		}
		a, b := capture.events[0].Bodies()
		if a != bodyA || b != bodyB {
			t.Errorf("step %d: event bodies are not the recorded pair", i)
		}
	}

	capture.reset()
	events.flush()
	if capture.count() != 1 || !capture.hasEventType(COLLISION_EXIT) {
		t.Fatalf("expected a single COLLISION_EXIT once the pair stops touching, got %v", capture.events)
	}

	capture.reset()
	events.flush()
	if capture.count() != 0 {
		t.Errorf("expected no events once the pair has exited, got %d", capture.count())
	}
}

func TestEvents_TriggerLifecycle(t *testing.T) {
	events := NewEvents()
	capture := &eventCapture{}
	subscribeAll(&events, capture)

	bodyA := createSphere(t, mgl64.Vec3{}, 1)
	trigger := createSphere(t, mgl64.Vec3{}, 1)
	trigger.IsTrigger = true

	for i, want := range []EventType{TRIGGER_ENTER, TRIGGER_STAY, TRIGGER_EXIT} {
		capture.reset()
		if want != TRIGGER_EXIT {
			events.recordCollision(bodyA, trigger)
		}
		events.flush()

		if capture.count() != 1 || !capture.hasEventType(want) {
			t.Fatalf("step %d: expected a single %v event, got %v", i, want, capture.events)
		}
	}
}

func TestEvents_Forget(t *testing.T) {
	events := NewEvents()
	capture := &eventCapture{}
	subscribeAll(&events, capture)

	bodyA := createSphere(t, mgl64.Vec3{}, 1)
	bodyB := createSphere(t, mgl64.Vec3{}, 1)
	events.recordCollision(bodyA, bodyB)
	events.flush()

	capture.reset()
	events.forget(bodyB)
	events.flush()

	if capture.count() != 0 {
		t.Errorf("a forgotten body should not produce an exit event, got %v", capture.events)
	}
}

func TestEventType_String(t *testing.T) {
	if COLLISION_ENTER.String() != "collision_enter" || TRIGGER_EXIT.String() != "trigger_exit" {
		t.Errorf("unexpected names %q %q", COLLISION_ENTER.String(), TRIGGER_EXIT.String())
	}
	if EventType(200).String() != "unknown" {
		t.Errorf("EventType(200).String() = %q, want unknown", EventType(200).String())
	}
}

