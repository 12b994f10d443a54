package event

import (
	"testing"

	"github.com/lixenwraith/once-upon-a-lever/constant"
)

func TestQueueFIFO(t *testing.T) {
	q := NewEventQueue()
	q.Emit(EventItemPicked, nil, 1)
	q.Emit(EventItemPlaced, nil, 2)
	q.Emit(EventGateFired, nil, 3)

	got := q.Consume()
	if len(got) != 3 {
		t.Fatalf("Expected 3 events, got %d", len(got))
	}
	want := []EventType{EventItemPicked, EventItemPlaced, EventGateFired}
	for i, ev := range got {
		if ev.Type != want[i] {
			t.Errorf("Event %d: expected %s, got %s", i, want[i], ev.Type)
		}
	}
	if q.Len() != 0 {
		t.Errorf("Expected empty queue after consume, got %d", q.Len())
	}
	if q.Consume() != nil {
		t.Error("Expected nil from empty queue")
	}
}

func TestQueueOverflowDropsOldest(t *testing.T) {
	q := NewEventQueue()
	for i := 0; i < constant.EventQueueSize+10; i++ {
		q.Emit(EventItemPicked, nil, int64(i))
	}
	got := q.Consume()
	if len(got) != constant.EventQueueSize {
		t.Fatalf("Expected %d events, got %d", constant.EventQueueSize, len(got))
	}
	if got[0].Frame != 10 {
		t.Errorf("Expected oldest surviving frame 10, got %d", got[0].Frame)
	}
	if q.Dropped() != 10 {
		t.Errorf("Expected 10 dropped, got %d", q.Dropped())
	}
}

type recordingHandler struct {
	types []EventType
	seen  []EventType
	emit  func(ev GameEvent)
}

func (h *recordingHandler) HandleEvent(ev GameEvent) {
	h.seen = append(h.seen, ev.Type)
	if h.emit != nil {
		h.emit(ev)
	}
}

func (h *recordingHandler) EventTypes() []EventType { return h.types }

func TestRouterDispatchesCascades(t *testing.T) {
	q := NewEventQueue()
	r := NewRouter(q)

	first := &recordingHandler{types: []EventType{EventConfirmPulled}}
	first.emit = func(ev GameEvent) { q.Emit(EventAttemptPassed, nil, ev.Frame) }
	second := &recordingHandler{types: []EventType{EventAttemptPassed}}
	r.Register(first)
	r.Register(second)

	q.Emit(EventConfirmPulled, nil, 0)
	if n := r.DispatchAll(); n != 2 {
		t.Errorf("Expected 2 dispatched events, got %d", n)
	}
	if len(second.seen) != 1 {
		t.Errorf("Expected cascaded event to reach second handler once, got %d", len(second.seen))
	}
}

func TestEventNames(t *testing.T) {
	if GetEventName(0) != "Tick" {
		t.Errorf("Expected zero type to be Tick")
	}
	et, ok := GetEventType("AttemptFailed")
	if !ok || et != EventAttemptFailed {
		t.Errorf("Expected AttemptFailed lookup, got %v %v", et, ok)
	}
}
