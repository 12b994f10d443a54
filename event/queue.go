package event

import (
	"github.com/lixenwraith/once-upon-a-lever/constant"
)

// EventQueue is a fixed ring buffer of game events
// Single-threaded: producers and the consumer all run on the game loop
// Overflow: oldest events are overwritten when full
type EventQueue struct {
	events [constant.EventQueueSize]GameEvent
	head   uint64 // Read index
	tail   uint64 // Write index

	dropped uint64
}

func NewEventQueue() *EventQueue {
	return &EventQueue{}
}

// Push appends an event, overwriting the oldest unread one when full
func (eq *EventQueue) Push(ev GameEvent) {
	eq.events[eq.tail&constant.EventBufferMask] = ev
	eq.tail++
	if eq.tail-eq.head > constant.EventQueueSize {
		eq.head = eq.tail - constant.EventQueueSize
		eq.dropped++
	}
}

// Emit is a shorthand for Push with a payload
func (eq *EventQueue) Emit(t EventType, payload any, frame int64) {
	eq.Push(GameEvent{Type: t, Payload: payload, Frame: frame})
}

// Consume returns all pending events in FIFO order and empties the queue
func (eq *EventQueue) Consume() []GameEvent {
	n := eq.tail - eq.head
	if n == 0 {
		return nil
	}
	result := make([]GameEvent, 0, n)
	for i := eq.head; i < eq.tail; i++ {
		idx := i & constant.EventBufferMask
		result = append(result, eq.events[idx])
		eq.events[idx] = GameEvent{}
	}
	eq.head = eq.tail
	return result
}

// Len returns the pending event count
func (eq *EventQueue) Len() int {
	return int(eq.tail - eq.head)
}

// Dropped returns how many events were overwritten before being consumed
func (eq *EventQueue) Dropped() uint64 {
	return eq.dropped
}
