package sim

import "container/heap"

// scheduledEvent pairs an event with the order in which it was scheduled.
type scheduledEvent struct {
	event Event
	seq   uint64
}

// EventHeap implements a priority queue with deterministic ordering.
// Ordering: timestamp → scheduling sequence, so events scheduled for the same
// tick come out in the order they went in.
type EventHeap struct {
	events  []scheduledEvent
	nextSeq uint64
}

// NewEventHeap creates a new event heap
func NewEventHeap() *EventHeap {
	h := &EventHeap{
		events: make([]scheduledEvent, 0),
	}
	heap.Init(h)
	return h
}

// Len implements heap.Interface
func (h *EventHeap) Len() int {
	return len(h.events)
}

// Less implements heap.Interface with deterministic ordering
func (h *EventHeap) Less(i, j int) bool {
	ei, ej := h.events[i], h.events[j]

	// Primary: timestamp (lower first)
	if ei.event.Timestamp() != ej.event.Timestamp() {
		return ei.event.Timestamp() < ej.event.Timestamp()
	}

	// Secondary: scheduling order (earlier first)
	return ei.seq < ej.seq
}

// Swap implements heap.Interface
func (h *EventHeap) Swap(i, j int) {
	h.events[i], h.events[j] = h.events[j], h.events[i]
}

// Push implements heap.Interface
func (h *EventHeap) Push(x any) {
	h.events = append(h.events, x.(scheduledEvent))
}

// Pop implements heap.Interface
func (h *EventHeap) Pop() any {
	old := h.events
	n := len(old)
	item := old[n-1]
	old[n-1] = scheduledEvent{}
	h.events = old[0 : n-1]
	return item
}

// Schedule adds an event to the heap
func (h *EventHeap) Schedule(e Event) {
	h.nextSeq++
	heap.Push(h, scheduledEvent{event: e, seq: h.nextSeq})
}

// PopNext removes and returns the next event
func (h *EventHeap) PopNext() Event {
	if h.Len() == 0 {
		return nil
	}
	return heap.Pop(h).(scheduledEvent).event
}

// Peek returns the next event without removing it
func (h *EventHeap) Peek() Event {
	if h.Len() == 0 {
		return nil
	}
	return h.events[0].event
}
