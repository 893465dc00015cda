package models

import (
	"container/heap"
	"time"
)

const (
	EventCustomerArrived = "CustomerArrived"
	EventCustomerSeated  = "CustomerSeated"
	EventSeatingFailed   = "SeatingFailed"
	EventTableServed     = "TableServed"
	EventCustomerLeft    = "CustomerLeft"
	EventSessionEnded    = "SessionEnded"
)

// Event represents something that happened during a turn
type Event struct {
	Turn int
	Seq  int
	Time time.Time
	Type string
	Data interface{}
}

// EventMessage is a serialized event ready for an output destination
type EventMessage struct {
	Topic   string
	Message []byte
}

// EventQueue hands events back in the order they happened: by turn, then by
// the order they were recorded within the turn.
type EventQueue struct {
	events  []*Event
	nextSeq int
}

// eventHeap implements heap.Interface and holds Events
type eventHeap []*Event

func (h eventHeap) Len() int { return len(h) }
func (h eventHeap) Less(i, j int) bool {
	if h[i].Turn != h[j].Turn {
		return h[i].Turn < h[j].Turn
	}
	return h[i].Seq < h[j].Seq
}
func (h eventHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *eventHeap) Push(x interface{}) {
	*h = append(*h, x.(*Event))
}

func (h *eventHeap) Pop() interface{} {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[0 : n-1]
	return x
}

// NewEventQueue creates a new EventQueue
func NewEventQueue() *EventQueue {
	return &EventQueue{events: make([]*Event, 0)}
}

// Enqueue adds an event to the queue and stamps its sequence number
func (eq *EventQueue) Enqueue(event *Event) {
	event.Seq = eq.nextSeq
	eq.nextSeq++
	heap.Push((*eventHeap)(&eq.events), event)
}

// Dequeue removes and returns the earliest event from the queue
func (eq *EventQueue) Dequeue() *Event {
	if len(eq.events) == 0 {
		return nil
	}
	return heap.Pop((*eventHeap)(&eq.events)).(*Event)
}

// Peek returns the earliest event without removing it
func (eq *EventQueue) Peek() *Event {
	if len(eq.events) == 0 {
		return nil
	}
	return eq.events[0]
}

func (eq *EventQueue) IsEmpty() bool {
	return len(eq.events) == 0
}

func (eq *EventQueue) Len() int {
	return len(eq.events)
}

// DequeueBatch drains up to maxBatchSize events, earliest first.
func (eq *EventQueue) DequeueBatch(maxBatchSize int) []*Event {
	batchSize := min(maxBatchSize, len(eq.events))
	batch := make([]*Event, 0, batchSize)

	for i := 0; i < batchSize; i++ {
		event := heap.Pop((*eventHeap)(&eq.events)).(*Event)
		batch = append(batch, event)
	}

	return batch
}
