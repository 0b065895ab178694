package sim

import (
	"container/heap"
	"sync"
)

// An EventQueue is a queue of events ordered by event time.
type EventQueue interface {
	Push(evt Event)
	Pop() Event
	Peek() Event
	Len() int
}

// NewEventQueue creates a thread-safe, heap-backed event queue.
func NewEventQueue() EventQueue {
	q := new(eventQueueImpl)
	q.events = make(eventHeap, 0)
	heap.Init(&q.events)

	return q
}

type eventQueueImpl struct {
	sync.Mutex
	events eventHeap
}

func (q *eventQueueImpl) Push(evt Event) {
	q.Lock()
	heap.Push(&q.events, evt)
	q.Unlock()
}

func (q *eventQueueImpl) Pop() Event {
	q.Lock()
	evt := heap.Pop(&q.events).(Event)
	q.Unlock()

	return evt
}

func (q *eventQueueImpl) Peek() Event {
	q.Lock()
	evt := q.events[0]
	q.Unlock()

	return evt
}

func (q *eventQueueImpl) Len() int {
	q.Lock()
	l := len(q.events)
	q.Unlock()

	return l
}

type eventHeap []Event

func (h eventHeap) Len() int {
	return len(h)
}

func (h eventHeap) Less(i, j int) bool {
	return h[i].Time() < h[j].Time()
}

func (h eventHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
}

func (h *eventHeap) Push(x interface{}) {
	*h = append(*h, x.(Event))
}

func (h *eventHeap) Pop() interface{} {
	old := *h
	n := len(old)
	evt := old[n-1]
	*h = old[:n-1]

	return evt
}
