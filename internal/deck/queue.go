package deck

import (
	"sync"
	"time"
)

// EventType distinguishes pointer event kinds.
type EventType int

const (
	EventPointerDown EventType = iota + 1
	EventPointerMove
	EventPointerUp
	EventInterrupt
)

func (t EventType) String() string {
	switch t {
	case EventPointerDown:
		return "pointer_down"
	case EventPointerMove:
		return "pointer_move"
	case EventPointerUp:
		return "pointer_up"
	case EventInterrupt:
		return "interrupt"
	default:
		return "unknown"
	}
}

// Event is one host input for a Loop.
type Event struct {
	Type    EventType
	Pointer int
	X, Y    float64

	// At is the input timestamp. The engine measures velocity with it, so
	// queueing latency does not distort the gesture. Zero means "when processed".
	At time.Time
}

// eventQueue is an unbounded FIFO of pointer events. Producers never block,
// so a UI goroutine can hand off input at any rate.
//
// ready holds at most one pending wake-up; several enqueues between two
// reads coalesce into one. Closing the queue closes ready, which wakes the
// consumer for good.
type eventQueue struct {
	mu     sync.Mutex
	events []Event
	closed bool
	ready  chan struct{}
}

func newEventQueue() *eventQueue {
	return &eventQueue{
		events: make([]Event, 0, 64),
		ready:  make(chan struct{}, 1),
	}
}

// Enqueue appends e. It reports false once the queue is closed.
func (q *eventQueue) Enqueue(e Event) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return false
	}
	q.events = append(q.events, e)
	select {
	case q.ready <- struct{}{}:
	default:
	}
	return true
}

// TryDequeue pops the oldest event, or reports false when none is queued.
func (q *eventQueue) TryDequeue() (Event, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.events) == 0 {
		return Event{}, false
	}
	e := q.events[0]
	q.events[0] = Event{}
	q.events = q.events[1:]
	if len(q.events) == 0 {
		q.events = q.events[:0:0]
	}
	return e, true
}

// Wait returns the wake-up channel.
func (q *eventQueue) Wait() <-chan struct{} {
	return q.ready
}

// Len returns the number of queued events.
func (q *eventQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.events)
}

// Closed reports whether Close has been called.
func (q *eventQueue) Closed() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.closed
}

// Close rejects further events. Queued events stay available. Idempotent.
func (q *eventQueue) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()
	if !q.closed {
		q.closed = true
		close(q.ready)
	}
}
