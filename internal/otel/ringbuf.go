package otel

import "sync"

// DefaultRingSize is the default ring buffer capacity.
const DefaultRingSize = 512

// RingBuffer keeps the most recent events in memory.
// Goroutine-safe.
type RingBuffer struct {
	mu     sync.Mutex
	events []Event
	next   int // slot overwritten by the next Push once full
	limit  int
}

// NewRingBuffer creates a ring buffer holding up to size events.
func NewRingBuffer(size int) *RingBuffer {
	if size <= 0 {
		size = DefaultRingSize
	}
	return &RingBuffer{
		events: make([]Event, 0, size),
		limit:  size,
	}
}

// Push adds an event, evicting the oldest when full. The Extra map is
// copied so later mutation by the caller is not observed.
func (r *RingBuffer) Push(e Event) {
	if e.Extra != nil {
		extra := make(map[string]any, len(e.Extra))
		for k, v := range e.Extra {
			extra[k] = v
		}
		e.Extra = extra
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.events) < r.limit {
		r.events = append(r.events, e)
		return
	}
	r.events[r.next] = e
	r.next = (r.next + 1) % r.limit
}

// Snapshot returns all buffered events, oldest first.
func (r *RingBuffer) Snapshot() []Event {
	return r.Last(r.limit)
}

// Last returns up to n of the most recent events, oldest first.
func (r *RingBuffer) Last(n int) []Event {
	r.mu.Lock()
	defer r.mu.Unlock()

	if n <= 0 || len(r.events) == 0 {
		return nil
	}

	ordered := make([]Event, 0, len(r.events))
	ordered = append(ordered, r.events[r.next:]...)
	ordered = append(ordered, r.events[:r.next]...)

	if n < len(ordered) {
		ordered = ordered[len(ordered)-n:]
	}
	return ordered
}

// Len returns the number of buffered events.
func (r *RingBuffer) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.events)
}

// Cap returns the buffer capacity.
func (r *RingBuffer) Cap() int {
	return r.limit
}

// Stats counts buffered events by kind.
func (r *RingBuffer) Stats() map[EventKind]int {
	r.mu.Lock()
	defer r.mu.Unlock()

	counts := make(map[EventKind]int)
	for _, e := range r.events {
		counts[e.Kind]++
	}
	return counts
}
