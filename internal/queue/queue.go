// Package queue provides the bounded single-producer/single-consumer ring
// buffer used to pass samples from the real-time audio callbacks to the
// non-real-time writer workers.
//
// It wraps code.hybscloud.com/lfq's SPSC implementation, which is already
// a wait-free Lamport ring buffer sized to a fixed capacity at
// construction - exactly the shape the engine's queues need. The wrapper
// exists only to turn lfq's error-returning API into the boolean
// success/drop-counting shape the real-time callbacks want, so neither
// callback has to know about code.hybscloud.com/iox's error values.
package queue

import (
	"sync/atomic"

	"code.hybscloud.com/lfq"
)

// SPSC is a bounded, wait-free, single-producer/single-consumer queue of
// elements of type T. Push never blocks and never allocates; on a full
// queue it drops the element and reports the drop via Dropped.
type SPSC[T any] struct {
	q       *lfq.SPSC[T]
	dropped atomic.Uint64
}

// New creates an SPSC queue with room for capacity elements.
func New[T any](capacity int) *SPSC[T] {
	return &SPSC[T]{q: lfq.NewSPSC[T](capacity)}
}

// Push attempts to enqueue v. It returns false and increments the drop
// counter if the queue is full; it never blocks.
func (s *SPSC[T]) Push(v T) bool {
	if err := s.q.Enqueue(&v); err != nil {
		s.dropped.Add(1)
		return false
	}
	return true
}

// Pop removes and returns the oldest element, or ok=false if the queue is
// currently empty.
func (s *SPSC[T]) Pop() (v T, ok bool) {
	p, err := s.q.Dequeue()
	if err != nil {
		return v, false
	}
	return *p, true
}

// Drain pops every element currently available and passes each to fn, in
// order. Used by writer workers winding down after transport stops.
func (s *SPSC[T]) Drain(fn func(T)) {
	for {
		v, ok := s.Pop()
		if !ok {
			return
		}
		fn(v)
	}
}

// Dropped returns the number of elements lost to a full queue since
// construction.
func (s *SPSC[T]) Dropped() uint64 {
	return s.dropped.Load()
}
