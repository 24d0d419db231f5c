package event

import (
	"sync"
	"sync/atomic"
)

// Queue is an unbounded MPSC FIFO of plain values
// Thread-Safety:
//   - Push: safe for concurrent producers, never blocks
//   - Consume: single consumer, drains everything pending
//   - Signal: receives after a Push, coalesced to at most one pending wakeup
//
// Overflow: none; the backing slice grows
type Queue[T any] struct {
	mu      sync.Mutex
	items   []T
	pending atomic.Int64
	signal  chan struct{}
}

func NewQueue[T any]() *Queue[T] {
	return &Queue[T]{
		signal: make(chan struct{}, 1),
	}
}

// Push appends v and wakes the consumer
func (q *Queue[T]) Push(v T) {
	q.mu.Lock()
	q.items = append(q.items, v)
	q.pending.Add(1)
	q.mu.Unlock()

	select {
	case q.signal <- struct{}{}:
	default:
	}
}

// Consume returns all pending values in FIFO order, nil when empty
// The returned slice is owned by the caller
func (q *Queue[T]) Consume() []T {
	if q.pending.Load() == 0 {
		return nil
	}

	q.mu.Lock()
	out := q.items
	q.items = nil
	q.pending.Add(-int64(len(out)))
	q.mu.Unlock()

	if len(out) == 0 {
		return nil
	}
	return out
}

// Signal returns the wakeup channel; drain with Consume or Pop after each receive
func (q *Queue[T]) Signal() <-chan struct{} {
	return q.signal
}

// Len returns approximate pending count
// Lock-free; used for diagnostics
func (q *Queue[T]) Len() int {
	n := q.pending.Load()
	if n < 0 {
		return 0
	}
	return int(n)
}

