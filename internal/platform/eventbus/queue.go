package eventbus

import (
	"sync"
	"time"
)

// queuedCall is one remote invocation waiting for the run loop.
type queuedCall struct {
	event    string
	thunk    Thunk
	queuedAt time.Time
}

// callQueue is the FIFO shared by every producer and drained by the loop.
// Push order across all producers is pop order.
type callQueue struct {
	mu      sync.Mutex // protects pending and closed
	pending []queuedCall
	closed  bool

	// ready holds at most one wake-up token for a waiting loop.
	ready chan struct{}
}

func newCallQueue() *callQueue {
	return &callQueue{ready: make(chan struct{}, 1)}
}

// push appends c. It never blocks and reports false once the queue is closed.
func (q *callQueue) push(c queuedCall) bool {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return false
	}
	q.pending = append(q.pending, c)
	q.mu.Unlock()

	select {
	case q.ready <- struct{}{}:
	default:
	}
	return true
}

// next pops the oldest call. If the queue is empty and quitting reports
// true, the queue is closed under the same lock, so no push can slip in
// between the final empty check and the close.
func (q *callQueue) next(quitting func() bool) (c queuedCall, ok, closed bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.pending) > 0 {
		c = q.pending[0]
		q.pending[0] = queuedCall{}
		q.pending = q.pending[1:]
		if len(q.pending) == 0 {
			q.pending = nil
		}
		return c, true, false
	}
	if quitting() {
		q.closed = true
		return c, false, true
	}
	return c, false, false
}

// discard closes the queue and drops everything still pending.
func (q *callQueue) discard() []queuedCall {
	q.mu.Lock()
	defer q.mu.Unlock()
	dropped := q.pending
	q.pending = nil
	q.closed = true
	return dropped
}

func (q *callQueue) len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}
