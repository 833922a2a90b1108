package event

import "sync"

// Sender is the write end of a Queue handed to widget code and shells
type Sender interface {
	// Send enqueues r, returns false if the queue was closed
	Send(r Request) bool
}

// Queue is the window request mailbox
// Thread-Safety:
//   - Send: multiple producers OK (widget code, shell goroutines)
//   - Drain: single consumer (EventState system of the owning window)
//
// Ordering is FIFO by send order. Nothing is dropped until Close
type Queue struct {
	mu      sync.Mutex
	pending []Request
	closed  bool
}

// NewQueue creates an open queue
func NewQueue() *Queue {
	return &Queue{pending: make([]Request, 0, 16)}
}

// Send appends r. After Close the request is silently dropped
func (q *Queue) Send(r Request) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return false
	}
	q.pending = append(q.pending, r)
	return true
}

// Drain returns all pending requests in send order and empties the queue
func (q *Queue) Drain() []Request {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.pending) == 0 {
		return nil
	}
	out := q.pending
	q.pending = make([]Request, 0, cap(out))
	return out
}

// Len returns the number of pending requests
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}

// Close drops pending requests and rejects further sends. Safe to call multiple times
func (q *Queue) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.closed = true
	q.pending = nil
}

// Closed reports whether Close was called
func (q *Queue) Closed() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.closed
}
