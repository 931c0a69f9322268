package keyboard

import "sync"

// defaultQueueCap bounds the event queue. The native thread can outrun the
// engine tick (IME bursts, autorepeat); past the cap the oldest unprocessed
// input is already stale, so new events are dropped and counted rather than
// growing the queue without bound.
const defaultQueueCap = 64

// queue is the mutex-guarded FIFO between the native thread and the engine
// tick. push runs on the native thread; drain runs on the engine thread.
type queue struct {
	mu      sync.Mutex
	events  []Event
	cap     int
	dropped uint64
}

func newQueue(capacity int) *queue {
	if capacity <= 0 {
		capacity = defaultQueueCap
	}
	return &queue{cap: capacity}
}

// push appends an event, dropping it when the queue is full. It reports
// whether the event was accepted.
func (q *queue) push(ev Event) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.events) >= q.cap {
		q.dropped++
		return false
	}
	q.events = append(q.events, ev)
	return true
}

// drain removes and returns all queued events in arrival order.
func (q *queue) drain() []Event {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.events) == 0 {
		return nil
	}
	out := q.events
	q.events = nil
	return out
}

// clear discards everything queued.
func (q *queue) clear() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.events = nil
}

// droppedCount returns how many events were refused so far.
func (q *queue) droppedCount() uint64 {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.dropped
}
