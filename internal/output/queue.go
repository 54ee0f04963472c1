package output

import "slashline/pkg/slashtypes"

// Queue is the core-owned FIFO of render-ready output descriptors. Handlers
// enqueue during dispatch; the renderer drains once per cycle. The runtime
// is single-threaded, so no locking is required here.
type Queue struct {
	items []slashtypes.OutputDescriptor
}

// NewQueue creates an empty descriptor queue.
func NewQueue() *Queue {
	return &Queue{}
}

// Enqueue appends a descriptor in arrival order.
func (q *Queue) Enqueue(desc slashtypes.OutputDescriptor) {
	q.items = append(q.items, desc)
}

// Drain returns every queued descriptor in FIFO order and clears the queue,
// guaranteeing exactly-once delivery per cycle.
func (q *Queue) Drain() []slashtypes.OutputDescriptor {
	items := q.items
	q.items = nil
	return items
}

// Len returns the number of descriptors waiting.
func (q *Queue) Len() int {
	return len(q.items)
}
