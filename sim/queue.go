// Implements the WaitQueue, which holds all riders waiting for a driver.
// Riders are enqueued when no driver is available at request time.

package sim

import (
	"fmt"
	"strings"
)

// WaitQueue represents a FIFO queue of riders waiting to be matched.
// The earliest-waiting rider is always served first.
type WaitQueue struct {
	queue []*Rider // FIFO queue of riders
}

// Enqueue adds a rider to the back of the wait queue.
func (wq *WaitQueue) Enqueue(r *Rider) {
	if r == nil {
		panic("Enqueue: rider must not be nil")
	}
	wq.queue = append(wq.queue, r)
}

func (wq *WaitQueue) String() string {
	var sb strings.Builder
	sb.WriteString("[")
	for i, r := range wq.queue {
		sb.WriteString(r.ID)
		if i < len(wq.queue)-1 {
			sb.WriteString(" ")
		}
	}
	sb.WriteString("]")
	return sb.String()
}

// Len returns the number of riders in the queue.
func (wq *WaitQueue) Len() int {
	return len(wq.queue)
}

// Dequeue removes and returns the rider at the front of the queue.
// Returns nil if the queue is empty.
func (wq *WaitQueue) Dequeue() *Rider {
	if len(wq.queue) == 0 {
		return nil
	}
	r := wq.queue[0]
	wq.queue[0] = nil
	wq.queue = wq.queue[1:]
	return r
}

// Remove drops the rider with the same ID as r, keeping the order of the
// others. Returns false if no such rider was queued.
func (wq *WaitQueue) Remove(r *Rider) bool {
	for i, q := range wq.queue {
		if q.SameAs(r) {
			wq.queue = append(wq.queue[:i], wq.queue[i+1:]...)
			return true
		}
	}
	return false
}

// Items returns the queue contents for iteration.
// The returned slice is the queue's internal storage -- callers
// may iterate over it but MUST NOT append to or reslice it.
func (wq *WaitQueue) Items() []*Rider {
	return wq.queue
}

// contains reports whether a rider with r's ID is queued.
func (wq *WaitQueue) contains(r *Rider) bool {
	for _, q := range wq.queue {
		if q.SameAs(r) {
			return true
		}
	}
	return false
}

// mustNotContain panics when r is already queued; a rider may wait at most once.
func (wq *WaitQueue) mustNotContain(r *Rider) {
	if wq.contains(r) {
		panic(fmt.Sprintf("WaitQueue: rider %q is already waiting", r.ID))
	}
}
