package relay

import (
	"sync"

	"github.com/dmitrymomot/hookrelay/pkg/logger"
)

// Queue is the ordered buffer of pending payloads for one destination together
// with the flag recording whether a worker is draining it. A Queue outlives its
// workers: it is created once by the Registry and reused for every activation.
type Queue struct {
	dest Destination
	reg  *Registry

	// mu guards items and active. Submit and the worker's exit path both run
	// under it, so an append can never be missed by an exiting worker.
	mu     sync.Mutex
	items  []Payload
	active bool
}

func newQueue(reg *Registry, dest Destination) *Queue {
	return &Queue{dest: dest, reg: reg}
}

// Destination returns the destination this queue delivers to.
func (q *Queue) Destination() Destination { return q.dest }

// Len returns the number of payloads waiting, excluding the one in flight.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

// Active reports whether a worker currently owns the queue.
func (q *Queue) Active() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.active
}

// Submit appends payload to the tail of the queue and starts a worker when
// none is running. It never blocks on I/O.
func (q *Queue) Submit(payload Payload) error {
	r := q.reg

	// Holding the lifecycle read lock keeps wg.Add ordered before Close's Wait.
	r.lifecycleMu.RLock()
	defer r.lifecycleMu.RUnlock()
	if r.closed {
		return ErrRegistryClosed
	}

	q.mu.Lock()
	defer q.mu.Unlock()

	q.items = append(q.items, payload)
	r.stats.submitted.Add(1)

	if q.active {
		return nil
	}
	q.active = true
	r.stats.activeWorkers.Add(1)
	r.wg.Add(1)
	go q.drain()
	return nil
}

// drain is the worker loop: it delivers payloads one by one until next reports
// the queue empty or the registry stopping.
func (q *Queue) drain() {
	defer q.reg.wg.Done()

	q.reg.logger.Debug("worker started", logger.Destination(q.dest))
	for {
		payload, ok := q.next()
		if !ok {
			return
		}
		q.reg.deliver(q.dest, payload)
	}
}

// next pops the head payload. When the queue is empty, or the registry is
// stopping, it clears the active flag in the same critical section and
// reports false; the caller must then exit.
func (q *Queue) next() (Payload, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.reg.stopCtx.Err() != nil {
		if n := len(q.items); n > 0 {
			q.reg.logger.Warn("discarding undelivered payloads on shutdown",
				logger.Destination(q.dest),
				logger.Count(n),
			)
			clear(q.items)
			q.items = nil
		}
		q.release()
		return nil, false
	}

	if len(q.items) == 0 {
		q.release()
		q.reg.logger.Debug("worker exited, queue empty", logger.Destination(q.dest))
		return nil, false
	}

	payload := q.items[0]
	q.items[0] = nil
	q.items = q.items[1:]
	if len(q.items) == 0 {
		q.items = nil
	}
	return payload, true
}

func (q *Queue) release() {
	q.active = false
	q.reg.stats.activeWorkers.Add(-1)
}
