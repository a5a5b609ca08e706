package relay

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Registry owns one Queue per destination and the workers draining them.
// Queues are created lazily on first use and never removed while the
// registry is alive. A Registry is safe for concurrent use.
type Registry struct {
	deliverer         Deliverer
	backoff           BackoffPolicy
	maxAttempts       int
	logger            *slog.Logger
	deadLetters       DeadLetterSink
	deadLetterTimeout time.Duration

	queuesMu sync.Mutex
	queues   map[Destination]*Queue

	// lifecycleMu guards closed. Submitters hold it for reading while they
	// may spawn a worker; Close takes it for writing before waiting on wg.
	lifecycleMu sync.RWMutex
	closed      bool
	wg          sync.WaitGroup

	// stopCtx is canceled as soon as Close is called: sleeping workers wake
	// and no further payloads are popped. attemptCtx is passed to the
	// Deliverer and is canceled only when Close's own context expires.
	stopCtx    context.Context
	stop       context.CancelFunc
	attemptCtx context.Context
	abort      context.CancelFunc

	stats registryStats
}

// NewRegistry creates an empty registry delivering through d.
func NewRegistry(d Deliverer, opts ...Option) (*Registry, error) {
	if d == nil {
		return nil, ErrNilDeliverer
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	stopCtx, stop := context.WithCancel(context.Background())
	attemptCtx, abort := context.WithCancel(context.Background())

	return &Registry{
		deliverer:         d,
		backoff:           o.backoff,
		maxAttempts:       o.maxAttempts,
		logger:            o.logger,
		deadLetters:       o.deadLetters,
		deadLetterTimeout: o.deadLetterTimeout,
		queues:            make(map[Destination]*Queue),
		stopCtx:           stopCtx,
		stop:              stop,
		attemptCtx:        attemptCtx,
		abort:             abort,
	}, nil
}

// Queue returns the queue for dest, creating it if needed. Concurrent callers
// asking for the same destination always receive the same *Queue.
func (r *Registry) Queue(dest Destination) *Queue {
	r.queuesMu.Lock()
	defer r.queuesMu.Unlock()

	q, ok := r.queues[dest]
	if !ok {
		q = newQueue(r, dest)
		r.queues[dest] = q
	}
	return q
}

// Submit enqueues payload for dest. It returns as soon as the payload is
// buffered; delivery happens asynchronously and its result is only logged.
func (r *Registry) Submit(dest Destination, payload Payload) error {
	return r.Queue(dest).Submit(payload)
}

// Close stops accepting submissions, wakes workers sleeping in backoff and
// waits for in-flight attempts to finish. Payloads still queued are discarded.
// If ctx expires first, in-flight attempts are canceled and ctx.Err() is
// returned. Close may be called more than once.
func (r *Registry) Close(ctx context.Context) error {
	r.lifecycleMu.Lock()
	first := !r.closed
	r.closed = true
	r.lifecycleMu.Unlock()

	if first {
		r.logger.Info("relay registry closing")
	}
	r.stop()

	done := make(chan struct{})
	go func() {
		r.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		r.abort()
		if first {
			r.logger.Info("relay registry closed")
		}
		return nil
	case <-ctx.Done():
		r.abort()
		r.logger.Warn("relay registry close timed out, in-flight attempts canceled")
		return ctx.Err()
	}
}

// Closed reports whether Close has been called.
func (r *Registry) Closed() bool {
	r.lifecycleMu.RLock()
	defer r.lifecycleMu.RUnlock()
	return r.closed
}

// Stats returns a snapshot of the registry counters.
func (r *Registry) Stats() Stats {
	r.queuesMu.Lock()
	queues := make([]*Queue, 0, len(r.queues))
	for _, q := range r.queues {
		queues = append(queues, q)
	}
	r.queuesMu.Unlock()

	pending := 0
	for _, q := range queues {
		pending += q.Len()
	}

	return Stats{
		Destinations:  len(queues),
		ActiveWorkers: r.stats.activeWorkers.Load(),
		Pending:       pending,
		Submitted:     r.stats.submitted.Load(),
		Delivered:     r.stats.delivered.Load(),
		Retries:       r.stats.retries.Load(),
		Dropped:       r.stats.dropped.Load(),
		Abandoned:     r.stats.abandoned.Load(),
	}
}
