// Package relay implements the delivery core of the webhook relay: a registry of
// per-destination FIFO queues, each drained by at most one lazily started worker
// goroutine that delivers payloads strictly in submission order and retries
// transient failures with a capped linear backoff.
//
// # Architecture
//
// A Registry maps a Destination (identifier + secret token) to its Queue. Queues
// are created on first use and live for the lifetime of the Registry. Submitting
// a payload appends it to the queue and, when no worker is running for that
// queue, starts one. The worker pops one payload at a time and hands it to the
// configured Deliverer until the outcome is Success or PermanentFailure; on a
// RetryableFailure it sleeps for BackoffPolicy.Delay(attempt) and tries the same
// payload again. When the worker observes an empty queue it clears the active
// flag under the same mutex used by Submit and exits, so an item can never be
// stranded and two workers never drain the same queue.
//
// Delivery to one destination is serialized; different destinations are
// delivered concurrently and independently.
//
// # Usage
//
//	sender := webhook.NewSender()
//	reg, err := relay.NewRegistry(sender,
//	    relay.WithLogger(log),
//	    relay.WithBackoff(relay.LinearBackoff{Unit: time.Second, Ceiling: 2 * time.Minute}),
//	)
//	if err != nil {
//	    return err
//	}
//	defer reg.Close(context.Background())
//
//	if err := reg.Submit(relay.Destination{ID: id, Token: token}, payload); err != nil {
//	    // relay.ErrRegistryClosed: the process is shutting down
//	}
//
// # Shutdown
//
// Close stops accepting submissions, interrupts workers sleeping between
// retries and lets attempts already on the wire finish. Payloads still queued
// are discarded: queues are memory resident and delivery is at-least-once,
// best-effort.
//
// # Testing
//
// Deliverer is an interface so the retry state machine can be exercised with a
// scripted DelivererFunc instead of a real network call.
package relay
