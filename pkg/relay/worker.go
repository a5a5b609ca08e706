package relay

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/hookrelay/pkg/logger"
)

// deliver runs the retry loop for one payload. It returns when the payload is
// delivered, dropped, abandoned at the attempt cap, or the registry stops.
func (r *Registry) deliver(dest Destination, payload Payload) {
	log := r.logger.With(
		logger.Destination(dest),
		logger.DeliveryID(uuid.NewString()),
	)

	attempt := 0
	for {
		start := time.Now()
		res := r.attempt(dest, payload, attempt)
		took := time.Since(start)

		switch res.Outcome {
		case Success:
			r.stats.delivered.Add(1)
			log.Info("payload delivered",
				logger.Attempt(attempt),
				logger.StatusCode(res.StatusCode),
				logger.Duration(took),
			)
			return

		case PermanentFailure:
			r.stats.dropped.Add(1)
			log.Error("payload dropped, destination rejected it",
				logger.Attempt(attempt),
				logger.StatusCode(res.StatusCode),
				logger.Error(res.Err),
				logger.ResponseBody(res.Body),
			)
			r.recordDeadLetter(log, dest, payload, res, res.Err, attempt+1)
			return
		}

		if r.maxAttempts > 0 && attempt+1 >= r.maxAttempts {
			r.stats.abandoned.Add(1)
			log.Error("payload abandoned after too many attempts",
				logger.Attempt(attempt),
				logger.StatusCode(res.StatusCode),
				logger.Error(res.Err),
				logger.ResponseBody(res.Body),
			)
			r.recordDeadLetter(log, dest, payload, res,
				errors.Join(ErrMaxAttemptsReached, res.Err), attempt+1)
			return
		}

		delay := r.backoff.Delay(attempt)
		r.stats.retries.Add(1)
		log.Warn("delivery failed, retrying",
			logger.Attempt(attempt),
			logger.StatusCode(res.StatusCode),
			logger.Backoff(delay),
			logger.Error(res.Err),
		)

		if !r.sleep(delay) {
			log.Warn("retry canceled by shutdown", logger.Attempt(attempt))
			return
		}
		attempt++
	}
}

// attempt calls the Deliverer once. A panic is converted into a retryable
// failure so the worker and its queue survive.
func (r *Registry) attempt(dest Destination, payload Payload, n int) (res Result) {
	defer func() {
		if p := recover(); p != nil {
			res = Result{
				Outcome: RetryableFailure,
				Err:     fmt.Errorf("%w: %v", ErrDelivererPanic, p),
			}
		}
	}()
	return r.deliverer.Deliver(r.attemptCtx, dest, payload, n)
}

// sleep pauses for d unless the registry stops first. It reports whether the
// worker should keep going.
func (r *Registry) sleep(d time.Duration) bool {
	if d <= 0 {
		return r.stopCtx.Err() == nil
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return true
	case <-r.stopCtx.Done():
		return false
	}
}

func (r *Registry) recordDeadLetter(log *slog.Logger, dest Destination, payload Payload, last Result, reason error, attempts int) {
	if r.deadLetters == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), r.deadLetterTimeout)
	defer cancel()

	err := r.deadLetters.Record(ctx, DeadLetter{
		Destination: dest,
		Payload:     payload,
		StatusCode:  last.StatusCode,
		Body:        last.Body,
		Reason:      reason,
		Attempts:    attempts,
		FailedAt:    time.Now().UTC(),
	})
	if err != nil {
		log.Error("failed to record dead letter", logger.Error(err))
	}
}
