package inbound

import (
	"context"
	"log/slog"
	"time"

	"github.com/dmitrymomot/hookrelay/pkg/clientip"
	"github.com/dmitrymomot/hookrelay/pkg/deadletter"
	"github.com/dmitrymomot/hookrelay/pkg/httpserver"
	"github.com/dmitrymomot/hookrelay/pkg/ratelimiter"
	"github.com/dmitrymomot/hookrelay/pkg/relay"
)

const (
	DefaultMaxBodyBytes    = 1 << 20
	defaultDeadLetterLimit = 50
	maxDeadLetterLimit     = 1000
)

// Submitter queues a payload for delivery. *relay.Registry implements it.
type Submitter interface {
	Submit(dest relay.Destination, payload relay.Payload) error
}

// StatsProvider exposes registry counters. *relay.Registry implements it.
type StatsProvider interface {
	Stats() relay.Stats
}

// DeadLetterReader lists archived dead letters. Both deadletter stores implement it.
type DeadLetterReader interface {
	Recent(ctx context.Context, limit int) ([]deadletter.Entry, error)
}

// Option configures a Handler.
type Option func(*Handler)

// WithLogger sets the request logger.
func WithLogger(l *slog.Logger) Option {
	return func(h *Handler) {
		if l != nil {
			h.log = l
		}
	}
}

// WithMaxBodyBytes caps the request body; larger bodies get 413.
func WithMaxBodyBytes(n int64) Option {
	return func(h *Handler) {
		if n > 0 {
			h.maxBodyBytes = n
		}
	}
}

// WithClock overrides the time stamped on translated embeds.
func WithClock(now func() time.Time) Option {
	return func(h *Handler) {
		if now != nil {
			h.now = now
		}
	}
}

// WithAdminRoutes toggles GET /stats and GET /deadletters. They are on by
// default once their sources are set; Config turns them off unless
// INBOUND_ADMIN_ROUTES is true.
func WithAdminRoutes(enabled bool) Option {
	return func(h *Handler) { h.adminRoutes = enabled }
}

// WithStats mounts GET /stats.
func WithStats(p StatsProvider) Option {
	return func(h *Handler) { h.stats = p }
}

// WithDeadLetters mounts GET /deadletters.
func WithDeadLetters(r DeadLetterReader) Option {
	return func(h *Handler) { h.deadLetters = r }
}

// WithReadyChecks adds dependency probes to GET /health/ready.
func WithReadyChecks(checks ...httpserver.Check) Option {
	return func(h *Handler) { h.readyChecks = append(h.readyChecks, checks...) }
}

// WithRateLimiter limits POST /relay per destination id. Nil disables limiting.
func WithRateLimiter(l *ratelimiter.Limiter) Option {
	return func(h *Handler) { h.limiter = l }
}

// WithClientIP sets how the caller address is resolved for logs.
// The default trusts no proxy headers.
func WithClientIP(res clientip.Resolver) Option {
	return func(h *Handler) { h.resolver = res }
}
