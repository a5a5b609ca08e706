package inbound

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrymomot/hookrelay/pkg/clientip"
	"github.com/dmitrymomot/hookrelay/pkg/httpserver"
	"github.com/dmitrymomot/hookrelay/pkg/logger"
	"github.com/dmitrymomot/hookrelay/pkg/ratelimiter"
	"github.com/dmitrymomot/hookrelay/pkg/relay"
	"github.com/dmitrymomot/hookrelay/pkg/requestid"
	"github.com/dmitrymomot/hookrelay/pkg/translate"
)

// Handler serves the relay HTTP endpoints.
type Handler struct {
	submitter    Submitter
	stats        StatsProvider
	deadLetters  DeadLetterReader
	readyChecks  []httpserver.Check
	limiter      *ratelimiter.Limiter
	resolver     clientip.Resolver
	log          *slog.Logger
	maxBodyBytes int64
	adminRoutes  bool
	now          func() time.Time
}

// NewHandler creates a Handler submitting to s.
func NewHandler(s Submitter, opts ...Option) (*Handler, error) {
	if s == nil {
		return nil, ErrNilSubmitter
	}

	h := &Handler{
		submitter:    s,
		log:          slog.Default(),
		maxBodyBytes: DefaultMaxBodyBytes,
		adminRoutes:  true,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h, nil
}

// Router returns the chi router with all endpoints and middleware mounted.
func (h *Handler) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(requestid.Middleware)
	r.Use(h.resolver.Middleware)
	r.Use(middleware.Recoverer)

	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeText(w, http.StatusMethodNotAllowed, "invalid HTTP method: "+r.Method)
	})

	relayRoutes := chi.Router(r)
	if h.limiter != nil {
		relayRoutes = r.With(ratelimiter.Middleware(h.limiter, destinationKey, h.log))
	}
	relayRoutes.Post("/relay/{id}/{token}", h.relay)

	r.Get("/health/live", httpserver.HealthCheckHandler(h.log))
	r.Get("/health/ready", httpserver.HealthCheckHandler(h.log, h.readinessChecks()...))

	if h.adminRoutes && h.stats != nil {
		r.Get("/stats", h.getStats)
	}
	if h.adminRoutes && h.deadLetters != nil {
		r.Get("/deadletters", h.listDeadLetters)
	}

	return r
}

// relay translates one Slack message and queues the resulting payloads.
func (h *Handler) relay(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	dest := relay.Destination{
		ID:    chi.URLParam(r, "id"),
		Token: chi.URLParam(r, "token"),
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, h.maxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeText(w, http.StatusRequestEntityTooLarge, fmt.Sprintf("body exceeds %d bytes", tooLarge.Limit))
			return
		}
		writeText(w, http.StatusBadRequest, "failed to read body")
		return
	}

	msgs, err := translate.Translate(body, h.now())
	if err != nil {
		h.log.WarnContext(ctx, "rejected inbound message",
			logger.Destination(dest),
			logger.ClientIP(clientip.FromContext(ctx)),
			logger.Error(err),
		)
		writeText(w, http.StatusBadRequest, err.Error())
		return
	}

	for i, msg := range msgs {
		payload, err := msg.Encode()
		if err != nil {
			h.log.ErrorContext(ctx, "failed to encode payload", logger.Destination(dest), logger.Error(err))
			writeText(w, http.StatusInternalServerError, "failed to encode payload"+partialNote(i, len(msgs)))
			return
		}
		if err := h.submitter.Submit(dest, payload); err != nil {
			status, reply := http.StatusInternalServerError, "failed to submit payload"
			if errors.Is(err, relay.ErrRegistryClosed) {
				status, reply = http.StatusServiceUnavailable, "relay is shutting down"
			}
			h.log.Log(ctx, submitFailureLevel(status), "failed to submit payload",
				logger.Destination(dest),
				slog.Int("queued", i),
				slog.Int("payloads", len(msgs)),
				logger.Error(err),
			)
			writeText(w, status, reply+partialNote(i, len(msgs)))
			return
		}
	}

	embeds := translate.CountEmbeds(msgs)
	h.log.InfoContext(ctx, "message queued",
		logger.Destination(dest),
		logger.Count(embeds),
		slog.Int("payloads", len(msgs)),
	)
	writeText(w, http.StatusOK, fmt.Sprintf("submitted %d embeds", embeds))
}

// partialNote tells the caller how much of a split message was already
// queued. Those payloads will still be delivered, so a retry of the whole
// message repeats them.
func partialNote(queued, total int) string {
	if queued == 0 {
		return ""
	}
	return fmt.Sprintf(" (%d of %d payloads already queued)", queued, total)
}

func submitFailureLevel(status int) slog.Level {
	if status == http.StatusServiceUnavailable {
		return slog.LevelWarn
	}
	return slog.LevelError
}

// destinationKey shares one bucket between all senders targeting a destination.
func destinationKey(r *http.Request) string {
	return "dest:" + chi.URLParam(r, "id")
}

func (h *Handler) getStats(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.stats.Stats())
}

func (h *Handler) listDeadLetters(w http.ResponseWriter, r *http.Request) {
	limit := defaultDeadLetterLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			writeText(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = min(n, maxDeadLetterLimit)
	}

	entries, err := h.deadLetters.Recent(r.Context(), limit)
	if err != nil {
		h.log.ErrorContext(r.Context(), "failed to read dead letters", logger.Error(err))
		writeText(w, http.StatusInternalServerError, "failed to read dead letters")
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

// readinessChecks reports NOT_READY once the registry stops accepting work.
func (h *Handler) readinessChecks() []httpserver.Check {
	checks := append([]httpserver.Check(nil), h.readyChecks...)
	if c, ok := h.submitter.(interface{ Closed() bool }); ok {
		checks = append(checks, httpserver.Check{
			Name: "relay",
			Fn: func(context.Context) error {
				if c.Closed() {
					return relay.ErrRegistryClosed
				}
				return nil
			},
		})
	}
	return checks
}

func writeText(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, msg)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
