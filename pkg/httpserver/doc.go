// Package httpserver wraps net/http with signal-aware graceful shutdown,
// configurable timeouts, health-check handlers and slog logging.
//
// The core type is Server:
//
//   - Run blocks until the context is canceled, SIGINT or SIGTERM is
//     received, or the listener fails.
//   - Shutdown stops taking connections, waits up to the shutdown timeout for
//     in-flight requests and then runs drain hooks.
//   - Drain hooks (WithDrainHook) release background components in
//     registration order once no new request can arrive. The relay binary
//     registers the delivery registry here so no submission races its Close.
//   - HealthCheckHandler serves liveness and readiness probes.
//
// # Usage
//
//	r := chi.NewRouter()
//	r.Get("/health/live", httpserver.HealthCheckHandler(log))
//	r.Get("/health/ready", httpserver.HealthCheckHandler(log,
//	    httpserver.Check{Name: "redis", Fn: redis.Healthcheck(client, redisCfg.PingTimeout)},
//	))
//
//	srv := httpserver.NewFromConfig(cfg,
//	    httpserver.WithLogger(log),
//	    httpserver.WithDrainHook("relay", registry.Close),
//	)
//	if err := srv.Run(ctx, r); err != nil {
//	    log.Error("server stopped", logger.Error(err))
//	}
//
// # Errors
//
// Listen errors are wrapped with ErrStart, shutdown errors with ErrShutdown
// and drain hook failures with ErrDrain. Use errors.Is to distinguish them.
package httpserver
