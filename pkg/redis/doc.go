// Package redis provides helpers for connecting to a Redis server.
//
// The package wraps the go-redis client and adds:
//
//   - Connect, which retries the connection using the supplied configuration.
//   - Healthcheck, a readiness probe for the HTTP health endpoints.
//
// Redis is optional for the relay: it backs the dead-letter archive when
// REDIS_URL is set. Config.Enabled reports whether it is configured.
//
// # Usage
//
//	var cfg redis.Config
//	if err := config.Load(&cfg); err != nil {
//	    return err
//	}
//	if cfg.Enabled() {
//	    client, err := redis.Connect(ctx, cfg)
//	    if err != nil {
//	        return err
//	    }
//	    defer client.Close()
//	}
//
// Register a health check:
//
//	check := httpserver.Check{Name: "redis", Fn: redis.Healthcheck(client, cfg.PingTimeout)}
//
// # Errors
//
// Connect returns ErrNotConfigured, ErrInvalidURL or
// ErrNotReady; Healthcheck wraps ping failures and
// timeouts in ErrUnhealthy.
package redis
