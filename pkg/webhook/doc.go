// Package webhook performs single HTTP webhook delivery attempts for the relay.
//
// A Sender renders the delivery URL from a template and the destination
// identity, POSTs the payload as application/json with a fixed User-Agent and
// classifies the response:
//
//   - 2xx: relay.Success
//   - 400, 403: relay.PermanentFailure (malformed payload or revoked webhook)
//   - anything else, network errors, timeouts: relay.RetryableFailure
//
// Sender implements relay.Deliverer. It never retries on its own; the relay
// registry owns the retry loop and the backoff schedule.
//
// # Usage
//
//	sender := webhook.NewSender(
//	    webhook.WithConnectTimeout(5*time.Second),
//	    webhook.WithReadTimeout(15*time.Second),
//	)
//	reg, err := relay.NewRegistry(sender)
//
// Or from environment configuration:
//
//	var cfg webhook.Config
//	if err := config.Load(&cfg); err != nil {
//	    return err
//	}
//	sender, err := webhook.NewSenderFromConfig(cfg)
//
// # Timeouts
//
// Dialing and the TLS handshake are bounded by the connect timeout, waiting for
// response headers by the read timeout. The whole attempt additionally runs
// under a deadline equal to their sum, so a single attempt can never hang.
//
// # Secrets
//
// The delivery URL carries the destination token. Errors returned by the
// Sender have the URL stripped, and the token never appears in error text.
// Response bodies of failed attempts are flattened to a single line and cut
// to 200 bytes before being attached to the error.
//
// # Delivery hooks
//
//	sender := webhook.NewSender(webhook.WithOnDelivery(func(r webhook.DeliveryResult) {
//	    metrics.Observe(r.Outcome.String(), r.Duration)
//	}))
package webhook
