// Package inbound is the HTTP surface of the relay.
//
// It accepts Slack-style incoming-webhook posts, translates them into Discord
// payloads and submits them, in order, to the delivery registry:
//
//	POST /relay/{id}/{token}   -> 200 "submitted N embeds"
//	GET  /health/live          -> ALIVE
//	GET  /health/ready         -> READY / NOT_READY
//	GET  /stats                -> registry counters as JSON
//	GET  /deadletters?limit=N  -> most recent dead letters as JSON
//
// Submission never waits for delivery: the response only confirms the
// payloads were queued. Delivery outcomes are visible in the logs, /stats and
// /deadletters.
//
// A message with more than ten attachments is split into several payloads.
// If submission fails part way, the payloads already queued are still
// delivered and the error response says how many there were; a caller that
// retries the whole message gets those embeds twice.
//
// /stats and /deadletters are unauthenticated. Dead letters include payloads
// and destination ids, so Config leaves both routes off unless
// INBOUND_ADMIN_ROUTES is set; serve them only on a trusted network.
//
//	h, err := inbound.NewHandler(registry,
//	    inbound.WithLogger(log),
//	    inbound.WithStats(registry),
//	    inbound.WithDeadLetters(store),
//	)
//	srv.Run(ctx, h.Router())
package inbound
