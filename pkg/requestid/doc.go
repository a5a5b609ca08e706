// Package requestid attaches a correlation id to every inbound HTTP request.
//
// Middleware reuses the client's X-Request-ID header when it is a short
// token of letters, digits, '-' and '_', and otherwise generates a UUID. The
// id is stored in the request context and echoed in the response header.
//
// LoggerExtractor plugs into the logger package so that every record logged
// with a request context carries a request_id attribute:
//
//	log := logger.New(logger.WithContextExtractors(requestid.LoggerExtractor()))
//	r.Use(requestid.Middleware)
package requestid
