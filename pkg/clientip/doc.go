// Package clientip resolves the address of the client that sent a request.
//
// By default only the TCP peer address is used. When the relay runs behind a
// reverse proxy, list the headers that proxy sets:
//
//	res := clientip.NewResolver("CF-Connecting-IP", "X-Forwarded-For")
//	r.Use(res.Middleware)
//
// Handlers then read the address with FromContext, and LoggerExtractor adds it
// to every request-scoped log record. Addresses are normalized through
// net/netip: IPv4-mapped IPv6 addresses are unmapped and zones are dropped.
// Invalid values are skipped; Resolve returns "" when nothing valid is found.
package clientip
