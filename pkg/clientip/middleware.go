package clientip

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/hookrelay/pkg/logger"
)

// Middleware resolves the client IP once and stores it in the request context.
func (res Resolver) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(w, r.WithContext(WithContext(r.Context(), res.Resolve(r))))
	})
}

// LoggerExtractor adds the client IP to records logged with a request context.
func LoggerExtractor() logger.ContextExtractor {
	return func(ctx context.Context) (slog.Attr, bool) {
		if ip := FromContext(ctx); ip != "" {
			return logger.ClientIP(ip), true
		}
		return slog.Attr{}, false
	}
}
